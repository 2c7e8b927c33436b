package services

import (
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"

	"github.com/parleyhq/parley/internal/config"
	"github.com/parleyhq/parley/internal/infrastructure/cometchat"
	"github.com/parleyhq/parley/internal/infrastructure/openai"
	"github.com/parleyhq/parley/internal/services/chat"
	"github.com/parleyhq/parley/internal/services/inference"
	"github.com/parleyhq/parley/internal/services/storage"
)

type Services struct {
	directoryService *cometchat.Service
	storageService   *storage.Service
	inferenceService *inference.Service
	chatService      chat.Service
}

// InitializeServices initializes all required services
func InitializeServices(pool *pgxpool.Pool) (*Services, error) {
	log.Info().Msg("Initializing core services")

	// Directory service (required)
	directoryService := cometchat.NewService()
	if directoryService == nil {
		log.Fatal().Msg("Failed to initialize CometChat service - service is required for core functionality")
	}

	// Storage service (required)
	storageService := storage.NewService(pool)
	log.Info().Msg("Initializing storage service")

	// OpenAI service (required)
	openAIService := openai.NewService()
	if openAIService == nil {
		log.Fatal().Msg("Failed to initialize OpenAI service - service is required for core functionality")
	}

	inferenceService, err := inference.NewService(openAIService, config.GetOpenAIModel())
	if err != nil {
		return nil, fmt.Errorf("failed to initialize inference service: %w", err)
	}
	log.Info().Msg("Initializing inference service")

	chatService, err := chat.NewService(directoryService, storageService, inferenceService)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize chat service: %w", err)
	}
	log.Info().Msg("Initializing chat service")

	log.Info().Msg("All services initialized successfully")

	return &Services{
		directoryService: directoryService,
		storageService:   storageService,
		inferenceService: inferenceService,
		chatService:      chatService,
	}, nil
}

// GetChatService returns the chat service
func (s *Services) GetChatService() chat.Service {
	return s.chatService
}

package config

import "github.com/rs/zerolog/log"

// GetOpenAIKey returns the current OpenAI key
func GetOpenAIKey() string {
	value := GetEnvOrDefault("OPENAI_KEY", "")
	if value == "" {
		log.Fatal().Msg("OPENAI_KEY environment variable not set")
	}
	return value
}

// GetOpenAIModel returns the completion model to request
func GetOpenAIModel() string {
	return GetEnvOrDefault("OPENAI_MODEL", "gpt-3.5-turbo")
}

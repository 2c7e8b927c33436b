// Package cometchat wraps the chat provider's REST API: the user directory,
// group (channel) management and message delivery.
package cometchat

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/parleyhq/parley/internal/config"
	"github.com/parleyhq/parley/internal/domain"
)

type Service struct {
	client  *http.Client
	baseURL string
	apiKey  string
}

type userPayload struct {
	UID      string        `json:"uid,omitempty"`
	Name     string        `json:"name"`
	Metadata *userMetadata `json:"metadata,omitempty"`
}

type userMetadata struct {
	Private privateMetadata `json:"@private"`
}

type privateMetadata struct {
	Email string `json:"email,omitempty"`
}

type userEnvelope struct {
	Data struct {
		UID      string        `json:"uid"`
		Name     string        `json:"name"`
		Metadata *userMetadata `json:"metadata"`
	} `json:"data"`
}

type groupPayload struct {
	GUID string `json:"guid"`
	Name string `json:"name"`
	Type string `json:"type"`
}

type messagePayload struct {
	Category     string      `json:"category"`
	Type         string      `json:"type"`
	Data         messageData `json:"data"`
	Receiver     string      `json:"receiver"`
	ReceiverType string      `json:"receiverType"`
}

type messageData struct {
	Text string `json:"text"`
}

func NewService() *Service {
	appID := config.GetCometChatAppID()
	region := config.GetCometChatRegion()
	apiKey := config.GetCometChatAPIKey()

	if appID == "" || apiKey == "" {
		log.Warn().Msg("CometChat service not configured - COMETCHAT_APP_ID or COMETCHAT_API_KEY missing")
		return nil
	}

	baseURL := config.GetCometChatBaseURL()
	if baseURL == "" {
		baseURL = config.DefaultCometChatBaseURL(appID, region)
	}

	return newService(&http.Client{}, baseURL, apiKey)
}

func newService(client *http.Client, baseURL, apiKey string) *Service {
	return &Service{
		client:  client,
		baseURL: baseURL,
		apiKey:  apiKey,
	}
}

// FindUser queries the directory by exact uid. A provider-side miss maps to
// domain.ErrUserNotFound rather than a transport error.
func (s *Service) FindUser(ctx context.Context, uid string) (*domain.User, error) {
	resp, err := s.do(ctx, http.MethodGet, "/users/"+uid, "", nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, domain.ErrUserNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, s.statusError(resp, "find user")
	}

	var envelope userEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("failed to decode user response: %w", err)
	}

	user := &domain.User{
		UserID: envelope.Data.UID,
		Name:   envelope.Data.Name,
	}
	if envelope.Data.Metadata != nil {
		user.Email = envelope.Data.Metadata.Private.Email
	}
	return user, nil
}

// UpsertUser creates the directory record, overwriting an existing one. The
// provider rejects duplicate uids on create, so a conflict falls through to an
// update of the same record.
func (s *Service) UpsertUser(ctx context.Context, uid, name, email string) error {
	payload := userPayload{
		UID:  uid,
		Name: name,
		Metadata: &userMetadata{
			Private: privateMetadata{Email: email},
		},
	}

	resp, err := s.do(ctx, http.MethodPost, "/users", "", payload)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusConflict {
		return s.updateUser(ctx, uid, name, email)
	}
	if resp.StatusCode >= http.StatusMultipleChoices {
		return s.statusError(resp, "create user")
	}
	return nil
}

func (s *Service) updateUser(ctx context.Context, uid, name, email string) error {
	payload := userPayload{
		Name: name,
		Metadata: &userMetadata{
			Private: privateMetadata{Email: email},
		},
	}

	resp, err := s.do(ctx, http.MethodPut, "/users/"+uid, "", payload)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusMultipleChoices {
		return s.statusError(resp, "update user")
	}
	return nil
}

// EnsureChannel creates a public group if it does not exist yet. An existing
// group with the same guid counts as success.
func (s *Service) EnsureChannel(ctx context.Context, guid, creatorUID, displayName string) error {
	payload := groupPayload{
		GUID: guid,
		Name: displayName,
		Type: "public",
	}

	resp, err := s.do(ctx, http.MethodPost, "/groups", creatorUID, payload)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusConflict {
		log.Debug().Str("guid", guid).Msg("Channel already exists")
		return nil
	}
	if resp.StatusCode >= http.StatusMultipleChoices {
		return s.statusError(resp, "create channel")
	}
	return nil
}

// SendMessage appends a text message to a group on behalf of senderUID.
func (s *Service) SendMessage(ctx context.Context, guid, senderUID, text string) error {
	payload := messagePayload{
		Category:     "message",
		Type:         "text",
		Data:         messageData{Text: text},
		Receiver:     guid,
		ReceiverType: "group",
	}

	resp, err := s.do(ctx, http.MethodPost, "/messages", senderUID, payload)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusMultipleChoices {
		return s.statusError(resp, "send message")
	}
	return nil
}

func (s *Service) do(ctx context.Context, method, path, onBehalfOf string, payload interface{}) (*http.Response, error) {
	var body io.Reader
	if payload != nil {
		jsonData, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, s.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("apiKey", s.apiKey)
	if onBehalfOf != "" {
		req.Header.Set("onBehalfOf", onBehalfOf)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	return resp, nil
}

func (s *Service) statusError(resp *http.Response, op string) error {
	if body, err := io.ReadAll(resp.Body); err == nil && len(body) > 0 {
		log.Error().Int("status", resp.StatusCode).Str("op", op).Bytes("body", body).Msg("Provider request failed")
	}
	return fmt.Errorf("cometchat %s returned status %d", op, resp.StatusCode)
}

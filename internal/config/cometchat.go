package config

import "fmt"

// GetCometChatAppID returns the CometChat application ID
func GetCometChatAppID() string {
	return GetEnvOrDefault("COMETCHAT_APP_ID", "")
}

// GetCometChatRegion returns the CometChat region slug (e.g. "us", "eu")
func GetCometChatRegion() string {
	return GetEnvOrDefault("COMETCHAT_REGION", "us")
}

// GetCometChatAPIKey returns the CometChat REST API key
func GetCometChatAPIKey() string {
	return GetEnvOrDefault("COMETCHAT_API_KEY", "")
}

// GetCometChatBaseURL returns the provider API base URL. Empty unless
// explicitly overridden; the adapter derives the default from app ID and
// region.
func GetCometChatBaseURL() string {
	return GetEnvOrDefault("COMETCHAT_BASE_URL", "")
}

// DefaultCometChatBaseURL builds the provider endpoint for an app/region pair.
func DefaultCometChatBaseURL(appID, region string) string {
	return fmt.Sprintf("https://%s.api-%s.cometchat.io/v3", appID, region)
}

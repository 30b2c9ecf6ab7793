package llm

import "errors"

var (
	// ErrMissingAPIKey is returned when a required API key is not provided
	ErrMissingAPIKey = errors.New("API key is required")

	// ErrUnsupportedProvider is returned when an unsupported provider type is specified
	ErrUnsupportedProvider = errors.New("unsupported text provider")

	// ErrEmptyResponse is returned when a provider yields no text
	ErrEmptyResponse = errors.New("empty response from model")

	// ErrProviderUnavailable is returned when a provider service call fails
	ErrProviderUnavailable = errors.New("text provider is currently unavailable")
)

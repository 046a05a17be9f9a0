package dashboard

import (
	"errors"
	"fmt"
)

const (
	// MessageNetworkError is used for transport and decoding failures.
	MessageNetworkError = "Network error"
	// MessageGenericError is used when an error response carries no message.
	MessageGenericError = "Something went wrong"
)

var (
	ErrUnknownSection  = errors.New("dashboard: unknown section")
	ErrSessionRequired = errors.New("dashboard: session id is required")
	ErrProviderMissing = errors.New("dashboard: metrics provider not configured")
)

// ProviderError is the single error shape returned by metrics providers.
// Status 0 means the request never produced a usable HTTP response.
type ProviderError struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

// NewProviderError builds a ProviderError, falling back to the generic message.
func NewProviderError(status int, message string) *ProviderError {
	if message == "" {
		message = MessageGenericError
	}
	return &ProviderError{Status: status, Message: message}
}

// NetworkError wraps a transport or decoding failure.
func NetworkError(cause error) *ProviderError {
	return &ProviderError{Status: 0, Message: MessageNetworkError, Err: cause}
}

func (e *ProviderError) Error() string {
	if e == nil {
		return ""
	}
	if e.Status == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s (status %d)", e.Message, e.Status)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// AsProviderError normalizes any error into a ProviderError.
func AsProviderError(err error) *ProviderError {
	if err == nil {
		return nil
	}
	var perr *ProviderError
	if errors.As(err, &perr) {
		if perr.Message == "" {
			return NewProviderError(perr.Status, "")
		}
		return perr
	}
	return NetworkError(err)
}

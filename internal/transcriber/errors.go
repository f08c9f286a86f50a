package transcriber

import (
	"errors"
	"fmt"
	"net/http"

	openai "github.com/sashabaranov/go-openai"
)

// ServiceError is a failed call to the speech-to-text service.
type ServiceError struct {
	StatusCode int
	Err        error
}

func (e *ServiceError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("transcription service (status %d): %v", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("transcription service: %v", e.Err)
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

// Temporary reports whether retrying later may succeed.
func (e *ServiceError) Temporary() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= 500
}

func newServiceError(err error) *ServiceError {
	se := &ServiceError{Err: err}

	var apiErr *openai.APIError
	var reqErr *openai.RequestError
	switch {
	case errors.As(err, &apiErr):
		se.StatusCode = apiErr.HTTPStatusCode
	case errors.As(err, &reqErr):
		se.StatusCode = reqErr.HTTPStatusCode
	}
	return se
}

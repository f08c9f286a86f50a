package summarizer

import (
	"errors"
	"fmt"
)

var ErrEmptyTranscript = errors.New("summarizer: transcript is empty")

// ServiceError is a failed call to the language-model service.
type ServiceError struct {
	Provider   string
	StatusCode int
	Err        error
}

func (e *ServiceError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("summarization service %s (status %d): %v", e.Provider, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("summarization service %s: %v", e.Provider, e.Err)
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

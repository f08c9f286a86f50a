package summarizer

import "context"

// Summarizer condenses a transcript with a large language model.
type Summarizer interface {
	Summarize(ctx context.Context, transcript string) (string, error)
}

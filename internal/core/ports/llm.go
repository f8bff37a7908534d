package ports

import "context"

// LLMClient sends raw text to a language model and returns the JSON object it produced.
// Implementations strip any markdown or prose around the object but do not validate it.
type LLMClient interface {
	Parse(ctx context.Context, rawText string, referenceDatetime string) ([]byte, error)
}

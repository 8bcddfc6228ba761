package llm

import "context"

// Completer sends a single prompt to a hosted model and returns the reply text.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
	Name() string
}

const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
)

// NewCompleter picks the backend named by provider. It returns nil when the
// matching API key is empty so callers fall back to the unavailable message.
func NewCompleter(provider, openAIKey, anthropicKey string) Completer {
	switch provider {
	case ProviderAnthropic:
		if anthropicKey == "" {
			return nil
		}
		return NewAnthropicClient(anthropicKey)
	default:
		if openAIKey == "" {
			return nil
		}
		return NewOpenAIClient(openAIKey)
	}
}

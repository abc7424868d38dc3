package llm

import "context"

// Provider is the abstraction over the text-generation service. The quiz
// engine treats it as an untrusted oracle: latency varies and the returned
// text is not guaranteed to be well-formed.
type Provider interface {
	// Generate sends a prompt to the provider and returns the raw text
	// response. It blocks until the full response is available; there is
	// no streaming.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider is configured to use.
	ModelID() string
}

// Request describes one generation call.
type Request struct {
	// Prompt is the full instruction text.
	Prompt string

	// LearningLanguage and NativeLanguage are the language tags of the
	// session this request belongs to (e.g. "es-ES", "en-US").
	LearningLanguage string
	NativeLanguage   string

	// Mode labels the kind of generation ("quiz", "summary").
	Mode string

	// MaxTokens caps the response length. Zero means provider default.
	MaxTokens int

	// Temperature controls randomness, 0.0 - 1.0.
	Temperature float64
}

// Response holds the provider's output.
type Response struct {
	// Text is the raw generated text. Callers parse it themselves.
	Text string

	// Model is the model that actually served the request.
	Model string
}

// systemPrompt sets the provider's role for every request.
const systemPrompt = `You are a language-learning assistant for the VocaLearn platform. Follow the instructions in each request exactly. When a request asks for JSON, respond with a single JSON object and nothing else: no markdown fences, no commentary.`

package openai

// Config contains OpenAI-compatible provider configuration.
// All fields map to OpenAI SDK options:
//   - APIKey: Maps to option.WithAPIKey()
//   - BaseURL: Maps to option.WithBaseURL()
//   - Timeout: Maps to option.WithRequestTimeout() (in seconds)
//
// Retries are always disabled; a request gets exactly one attempt.
type Config struct {
	APIKey  string `env:"OPENROUTER_API_KEY"`
	BaseURL string `env:"OPENROUTER_BASE_URL" envDefault:"https://openrouter.ai/api/v1"`
	Timeout int    `env:"OPENROUTER_TIMEOUT"  envDefault:"60"`
}

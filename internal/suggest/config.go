package suggest

// Config holds goal suggestion settings.
type Config struct {
	MaxTokens   int
	Temperature float64
	// MaxCount caps how many goals one request may ask for.
	MaxCount int
}

// DefaultConfig returns sensible defaults for goal suggestions.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   1024,
		Temperature: 0.7,
		MaxCount:    10,
	}
}

// DefaultCount is used when the caller does not ask for a number.
const DefaultCount = 3

package moviereviews

import "time"

// ServiceConfig holds review service behaviour
type ServiceConfig struct {
	// Language of stored review content
	SourceLanguage string

	// How to choose among several reviews by the same reviewer for a movie
	UpdateSelection      SelectionPolicy
	TranslationSelection SelectionPolicy

	// Upper bound for a single request's store and translation calls; 0 disables
	RequestTimeout time.Duration
}

// DefaultServiceConfig provides sensible defaults
var DefaultServiceConfig = ServiceConfig{
	SourceLanguage:       "en",
	UpdateSelection:      SelectErrorIfMultiple,
	TranslationSelection: SelectMostRecent,
	RequestTimeout:       10 * time.Second,
}

// SeedConfig controls batch seeding
type SeedConfig struct {
	BatchSize    int
	MaxRetries   int
	RetryDelayMs int
	RetryBackoff BackoffStrategy
}

// BackoffStrategy defines retry backoff behavior for unprocessed batch items
type BackoffStrategy string

const (
	BackoffLinear      BackoffStrategy = "LINEAR"
	BackoffExponential BackoffStrategy = "EXPONENTIAL"
	BackoffNone        BackoffStrategy = "NONE"
)

// DefaultSeedConfig matches the BatchWriteItem limit of 25 requests
var DefaultSeedConfig = SeedConfig{
	BatchSize:    25,
	MaxRetries:   5,
	RetryDelayMs: 100,
	RetryBackoff: BackoffExponential,
}

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/sicko7947/moviereviews"
)

// Translator backends
const (
	TranslatorAWS    = "aws"
	TranslatorLambda = "lambda"
)

type Config struct {
	TableName        string
	Region           string
	Port             string
	LogLevel         string
	DynamoDBEndpoint string

	// Translation
	Translator          string
	TranslationFunction string
	SourceLanguage      string

	// Cookie auth on write routes; an empty secret disables it
	AuthJWTSecret  string
	AuthCookieName string

	RequestTimeout       time.Duration
	UpdateSelection      moviereviews.SelectionPolicy
	TranslationSelection moviereviews.SelectionPolicy
}

func Load() Config {
	defaults := moviereviews.DefaultServiceConfig
	return Config{
		TableName:            getEnv("TABLE_NAME", "MovieReviews"),
		Region:               getEnv("REGION", "eu-west-1"),
		Port:                 getEnv("PORT", "3000"),
		LogLevel:             getEnv("LOG_LEVEL", "info"),
		DynamoDBEndpoint:     getEnv("DYNAMODB_ENDPOINT", ""),
		Translator:           strings.ToLower(getEnv("TRANSLATOR", TranslatorAWS)),
		TranslationFunction:  getEnv("TRANSLATION_FUNCTION", ""),
		SourceLanguage:       getEnv("SOURCE_LANGUAGE", defaults.SourceLanguage),
		AuthJWTSecret:        getEnv("AUTH_JWT_SECRET", ""),
		AuthCookieName:       getEnv("AUTH_COOKIE_NAME", "token"),
		RequestTimeout:       getEnvDuration("REQUEST_TIMEOUT", defaults.RequestTimeout),
		UpdateSelection:      getEnvSelection("UPDATE_SELECTION", defaults.UpdateSelection),
		TranslationSelection: getEnvSelection("TRANSLATION_SELECTION", defaults.TranslationSelection),
	}
}

// Validate checks combinations the individual defaults cannot
func (c Config) Validate() error {
	switch c.Translator {
	case TranslatorAWS:
	case TranslatorLambda:
		if c.TranslationFunction == "" {
			return fmt.Errorf("TRANSLATION_FUNCTION is required when TRANSLATOR=%s", TranslatorLambda)
		}
	default:
		return fmt.Errorf("unknown TRANSLATOR %q", c.Translator)
	}
	if c.TableName == "" {
		return fmt.Errorf("TABLE_NAME must not be empty")
	}
	return nil
}

// ServiceConfig returns the review service settings
func (c Config) ServiceConfig() moviereviews.ServiceConfig {
	return moviereviews.ServiceConfig{
		SourceLanguage:       c.SourceLanguage,
		UpdateSelection:      c.UpdateSelection,
		TranslationSelection: c.TranslationSelection,
		RequestTimeout:       c.RequestTimeout,
	}
}

// Level parses LogLevel, defaulting to info
func (c Config) Level() zerolog.Level {
	level, err := zerolog.ParseLevel(strings.ToLower(c.LogLevel))
	if err != nil || level == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return level
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			log.Warn().Str("key", key).Str("value", v).Err(err).Msg("invalid duration env var, using default")
			return fallback
		}
		return d
	}
	return fallback
}

func getEnvSelection(key string, fallback moviereviews.SelectionPolicy) moviereviews.SelectionPolicy {
	if v := os.Getenv(key); v != "" {
		p, err := moviereviews.ParseSelectionPolicy(strings.ToUpper(v))
		if err != nil {
			log.Warn().Str("key", key).Str("value", v).Err(err).Msg("invalid selection policy env var, using default")
			return fallback
		}
		return p
	}
	return fallback
}

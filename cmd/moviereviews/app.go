package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/aws/aws-sdk-go-v2/service/translate"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/sicko7947/moviereviews"
	"github.com/sicko7947/moviereviews/api"
	"github.com/sicko7947/moviereviews/auth"
	"github.com/sicko7947/moviereviews/internal/config"
	"github.com/sicko7947/moviereviews/service"
	"github.com/sicko7947/moviereviews/store"
	translator "github.com/sicko7947/moviereviews/translate"
)

// application holds the components shared by every subcommand
type application struct {
	cfg    config.Config
	aws    aws.Config
	store  *store.DynamoDBStore
	logger zerolog.Logger
}

// initializeApp loads configuration and builds the AWS clients once per process
func initializeApp(ctx context.Context) (*application, error) {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log.Logger = log.Output(zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: time.RFC3339,
	}).Level(cfg.Level())

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := dynamodb.NewFromConfig(awsCfg, func(o *dynamodb.Options) {
		if cfg.DynamoDBEndpoint != "" {
			o.BaseEndpoint = aws.String(cfg.DynamoDBEndpoint)
		}
	})

	app := &application{
		cfg:    cfg,
		aws:    awsCfg,
		logger: log.Logger,
		store: store.NewDynamoDBStore(client, cfg.TableName,
			store.WithStoreLogger(log.Logger),
		),
	}

	log.Info().
		Str("table", cfg.TableName).
		Str("region", cfg.Region).
		Str("translator", cfg.Translator).
		Msg("Application initialized")

	return app, nil
}

func (a *application) translator() moviereviews.Translator {
	var t moviereviews.Translator
	switch a.cfg.Translator {
	case config.TranslatorLambda:
		t = translator.NewLambdaTranslator(lambda.NewFromConfig(a.aws), a.cfg.TranslationFunction)
	default:
		t = translator.NewAWSTranslator(translate.NewFromConfig(a.aws))
	}
	return translator.WithPassthrough(t)
}

// server wires the service and HTTP layer
func (a *application) server() *api.Server {
	svc := service.NewReviewService(a.store, a.translator(),
		service.WithLogger(a.logger),
		service.WithConfig(a.cfg.ServiceConfig()),
	)

	opts := []api.ServerOption{api.WithLogger(a.logger)}
	if a.cfg.AuthJWTSecret != "" {
		opts = append(opts, api.WithAuthorizer(auth.NewJWTAuthorizer([]byte(a.cfg.AuthJWTSecret), a.cfg.AuthCookieName)))
	} else {
		a.logger.Warn().Msg("AUTH_JWT_SECRET not set, write routes are not protected")
	}

	return api.NewServer(svc, opts...)
}

package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	lambdasdk "github.com/aws/aws-sdk-go-v2/service/lambda"
	awspolly "github.com/aws/aws-sdk-go-v2/service/polly"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	awsssm "github.com/aws/aws-sdk-go-v2/service/ssm"
	awstranslate "github.com/aws/aws-sdk-go-v2/service/translate"

	"project-translate/handler"
	"project-translate/internal/integrations/paramstore"
	"project-translate/internal/integrations/speech"
	"project-translate/internal/integrations/translator"
	"project-translate/internal/language"
	"project-translate/internal/repository"
	"project-translate/internal/usecase"
)

func main() {
	ctx := context.Background()

	// ---- Configuration (read only here) ----
	bucket := mustEnv("AUDIO_BUCKET")

	// ---- AWS SDK config ----
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		slog.Error("failed to load AWS config", "err", err)
		os.Exit(1)
	}

	appID, err := resolveApplicationID(ctx, cfg)
	if err != nil {
		slog.Error("failed to resolve application id", "err", err)
		os.Exit(1)
	}

	// ---- Clients ----
	s3Client := awss3.NewFromConfig(cfg)
	cache, err := repository.New(s3Client, awss3.NewPresignClient(s3Client), bucket)
	if err != nil {
		slog.Error("failed to create audio cache", "err", err)
		os.Exit(1)
	}
	trans, err := translator.New(awstranslate.NewFromConfig(cfg))
	if err != nil {
		slog.Error("failed to create translator client", "err", err)
		os.Exit(1)
	}
	synth, err := speech.New(awspolly.NewFromConfig(cfg))
	if err != nil {
		slog.Error("failed to create speech client", "err", err)
		os.Exit(1)
	}

	// ---- Handler ----
	svc, err := usecase.NewSkillService(language.Default(), trans, synth, cache, appID)
	if err != nil {
		slog.Error("failed to create skill service", "err", err)
		os.Exit(1)
	}
	h, err := handler.New(svc)
	if err != nil {
		slog.Error("failed to create handler", "err", err)
		os.Exit(1)
	}
	warmer := NewWarmer(lambdasdk.NewFromConfig(cfg), os.Getenv("AWS_LAMBDA_FUNCTION_NAME"))

	lambda.Start(func(ctx context.Context, event json.RawMessage) (any, error) {
		// Warmup detection runs before skill dispatch.
		if warmup, ok := IsWarmupEvent(event); ok {
			return warmer.Handle(ctx, warmup)
		}
		return h.Handle(ctx, event)
	})
}

// resolveApplicationID reads the expected skill identity, preferring an SSM
// parameter when one is configured and falling back to a plain env variable.
func resolveApplicationID(ctx context.Context, cfg aws.Config) (string, error) {
	if param := os.Getenv("APPLICATION_ID_PARAM"); param != "" {
		ps, err := paramstore.New(awsssm.NewFromConfig(cfg))
		if err != nil {
			return "", err
		}
		return ps.GetParameter(ctx, param)
	}
	return mustEnv("APPLICATION_ID"), nil
}

func mustEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		slog.Error("required environment variable is not set", "key", key)
		os.Exit(1)
	}
	return v
}

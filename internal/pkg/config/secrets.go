// internal/pkg/config/secrets.go
package config

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
)

// applySecrets overlays values from SECRETS_PROVIDER onto cfg. The default
// "env" provider does nothing since the environment was already read.
func applySecrets(cfg *Config, logger *slog.Logger) error {
	switch provider := strings.ToLower(os.Getenv("SECRETS_PROVIDER")); provider {
	case "", "env":
		return nil
	case "aws":
	default:
		return fmt.Errorf("unknown secrets provider %q", provider)
	}

	name := os.Getenv("AWS_SECRET_NAME")
	if name == "" {
		return fmt.Errorf("%w: AWS_SECRET_NAME", ErrMissingRequiredConfig)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	secrets, err := fetchAWSSecret(ctx, cfg.AWS.Region, name)
	if err != nil {
		return err
	}
	logger.Info("secrets loaded",
		slog.String("provider", "aws"),
		slog.String("secret_name", name),
		slog.Int("keys", len(secrets)))

	overlaySecrets(cfg, secrets)
	return nil
}

// fetchAWSSecret reads a JSON object of key/value pairs from Secrets Manager
func fetchAWSSecret(ctx context.Context, region, name string) (map[string]string, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	out, err := secretsmanager.NewFromConfig(awsCfg).GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId:     aws.String(name),
		VersionStage: aws.String("AWSCURRENT"),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get secret %s: %w", name, err)
	}
	if out.SecretString == nil {
		return nil, fmt.Errorf("secret %s has no string value", name)
	}

	var secrets map[string]string
	if err := json.Unmarshal([]byte(*out.SecretString), &secrets); err != nil {
		return nil, fmt.Errorf("failed to parse secret %s: %w", name, err)
	}
	return secrets, nil
}

// overlaySecrets copies non-empty secret values onto the matching settings
func overlaySecrets(cfg *Config, secrets map[string]string) {
	targets := map[string]*string{
		"DB_PASSWORD":           &cfg.Database.Password,
		"REDIS_PASSWORD":        &cfg.Redis.Password,
		"AWS_ACCESS_KEY_ID":     &cfg.AWS.AccessKeyID,
		"AWS_SECRET_ACCESS_KEY": &cfg.AWS.SecretAccessKey,
		"SMTP_PASSWORD":         &cfg.Notifications.SMTPPassword,
		"MONGO_URI":             &cfg.Mongo.URI,
	}
	for key, target := range targets {
		if value := secrets[key]; value != "" {
			*target = value
		}
	}
	cfg.Asynq.RedisPassword = cfg.Redis.Password
}

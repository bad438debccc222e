// Package bootstrap wires optional infrastructure (Redis, Postgres,
// email providers) from configuration, degrading to in-memory
// implementations when a backend is not configured.
package bootstrap

import (
	"context"
	"crypto/tls"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	appconfig "github.com/luxesalon/frontdesk/internal/config"
	"github.com/luxesalon/frontdesk/internal/history"
	"github.com/luxesalon/frontdesk/internal/notify"
	"github.com/luxesalon/frontdesk/internal/transcript"
	"github.com/luxesalon/frontdesk/pkg/logging"
)

// BuildRedisClient returns a configured Redis client or nil when disabled.
// When verify is true, a ping is issued and failures return nil.
func BuildRedisClient(ctx context.Context, cfg *appconfig.Config, logger *logging.Logger, verify bool) *redis.Client {
	if cfg == nil || strings.TrimSpace(cfg.RedisAddr) == "" {
		return nil
	}
	if logger == nil {
		logger = logging.Default()
	}
	if ctx == nil {
		ctx = context.Background()
	}

	redisOptions := &redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	}
	if cfg.RedisTLS {
		redisOptions.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	client := redis.NewClient(redisOptions)
	if !verify {
		return client
	}
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("redis not available", "error", err)
		return nil
	}
	return client
}

// BuildTranscriptStore prefers Redis-backed transcripts and falls back
// to process memory.
func BuildTranscriptStore(redisClient *redis.Client, cfg *appconfig.Config) transcript.Store {
	limit := 250
	if cfg != nil && cfg.TranscriptLimit > 0 {
		limit = cfg.TranscriptLimit
	}
	if redisClient == nil {
		return transcript.NewInMemoryStore(limit)
	}
	return transcript.NewRedisStore(redisClient, int64(limit))
}

// BuildHistoryStore connects client history to Postgres when a
// DATABASE_URL is configured; otherwise history lives in memory and
// returning-client recognition does not survive restarts. The second
// return value closes the pool.
func BuildHistoryStore(ctx context.Context, cfg *appconfig.Config, logger *logging.Logger) (history.Store, func(), error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg == nil || strings.TrimSpace(cfg.DatabaseURL) == "" {
		logger.Warn("DATABASE_URL not set, client history is in-memory only")
		return history.NewInMemoryStore(), func() {}, nil
	}

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, nil, err
	}
	return history.NewPostgresStore(pool), pool.Close, nil
}

// BuildEmailSender selects the confirmation email provider. awsCfg is
// read only for the "ses" provider.
func BuildEmailSender(cfg *appconfig.Config, awsCfg aws.Config, logger *logging.Logger) notify.EmailSender {
	if logger == nil {
		logger = logging.Default()
	}

	switch cfg.EmailProvider {
	case "sendgrid":
		if sender := notify.NewSendGridSender(notify.SendGridConfig{
			APIKey:    cfg.SendGridAPIKey,
			FromEmail: cfg.SenderEmail,
			FromName:  cfg.SenderName,
		}, logger); sender != nil {
			return sender
		}
		logger.Warn("sendgrid selected but not configured, using stub email sender")
	case "ses":
		if sender := notify.NewSESSender(sesv2.NewFromConfig(awsCfg), notify.SESConfig{
			FromEmail: cfg.SenderEmail,
			FromName:  cfg.SenderName,
		}, logger); sender != nil {
			return sender
		}
		logger.Warn("ses selected but not configured, using stub email sender")
	}
	return notify.NewStubEmailSender(logger)
}

package redis

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"fmt"

	"aurum/karat_gold_loan/configs"
	"aurum/karat_gold_loan/internal/pkg/logger"

	"github.com/redis/go-redis/v9"
)

// RedisClientConstructor lets tests swap the real client for a fake.
type RedisClientConstructor func(opt *redis.Options) *redis.Client

type RedisClient struct {
	Client *redis.Client
}

func ConnectToRedis(ctx context.Context, cfg configs.RedisConfig, newClientFunc RedisClientConstructor) (*RedisClient, error) {
	logger.Info(ctx, "Connecting to Redis addr=%s db=%d enable_tls=%t", cfg.Addr, cfg.DB, cfg.EnableTLS)

	options := &redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	}
	if cfg.EnableTLS {
		tlsConfig, err := tlsConfigFromPEM(ctx, cfg.CertContent)
		if err != nil {
			logger.Error(ctx, "Redis TLS setup failed: %v", err)
			return nil, fmt.Errorf("redis tls setup: %w", err)
		}
		options.TLSConfig = tlsConfig
	}

	if newClientFunc == nil {
		newClientFunc = redis.NewClient
	}
	client := newClientFunc(options)

	if err := client.Ping(ctx).Err(); err != nil {
		logger.Error(ctx, "Redis ping failed", err)
		return nil, err
	}
	logger.Info(ctx, "Successfully connected to Redis")

	return &RedisClient{Client: client}, nil
}

// tlsConfigFromPEM builds a TLS config from a single PEM blob that may hold
// root CAs, a client cert+key pair, or both.
func tlsConfigFromPEM(ctx context.Context, pemContent string) (*tls.Config, error) {
	cfg := &tls.Config{MinVersion: tls.VersionTLS12}
	if pemContent == "" {
		return cfg, nil
	}

	raw := []byte(pemContent)
	usable := false

	pool := x509.NewCertPool()
	if pool.AppendCertsFromPEM(raw) {
		cfg.RootCAs = pool
		usable = true
		logger.Info(ctx, "Loaded Redis CA certificate(s) from PEM content")
	}
	if pair, err := tls.X509KeyPair(raw, raw); err == nil {
		cfg.Certificates = []tls.Certificate{pair}
		usable = true
		logger.Info(ctx, "Loaded Redis client certificate from PEM content")
	}

	if !usable {
		return nil, fmt.Errorf("PEM content holds neither CA certificates nor a client key pair")
	}
	return cfg, nil
}

func Disconnect(client *redis.Client) error {
	return client.Close()
}

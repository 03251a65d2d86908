package service

import (
	"context"
	"errors"
	"fmt"

	"coursehub/internal/config"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	"cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
)

type SecretManagerService interface {
	// AccessSecret returns the payload of a secret version resource name.
	AccessSecret(ctx context.Context, name string) (string, error)
}

type secretManagerService struct {
	client *secretmanager.Client
}

func NewSecretManagerService(ctx context.Context, cfg *config.Config) (SecretManagerService, error) {
	if cfg.GCPProjectID == "" {
		return nil, fmt.Errorf("GCP Project ID is not set for the current environment")
	}

	// Note: Secret Manager requires a real GCP project even for local development.
	client, err := secretmanager.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create Secret Manager client: %w", err)
	}
	return &secretManagerService{client: client}, nil
}

func (s *secretManagerService) AccessSecret(ctx context.Context, name string) (string, error) {
	result, err := s.client.AccessSecretVersion(ctx, &secretmanagerpb.AccessSecretVersionRequest{Name: name})
	if err != nil {
		return "", fmt.Errorf("failed to access secret version: %w", err)
	}
	return string(result.Payload.Data), nil
}

// ResolveJWTKey returns the key material used to verify bearer tokens.
// JWT_SECRET_RESOURCE wins over JWT_SECRET.
func ResolveJWTKey(ctx context.Context, cfg *config.Config, secrets SecretManagerService) (string, error) {
	if cfg.JWTSecretResource == "" {
		if cfg.JWTSecret == "" {
			return "", errors.New("JWT_SECRET or JWT_SECRET_RESOURCE must be set")
		}
		return cfg.JWTSecret, nil
	}
	if secrets == nil {
		return "", errors.New("JWT_SECRET_RESOURCE is set but Secret Manager is unavailable")
	}
	key, err := secrets.AccessSecret(ctx, cfg.JWTSecretResource)
	if err != nil {
		return "", fmt.Errorf("resolving JWT key: %w", err)
	}
	return key, nil
}

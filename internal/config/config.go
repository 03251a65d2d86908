package config

import (
	"strings"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	// Local & deployment secrets (fill up for local development)
	DBConnectionString string `envconfig:"DB_CONNECTION_STRING" required:"true"`
	JWTSecret          string `envconfig:"JWT_SECRET"`
	// JWTSecretResource is a Secret Manager version name, e.g.
	// projects/p/secrets/jwt-key/versions/latest. When set it wins over JWTSecret.
	JWTSecretResource string `envconfig:"JWT_SECRET_RESOURCE"`
	S3URL             string `envconfig:"S3_URL" required:"true"`
	S3Bucket          string `envconfig:"S3_BUCKET" required:"true"`
	S3Region          string `envconfig:"S3_REGION" default:"us-east-1"`
	S3AccessKey       string `envconfig:"S3_ACCESS_KEY" required:"true"`
	S3SecretKey       string `envconfig:"S3_SECRET_KEY" required:"true"`
	Environment       string `envconfig:"ENV" default:"development"`

	Port               string `envconfig:"PORT" default:"8080"`
	CORSAllowedOrigins string `envconfig:"CORS_ALLOWED_ORIGINS" default:"*"`

	// Pub/Sub
	PubSubEmulatorHost            string `envconfig:"PUBSUB_EMULATOR_HOST"`
	GCPProjectID                  string `envconfig:"GCP_PROJECT_ID"`
	PubSubCourseTopic             string `envconfig:"PUBSUB_COURSE_TOPIC" default:"course-events"`
	PubSubEnrollmentTopic         string `envconfig:"PUBSUB_ENROLLMENT_TOPIC" default:"enrollment-events"`
	DLQEndpointURL                string `envconfig:"DLQ_ENDPOINT_URL"`
	PubSubPushServiceAccountEmail string `envconfig:"PUBSUB_PUSH_SERVICE_ACCOUNT_EMAIL"`

	// Cover cleanup orchestrator settings
	CoverCleanupQueueName           string `envconfig:"COVER_CLEANUP_QUEUE" default:"cover_cleanup"`
	CoverCleanupPollTimeoutSec      int    `envconfig:"COVER_CLEANUP_POLL_TIMEOUT_SEC" default:"30"`
	CoverCleanupPollMaxMsg          int    `envconfig:"COVER_CLEANUP_POLL_MAX_MSG" default:"10"`
	CoverCleanupVisibilitySec       int    `envconfig:"COVER_CLEANUP_VISIBILITY_SEC" default:"300"`
	CoverCleanupMaxRetries          int    `envconfig:"COVER_CLEANUP_MAX_RETRIES" default:"5"`
	CoverCleanupBackoffInitialSec   int    `envconfig:"COVER_CLEANUP_BACKOFF_INITIAL_SEC" default:"1"`
	CoverCleanupBackoffMaxSec       int    `envconfig:"COVER_CLEANUP_BACKOFF_MAX_SEC" default:"60"`
	CoverCleanupDeadLetterQueueName string `envconfig:"COVER_CLEANUP_DEAD_LETTER_QUEUE" default:"cover_cleanup_dlq"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// IsDevelopment reports whether the service runs against local infrastructure.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// AllowedOrigins splits CORS_ALLOWED_ORIGINS on commas.
func (c *Config) AllowedOrigins() []string {
	var origins []string
	for _, o := range strings.Split(c.CORSAllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

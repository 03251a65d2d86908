package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"coursehub/internal/config"
	"coursehub/internal/logger"

	"cloud.google.com/go/pubsub"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

// For local development, 'host.docker.internal' lets the emulator reach the host machine.
const dlqEndpointLocal = "http://host.docker.internal:8080/v1/dlq/record"

const (
	retention           = 7 * 24 * time.Hour
	ackDeadline         = 60 * time.Second
	maxDeliveryAttempts = 5
)

// topicPlan describes the resources created for one event topic.
type topicPlan struct {
	Topic       string
	DLQTopic    string
	Sub         string
	DLQSub      string
	DLQEndpoint string
}

func planTopics(cfg *config.Config) []topicPlan {
	endpoint := cfg.DLQEndpointURL
	if endpoint == "" {
		endpoint = dlqEndpointLocal
	}
	var plans []topicPlan
	for _, topic := range []string{cfg.PubSubCourseTopic, cfg.PubSubEnrollmentTopic} {
		plans = append(plans, topicPlan{
			Topic:       topic,
			DLQTopic:    topic + "-dlq",
			Sub:         topic + "-sub",
			DLQSub:      topic + "-dlq-sub",
			DLQEndpoint: endpoint,
		})
	}
	return plans
}

func main() {
	logger := logger.New()

	if err := godotenv.Load(); err != nil {
		logger.Warn().Msg("Warning: no .env file found")
	}
	logger.Info().Msg("Starting Pub/Sub setup for the local environment")

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Msgf("Failed to load config: %v", err)
	}
	if cfg.GCPProjectID == "" {
		logger.Fatal().Msg("GCP_PROJECT_ID is not set in the environment")
	}
	if cfg.PubSubEmulatorHost == "" {
		logger.Fatal().Msg("PUBSUB_EMULATOR_HOST must be set; this command only targets the emulator")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := pubsub.NewClient(ctx, cfg.GCPProjectID,
		option.WithEndpoint(cfg.PubSubEmulatorHost),
		option.WithoutAuthentication(),
	)
	if err != nil {
		logger.Fatal().Msgf("Failed to create Pub/Sub client: %v", err)
	}
	defer func() {
		if err := client.Close(); err != nil {
			logger.Error().Err(err).Msg("Failed to close pubsub client")
		}
	}()

	if err := resetEmulator(ctx, client, logger); err != nil {
		logger.Fatal().Err(err).Msg("Failed to reset emulator")
	}
	for _, plan := range planTopics(cfg) {
		if err := createResources(ctx, client, plan, logger); err != nil {
			logger.Fatal().Err(err).Str("topic", plan.Topic).Msg("Failed to create resources")
		}
	}
	logger.Info().Msg("Pub/Sub setup for local environment complete")
}

// resetEmulator deletes every topic and subscription. Only run it against the emulator.
func resetEmulator(ctx context.Context, client *pubsub.Client, logger zerolog.Logger) error {
	subs := client.Subscriptions(ctx)
	for {
		sub, err := subs.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return fmt.Errorf("listing subscriptions: %w", err)
		}
		logger.Info().Str("subscription", sub.ID()).Msg("Deleting subscription")
		if err := sub.Delete(ctx); err != nil {
			logger.Warn().Err(err).Str("subscription", sub.ID()).Msg("Failed to delete subscription")
		}
	}

	topics := client.Topics(ctx)
	for {
		topic, err := topics.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return fmt.Errorf("listing topics: %w", err)
		}
		logger.Info().Str("topic", topic.ID()).Msg("Deleting topic")
		if err := topic.Delete(ctx); err != nil {
			logger.Warn().Err(err).Str("topic", topic.ID()).Msg("Failed to delete topic")
		}
	}
	return nil
}

// createResources creates the event topic, its dead-letter topic, a pull
// subscription for consumers and a push subscription delivering dead letters
// to the API.
func createResources(ctx context.Context, client *pubsub.Client, plan topicPlan, logger zerolog.Logger) error {
	log := logger.With().Str("topic", plan.Topic).Logger()

	dlqTopic, err := client.CreateTopicWithConfig(ctx, plan.DLQTopic, &pubsub.TopicConfig{RetentionDuration: retention})
	if err != nil {
		return fmt.Errorf("creating topic %s: %w", plan.DLQTopic, err)
	}
	topic, err := client.CreateTopicWithConfig(ctx, plan.Topic, &pubsub.TopicConfig{RetentionDuration: retention})
	if err != nil {
		return fmt.Errorf("creating topic %s: %w", plan.Topic, err)
	}

	retry := &pubsub.RetryPolicy{MinimumBackoff: 10 * time.Second, MaximumBackoff: 600 * time.Second}

	if _, err := client.CreateSubscription(ctx, plan.Sub, pubsub.SubscriptionConfig{
		Topic:       topic,
		AckDeadline: ackDeadline,
		RetryPolicy: retry,
		DeadLetterPolicy: &pubsub.DeadLetterPolicy{
			DeadLetterTopic:     dlqTopic.String(),
			MaxDeliveryAttempts: maxDeliveryAttempts,
		},
	}); err != nil {
		return fmt.Errorf("creating subscription %s: %w", plan.Sub, err)
	}
	log.Info().Str("subscription", plan.Sub).Msg("Created subscription")

	if _, err := client.CreateSubscription(ctx, plan.DLQSub, pubsub.SubscriptionConfig{
		Topic:       dlqTopic,
		PushConfig:  pubsub.PushConfig{Endpoint: plan.DLQEndpoint},
		AckDeadline: ackDeadline,
		RetryPolicy: retry,
	}); err != nil {
		return fmt.Errorf("creating subscription %s: %w", plan.DLQSub, err)
	}
	log.Info().Str("subscription", plan.DLQSub).Str("endpoint", plan.DLQEndpoint).Msg("Created dead-letter push subscription")
	return nil
}

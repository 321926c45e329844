package eventbus

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Black-And-White-Club/impiccato-bot/internal/observability/attr"
	"github.com/nats-io/nats.go/jetstream"
)

// StreamConfigs lists the JetStream streams backing the event topics.
func StreamConfigs() []jetstream.StreamConfig {
	return []jetstream.StreamConfig{
		{Name: "hangman", Subjects: []string{"hangman.>"}},
		{Name: "ranking", Subjects: []string{"ranking.>"}},
		{Name: "ditto", Subjects: []string{"ditto.>"}},
	}
}

// InitializeStreams creates or updates the streams during startup.
func InitializeStreams(ctx context.Context, js jetstream.JetStream, logger *slog.Logger) error {
	for _, streamConfig := range StreamConfigs() {
		if _, err := js.CreateOrUpdateStream(ctx, streamConfig); err != nil {
			logger.Error("Failed to create JetStream stream",
				attr.String("stream", streamConfig.Name),
				attr.Error(err),
			)
			return fmt.Errorf("failed to create stream %s: %w", streamConfig.Name, err)
		}
		logger.Info("JetStream stream ready", attr.String("stream", streamConfig.Name))
	}
	return nil
}

// Package attr provides the slog attributes shared across the bots so log
// lines use the same keys everywhere.
package attr

import (
	"context"
	"log/slog"
)

type ctxKey string

const correlationIDKey ctxKey = "correlation_id"

func String(key, value string) slog.Attr { return slog.String(key, value) }

func Int(key string, value int) slog.Attr { return slog.Int(key, value) }

func Bool(key string, value bool) slog.Attr { return slog.Bool(key, value) }

func Any(key string, value any) slog.Attr { return slog.Any(key, value) }

// Error logs err under the "error" key.
func Error(err error) slog.Attr { return slog.Any("error", err) }

func UserID(userID string) slog.Attr { return slog.String("user_id", userID) }

func GuildID(guildID string) slog.Attr { return slog.String("guild_id", guildID) }

func Command(name string) slog.Attr { return slog.String("command", name) }

// WithCorrelationID stores id on ctx for later extraction.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, correlationIDKey, id)
}

// CorrelationIDFromContext returns the id stored by WithCorrelationID, or "".
func CorrelationIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(correlationIDKey).(string)
	return id
}

// ExtractCorrelationID returns the correlation id of ctx as an attribute.
func ExtractCorrelationID(ctx context.Context) slog.Attr {
	return slog.String("correlation_id", CorrelationIDFromContext(ctx))
}

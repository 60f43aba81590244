package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/EduNex-Academy/course-service/internal/config"
	"github.com/EduNex-Academy/course-service/pkg/logger"
	"github.com/EduNex-Academy/course-service/pkg/monitoring"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const (
	EventCourseEnrolled  = "course.enrolled"
	EventCoursePublished = "course.published"
	EventCourseCompleted = "course.completed"
)

// EventSink receives domain events. Emission is fire-and-forget: failures are
// logged and swallowed, callers never branch on the outcome.
type EventSink interface {
	Emit(ctx context.Context, eventType string, payload map[string]interface{})
}

// RedisEventSink publishes events as JSON messages on a Redis channel.
type RedisEventSink struct {
	client  *redis.Client
	channel string
	enabled bool
}

func NewRedisEventSink(client *redis.Client, cfg *config.NotifyConfig) *RedisEventSink {
	return &RedisEventSink{
		client:  client,
		channel: cfg.Channel,
		enabled: cfg.Enabled,
	}
}

func (s *RedisEventSink) Emit(ctx context.Context, eventType string, payload map[string]interface{}) {
	if !s.enabled || s.client == nil {
		return
	}

	message := map[string]interface{}{
		"event":     eventType,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"payload":   payload,
	}

	data, err := json.Marshal(message)
	if err != nil {
		logger.Log.Warn("Failed to encode event", zap.String("event", eventType), zap.Error(err))
		monitoring.EventsPublished.WithLabelValues(eventType, "error").Inc()
		return
	}

	if err := s.client.Publish(ctx, s.channel, data).Err(); err != nil {
		logger.Log.Warn("Failed to publish event",
			zap.String("event", eventType),
			zap.String("channel", s.channel),
			zap.Error(err))
		monitoring.EventsPublished.WithLabelValues(eventType, "error").Inc()
		return
	}

	monitoring.EventsPublished.WithLabelValues(eventType, "ok").Inc()
}

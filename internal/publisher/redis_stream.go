package publisher

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// Stream names downstream report builders subscribe to.
const (
	StreamParsed = "courtlog.files.parsed"
	StreamFailed = "courtlog.files.failed"
)

// ParseEvent announces the outcome of one file parse.
type ParseEvent struct {
	SeasonID   int64  `json:"season_id"`
	FileType   string `json:"file_type"`
	Filename   string `json:"filename"`
	GameID     int64  `json:"game_id,omitempty"`
	PracticeID int64  `json:"practice_id,omitempty"`
	Error      string `json:"error,omitempty"`
}

// RedisStreamPublisher publishes parse events to Redis streams.
type RedisStreamPublisher struct {
	client *redis.Client
}

// NewRedisStreamPublisher creates a publisher from an existing client.
func NewRedisStreamPublisher(client *redis.Client) *RedisStreamPublisher {
	return &RedisStreamPublisher{
		client: client,
	}
}

// PublishParsed announces a successfully parsed file.
func (rsp *RedisStreamPublisher) PublishParsed(ctx context.Context, event ParseEvent) error {
	return rsp.publish(ctx, StreamParsed, event)
}

// PublishFailed announces a file that could not be parsed.
func (rsp *RedisStreamPublisher) PublishFailed(ctx context.Context, event ParseEvent) error {
	return rsp.publish(ctx, StreamFailed, event)
}

func (rsp *RedisStreamPublisher) publish(ctx context.Context, stream string, event ParseEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return rsp.client.XAdd(ctx, &redis.XAddArgs{
		Stream: stream,
		Values: map[string]interface{}{
			"data":      string(data),
			"timestamp": time.Now().Unix(),
		},
	}).Err()
}

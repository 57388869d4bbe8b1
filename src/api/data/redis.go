package data

import (
	"context"
	"log"

	"github.com/redis/go-redis/v9"
)

const streamReports = "rumourwatch.reports"

func MustRedis(url string) *redis.Client {
	opt, err := redis.ParseURL(url)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}
	return redis.NewClient(opt)
}

// PublishReportEvent appends a report-submission event to the shared stream.
// A nil client means no Redis is configured and publishing is a no-op.
func PublishReportEvent(ctx context.Context, rdb *redis.Client, payload map[string]interface{}) error {
	if rdb == nil {
		return nil
	}
	_, err := rdb.XAdd(ctx, &redis.XAddArgs{
		Stream: streamReports,
		Values: payload,
	}).Result()
	return err
}

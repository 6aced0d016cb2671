package broker

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"docgate/pkg/logger"
)

type Client struct {
	redis  *redis.Client
	stream string
	maxLen int64
}

func NewClient(cfg Config) (*Client, error) {
	opt, err := redis.ParseURL(cfg.URI)
	if err != nil {
		return nil, err
	}

	rdb := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()

		return nil, err
	}

	logger.Info("connected to redis", "stream", cfg.StreamName)

	return &Client{
		redis:  rdb,
		stream: cfg.StreamName,
		maxLen: cfg.MaxLen,
	}, nil
}

func (c *Client) Close() error {
	return c.redis.Close()
}

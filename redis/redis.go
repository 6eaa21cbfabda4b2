package redis

import (
	"context"

	"github.com/cloudflare/cfssl/log"
	"github.com/go-redis/redis/v8"
)

// Client 转账回执的输出队列
type Client struct {
	ctx context.Context
	rdb *redis.Client
}

func NewClient(addr, password string, db int) *Client {
	return &Client{
		ctx: context.Background(),
		rdb: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
			DB:       db,
		}),
	}
}

func (c *Client) Ping() error {
	return c.rdb.Ping(c.ctx).Err()
}

// list push
func (c *Client) PushToList(key string, value string) error {
	err := c.rdb.RPush(c.ctx, key, value).Err()
	if err != nil {
		log.Errorf("receipt push to list error: %s", err)
		return err
	}
	return nil
}

func (c *Client) GetList(key string) ([]string, error) {
	return c.rdb.LRange(c.ctx, key, 0, -1).Result()
}

func (c *Client) Close() error {
	return c.rdb.Close()
}

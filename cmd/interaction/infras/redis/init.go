package redis

import (
	"context"

	"TokWave.com/config"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	goredis "github.com/redis/go-redis/v9"
)

var RedisDBInteraction *goredis.Client

func Load() {
	RedisDBInteraction = goredis.NewClient(&goredis.Options{
		Addr:     config.ConfigInfo.Redis.Addr,
		Password: config.ConfigInfo.Redis.Password,
		DB:       0,
	})
	if err := RedisDBInteraction.Ping(context.Background()).Err(); err != nil {
		hlog.Errorf("Failed to ping redis: %v", err)
	}
}

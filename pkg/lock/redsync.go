package lock

import (
	"context"
	"time"

	"TokWave.com/pkg/errno"
	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	goredislib "github.com/redis/go-redis/v9"
)

// RedsyncLocker 基于redis的分布式对锁 多实例部署时替换KeyMutex
type RedsyncLocker struct {
	rs     *redsync.Redsync
	expiry time.Duration
}

func NewRedsyncLocker(client goredislib.UniversalClient) *RedsyncLocker {
	pool := goredis.NewPool(client)
	return &RedsyncLocker{
		rs:     redsync.New(pool),
		expiry: 8 * time.Second,
	}
}

func (r *RedsyncLocker) LockPair(ctx context.Context, a, b int64) (func(), error) {
	mutex := r.rs.NewMutex(pairKey(a, b),
		redsync.WithExpiry(r.expiry),
		redsync.WithTries(3))
	if err := mutex.LockContext(ctx); err != nil {
		// 拿不到锁视为并发冲突 调用方整体重试
		return nil, errno.ConflictErr
	}
	return func() { _, _ = mutex.UnlockContext(ctx) }, nil
}

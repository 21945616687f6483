package lock

import (
	"context"
	"fmt"
	"sync"
)

// PairLocker 对无序用户对{a,b}加锁 关注状态机的双行写入必须在锁内完成
type PairLocker interface {
	LockPair(ctx context.Context, a, b int64) (func(), error)
}

func pairKey(a, b int64) string {
	if a > b {
		a, b = b, a
	}
	return fmt.Sprintf("follow_lock:%d:%d", a, b)
}

// KeyMutex 进程内的按键互斥锁 单实例部署以及测试使用
type KeyMutex struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewKeyMutex() *KeyMutex {
	return &KeyMutex{locks: make(map[string]*sync.Mutex)}
}

func (k *KeyMutex) LockPair(ctx context.Context, a, b int64) (func(), error) {
	key := pairKey(a, b)
	k.mu.Lock()
	m, ok := k.locks[key]
	if !ok {
		m = &sync.Mutex{}
		k.locks[key] = m
	}
	k.mu.Unlock()

	m.Lock()
	return m.Unlock, nil
}

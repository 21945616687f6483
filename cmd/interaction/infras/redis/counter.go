package redis

import (
	"context"
	"fmt"

	"TokWave.com/pkg/constants"
	"github.com/pkg/errors"
	goredis "github.com/redis/go-redis/v9"
)

// CounterStore 基于redis zset的排行计数缓存
// 它只是账本(ledger)之上的派生缓存 计数允许短暂漂移 精确读一律走数据库聚合
type CounterStore struct {
	client goredis.Cmdable
}

func NewCounterStore(client goredis.Cmdable) *CounterStore {
	return &CounterStore{client: client}
}

func commentLikeKey(videoId int64) string {
	return fmt.Sprintf("%s:%d", constants.KeyCommentLikeNum, videoId)
}

// IncrVideo 对某一视频计数族做原子增减 kind取constants里的Key*Num
func (s *CounterStore) IncrVideo(ctx context.Context, kind string, videoId, delta int64) error {
	if err := s.client.ZIncrBy(ctx, kind, float64(delta), member(videoId)).Err(); err != nil {
		return errors.Wrap(err, "zincrby counter")
	}
	return nil
}

// VideoCount 读计数 成员缺失按0处理 负数在读侧钳到0 写侧不钳 方便审计漂移
func (s *CounterStore) VideoCount(ctx context.Context, kind string, videoId int64) (int64, error) {
	score, err := s.client.ZScore(ctx, kind, member(videoId)).Result()
	if err != nil {
		if err == goredis.Nil {
			return 0, nil
		}
		return 0, errors.Wrap(err, "zscore counter")
	}
	return clamp(int64(score)), nil
}

// InitVideoCounters 发布视频时把四个计数族都播种为0
func (s *CounterStore) InitVideoCounters(ctx context.Context, videoId int64) error {
	for _, kind := range []string{
		constants.KeyLikeNum, constants.KeyShareNum,
		constants.KeyWatchNum, constants.KeyCommentNum,
	} {
		if err := s.client.ZAdd(ctx, kind, goredis.Z{Score: 0, Member: member(videoId)}).Err(); err != nil {
			return errors.Wrap(err, "seed video counter")
		}
	}
	return nil
}

// InitCommentCounter 新评论在所属视频的评论点赞族里播种一个0值
func (s *CounterStore) InitCommentCounter(ctx context.Context, videoId, commentId int64) error {
	err := s.client.ZAdd(ctx, commentLikeKey(videoId), goredis.Z{Score: 0, Member: member(commentId)}).Err()
	if err != nil {
		return errors.Wrap(err, "seed comment counter")
	}
	return nil
}

func (s *CounterStore) IncrCommentLike(ctx context.Context, videoId, commentId, delta int64) error {
	if err := s.client.ZIncrBy(ctx, commentLikeKey(videoId), float64(delta), member(commentId)).Err(); err != nil {
		return errors.Wrap(err, "zincrby comment like")
	}
	return nil
}

func (s *CounterStore) CommentLikeCount(ctx context.Context, videoId, commentId int64) (int64, error) {
	score, err := s.client.ZScore(ctx, commentLikeKey(videoId), member(commentId)).Result()
	if err != nil {
		if err == goredis.Nil {
			return 0, nil
		}
		return 0, errors.Wrap(err, "zscore comment like")
	}
	return clamp(int64(score)), nil
}

// SetVideo 对账时用账本里的精确值覆盖缓存值
func (s *CounterStore) SetVideo(ctx context.Context, kind string, videoId, value int64) error {
	err := s.client.ZAdd(ctx, kind, goredis.Z{Score: float64(value), Member: member(videoId)}).Err()
	if err != nil {
		return errors.Wrap(err, "zadd counter")
	}
	return nil
}

func member(id int64) string {
	return fmt.Sprintf("%d", id)
}

func clamp(v int64) int64 {
	if v < 0 {
		return 0
	}
	return v
}

package service

import (
	"context"

	"TokWave.com/pkg/constants"
	"github.com/cloudwego/hertz/pkg/common/hlog"
)

// SyncService 计数对账 用账本里的精确值覆盖计数缓存
// 账本写入和计数更新不是原子的 漂移窗口靠这里兜底修复
type SyncService struct {
	likes    LikeStore
	comments CommentStore
	watches  WatchStore
	shares   ShareStore
	counter  Counter
}

func NewSyncService(likes LikeStore, comments CommentStore, watches WatchStore,
	shares ShareStore, counter Counter) *SyncService {
	return &SyncService{
		likes:    likes,
		comments: comments,
		watches:  watches,
		shares:   shares,
		counter:  counter,
	}
}

// RebuildVideoCounters 重数一个视频的四个计数族
func (s *SyncService) RebuildVideoCounters(ctx context.Context, videoId int64) error {
	likes, err := s.likes.CountVideoLikes(ctx, videoId)
	if err != nil {
		return err
	}
	comments, err := s.comments.CountVideoComments(ctx, videoId)
	if err != nil {
		return err
	}
	watches, err := s.watches.CountWatches(ctx, videoId)
	if err != nil {
		return err
	}
	shares, err := s.shares.CountShares(ctx, videoId)
	if err != nil {
		return err
	}

	for kind, value := range map[string]int64{
		constants.KeyLikeNum:    likes,
		constants.KeyCommentNum: comments,
		constants.KeyWatchNum:   watches,
		constants.KeyShareNum:   shares,
	} {
		if err := s.counter.SetVideo(ctx, kind, videoId, value); err != nil {
			return err
		}
	}
	hlog.CtxInfof(ctx, "Rebuilt counters for video %d: like=%d comment=%d watch=%d share=%d",
		videoId, likes, comments, watches, shares)
	return nil
}

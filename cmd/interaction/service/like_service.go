package service

import (
	"context"
	"time"

	"TokWave.com/cmd/model"
	"TokWave.com/pkg/constants"
	"TokWave.com/pkg/errno"
	"TokWave.com/pkg/mq"
	"TokWave.com/pkg/utils"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/google/uuid"
)

// LikeService 点赞开关 账本是事实来源 计数缓存跟着账本走
type LikeService struct {
	users    UserStore
	videos   VideoStore
	comments CommentStore
	likes    LikeStore
	counter  Counter
	producer EventPublisher
}

func NewLikeService(users UserStore, videos VideoStore, comments CommentStore,
	likes LikeStore, counter Counter, producer EventPublisher) *LikeService {
	return &LikeService{
		users:    users,
		videos:   videos,
		comments: comments,
		likes:    likes,
		counter:  counter,
		producer: producer,
	}
}

// ToggleVideoLike 有记录则删并减计数 无记录则建并加计数
// 账本写入和计数更新跨两个存储 不做原子保证 计数失败只记日志
func (s *LikeService) ToggleVideoLike(ctx context.Context, userId, videoId int64) (liked bool, err error) {
	if err := s.checkUserAndVideo(ctx, userId, videoId); err != nil {
		return false, err
	}

	like, err := utils.RetryRead(ctx, func() (*model.Like, error) {
		return s.likes.GetVideoLike(ctx, userId, videoId)
	})
	if err != nil {
		hlog.CtxErrorf(ctx, "Failed to query video like: %v", err)
		return false, storeErr(err)
	}

	if like != nil {
		if err := s.likes.DeleteLike(ctx, like.LikeId); err != nil {
			hlog.CtxErrorf(ctx, "Failed to delete like: %v", err)
			return false, storeErr(err)
		}
		if err := s.counter.IncrVideo(ctx, constants.KeyLikeNum, videoId, -1); err != nil {
			hlog.CtxWarnf(ctx, "Failed to decrement like counter for video %d: %v", videoId, err)
		}
		s.publishLikeEvent(ctx, userId, videoId, "unlike")
		return false, nil
	}

	if err := s.likes.CreateLike(ctx, &model.Like{
		UserId:  userId,
		VideoId: videoId,
		IsRead:  false,
	}); err != nil {
		hlog.CtxErrorf(ctx, "Failed to create like: %v", err)
		return false, storeErr(err)
	}
	if err := s.counter.IncrVideo(ctx, constants.KeyLikeNum, videoId, 1); err != nil {
		hlog.CtxWarnf(ctx, "Failed to increment like counter for video %d: %v", videoId, err)
	}
	s.publishLikeEvent(ctx, userId, videoId, "like")
	return true, nil
}

// ToggleCommentLike 评论点赞 计数记在所属视频的评论点赞族里
func (s *LikeService) ToggleCommentLike(ctx context.Context, userId, videoId, commentId int64) (liked bool, err error) {
	if err := s.checkUser(ctx, userId); err != nil {
		return false, err
	}
	ok, err := utils.RetryRead(ctx, func() (bool, error) {
		return s.comments.CommentExists(ctx, commentId)
	})
	if err != nil {
		hlog.CtxErrorf(ctx, "Failed to check comment: %v", err)
		return false, storeErr(err)
	}
	if !ok {
		return false, errno.CommentNotExistErr
	}

	like, err := utils.RetryRead(ctx, func() (*model.Like, error) {
		return s.likes.GetCommentLike(ctx, userId, commentId)
	})
	if err != nil {
		hlog.CtxErrorf(ctx, "Failed to query comment like: %v", err)
		return false, storeErr(err)
	}

	if like != nil {
		if err := s.likes.DeleteLike(ctx, like.LikeId); err != nil {
			hlog.CtxErrorf(ctx, "Failed to delete comment like: %v", err)
			return false, storeErr(err)
		}
		if err := s.counter.IncrCommentLike(ctx, videoId, commentId, -1); err != nil {
			hlog.CtxWarnf(ctx, "Failed to decrement comment like counter: %v", err)
		}
		return false, nil
	}

	if err := s.likes.CreateLike(ctx, &model.Like{
		UserId:    userId,
		VideoId:   videoId,
		CommentId: commentId,
		IsRead:    false,
	}); err != nil {
		hlog.CtxErrorf(ctx, "Failed to create comment like: %v", err)
		return false, storeErr(err)
	}
	if err := s.counter.IncrCommentLike(ctx, videoId, commentId, 1); err != nil {
		hlog.CtxWarnf(ctx, "Failed to increment comment like counter: %v", err)
	}
	return true, nil
}

func (s *LikeService) IsVideoLiked(ctx context.Context, userId, videoId int64) (bool, error) {
	if err := s.checkUserAndVideo(ctx, userId, videoId); err != nil {
		return false, err
	}
	like, err := utils.RetryRead(ctx, func() (*model.Like, error) {
		return s.likes.GetVideoLike(ctx, userId, videoId)
	})
	if err != nil {
		hlog.CtxErrorf(ctx, "Failed to query video like: %v", err)
		return false, storeErr(err)
	}
	return like != nil, nil
}

func (s *LikeService) IsCommentLiked(ctx context.Context, userId, commentId int64) (bool, error) {
	if err := s.checkUser(ctx, userId); err != nil {
		return false, err
	}
	ok, err := utils.RetryRead(ctx, func() (bool, error) {
		return s.comments.CommentExists(ctx, commentId)
	})
	if err != nil {
		hlog.CtxErrorf(ctx, "Failed to check comment: %v", err)
		return false, storeErr(err)
	}
	if !ok {
		return false, errno.CommentNotExistErr
	}
	like, err := utils.RetryRead(ctx, func() (*model.Like, error) {
		return s.likes.GetCommentLike(ctx, userId, commentId)
	})
	if err != nil {
		hlog.CtxErrorf(ctx, "Failed to query comment like: %v", err)
		return false, storeErr(err)
	}
	return like != nil, nil
}

// TotalLikesReceived 精确总赞数 走账本join 不走计数缓存
func (s *LikeService) TotalLikesReceived(ctx context.Context, userId int64) (int64, error) {
	if err := s.checkUser(ctx, userId); err != nil {
		return 0, err
	}
	total, err := utils.RetryRead(ctx, func() (int64, error) {
		return s.likes.TotalLikesReceived(ctx, userId)
	})
	if err != nil {
		hlog.CtxErrorf(ctx, "Failed to aggregate likes received: %v", err)
		return 0, storeErr(err)
	}
	return total, nil
}

func (s *LikeService) checkUser(ctx context.Context, userId int64) error {
	ok, err := utils.RetryRead(ctx, func() (bool, error) {
		return s.users.UserExists(ctx, userId)
	})
	if err != nil {
		hlog.CtxErrorf(ctx, "Failed to check user: %v", err)
		return storeErr(err)
	}
	if !ok {
		return errno.UserNotExistErr
	}
	return nil
}

func (s *LikeService) checkUserAndVideo(ctx context.Context, userId, videoId int64) error {
	if err := s.checkUser(ctx, userId); err != nil {
		return err
	}
	ok, err := utils.RetryRead(ctx, func() (bool, error) {
		return s.videos.VideoExists(ctx, videoId)
	})
	if err != nil {
		hlog.CtxErrorf(ctx, "Failed to check video: %v", err)
		return storeErr(err)
	}
	if !ok {
		return errno.VideoNotExistErr
	}
	return nil
}

func (s *LikeService) publishLikeEvent(ctx context.Context, userId, videoId int64, action string) {
	publishEvent(ctx, s.producer, &mq.EngagementEvent{
		Kind:      "video_like",
		Action:    action,
		UserId:    userId,
		VideoId:   videoId,
		Timestamp: time.Now().Unix(),
		EventId:   uuid.New().String(),
	})
}

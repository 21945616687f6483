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

type CommentService struct {
	users    UserStore
	videos   VideoStore
	comments CommentStore
	counter  Counter
	producer EventPublisher
}

func NewCommentService(users UserStore, videos VideoStore, comments CommentStore,
	counter Counter, producer EventPublisher) *CommentService {
	return &CommentService{
		users:    users,
		videos:   videos,
		comments: comments,
		counter:  counter,
		producer: producer,
	}
}

/* 先查看评论者和被评论视频是否存在 不存在则报错
 * replyId不为0表示回复评论 被回复的评论必须存在
 * 写入成功后视频评论计数加一 并在该视频的评论点赞族里为新评论播种0值
 * 这样后续的评论点赞才有计数可加
 */
func (s *CommentService) PostComment(ctx context.Context, userId, videoId int64, content string, replyId int64) (*model.Comment, error) {
	ok, err := utils.RetryRead(ctx, func() (bool, error) {
		return s.users.UserExists(ctx, userId)
	})
	if err != nil {
		hlog.CtxErrorf(ctx, "Failed to check user: %v", err)
		return nil, storeErr(err)
	}
	if !ok {
		return nil, errno.UserNotExistErr
	}

	ok, err = utils.RetryRead(ctx, func() (bool, error) {
		return s.videos.VideoExists(ctx, videoId)
	})
	if err != nil {
		hlog.CtxErrorf(ctx, "Failed to check video: %v", err)
		return nil, storeErr(err)
	}
	if !ok {
		return nil, errno.VideoNotExistErr
	}

	if replyId != 0 {
		ok, err := utils.RetryRead(ctx, func() (bool, error) {
			return s.comments.CommentExists(ctx, replyId)
		})
		if err != nil {
			hlog.CtxErrorf(ctx, "Failed to check parent comment: %v", err)
			return nil, storeErr(err)
		}
		if !ok {
			return nil, errno.CommentNotExistErr
		}
	}

	comment := &model.Comment{
		UserId:  userId,
		VideoId: videoId,
		ReplyId: replyId,
		Content: content,
		IsRead:  false,
	}
	if err := s.comments.CreateComment(ctx, comment); err != nil {
		hlog.CtxErrorf(ctx, "Failed to create comment: %v", err)
		return nil, storeErr(err)
	}

	if err := s.counter.IncrVideo(ctx, constants.KeyCommentNum, videoId, 1); err != nil {
		hlog.CtxWarnf(ctx, "Failed to increment comment counter for video %d: %v", videoId, err)
	}
	if err := s.counter.InitCommentCounter(ctx, videoId, comment.CommentId); err != nil {
		hlog.CtxWarnf(ctx, "Failed to seed comment like counter for comment %d: %v", comment.CommentId, err)
	}

	publishEvent(ctx, s.producer, &mq.EngagementEvent{
		Kind:      "comment",
		Action:    "create",
		UserId:    userId,
		VideoId:   videoId,
		CommentId: comment.CommentId,
		Timestamp: time.Now().Unix(),
		EventId:   uuid.New().String(),
	})
	return comment, nil
}

package service

import (
	"context"

	"TokWave.com/cmd/model"
	"TokWave.com/pkg/errno"
	"TokWave.com/pkg/mq"
	"TokWave.com/pkg/utils"
	"github.com/cloudwego/hertz/pkg/common/hlog"
)

// storeErr 超时类失败归为可重试的Unavailable 其余是确定的存储错误
func storeErr(err error) errno.ErrNo {
	if utils.IsTimeoutErr(err) {
		return errno.UnavailableErr
	}
	return errno.MysqlErr
}

// counterErr 计数缓存读失败的归类
func counterErr(err error) errno.ErrNo {
	if utils.IsTimeoutErr(err) {
		return errno.UnavailableErr
	}
	return errno.RedisErr
}

// 互动服务依赖的窄接口 dal/db和infras/redis提供实现 测试里用内存假实现

type UserStore interface {
	UserExists(ctx context.Context, userId int64) (bool, error)
}

type VideoStore interface {
	VideoExists(ctx context.Context, videoId int64) (bool, error)
	CreateVideo(ctx context.Context, video *model.Video) error
}

type LikeStore interface {
	GetVideoLike(ctx context.Context, userId, videoId int64) (*model.Like, error)
	GetCommentLike(ctx context.Context, userId, commentId int64) (*model.Like, error)
	CreateLike(ctx context.Context, like *model.Like) error
	DeleteLike(ctx context.Context, likeId int64) error
	CountVideoLikes(ctx context.Context, videoId int64) (int64, error)
	TotalLikesReceived(ctx context.Context, userId int64) (int64, error)
}

type CommentStore interface {
	CreateComment(ctx context.Context, comment *model.Comment) error
	CommentExists(ctx context.Context, commentId int64) (bool, error)
	CountVideoComments(ctx context.Context, videoId int64) (int64, error)
}

type WatchStore interface {
	CreateWatch(ctx context.Context, userId, videoId int64) error
	CountWatches(ctx context.Context, videoId int64) (int64, error)
}

type ShareStore interface {
	CreateShare(ctx context.Context, userId, videoId int64) error
	CountShares(ctx context.Context, videoId int64) (int64, error)
}

type MentionStore interface {
	CreateMention(ctx context.Context, mention *model.Mention) error
}

// Counter 计数缓存 增减失败不应让业务写入失败
type Counter interface {
	IncrVideo(ctx context.Context, kind string, videoId, delta int64) error
	VideoCount(ctx context.Context, kind string, videoId int64) (int64, error)
	InitVideoCounters(ctx context.Context, videoId int64) error
	InitCommentCounter(ctx context.Context, videoId, commentId int64) error
	IncrCommentLike(ctx context.Context, videoId, commentId, delta int64) error
	CommentLikeCount(ctx context.Context, videoId, commentId int64) (int64, error)
	SetVideo(ctx context.Context, kind string, videoId, value int64) error
}

type EventPublisher interface {
	PublishEngagementEvent(ctx context.Context, event *mq.EngagementEvent) error
}

// publishEvent 事件发布是尽力而为 失败只记日志
func publishEvent(ctx context.Context, producer EventPublisher, event *mq.EngagementEvent) {
	if producer == nil {
		return
	}
	if err := producer.PublishEngagementEvent(ctx, event); err != nil {
		hlog.CtxWarnf(ctx, "Failed to publish engagement event: %v", err)
	}
}

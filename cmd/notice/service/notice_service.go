package service

import (
	"context"
	"sort"

	"TokWave.com/cmd/model"
	"TokWave.com/pkg/constants"
	"TokWave.com/pkg/errno"
	"TokWave.com/pkg/utils"
	"github.com/cloudwego/hertz/pkg/common/hlog"
)

const (
	ChannelFans     = "fans"
	ChannelLikes    = "likes"
	ChannelComments = "comments"
	ChannelMentions = "mentions"
)

type UserStore interface {
	UserExists(ctx context.Context, userId int64) (bool, error)
}

// NoticeStore 通知聚合的账本查询 全部按接收者维度
type NoticeStore interface {
	FanUnreadCount(ctx context.Context, userId int64) (int64, error)
	MarkFansRead(ctx context.Context, userId int64) error

	VideoLikeUnreadCount(ctx context.Context, userId int64) (int64, error)
	CommentLikeUnreadCount(ctx context.Context, userId int64) (int64, error)
	VideoLikesPage(ctx context.Context, userId, page int64) ([]model.LikeNotice, error)
	CommentLikesPage(ctx context.Context, userId, page int64) ([]model.LikeNotice, error)
	MarkVideoLikesRead(ctx context.Context, userId int64) error
	MarkCommentLikesRead(ctx context.Context, userId int64) error

	VideoCommentUnreadCount(ctx context.Context, userId int64) (int64, error)
	ReplyUnreadCount(ctx context.Context, userId int64) (int64, error)
	VideoCommentsPage(ctx context.Context, userId, page int64) ([]model.CommentNotice, error)
	ReplyCommentsPage(ctx context.Context, userId, page int64) ([]model.CommentNotice, error)
	MarkVideoCommentsRead(ctx context.Context, userId int64) error
	MarkRepliesRead(ctx context.Context, userId int64) error

	MentionUnreadCount(ctx context.Context, userId int64) (int64, error)
	MentionsPage(ctx context.Context, userId, page int64) ([]model.MentionNotice, error)
	MarkMentionsRead(ctx context.Context, userId int64) error

	FollowedVideoIds(ctx context.Context, userId int64) ([]int64, error)
	WatchedVideoIds(ctx context.Context, userId int64) ([]int64, error)
	BulkCreateWatches(ctx context.Context, userId int64, videoIds []int64) error
}

// Counter 一键看完时同步补观看计数
type Counter interface {
	IncrVideo(ctx context.Context, kind string, videoId, delta int64) error
}

type NoticeService struct {
	users   UserStore
	store   NoticeStore
	counter Counter
}

func NewNoticeService(users UserStore, store NoticeStore, counter Counter) *NoticeService {
	return &NoticeService{users: users, store: store, counter: counter}
}

// storeErr 超时类失败归为可重试的Unavailable 其余是确定的存储错误
func storeErr(err error) errno.ErrNo {
	if utils.IsTimeoutErr(err) {
		return errno.UnavailableErr
	}
	return errno.MysqlErr
}

func (s *NoticeService) checkUser(ctx context.Context, userId int64) error {
	ok, err := utils.RetryRead(ctx, func() (bool, error) {
		return s.users.UserExists(ctx, userId)
	})
	if err != nil {
		hlog.CtxErrorf(ctx, "Failed to check user %d: %v", userId, err)
		return storeErr(err)
	}
	if !ok {
		return errno.UserNotExistErr
	}
	return nil
}

// unreadCount 未读子查询共用的重试加错误归类
func (s *NoticeService) unreadCount(ctx context.Context, what string, userId int64,
	fn func(context.Context, int64) (int64, error)) (int64, error) {
	count, err := utils.RetryRead(ctx, func() (int64, error) {
		return fn(ctx, userId)
	})
	if err != nil {
		hlog.CtxErrorf(ctx, "Failed to count unread %s for user %d: %v", what, userId, err)
		return 0, storeErr(err)
	}
	return count, nil
}

// GetUnreadCounts 四个频道的未读数加上关注动态数 一次查全
// 每个子查询之间检查ctx 取消了就丢弃半成品 不返回拼了一半的结果
func (s *NoticeService) GetUnreadCounts(ctx context.Context, userId int64) (*model.UnreadCounts, error) {
	if err := s.checkUser(ctx, userId); err != nil {
		return nil, err
	}

	counts := &model.UnreadCounts{}

	fans, err := s.unreadCount(ctx, "fans", userId, s.store.FanUnreadCount)
	if err != nil {
		return nil, err
	}
	counts.Fans = fans
	if err := ctx.Err(); err != nil {
		return nil, errno.ConvertErr(err)
	}

	videoLikes, err := s.unreadCount(ctx, "video likes", userId, s.store.VideoLikeUnreadCount)
	if err != nil {
		return nil, err
	}
	commentLikes, err := s.unreadCount(ctx, "comment likes", userId, s.store.CommentLikeUnreadCount)
	if err != nil {
		return nil, err
	}
	counts.Likes = videoLikes + commentLikes
	if err := ctx.Err(); err != nil {
		return nil, errno.ConvertErr(err)
	}

	videoComments, err := s.unreadCount(ctx, "video comments", userId, s.store.VideoCommentUnreadCount)
	if err != nil {
		return nil, err
	}
	replies, err := s.unreadCount(ctx, "replies", userId, s.store.ReplyUnreadCount)
	if err != nil {
		return nil, err
	}
	counts.Comments = videoComments + replies
	if err := ctx.Err(); err != nil {
		return nil, errno.ConvertErr(err)
	}

	mentions, err := s.unreadCount(ctx, "mentions", userId, s.store.MentionUnreadCount)
	if err != nil {
		return nil, err
	}
	counts.Mentions = mentions
	if err := ctx.Err(); err != nil {
		return nil, errno.ConvertErr(err)
	}

	news, err := s.followedNewsCount(ctx, userId)
	if err != nil {
		return nil, err
	}
	counts.FollowedNews = news
	return counts, nil
}

// followedNewsCount 关注的人发的视频里我还没看过的数量 集合差
func (s *NoticeService) followedNewsCount(ctx context.Context, userId int64) (int64, error) {
	unseen, err := s.unseenFollowedVideos(ctx, userId)
	if err != nil {
		return 0, err
	}
	return int64(len(unseen)), nil
}

func (s *NoticeService) unseenFollowedVideos(ctx context.Context, userId int64) ([]int64, error) {
	followed, err := utils.RetryRead(ctx, func() ([]int64, error) {
		return s.store.FollowedVideoIds(ctx, userId)
	})
	if err != nil {
		hlog.CtxErrorf(ctx, "Failed to query followed videos for user %d: %v", userId, err)
		return nil, storeErr(err)
	}
	watched, err := utils.RetryRead(ctx, func() ([]int64, error) {
		return s.store.WatchedVideoIds(ctx, userId)
	})
	if err != nil {
		hlog.CtxErrorf(ctx, "Failed to query watched videos for user %d: %v", userId, err)
		return nil, storeErr(err)
	}

	seen := make(map[int64]struct{}, len(watched))
	for _, id := range watched {
		seen[id] = struct{}{}
	}
	unseen := make([]int64, 0)
	for _, id := range followed {
		if _, ok := seen[id]; !ok {
			unseen = append(unseen, id)
		}
	}
	return unseen, nil
}

// FollowedNewsCount 单独暴露给客户端的小红点接口
func (s *NoticeService) FollowedNewsCount(ctx context.Context, userId int64) (int64, error) {
	if err := s.checkUser(ctx, userId); err != nil {
		return 0, err
	}
	return s.followedNewsCount(ctx, userId)
}

// MarkAllRead 把一个频道的未读全部置为已读 重复调用无副作用
func (s *NoticeService) MarkAllRead(ctx context.Context, userId int64, channel string) error {
	if err := s.checkUser(ctx, userId); err != nil {
		return err
	}

	var err error
	switch channel {
	case ChannelFans:
		err = s.store.MarkFansRead(ctx, userId)
	case ChannelLikes:
		if err = s.store.MarkVideoLikesRead(ctx, userId); err == nil {
			err = s.store.MarkCommentLikesRead(ctx, userId)
		}
	case ChannelComments:
		if err = s.store.MarkVideoCommentsRead(ctx, userId); err == nil {
			err = s.store.MarkRepliesRead(ctx, userId)
		}
	case ChannelMentions:
		err = s.store.MarkMentionsRead(ctx, userId)
	default:
		return errno.RequestErr.WithMessage("unknown notice channel")
	}
	if err != nil {
		hlog.CtxErrorf(ctx, "Failed to mark %s read for user %d: %v", channel, userId, err)
		return storeErr(err)
	}
	return nil
}

// LikesPage 赞频道的一页 视频赞和评论赞各取一页后合流 按时间倒序
// 不截断 一页最多两个子页的量 截断会让挤出去的行永远翻不到
func (s *NoticeService) LikesPage(ctx context.Context, userId, page int64) ([]model.LikeNotice, error) {
	if err := s.checkUser(ctx, userId); err != nil {
		return nil, err
	}

	videoLikes, err := utils.RetryRead(ctx, func() ([]model.LikeNotice, error) {
		return s.store.VideoLikesPage(ctx, userId, page)
	})
	if err != nil {
		hlog.CtxErrorf(ctx, "Failed to query video likes for user %d: %v", userId, err)
		return nil, storeErr(err)
	}
	commentLikes, err := utils.RetryRead(ctx, func() ([]model.LikeNotice, error) {
		return s.store.CommentLikesPage(ctx, userId, page)
	})
	if err != nil {
		hlog.CtxErrorf(ctx, "Failed to query comment likes for user %d: %v", userId, err)
		return nil, storeErr(err)
	}

	merged := append(videoLikes, commentLikes...)
	sort.Slice(merged, func(i, j int) bool {
		return merged[i].CreatedAt.After(merged[j].CreatedAt)
	})
	return merged, nil
}

// CommentsPage 评论频道的一页 视频评论和回复各取一页后合流 按时间倒序
func (s *NoticeService) CommentsPage(ctx context.Context, userId, page int64) ([]model.CommentNotice, error) {
	if err := s.checkUser(ctx, userId); err != nil {
		return nil, err
	}

	videoComments, err := utils.RetryRead(ctx, func() ([]model.CommentNotice, error) {
		return s.store.VideoCommentsPage(ctx, userId, page)
	})
	if err != nil {
		hlog.CtxErrorf(ctx, "Failed to query video comments for user %d: %v", userId, err)
		return nil, storeErr(err)
	}
	replies, err := utils.RetryRead(ctx, func() ([]model.CommentNotice, error) {
		return s.store.ReplyCommentsPage(ctx, userId, page)
	})
	if err != nil {
		hlog.CtxErrorf(ctx, "Failed to query replies for user %d: %v", userId, err)
		return nil, storeErr(err)
	}

	merged := append(videoComments, replies...)
	sort.Slice(merged, func(i, j int) bool {
		return merged[i].CreatedAt.After(merged[j].CreatedAt)
	})
	return merged, nil
}

// MentionsPage @频道的一页
func (s *NoticeService) MentionsPage(ctx context.Context, userId, page int64) ([]model.MentionNotice, error) {
	if err := s.checkUser(ctx, userId); err != nil {
		return nil, err
	}
	list, err := utils.RetryRead(ctx, func() ([]model.MentionNotice, error) {
		return s.store.MentionsPage(ctx, userId, page)
	})
	if err != nil {
		hlog.CtxErrorf(ctx, "Failed to query mentions for user %d: %v", userId, err)
		return nil, storeErr(err)
	}
	return list, nil
}

// WatchAllFollowedNews 一键看完关注动态
// 给每个没看过的视频补一条观看记录 并把观看计数各加一
func (s *NoticeService) WatchAllFollowedNews(ctx context.Context, userId int64) error {
	if err := s.checkUser(ctx, userId); err != nil {
		return err
	}

	unseen, err := s.unseenFollowedVideos(ctx, userId)
	if err != nil {
		return err
	}
	if len(unseen) == 0 {
		return nil
	}

	if err := s.store.BulkCreateWatches(ctx, userId, unseen); err != nil {
		hlog.CtxErrorf(ctx, "Failed to bulk create watches for user %d: %v", userId, err)
		return storeErr(err)
	}
	for _, videoId := range unseen {
		if err := s.counter.IncrVideo(ctx, constants.KeyWatchNum, videoId, 1); err != nil {
			hlog.CtxWarnf(ctx, "Failed to bump watch counter for video %d: %v", videoId, err)
		}
	}
	return nil
}

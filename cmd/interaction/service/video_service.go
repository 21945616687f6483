package service

import (
	"context"
	"regexp"
	"time"

	"TokWave.com/cmd/model"
	"TokWave.com/pkg/constants"
	"TokWave.com/pkg/errno"
	"TokWave.com/pkg/mq"
	"TokWave.com/pkg/utils"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/google/uuid"
)

var (
	regVideoUrl = regexp.MustCompile(`(?i)^https?.+\.(mp4|avi|flv|mpg|rm|mov|asf|3gp|mkv|rmvb)$`)
	regCoverUrl = regexp.MustCompile(`(?i)^https?.+\.(jpg|jpeg|gif|png|bmp)$`)
)

// VideoService 视频发布只落元数据 媒体文件本身由外部存储负责
type VideoService struct {
	users    UserStore
	videos   VideoStore
	watches  WatchStore
	shares   ShareStore
	counter  Counter
	producer EventPublisher
}

func NewVideoService(users UserStore, videos VideoStore, watches WatchStore,
	shares ShareStore, counter Counter, producer EventPublisher) *VideoService {
	return &VideoService{
		users:    users,
		videos:   videos,
		watches:  watches,
		shares:   shares,
		counter:  counter,
		producer: producer,
	}
}

// PublishVideo 校验链接格式后落库 同时把四个计数族播种为0
// 不播种的话后面的读取会拿到"不存在"而不是0
func (s *VideoService) PublishVideo(ctx context.Context, userId int64, cover, path, desc string) (*model.Video, error) {
	if err := s.checkUser(ctx, userId); err != nil {
		return nil, err
	}
	if !regCoverUrl.MatchString(cover) || !regVideoUrl.MatchString(path) {
		return nil, errno.RequestErr.WithMessage("video path/cover url format invalid")
	}

	video := &model.Video{
		UserId:     userId,
		VideoCover: cover,
		VideoPath:  path,
		VideoDesc:  desc,
	}
	if err := s.videos.CreateVideo(ctx, video); err != nil {
		hlog.CtxErrorf(ctx, "Failed to create video: %v", err)
		return nil, storeErr(err)
	}
	if err := s.counter.InitVideoCounters(ctx, video.VideoId); err != nil {
		hlog.CtxWarnf(ctx, "Failed to seed counters for video %d: %v", video.VideoId, err)
	}
	return video, nil
}

// RecordWatch 观看记录追加写 允许同一用户反复观看
func (s *VideoService) RecordWatch(ctx context.Context, userId, videoId int64) error {
	if err := s.checkUserAndVideo(ctx, userId, videoId); err != nil {
		return err
	}
	if err := s.watches.CreateWatch(ctx, userId, videoId); err != nil {
		hlog.CtxErrorf(ctx, "Failed to create watch: %v", err)
		return storeErr(err)
	}
	if err := s.counter.IncrVideo(ctx, constants.KeyWatchNum, videoId, 1); err != nil {
		hlog.CtxWarnf(ctx, "Failed to increment watch counter for video %d: %v", videoId, err)
	}
	s.publishVideoEvent(ctx, userId, videoId, "watch")
	return nil
}

func (s *VideoService) RecordShare(ctx context.Context, userId, videoId int64) error {
	if err := s.checkUserAndVideo(ctx, userId, videoId); err != nil {
		return err
	}
	if err := s.shares.CreateShare(ctx, userId, videoId); err != nil {
		hlog.CtxErrorf(ctx, "Failed to create share: %v", err)
		return storeErr(err)
	}
	if err := s.counter.IncrVideo(ctx, constants.KeyShareNum, videoId, 1); err != nil {
		hlog.CtxWarnf(ctx, "Failed to increment share counter for video %d: %v", videoId, err)
	}
	s.publishVideoEvent(ctx, userId, videoId, "share")
	return nil
}

// VideoStats 从计数缓存拿四个计数 这是近似值 只做展示
func (s *VideoService) VideoStats(ctx context.Context, videoId int64) (*model.WSLCNum, error) {
	stats := &model.WSLCNum{}
	counts := []struct {
		kind string
		dst  *int64
	}{
		{constants.KeyWatchNum, &stats.WatchNum},
		{constants.KeyShareNum, &stats.ShareNum},
		{constants.KeyLikeNum, &stats.LikeNum},
		{constants.KeyCommentNum, &stats.CommentNum},
	}
	for _, c := range counts {
		value, err := utils.RetryRead(ctx, func() (int64, error) {
			return s.counter.VideoCount(ctx, c.kind, videoId)
		})
		if err != nil {
			hlog.CtxErrorf(ctx, "Failed to read %s counter for video %d: %v", c.kind, videoId, err)
			return nil, counterErr(err)
		}
		*c.dst = value
	}
	return stats, nil
}

func (s *VideoService) checkUser(ctx context.Context, userId int64) error {
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

func (s *VideoService) checkUserAndVideo(ctx context.Context, userId, videoId int64) error {
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

func (s *VideoService) publishVideoEvent(ctx context.Context, userId, videoId int64, kind string) {
	publishEvent(ctx, s.producer, &mq.EngagementEvent{
		Kind:      kind,
		UserId:    userId,
		VideoId:   videoId,
		Timestamp: time.Now().Unix(),
		EventId:   uuid.New().String(),
	})
}

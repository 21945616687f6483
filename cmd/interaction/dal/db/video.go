package db

import (
	"context"
	"time"

	"TokWave.com/cmd/model"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type VideoRepo struct {
	db *gorm.DB
}

func NewVideoRepo(db *gorm.DB) *VideoRepo {
	return &VideoRepo{db: db}
}

func (r *VideoRepo) VideoExists(ctx context.Context, videoId int64) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Video{}).
		Where("video_id = ?", videoId).Count(&count).Error; err != nil {
		return false, errors.Wrap(err, "query video")
	}
	return count > 0, nil
}

func (r *VideoRepo) CreateVideo(ctx context.Context, video *model.Video) error {
	if video.VideoId == 0 {
		video.VideoId = int64(uuid.New().ID())
	}
	if video.CreatedAt.IsZero() {
		video.CreatedAt = time.Now()
	}
	if err := r.db.WithContext(ctx).Create(video).Error; err != nil {
		return errors.Wrap(err, "create video")
	}
	return nil
}

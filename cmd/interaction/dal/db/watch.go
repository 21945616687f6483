package db

import (
	"context"
	"time"

	"TokWave.com/cmd/model"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type WatchRepo struct {
	db *gorm.DB
}

func NewWatchRepo(db *gorm.DB) *WatchRepo {
	return &WatchRepo{db: db}
}

// CreateWatch 观看是追加写 重复观看就是多条记录
func (r *WatchRepo) CreateWatch(ctx context.Context, userId, videoId int64) error {
	if err := r.db.WithContext(ctx).Create(&model.Watch{
		UserId:    userId,
		VideoId:   videoId,
		CreatedAt: time.Now(),
	}).Error; err != nil {
		return errors.Wrap(err, "create watch")
	}
	return nil
}

func (r *WatchRepo) CountWatches(ctx context.Context, videoId int64) (count int64, err error) {
	if err := r.db.WithContext(ctx).Model(&model.Watch{}).
		Where("video_id = ?", videoId).Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "count watches")
	}
	return count, nil
}

type ShareRepo struct {
	db *gorm.DB
}

func NewShareRepo(db *gorm.DB) *ShareRepo {
	return &ShareRepo{db: db}
}

func (r *ShareRepo) CreateShare(ctx context.Context, userId, videoId int64) error {
	if err := r.db.WithContext(ctx).Create(&model.Share{
		UserId:    userId,
		VideoId:   videoId,
		CreatedAt: time.Now(),
	}).Error; err != nil {
		return errors.Wrap(err, "create share")
	}
	return nil
}

func (r *ShareRepo) CountShares(ctx context.Context, videoId int64) (count int64, err error) {
	if err := r.db.WithContext(ctx).Model(&model.Share{}).
		Where("video_id = ?", videoId).Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "count shares")
	}
	return count, nil
}

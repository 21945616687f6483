package db

import (
	"context"
	"time"

	"TokWave.com/cmd/model"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type LikeRepo struct {
	db *gorm.DB
}

func NewLikeRepo(db *gorm.DB) *LikeRepo {
	return &LikeRepo{db: db}
}

// GetVideoLike 某用户对某视频的点赞记录 comment_id=0表示点赞对象是视频
func (r *LikeRepo) GetVideoLike(ctx context.Context, userId, videoId int64) (*model.Like, error) {
	like := &model.Like{}
	err := r.db.WithContext(ctx).
		Where("user_id = ? And video_id = ? And comment_id = 0", userId, videoId).
		First(like).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "query video like")
	}
	return like, nil
}

func (r *LikeRepo) GetCommentLike(ctx context.Context, userId, commentId int64) (*model.Like, error) {
	like := &model.Like{}
	err := r.db.WithContext(ctx).
		Where("user_id = ? And comment_id = ?", userId, commentId).
		First(like).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "query comment like")
	}
	return like, nil
}

func (r *LikeRepo) CreateLike(ctx context.Context, like *model.Like) error {
	if like.LikeId == 0 {
		like.LikeId = int64(uuid.New().ID())
	}
	if like.CreatedAt.IsZero() {
		like.CreatedAt = time.Now()
	}
	if err := r.db.WithContext(ctx).Create(like).Error; err != nil {
		return errors.Wrap(err, "create like")
	}
	return nil
}

// DeleteLike 取消点赞是硬删除
func (r *LikeRepo) DeleteLike(ctx context.Context, likeId int64) error {
	if err := r.db.WithContext(ctx).Where("like_id = ?", likeId).
		Delete(&model.Like{}).Error; err != nil {
		return errors.Wrap(err, "delete like")
	}
	return nil
}

// CountVideoLikes 账本侧的精确视频点赞数 对账用
func (r *LikeRepo) CountVideoLikes(ctx context.Context, videoId int64) (count int64, err error) {
	if err := r.db.WithContext(ctx).Model(&model.Like{}).
		Where("video_id = ? And comment_id = 0", videoId).Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "count video likes")
	}
	return count, nil
}

// TotalLikesReceived 用户收到的总赞数 = 名下视频被赞 + 名下评论被赞
// 这是精确读 必须join账本 不允许走计数缓存
func (r *LikeRepo) TotalLikesReceived(ctx context.Context, userId int64) (int64, error) {
	var videoLikes, commentLikes int64
	err := r.db.WithContext(ctx).Raw(`select count(*) from videos
		inner join likes on videos.video_id = likes.video_id and likes.comment_id = 0
		where videos.user_id = ?`, userId).Scan(&videoLikes).Error
	if err != nil {
		return 0, errors.Wrap(err, "count likes on videos")
	}
	err = r.db.WithContext(ctx).Raw(`select count(*) from comments
		inner join likes on comments.comment_id = likes.comment_id
		where comments.user_id = ?`, userId).Scan(&commentLikes).Error
	if err != nil {
		return 0, errors.Wrap(err, "count likes on comments")
	}
	return videoLikes + commentLikes, nil
}

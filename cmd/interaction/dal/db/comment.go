package db

import (
	"context"
	"time"

	"TokWave.com/cmd/model"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type CommentRepo struct {
	db *gorm.DB
}

func NewCommentRepo(db *gorm.DB) *CommentRepo {
	return &CommentRepo{db: db}
}

func (r *CommentRepo) CreateComment(ctx context.Context, comment *model.Comment) error {
	if comment.CommentId == 0 {
		comment.CommentId = int64(uuid.New().ID())
	}
	if comment.CreatedAt.IsZero() {
		comment.CreatedAt = time.Now()
	}
	if err := r.db.WithContext(ctx).Create(comment).Error; err != nil {
		return errors.Wrap(err, "create comment")
	}
	return nil
}

// CommentExists 用来校验回复指向的父评论是否存在
func (r *CommentRepo) CommentExists(ctx context.Context, commentId int64) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Comment{}).
		Where("comment_id = ?", commentId).Count(&count).Error; err != nil {
		return false, errors.Wrap(err, "query comment")
	}
	return count > 0, nil
}

func (r *CommentRepo) GetComment(ctx context.Context, commentId int64) (*model.Comment, error) {
	comment := &model.Comment{}
	err := r.db.WithContext(ctx).Where("comment_id = ?", commentId).First(comment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "query comment")
	}
	return comment, nil
}

// CountVideoComments 账本侧的精确评论数 对账用
func (r *CommentRepo) CountVideoComments(ctx context.Context, videoId int64) (count int64, err error) {
	if err := r.db.WithContext(ctx).Model(&model.Comment{}).
		Where("video_id = ?", videoId).Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "count video comments")
	}
	return count, nil
}

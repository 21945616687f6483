package db

import (
	"context"
	"time"

	"TokWave.com/cmd/model"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type MentionRepo struct {
	db *gorm.DB
}

func NewMentionRepo(db *gorm.DB) *MentionRepo {
	return &MentionRepo{db: db}
}

func (r *MentionRepo) CreateMention(ctx context.Context, mention *model.Mention) error {
	if mention.CreatedAt.IsZero() {
		mention.CreatedAt = time.Now()
	}
	if err := r.db.WithContext(ctx).Create(mention).Error; err != nil {
		return errors.Wrap(err, "create mention")
	}
	return nil
}

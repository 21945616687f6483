package db

import (
	"context"

	"TokWave.com/cmd/model"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// UserRepo 只做存在性检查 账号数据归注册子系统
type UserRepo struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) *UserRepo {
	return &UserRepo{db: db}
}

func (r *UserRepo) UserExists(ctx context.Context, userId int64) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.User{}).
		Where("user_id = ?", userId).Count(&count).Error; err != nil {
		return false, errors.Wrap(err, "query user")
	}
	return count > 0, nil
}

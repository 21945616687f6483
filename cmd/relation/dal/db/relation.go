package db

import (
	"context"
	"time"

	"TokWave.com/cmd/model"
	"TokWave.com/cmd/relation/service"
	"TokWave.com/pkg/constants"
	"TokWave.com/pkg/utils"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type RelationRepo struct {
	db *gorm.DB
}

func NewRelationRepo(db *gorm.DB) *RelationRepo {
	return &RelationRepo{db: db}
}

// GetEdge 查找有向边from->to 不存在返回nil而不是错误
func (r *RelationRepo) GetEdge(ctx context.Context, fromId, toId int64) (*model.UserRelation, error) {
	edge := &model.UserRelation{}
	err := r.db.WithContext(ctx).Where("from_id = ? And to_id = ?", fromId, toId).First(edge).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "query relation edge")
	}
	return edge, nil
}

func (r *RelationRepo) CreateEdge(ctx context.Context, edge *model.UserRelation) error {
	if edge.CreatedAt.IsZero() {
		edge.CreatedAt = time.Now()
	}
	if err := r.db.WithContext(ctx).Create(edge).Error; err != nil {
		return errors.Wrap(err, "create relation edge")
	}
	return nil
}

// DeleteEdge 取关是硬删除 不留墓碑
func (r *RelationRepo) DeleteEdge(ctx context.Context, fromId, toId int64) error {
	if err := r.db.WithContext(ctx).Where("from_id = ? And to_id = ?", fromId, toId).
		Delete(&model.UserRelation{}).Error; err != nil {
		return errors.Wrap(err, "delete relation edge")
	}
	return nil
}

func (r *RelationRepo) SetBothStatus(ctx context.Context, fromId, toId int64, both bool) error {
	if err := r.db.WithContext(ctx).Model(&model.UserRelation{}).
		Where("from_id = ? And to_id = ?", fromId, toId).
		Update("both_status", both).Error; err != nil {
		return errors.Wrap(err, "update both_status")
	}
	return nil
}

// FanCount 精确粉丝数 直接数关系表 不走计数缓存
func (r *RelationRepo) FanCount(ctx context.Context, userId int64) (count int64, err error) {
	if err := r.db.WithContext(ctx).Model(&model.UserRelation{}).
		Where("to_id = ?", userId).Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "count fans")
	}
	return count, nil
}

func (r *RelationRepo) FollowingCount(ctx context.Context, userId int64) (count int64, err error) {
	if err := r.db.WithContext(ctx).Model(&model.UserRelation{}).
		Where("from_id = ?", userId).Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "count followings")
	}
	return count, nil
}

// FansPage 粉丝列表 按关注时间倒序
func (r *RelationRepo) FansPage(ctx context.Context, userId, page int64) ([]model.FanItem, error) {
	list := make([]model.FanItem, 0)
	err := r.db.WithContext(ctx).Raw(`select user_relations.both_status, user_relations.created_at, user_relations.is_read,
		user_infos.user_id, user_infos.user_nickname, user_infos.user_avatar, user_infos.user_desc
		from user_relations
		inner join user_infos on user_relations.from_id = user_infos.user_id
		where user_relations.to_id = ?
		order by user_relations.created_at desc
		limit ? offset ?`, userId, constants.DefaultLimit, utils.PageOffset(page, constants.DefaultLimit)).
		Scan(&list).Error
	if err != nil {
		return nil, errors.Wrap(err, "query fans page")
	}
	return list, nil
}

func (r *RelationRepo) FollowingsPage(ctx context.Context, userId, page int64) ([]model.FanItem, error) {
	list := make([]model.FanItem, 0)
	err := r.db.WithContext(ctx).Raw(`select user_relations.both_status, user_relations.created_at, user_relations.is_read,
		user_infos.user_id, user_infos.user_nickname, user_infos.user_avatar, user_infos.user_desc
		from user_relations
		inner join user_infos on user_relations.to_id = user_infos.user_id
		where user_relations.from_id = ?
		order by user_relations.created_at desc
		limit ? offset ?`, userId, constants.DefaultLimit, utils.PageOffset(page, constants.DefaultLimit)).
		Scan(&list).Error
	if err != nil {
		return nil, errors.Wrap(err, "query followings page")
	}
	return list, nil
}

// Contacts 互关好友 可以互发私信的名单
func (r *RelationRepo) Contacts(ctx context.Context, userId int64) ([]model.FanItem, error) {
	list := make([]model.FanItem, 0)
	err := r.db.WithContext(ctx).Raw(`select user_infos.user_id, user_infos.user_nickname, user_infos.user_avatar, user_infos.user_desc
		from user_relations
		inner join user_infos on user_relations.to_id = user_infos.user_id
		where user_relations.from_id = ? and user_relations.both_status = true`, userId).
		Scan(&list).Error
	if err != nil {
		return nil, errors.Wrap(err, "query contacts")
	}
	return list, nil
}

// Transaction 关注切换的双行写入要跑在同一个事务里
func (r *RelationRepo) Transaction(ctx context.Context, fn func(service.RelationStore) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRelationRepo(tx))
	})
}

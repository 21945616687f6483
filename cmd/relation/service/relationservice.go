package service

import (
	"context"
	"time"

	"TokWave.com/cmd/model"
	"TokWave.com/pkg/errno"
	"TokWave.com/pkg/lock"
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

// UserStore 账号存在性检查 账号本身归注册子系统管
type UserStore interface {
	UserExists(ctx context.Context, userId int64) (bool, error)
}

// RelationStore 关系边的持久化接口
type RelationStore interface {
	GetEdge(ctx context.Context, fromId, toId int64) (*model.UserRelation, error)
	CreateEdge(ctx context.Context, edge *model.UserRelation) error
	DeleteEdge(ctx context.Context, fromId, toId int64) error
	SetBothStatus(ctx context.Context, fromId, toId int64, both bool) error
	FanCount(ctx context.Context, userId int64) (int64, error)
	FollowingCount(ctx context.Context, userId int64) (int64, error)
	FansPage(ctx context.Context, userId, page int64) ([]model.FanItem, error)
	FollowingsPage(ctx context.Context, userId, page int64) ([]model.FanItem, error)
	Contacts(ctx context.Context, userId int64) ([]model.FanItem, error)
	Transaction(ctx context.Context, fn func(RelationStore) error) error
}

type RelationService struct {
	users     UserStore
	relations RelationStore
	locker    lock.PairLocker
}

func NewRelationService(users UserStore, relations RelationStore, locker lock.PairLocker) *RelationService {
	return &RelationService{users: users, relations: relations, locker: locker}
}

func (s *RelationService) checkUsers(ctx context.Context, ids ...int64) error {
	for _, id := range ids {
		ok, err := utils.RetryRead(ctx, func() (bool, error) {
			return s.users.UserExists(ctx, id)
		})
		if err != nil {
			hlog.CtxErrorf(ctx, "Failed to check user %d: %v", id, err)
			return storeErr(err)
		}
		if !ok {
			return errno.UserNotExistErr
		}
	}
	return nil
}

// QueryRelation 查询from对to是什么关系
// me: 同一个人 both: 互关 follow: from关注了to fan: to关注了from none: 无关系
func (s *RelationService) QueryRelation(ctx context.Context, fromId, toId int64) (model.RelationState, error) {
	if fromId == toId {
		return model.RelationMe, nil
	}
	if err := s.checkUsers(ctx, fromId, toId); err != nil {
		return "", err
	}

	own, err := utils.RetryRead(ctx, func() (*model.UserRelation, error) {
		return s.relations.GetEdge(ctx, fromId, toId)
	})
	if err != nil {
		hlog.CtxErrorf(ctx, "Failed to query edge %d->%d: %v", fromId, toId, err)
		return "", storeErr(err)
	}
	if own != nil {
		if own.BothStatus {
			return model.RelationBoth, nil
		}
		return model.RelationFollow, nil
	}

	rev, err := utils.RetryRead(ctx, func() (*model.UserRelation, error) {
		return s.relations.GetEdge(ctx, toId, fromId)
	})
	if err != nil {
		hlog.CtxErrorf(ctx, "Failed to query edge %d->%d: %v", toId, fromId, err)
		return "", storeErr(err)
	}
	if rev != nil {
		return model.RelationFan, nil
	}
	return model.RelationNone, nil
}

/* 先查看数据库中关注者和被关注者是否存在
 * 如果正向边已经存在 则删除该边 并把反向边的both_status改回false(如果反向边存在)
 * 相反 如果未关注 则新建正向边 both_status取决于反向边是否存在 同时把反向边的both_status置为true
 * 两步写入在同一个事务里 并且整个check-then-act用对锁串行化 否则并发切换会把冗余标记写坏
 */
func (s *RelationService) ToggleFollow(ctx context.Context, fromId, toId int64) (followed bool, err error) {
	if fromId == toId {
		return false, errno.SelfFollowErr
	}
	if err := s.checkUsers(ctx, fromId, toId); err != nil {
		return false, err
	}

	unlock, err := s.locker.LockPair(ctx, fromId, toId)
	if err != nil {
		return false, err
	}
	defer unlock()

	err = s.relations.Transaction(ctx, func(tx RelationStore) error {
		own, err := tx.GetEdge(ctx, fromId, toId)
		if err != nil {
			return err
		}
		if own != nil {
			if err := tx.DeleteEdge(ctx, fromId, toId); err != nil {
				return err
			}
			rev, err := tx.GetEdge(ctx, toId, fromId)
			if err != nil {
				return err
			}
			if rev != nil {
				if err := tx.SetBothStatus(ctx, toId, fromId, false); err != nil {
					return err
				}
			}
			followed = false
			return nil
		}

		rev, err := tx.GetEdge(ctx, toId, fromId)
		if err != nil {
			return err
		}
		edge := &model.UserRelation{
			FromId:     fromId,
			ToId:       toId,
			BothStatus: rev != nil,
			IsRead:     false,
			CreatedAt:  time.Now(),
		}
		if err := tx.CreateEdge(ctx, edge); err != nil {
			return err
		}
		if rev != nil {
			if err := tx.SetBothStatus(ctx, toId, fromId, true); err != nil {
				return err
			}
		}
		followed = true
		return nil
	})
	if err != nil {
		hlog.CtxErrorf(ctx, "Failed to toggle follow %d->%d: %v", fromId, toId, err)
		// 写路径不做内部重试 超时暴露为Unavailable让调用方整体重试
		if utils.IsTimeoutErr(err) {
			return false, errno.UnavailableErr
		}
		return false, errno.ConvertErr(err)
	}
	return followed, nil
}

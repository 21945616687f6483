package service

import (
	"context"

	"TokWave.com/cmd/model"
	"TokWave.com/pkg/utils"
	"github.com/cloudwego/hertz/pkg/common/hlog"
)

// FansPage 某用户的粉丝列表 viewerId用来标注查看者和每个粉丝的关系
func (s *RelationService) FansPage(ctx context.Context, userId, viewerId, page int64) ([]model.FanItem, error) {
	if err := s.checkUsers(ctx, userId); err != nil {
		return nil, err
	}
	list, err := utils.RetryRead(ctx, func() ([]model.FanItem, error) {
		return s.relations.FansPage(ctx, userId, page)
	})
	if err != nil {
		hlog.CtxErrorf(ctx, "Failed to query fans page: %v", err)
		return nil, storeErr(err)
	}
	if err := s.decorateRelations(ctx, viewerId, userId, list); err != nil {
		return nil, err
	}
	return list, nil
}

func (s *RelationService) FollowingsPage(ctx context.Context, userId, viewerId, page int64) ([]model.FanItem, error) {
	if err := s.checkUsers(ctx, userId); err != nil {
		return nil, err
	}
	list, err := utils.RetryRead(ctx, func() ([]model.FanItem, error) {
		return s.relations.FollowingsPage(ctx, userId, page)
	})
	if err != nil {
		hlog.CtxErrorf(ctx, "Failed to query followings page: %v", err)
		return nil, storeErr(err)
	}
	if err := s.decorateRelations(ctx, viewerId, userId, list); err != nil {
		return nil, err
	}
	return list, nil
}

func (s *RelationService) decorateRelations(ctx context.Context, viewerId, ownerId int64, list []model.FanItem) error {
	if viewerId == 0 || viewerId == ownerId {
		return nil
	}
	for i := range list {
		state, err := s.QueryRelation(ctx, viewerId, list[i].UserId)
		if err != nil {
			return err
		}
		list[i].MyRelation = state
	}
	return nil
}

func (s *RelationService) FanCount(ctx context.Context, userId int64) (int64, error) {
	if err := s.checkUsers(ctx, userId); err != nil {
		return 0, err
	}
	count, err := utils.RetryRead(ctx, func() (int64, error) {
		return s.relations.FanCount(ctx, userId)
	})
	if err != nil {
		hlog.CtxErrorf(ctx, "Failed to count fans: %v", err)
		return 0, storeErr(err)
	}
	return count, nil
}

func (s *RelationService) FollowingCount(ctx context.Context, userId int64) (int64, error) {
	if err := s.checkUsers(ctx, userId); err != nil {
		return 0, err
	}
	count, err := utils.RetryRead(ctx, func() (int64, error) {
		return s.relations.FollowingCount(ctx, userId)
	})
	if err != nil {
		hlog.CtxErrorf(ctx, "Failed to count followings: %v", err)
		return 0, storeErr(err)
	}
	return count, nil
}

// Contacts 互关好友列表 私信的可选对象
func (s *RelationService) Contacts(ctx context.Context, userId int64) ([]model.FanItem, error) {
	if err := s.checkUsers(ctx, userId); err != nil {
		return nil, err
	}
	list, err := utils.RetryRead(ctx, func() ([]model.FanItem, error) {
		return s.relations.Contacts(ctx, userId)
	})
	if err != nil {
		hlog.CtxErrorf(ctx, "Failed to query contacts: %v", err)
		return nil, storeErr(err)
	}
	return list, nil
}

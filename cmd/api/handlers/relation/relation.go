package handlers

import (
	"context"

	handlers "TokWave.com/cmd/api/handlers/interaction"
	"TokWave.com/cmd/relation/service"
	"TokWave.com/pkg/errno"
	"TokWave.com/pkg/utils"
	"github.com/cloudwego/hertz/pkg/app"
)

var relationService *service.RelationService

func Init(svc *service.RelationService) {
	relationService = svc
}

type RelationParam struct {
	FromUserId int64 `form:"from_user_id" json:"from_user_id"`
	ToUserId   int64 `form:"to_user_id" json:"to_user_id"`
}

// RelationAction 关注开关 已关注则取关 未关注则关注
func RelationAction(ctx context.Context, c *app.RequestContext) {
	var param RelationParam
	if err := c.Bind(&param); err != nil {
		handlers.SendResponse(c, errno.ConvertErr(err), nil)
		return
	}

	followed, err := relationService.ToggleFollow(ctx, param.FromUserId, param.ToUserId)
	if err != nil {
		handlers.SendResponse(c, errno.ConvertErr(err), nil)
		return
	}
	handlers.SendResponse(c, errno.Success, map[string]interface{}{"followed": followed})
}

// QueryRelation from对to的关系 me/both/follow/fan/none
func QueryRelation(ctx context.Context, c *app.RequestContext) {
	fromId := utils.ParseId(c.Query("from_user_id"))
	toId := utils.ParseId(c.Query("to_user_id"))

	state, err := relationService.QueryRelation(ctx, fromId, toId)
	if err != nil {
		handlers.SendResponse(c, errno.ConvertErr(err), nil)
		return
	}
	handlers.SendResponse(c, errno.Success, map[string]interface{}{"relation": state})
}

// FansList 粉丝列表 viewer_id用于标注查看者视角的关系
func FansList(ctx context.Context, c *app.RequestContext) {
	userId := utils.ParseId(c.Query("user_id"))
	viewerId := utils.ParseId(c.Query("viewer_id"))
	page := utils.ParsePage(c.Query("page"))

	list, err := relationService.FansPage(ctx, userId, viewerId, page)
	if err != nil {
		handlers.SendResponse(c, errno.ConvertErr(err), nil)
		return
	}
	handlers.SendResponse(c, errno.Success, list)
}

// FollowingsList 关注列表
func FollowingsList(ctx context.Context, c *app.RequestContext) {
	userId := utils.ParseId(c.Query("user_id"))
	viewerId := utils.ParseId(c.Query("viewer_id"))
	page := utils.ParsePage(c.Query("page"))

	list, err := relationService.FollowingsPage(ctx, userId, viewerId, page)
	if err != nil {
		handlers.SendResponse(c, errno.ConvertErr(err), nil)
		return
	}
	handlers.SendResponse(c, errno.Success, list)
}

// RelationCount 粉丝数和关注数
func RelationCount(ctx context.Context, c *app.RequestContext) {
	userId := utils.ParseId(c.Query("user_id"))

	fans, err := relationService.FanCount(ctx, userId)
	if err != nil {
		handlers.SendResponse(c, errno.ConvertErr(err), nil)
		return
	}
	followings, err := relationService.FollowingCount(ctx, userId)
	if err != nil {
		handlers.SendResponse(c, errno.ConvertErr(err), nil)
		return
	}
	handlers.SendResponse(c, errno.Success, map[string]interface{}{
		"fan_count":       fans,
		"following_count": followings,
	})
}

// Contacts 互关好友 可私信对象
func Contacts(ctx context.Context, c *app.RequestContext) {
	userId := utils.ParseId(c.Query("user_id"))

	list, err := relationService.Contacts(ctx, userId)
	if err != nil {
		handlers.SendResponse(c, errno.ConvertErr(err), nil)
		return
	}
	handlers.SendResponse(c, errno.Success, list)
}

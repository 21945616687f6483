package handlers

import (
	"context"

	handlers "TokWave.com/cmd/api/handlers/interaction"
	"TokWave.com/cmd/notice/service"
	"TokWave.com/pkg/errno"
	"TokWave.com/pkg/utils"
	"github.com/cloudwego/hertz/pkg/app"
)

var noticeService *service.NoticeService

func Init(svc *service.NoticeService) {
	noticeService = svc
}

// UnreadCounts 四个频道的未读数和关注动态数
func UnreadCounts(ctx context.Context, c *app.RequestContext) {
	userId := utils.ParseId(c.Query("user_id"))

	counts, err := noticeService.GetUnreadCounts(ctx, userId)
	if err != nil {
		handlers.SendResponse(c, errno.ConvertErr(err), nil)
		return
	}
	handlers.SendResponse(c, errno.Success, counts)
}

type MarkReadParam struct {
	UserId  int64  `form:"user_id" json:"user_id"`
	Channel string `form:"channel" json:"channel"`
}

// MarkRead 一键已读某个频道
func MarkRead(ctx context.Context, c *app.RequestContext) {
	var param MarkReadParam
	if err := c.Bind(&param); err != nil {
		handlers.SendResponse(c, errno.ConvertErr(err), nil)
		return
	}
	if err := noticeService.MarkAllRead(ctx, param.UserId, param.Channel); err != nil {
		handlers.SendResponse(c, errno.ConvertErr(err), nil)
		return
	}
	handlers.SendResponse(c, errno.Success, nil)
}

// LikesPage 赞通知一页
func LikesPage(ctx context.Context, c *app.RequestContext) {
	userId := utils.ParseId(c.Query("user_id"))
	page := utils.ParsePage(c.Query("page"))

	list, err := noticeService.LikesPage(ctx, userId, page)
	if err != nil {
		handlers.SendResponse(c, errno.ConvertErr(err), nil)
		return
	}
	handlers.SendResponse(c, errno.Success, list)
}

// CommentsPage 评论通知一页
func CommentsPage(ctx context.Context, c *app.RequestContext) {
	userId := utils.ParseId(c.Query("user_id"))
	page := utils.ParsePage(c.Query("page"))

	list, err := noticeService.CommentsPage(ctx, userId, page)
	if err != nil {
		handlers.SendResponse(c, errno.ConvertErr(err), nil)
		return
	}
	handlers.SendResponse(c, errno.Success, list)
}

// MentionsPage @通知一页
func MentionsPage(ctx context.Context, c *app.RequestContext) {
	userId := utils.ParseId(c.Query("user_id"))
	page := utils.ParsePage(c.Query("page"))

	list, err := noticeService.MentionsPage(ctx, userId, page)
	if err != nil {
		handlers.SendResponse(c, errno.ConvertErr(err), nil)
		return
	}
	handlers.SendResponse(c, errno.Success, list)
}

// FollowedNewsCount 关注动态的小红点
func FollowedNewsCount(ctx context.Context, c *app.RequestContext) {
	userId := utils.ParseId(c.Query("user_id"))

	count, err := noticeService.FollowedNewsCount(ctx, userId)
	if err != nil {
		handlers.SendResponse(c, errno.ConvertErr(err), nil)
		return
	}
	handlers.SendResponse(c, errno.Success, map[string]interface{}{"count": count})
}

type WatchAllParam struct {
	UserId int64 `form:"user_id" json:"user_id"`
}

// WatchAllFollowedNews 一键看完关注动态
func WatchAllFollowedNews(ctx context.Context, c *app.RequestContext) {
	var param WatchAllParam
	if err := c.Bind(&param); err != nil {
		handlers.SendResponse(c, errno.ConvertErr(err), nil)
		return
	}
	if err := noticeService.WatchAllFollowedNews(ctx, param.UserId); err != nil {
		handlers.SendResponse(c, errno.ConvertErr(err), nil)
		return
	}
	handlers.SendResponse(c, errno.Success, nil)
}

package handlers

import (
	"context"

	handlers "TokWave.com/cmd/api/handlers/interaction"
	"TokWave.com/cmd/message/service"
	"TokWave.com/pkg/errno"
	"TokWave.com/pkg/utils"
	"github.com/cloudwego/hertz/pkg/app"
)

var messageService *service.MessageService

func Init(svc *service.MessageService) {
	messageService = svc
}

type SendMessageParam struct {
	FromUserId int64  `form:"from_user_id" json:"from_user_id"`
	ToUserId   int64  `form:"to_user_id" json:"to_user_id"`
	Content    string `form:"content" json:"content"`
}

// SendMessage 发私信 仅限互关
func SendMessage(ctx context.Context, c *app.RequestContext) {
	var param SendMessageParam
	if err := c.Bind(&param); err != nil {
		handlers.SendResponse(c, errno.ConvertErr(err), nil)
		return
	}
	if err := messageService.SendMessage(ctx, param.FromUserId, param.ToUserId, param.Content); err != nil {
		handlers.SendResponse(c, errno.ConvertErr(err), nil)
		return
	}
	handlers.SendResponse(c, errno.Success, nil)
}

// Conversations 会话列表
func Conversations(ctx context.Context, c *app.RequestContext) {
	userId := utils.ParseId(c.Query("user_id"))

	list, err := messageService.Conversations(ctx, userId)
	if err != nil {
		handlers.SendResponse(c, errno.ConvertErr(err), nil)
		return
	}
	handlers.SendResponse(c, errno.Success, list)
}

// History 与某个对端的聊天记录
func History(ctx context.Context, c *app.RequestContext) {
	userId := utils.ParseId(c.Query("user_id"))
	partnerId := utils.ParseId(c.Query("partner_id"))
	page := utils.ParsePage(c.Query("page"))

	list, err := messageService.History(ctx, userId, partnerId, page)
	if err != nil {
		handlers.SendResponse(c, errno.ConvertErr(err), nil)
		return
	}
	handlers.SendResponse(c, errno.Success, list)
}

type MarkConversationParam struct {
	UserId    int64 `form:"user_id" json:"user_id"`
	PartnerId int64 `form:"partner_id" json:"partner_id"`
}

// MarkConversationRead 进入会话时清未读
func MarkConversationRead(ctx context.Context, c *app.RequestContext) {
	var param MarkConversationParam
	if err := c.Bind(&param); err != nil {
		handlers.SendResponse(c, errno.ConvertErr(err), nil)
		return
	}
	if err := messageService.MarkConversationRead(ctx, param.UserId, param.PartnerId); err != nil {
		handlers.SendResponse(c, errno.ConvertErr(err), nil)
		return
	}
	handlers.SendResponse(c, errno.Success, nil)
}

// UnreadTotal 私信未读总数
func UnreadTotal(ctx context.Context, c *app.RequestContext) {
	userId := utils.ParseId(c.Query("user_id"))

	total, err := messageService.UnreadTotal(ctx, userId)
	if err != nil {
		handlers.SendResponse(c, errno.ConvertErr(err), nil)
		return
	}
	handlers.SendResponse(c, errno.Success, map[string]interface{}{"total": total})
}

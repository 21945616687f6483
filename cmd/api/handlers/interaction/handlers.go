package handlers

import (
	"TokWave.com/pkg/errno"
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

type Response struct {
	Code    int64       `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// SendResponse pack response
func SendResponse(c *app.RequestContext, err error, data interface{}) {
	Err := errno.ConvertErr(err)
	c.JSON(consts.StatusOK, Response{
		Code:    Err.ErrCode,
		Message: Err.ErrMsg,
		Data:    data,
	})
}

type LikeParam struct {
	UserId    int64 `form:"user_id" json:"user_id"`
	VideoId   int64 `form:"video_id" json:"video_id"`
	CommentId int64 `form:"comment_id" json:"comment_id"`
}

type CreateCommentParam struct {
	UserId    int64   `form:"user_id" json:"user_id"`
	VideoId   int64   `form:"video_id" json:"video_id"`
	ReplyId   int64   `form:"reply_id" json:"reply_id"`
	Content   string  `form:"content" json:"content"`
	AtUserIds []int64 `form:"at_user_ids" json:"at_user_ids"`
}

type MentionParam struct {
	UserId    int64   `form:"user_id" json:"user_id"`
	VideoId   int64   `form:"video_id" json:"video_id"`
	CommentId int64   `form:"comment_id" json:"comment_id"`
	AtUserIds []int64 `form:"at_user_ids" json:"at_user_ids"`
}

type PublishVideoParam struct {
	UserId     int64  `form:"user_id" json:"user_id"`
	VideoCover string `form:"video_cover" json:"video_cover"`
	VideoPath  string `form:"video_path" json:"video_path"`
	VideoDesc  string `form:"video_desc" json:"video_desc"`
}

type WatchShareParam struct {
	UserId  int64 `form:"user_id" json:"user_id"`
	VideoId int64 `form:"video_id" json:"video_id"`
}

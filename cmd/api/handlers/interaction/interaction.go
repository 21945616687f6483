package handlers

import (
	"context"

	"TokWave.com/cmd/interaction/service"
	"TokWave.com/pkg/errno"
	"TokWave.com/pkg/utils"
	"github.com/cloudwego/hertz/pkg/app"
)

var (
	likeService    *service.LikeService
	commentService *service.CommentService
	videoService   *service.VideoService
	mentionService *service.MentionService
)

func Init(like *service.LikeService, comment *service.CommentService,
	video *service.VideoService, mention *service.MentionService) {
	likeService = like
	commentService = comment
	videoService = video
	mentionService = mention
}

// LikeAction 点赞开关 comment_id为0切视频赞 否则切评论赞
func LikeAction(ctx context.Context, c *app.RequestContext) {
	var param LikeParam
	if err := c.Bind(&param); err != nil {
		SendResponse(c, errno.ConvertErr(err), nil)
		return
	}

	var liked bool
	var err error
	if param.CommentId == 0 {
		liked, err = likeService.ToggleVideoLike(ctx, param.UserId, param.VideoId)
	} else {
		liked, err = likeService.ToggleCommentLike(ctx, param.UserId, param.VideoId, param.CommentId)
	}
	if err != nil {
		SendResponse(c, errno.ConvertErr(err), nil)
		return
	}
	SendResponse(c, errno.Success, map[string]interface{}{"liked": liked})
}

// LikeStatus 查询是否已赞
func LikeStatus(ctx context.Context, c *app.RequestContext) {
	var param LikeParam
	if err := c.Bind(&param); err != nil {
		SendResponse(c, errno.ConvertErr(err), nil)
		return
	}

	var liked bool
	var err error
	if param.CommentId == 0 {
		liked, err = likeService.IsVideoLiked(ctx, param.UserId, param.VideoId)
	} else {
		liked, err = likeService.IsCommentLiked(ctx, param.UserId, param.CommentId)
	}
	if err != nil {
		SendResponse(c, errno.ConvertErr(err), nil)
		return
	}
	SendResponse(c, errno.Success, map[string]interface{}{"liked": liked})
}

// TotalLikesReceived 用户收到的总赞数 精确值
func TotalLikesReceived(ctx context.Context, c *app.RequestContext) {
	userId := utils.ParseId(c.Query("user_id"))
	total, err := likeService.TotalLikesReceived(ctx, userId)
	if err != nil {
		SendResponse(c, errno.ConvertErr(err), nil)
		return
	}
	SendResponse(c, errno.Success, map[string]interface{}{"total": total})
}

// CreateComment 发评论或回复 顺带落@记录
func CreateComment(ctx context.Context, c *app.RequestContext) {
	var param CreateCommentParam
	if err := c.Bind(&param); err != nil {
		SendResponse(c, errno.ConvertErr(err), nil)
		return
	}

	comment, err := commentService.PostComment(ctx, param.UserId, param.VideoId, param.Content, param.ReplyId)
	if err != nil {
		SendResponse(c, errno.ConvertErr(err), nil)
		return
	}
	if len(param.AtUserIds) > 0 {
		if err := mentionService.CreateMentions(ctx, param.UserId, param.AtUserIds,
			param.VideoId, comment.CommentId); err != nil {
			SendResponse(c, errno.ConvertErr(err), nil)
			return
		}
	}
	SendResponse(c, errno.Success, comment)
}

// MentionAction 在视频或评论里@一批用户
func MentionAction(ctx context.Context, c *app.RequestContext) {
	var param MentionParam
	if err := c.Bind(&param); err != nil {
		SendResponse(c, errno.ConvertErr(err), nil)
		return
	}
	if err := mentionService.CreateMentions(ctx, param.UserId, param.AtUserIds,
		param.VideoId, param.CommentId); err != nil {
		SendResponse(c, errno.ConvertErr(err), nil)
		return
	}
	SendResponse(c, errno.Success, nil)
}

// PublishVideo 发布视频元数据
func PublishVideo(ctx context.Context, c *app.RequestContext) {
	var param PublishVideoParam
	if err := c.Bind(&param); err != nil {
		SendResponse(c, errno.ConvertErr(err), nil)
		return
	}

	video, err := videoService.PublishVideo(ctx, param.UserId, param.VideoCover, param.VideoPath, param.VideoDesc)
	if err != nil {
		SendResponse(c, errno.ConvertErr(err), nil)
		return
	}
	SendResponse(c, errno.Success, video)
}

// WatchAction 上报一次观看
func WatchAction(ctx context.Context, c *app.RequestContext) {
	var param WatchShareParam
	if err := c.Bind(&param); err != nil {
		SendResponse(c, errno.ConvertErr(err), nil)
		return
	}
	if err := videoService.RecordWatch(ctx, param.UserId, param.VideoId); err != nil {
		SendResponse(c, errno.ConvertErr(err), nil)
		return
	}
	SendResponse(c, errno.Success, nil)
}

// ShareAction 上报一次分享
func ShareAction(ctx context.Context, c *app.RequestContext) {
	var param WatchShareParam
	if err := c.Bind(&param); err != nil {
		SendResponse(c, errno.ConvertErr(err), nil)
		return
	}
	if err := videoService.RecordShare(ctx, param.UserId, param.VideoId); err != nil {
		SendResponse(c, errno.ConvertErr(err), nil)
		return
	}
	SendResponse(c, errno.Success, nil)
}

// VideoStats 视频的四个展示计数 近似值
func VideoStats(ctx context.Context, c *app.RequestContext) {
	videoId := utils.ParseId(c.Query("video_id"))
	stats, err := videoService.VideoStats(ctx, videoId)
	if err != nil {
		SendResponse(c, errno.ConvertErr(err), nil)
		return
	}
	SendResponse(c, errno.Success, stats)
}

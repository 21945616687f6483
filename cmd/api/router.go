package main

import (
	chat "TokWave.com/cmd/api/handlers/chat"
	interaction "TokWave.com/cmd/api/handlers/interaction"
	notice "TokWave.com/cmd/api/handlers/notice"
	relation "TokWave.com/cmd/api/handlers/relation"
	"github.com/cloudwego/hertz/pkg/app/server"
)

func register(r *server.Hertz) {
	v1 := r.Group("/v1")

	relationGroup := v1.Group("/relation")
	relationGroup.POST("/action", relation.RelationAction)
	relationGroup.GET("/query", relation.QueryRelation)
	relationGroup.GET("/fans", relation.FansList)
	relationGroup.GET("/followings", relation.FollowingsList)
	relationGroup.GET("/count", relation.RelationCount)
	relationGroup.GET("/contacts", relation.Contacts)

	interactionGroup := v1.Group("/interaction")
	interactionGroup.POST("/like/action", interaction.LikeAction)
	interactionGroup.GET("/like/status", interaction.LikeStatus)
	interactionGroup.GET("/like/total", interaction.TotalLikesReceived)
	interactionGroup.POST("/comment", interaction.CreateComment)
	interactionGroup.POST("/mention", interaction.MentionAction)
	interactionGroup.POST("/watch", interaction.WatchAction)
	interactionGroup.POST("/share", interaction.ShareAction)

	videoGroup := v1.Group("/video")
	videoGroup.POST("/publish", interaction.PublishVideo)
	videoGroup.GET("/stats", interaction.VideoStats)

	noticeGroup := v1.Group("/notice")
	noticeGroup.GET("/unread", notice.UnreadCounts)
	noticeGroup.POST("/read", notice.MarkRead)
	noticeGroup.GET("/likes", notice.LikesPage)
	noticeGroup.GET("/comments", notice.CommentsPage)
	noticeGroup.GET("/mentions", notice.MentionsPage)
	noticeGroup.GET("/followed_news/count", notice.FollowedNewsCount)
	noticeGroup.POST("/followed_news/watch_all", notice.WatchAllFollowedNews)

	chatGroup := v1.Group("/chat")
	chatGroup.POST("/send", chat.SendMessage)
	chatGroup.GET("/conversations", chat.Conversations)
	chatGroup.GET("/history", chat.History)
	chatGroup.POST("/read", chat.MarkConversationRead)
	chatGroup.GET("/unread", chat.UnreadTotal)
}

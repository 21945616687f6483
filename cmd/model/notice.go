package model

import "time"

// UnreadCounts 四个通知频道的未读数加上关注动态数
type UnreadCounts struct {
	Fans         int64 `json:"fans"`
	Likes        int64 `json:"likes"`
	Comments     int64 `json:"comments"`
	Mentions     int64 `json:"mentions"`
	FollowedNews int64 `json:"followed_news"`
}

// LikeNotice 赞通知的一行 视频被赞和评论被赞共用 CommentId为0表示视频被赞
type LikeNotice struct {
	VideoId        int64     `json:"video_id"`
	VideoCover     string    `json:"video_cover"`
	CommentId      int64     `json:"comment_id"`
	CommentContent string    `json:"comment_content"`
	UserId         int64     `json:"user_id"`
	UserNickname   string    `json:"user_nickname"`
	UserAvatar     string    `json:"user_avatar"`
	IsRead         bool      `json:"is_read"`
	CreatedAt      time.Time `json:"created_at"`
}

// CommentNotice 评论通知的一行 视频下的评论和评论下的回复共用
type CommentNotice struct {
	VideoId        int64     `json:"video_id"`
	VideoCover     string    `json:"video_cover"`
	CommentId      int64     `json:"comment_id"`
	ReplyId        int64     `json:"reply_id"`
	CommentContent string    `json:"comment_content"`
	UserId         int64     `json:"user_id"`
	UserNickname   string    `json:"user_nickname"`
	UserAvatar     string    `json:"user_avatar"`
	IsRead         bool      `json:"is_read"`
	CreatedAt      time.Time `json:"created_at"`
}

// MentionNotice @通知的一行
type MentionNotice struct {
	UserId         int64     `json:"user_id"`
	UserNickname   string    `json:"user_nickname"`
	UserAvatar     string    `json:"user_avatar"`
	VideoId        int64     `json:"video_id"`
	VideoCover     string    `json:"video_cover"`
	CommentId      int64     `json:"comment_id"`
	CommentContent string    `json:"comment_content"`
	IsRead         bool      `json:"is_read"`
	CreatedAt      time.Time `json:"created_at"`
}

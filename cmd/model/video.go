package model

import "time"

type Video struct {
	VideoId    int64     `json:"video_id" gorm:"primaryKey;column:video_id"`
	UserId     int64     `json:"user_id" gorm:"index"`
	VideoCover string    `json:"video_cover"`
	VideoPath  string    `json:"video_path"`
	VideoDesc  string    `json:"video_desc"`
	CreatedAt  time.Time `json:"created_at"`
}

func (Video) TableName() string { return "videos" }

// WSLCNum 视频的观看/分享/点赞/评论计数 来自计数缓存 只作展示 不保证精确
type WSLCNum struct {
	WatchNum   int64 `json:"watch_num"`
	ShareNum   int64 `json:"share_num"`
	LikeNum    int64 `json:"like_num"`
	CommentNum int64 `json:"comment_num"`
}

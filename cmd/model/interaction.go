package model

import "time"

// Like 点赞记录 视频点赞和评论点赞共用一张表
// CommentId为0表示点赞对象是视频 否则是评论
type Like struct {
	LikeId    int64     `json:"like_id" gorm:"primaryKey;column:like_id"`
	UserId    int64     `json:"user_id" gorm:"index"`
	VideoId   int64     `json:"video_id" gorm:"index"`
	CommentId int64     `json:"comment_id" gorm:"index"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

func (Like) TableName() string { return "likes" }

// Comment ReplyId为0表示根评论 否则指向被回复的评论
type Comment struct {
	CommentId int64     `json:"comment_id" gorm:"primaryKey;column:comment_id"`
	UserId    int64     `json:"user_id" gorm:"index"`
	VideoId   int64     `json:"video_id" gorm:"index"`
	ReplyId   int64     `json:"reply_id" gorm:"index"`
	Content   string    `json:"content"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

func (Comment) TableName() string { return "comments" }

// Watch 观看记录 追加写 同一用户重复观看是多条记录
type Watch struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	UserId    int64     `json:"user_id" gorm:"index"`
	VideoId   int64     `json:"video_id" gorm:"index"`
	CreatedAt time.Time `json:"created_at"`
}

func (Watch) TableName() string { return "watches" }

type Share struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	UserId    int64     `json:"user_id" gorm:"index"`
	VideoId   int64     `json:"video_id" gorm:"index"`
	CreatedAt time.Time `json:"created_at"`
}

func (Share) TableName() string { return "shares" }

// Mention @用户记录 UserId是发起者 AtUserId是被@的用户
type Mention struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	UserId    int64     `json:"user_id"`
	AtUserId  int64     `json:"at_user_id" gorm:"index"`
	VideoId   int64     `json:"video_id"`
	CommentId int64     `json:"comment_id"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

func (Mention) TableName() string { return "mentions" }

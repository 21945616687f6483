package model

import "time"

// User 账号实体 由注册子系统维护 核心业务只读
type User struct {
	UserId     int64     `json:"user_id" gorm:"primaryKey;column:user_id"`
	UserEmail  string    `json:"user_email"`
	UserStatus string    `json:"user_status"` // online/offline
	CreatedAt  time.Time `json:"created_at"`
}

func (User) TableName() string { return "users" }

// UserInfo 展示属性 核心业务不修改
type UserInfo struct {
	UserId       int64  `json:"user_id" gorm:"primaryKey;column:user_id"`
	UserNickname string `json:"user_nickname"`
	UserAvatar   string `json:"user_avatar"`
	UserDesc     string `json:"user_desc"`
}

func (UserInfo) TableName() string { return "user_infos" }

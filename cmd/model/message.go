package model

import "time"

// Message 私信记录
type Message struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	FromId    int64     `json:"from_id" gorm:"index"`
	ToId      int64     `json:"to_id" gorm:"index"`
	Content   string    `json:"content"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

func (Message) TableName() string { return "messages" }

// Conversation 会话列表的一行 每个对端一行
type Conversation struct {
	PartnerId       int64     `json:"partner_id"`
	PartnerNickname string    `json:"partner_nickname"`
	PartnerAvatar   string    `json:"partner_avatar"`
	Unread          int64     `json:"unread"`
	Content         string    `json:"content"`
	CreatedAt       time.Time `json:"created_at"`
}

package model

import "time"

// UserRelation 关注关系边 from关注to
// both_status是冗余字段: 当且仅当反向边同时存在时为true 两条边必须一起维护
type UserRelation struct {
	Id         int64     `json:"id" gorm:"primaryKey"`
	FromId     int64     `json:"from_id" gorm:"uniqueIndex:idx_from_to"`
	ToId       int64     `json:"to_id" gorm:"uniqueIndex:idx_from_to"`
	BothStatus bool      `json:"both_status"`
	IsRead     bool      `json:"is_read"`
	CreatedAt  time.Time `json:"created_at"`
}

func (UserRelation) TableName() string { return "user_relations" }

// RelationState getRelation的返回值
type RelationState string

const (
	RelationMe     RelationState = "me"
	RelationBoth   RelationState = "both"
	RelationFollow RelationState = "follow"
	RelationFan    RelationState = "fan"
	RelationNone   RelationState = "none"
)

// FanItem 粉丝/关注列表的一行 带上查看者视角的关系
type FanItem struct {
	UserId       int64         `json:"user_id"`
	UserNickname string        `json:"user_nickname"`
	UserAvatar   string        `json:"user_avatar"`
	UserDesc     string        `json:"user_desc"`
	BothStatus   bool          `json:"both_status"`
	IsRead       bool          `json:"is_read"`
	CreatedAt    time.Time     `json:"created_at"`
	MyRelation   RelationState `json:"my_relation,omitempty" gorm:"-"`
}

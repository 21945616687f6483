package db

import (
	"context"
	"time"

	"TokWave.com/cmd/model"
	"TokWave.com/pkg/constants"
	"TokWave.com/pkg/utils"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type MessageRepo struct {
	db *gorm.DB
}

func NewMessageRepo(db *gorm.DB) *MessageRepo {
	return &MessageRepo{db: db}
}

func (r *MessageRepo) CreateMessage(ctx context.Context, msg *model.Message) error {
	if msg.Id == 0 {
		msg.Id = int64(uuid.New().ID())
	}
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now()
	}
	if err := r.db.WithContext(ctx).Create(msg).Error; err != nil {
		return errors.Wrap(err, "create message")
	}
	return nil
}

// BothFollow 私信开关 只有互关才放行 看发送方这条边上的冗余标记
func (r *MessageRepo) BothFollow(ctx context.Context, fromId, toId int64) (bool, error) {
	edge := &model.UserRelation{}
	err := r.db.WithContext(ctx).
		Where("from_id = ? And to_id = ?", fromId, toId).
		First(edge).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, errors.Wrap(err, "query relation edge")
	}
	return edge.BothStatus, nil
}

// SentConversations 我发起过的会话 每个收信人取最新一条
func (r *MessageRepo) SentConversations(ctx context.Context, userId int64) ([]model.Conversation, error) {
	list := make([]model.Conversation, 0)
	err := r.db.WithContext(ctx).Raw(`select messages.to_id as partner_id,
		user_infos.user_nickname as partner_nickname, user_infos.user_avatar as partner_avatar,
		messages.content, messages.created_at
		from messages
		inner join user_infos on messages.to_id = user_infos.user_id
		where messages.from_id = ? and messages.created_at = (
			select max(m2.created_at) from messages as m2
			where m2.from_id = messages.from_id and m2.to_id = messages.to_id
		)`, userId).Scan(&list).Error
	if err != nil {
		return nil, errors.Wrap(err, "query sent conversations")
	}
	return list, nil
}

// ReceivedConversations 给我发过信的会话 每个发信人取最新一条 带未读数
func (r *MessageRepo) ReceivedConversations(ctx context.Context, userId int64) ([]model.Conversation, error) {
	list := make([]model.Conversation, 0)
	err := r.db.WithContext(ctx).Raw(`select messages.from_id as partner_id,
		user_infos.user_nickname as partner_nickname, user_infos.user_avatar as partner_avatar,
		messages.content, messages.created_at,
		(select count(*) from messages as m3
			where m3.from_id = messages.from_id and m3.to_id = ? and m3.is_read = false) as unread
		from messages
		inner join user_infos on messages.from_id = user_infos.user_id
		where messages.to_id = ? and messages.created_at = (
			select max(m2.created_at) from messages as m2
			where m2.from_id = messages.from_id and m2.to_id = messages.to_id
		)`, userId, userId).Scan(&list).Error
	if err != nil {
		return nil, errors.Wrap(err, "query received conversations")
	}
	return list, nil
}

// History 双向消息按时间正序 一页一页翻
func (r *MessageRepo) History(ctx context.Context, userId, partnerId, page int64) ([]model.Message, error) {
	list := make([]model.Message, 0)
	err := r.db.WithContext(ctx).
		Where("(from_id = ? And to_id = ?) Or (from_id = ? And to_id = ?)",
			userId, partnerId, partnerId, userId).
		Order("created_at asc").
		Limit(int(constants.DefaultLimit)).
		Offset(int(utils.PageOffset(page, constants.DefaultLimit))).
		Find(&list).Error
	if err != nil {
		return nil, errors.Wrap(err, "query message history")
	}
	return list, nil
}

// MarkConversationRead 把对端发给我的全部标记已读
func (r *MessageRepo) MarkConversationRead(ctx context.Context, userId, partnerId int64) error {
	err := r.db.WithContext(ctx).Model(&model.Message{}).
		Where("from_id = ? And to_id = ?", partnerId, userId).
		Update("is_read", true).Error
	if err != nil {
		return errors.Wrap(err, "mark conversation read")
	}
	return nil
}

// UnreadTotal 私信未读总数
func (r *MessageRepo) UnreadTotal(ctx context.Context, userId int64) (count int64, err error) {
	if err := r.db.WithContext(ctx).Model(&model.Message{}).
		Where("to_id = ? And is_read = false", userId).Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "count unread messages")
	}
	return count, nil
}

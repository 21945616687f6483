package service

import (
	"context"
	"sort"

	"TokWave.com/cmd/model"
	"TokWave.com/pkg/errno"
	"TokWave.com/pkg/utils"
	"github.com/cloudwego/hertz/pkg/common/hlog"
)

// storeErr 超时类失败归为可重试的Unavailable 其余是确定的存储错误
func storeErr(err error) errno.ErrNo {
	if utils.IsTimeoutErr(err) {
		return errno.UnavailableErr
	}
	return errno.MysqlErr
}

type UserStore interface {
	UserExists(ctx context.Context, userId int64) (bool, error)
}

// MessageStore 私信存储 含互关检查 互关状态是发信的前置条件
type MessageStore interface {
	CreateMessage(ctx context.Context, msg *model.Message) error
	BothFollow(ctx context.Context, fromId, toId int64) (bool, error)
	SentConversations(ctx context.Context, userId int64) ([]model.Conversation, error)
	ReceivedConversations(ctx context.Context, userId int64) ([]model.Conversation, error)
	History(ctx context.Context, userId, partnerId, page int64) ([]model.Message, error)
	MarkConversationRead(ctx context.Context, userId, partnerId int64) error
	UnreadTotal(ctx context.Context, userId int64) (int64, error)
}

type MessageService struct {
	users    UserStore
	messages MessageStore
}

func NewMessageService(users UserStore, messages MessageStore) *MessageService {
	return &MessageService{users: users, messages: messages}
}

func (s *MessageService) checkUsers(ctx context.Context, ids ...int64) error {
	for _, id := range ids {
		ok, err := utils.RetryRead(ctx, func() (bool, error) {
			return s.users.UserExists(ctx, id)
		})
		if err != nil {
			hlog.CtxErrorf(ctx, "Failed to check user %d: %v", id, err)
			return storeErr(err)
		}
		if !ok {
			return errno.UserNotExistErr
		}
	}
	return nil
}

// SendMessage 只有互关的两个人才能私信 单向关注发不出去
func (s *MessageService) SendMessage(ctx context.Context, fromId, toId int64, content string) error {
	if fromId == toId {
		return errno.RequestErr.WithMessage("cannot message yourself")
	}
	if content == "" {
		return errno.RequestErr.WithMessage("empty message content")
	}
	if err := s.checkUsers(ctx, fromId, toId); err != nil {
		return err
	}

	both, err := utils.RetryRead(ctx, func() (bool, error) {
		return s.messages.BothFollow(ctx, fromId, toId)
	})
	if err != nil {
		hlog.CtxErrorf(ctx, "Failed to check mutual follow %d<->%d: %v", fromId, toId, err)
		return storeErr(err)
	}
	if !both {
		return errno.MessageForbidErr
	}

	msg := &model.Message{
		FromId:  fromId,
		ToId:    toId,
		Content: content,
		IsRead:  false,
	}
	if err := s.messages.CreateMessage(ctx, msg); err != nil {
		hlog.CtxErrorf(ctx, "Failed to create message %d->%d: %v", fromId, toId, err)
		return storeErr(err)
	}
	return nil
}

// Conversations 会话列表 发出和收到的两路合并 每个对端保留最新一行
// 未读数只来自收到的那一路 自己发的消息不算未读
func (s *MessageService) Conversations(ctx context.Context, userId int64) ([]model.Conversation, error) {
	if err := s.checkUsers(ctx, userId); err != nil {
		return nil, err
	}

	sent, err := utils.RetryRead(ctx, func() ([]model.Conversation, error) {
		return s.messages.SentConversations(ctx, userId)
	})
	if err != nil {
		hlog.CtxErrorf(ctx, "Failed to query sent conversations for user %d: %v", userId, err)
		return nil, storeErr(err)
	}
	// 两路查询之间取消了就放弃 半套结果拼出来的会话列表没法用
	if err := ctx.Err(); err != nil {
		return nil, errno.ConvertErr(err)
	}
	received, err := utils.RetryRead(ctx, func() ([]model.Conversation, error) {
		return s.messages.ReceivedConversations(ctx, userId)
	})
	if err != nil {
		hlog.CtxErrorf(ctx, "Failed to query received conversations for user %d: %v", userId, err)
		return nil, storeErr(err)
	}

	byPartner := make(map[int64]model.Conversation, len(sent)+len(received))
	for _, conv := range sent {
		byPartner[conv.PartnerId] = conv
	}
	for _, conv := range received {
		if existing, ok := byPartner[conv.PartnerId]; ok {
			if existing.CreatedAt.After(conv.CreatedAt) {
				existing.Unread = conv.Unread
				byPartner[conv.PartnerId] = existing
				continue
			}
		}
		byPartner[conv.PartnerId] = conv
	}

	list := make([]model.Conversation, 0, len(byPartner))
	for _, conv := range byPartner {
		list = append(list, conv)
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
	return list, nil
}

// History 和某个对端的聊天记录 按时间正序
func (s *MessageService) History(ctx context.Context, userId, partnerId, page int64) ([]model.Message, error) {
	if err := s.checkUsers(ctx, userId, partnerId); err != nil {
		return nil, err
	}
	list, err := utils.RetryRead(ctx, func() ([]model.Message, error) {
		return s.messages.History(ctx, userId, partnerId, page)
	})
	if err != nil {
		hlog.CtxErrorf(ctx, "Failed to query history %d<->%d: %v", userId, partnerId, err)
		return nil, storeErr(err)
	}
	return list, nil
}

// MarkConversationRead 进入会话时把对端发来的全部置已读 重复调用无副作用
func (s *MessageService) MarkConversationRead(ctx context.Context, userId, partnerId int64) error {
	if err := s.checkUsers(ctx, userId, partnerId); err != nil {
		return err
	}
	if err := s.messages.MarkConversationRead(ctx, userId, partnerId); err != nil {
		hlog.CtxErrorf(ctx, "Failed to mark conversation read %d<-%d: %v", userId, partnerId, err)
		return storeErr(err)
	}
	return nil
}

// UnreadTotal 私信未读总数 给消息tab的小红点用
func (s *MessageService) UnreadTotal(ctx context.Context, userId int64) (int64, error) {
	if err := s.checkUsers(ctx, userId); err != nil {
		return 0, err
	}
	total, err := utils.RetryRead(ctx, func() (int64, error) {
		return s.messages.UnreadTotal(ctx, userId)
	})
	if err != nil {
		hlog.CtxErrorf(ctx, "Failed to count unread messages for user %d: %v", userId, err)
		return 0, storeErr(err)
	}
	return total, nil
}

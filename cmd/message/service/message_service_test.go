package service

import (
	"context"
	"testing"
	"time"

	"TokWave.com/cmd/model"
	"TokWave.com/pkg/errno"
)

type fakeUserStore struct {
	users map[int64]bool
}

func (f *fakeUserStore) UserExists(ctx context.Context, userId int64) (bool, error) {
	return f.users[userId], nil
}

type fakeMessageStore struct {
	mutual   map[[2]int64]bool
	messages []*model.Message
	nextId   int64
	now      time.Time
}

func newFakeMessageStore() *fakeMessageStore {
	return &fakeMessageStore{
		mutual: make(map[[2]int64]bool),
		now:    time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (f *fakeMessageStore) setMutual(a, b int64) {
	f.mutual[[2]int64{a, b}] = true
	f.mutual[[2]int64{b, a}] = true
}

func (f *fakeMessageStore) BothFollow(ctx context.Context, fromId, toId int64) (bool, error) {
	return f.mutual[[2]int64{fromId, toId}], nil
}

func (f *fakeMessageStore) CreateMessage(ctx context.Context, msg *model.Message) error {
	f.nextId++
	msg.Id = f.nextId
	f.now = f.now.Add(time.Minute)
	msg.CreatedAt = f.now
	f.messages = append(f.messages, msg)
	return nil
}

func (f *fakeMessageStore) SentConversations(ctx context.Context, userId int64) ([]model.Conversation, error) {
	latest := make(map[int64]*model.Message)
	for _, msg := range f.messages {
		if msg.FromId != userId {
			continue
		}
		if cur, ok := latest[msg.ToId]; !ok || msg.CreatedAt.After(cur.CreatedAt) {
			latest[msg.ToId] = msg
		}
	}
	list := make([]model.Conversation, 0, len(latest))
	for partnerId, msg := range latest {
		list = append(list, model.Conversation{
			PartnerId: partnerId,
			Content:   msg.Content,
			CreatedAt: msg.CreatedAt,
		})
	}
	return list, nil
}

func (f *fakeMessageStore) ReceivedConversations(ctx context.Context, userId int64) ([]model.Conversation, error) {
	latest := make(map[int64]*model.Message)
	unread := make(map[int64]int64)
	for _, msg := range f.messages {
		if msg.ToId != userId {
			continue
		}
		if cur, ok := latest[msg.FromId]; !ok || msg.CreatedAt.After(cur.CreatedAt) {
			latest[msg.FromId] = msg
		}
		if !msg.IsRead {
			unread[msg.FromId]++
		}
	}
	list := make([]model.Conversation, 0, len(latest))
	for partnerId, msg := range latest {
		list = append(list, model.Conversation{
			PartnerId: partnerId,
			Content:   msg.Content,
			Unread:    unread[partnerId],
			CreatedAt: msg.CreatedAt,
		})
	}
	return list, nil
}

func (f *fakeMessageStore) History(ctx context.Context, userId, partnerId, page int64) ([]model.Message, error) {
	list := make([]model.Message, 0)
	for _, msg := range f.messages {
		if (msg.FromId == userId && msg.ToId == partnerId) ||
			(msg.FromId == partnerId && msg.ToId == userId) {
			list = append(list, *msg)
		}
	}
	return list, nil
}

func (f *fakeMessageStore) MarkConversationRead(ctx context.Context, userId, partnerId int64) error {
	for _, msg := range f.messages {
		if msg.FromId == partnerId && msg.ToId == userId {
			msg.IsRead = true
		}
	}
	return nil
}

func (f *fakeMessageStore) UnreadTotal(ctx context.Context, userId int64) (int64, error) {
	var count int64
	for _, msg := range f.messages {
		if msg.ToId == userId && !msg.IsRead {
			count++
		}
	}
	return count, nil
}

func newTestService(userIds ...int64) (*MessageService, *fakeMessageStore) {
	users := &fakeUserStore{users: make(map[int64]bool)}
	for _, id := range userIds {
		users.users[id] = true
	}
	store := newFakeMessageStore()
	return NewMessageService(users, store), store
}

func TestSendMessage(t *testing.T) {
	ctx := context.Background()

	t.Run("one-way follow forbidden", func(t *testing.T) {
		svc, _ := newTestService(1, 2)
		if err := svc.SendMessage(ctx, 1, 2, "hi"); err != errno.MessageForbidErr {
			t.Fatalf("expected MessageForbidErr, got %v", err)
		}
	})

	t.Run("mutual follow allowed", func(t *testing.T) {
		svc, store := newTestService(1, 2)
		store.setMutual(1, 2)

		if err := svc.SendMessage(ctx, 1, 2, "hi"); err != nil {
			t.Fatalf("SendMessage: %v", err)
		}
		if len(store.messages) != 1 {
			t.Fatalf("expected 1 message, got %d", len(store.messages))
		}
		if store.messages[0].IsRead {
			t.Fatal("expected new message to start unread")
		}
	})

	t.Run("self message rejected", func(t *testing.T) {
		svc, _ := newTestService(1)
		err := svc.SendMessage(ctx, 1, 1, "hi")
		if err == nil || errno.ConvertErr(err).ErrCode != errno.ParamErrCode {
			t.Fatalf("expected param error, got %v", err)
		}
	})

	t.Run("empty content rejected", func(t *testing.T) {
		svc, store := newTestService(1, 2)
		store.setMutual(1, 2)
		if err := svc.SendMessage(ctx, 1, 2, ""); err == nil {
			t.Fatal("expected error for empty content")
		}
	})
}

func TestConversations(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(1, 2, 3)
	store.setMutual(1, 2)
	store.setMutual(1, 3)

	_ = svc.SendMessage(ctx, 1, 2, "to 2")
	_ = svc.SendMessage(ctx, 2, 1, "from 2 a")
	_ = svc.SendMessage(ctx, 2, 1, "from 2 b")
	_ = svc.SendMessage(ctx, 1, 3, "to 3")

	list, err := svc.Conversations(ctx, 1)
	if err != nil {
		t.Fatalf("Conversations: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected one row per partner, got %d", len(list))
	}
	// 最新会话在前
	if list[0].PartnerId != 3 || list[1].PartnerId != 2 {
		t.Fatalf("expected partners [3 2], got %+v", list)
	}
	if list[1].Unread != 2 {
		t.Fatalf("expected 2 unread from partner 2, got %d", list[1].Unread)
	}
	if list[1].Content != "from 2 b" {
		t.Fatalf("expected latest message content, got %q", list[1].Content)
	}
}

func TestMarkConversationRead(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(1, 2)
	store.setMutual(1, 2)

	_ = svc.SendMessage(ctx, 2, 1, "a")
	_ = svc.SendMessage(ctx, 2, 1, "b")
	_ = svc.SendMessage(ctx, 1, 2, "c")

	total, err := svc.UnreadTotal(ctx, 1)
	if err != nil {
		t.Fatalf("UnreadTotal: %v", err)
	}
	if total != 2 {
		t.Fatalf("expected 2 unread, got %d", total)
	}

	if err := svc.MarkConversationRead(ctx, 1, 2); err != nil {
		t.Fatalf("MarkConversationRead: %v", err)
	}
	total, _ = svc.UnreadTotal(ctx, 1)
	if total != 0 {
		t.Fatalf("expected 0 unread after mark, got %d", total)
	}

	// 对端的未读不受影响
	total, _ = svc.UnreadTotal(ctx, 2)
	if total != 1 {
		t.Fatalf("expected partner still has 1 unread, got %d", total)
	}

	// 重复标记无副作用
	if err := svc.MarkConversationRead(ctx, 1, 2); err != nil {
		t.Fatalf("MarkConversationRead again: %v", err)
	}
}

func TestHistory(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(1, 2)
	store.setMutual(1, 2)

	_ = svc.SendMessage(ctx, 1, 2, "first")
	_ = svc.SendMessage(ctx, 2, 1, "second")

	list, err := svc.History(ctx, 1, 2, 1)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(list))
	}
	if list[0].Content != "first" || list[1].Content != "second" {
		t.Fatalf("expected chronological order, got %+v", list)
	}
}

// cancellingStore 第一路查询返回时取消ctx 用来观察第二路是否还会被执行
type cancellingStore struct {
	*fakeMessageStore
	cancel         context.CancelFunc
	receivedCalled bool
}

func (c *cancellingStore) SentConversations(ctx context.Context, userId int64) ([]model.Conversation, error) {
	list, err := c.fakeMessageStore.SentConversations(ctx, userId)
	c.cancel()
	return list, err
}

func (c *cancellingStore) ReceivedConversations(ctx context.Context, userId int64) ([]model.Conversation, error) {
	c.receivedCalled = true
	return c.fakeMessageStore.ReceivedConversations(ctx, userId)
}

func TestConversationsCancelledMidway(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	users := &fakeUserStore{users: map[int64]bool{1: true, 2: true}}
	inner := newFakeMessageStore()
	inner.setMutual(1, 2)
	store := &cancellingStore{fakeMessageStore: inner, cancel: cancel}
	svc := NewMessageService(users, store)

	_ = svc.SendMessage(ctx, 1, 2, "hi")

	list, err := svc.Conversations(ctx, 1)
	if err == nil {
		t.Fatal("expected error for context cancelled between sub-queries")
	}
	if list != nil {
		t.Fatalf("expected no partial result, got %+v", list)
	}
	if store.receivedCalled {
		t.Fatal("expected second sub-query to be skipped after cancellation")
	}
}

package service

import (
	"context"
	"sync"
	"testing"

	"TokWave.com/cmd/model"
	"TokWave.com/pkg/errno"
	"TokWave.com/pkg/lock"
)

type fakeUserStore struct {
	users map[int64]bool
}

func (f *fakeUserStore) UserExists(ctx context.Context, userId int64) (bool, error) {
	return f.users[userId], nil
}

type fakeRelationStore struct {
	mu     sync.Mutex
	edges  map[[2]int64]*model.UserRelation
	nextId int64
}

func newFakeRelationStore() *fakeRelationStore {
	return &fakeRelationStore{edges: make(map[[2]int64]*model.UserRelation)}
}

func (f *fakeRelationStore) GetEdge(ctx context.Context, fromId, toId int64) (*model.UserRelation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	edge, ok := f.edges[[2]int64{fromId, toId}]
	if !ok {
		return nil, nil
	}
	clone := *edge
	return &clone, nil
}

func (f *fakeRelationStore) CreateEdge(ctx context.Context, edge *model.UserRelation) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextId++
	edge.Id = f.nextId
	clone := *edge
	f.edges[[2]int64{edge.FromId, edge.ToId}] = &clone
	return nil
}

func (f *fakeRelationStore) DeleteEdge(ctx context.Context, fromId, toId int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.edges, [2]int64{fromId, toId})
	return nil
}

func (f *fakeRelationStore) SetBothStatus(ctx context.Context, fromId, toId int64, both bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if edge, ok := f.edges[[2]int64{fromId, toId}]; ok {
		edge.BothStatus = both
	}
	return nil
}

func (f *fakeRelationStore) FanCount(ctx context.Context, userId int64) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var count int64
	for key := range f.edges {
		if key[1] == userId {
			count++
		}
	}
	return count, nil
}

func (f *fakeRelationStore) FollowingCount(ctx context.Context, userId int64) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var count int64
	for key := range f.edges {
		if key[0] == userId {
			count++
		}
	}
	return count, nil
}

func (f *fakeRelationStore) FansPage(ctx context.Context, userId, page int64) ([]model.FanItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	list := make([]model.FanItem, 0)
	for key, edge := range f.edges {
		if key[1] == userId {
			list = append(list, model.FanItem{UserId: key[0], BothStatus: edge.BothStatus})
		}
	}
	return list, nil
}

func (f *fakeRelationStore) FollowingsPage(ctx context.Context, userId, page int64) ([]model.FanItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	list := make([]model.FanItem, 0)
	for key, edge := range f.edges {
		if key[0] == userId {
			list = append(list, model.FanItem{UserId: key[1], BothStatus: edge.BothStatus})
		}
	}
	return list, nil
}

func (f *fakeRelationStore) Contacts(ctx context.Context, userId int64) ([]model.FanItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	list := make([]model.FanItem, 0)
	for key, edge := range f.edges {
		if key[0] == userId && edge.BothStatus {
			list = append(list, model.FanItem{UserId: key[1], BothStatus: true})
		}
	}
	return list, nil
}

func (f *fakeRelationStore) Transaction(ctx context.Context, fn func(RelationStore) error) error {
	return fn(f)
}

func newTestService(userIds ...int64) (*RelationService, *fakeRelationStore) {
	users := &fakeUserStore{users: make(map[int64]bool)}
	for _, id := range userIds {
		users.users[id] = true
	}
	store := newFakeRelationStore()
	return NewRelationService(users, store, lock.NewKeyMutex()), store
}

func TestToggleFollow(t *testing.T) {
	ctx := context.Background()

	t.Run("follow then unfollow returns to none", func(t *testing.T) {
		svc, _ := newTestService(1, 2)

		followed, err := svc.ToggleFollow(ctx, 1, 2)
		if err != nil {
			t.Fatalf("ToggleFollow: %v", err)
		}
		if !followed {
			t.Fatal("expected followed=true after first toggle")
		}

		state, err := svc.QueryRelation(ctx, 1, 2)
		if err != nil {
			t.Fatalf("QueryRelation: %v", err)
		}
		if state != model.RelationFollow {
			t.Fatalf("expected follow, got %s", state)
		}

		followed, err = svc.ToggleFollow(ctx, 1, 2)
		if err != nil {
			t.Fatalf("ToggleFollow: %v", err)
		}
		if followed {
			t.Fatal("expected followed=false after second toggle")
		}

		state, err = svc.QueryRelation(ctx, 1, 2)
		if err != nil {
			t.Fatalf("QueryRelation: %v", err)
		}
		if state != model.RelationNone {
			t.Fatalf("expected none, got %s", state)
		}
	})

	t.Run("self follow rejected", func(t *testing.T) {
		svc, _ := newTestService(1)
		if _, err := svc.ToggleFollow(ctx, 1, 1); err != errno.SelfFollowErr {
			t.Fatalf("expected SelfFollowErr, got %v", err)
		}
	})

	t.Run("unknown user rejected", func(t *testing.T) {
		svc, _ := newTestService(1)
		if _, err := svc.ToggleFollow(ctx, 1, 99); err != errno.UserNotExistErr {
			t.Fatalf("expected UserNotExistErr, got %v", err)
		}
	})
}

func TestBothStatusMaintenance(t *testing.T) {
	ctx := context.Background()

	t.Run("mutual follow sets both_status on both edges", func(t *testing.T) {
		svc, store := newTestService(1, 2)

		if _, err := svc.ToggleFollow(ctx, 1, 2); err != nil {
			t.Fatalf("ToggleFollow 1->2: %v", err)
		}
		if _, err := svc.ToggleFollow(ctx, 2, 1); err != nil {
			t.Fatalf("ToggleFollow 2->1: %v", err)
		}

		own, _ := store.GetEdge(ctx, 1, 2)
		rev, _ := store.GetEdge(ctx, 2, 1)
		if own == nil || rev == nil {
			t.Fatal("expected both edges to exist")
		}
		if !own.BothStatus || !rev.BothStatus {
			t.Fatalf("expected both_status=true on both edges, got %v/%v", own.BothStatus, rev.BothStatus)
		}

		for _, pair := range [][2]int64{{1, 2}, {2, 1}} {
			state, err := svc.QueryRelation(ctx, pair[0], pair[1])
			if err != nil {
				t.Fatalf("QueryRelation %v: %v", pair, err)
			}
			if state != model.RelationBoth {
				t.Fatalf("expected both for %v, got %s", pair, state)
			}
		}
	})

	t.Run("unfollow demotes surviving edge", func(t *testing.T) {
		svc, store := newTestService(1, 2)

		_, _ = svc.ToggleFollow(ctx, 1, 2)
		_, _ = svc.ToggleFollow(ctx, 2, 1)
		if _, err := svc.ToggleFollow(ctx, 1, 2); err != nil {
			t.Fatalf("ToggleFollow unfollow: %v", err)
		}

		if own, _ := store.GetEdge(ctx, 1, 2); own != nil {
			t.Fatal("expected edge 1->2 to be deleted")
		}
		rev, _ := store.GetEdge(ctx, 2, 1)
		if rev == nil {
			t.Fatal("expected edge 2->1 to survive")
		}
		if rev.BothStatus {
			t.Fatal("expected both_status=false on surviving edge")
		}

		state, err := svc.QueryRelation(ctx, 1, 2)
		if err != nil {
			t.Fatalf("QueryRelation: %v", err)
		}
		if state != model.RelationFan {
			t.Fatalf("expected fan, got %s", state)
		}
		state, err = svc.QueryRelation(ctx, 2, 1)
		if err != nil {
			t.Fatalf("QueryRelation: %v", err)
		}
		if state != model.RelationFollow {
			t.Fatalf("expected follow, got %s", state)
		}
	})
}

func TestQueryRelation(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(1, 2)

	t.Run("me beats everything", func(t *testing.T) {
		state, err := svc.QueryRelation(ctx, 1, 1)
		if err != nil {
			t.Fatalf("QueryRelation: %v", err)
		}
		if state != model.RelationMe {
			t.Fatalf("expected me, got %s", state)
		}
	})

	t.Run("no edges means none", func(t *testing.T) {
		state, err := svc.QueryRelation(ctx, 1, 2)
		if err != nil {
			t.Fatalf("QueryRelation: %v", err)
		}
		if state != model.RelationNone {
			t.Fatalf("expected none, got %s", state)
		}
	})

	t.Run("reverse edge only means fan", func(t *testing.T) {
		if _, err := svc.ToggleFollow(ctx, 2, 1); err != nil {
			t.Fatalf("ToggleFollow: %v", err)
		}
		state, err := svc.QueryRelation(ctx, 1, 2)
		if err != nil {
			t.Fatalf("QueryRelation: %v", err)
		}
		if state != model.RelationFan {
			t.Fatalf("expected fan, got %s", state)
		}
	})
}

func TestRelationCounts(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(1, 2, 3)

	_, _ = svc.ToggleFollow(ctx, 2, 1)
	_, _ = svc.ToggleFollow(ctx, 3, 1)
	_, _ = svc.ToggleFollow(ctx, 1, 2)

	fans, err := svc.FanCount(ctx, 1)
	if err != nil {
		t.Fatalf("FanCount: %v", err)
	}
	if fans != 2 {
		t.Fatalf("expected 2 fans, got %d", fans)
	}
	followings, err := svc.FollowingCount(ctx, 1)
	if err != nil {
		t.Fatalf("FollowingCount: %v", err)
	}
	if followings != 1 {
		t.Fatalf("expected 1 following, got %d", followings)
	}

	contacts, err := svc.Contacts(ctx, 1)
	if err != nil {
		t.Fatalf("Contacts: %v", err)
	}
	if len(contacts) != 1 || contacts[0].UserId != 2 {
		t.Fatalf("expected contact with user 2, got %v", contacts)
	}
}

// 两个方向同时反复切换 对锁保证每次check-then-act原子
// 停下来之后两条边都在 冗余标记必须在两条边上都为true
func TestConcurrentToggleKeepsBothStatusConsistent(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(1, 2)

	const rounds = 101 // 奇数 结束时两条边都存在
	var wg sync.WaitGroup
	errCh := make(chan error, 2)
	for _, pair := range [][2]int64{{1, 2}, {2, 1}} {
		wg.Add(1)
		go func(fromId, toId int64) {
			defer wg.Done()
			for i := 0; i < rounds; i++ {
				if _, err := svc.ToggleFollow(ctx, fromId, toId); err != nil {
					errCh <- err
					return
				}
			}
		}(pair[0], pair[1])
	}
	wg.Wait()
	close(errCh)
	for err := range errCh {
		t.Fatalf("ToggleFollow: %v", err)
	}

	own, _ := store.GetEdge(ctx, 1, 2)
	rev, _ := store.GetEdge(ctx, 2, 1)
	if own == nil || rev == nil {
		t.Fatalf("expected both edges after odd toggle counts, got %v/%v", own, rev)
	}
	if !own.BothStatus || !rev.BothStatus {
		t.Fatalf("expected both_status=true on both edges, got %v/%v", own.BothStatus, rev.BothStatus)
	}
	for _, pair := range [][2]int64{{1, 2}, {2, 1}} {
		state, err := svc.QueryRelation(ctx, pair[0], pair[1])
		if err != nil {
			t.Fatalf("QueryRelation %v: %v", pair, err)
		}
		if state != model.RelationBoth {
			t.Fatalf("expected both for %v, got %s", pair, state)
		}
	}
}

type fakeTimeoutErr struct{}

func (fakeTimeoutErr) Error() string   { return "i/o timeout" }
func (fakeTimeoutErr) Timeout() bool   { return true }
func (fakeTimeoutErr) Temporary() bool { return true }

// flakyUserStore 前failures次调用超时 之后正常返回
type flakyUserStore struct {
	failures int
	calls    int
}

func (f *flakyUserStore) UserExists(ctx context.Context, userId int64) (bool, error) {
	f.calls++
	if f.calls <= f.failures {
		return false, fakeTimeoutErr{}
	}
	return true, nil
}

func TestReadTimeoutHandling(t *testing.T) {
	ctx := context.Background()

	t.Run("single timeout is absorbed by the retry", func(t *testing.T) {
		users := &flakyUserStore{failures: 1}
		svc := NewRelationService(users, newFakeRelationStore(), lock.NewKeyMutex())

		state, err := svc.QueryRelation(ctx, 1, 2)
		if err != nil {
			t.Fatalf("QueryRelation: %v", err)
		}
		if state != model.RelationNone {
			t.Fatalf("expected none, got %s", state)
		}
		if users.calls != 3 { // 第一个用户重试一次 第二个用户一次通过
			t.Fatalf("expected 3 UserExists calls, got %d", users.calls)
		}
	})

	t.Run("persistent timeout surfaces as unavailable", func(t *testing.T) {
		users := &flakyUserStore{failures: 100}
		svc := NewRelationService(users, newFakeRelationStore(), lock.NewKeyMutex())

		_, err := svc.QueryRelation(ctx, 1, 2)
		if err != errno.UnavailableErr {
			t.Fatalf("expected UnavailableErr, got %v", err)
		}
		if users.calls != 2 { // 只内部重试一次 不无限重试
			t.Fatalf("expected 2 UserExists calls, got %d", users.calls)
		}
	})
}

package service

import (
	"context"
	"fmt"
	"sync"

	"TokWave.com/cmd/model"
	"TokWave.com/pkg/mq"
)

// 内存假实现 覆盖service依赖的全部窄接口

type fakeUserStore struct {
	users map[int64]bool
}

func (f *fakeUserStore) UserExists(ctx context.Context, userId int64) (bool, error) {
	return f.users[userId], nil
}

type fakeVideoStore struct {
	videos map[int64]*model.Video
	nextId int64
}

func newFakeVideoStore(videoIds ...int64) *fakeVideoStore {
	f := &fakeVideoStore{videos: make(map[int64]*model.Video), nextId: 1000}
	for _, id := range videoIds {
		f.videos[id] = &model.Video{VideoId: id}
	}
	return f
}

func (f *fakeVideoStore) VideoExists(ctx context.Context, videoId int64) (bool, error) {
	_, ok := f.videos[videoId]
	return ok, nil
}

func (f *fakeVideoStore) CreateVideo(ctx context.Context, video *model.Video) error {
	f.nextId++
	video.VideoId = f.nextId
	f.videos[video.VideoId] = video
	return nil
}

type fakeLikeStore struct {
	likes  map[int64]*model.Like
	nextId int64
}

func newFakeLikeStore() *fakeLikeStore {
	return &fakeLikeStore{likes: make(map[int64]*model.Like)}
}

func (f *fakeLikeStore) GetVideoLike(ctx context.Context, userId, videoId int64) (*model.Like, error) {
	for _, like := range f.likes {
		if like.UserId == userId && like.VideoId == videoId && like.CommentId == 0 {
			return like, nil
		}
	}
	return nil, nil
}

func (f *fakeLikeStore) GetCommentLike(ctx context.Context, userId, commentId int64) (*model.Like, error) {
	for _, like := range f.likes {
		if like.UserId == userId && like.CommentId == commentId {
			return like, nil
		}
	}
	return nil, nil
}

func (f *fakeLikeStore) CreateLike(ctx context.Context, like *model.Like) error {
	f.nextId++
	like.LikeId = f.nextId
	f.likes[like.LikeId] = like
	return nil
}

func (f *fakeLikeStore) DeleteLike(ctx context.Context, likeId int64) error {
	delete(f.likes, likeId)
	return nil
}

func (f *fakeLikeStore) CountVideoLikes(ctx context.Context, videoId int64) (int64, error) {
	var count int64
	for _, like := range f.likes {
		if like.VideoId == videoId && like.CommentId == 0 {
			count++
		}
	}
	return count, nil
}

func (f *fakeLikeStore) TotalLikesReceived(ctx context.Context, userId int64) (int64, error) {
	return 0, nil
}

type fakeCommentStore struct {
	comments map[int64]*model.Comment
	nextId   int64
}

func newFakeCommentStore() *fakeCommentStore {
	return &fakeCommentStore{comments: make(map[int64]*model.Comment)}
}

func (f *fakeCommentStore) CreateComment(ctx context.Context, comment *model.Comment) error {
	f.nextId++
	comment.CommentId = f.nextId
	f.comments[comment.CommentId] = comment
	return nil
}

func (f *fakeCommentStore) CommentExists(ctx context.Context, commentId int64) (bool, error) {
	_, ok := f.comments[commentId]
	return ok, nil
}

func (f *fakeCommentStore) CountVideoComments(ctx context.Context, videoId int64) (int64, error) {
	var count int64
	for _, comment := range f.comments {
		if comment.VideoId == videoId {
			count++
		}
	}
	return count, nil
}

type fakeWatchStore struct {
	counts map[int64]int64
}

func (f *fakeWatchStore) CreateWatch(ctx context.Context, userId, videoId int64) error {
	f.counts[videoId]++
	return nil
}

func (f *fakeWatchStore) CountWatches(ctx context.Context, videoId int64) (int64, error) {
	return f.counts[videoId], nil
}

type fakeShareStore struct {
	counts map[int64]int64
}

func (f *fakeShareStore) CreateShare(ctx context.Context, userId, videoId int64) error {
	f.counts[videoId]++
	return nil
}

func (f *fakeShareStore) CountShares(ctx context.Context, videoId int64) (int64, error) {
	return f.counts[videoId], nil
}

type fakeMentionStore struct {
	mentions []*model.Mention
}

func (f *fakeMentionStore) CreateMention(ctx context.Context, mention *model.Mention) error {
	f.mentions = append(f.mentions, mention)
	return nil
}

// fakeCounter 和真实计数缓存一样在读取时截断负值
type fakeCounter struct {
	mu      sync.Mutex
	values  map[string]int64
	failing bool
}

func newFakeCounter() *fakeCounter {
	return &fakeCounter{values: make(map[string]int64)}
}

func (f *fakeCounter) key(kind string, videoId int64) string {
	return fmt.Sprintf("%s:%d", kind, videoId)
}

func (f *fakeCounter) IncrVideo(ctx context.Context, kind string, videoId, delta int64) error {
	if f.failing {
		return fmt.Errorf("counter store down")
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values[f.key(kind, videoId)] += delta
	return nil
}

func (f *fakeCounter) VideoCount(ctx context.Context, kind string, videoId int64) (int64, error) {
	if f.failing {
		return 0, fmt.Errorf("counter store down")
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	value := f.values[f.key(kind, videoId)]
	if value < 0 {
		return 0, nil
	}
	return value, nil
}

func (f *fakeCounter) InitVideoCounters(ctx context.Context, videoId int64) error {
	if f.failing {
		return fmt.Errorf("counter store down")
	}
	return nil
}

func (f *fakeCounter) InitCommentCounter(ctx context.Context, videoId, commentId int64) error {
	if f.failing {
		return fmt.Errorf("counter store down")
	}
	return nil
}

func (f *fakeCounter) IncrCommentLike(ctx context.Context, videoId, commentId, delta int64) error {
	if f.failing {
		return fmt.Errorf("counter store down")
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values[fmt.Sprintf("commentLikeNum:%d:%d", videoId, commentId)] += delta
	return nil
}

func (f *fakeCounter) CommentLikeCount(ctx context.Context, videoId, commentId int64) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	value := f.values[fmt.Sprintf("commentLikeNum:%d:%d", videoId, commentId)]
	if value < 0 {
		return 0, nil
	}
	return value, nil
}

func (f *fakeCounter) SetVideo(ctx context.Context, kind string, videoId, value int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values[f.key(kind, videoId)] = value
	return nil
}

type fakeProducer struct {
	events []*mq.EngagementEvent
}

func (f *fakeProducer) PublishEngagementEvent(ctx context.Context, event *mq.EngagementEvent) error {
	f.events = append(f.events, event)
	return nil
}

func commentFor(videoId, userId int64) *model.Comment {
	return &model.Comment{VideoId: videoId, UserId: userId}
}

func newFakeUsers(userIds ...int64) *fakeUserStore {
	users := &fakeUserStore{users: make(map[int64]bool)}
	for _, id := range userIds {
		users.users[id] = true
	}
	return users
}

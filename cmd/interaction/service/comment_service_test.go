package service

import (
	"context"
	"testing"

	"TokWave.com/pkg/constants"
	"TokWave.com/pkg/errno"
)

func TestPostComment(t *testing.T) {
	ctx := context.Background()

	newSvc := func() (*CommentService, *fakeCommentStore, *fakeCounter) {
		comments := newFakeCommentStore()
		counter := newFakeCounter()
		svc := NewCommentService(newFakeUsers(1, 2), newFakeVideoStore(10), comments, counter, &fakeProducer{})
		return svc, comments, counter
	}

	t.Run("root comment bumps video comment counter", func(t *testing.T) {
		svc, _, counter := newSvc()

		comment, err := svc.PostComment(ctx, 1, 10, "nice", 0)
		if err != nil {
			t.Fatalf("PostComment: %v", err)
		}
		if comment.CommentId == 0 {
			t.Fatal("expected comment id to be assigned")
		}
		if comment.ReplyId != 0 {
			t.Fatalf("expected root comment, got reply_id=%d", comment.ReplyId)
		}
		if n, _ := counter.VideoCount(ctx, constants.KeyCommentNum, 10); n != 1 {
			t.Fatalf("expected comment counter 1, got %d", n)
		}
	})

	t.Run("reply requires existing parent", func(t *testing.T) {
		svc, _, _ := newSvc()

		if _, err := svc.PostComment(ctx, 1, 10, "reply", 999); err != errno.CommentNotExistErr {
			t.Fatalf("expected CommentNotExistErr, got %v", err)
		}
	})

	t.Run("reply to existing comment accepted", func(t *testing.T) {
		svc, _, counter := newSvc()

		parent, err := svc.PostComment(ctx, 1, 10, "root", 0)
		if err != nil {
			t.Fatalf("PostComment root: %v", err)
		}
		reply, err := svc.PostComment(ctx, 2, 10, "reply", parent.CommentId)
		if err != nil {
			t.Fatalf("PostComment reply: %v", err)
		}
		if reply.ReplyId != parent.CommentId {
			t.Fatalf("expected reply_id=%d, got %d", parent.CommentId, reply.ReplyId)
		}
		if n, _ := counter.VideoCount(ctx, constants.KeyCommentNum, 10); n != 2 {
			t.Fatalf("expected comment counter 2, got %d", n)
		}
	})

	t.Run("missing video rejected", func(t *testing.T) {
		svc, _, _ := newSvc()
		if _, err := svc.PostComment(ctx, 1, 999, "nope", 0); err != errno.VideoNotExistErr {
			t.Fatalf("expected VideoNotExistErr, got %v", err)
		}
	})

	t.Run("missing user rejected", func(t *testing.T) {
		svc, _, _ := newSvc()
		if _, err := svc.PostComment(ctx, 99, 10, "nope", 0); err != errno.UserNotExistErr {
			t.Fatalf("expected UserNotExistErr, got %v", err)
		}
	})
}

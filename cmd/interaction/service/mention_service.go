package service

import (
	"context"

	"TokWave.com/cmd/model"
	"TokWave.com/pkg/errno"
	"TokWave.com/pkg/utils"
	"github.com/cloudwego/hertz/pkg/common/hlog"
)

type MentionService struct {
	users    UserStore
	mentions MentionStore
}

func NewMentionService(users UserStore, mentions MentionStore) *MentionService {
	return &MentionService{users: users, mentions: mentions}
}

// CreateMentions 在视频或评论里@一批用户 每个被@的用户一条未读记录
func (s *MentionService) CreateMentions(ctx context.Context, userId int64, atUserIds []int64, videoId, commentId int64) error {
	ok, err := utils.RetryRead(ctx, func() (bool, error) {
		return s.users.UserExists(ctx, userId)
	})
	if err != nil {
		hlog.CtxErrorf(ctx, "Failed to check user: %v", err)
		return storeErr(err)
	}
	if !ok {
		return errno.UserNotExistErr
	}

	for _, atUserId := range atUserIds {
		if err := s.mentions.CreateMention(ctx, &model.Mention{
			UserId:    userId,
			AtUserId:  atUserId,
			VideoId:   videoId,
			CommentId: commentId,
			IsRead:    false,
		}); err != nil {
			hlog.CtxErrorf(ctx, "Failed to create mention for user %d: %v", atUserId, err)
			return storeErr(err)
		}
	}
	return nil
}

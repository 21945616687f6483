package db

import (
	"context"
	"time"

	"TokWave.com/cmd/model"
	"TokWave.com/pkg/constants"
	"TokWave.com/pkg/utils"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// NoticeRepo 通知聚合的全部读写 只碰账本和关系表 从不碰计数缓存
// 未读语义是按接收者精确计算的 缓存给不了这种精度
type NoticeRepo struct {
	db *gorm.DB
}

func NewNoticeRepo(db *gorm.DB) *NoticeRepo {
	return &NoticeRepo{db: db}
}

// === 粉丝频道 ===

func (r *NoticeRepo) FanUnreadCount(ctx context.Context, userId int64) (count int64, err error) {
	if err := r.db.WithContext(ctx).Model(&model.UserRelation{}).
		Where("to_id = ? And is_read = false", userId).Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "count unread fans")
	}
	return count, nil
}

func (r *NoticeRepo) MarkFansRead(ctx context.Context, userId int64) error {
	if err := r.db.WithContext(ctx).Model(&model.UserRelation{}).
		Where("to_id = ?", userId).Update("is_read", true).Error; err != nil {
		return errors.Wrap(err, "mark fans read")
	}
	return nil
}

// === 赞频道 ===

// VideoLikeUnreadCount 名下视频收到的未读赞
func (r *NoticeRepo) VideoLikeUnreadCount(ctx context.Context, userId int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Raw(`select count(*) from videos
		inner join likes on videos.video_id = likes.video_id and likes.comment_id = 0
		where videos.user_id = ? and likes.is_read = false`, userId).Scan(&count).Error
	if err != nil {
		return 0, errors.Wrap(err, "count unread video likes")
	}
	return count, nil
}

// CommentLikeUnreadCount 名下评论收到的未读赞
func (r *NoticeRepo) CommentLikeUnreadCount(ctx context.Context, userId int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Raw(`select count(*) from comments
		inner join likes on comments.comment_id = likes.comment_id
		where comments.user_id = ? and likes.is_read = false`, userId).Scan(&count).Error
	if err != nil {
		return 0, errors.Wrap(err, "count unread comment likes")
	}
	return count, nil
}

func (r *NoticeRepo) VideoLikesPage(ctx context.Context, userId, page int64) ([]model.LikeNotice, error) {
	list := make([]model.LikeNotice, 0)
	err := r.db.WithContext(ctx).Raw(`select videos.video_id, videos.video_cover, likes.user_id,
		user_infos.user_avatar, user_infos.user_nickname, likes.is_read, likes.created_at
		from videos
		inner join likes on videos.video_id = likes.video_id and likes.comment_id = 0
		inner join user_infos on likes.user_id = user_infos.user_id
		where videos.user_id = ?
		order by likes.created_at desc
		limit ? offset ?`, userId, constants.DefaultLimit, utils.PageOffset(page, constants.DefaultLimit)).
		Scan(&list).Error
	if err != nil {
		return nil, errors.Wrap(err, "query video likes page")
	}
	return list, nil
}

func (r *NoticeRepo) CommentLikesPage(ctx context.Context, userId, page int64) ([]model.LikeNotice, error) {
	list := make([]model.LikeNotice, 0)
	err := r.db.WithContext(ctx).Raw(`select comments.comment_id, comments.content as comment_content, likes.user_id,
		user_infos.user_avatar, user_infos.user_nickname, likes.is_read, likes.created_at
		from comments
		inner join likes on comments.comment_id = likes.comment_id
		inner join user_infos on likes.user_id = user_infos.user_id
		where comments.user_id = ?
		order by likes.created_at desc
		limit ? offset ?`, userId, constants.DefaultLimit, utils.PageOffset(page, constants.DefaultLimit)).
		Scan(&list).Error
	if err != nil {
		return nil, errors.Wrap(err, "query comment likes page")
	}
	return list, nil
}

func (r *NoticeRepo) MarkVideoLikesRead(ctx context.Context, userId int64) error {
	err := r.db.WithContext(ctx).Exec(`update likes
		inner join videos on videos.video_id = likes.video_id and likes.comment_id = 0
		set likes.is_read = true
		where videos.user_id = ?`, userId).Error
	if err != nil {
		return errors.Wrap(err, "mark video likes read")
	}
	return nil
}

func (r *NoticeRepo) MarkCommentLikesRead(ctx context.Context, userId int64) error {
	err := r.db.WithContext(ctx).Exec(`update likes
		inner join comments on comments.comment_id = likes.comment_id
		set likes.is_read = true
		where comments.user_id = ?`, userId).Error
	if err != nil {
		return errors.Wrap(err, "mark comment likes read")
	}
	return nil
}

// === 评论频道 ===

// VideoCommentUnreadCount 名下视频收到的未读评论
func (r *NoticeRepo) VideoCommentUnreadCount(ctx context.Context, userId int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Raw(`select count(*) from videos
		inner join comments on videos.video_id = comments.video_id
		where videos.user_id = ? and comments.is_read = false`, userId).Scan(&count).Error
	if err != nil {
		return 0, errors.Wrap(err, "count unread video comments")
	}
	return count, nil
}

// ReplyUnreadCount 名下评论收到的未读回复
func (r *NoticeRepo) ReplyUnreadCount(ctx context.Context, userId int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Raw(`select count(*) from comments as c1
		inner join comments as c2 on c1.comment_id = c2.reply_id
		where c1.user_id = ? and c2.is_read = false`, userId).Scan(&count).Error
	if err != nil {
		return 0, errors.Wrap(err, "count unread replies")
	}
	return count, nil
}

func (r *NoticeRepo) VideoCommentsPage(ctx context.Context, userId, page int64) ([]model.CommentNotice, error) {
	list := make([]model.CommentNotice, 0)
	err := r.db.WithContext(ctx).Raw(`select videos.video_id, videos.video_cover, comments.comment_id,
		comments.content as comment_content, comments.is_read, comments.created_at,
		comments.user_id, user_infos.user_nickname, user_infos.user_avatar
		from videos
		inner join comments on videos.video_id = comments.video_id
		inner join user_infos on comments.user_id = user_infos.user_id
		where videos.user_id = ?
		order by comments.created_at desc
		limit ? offset ?`, userId, constants.DefaultLimit, utils.PageOffset(page, constants.DefaultLimit)).
		Scan(&list).Error
	if err != nil {
		return nil, errors.Wrap(err, "query video comments page")
	}
	return list, nil
}

func (r *NoticeRepo) ReplyCommentsPage(ctx context.Context, userId, page int64) ([]model.CommentNotice, error) {
	list := make([]model.CommentNotice, 0)
	err := r.db.WithContext(ctx).Raw(`select videos.video_id, videos.video_cover, c2.comment_id, c2.reply_id,
		c2.content as comment_content, c2.is_read, c2.created_at,
		c2.user_id, user_infos.user_nickname, user_infos.user_avatar
		from comments as c1
		inner join comments as c2 on c1.comment_id = c2.reply_id
		inner join videos on c2.video_id = videos.video_id
		inner join user_infos on c2.user_id = user_infos.user_id
		where c1.user_id = ?
		order by c2.created_at desc
		limit ? offset ?`, userId, constants.DefaultLimit, utils.PageOffset(page, constants.DefaultLimit)).
		Scan(&list).Error
	if err != nil {
		return nil, errors.Wrap(err, "query replies page")
	}
	return list, nil
}

func (r *NoticeRepo) MarkVideoCommentsRead(ctx context.Context, userId int64) error {
	err := r.db.WithContext(ctx).Exec(`update comments
		inner join videos on videos.video_id = comments.video_id
		set comments.is_read = true
		where videos.user_id = ?`, userId).Error
	if err != nil {
		return errors.Wrap(err, "mark video comments read")
	}
	return nil
}

func (r *NoticeRepo) MarkRepliesRead(ctx context.Context, userId int64) error {
	err := r.db.WithContext(ctx).Exec(`update comments as c2
		inner join comments as c1 on c1.comment_id = c2.reply_id
		set c2.is_read = true
		where c1.user_id = ?`, userId).Error
	if err != nil {
		return errors.Wrap(err, "mark replies read")
	}
	return nil
}

// === @频道 ===

func (r *NoticeRepo) MentionUnreadCount(ctx context.Context, userId int64) (count int64, err error) {
	if err := r.db.WithContext(ctx).Model(&model.Mention{}).
		Where("at_user_id = ? And is_read = false", userId).Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "count unread mentions")
	}
	return count, nil
}

func (r *NoticeRepo) MarkMentionsRead(ctx context.Context, userId int64) error {
	if err := r.db.WithContext(ctx).Model(&model.Mention{}).
		Where("at_user_id = ?", userId).Update("is_read", true).Error; err != nil {
		return errors.Wrap(err, "mark mentions read")
	}
	return nil
}

func (r *NoticeRepo) MentionsPage(ctx context.Context, userId, page int64) ([]model.MentionNotice, error) {
	list := make([]model.MentionNotice, 0)
	err := r.db.WithContext(ctx).Raw(`select mentions.user_id, user_infos.user_avatar, user_infos.user_nickname,
		videos.video_id, videos.video_cover, comments.comment_id, comments.content as comment_content,
		mentions.is_read, mentions.created_at
		from mentions
		inner join videos on mentions.video_id = videos.video_id
		inner join user_infos on mentions.user_id = user_infos.user_id
		left join comments on mentions.comment_id = comments.comment_id
		where mentions.at_user_id = ?
		order by mentions.created_at desc
		limit ? offset ?`, userId, constants.DefaultLimit, utils.PageOffset(page, constants.DefaultLimit)).
		Scan(&list).Error
	if err != nil {
		return nil, errors.Wrap(err, "query mentions page")
	}
	return list, nil
}

// === 关注动态 ===

// FollowedVideoIds 我关注的账号名下的全部视频
func (r *NoticeRepo) FollowedVideoIds(ctx context.Context, userId int64) ([]int64, error) {
	list := make([]int64, 0)
	err := r.db.WithContext(ctx).Raw(`select videos.video_id from user_relations
		inner join videos on videos.user_id = user_relations.to_id
		where user_relations.from_id = ?`, userId).Scan(&list).Error
	if err != nil {
		return nil, errors.Wrap(err, "query followed video ids")
	}
	return list, nil
}

// WatchedVideoIds 我看过的视频 去重
func (r *NoticeRepo) WatchedVideoIds(ctx context.Context, userId int64) ([]int64, error) {
	list := make([]int64, 0)
	err := r.db.WithContext(ctx).Model(&model.Watch{}).
		Distinct("video_id").Where("user_id = ?", userId).Scan(&list).Error
	if err != nil {
		return nil, errors.Wrap(err, "query watched video ids")
	}
	return list, nil
}

// BulkCreateWatches 一键看完时补齐观看记录
func (r *NoticeRepo) BulkCreateWatches(ctx context.Context, userId int64, videoIds []int64) error {
	if len(videoIds) == 0 {
		return nil
	}
	watches := make([]model.Watch, 0, len(videoIds))
	now := time.Now()
	for _, videoId := range videoIds {
		watches = append(watches, model.Watch{
			UserId:    userId,
			VideoId:   videoId,
			CreatedAt: now,
		})
	}
	if err := r.db.WithContext(ctx).Create(&watches).Error; err != nil {
		return errors.Wrap(err, "bulk create watches")
	}
	return nil
}

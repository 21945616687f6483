package constants

const (
	// 每页固定返回21条 页码从1开始
	DefaultLimit = 21
)

// Redis counter key families. Comment like counters are grouped per video:
// commentLikeNum:{videoId} -> zset member commentId.
const (
	KeyWatchNum       = "videoWatchNum"
	KeyShareNum       = "videoShareNum"
	KeyLikeNum        = "videoLikeNum"
	KeyCommentNum     = "videoCommentNum"
	KeyCommentLikeNum = "commentLikeNum"
)

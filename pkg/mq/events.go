package mq

// EngagementEvent 互动事件 账本写入后发布 消费侧用来触发计数对账
type EngagementEvent struct {
	Kind      string `json:"kind"`   // video_like / comment / watch / share
	Action    string `json:"action"` // like / unlike / create
	UserId    int64  `json:"user_id"`
	VideoId   int64  `json:"video_id"`
	CommentId int64  `json:"comment_id"`
	Timestamp int64  `json:"timestamp"`
	EventId   string `json:"event_id"`
}

const (
	EngagementEventExchange = "engagement_events"
	EngagementEventQueue    = "engagement_event_queue"
	EngagementRoutingKey    = "engagement"
)

package main

import (
	"context"
	"fmt"

	chat "TokWave.com/cmd/api/handlers/chat"
	interactionhandlers "TokWave.com/cmd/api/handlers/interaction"
	noticehandlers "TokWave.com/cmd/api/handlers/notice"
	relationhandlers "TokWave.com/cmd/api/handlers/relation"
	interactiondb "TokWave.com/cmd/interaction/dal/db"
	"TokWave.com/cmd/interaction/infras/redis"
	interactionservice "TokWave.com/cmd/interaction/service"
	messagedb "TokWave.com/cmd/message/dal/db"
	messageservice "TokWave.com/cmd/message/service"
	noticedb "TokWave.com/cmd/notice/dal/db"
	noticeservice "TokWave.com/cmd/notice/service"
	relationdb "TokWave.com/cmd/relation/dal/db"
	relationservice "TokWave.com/cmd/relation/service"
	"TokWave.com/config"
	"TokWave.com/pkg/errno"
	"TokWave.com/pkg/lock"
	"TokWave.com/pkg/mq"
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/middlewares/server/recovery"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/hertz-contrib/cors"
)

func rabbitmqURL() string {
	cfg := config.ConfigInfo.RabbitMq
	return fmt.Sprintf("amqp://%s:%s@%s/", cfg.Username, cfg.Password, cfg.Addr)
}

func Init() {
	config.Init()
	relationdb.Init()
	interactiondb.Init()
	noticedb.Init()
	messagedb.Init()
	redis.Load()
}

func main() {
	Init()

	counter := redis.NewCounterStore(redis.RedisDBInteraction)
	locker := lock.NewRedsyncLocker(redis.RedisDBInteraction)

	// 消息队列不可用时服务降级运行 事件发布和对账停摆 主链路不受影响
	var producer interactionservice.EventPublisher
	mqProducer, err := mq.NewProducer(rabbitmqURL())
	if err != nil {
		hlog.Warnf("RabbitMQ unavailable, engagement events disabled: %v", err)
	} else {
		producer = mqProducer
		defer mqProducer.Close()
	}

	relationUsers := relationdb.NewUserRepo(relationdb.DB)
	relationRepo := relationdb.NewRelationRepo(relationdb.DB)
	relationSvc := relationservice.NewRelationService(relationUsers, relationRepo, locker)

	users := interactiondb.NewUserRepo(interactiondb.DB)
	videos := interactiondb.NewVideoRepo(interactiondb.DB)
	likes := interactiondb.NewLikeRepo(interactiondb.DB)
	comments := interactiondb.NewCommentRepo(interactiondb.DB)
	watches := interactiondb.NewWatchRepo(interactiondb.DB)
	shares := interactiondb.NewShareRepo(interactiondb.DB)
	mentions := interactiondb.NewMentionRepo(interactiondb.DB)

	likeSvc := interactionservice.NewLikeService(users, videos, comments, likes, counter, producer)
	commentSvc := interactionservice.NewCommentService(users, videos, comments, counter, producer)
	videoSvc := interactionservice.NewVideoService(users, videos, watches, shares, counter, producer)
	mentionSvc := interactionservice.NewMentionService(users, mentions)
	syncSvc := interactionservice.NewSyncService(likes, comments, watches, shares, counter)

	noticeRepo := noticedb.NewNoticeRepo(noticedb.DB)
	noticeSvc := noticeservice.NewNoticeService(users, noticeRepo, counter)

	messageRepo := messagedb.NewMessageRepo(messagedb.DB)
	messageSvc := messageservice.NewMessageService(users, messageRepo)

	relationhandlers.Init(relationSvc)
	interactionhandlers.Init(likeSvc, commentSvc, videoSvc, mentionSvc)
	noticehandlers.Init(noticeSvc)
	chat.Init(messageSvc)

	// 对账消费者跟着api进程跑 单体部署下不另起进程
	if producer != nil {
		consumer, err := mq.NewConsumer(rabbitmqURL(), syncSvc)
		if err != nil {
			hlog.Warnf("Failed to start reconciliation consumer: %v", err)
		} else {
			defer consumer.Close()
			if err := consumer.Start(context.Background()); err != nil {
				hlog.Warnf("Failed to consume engagement events: %v", err)
			}
		}
	}

	addr := config.ConfigInfo.Server.Addr
	if addr == "" {
		addr = "0.0.0.0:8888"
	}
	r := server.New(
		server.WithHostPorts(addr),
		server.WithHandleMethodNotAllowed(true),
	)

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:8870", "http://localhost:8888"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowCredentials: true,
		MaxAge:           12 * 3600,
	}))

	r.Use(recovery.Recovery(recovery.WithRecoveryHandler(
		func(ctx context.Context, c *app.RequestContext, err interface{}, stack []byte) {
			hlog.SystemLogger().CtxErrorf(ctx, "[Recovery] err=%v\nstack=%s", err, stack)
			c.JSON(consts.StatusInternalServerError, map[string]interface{}{
				"code":    errno.ServiceErrCode,
				"message": fmt.Sprintf("[Recovery] err=%v", err),
			})
		})))

	register(r)
	r.Spin()
}

package main

import (
	"context"

	"Muze_Link/internal/model"
	"Muze_Link/internal/pkg"
	"Muze_Link/internal/repository/mysql"
	"Muze_Link/internal/repository/redis"
	"Muze_Link/internal/router"
	"Muze_Link/internal/service"
)

func main() {
	pkg.LoadDotEnvs()
	cfg := pkg.LoadConfig()

	if err := mysql.InitDB(cfg.MySQLDSN); err != nil {
		pkg.Log.Fatalf("mysql init failed: %v", err)
	}

	// 连接redis
	if err := redis.Init(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB); err != nil {
		pkg.Log.Fatalf("redis init failed: %v", err)
	}
	defer redis.Close()

	// 自动建表（开发阶段 OK）
	if err := mysql.DB.AutoMigrate(
		&model.User{},
		&model.Follow{},
		&model.SocialOutbox{},
		&model.Post{},
		&model.ShowcaseItem{},
		&model.Conversation{},
		&model.Message{},
		&model.ConversationRead{},
		&model.ConversationState{},
	); err != nil {
		pkg.Log.Fatalf("auto migrate failed: %v", err)
	}

	// 媒体：配好对象存储就走 S3/R2，否则本地落盘
	var resolver pkg.MediaResolver
	if cfg.Media.ObjectStoreEnabled() {
		s3Resolver, err := pkg.NewS3MediaResolver(cfg.Media)
		if err != nil {
			pkg.Log.Fatalf("object store init failed: %v", err)
		}
		resolver = s3Resolver
		pkg.Log.Infof("media resolver: object store bucket=%s", cfg.Media.Bucket)
	} else {
		localResolver, err := pkg.NewLocalMediaResolver(cfg.Media.LocalDir)
		if err != nil {
			pkg.Log.Fatalf("upload dir init failed: %v", err)
		}
		resolver = localResolver
		pkg.Log.Infof("media resolver: local dir=%s", cfg.Media.LocalDir)
	}

	// 关注事件从 outbox 往下游投递；没配 kafka 就只打日志
	sender := service.LogSender
	if len(cfg.KafkaBrokers) > 0 {
		producer, err := pkg.NewKafkaProducer(pkg.KafkaConfig{
			Brokers: cfg.KafkaBrokers,
			Topic:   cfg.KafkaTopic,
		})
		if err != nil {
			pkg.Log.Fatalf("kafka init failed: %v", err)
		}
		defer producer.Close()
		sender = service.KafkaSender(producer)
	}

	relayCtx, cancelRelay := context.WithCancel(context.Background())
	defer cancelRelay()
	go service.NewOutboxRelayer(mysql.DB, sender).Run(relayCtx)

	// Gin
	r := router.InitRouter(cfg, resolver)
	if err := r.Run(cfg.Addr); err != nil {
		pkg.Log.Fatalf("server exited: %v", err)
	}
}

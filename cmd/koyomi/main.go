package main

import (
	"context"
	"log"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/marumo/koyomi/internal/api"
	"github.com/marumo/koyomi/internal/cache"
	"github.com/marumo/koyomi/internal/config"
	"github.com/marumo/koyomi/internal/holiday"
	"github.com/marumo/koyomi/internal/imagecache"
	"github.com/marumo/koyomi/internal/kv"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(cfg.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.S3AccessKey, cfg.S3SecretKey, "")),
	)
	if err != nil {
		log.Fatal(err)
	}

	s3Client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = true
		o.BaseEndpoint = aws.String(cfg.S3Endpoint)
	})

	var store kv.Store
	if cfg.RedisAddr != "" {
		store = kv.NewRedisStore(kv.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB))
	} else {
		log.Printf("no redis configured, caches are process-local only")
		store = kv.NewMemoryStore()
	}

	sweeper := cache.NewSweeper(store)
	durable := cache.NewSafe(store, sweeper)

	images := imagecache.New(
		imagecache.NewS3Signer(s3Client),
		durable,
		cfg.S3Bucket,
		time.Duration(cfg.SignedURLTTLSeconds)*time.Second,
	)
	holidays := holiday.NewCache(holiday.NewClient(cfg.HolidayProxyBaseURL), durable)

	if cfg.SweepIntervalSeconds > 0 {
		go runSweeper(sweeper, time.Duration(cfg.SweepIntervalSeconds)*time.Second)
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())

	handlers := &api.Handlers{Images: images, Holidays: holidays, Sweeper: sweeper}
	handlers.Register(e)

	log.Printf("listening on %s", cfg.ListenAddr)
	if err := e.Start(cfg.ListenAddr); err != nil {
		log.Fatal(err)
	}
}

func runSweeper(sweeper *cache.Sweeper, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for range ticker.C {
		if removed := sweeper.SweepExpired(context.Background()); removed > 0 {
			log.Printf("sweeper removed %d expired cache entries", removed)
		}
	}
}

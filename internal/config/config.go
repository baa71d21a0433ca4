package config

import (
	"errors"
	"os"
	"strconv"
)

type Config struct {
	ListenAddr           string
	HolidayProxyBaseURL  string
	RedisAddr            string
	RedisDB              int
	RedisPassword        string
	S3Endpoint           string
	S3Region             string
	S3Bucket             string
	S3AccessKey          string
	S3SecretKey          string
	SignedURLTTLSeconds  int
	SweepIntervalSeconds int
}

func Load() (Config, error) {
	cfg := Config{
		ListenAddr:           getenv("KOYOMI_LISTEN_ADDR", ":8080"),
		HolidayProxyBaseURL:  getenv("KOYOMI_HOLIDAY_PROXY_BASE_URL", ""),
		RedisAddr:            getenv("KOYOMI_REDIS_ADDR", ""),
		RedisDB:              getenvInt("KOYOMI_REDIS_DB", 0),
		RedisPassword:        os.Getenv("KOYOMI_REDIS_PASSWORD"),
		S3Endpoint:           getenv("KOYOMI_S3_ENDPOINT", ""),
		S3Region:             getenv("KOYOMI_S3_REGION", ""),
		S3Bucket:             getenv("KOYOMI_S3_BUCKET", "note-images"),
		S3AccessKey:          os.Getenv("KOYOMI_S3_ACCESS_KEY"),
		S3SecretKey:          os.Getenv("KOYOMI_S3_SECRET_KEY"),
		SignedURLTTLSeconds:  getenvInt("KOYOMI_SIGNED_URL_TTL_SECONDS", 3600),
		SweepIntervalSeconds: getenvInt("KOYOMI_SWEEP_INTERVAL_SECONDS", 3600),
	}

	if cfg.HolidayProxyBaseURL == "" {
		return cfg, errors.New("KOYOMI_HOLIDAY_PROXY_BASE_URL is required")
	}
	if cfg.S3Endpoint == "" || cfg.S3AccessKey == "" || cfg.S3SecretKey == "" {
		return cfg, errors.New("S3 endpoint/access/secret are required")
	}
	return cfg, nil
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

package pkg

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config 全部来自环境变量，.env 按惯例分层加载
type Config struct {
	Addr string

	MySQLDSN string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	KafkaBrokers []string
	KafkaTopic   string

	SMTP SMTPConfig

	Media MediaConfig
}

// LoadDotEnvs loads the .env files following the convention:
// .env.[runtime_env].local > .env.local > .env.[runtime_env] > .env
func LoadDotEnvs() {
	env := os.Getenv("MUZE_ENV")
	if env == "" {
		env = "dev"
	}
	_ = godotenv.Load(".env." + env + ".local")
	_ = godotenv.Load(".env.local")
	_ = godotenv.Load(".env." + env)
	_ = godotenv.Load(".env")
}

func LoadConfig() Config {
	return Config{
		Addr:     getenv("MUZE_ADDR", ":8080"),
		MySQLDSN: getenv("MUZE_MYSQL_DSN", "user:password@tcp(127.0.0.1:3306)/muze?charset=utf8mb4&parseTime=True"),

		RedisAddr:     getenv("MUZE_REDIS_ADDR", "127.0.0.1:6379"),
		RedisPassword: os.Getenv("MUZE_REDIS_PASSWORD"),
		RedisDB:       getenvInt("MUZE_REDIS_DB", 0),

		KafkaBrokers: splitNonEmpty(os.Getenv("MUZE_KAFKA_BROKERS")),
		KafkaTopic:   getenv("MUZE_KAFKA_TOPIC", "muze.social.events"),

		SMTP: SMTPConfig{
			Host:     os.Getenv("MUZE_SMTP_HOST"),
			Port:     getenvInt("MUZE_SMTP_PORT", 587),
			Username: os.Getenv("MUZE_SMTP_USERNAME"),
			Password: os.Getenv("MUZE_SMTP_PASSWORD"),
			From:     getenv("MUZE_SMTP_FROM", "NoReply <no-reply@example.com>"),
		},

		Media: MediaConfig{
			Endpoint:        os.Getenv("MUZE_S3_ENDPOINT"),
			Region:          getenv("MUZE_S3_REGION", "auto"),
			AccessKeyID:     os.Getenv("MUZE_S3_ACCESS_KEY_ID"),
			SecretAccessKey: os.Getenv("MUZE_S3_SECRET_ACCESS_KEY"),
			Bucket:          os.Getenv("MUZE_S3_BUCKET"),
			SignedURLTTLSec: getenvInt("MUZE_S3_SIGNED_URL_EXPIRES", 3600),
			LocalDir:        getenv("MUZE_UPLOAD_DIR", "static/uploads"),
		},
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func splitNonEmpty(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

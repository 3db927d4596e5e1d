package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Content   ContentConfig
	Records   RecordsConfig
	Quiz      QuizConfig
	Discord   DiscordConfig
	Storage   StorageConfig
	Backup    BackupConfig
	Log       LogConfig
	Tracing   TracingConfig   `mapstructure:"tracing"`
	CORS      CORSConfig      `mapstructure:"cors"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
}

type ServerConfig struct {
	Port     string
	Mode     string
	BasePath string `mapstructure:"base_path"`
}

// ContentConfig 学习页面与测验定义所在目录
type ContentConfig struct {
	PublicDir   string `mapstructure:"public_dir"`
	LearningDir string `mapstructure:"learning_dir"`
	QuizDir     string `mapstructure:"quiz_dir"`
}

type RecordsConfig struct {
	Object         string   `mapstructure:"object"`
	BaselineFields []string `mapstructure:"baseline_fields"`
	NamePrefix     string   `mapstructure:"name_prefix"`
}

type QuizConfig struct {
	PassThreshold float64 `mapstructure:"pass_threshold"`
}

type DiscordConfig struct {
	BotToken    string        `mapstructure:"bot_token"`
	APIBaseURL  string        `mapstructure:"api_base_url"`
	GuildID     string        `mapstructure:"guild_id"`
	RoleName    string        `mapstructure:"role_name"`
	PassMessage string        `mapstructure:"pass_message"`
	Timeout     time.Duration `mapstructure:"timeout"`
}

type StorageConfig struct {
	Type          string `mapstructure:"type"`
	LocalPath     string `mapstructure:"local_path"`
	MinioEndpoint string `mapstructure:"minio_endpoint"`
	MinioAccessID string `mapstructure:"minio_access_key"`
	MinioSecret   string `mapstructure:"minio_secret_key"`
	MinioBucket   string `mapstructure:"minio_bucket"`
	MinioUseSSL   bool   `mapstructure:"minio_use_ssl"`
	OSSEndpoint   string `mapstructure:"oss_endpoint"`
	OSSAccessKey  string `mapstructure:"oss_access_key"`
	OSSSecretKey  string `mapstructure:"oss_secret_key"`
	OSSBucket     string `mapstructure:"oss_bucket"`
}

type BackupConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	At      string `mapstructure:"at"`
	Prefix  string `mapstructure:"prefix"`
}

type LogConfig struct {
	File string `mapstructure:"file"`
}

type TracingConfig struct {
	Enabled           bool   `mapstructure:"enabled"`
	CollectorEndpoint string `mapstructure:"collector_endpoint"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type RateLimitConfig struct {
	MaxRequests   int `mapstructure:"max_requests"`
	WindowMinutes int `mapstructure:"window_minutes"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "3000")
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.base_path", "/elearning")

	v.SetDefault("content.public_dir", "public")
	v.SetDefault("content.learning_dir", "public/learning")
	v.SetDefault("content.quiz_dir", "data")

	v.SetDefault("records.object", "users.csv")
	v.SetDefault("records.baseline_fields", []string{
		"learning001", "learning002", "learning003", "learning006", "test001", "test002",
	})
	v.SetDefault("records.name_prefix", "User_")

	v.SetDefault("quiz.pass_threshold", 0.7)

	v.SetDefault("discord.api_base_url", "https://discord.com/api/v10")
	v.SetDefault("discord.role_name", "プログラマ")
	v.SetDefault("discord.pass_message", "おめでとうございます！ <@%s>さんがクイズ%sに合格しました！")
	v.SetDefault("discord.timeout", "10s")

	v.SetDefault("storage.type", "local")
	v.SetDefault("storage.local_path", "data")

	v.SetDefault("backup.enabled", false)
	v.SetDefault("backup.at", "03:00")
	v.SetDefault("backup.prefix", "backups/")

	v.SetDefault("log.file", "logs/app.log")

	v.SetDefault("cors.allowed_origins", []string{})
	v.SetDefault("rate_limit.max_requests", 600)
	v.SetDefault("rate_limit.window_minutes", 1)
}

// LoadConfig 读取 path 目录下的 config.yaml，并用 .env 与环境变量覆盖
func LoadConfig(path string) (*Config, error) {
	// .env 不存在时忽略
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env: %w", err)
	}

	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	setDefaults(v)

	v.SetEnvPrefix("ELEARNING")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// 与原 .env 保持一致的变量名
	_ = v.BindEnv("discord.bot_token", "DISCORD_BOT_TOKEN")
	_ = v.BindEnv("discord.guild_id", "DISCORD_GUILD_ID")
	_ = v.BindEnv("server.port", "PORT")
	_ = v.BindEnv("server.mode", "SERVER_MODE")

	// Storage
	_ = v.BindEnv("storage.type", "STORAGE_TYPE")
	_ = v.BindEnv("storage.minio_endpoint", "MINIO_ENDPOINT")
	_ = v.BindEnv("storage.minio_access_key", "MINIO_ACCESS_KEY")
	_ = v.BindEnv("storage.minio_secret_key", "MINIO_SECRET_KEY")
	_ = v.BindEnv("storage.minio_bucket", "MINIO_BUCKET")
	_ = v.BindEnv("storage.oss_endpoint", "OSS_ENDPOINT")
	_ = v.BindEnv("storage.oss_access_key", "OSS_ACCESS_KEY")
	_ = v.BindEnv("storage.oss_secret_key", "OSS_SECRET_KEY")
	_ = v.BindEnv("storage.oss_bucket", "OSS_BUCKET")

	// Tracing
	_ = v.BindEnv("tracing.enabled", "TRACING_ENABLED")
	_ = v.BindEnv("tracing.collector_endpoint", "TRACING_COLLECTOR_ENDPOINT")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Quiz.PassThreshold <= 0 || c.Quiz.PassThreshold > 1 {
		return fmt.Errorf("quiz.pass_threshold must be in (0, 1], got %v", c.Quiz.PassThreshold)
	}
	if c.Records.Object == "" {
		return errors.New("records.object must not be empty")
	}
	switch c.Storage.Type {
	case "local", "minio", "oss":
	default:
		return fmt.Errorf("unknown storage.type %q", c.Storage.Type)
	}
	if c.RateLimit.MaxRequests <= 0 || c.RateLimit.WindowMinutes <= 0 {
		return errors.New("rate_limit values must be positive")
	}
	return nil
}

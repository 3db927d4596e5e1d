package service

import (
	"context"
	"elearning_backend/internal/model"
)

// RecordStore 进度记录存储
type RecordStore interface {
	LoadAll(ctx context.Context) ([]model.UserRecord, error)
	FindByUserID(ctx context.Context, userID string) (*model.UserRecord, error)
	FindOrCreate(ctx context.Context, userID, name string) (*model.UserRecord, bool, error)
	Upsert(ctx context.Context, userID string, patch model.ProgressPatch) (*model.UserRecord, error)
}

type QuizLoader interface {
	LoadDefinition(ctx context.Context, quizID string) (*model.QuizDefinition, error)
	ListDefinitionFiles(ctx context.Context) ([]string, error)
}

// Messenger 向聊天平台频道发送消息
type Messenger interface {
	SendMessage(ctx context.Context, channelID, content string) error
}

// CapabilityGranter 把“通过测验”映射为外部平台上的权限，生产环境为 Discord 角色
type CapabilityGranter interface {
	GrantCapability(ctx context.Context, guildID, userID, capability string) error
}

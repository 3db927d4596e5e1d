package service

import (
	"context"
	"elearning_backend/internal/util"
	"elearning_backend/pkg/logger"
	"elearning_backend/pkg/monitoring"
	"elearning_backend/pkg/tracing"
	"fmt"
	"sync"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
)

// NotificationSettings 可热更新的通知配置
type NotificationSettings struct {
	DefaultGuildID string
	RoleName       string
	PassMessage    string
}

type NotifyRequest struct {
	UserID    string `json:"user_id" binding:"required"`
	QuizID    string `json:"quiz_id" binding:"required"`
	GuildID   string `json:"guild_id"`
	ChannelID string `json:"channel_id" binding:"required"`
}

// NotificationService 通过聊天平台发送合格通知并授予角色。
// 所有外部调用失败都只记录日志并返回 false，不重试。
type NotificationService struct {
	Messenger Messenger
	Granter   CapabilityGranter
	Records   RecordStore

	mu       sync.RWMutex
	settings NotificationSettings
}

func NewNotificationService(messenger Messenger, granter CapabilityGranter, records RecordStore, settings NotificationSettings) *NotificationService {
	return &NotificationService{
		Messenger: messenger,
		Granter:   granter,
		Records:   records,
		settings:  settings,
	}
}

func (s *NotificationService) Settings() NotificationSettings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

func (s *NotificationService) UpdateSettings(settings NotificationSettings) {
	s.mu.Lock()
	s.settings = settings
	s.mu.Unlock()
	logger.Log.Info("Notification settings reloaded", zap.String("role", settings.RoleName))
}

// Notify 校验 guild 与用户后发送通知
func (s *NotificationService) Notify(ctx context.Context, req NotifyRequest) (bool, error) {
	guildID := req.GuildID
	if guildID == "" {
		guildID = s.Settings().DefaultGuildID
	}
	if guildID == "" {
		return false, util.ErrGuildNotSet
	}

	record, err := s.Records.FindByUserID(ctx, req.UserID)
	if err != nil {
		return false, err
	}

	return s.NotifyPass(ctx, guildID, req.ChannelID, record.UserID, req.QuizID), nil
}

func (s *NotificationService) NotifyPass(ctx context.Context, guildID, channelID, userID, quizID string) bool {
	ctx, span := tracing.Tracer.Start(ctx, "notification.NotifyPass")
	defer span.End()
	span.SetAttributes(
		attribute.String("guild_id", guildID),
		attribute.String("user_id", userID),
		attribute.String("quiz_id", quizID),
	)

	if s.Messenger == nil || s.Granter == nil {
		logger.Log.Warn("Notification gateway disabled, skipping pass notification", zap.String("user_id", userID))
		monitoring.Notifications.WithLabelValues("disabled").Inc()
		return false
	}

	settings := s.Settings()
	content := fmt.Sprintf(settings.PassMessage, userID, quizID)
	if err := s.Messenger.SendMessage(ctx, channelID, content); err != nil {
		logger.Log.Error("Failed to send pass notification",
			zap.String("channel_id", channelID),
			zap.String("user_id", userID),
			zap.Error(err),
		)
		span.SetStatus(codes.Error, err.Error())
		monitoring.Notifications.WithLabelValues("message_failed").Inc()
		return false
	}

	if !s.AssignRole(ctx, guildID, userID, settings.RoleName) {
		span.SetStatus(codes.Error, "role assignment failed")
		monitoring.Notifications.WithLabelValues("role_failed").Inc()
		return false
	}

	monitoring.Notifications.WithLabelValues("ok").Inc()
	return true
}

func (s *NotificationService) AssignRole(ctx context.Context, guildID, userID, roleName string) bool {
	if err := s.Granter.GrantCapability(ctx, guildID, userID, roleName); err != nil {
		logger.Log.Error("Failed to assign role",
			zap.String("guild_id", guildID),
			zap.String("user_id", userID),
			zap.String("role", roleName),
			zap.Error(err),
		)
		return false
	}
	logger.Log.Info("Assigned role", zap.String("user_id", userID), zap.String("role", roleName))
	return true
}

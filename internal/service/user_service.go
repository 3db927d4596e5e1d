package service

import (
	"context"
	"elearning_backend/internal/model"
	"elearning_backend/internal/util"
	"elearning_backend/pkg/logger"
	"fmt"

	"go.uber.org/zap"
)

const generatedNameLen = 5

type UserService struct {
	Records    RecordStore
	NamePrefix string
}

func NewUserService(records RecordStore, namePrefix string) *UserService {
	return &UserService{Records: records, NamePrefix: namePrefix}
}

// GetOrCreate 首次访问时以临时名称创建记录
func (s *UserService) GetOrCreate(ctx context.Context, userID string) (*model.UserRecord, error) {
	record, created, err := s.Records.FindOrCreate(ctx, userID, s.generatedName(userID))
	if err != nil {
		return nil, err
	}
	if created {
		logger.Log.Info("Created user on first access", zap.String("user_id", userID))
	}
	return record, nil
}

// UpdateProgress 将请求体合并到已有记录。
// name 更新显示名，learning<N>/test<N> 必须是 "0" 或 YYYY-MM-DD，其余键忽略。
func (s *UserService) UpdateProgress(ctx context.Context, userID string, fields map[string]string) (*model.UserRecord, error) {
	patch, err := BuildPatch(fields)
	if err != nil {
		return nil, err
	}

	record, err := s.Records.Upsert(ctx, userID, patch)
	if err != nil {
		return nil, err
	}

	for field, value := range patch.Progress {
		logger.Log.Info("Progress updated",
			zap.String("user_id", userID),
			zap.String("field", field),
			zap.String("value", value.String()),
		)
	}
	return record, nil
}

func BuildPatch(fields map[string]string) (model.ProgressPatch, error) {
	patch := model.ProgressPatch{Progress: make(map[string]model.Completion)}
	var ignored []string

	for key, value := range fields {
		switch {
		case key == util.FieldName:
			name := value
			patch.Name = &name
		case model.IsProgressField(key):
			c, err := model.ParseCompletion(value)
			if err != nil {
				return model.ProgressPatch{}, fmt.Errorf("%s: %w", key, err)
			}
			patch.Progress[key] = c
		default:
			ignored = append(ignored, key)
		}
	}

	if len(ignored) > 0 {
		logger.Log.Debug("Ignoring non-progress fields in update", zap.Strings("fields", ignored))
	}
	return patch, nil
}

func (s *UserService) generatedName(userID string) string {
	runes := []rune(userID)
	if len(runes) > generatedNameLen {
		runes = runes[:generatedNameLen]
	}
	return s.NamePrefix + string(runes)
}

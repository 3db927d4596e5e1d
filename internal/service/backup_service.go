package service

import (
	"context"
	"elearning_backend/internal/util"
	"elearning_backend/pkg/logger"
	"elearning_backend/pkg/storage"
	"path"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Snapshotter 在读锁下返回记录文件原始内容
type Snapshotter interface {
	Snapshot(ctx context.Context) ([]byte, error)
}

// BackupService 把记录文件复制到 <prefix><name>-<时间戳>.csv
type BackupService struct {
	Source   Snapshotter
	Provider storage.Provider
	Object   string
	Prefix   string
	Now      func() time.Time
}

func NewBackupService(source Snapshotter, provider storage.Provider, object, prefix string) *BackupService {
	return &BackupService{
		Source:   source,
		Provider: provider,
		Object:   object,
		Prefix:   prefix,
		Now:      time.Now,
	}
}

func (s *BackupService) Run(ctx context.Context) (string, error) {
	data, err := s.Source.Snapshot(ctx)
	if err != nil {
		return "", err
	}

	base := strings.TrimSuffix(path.Base(s.Object), path.Ext(s.Object))
	name := s.Prefix + base + "-" + s.Now().UTC().Format("20060102-150405") + ".csv"
	if err := s.Provider.Write(ctx, name, data, util.ContentTypeCSV); err != nil {
		return "", err
	}

	logger.Log.Info("Record file backed up", zap.String("backup", name), zap.Int("bytes", len(data)))
	return name, nil
}

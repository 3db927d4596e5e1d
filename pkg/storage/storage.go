package storage

import (
	"bytes"
	"context"
	"elearning_backend/internal/config"
	"elearning_backend/internal/util"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// ErrObjectNotFound 对象不存在
var ErrObjectNotFound = errors.New("object not found")

// Provider 定义记录文件所在的存储后端
type Provider interface {
	Read(ctx context.Context, name string) ([]byte, error)
	Write(ctx context.Context, name string, data []byte, contentType string) error
	Exists(ctx context.Context, name string) (bool, error)
}

// LocalProvider 本地存储实现
type LocalProvider struct {
	BasePath string
}

func NewLocalProvider(basePath string) *LocalProvider {
	return &LocalProvider{BasePath: basePath}
}

func (p *LocalProvider) path(name string) string {
	return filepath.Join(p.BasePath, filepath.FromSlash(name))
}

func (p *LocalProvider) Read(ctx context.Context, name string) ([]byte, error) {
	data, err := os.ReadFile(p.path(name))
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrObjectNotFound, name)
	}
	return data, err
}

// Write 直接覆盖目标文件，不保证原子性
func (p *LocalProvider) Write(ctx context.Context, name string, data []byte, contentType string) error {
	dst := p.path(name)
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return err
	}
	return os.WriteFile(dst, data, 0644)
}

func (p *LocalProvider) Exists(ctx context.Context, name string) (bool, error) {
	_, err := os.Stat(p.path(name))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, err
}

// MinioProvider MinIO存储实现
type MinioProvider struct {
	Bucket string
	Client *minio.Client
}

func NewMinioProvider(cfg *config.StorageConfig) (*MinioProvider, error) {
	client, err := minio.New(cfg.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessID, cfg.MinioSecret, ""),
		Secure: cfg.MinioUseSSL,
	})
	if err != nil {
		return nil, err
	}
	return &MinioProvider{Bucket: cfg.MinioBucket, Client: client}, nil
}

func (p *MinioProvider) Read(ctx context.Context, name string) ([]byte, error) {
	obj, err := p.Client.GetObject(ctx, p.Bucket, name, minio.GetObjectOptions{})
	if err != nil {
		return nil, p.translate(err, name)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, p.translate(err, name)
	}
	return data, nil
}

func (p *MinioProvider) Write(ctx context.Context, name string, data []byte, contentType string) error {
	_, err := p.Client.PutObject(ctx, p.Bucket, name, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	return err
}

func (p *MinioProvider) Exists(ctx context.Context, name string) (bool, error) {
	_, err := p.Client.StatObject(ctx, p.Bucket, name, minio.StatObjectOptions{})
	if err == nil {
		return true, nil
	}
	if errors.Is(p.translate(err, name), ErrObjectNotFound) {
		return false, nil
	}
	return false, err
}

func (p *MinioProvider) translate(err error, name string) error {
	if minio.ToErrorResponse(err).StatusCode == http.StatusNotFound {
		return fmt.Errorf("%w: %s", ErrObjectNotFound, name)
	}
	return err
}

// OSSProvider 阿里云OSS存储实现
type OSSProvider struct {
	Bucket *oss.Bucket
}

func NewOSSProvider(cfg *config.StorageConfig) (*OSSProvider, error) {
	client, err := oss.New(cfg.OSSEndpoint, cfg.OSSAccessKey, cfg.OSSSecretKey)
	if err != nil {
		return nil, err
	}
	bucket, err := client.Bucket(cfg.OSSBucket)
	if err != nil {
		return nil, err
	}
	return &OSSProvider{Bucket: bucket}, nil
}

func (p *OSSProvider) Read(ctx context.Context, name string) ([]byte, error) {
	body, err := p.Bucket.GetObject(name, oss.WithContext(ctx))
	if err != nil {
		var svcErr oss.ServiceError
		if errors.As(err, &svcErr) && svcErr.StatusCode == http.StatusNotFound {
			return nil, fmt.Errorf("%w: %s", ErrObjectNotFound, name)
		}
		return nil, err
	}
	defer body.Close()
	return io.ReadAll(body)
}

func (p *OSSProvider) Write(ctx context.Context, name string, data []byte, contentType string) error {
	return p.Bucket.PutObject(name, bytes.NewReader(data), oss.ContentType(contentType), oss.WithContext(ctx))
}

func (p *OSSProvider) Exists(ctx context.Context, name string) (bool, error) {
	return p.Bucket.IsObjectExist(name, oss.WithContext(ctx))
}

// NewProvider 按配置选择存储后端
func NewProvider(cfg *config.StorageConfig) (Provider, error) {
	switch cfg.Type {
	case "", util.StorageLocal:
		return NewLocalProvider(cfg.LocalPath), nil
	case util.StorageMinio:
		return NewMinioProvider(cfg)
	case util.StorageOSS:
		return NewOSSProvider(cfg)
	default:
		return nil, fmt.Errorf("unsupported storage type %q", cfg.Type)
	}
}

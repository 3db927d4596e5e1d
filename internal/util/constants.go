package util

const DateFormat = "2006-01-02"

const (
	StorageLocal = "local"
	StorageMinio = "minio"
	StorageOSS   = "oss"
)

// 进度记录字段
const (
	FieldUserID       = "user_id"
	FieldName         = "name"
	TestPrefix        = "test"
	NotCompletedValue = "0"
)

const ContentTypeCSV = "text/csv"

// gin.Context 键
const (
	RequestIDKey    = "request_id"
	RequestIDHeader = "X-Request-ID"
)

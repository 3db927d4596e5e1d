package repository

import (
	"bytes"
	"context"
	"elearning_backend/internal/model"
	"elearning_backend/internal/util"
	"elearning_backend/pkg/logger"
	"elearning_backend/pkg/monitoring"
	"elearning_backend/pkg/storage"
	"encoding/csv"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"
)

const utf8BOM = "\ufeff"

// RecordRepository 以 CSV 文件保存全部学员进度。
// 每次修改都是完整的 读取-修改-写回，整个过程持有写锁。
type RecordRepository struct {
	Provider storage.Provider
	Object   string
	Baseline []string

	mu sync.RWMutex
}

func NewRecordRepository(provider storage.Provider, object string, baseline []string) *RecordRepository {
	return &RecordRepository{
		Provider: provider,
		Object:   object,
		Baseline: baseline,
	}
}

// Init 记录文件不存在时写入只有表头的空表
func (r *RecordRepository) Init(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	exists, err := r.Provider.Exists(ctx, r.Object)
	if err != nil {
		return fmt.Errorf("%w: %v", util.ErrStorageRead, err)
	}
	if exists {
		return nil
	}

	header := append([]string{util.FieldUserID, util.FieldName}, sortedCopy(r.Baseline)...)
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("%w: %v", util.ErrStorageWrite, err)
	}
	w.Flush()

	if err := r.Provider.Write(ctx, r.Object, buf.Bytes(), util.ContentTypeCSV); err != nil {
		return fmt.Errorf("%w: %v", util.ErrStorageWrite, err)
	}
	logger.Log.Info("Record file created", zap.String("object", r.Object))
	return nil
}

func (r *RecordRepository) LoadAll(ctx context.Context) ([]model.UserRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.loadAll(ctx)
}

// Snapshot 返回记录文件的原始内容
func (r *RecordRepository) Snapshot(ctx context.Context) ([]byte, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	data, err := r.Provider.Read(ctx, r.Object)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", util.ErrStorageRead, err)
	}
	return data, nil
}

func (r *RecordRepository) FindByUserID(ctx context.Context, userID string) (*model.UserRecord, error) {
	records, err := r.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	if i := indexOf(records, userID); i >= 0 {
		return &records[i], nil
	}
	return nil, util.ErrUserNotFound
}

// CreateDefault 追加一条基线字段全部为 "0" 的记录并立即保存。
// 不检查 user_id 是否已存在，重复调用会产生重复行。
func (r *RecordRepository) CreateDefault(ctx context.Context, userID, name string) (*model.UserRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	records, err := r.loadAll(ctx)
	if err != nil {
		return nil, err
	}
	return r.appendDefault(ctx, records, userID, name)
}

// FindOrCreate 在同一把写锁内查找或创建，避免并发首访产生重复行
func (r *RecordRepository) FindOrCreate(ctx context.Context, userID, name string) (*model.UserRecord, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	records, err := r.loadAll(ctx)
	if err != nil {
		return nil, false, err
	}
	if i := indexOf(records, userID); i >= 0 {
		return &records[i], false, nil
	}

	record, err := r.appendDefault(ctx, records, userID, name)
	if err != nil {
		return nil, false, err
	}
	return record, true, nil
}

// Upsert 合并 patch 到已有记录，不会创建新记录
func (r *RecordRepository) Upsert(ctx context.Context, userID string, patch model.ProgressPatch) (*model.UserRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	records, err := r.loadAll(ctx)
	if err != nil {
		return nil, err
	}

	i := indexOf(records, userID)
	if i < 0 {
		return nil, util.ErrUserNotFound
	}
	patch.Apply(&records[i])

	if err := r.saveAll(ctx, records); err != nil {
		return nil, err
	}

	updated := records[i].Clone()
	return &updated, nil
}

func (r *RecordRepository) SaveAll(ctx context.Context, records []model.UserRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.saveAll(ctx, records)
}

func (r *RecordRepository) appendDefault(ctx context.Context, records []model.UserRecord, userID, name string) (*model.UserRecord, error) {
	record := model.NewUserRecord(userID, name, r.Baseline)
	records = append(records, record)
	if err := r.saveAll(ctx, records); err != nil {
		return nil, err
	}

	logger.Log.Info("New user added to records", zap.String("user_id", userID))
	created := records[len(records)-1].Clone()
	return &created, nil
}

// Header 返回 user_id、name 以及所有记录进度字段的并集（字典序）
func Header(records []model.UserRecord) []string {
	seen := make(map[string]struct{})
	for _, rec := range records {
		for f := range rec.Progress {
			seen[f] = struct{}{}
		}
	}

	fields := make([]string, 0, len(seen))
	for f := range seen {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	return append([]string{util.FieldUserID, util.FieldName}, fields...)
}

// FillDefaults 为缺少表头字段的记录补 "0"
func FillDefaults(records []model.UserRecord, header []string) {
	for i := range records {
		for _, f := range header[2:] {
			if records[i].Get(f).State == model.Unset {
				records[i].Set(f, model.NotCompletedValue())
			}
		}
	}
}

func (r *RecordRepository) loadAll(ctx context.Context) ([]model.UserRecord, error) {
	data, err := r.Provider.Read(ctx, r.Object)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			return nil, fmt.Errorf("%w: record file %s does not exist", util.ErrStorageRead, r.Object)
		}
		return nil, fmt.Errorf("%w: %v", util.ErrStorageRead, err)
	}
	return ParseRecords(data)
}

func (r *RecordRepository) saveAll(ctx context.Context, records []model.UserRecord) error {
	data, err := EncodeRecords(records)
	if err != nil {
		return err
	}
	if err := r.Provider.Write(ctx, r.Object, data, util.ContentTypeCSV); err != nil {
		monitoring.RecordWrites.WithLabelValues("error").Inc()
		return fmt.Errorf("%w: %v", util.ErrStorageWrite, err)
	}
	monitoring.RecordWrites.WithLabelValues("ok").Inc()
	return nil
}

// ParseRecords 解析 CSV 内容。空文件视为没有记录。
func ParseRecords(data []byte) ([]model.UserRecord, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return []model.UserRecord{}, nil
	}

	rows, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", util.ErrStorageRead, err)
	}

	header := rows[0]
	header[0] = strings.TrimPrefix(header[0], utf8BOM)

	idCol, nameCol := -1, -1
	var dropped []string
	for i, col := range header {
		switch {
		case col == util.FieldUserID:
			idCol = i
		case col == util.FieldName:
			nameCol = i
		case model.IsProgressField(col):
		default:
			dropped = append(dropped, col)
		}
	}
	if idCol < 0 {
		return nil, fmt.Errorf("%w: missing %s column", util.ErrStorageRead, util.FieldUserID)
	}
	if len(dropped) > 0 {
		logger.Log.Warn("Ignoring unknown record columns", zap.Strings("columns", dropped))
	}

	records := make([]model.UserRecord, 0, len(rows)-1)
	for line, row := range rows[1:] {
		rec := model.UserRecord{UserID: row[idCol], Progress: make(map[string]model.Completion)}
		if nameCol >= 0 {
			rec.Name = row[nameCol]
		}
		for i, col := range header {
			if !model.IsProgressField(col) {
				continue
			}
			c, err := model.ParseCompletion(row[i])
			if err != nil {
				return nil, fmt.Errorf("%w: line %d column %s: %v", util.ErrStorageRead, line+2, col, err)
			}
			rec.Progress[col] = c
		}
		records = append(records, rec)
	}
	return records, nil
}

// EncodeRecords 重新计算表头并补齐默认值后输出完整 CSV
func EncodeRecords(records []model.UserRecord) ([]byte, error) {
	header := Header(records)
	FillDefaults(records, header)

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("%w: %v", util.ErrStorageWrite, err)
	}
	for _, rec := range records {
		row := make([]string, len(header))
		row[0] = rec.UserID
		row[1] = rec.Name
		for i, f := range header[2:] {
			row[i+2] = rec.Get(f).String()
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("%w: %v", util.ErrStorageWrite, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("%w: %v", util.ErrStorageWrite, err)
	}
	return buf.Bytes(), nil
}

func indexOf(records []model.UserRecord, userID string) int {
	for i := range records {
		if records[i].UserID == userID {
			return i
		}
	}
	return -1
}

func sortedCopy(fields []string) []string {
	out := append([]string(nil), fields...)
	sort.Strings(out)
	return out
}

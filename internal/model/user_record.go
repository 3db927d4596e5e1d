package model

import (
	"elearning_backend/internal/util"
	"encoding/json"
	"sort"
)

// UserRecord 一名学员的进度行
type UserRecord struct {
	UserID   string
	Name     string
	Progress map[string]Completion
}

func NewUserRecord(userID, name string, fields []string) UserRecord {
	r := UserRecord{UserID: userID, Name: name, Progress: make(map[string]Completion, len(fields))}
	for _, f := range fields {
		r.Progress[f] = NotCompletedValue()
	}
	return r
}

// Get 缺失字段返回 Unset
func (r UserRecord) Get(field string) Completion {
	if c, ok := r.Progress[field]; ok {
		return c
	}
	return Completion{State: Unset}
}

func (r *UserRecord) Set(field string, c Completion) {
	if r.Progress == nil {
		r.Progress = make(map[string]Completion)
	}
	r.Progress[field] = c
}

// ProgressFields 按字典序返回该记录拥有的进度字段
func (r UserRecord) ProgressFields() []string {
	fields := make([]string, 0, len(r.Progress))
	for f := range r.Progress {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fields
}

// Clone 深拷贝，避免调用方修改仓库内部数据
func (r UserRecord) Clone() UserRecord {
	c := UserRecord{UserID: r.UserID, Name: r.Name, Progress: make(map[string]Completion, len(r.Progress))}
	for k, v := range r.Progress {
		c.Progress[k] = v
	}
	return c
}

// MarshalJSON 输出扁平结构: user_id, name, learning*, test*
func (r UserRecord) MarshalJSON() ([]byte, error) {
	flat := make(map[string]string, len(r.Progress)+2)
	flat[util.FieldUserID] = r.UserID
	flat[util.FieldName] = r.Name
	for k, v := range r.Progress {
		flat[k] = v.String()
	}
	return json.Marshal(flat)
}

// ProgressPatch 浅合并补丁：Name 非空时覆盖，Progress 中的每个键覆盖旧值
type ProgressPatch struct {
	Name     *string
	Progress map[string]Completion
}

func (p ProgressPatch) Apply(r *UserRecord) {
	if p.Name != nil {
		r.Name = *p.Name
	}
	for k, v := range p.Progress {
		r.Set(k, v)
	}
}

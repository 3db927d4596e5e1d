package model

import (
	"elearning_backend/internal/util"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"
)

// CompletionState 进度字段的三种状态
type CompletionState int

const (
	// Unset 记录中没有该字段
	Unset CompletionState = iota
	NotCompleted
	Completed
)

var progressFieldPattern = regexp.MustCompile(`^(learning|test)[0-9]+$`)

// IsProgressField 判断字段名是否为 learning<数字> 或 test<数字>
func IsProgressField(name string) bool {
	return progressFieldPattern.MatchString(name)
}

// TestField 返回测验对应的进度字段名
func TestField(quizID string) string {
	return util.TestPrefix + quizID
}

// Completion 单个学习模块/测验的完成情况，仅在存储和 JSON 边界序列化为 "0" 或日期
type Completion struct {
	State CompletionState
	Date  time.Time
}

func NotCompletedValue() Completion {
	return Completion{State: NotCompleted}
}

func CompletedOn(t time.Time) Completion {
	y, m, d := t.Date()
	return Completion{State: Completed, Date: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// ParseCompletion 解析 "0" 或 YYYY-MM-DD；空字符串视为未完成
func ParseCompletion(raw string) (Completion, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == util.NotCompletedValue {
		return NotCompletedValue(), nil
	}
	t, err := time.Parse(util.DateFormat, raw)
	if err != nil {
		return Completion{}, fmt.Errorf("%w: %q", util.ErrInvalidProgress, raw)
	}
	return CompletedOn(t), nil
}

func (c Completion) IsCompleted() bool {
	return c.State == Completed
}

func (c Completion) String() string {
	if c.State == Completed {
		return c.Date.Format(util.DateFormat)
	}
	return util.NotCompletedValue
}

func (c Completion) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

func (c *Completion) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%w: %s", util.ErrInvalidProgress, string(data))
	}
	parsed, err := ParseCompletion(raw)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

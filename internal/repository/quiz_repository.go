package repository

import (
	"context"
	"elearning_backend/internal/model"
	"elearning_backend/internal/util"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultQuizTitle 学习页面没有 <title> 时使用
const DefaultQuizTitle = "No Title"

var (
	// 与进度字段 test<数字> 保持一致
	quizIDPattern  = regexp.MustCompile(`^[0-9]+$`)
	definitionExts = []string{".json", ".yaml", ".yml"}
)

type quizDocument struct {
	Quiz []model.QuizQuestion `json:"quiz" yaml:"quiz"`
}

// QuizRepository 从目录加载测验定义，每次请求重新读取
type QuizRepository struct {
	Dir    string
	Titles TitleLookup
}

func NewQuizRepository(dir string, titles TitleLookup) *QuizRepository {
	return &QuizRepository{Dir: dir, Titles: titles}
}

func ValidQuizID(quizID string) bool {
	return quizIDPattern.MatchString(quizID)
}

func (r *QuizRepository) LoadDefinition(ctx context.Context, quizID string) (*model.QuizDefinition, error) {
	if !ValidQuizID(quizID) {
		return nil, fmt.Errorf("%w: %q", util.ErrQuizNotFound, quizID)
	}

	title, err := r.Titles.Title(ctx, quizID)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: learning page for %s", util.ErrQuizNotFound, quizID)
		}
		return nil, err
	}
	if title == "" {
		title = DefaultQuizTitle
	}

	path, err := r.findDefinition(quizID)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var doc quizDocument
	if filepath.Ext(path) == ".json" {
		err = json.Unmarshal(data, &doc)
	} else {
		err = yaml.Unmarshal(data, &doc)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", util.ErrQuizMalformed, quizID, err)
	}
	if err := validateQuestions(doc.Quiz); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", util.ErrQuizMalformed, quizID, err)
	}

	return &model.QuizDefinition{
		ID:        quizID,
		Title:     title,
		Questions: doc.Quiz,
	}, nil
}

// ListDefinitionFiles 返回测验定义文件名列表
func (r *QuizRepository) ListDefinitionFiles(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(r.Dir)
	if err != nil {
		return nil, err
	}

	files := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !isDefinitionFile(e.Name()) {
			continue
		}
		files = append(files, e.Name())
	}
	sort.Strings(files)
	return files, nil
}

func (r *QuizRepository) findDefinition(quizID string) (string, error) {
	for _, ext := range definitionExts {
		path := filepath.Join(r.Dir, quizID+ext)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		} else if !errors.Is(err, fs.ErrNotExist) {
			return "", err
		}
	}
	return "", fmt.Errorf("%w: no definition for %s", util.ErrQuizNotFound, quizID)
}

func isDefinitionFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range definitionExts {
		if ext == e {
			return true
		}
	}
	return false
}

func validateQuestions(questions []model.QuizQuestion) error {
	if len(questions) == 0 {
		return errors.New("question list is missing or empty")
	}
	for i, q := range questions {
		options := make(map[string]struct{}, len(q.Options))
		for _, o := range q.Options {
			options[o] = struct{}{}
		}
		for _, a := range q.CorrectAnswers {
			if _, ok := options[a]; !ok {
				return fmt.Errorf("question %d: correct answer %q is not an option", i+1, a)
			}
		}
	}
	return nil
}

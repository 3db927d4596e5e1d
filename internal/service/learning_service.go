package service

import (
	"context"
	"elearning_backend/internal/model"
	"elearning_backend/internal/repository"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// LearningService 学习页面与测验目录
type LearningService struct {
	LearningDir string
	Titles      repository.TitleLookup
	Quizzes     QuizLoader
}

func NewLearningService(learningDir string, titles repository.TitleLookup, quizzes QuizLoader) *LearningService {
	return &LearningService{LearningDir: learningDir, Titles: titles, Quizzes: quizzes}
}

// ListMaterials 列出学习页面，没有 <title> 的页面以文件名作为标题
func (s *LearningService) ListMaterials(ctx context.Context) ([]model.LearningMaterial, error) {
	entries, err := os.ReadDir(s.LearningDir)
	if err != nil {
		return nil, err
	}

	materials := make([]model.LearningMaterial, 0, len(entries))
	for _, e := range entries {
		if !e.Type().IsRegular() || filepath.Ext(e.Name()) != ".html" {
			continue
		}
		title, err := s.Titles.Title(ctx, strings.TrimSuffix(e.Name(), ".html"))
		if err != nil {
			return nil, err
		}
		if title == "" {
			title = e.Name()
		}
		materials = append(materials, model.LearningMaterial{File: e.Name(), Title: title})
	}

	sort.Slice(materials, func(i, j int) bool { return materials[i].File < materials[j].File })
	return materials, nil
}

func (s *LearningService) ListQuizFiles(ctx context.Context) ([]string, error) {
	return s.Quizzes.ListDefinitionFiles(ctx)
}

package service_test

import (
	"context"
	"elearning_backend/internal/model"
	"elearning_backend/internal/repository"
	"elearning_backend/internal/util"
	"elearning_backend/pkg/storage"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

var testBaseline = []string{"learning001", "test001"}

func newRecords(t *testing.T) *repository.RecordRepository {
	t.Helper()
	repo := repository.NewRecordRepository(storage.NewLocalProvider(t.TempDir()), "users.csv", testBaseline)
	require.NoError(t, repo.Init(context.Background()))
	return repo
}

// fakeQuizzes 内存中的测验定义
type fakeQuizzes map[string]*model.QuizDefinition

func (f fakeQuizzes) LoadDefinition(ctx context.Context, quizID string) (*model.QuizDefinition, error) {
	def, ok := f[quizID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", util.ErrQuizNotFound, quizID)
	}
	return def, nil
}

func (f fakeQuizzes) ListDefinitionFiles(ctx context.Context) ([]string, error) {
	files := make([]string, 0, len(f))
	for id := range f {
		files = append(files, id+".json")
	}
	return files, nil
}

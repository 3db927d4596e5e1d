package service

import (
	"context"
	"elearning_backend/internal/model"
	"elearning_backend/internal/util"
	"elearning_backend/pkg/logger"
	"elearning_backend/pkg/monitoring"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"
)

const DefaultPassThreshold = 0.7

type QuizService struct {
	Quizzes       QuizLoader
	Records       RecordStore
	PassThreshold float64
	Now           func() time.Time
}

func NewQuizService(quizzes QuizLoader, records RecordStore, passThreshold float64) *QuizService {
	if passThreshold <= 0 {
		passThreshold = DefaultPassThreshold
	}
	return &QuizService{
		Quizzes:       quizzes,
		Records:       records,
		PassThreshold: passThreshold,
		Now:           time.Now,
	}
}

// GetClientQuiz 返回去掉正确答案的测验
func (s *QuizService) GetClientQuiz(ctx context.Context, quizID string) (*model.ClientQuiz, error) {
	def, err := s.Quizzes.LoadDefinition(ctx, quizID)
	if err != nil {
		return nil, err
	}
	view := ClientView(def)
	return &view, nil
}

// Submit 评分并写入 test<quizID>：通过记当天日期，否则记 "0"
func (s *QuizService) Submit(ctx context.Context, quizID string, submission model.QuizSubmission) (*model.GradeResult, error) {
	def, err := s.Quizzes.LoadDefinition(ctx, quizID)
	if err != nil {
		return nil, err
	}

	result, err := Grade(def, submission.Answers, s.PassThreshold)
	if err != nil {
		return nil, err
	}

	outcome := model.NotCompletedValue()
	if result.Passed {
		outcome = model.CompletedOn(s.Now().UTC())
	}

	patch := model.ProgressPatch{Progress: map[string]model.Completion{model.TestField(quizID): outcome}}
	if _, err := s.Records.Upsert(ctx, submission.UserID, patch); err != nil {
		return nil, err
	}

	label := "failed"
	if result.Passed {
		label = "passed"
	}
	monitoring.QuizSubmissions.WithLabelValues(quizID, label).Inc()
	logger.Log.Info("Quiz graded",
		zap.String("quiz_id", quizID),
		zap.String("user_id", submission.UserID),
		zap.Int("score", result.Score),
		zap.Int("total", result.TotalQuestions),
		zap.Bool("passed", result.Passed),
	)

	return &result, nil
}

func ClientView(def *model.QuizDefinition) model.ClientQuiz {
	questions := make([]model.ClientQuestion, len(def.Questions))
	for i, q := range def.Questions {
		questions[i] = model.ClientQuestion{
			Question: q.Question,
			Options:  append([]string(nil), q.Options...),
		}
	}
	return model.ClientQuiz{Title: def.Title, Questions: questions}
}

// Grade 逐题按集合比较答案，得分率不低于 threshold 即通过
func Grade(def *model.QuizDefinition, answers [][]string, threshold float64) (model.GradeResult, error) {
	total := len(def.Questions)
	if len(answers) != total {
		return model.GradeResult{}, fmt.Errorf("%w: got %d answers for %d questions", util.ErrSubmissionShape, len(answers), total)
	}

	score := 0
	for i, q := range def.Questions {
		if sameAnswers(answers[i], q.CorrectAnswers) {
			score++
		}
	}

	return model.GradeResult{
		Score:          score,
		TotalQuestions: total,
		Passed:         total > 0 && float64(score)/float64(total) >= threshold,
	}, nil
}

// sameAnswers 排序后逐位比较，不修改入参
func sameAnswers(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	x := append([]string(nil), a...)
	y := append([]string(nil), b...)
	sort.Strings(x)
	sort.Strings(y)
	for i := range x {
		if x[i] != y[i] {
			return false
		}
	}
	return true
}

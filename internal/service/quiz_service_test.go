package service_test

import (
	"context"
	"elearning_backend/internal/model"
	"elearning_backend/internal/service"
	"elearning_backend/internal/util"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func twoQuestionQuiz() *model.QuizDefinition {
	return &model.QuizDefinition{
		ID:    "001",
		Title: "Basics",
		Questions: []model.QuizQuestion{
			{Question: "Q1", Options: []string{"a", "b"}, CorrectAnswers: []string{"a"}},
			{Question: "Q2", Options: []string{"a", "b", "c"}, CorrectAnswers: []string{"b", "c"}},
		},
	}
}

func quizOfSize(n int) *model.QuizDefinition {
	def := &model.QuizDefinition{ID: "big", Title: "Big"}
	for i := 0; i < n; i++ {
		def.Questions = append(def.Questions, model.QuizQuestion{
			Question:       fmt.Sprintf("Q%d", i),
			Options:        []string{"x", "y"},
			CorrectAnswers: []string{"x"},
		})
	}
	return def
}

func answersWithCorrect(total, correct int) [][]string {
	answers := make([][]string, total)
	for i := range answers {
		if i < correct {
			answers[i] = []string{"x"}
		} else {
			answers[i] = []string{"y"}
		}
	}
	return answers
}

func TestGradeOrderInsensitive(t *testing.T) {
	res, err := service.Grade(twoQuestionQuiz(), [][]string{{"a"}, {"c", "b"}}, service.DefaultPassThreshold)
	require.NoError(t, err)
	assert.Equal(t, model.GradeResult{Score: 2, TotalQuestions: 2, Passed: true}, res)
}

func TestGradePartialAnswerIsWrong(t *testing.T) {
	res, err := service.Grade(twoQuestionQuiz(), [][]string{{"a"}, {"b"}}, service.DefaultPassThreshold)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Score)
	assert.False(t, res.Passed)
}

func TestGradeThresholdBoundary(t *testing.T) {
	res, err := service.Grade(quizOfSize(10), answersWithCorrect(10, 7), service.DefaultPassThreshold)
	require.NoError(t, err)
	assert.True(t, res.Passed)

	res, err = service.Grade(quizOfSize(100), answersWithCorrect(100, 69), service.DefaultPassThreshold)
	require.NoError(t, err)
	assert.False(t, res.Passed)
}

func TestGradeShapeMismatch(t *testing.T) {
	_, err := service.Grade(twoQuestionQuiz(), [][]string{{"a"}}, service.DefaultPassThreshold)
	assert.ErrorIs(t, err, util.ErrSubmissionShape)
}

func TestGradeDoesNotMutateAnswers(t *testing.T) {
	answers := [][]string{{"a"}, {"c", "b"}}
	_, err := service.Grade(twoQuestionQuiz(), answers, service.DefaultPassThreshold)
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "b"}, answers[1])
}

func TestClientViewHidesAnswers(t *testing.T) {
	view := service.ClientView(twoQuestionQuiz())
	data, err := json.Marshal(view)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "correct_answers")
	assert.Equal(t, "Basics", view.Title)
	assert.Equal(t, []string{"a", "b", "c"}, view.Questions[1].Options)
}

func newQuizService(t *testing.T) (*service.QuizService, *service.UserService) {
	t.Helper()
	records := newRecords(t)
	quizzes := fakeQuizzes{"001": twoQuestionQuiz()}
	qs := service.NewQuizService(quizzes, records, 0)
	qs.Now = func() time.Time { return time.Date(2024, 7, 15, 22, 0, 0, 0, time.UTC) }
	return qs, service.NewUserService(records, "User_")
}

func TestSubmitRecordsPassDate(t *testing.T) {
	ctx := context.Background()
	qs, us := newQuizService(t)
	_, err := us.GetOrCreate(ctx, "u1")
	require.NoError(t, err)

	res, err := qs.Submit(ctx, "001", model.QuizSubmission{UserID: "u1", Answers: [][]string{{"a"}, {"b", "c"}}})
	require.NoError(t, err)
	assert.True(t, res.Passed)

	rec, err := qs.Records.FindByUserID(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "2024-07-15", rec.Get("test001").String())
}

func TestSubmitFailureOverwritesWithZero(t *testing.T) {
	ctx := context.Background()
	qs, us := newQuizService(t)
	_, err := us.GetOrCreate(ctx, "u1")
	require.NoError(t, err)

	_, err = qs.Submit(ctx, "001", model.QuizSubmission{UserID: "u1", Answers: [][]string{{"a"}, {"b", "c"}}})
	require.NoError(t, err)
	res, err := qs.Submit(ctx, "001", model.QuizSubmission{UserID: "u1", Answers: [][]string{{"b"}, {"a"}}})
	require.NoError(t, err)
	assert.False(t, res.Passed)
	assert.Equal(t, 0, res.Score)

	rec, err := qs.Records.FindByUserID(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "0", rec.Get("test001").String())
}

func TestSubmitUnknownUser(t *testing.T) {
	qs, _ := newQuizService(t)
	_, err := qs.Submit(context.Background(), "001", model.QuizSubmission{UserID: "ghost", Answers: [][]string{{"a"}, {"b", "c"}}})
	assert.ErrorIs(t, err, util.ErrUserNotFound)
}

func TestSubmitUnknownQuiz(t *testing.T) {
	qs, _ := newQuizService(t)
	_, err := qs.Submit(context.Background(), "999", model.QuizSubmission{UserID: "u1", Answers: [][]string{}})
	assert.ErrorIs(t, err, util.ErrQuizNotFound)
}

func TestGetClientQuiz(t *testing.T) {
	qs, _ := newQuizService(t)
	view, err := qs.GetClientQuiz(context.Background(), "001")
	require.NoError(t, err)
	assert.Len(t, view.Questions, 2)
}

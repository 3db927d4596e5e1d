package service_test

import (
	"context"
	"elearning_backend/internal/model"
	"elearning_backend/internal/service"
	"elearning_backend/internal/util"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetOrCreateGeneratesName(t *testing.T) {
	us := service.NewUserService(newRecords(t), "User_")

	rec, err := us.GetOrCreate(context.Background(), "9876543210")
	require.NoError(t, err)
	assert.Equal(t, "User_98765", rec.Name)
	assert.Equal(t, model.NotCompleted, rec.Get("learning001").State)

	short, err := us.GetOrCreate(context.Background(), "ab")
	require.NoError(t, err)
	assert.Equal(t, "User_ab", short.Name)
}

func TestUpdateProgressMerges(t *testing.T) {
	ctx := context.Background()
	us := service.NewUserService(newRecords(t), "User_")
	_, err := us.GetOrCreate(ctx, "u1")
	require.NoError(t, err)

	rec, err := us.UpdateProgress(ctx, "u1", map[string]string{
		"name":           "Alice",
		"learning002":    "2024-04-01",
		"user_id":        "someone-else",
		"learningNumber": "2",
	})
	require.NoError(t, err)
	assert.Equal(t, "u1", rec.UserID)
	assert.Equal(t, "Alice", rec.Name)
	assert.Equal(t, "2024-04-01", rec.Get("learning002").String())
	assert.Equal(t, model.NotCompleted, rec.Get("learning001").State)
	assert.Equal(t, model.Unset, rec.Get("learningNumber").State)
}

func TestUpdateProgressRejectsInvalidValue(t *testing.T) {
	ctx := context.Background()
	us := service.NewUserService(newRecords(t), "User_")
	_, err := us.GetOrCreate(ctx, "u1")
	require.NoError(t, err)

	_, err = us.UpdateProgress(ctx, "u1", map[string]string{"learning001": "done"})
	assert.ErrorIs(t, err, util.ErrInvalidProgress)
}

func TestUpdateProgressUnknownUser(t *testing.T) {
	us := service.NewUserService(newRecords(t), "User_")
	_, err := us.UpdateProgress(context.Background(), "ghost", map[string]string{"learning001": "0"})
	assert.ErrorIs(t, err, util.ErrUserNotFound)
}

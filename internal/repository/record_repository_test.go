package repository_test

import (
	"context"
	"elearning_backend/internal/model"
	"elearning_backend/internal/repository"
	"elearning_backend/internal/util"
	"elearning_backend/pkg/storage"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var baseline = []string{"learning001", "learning002", "test001"}

func newRecordRepo(t *testing.T) (*repository.RecordRepository, string) {
	t.Helper()
	dir := t.TempDir()
	repo := repository.NewRecordRepository(storage.NewLocalProvider(dir), "users.csv", baseline)
	require.NoError(t, repo.Init(context.Background()))
	return repo, dir
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestInitWritesSortedHeader(t *testing.T) {
	_, dir := newRecordRepo(t)
	assert.Equal(t, "user_id,name,learning001,learning002,test001\n", readFile(t, filepath.Join(dir, "users.csv")))
}

func TestInitKeepsExistingFile(t *testing.T) {
	dir := t.TempDir()
	existing := "user_id,name,learning001\nu1,Alice,2024-01-01\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "users.csv"), []byte(existing), 0644))

	repo := repository.NewRecordRepository(storage.NewLocalProvider(dir), "users.csv", baseline)
	require.NoError(t, repo.Init(context.Background()))
	assert.Equal(t, existing, readFile(t, filepath.Join(dir, "users.csv")))
}

func TestFindOrCreate(t *testing.T) {
	ctx := context.Background()
	repo, _ := newRecordRepo(t)

	rec, created, err := repo.FindOrCreate(ctx, "abcdef123", "User_abcde")
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "User_abcde", rec.Name)
	for _, f := range baseline {
		assert.Equal(t, model.NotCompleted, rec.Get(f).State, f)
	}

	again, created, err := repo.FindOrCreate(ctx, "abcdef123", "ignored")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, "User_abcde", again.Name)

	all, err := repo.LoadAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestUpsertWidensHeaderAndBackfills(t *testing.T) {
	ctx := context.Background()
	repo, dir := newRecordRepo(t)

	_, _, err := repo.FindOrCreate(ctx, "u1", "Alice")
	require.NoError(t, err)
	_, _, err = repo.FindOrCreate(ctx, "u2", "Bob")
	require.NoError(t, err)

	done := model.CompletedOn(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))
	updated, err := repo.Upsert(ctx, "u1", model.ProgressPatch{
		Progress: map[string]model.Completion{"test010": done},
	})
	require.NoError(t, err)
	assert.Equal(t, "2024-06-01", updated.Get("test010").String())

	content := readFile(t, filepath.Join(dir, "users.csv"))
	lines := strings.Split(strings.TrimSpace(content), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "user_id,name,learning001,learning002,test001,test010", lines[0])
	assert.Equal(t, "u1,Alice,0,0,0,2024-06-01", lines[1])
	assert.Equal(t, "u2,Bob,0,0,0,0", lines[2])
}

func TestUpsertUnknownUser(t *testing.T) {
	repo, _ := newRecordRepo(t)
	_, err := repo.Upsert(context.Background(), "ghost", model.ProgressPatch{})
	assert.ErrorIs(t, err, util.ErrUserNotFound)

	all, err := repo.LoadAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestFindByUserID(t *testing.T) {
	ctx := context.Background()
	repo, _ := newRecordRepo(t)

	_, err := repo.FindByUserID(ctx, "u1")
	assert.ErrorIs(t, err, util.ErrUserNotFound)

	_, _, err = repo.FindOrCreate(ctx, "u1", "Alice")
	require.NoError(t, err)
	rec, err := repo.FindByUserID(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "Alice", rec.Name)
}

func TestCreateDefaultAllowsDuplicates(t *testing.T) {
	ctx := context.Background()
	repo, _ := newRecordRepo(t)

	_, err := repo.CreateDefault(ctx, "u1", "A")
	require.NoError(t, err)
	_, err = repo.CreateDefault(ctx, "u1", "A")
	require.NoError(t, err)

	all, err := repo.LoadAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestMissingRecordFile(t *testing.T) {
	repo := repository.NewRecordRepository(storage.NewLocalProvider(t.TempDir()), "users.csv", baseline)
	_, err := repo.LoadAll(context.Background())
	assert.ErrorIs(t, err, util.ErrStorageRead)
}

func TestParseRecords(t *testing.T) {
	data := "\ufeffuser_id,name,learningNumber,test001,learning001\nu1,Alice,3,2024-02-03,0\nu2,Bob,1,,0\n"
	records, err := repository.ParseRecords([]byte(data))
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "u1", records[0].UserID)
	assert.True(t, records[0].Get("test001").IsCompleted())
	assert.Equal(t, model.Unset, records[0].Get("learningNumber").State)
	assert.Equal(t, model.NotCompleted, records[1].Get("test001").State)

	empty, err := repository.ParseRecords(nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestParseRecordsRejectsBadInput(t *testing.T) {
	_, err := repository.ParseRecords([]byte("name,learning001\nAlice,0\n"))
	assert.ErrorIs(t, err, util.ErrStorageRead)

	_, err = repository.ParseRecords([]byte("user_id,name,learning001\nu1,Alice,done\n"))
	assert.ErrorIs(t, err, util.ErrStorageRead)
	assert.Contains(t, err.Error(), "line 2")
}

func TestEncodeRoundTrip(t *testing.T) {
	in := "user_id,name,learning001,test001\nu1,\"Doe, Jane\",2024-01-01,0\n"
	records, err := repository.ParseRecords([]byte(in))
	require.NoError(t, err)
	out, err := repository.EncodeRecords(records)
	require.NoError(t, err)
	assert.Equal(t, in, string(out))
}

func TestConcurrentUpsertsKeepEveryField(t *testing.T) {
	ctx := context.Background()
	repo, _ := newRecordRepo(t)
	_, _, err := repo.FindOrCreate(ctx, "u1", "Alice")
	require.NoError(t, err)

	const n = 20
	done := model.CompletedOn(time.Now())
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := repo.Upsert(ctx, "u1", model.ProgressPatch{
				Progress: map[string]model.Completion{fmt.Sprintf("learning%03d", 100+i): done},
			})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	rec, err := repo.FindByUserID(ctx, "u1")
	require.NoError(t, err)
	for i := 0; i < n; i++ {
		assert.True(t, rec.Get(fmt.Sprintf("learning%03d", 100+i)).IsCompleted())
	}
}

func TestConcurrentFirstAccessCreatesOneRow(t *testing.T) {
	ctx := context.Background()
	repo, _ := newRecordRepo(t)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _, err := repo.FindOrCreate(ctx, "u1", "User_u1")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	all, err := repo.LoadAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestSnapshot(t *testing.T) {
	repo, _ := newRecordRepo(t)
	data, err := repo.Snapshot(context.Background())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "user_id,name,"))
}

package ingest

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/bi-tools/reportsmith/pkg/models/api"
	"github.com/bi-tools/reportsmith/pkg/models/domain"
	"github.com/bi-tools/reportsmith/pkg/models/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockArchiver struct {
	mock.Mock
}

func (m *mockArchiver) Assemble(ctx context.Context, payload api.ReportPayload) (store.ReportRecord, error) {
	args := m.Called(ctx, payload)
	return args.Get(0).(store.ReportRecord), args.Error(1)
}

func writePayload(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRunner_Run(t *testing.T) {
	t.Run("archives every payload", func(t *testing.T) {
		dropDir := t.TempDir()
		failedDir := t.TempDir()

		writePayload(t, dropDir, "a.json", `{"question":"q1","sql":"SELECT 1","summary":"s"}`)
		writePayload(t, dropDir, "b.json", `{"question":"q2","sql":"SELECT 2","summary":"s"}`)

		archiver := new(mockArchiver)
		archiver.On("Assemble", mock.Anything, mock.Anything).Return(store.ReportRecord{ID: "x"}, nil).Twice()

		runner := NewRunner(archiver, dropDir, failedDir, RunnerConfig{Concurrency: 2})
		summary, err := runner.Run(context.Background())
		require.NoError(t, err)

		assert.Equal(t, Summary{Processed: 2, Failed: 0}, summary)

		// consumed payloads are removed
		entries, err := os.ReadDir(dropDir)
		require.NoError(t, err)
		assert.Empty(t, entries)

		archiver.AssertExpectations(t)
	})

	t.Run("moves failed payloads aside", func(t *testing.T) {
		dropDir := t.TempDir()
		failedDir := filepath.Join(t.TempDir(), "failed")

		writePayload(t, dropDir, "bad.json", `{not json`)
		writePayload(t, dropDir, "invalid.json", `{"question":"","sql":"SELECT 1","summary":"s"}`)
		writePayload(t, dropDir, "good.json", `{"question":"q","sql":"SELECT 1","summary":"s"}`)

		archiver := new(mockArchiver)
		archiver.On("Assemble", mock.Anything, mock.MatchedBy(func(p api.ReportPayload) bool {
			return p.Question == ""
		})).Return(store.ReportRecord{}, &domain.ValidationError{Reason: "question is required"})
		archiver.On("Assemble", mock.Anything, mock.MatchedBy(func(p api.ReportPayload) bool {
			return p.Question == "q"
		})).Return(store.ReportRecord{ID: "x"}, nil)

		runner := NewRunner(archiver, dropDir, failedDir, RunnerConfig{Concurrency: 1})
		summary, err := runner.Run(context.Background())
		require.NoError(t, err)

		assert.Equal(t, Summary{Processed: 1, Failed: 2}, summary)

		failedEntries, err := os.ReadDir(failedDir)
		require.NoError(t, err)
		assert.Len(t, failedEntries, 2)

		archiver.AssertExpectations(t)
	})

	t.Run("empty drop directory", func(t *testing.T) {
		runner := NewRunner(new(mockArchiver), t.TempDir(), t.TempDir(), RunnerConfig{})
		summary, err := runner.Run(context.Background())
		require.NoError(t, err)
		assert.Equal(t, Summary{}, summary)
	})
}

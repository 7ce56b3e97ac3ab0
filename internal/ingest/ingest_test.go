package ingest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lueurxax/stance-classifier/internal/core/domain"
	errs "github.com/lueurxax/stance-classifier/internal/core/errors"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoadThreads(t *testing.T) {
	path := writeFile(t, "threads.jsonl", `
{"id":"root","text":"a storm hit the coast","is_news":true,"created_at":"2016-01-02T15:04:05Z"}
{"id":"reply","text":"is that true?","parent_id":"root","retweet_count":3}
`)

	threads, err := LoadThreads(path)
	require.NoError(t, err)
	require.Equal(t, 2, threads.Len())

	root, ok := threads.Get("root")
	require.True(t, ok)
	assert.True(t, root.IsNews)
	assert.True(t, root.IsRoot())
	assert.Equal(t, 2016, root.CreatedAt.Year())

	reply, ok := threads.Get("reply")
	require.True(t, ok)
	assert.Equal(t, "root", reply.ParentID)
	assert.Equal(t, 3, reply.RetweetCount)
	assert.Equal(t, 1, threads.Depth(reply))
}

func TestLoadThreads_SkipsBlankLines(t *testing.T) {
	path := writeFile(t, "threads.jsonl", "\n{\"id\":\"only\",\"text\":\"hi there\"}\n\n")

	threads, err := LoadThreads(path)
	require.NoError(t, err)
	assert.Equal(t, 1, threads.Len())
}

func TestLoadThreads_InvalidJSON(t *testing.T) {
	path := writeFile(t, "threads.jsonl", "{not json}\n")

	_, err := LoadThreads(path)
	require.ErrorIs(t, err, errs.ErrInvalidRecord)
}

func TestLoadThreads_MissingID(t *testing.T) {
	path := writeFile(t, "threads.jsonl", `{"text":"no id here"}`)

	_, err := LoadThreads(path)
	require.ErrorIs(t, err, errs.ErrInvalidRecord)
}

func TestLoadThreads_BadCreatedAt(t *testing.T) {
	path := writeFile(t, "threads.jsonl", `{"id":"m","text":"x","created_at":"not a date"}`)

	_, err := LoadThreads(path)
	require.ErrorIs(t, err, errs.ErrInvalidRecord)
}

func TestLoadThreads_DanglingParent(t *testing.T) {
	path := writeFile(t, "threads.jsonl", `{"id":"reply","text":"x","parent_id":"missing"}`)

	_, err := LoadThreads(path)
	require.ErrorIs(t, err, errs.ErrUnknownParent)
}

func TestLoadThreads_FileNotFound(t *testing.T) {
	_, err := LoadThreads(filepath.Join(t.TempDir(), "missing.jsonl"))
	require.Error(t, err)
}

func TestLoadAnnotations(t *testing.T) {
	path := writeFile(t, "annotations.json", `{"a":"support","b":"deny"}`)

	annotations, err := LoadAnnotations(path)
	require.NoError(t, err)

	assert.Equal(t, domain.StanceSupport, annotations["a"])
	assert.Equal(t, domain.StanceDeny, annotations["b"])
}

func TestLoadAnnotations_UnknownLabel(t *testing.T) {
	path := writeFile(t, "annotations.json", `{"a":"agree"}`)

	_, err := LoadAnnotations(path)
	require.ErrorIs(t, err, errs.ErrUnknownLabel)
}

func TestValidateCoverage(t *testing.T) {
	threads, err := domain.NewThreadSet([]*domain.Message{
		{ID: "a"}, {ID: "b", ParentID: "a"},
	})
	require.NoError(t, err)

	full := domain.Annotations{"a": domain.StanceComment, "b": domain.StanceQuery}
	require.NoError(t, ValidateCoverage(threads, full))

	partial := domain.Annotations{"a": domain.StanceComment}
	require.ErrorIs(t, ValidateCoverage(threads, partial), errs.ErrAnnotationCoverage)
}

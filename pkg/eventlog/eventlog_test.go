package eventlog

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type entry struct {
	ID      string
	Outcome string
	Detail  string
}

func newTestLog(t *testing.T) FileLog[entry] {
	t.Helper()

	log, err := New[entry](filepath.Join(t.TempDir(), "results.log"))
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, log.Close()) })

	return log
}

func TestFileLog_AppendAndRange(t *testing.T) {
	log := newTestLog(t)

	items := []entry{
		{ID: "stable-value", Outcome: "fail", Detail: "stale text"},
		{ID: "subscription-value", Outcome: "pass"},
	}
	for _, item := range items {
		require.NoError(t, log.Append(item))
	}

	assert.Equal(t, uint64(2), log.Len())

	var got []entry
	require.NoError(t, log.Range(func(index uint64, item entry) error {
		assert.Equal(t, uint64(len(got)), index)
		got = append(got, item)
		return nil
	}))

	assert.Equal(t, items, got)
}

func TestFileLog_ZeroFieldsDoNotInheritPredecessors(t *testing.T) {
	log := newTestLog(t)

	require.NoError(t, log.Append(entry{ID: "broken", Outcome: "fail", Detail: "stale text"}))
	require.NoError(t, log.Append(entry{ID: "clean", Outcome: "pass"}))

	var got []entry
	require.NoError(t, log.Range(func(_ uint64, item entry) error {
		got = append(got, item)
		return nil
	}))

	require.Len(t, got, 2)
	assert.Equal(t, entry{ID: "clean", Outcome: "pass", Detail: ""}, got[1])
}

func TestFileLog_EmptyRange(t *testing.T) {
	log := newTestLog(t)

	assert.Zero(t, log.Len())
	require.NoError(t, log.Range(func(uint64, entry) error {
		t.Fatal("callback must not run on an empty log")
		return nil
	}))
}

func TestFileLog_RangeStopsOnCallbackError(t *testing.T) {
	log := newTestLog(t)

	require.NoError(t, log.Append(entry{ID: "a"}))
	require.NoError(t, log.Append(entry{ID: "b"}))

	sentinel := errors.New("stop here")
	seen := 0

	err := log.Range(func(uint64, entry) error {
		seen++
		return sentinel
	})

	assert.ErrorIs(t, err, sentinel)
	assert.Equal(t, 1, seen)
}

func TestFileLog_TruncatesPreviousLog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.log")

	first, err := New[entry](path)
	require.NoError(t, err)
	require.NoError(t, first.Append(entry{ID: "old"}))
	require.NoError(t, first.Close())

	second, err := New[entry](path)
	require.NoError(t, err)
	defer func() { assert.NoError(t, second.Close()) }()

	assert.Zero(t, second.Len())
	require.NoError(t, second.Range(func(uint64, entry) error {
		t.Fatal("old entries must be gone")
		return nil
	}))
}

func TestFileLog_NewFailsOnBadPath(t *testing.T) {
	_, err := New[entry](filepath.Join(t.TempDir(), "missing", "results.log"))
	assert.Error(t, err)
}

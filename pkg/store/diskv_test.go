package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newTestPersistence(t *testing.T) *persistence {
	t.Helper()
	p, err := Load(Dir(t.TempDir()))
	require.NoError(t, err)
	return p.(*persistence)
}

func TestLoadRequiresPath(t *testing.T) {
	_, err := Load(nil)
	require.Error(t, err)
	_, err = Load(Dir(""))
	require.Error(t, err)
}

func TestIncrementRecordsCountAndLastUsage(t *testing.T) {
	p := newTestPersistence(t)
	now := time.Date(2025, time.March, 3, 12, 0, 0, 0, time.UTC)
	p.now = func() time.Time { return now }

	require.NoError(t, p.Increment("1f600"))
	now = now.Add(time.Minute)
	require.NoError(t, p.Increment("1F600"))
	require.NoError(t, p.Increment("1F602"))

	h := p.History(context.Background())
	require.Len(t, h, 2)
	require.Equal(t, 2, h["1F600"].Count)
	require.Equal(t, now.UnixMilli(), h["1F600"].LastUsage)
	require.Equal(t, "1F602", h["1F602"].Hexcode)
}

func TestIncrementRejectsEmptyHexcode(t *testing.T) {
	p := newTestPersistence(t)
	require.Error(t, p.Increment("  "))
}

func TestClearHistory(t *testing.T) {
	p := newTestPersistence(t)
	require.NoError(t, p.Increment("1F600"))
	require.NoError(t, p.SetCustomTags("1F600", []string{"keep"}))

	require.NoError(t, p.ClearHistory(context.Background()))
	require.Empty(t, p.History(context.Background()))

	tags, err := p.CustomTags("1F600")
	require.NoError(t, err)
	require.Equal(t, []string{"keep"}, tags)
}

func TestCustomTagsRoundTripAndDelete(t *testing.T) {
	p := newTestPersistence(t)

	tags, err := p.CustomTags("1F44B-1F3FB")
	require.NoError(t, err)
	require.Nil(t, tags)

	require.NoError(t, p.SetCustomTags("1f44b-1f3fb", []string{"hello", "bye"}))
	tags, err = p.CustomTags("1F44B-1F3FB")
	require.NoError(t, err)
	require.Equal(t, []string{"hello", "bye"}, tags)

	all := p.AllCustomTags(context.Background())
	require.Equal(t, map[string][]string{"1F44B-1F3FB": {"hello", "bye"}}, all)

	require.NoError(t, p.SetCustomTags("1F44B-1F3FB", nil))
	tags, err = p.CustomTags("1F44B-1F3FB")
	require.NoError(t, err)
	require.Nil(t, tags)

	// Deleting twice is fine.
	require.NoError(t, p.SetCustomTags("1F44B-1F3FB", nil))
}

func TestKeyTransformsRoundTrip(t *testing.T) {
	for _, key := range []string{"history/1F600", "tags/1F44B-1F3FB", "loose"} {
		require.Equal(t, key, pathToKeyTransform(keyToPathTransform(key)))
	}
}

func TestHistoryServiceCachesUntilWrite(t *testing.T) {
	p := newTestPersistence(t)
	svc := NewHistoryService(p)

	require.Empty(t, svc.History())
	require.NoError(t, p.Increment("1F600"))
	require.Empty(t, svc.History(), "snapshot should be cached")

	require.NoError(t, svc.Increment("1F602"))
	require.Len(t, svc.History(), 2)

	require.NoError(t, svc.Clear(context.Background()))
	require.Empty(t, svc.History())
}

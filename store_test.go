package lawbot_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lawbot"
)

func TestStore_Create(t *testing.T) {
	t.Parallel()

	now := time.Now()
	st := lawbot.NewStore(now)
	before := len(st.Sessions)

	st = st.Create(now.Add(time.Minute))

	require.Len(t, st.Sessions, before+1)
	created := st.Sessions[0]
	assert.Equal(t, created.ID, st.ActiveID, "new session becomes active")
	assert.Equal(t, lawbot.DefaultTitle, created.Title)
	require.Len(t, created.Messages, 1)
	assert.Equal(t, lawbot.RoleBot, created.Messages[0].Role)
	assert.Equal(t, lawbot.WelcomeText, created.Messages[0].Text)
	assert.False(t, created.Pinned)
	assert.Empty(t, created.Documents)
}

func TestStore_NeverEmpty(t *testing.T) {
	t.Parallel()

	now := time.Now()
	st := lawbot.NewStore(now)

	// Arbitrary create/delete sequence; the collection must stay non-empty
	// after every step.
	st = st.Create(now)
	st = st.Create(now)
	for len(st.Sessions) > 0 {
		id := st.Sessions[0].ID
		st = st.Delete(id, now)
		require.NotEmpty(t, st.Sessions)
		if len(st.Sessions) == 1 {
			// Deleting the last session must re-seed a welcome session.
			last := st.Sessions[0].ID
			st = st.Delete(last, now)
			require.Len(t, st.Sessions, 1)
			assert.NotEqual(t, last, st.Sessions[0].ID)
			break
		}
	}
}

func TestStore_Delete(t *testing.T) {
	t.Parallel()

	now := time.Now()

	t.Run("deleting active session activates first remaining", func(t *testing.T) {
		t.Parallel()
		st := lawbot.NewStore(now).Create(now).Create(now)
		active := st.ActiveID
		st = st.Delete(active, now)

		s, ok := st.Active()
		require.True(t, ok)
		assert.Equal(t, st.Sessions[0].ID, s.ID)
		_, exists := st.Get(active)
		assert.False(t, exists)
	})

	t.Run("deleting inactive session keeps active", func(t *testing.T) {
		t.Parallel()
		st := lawbot.NewStore(now).Create(now)
		active := st.ActiveID
		other := st.Sessions[1].ID
		st = st.Delete(other, now)

		assert.Equal(t, active, st.ActiveID)
		require.Len(t, st.Sessions, 1)
	})

	t.Run("deleting last session re-seeds", func(t *testing.T) {
		t.Parallel()
		st := lawbot.NewStore(now)
		only := st.Sessions[0].ID
		st = st.Delete(only, now)

		require.Len(t, st.Sessions, 1)
		s, ok := st.Active()
		require.True(t, ok)
		assert.NotEqual(t, only, s.ID)
		assert.Equal(t, lawbot.WelcomeText, s.Messages[0].Text)
	})
}

func TestStore_Select(t *testing.T) {
	t.Parallel()

	now := time.Now()
	st := lawbot.NewStore(now).Create(now)
	target := st.Sessions[1].ID

	st = st.Select(target)
	assert.Equal(t, target, st.ActiveID)

	st = st.Select("no-such-id")
	assert.Equal(t, target, st.ActiveID, "unknown id is a no-op")
}

func TestStore_TogglePin(t *testing.T) {
	t.Parallel()

	now := time.Now()
	st := lawbot.NewStore(now)
	id := st.Sessions[0].ID
	modified := st.Sessions[0].LastModified

	st = st.TogglePin(id)
	s, _ := st.Get(id)
	assert.True(t, s.Pinned)
	assert.Equal(t, modified, s.LastModified, "pin toggle does not bump LastModified")

	st = st.TogglePin(id)
	s, _ = st.Get(id)
	assert.False(t, s.Pinned)
}

func TestStore_Update(t *testing.T) {
	t.Parallel()

	now := time.Now()
	st := lawbot.NewStore(now).Create(now)
	target := st.Sessions[0].ID
	otherBefore := st.Sessions[1]

	snapshot := st
	st = st.Update(target, func(s lawbot.Session) lawbot.Session {
		s.Messages = append(s.Messages, lawbot.Message{ID: "m1", Role: lawbot.RoleUser, Text: "hi"})
		return s
	})

	s, _ := st.Get(target)
	require.Len(t, s.Messages, 2)
	assert.Equal(t, otherBefore, st.Sessions[1], "other sessions untouched")

	// Copy-on-write: the pre-transition snapshot is unchanged.
	prev, _ := snapshot.Get(target)
	assert.Len(t, prev.Messages, 1)
}

func TestStore_Sorted(t *testing.T) {
	t.Parallel()

	base := time.Now()
	st := lawbot.NewStore(base)
	st = st.Create(base.Add(time.Minute))
	st = st.Create(base.Add(2 * time.Minute))
	// Sessions are newest-first: [2m, 1m, base].
	oldest := st.Sessions[2].ID
	st = st.TogglePin(oldest)

	sorted := st.Sorted()
	require.Len(t, sorted, 3)
	assert.Equal(t, oldest, sorted[0].ID, "pinned before unpinned regardless of recency")
	assert.True(t, sorted[1].LastModified.After(sorted[2].LastModified) ||
		sorted[1].LastModified.Equal(sorted[2].LastModified))

	t.Run("stable on ties", func(t *testing.T) {
		t.Parallel()
		tied := lawbot.NewStore(base).Create(base) // both LastModified == base
		first := tied.Sessions[0].ID
		out := tied.Sorted()
		assert.Equal(t, first, out[0].ID)
	})
}

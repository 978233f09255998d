package lawbot

import (
	"slices"
	"time"
)

// Store holds the session collection and the active session id. All
// methods are copy-on-write: they return a new Store value and never
// mutate the receiver's sessions in place, so a snapshot taken before a
// transition stays valid after it.
//
// Sessions is kept in creation order (newest first); Sorted returns the
// display order. The collection is never empty after NewStore: deleting
// the last session immediately re-seeds a welcome session.
type Store struct {
	Sessions []Session
	ActiveID string
}

// NewStore returns a store seeded with one welcome session, which is
// active.
func NewStore(now time.Time) Store {
	s := NewSession(now)
	return Store{Sessions: []Session{s}, ActiveID: s.ID}
}

// Create prepends a fresh welcome session and makes it active.
func (st Store) Create(now time.Time) Store {
	s := NewSession(now)
	sessions := make([]Session, 0, len(st.Sessions)+1)
	sessions = append(sessions, s)
	sessions = append(sessions, st.Sessions...)
	return Store{Sessions: sessions, ActiveID: s.ID}
}

// Select makes id the active session. No-op when id is not present.
func (st Store) Select(id string) Store {
	if _, ok := st.Get(id); ok {
		st.ActiveID = id
	}
	return st
}

// Delete removes the session with id. If it was active, the first
// remaining session in current (pre-sort) order becomes active; deleting
// the last session re-seeds a fresh welcome session.
func (st Store) Delete(id string, now time.Time) Store {
	sessions := make([]Session, 0, len(st.Sessions))
	for _, s := range st.Sessions {
		if s.ID != id {
			sessions = append(sessions, s)
		}
	}
	if len(sessions) == 0 {
		return NewStore(now)
	}
	active := st.ActiveID
	if active == id {
		active = sessions[0].ID
	}
	return Store{Sessions: sessions, ActiveID: active}
}

// TogglePin flips the pinned flag. LastModified is deliberately left
// untouched so pinning alone never reorders the unpinned group.
func (st Store) TogglePin(id string) Store {
	return st.Update(id, func(s Session) Session {
		s.Pinned = !s.Pinned
		return s
	})
}

// Update applies transform to exactly the session with id, leaving all
// others untouched. transform receives a clone, so it may mutate its
// argument freely. No-op when id is absent.
func (st Store) Update(id string, transform func(Session) Session) Store {
	sessions := make([]Session, len(st.Sessions))
	for i, s := range st.Sessions {
		if s.ID == id {
			sessions[i] = transform(s.clone())
		} else {
			sessions[i] = s
		}
	}
	st.Sessions = sessions
	return st
}

// Get returns the session with id.
func (st Store) Get(id string) (Session, bool) {
	for _, s := range st.Sessions {
		if s.ID == id {
			return s, true
		}
	}
	return Session{}, false
}

// Active returns the active session, falling back to the first session
// when ActiveID matches nothing.
func (st Store) Active() (Session, bool) {
	if s, ok := st.Get(st.ActiveID); ok {
		return s, true
	}
	if len(st.Sessions) > 0 {
		return st.Sessions[0], true
	}
	return Session{}, false
}

// Sorted returns the sessions in display order: pinned first, then by
// LastModified descending. The sort is stable, so ties keep their
// current relative order.
func (st Store) Sorted() []Session {
	out := slices.Clone(st.Sessions)
	slices.SortStableFunc(out, func(a, b Session) int {
		if a.Pinned != b.Pinned {
			if a.Pinned {
				return -1
			}
			return 1
		}
		if a.LastModified.After(b.LastModified) {
			return -1
		}
		if b.LastModified.After(a.LastModified) {
			return 1
		}
		return 0
	})
	return out
}

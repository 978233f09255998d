package mock

import (
	"io"

	"lawbot"
)

// Stream is a test double for lawbot.Stream.
// NextFn panics when nil to catch missing setup. CloseFn is nil-safe
// because test code commonly calls defer stream.Close() without needing
// custom behavior.
type Stream struct {
	NextFn  func() (lawbot.Fragment, error)
	CloseFn func() error
}

// Next delegates to NextFn.
func (s *Stream) Next() (lawbot.Fragment, error) {
	return s.NextFn()
}

// Close delegates to CloseFn. Returns nil when CloseFn is not set.
func (s *Stream) Close() error {
	if s.CloseFn == nil {
		return nil
	}
	return s.CloseFn()
}

// Scripted returns a Stream that yields the given fragments in order,
// then terminates with final (io.EOF for normal completion).
func Scripted(fragments []lawbot.Fragment, final error) *Stream {
	i := 0
	if final == nil {
		final = io.EOF
	}
	return &Stream{
		NextFn: func() (lawbot.Fragment, error) {
			if i < len(fragments) {
				f := fragments[i]
				i++
				return f, nil
			}
			return lawbot.Fragment{}, final
		},
	}
}

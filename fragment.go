package lawbot

// Fragment is one incremental unit of a streamed reply. Text is a delta
// since the previous fragment, possibly empty. Citations, when non-empty,
// is the complete grounding list attached to this chunk, not a delta;
// the consumer replaces its running list with it (last non-empty wins).
type Fragment struct {
	Text      string
	Citations []Citation
}

// Stream is a pull-based iterator over reply fragments. Next returns
// io.EOF after the final fragment; any other error is terminal. A Stream
// is single pass and not restartable: a new reply re-issues a new remote
// request. Cancellation flows through the context passed to
// Provider.Stream.
type Stream interface {
	Next() (Fragment, error)
	Close() error
}

package lawbot

import "context"

// Provider opens streamed replies from the hosted model endpoint.
// Implementations perform no automatic retry; the caller decides whether
// to re-prompt for a credential.
type Provider interface {
	Stream(ctx context.Context, req Request) (Stream, error)
}

// Request carries everything one reply round trip needs.
type Request struct {
	// Credential is the API credential for this call.
	Credential string
	// UserText is the current user utterance.
	UserText string
	// History holds formatted "<role-label>: <text>" lines in
	// chronological order, already bounded by the orchestrator.
	History []string
	// Documents is the active session's reference-document set,
	// transcribed verbatim into the system instruction.
	Documents []Document
	// Persona selects the expert-mode instruction preset.
	Persona Persona
	// Model overrides the provider's default model ID when non-empty.
	Model string
}

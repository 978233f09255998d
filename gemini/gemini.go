// Package gemini implements [lawbot.Provider] for the Google Gemini API.
//
// It wraps the google.golang.org/genai SDK, translating between lawbot's
// domain types and the Gemini API types. Streaming uses the SDK's
// iter.Seq2 iterator, wrapped into the pull-based [lawbot.Stream]
// interface. Every request enables the Google Search tool so replies
// arrive with search-grounding citations.
package gemini

const (
	// defaultModel favors speed; the orchestrator may override per
	// request.
	defaultModel = "gemini-3-flash-preview"

	// temperature is kept low for legal accuracy while still letting
	// the model synthesize search results.
	temperature = 0.2
)

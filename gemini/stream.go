package gemini

import (
	"errors"
	"fmt"
	"io"
	"iter"
	"net/http"
	"strings"

	"google.golang.org/genai"

	"lawbot"
)

// stream implements [lawbot.Stream] by wrapping the genai SDK's
// streaming iterator via iter.Pull2.
type stream struct {
	pull func() (*genai.GenerateContentResponse, error, bool)
	stop func()
	done bool
	err  error
}

// Interface compliance check.
var _ lawbot.Stream = (*stream)(nil)

func newStream(iterFn iter.Seq2[*genai.GenerateContentResponse, error]) *stream {
	next, stop := iter.Pull2(iterFn)
	return &stream{pull: next, stop: stop}
}

// Next returns the next reply fragment, io.EOF on normal completion, or
// the classified terminal error.
func (s *stream) Next() (lawbot.Fragment, error) {
	if s.err != nil {
		return lawbot.Fragment{}, s.err
	}
	if s.done {
		return lawbot.Fragment{}, io.EOF
	}
	resp, err, ok := s.pull()
	if !ok {
		s.done = true
		return lawbot.Fragment{}, io.EOF
	}
	if err != nil {
		s.err = classify(err)
		return lawbot.Fragment{}, s.err
	}
	return fragment(resp), nil
}

// Close releases the underlying iterator. Safe to call in any state.
func (s *stream) Close() error {
	s.done = true
	s.stop()
	return nil
}

// fragment converts one response chunk into a domain fragment: the
// chunk's text delta plus the full grounding-citation list when the
// chunk carries grounding metadata.
func fragment(resp *genai.GenerateContentResponse) lawbot.Fragment {
	f := lawbot.Fragment{Text: resp.Text()}
	if len(resp.Candidates) == 0 || resp.Candidates[0].GroundingMetadata == nil {
		return f
	}
	for _, gc := range resp.Candidates[0].GroundingMetadata.GroundingChunks {
		if gc.Web == nil {
			continue
		}
		f.Citations = append(f.Citations, lawbot.Citation{
			URI:   gc.Web.URI,
			Title: gc.Web.Title,
		})
	}
	return f
}

// classify maps SDK errors onto the domain sentinels. The API reports
// credential rejections as 400/401/403 or with an API-key message.
func classify(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case http.StatusBadRequest, http.StatusUnauthorized, http.StatusForbidden:
			return fmt.Errorf("gemini: %w: %v", lawbot.ErrInvalidCredential, err)
		}
		return fmt.Errorf("gemini: %w: %v", lawbot.ErrLookupFailed, err)
	}
	if strings.Contains(err.Error(), "API key") || strings.Contains(err.Error(), "API Key") {
		return fmt.Errorf("gemini: %w: %v", lawbot.ErrInvalidCredential, err)
	}
	return fmt.Errorf("gemini: %w: %v", lawbot.ErrLookupFailed, err)
}

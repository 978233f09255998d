package gemini

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"lawbot"
)

// Interface compliance check.
var _ lawbot.Provider = (*Client)(nil)

// Client implements [lawbot.Provider] for the Google Gemini API.
//
// The genai client is constructed per call from the request's credential:
// the user can replace the credential at runtime after an auth failure,
// so no key is pinned at construction time.
type Client struct {
	model string
}

// Option configures a [Client].
type Option func(*Client)

// WithModel sets the default model ID. Default is gemini-3-flash-preview.
func WithModel(model string) Option {
	return func(c *Client) {
		if model != "" {
			c.model = model
		}
	}
}

// New creates a new Gemini [Client].
func New(opts ...Option) *Client {
	c := &Client{model: defaultModel}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Stream opens a streamed chat completion and returns a [lawbot.Stream]
// of reply fragments. Credential rejections map to
// [lawbot.ErrInvalidCredential], everything else to
// [lawbot.ErrLookupFailed]; there is no automatic retry.
func (c *Client) Stream(ctx context.Context, req lawbot.Request) (lawbot.Stream, error) {
	gc, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  req.Credential,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, classify(err)
	}

	model := req.Model
	if model == "" {
		model = c.model
	}

	contents := []*genai.Content{{
		Role:  "user",
		Parts: []*genai.Part{{Text: Prompt(req)}},
	}}

	iter := gc.Models.GenerateContentStream(ctx, model, contents, buildConfig(req))
	return newStream(iter), nil
}

func buildConfig(req lawbot.Request) *genai.GenerateContentConfig {
	temp := float32(temperature)
	return &genai.GenerateContentConfig{
		Temperature: &temp,
		Tools:       []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}},
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: SystemInstruction(req.Persona, req.Documents)}},
		},
	}
}

// SystemInstruction builds the system-level instruction: the persona's
// block, the shared grounding block, and a verbatim transcription of any
// reference documents as case context. Exported for testing.
func SystemInstruction(p lawbot.Persona, docs []lawbot.Document) string {
	var b strings.Builder
	b.WriteString(p.Instruction())
	b.WriteString("\n")
	b.WriteString(lawbot.SharedInstruction)

	if len(docs) > 0 {
		b.WriteString("\n\n[의뢰인 제공 자료 (Context for RAG)]\n의뢰인이 다음 문서를 검토 요청했습니다. 이 내용을 해당 사건의 사실관계로 전제하고 분석하십시오:\n")
		for _, d := range docs {
			fmt.Fprintf(&b, "\n--- 문서 제목: %s ---\n%s\n", d.Title, d.Content)
		}
	}
	return b.String()
}

// Prompt builds the single combined user turn: the joined history block
// followed by the persona tag and the current utterance. Exported for
// testing.
func Prompt(req lawbot.Request) string {
	var b strings.Builder
	if len(req.History) > 0 {
		b.WriteString("이전 대화 요약:\n")
		b.WriteString(strings.Join(req.History, "\n"))
		b.WriteString("\n\n")
	}
	fmt.Fprintf(&b, "[상담 모드: %s]\n현재 의뢰인 질문: %s", req.Persona, req.UserText)
	return b.String()
}

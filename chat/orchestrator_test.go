package chat_test

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lawbot"
	"lawbot/chat"
	"lawbot/mock"
)

func hasCredential() (string, bool) { return "test-key", true }
func noCredential() (string, bool)  { return "", false }

// scriptedProvider returns a provider whose streams replay the given
// fragments and then terminate with final.
func scriptedProvider(fragments []lawbot.Fragment, final error) *mock.Provider {
	return &mock.Provider{
		StreamFn: func(_ context.Context, _ lawbot.Request) (lawbot.Stream, error) {
			return mock.Scripted(fragments, final), nil
		},
	}
}

// drain runs a full turn: pulls every fragment, folds it, and finishes.
func drain(t *testing.T, o *chat.Orchestrator, turn *chat.Turn) error {
	t.Helper()
	for {
		f, err := turn.Next()
		if err == io.EOF {
			return o.Finish(turn, nil)
		}
		if err != nil {
			return o.Finish(turn, err)
		}
		o.Fold(turn, f)
	}
}

func TestOrchestrator_Send(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("appends user message and settles reply", func(t *testing.T) {
		t.Parallel()
		provider := scriptedProvider([]lawbot.Fragment{{Text: "안"}, {Text: "녕"}}, nil)
		o := chat.New(provider, hasCredential)

		turn, err := o.Send(ctx, "전세 보증금을 돌려받지 못했습니다")
		require.NoError(t, err)
		require.NoError(t, drain(t, o, turn))

		s := o.Active()
		require.Len(t, s.Messages, 3) // welcome, user, reply
		assert.Equal(t, lawbot.RoleUser, s.Messages[1].Role)
		assert.Equal(t, lawbot.RoleBot, s.Messages[2].Role)
		assert.Equal(t, "안녕", s.Messages[2].Text)
		assert.False(t, s.Messages[2].IsError)
		assert.False(t, o.Sending())
	})

	t.Run("empty and whitespace-only input is a silent no-op", func(t *testing.T) {
		t.Parallel()
		o := chat.New(scriptedProvider(nil, nil), hasCredential)
		before := o.Active()

		for _, text := range []string{"", "   ", "\n\t "} {
			_, err := o.Send(ctx, text)
			assert.ErrorIs(t, err, lawbot.ErrEmptyMessage)
		}

		after := o.Active()
		assert.Equal(t, len(before.Messages), len(after.Messages))
		assert.Equal(t, before.LastModified, after.LastModified)
	})

	t.Run("concurrent send is rejected", func(t *testing.T) {
		t.Parallel()
		o := chat.New(scriptedProvider([]lawbot.Fragment{{Text: "x"}}, nil), hasCredential)

		turn, err := o.Send(ctx, "first")
		require.NoError(t, err)

		_, err = o.Send(ctx, "second")
		assert.ErrorIs(t, err, lawbot.ErrBusy)

		require.NoError(t, drain(t, o, turn))
		_, err = o.Send(ctx, "third")
		assert.NoError(t, err, "guard clears after Finish")
	})

	t.Run("missing credential leaves transcript untouched", func(t *testing.T) {
		t.Parallel()
		o := chat.New(scriptedProvider(nil, nil), noCredential)
		before := o.Active()

		_, err := o.Send(ctx, "질문")
		assert.ErrorIs(t, err, lawbot.ErrCredentialRequired)
		assert.True(t, chat.CredentialRequired(err))

		after := o.Active()
		assert.Equal(t, len(before.Messages), len(after.Messages))
		assert.False(t, o.Sending())
	})

	t.Run("first user message fixes the title", func(t *testing.T) {
		t.Parallel()
		o := chat.New(scriptedProvider(nil, nil), hasCredential)
		long := strings.Repeat("가", 25)

		turn, err := o.Send(ctx, long)
		require.NoError(t, err)
		assert.Equal(t, strings.Repeat("가", 20)+"...", o.Active().Title)
		require.NoError(t, drain(t, o, turn))

		turn, err = o.Send(ctx, "두 번째 질문")
		require.NoError(t, err)
		assert.Equal(t, strings.Repeat("가", 20)+"...", o.Active().Title, "second message never changes the title")
		require.NoError(t, drain(t, o, turn))
	})

	t.Run("request carries history documents and persona", func(t *testing.T) {
		t.Parallel()
		var got lawbot.Request
		provider := &mock.Provider{
			StreamFn: func(_ context.Context, req lawbot.Request) (lawbot.Stream, error) {
				got = req
				return mock.Scripted(nil, nil), nil
			},
		}
		o := chat.New(provider, hasCredential)
		o.SetPersona(lawbot.PersonaTax)
		o.AddDocument("임대차계약서", "보증금 3억원...")

		turn, err := o.Send(ctx, "상속세 문의")
		require.NoError(t, err)
		require.NoError(t, drain(t, o, turn))

		assert.Equal(t, "test-key", got.Credential)
		assert.Equal(t, lawbot.PersonaTax, got.Persona)
		require.Len(t, got.Documents, 1)
		assert.Equal(t, "임대차계약서", got.Documents[0].Title)
		// Welcome bot message and the new user message are in history;
		// the system notice from AddDocument is not.
		require.Len(t, got.History, 2)
		assert.Equal(t, "LawBot: "+lawbot.WelcomeText, got.History[0])
		assert.Equal(t, "User: 상속세 문의", got.History[1])
	})
}

func TestOrchestrator_Fold(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("text deltas concatenate and citations overwrite", func(t *testing.T) {
		t.Parallel()
		cits := []lawbot.Citation{{URI: "https://law.go.kr", Title: "민법"}}
		provider := scriptedProvider([]lawbot.Fragment{
			{Text: "A"},
			{Text: "B", Citations: cits},
		}, nil)
		o := chat.New(provider, hasCredential)

		turn, err := o.Send(ctx, "질문")
		require.NoError(t, err)
		require.NoError(t, drain(t, o, turn))

		s := o.Active()
		reply := s.Messages[len(s.Messages)-1]
		assert.Equal(t, "AB", reply.Text)
		assert.Equal(t, cits, reply.Citations)
	})

	t.Run("later empty citation list does not clear", func(t *testing.T) {
		t.Parallel()
		cits := []lawbot.Citation{{URI: "https://scourt.go.kr"}}
		provider := scriptedProvider([]lawbot.Fragment{
			{Text: "A", Citations: cits},
			{Text: "B"},
		}, nil)
		o := chat.New(provider, hasCredential)

		turn, err := o.Send(ctx, "질문")
		require.NoError(t, err)
		require.NoError(t, drain(t, o, turn))

		s := o.Active()
		assert.Equal(t, cits, s.Messages[len(s.Messages)-1].Citations)
	})

	t.Run("fragments target the originating session after a switch", func(t *testing.T) {
		t.Parallel()
		provider := scriptedProvider([]lawbot.Fragment{{Text: "늦은 답변"}}, nil)
		o := chat.New(provider, hasCredential)

		turn, err := o.Send(ctx, "원래 세션 질문")
		require.NoError(t, err)
		origin := turn.SessionID

		o.NewSession()
		require.NotEqual(t, origin, o.Active().ID)

		require.NoError(t, drain(t, o, turn))

		switched := o.Active()
		assert.Len(t, switched.Messages, 1, "new session untouched")
		orig, ok := o.Store().Get(origin)
		require.True(t, ok)
		assert.Equal(t, "늦은 답변", orig.Messages[len(orig.Messages)-1].Text)
	})
}

func TestOrchestrator_Finish(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("auth failure mid-stream converts placeholder and re-signals", func(t *testing.T) {
		t.Parallel()
		provider := scriptedProvider([]lawbot.Fragment{{Text: "부분"}}, lawbot.ErrInvalidCredential)
		o := chat.New(provider, hasCredential)

		turn, err := o.Send(ctx, "질문")
		require.NoError(t, err)
		err = drain(t, o, turn)
		require.Error(t, err)
		assert.True(t, chat.CredentialRequired(err))

		s := o.Active()
		reply := s.Messages[len(s.Messages)-1]
		assert.True(t, reply.IsError)
		assert.Equal(t, lawbot.ErrorPrefix+lawbot.NoticeInvalidCredential, reply.Text)
		assert.Equal(t, lawbot.RoleUser, s.Messages[len(s.Messages)-2].Role, "user message untouched")
		assert.Equal(t, "질문", s.Messages[len(s.Messages)-2].Text)
		assert.False(t, o.Sending())
	})

	t.Run("generic failure uses the lookup notice", func(t *testing.T) {
		t.Parallel()
		provider := scriptedProvider(nil, lawbot.ErrLookupFailed)
		o := chat.New(provider, hasCredential)

		turn, err := o.Send(ctx, "질문")
		require.NoError(t, err)
		err = drain(t, o, turn)
		require.Error(t, err)
		assert.False(t, chat.CredentialRequired(err))

		s := o.Active()
		reply := s.Messages[len(s.Messages)-1]
		assert.True(t, reply.IsError)
		assert.Equal(t, lawbot.ErrorPrefix+lawbot.NoticeLookupFailed, reply.Text)
	})

	t.Run("stream open failure settles immediately", func(t *testing.T) {
		t.Parallel()
		provider := &mock.Provider{
			StreamFn: func(_ context.Context, _ lawbot.Request) (lawbot.Stream, error) {
				return nil, lawbot.ErrLookupFailed
			},
		}
		o := chat.New(provider, hasCredential)

		turn, err := o.Send(ctx, "질문")
		assert.Nil(t, turn)
		require.ErrorIs(t, err, lawbot.ErrLookupFailed)
		assert.False(t, o.Sending())

		s := o.Active()
		assert.True(t, s.Messages[len(s.Messages)-1].IsError)
	})
}

func TestOrchestrator_Intents(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("two-phase delete", func(t *testing.T) {
		t.Parallel()
		o := chat.New(scriptedProvider(nil, nil), hasCredential)
		o.NewSession()
		id := o.Active().ID

		o.RequestDelete(id)
		pending, ok := o.PendingDelete()
		require.True(t, ok)
		assert.Equal(t, id, pending.ID)
		_, exists := o.Store().Get(id)
		assert.True(t, exists, "request alone deletes nothing")

		o.CancelDelete()
		_, ok = o.PendingDelete()
		assert.False(t, ok)

		o.RequestDelete(id)
		o.ConfirmDelete()
		_, exists = o.Store().Get(id)
		assert.False(t, exists)
		assert.NotEmpty(t, o.Sessions())
	})

	t.Run("add and remove document", func(t *testing.T) {
		t.Parallel()
		o := chat.New(scriptedProvider(nil, nil), hasCredential)

		o.AddDocument("계약서", "내용")
		s := o.Active()
		require.Len(t, s.Documents, 1)
		last := s.Messages[len(s.Messages)-1]
		assert.Equal(t, lawbot.RoleSystem, last.Role)
		assert.Contains(t, last.Text, "계약서")

		o.RemoveDocument(s.Documents[0].ID)
		assert.Empty(t, o.Active().Documents)
	})

	t.Run("reset session", func(t *testing.T) {
		t.Parallel()
		o := chat.New(scriptedProvider([]lawbot.Fragment{{Text: "답"}}, nil), hasCredential)
		turn, err := o.Send(ctx, "질문")
		require.NoError(t, err)
		require.NoError(t, drain(t, o, turn))
		o.AddDocument("자료", "내용")

		o.ResetSession()
		s := o.Active()
		assert.Equal(t, lawbot.ResetTitle, s.Title)
		assert.Empty(t, s.Documents)
		require.Len(t, s.Messages, 1)
		assert.Equal(t, lawbot.ResetText, s.Messages[0].Text)
	})

	t.Run("latest briefing forces general persona", func(t *testing.T) {
		t.Parallel()
		var got lawbot.Request
		provider := &mock.Provider{
			StreamFn: func(_ context.Context, req lawbot.Request) (lawbot.Stream, error) {
				got = req
				return mock.Scripted(nil, nil), nil
			},
		}
		o := chat.New(provider, hasCredential)
		o.SetPersona(lawbot.PersonaCorporate)

		turn, err := o.LatestBriefing(ctx)
		require.NoError(t, err)
		require.NoError(t, drain(t, o, turn))

		assert.Equal(t, lawbot.PersonaGeneral, got.Persona)
		assert.Equal(t, chat.BriefingPrompt, got.UserText)
		assert.Equal(t, lawbot.PersonaGeneral, o.Persona())
	})
}

func TestOrchestrator_Clock(t *testing.T) {
	t.Parallel()

	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	o := chat.New(scriptedProvider(nil, nil), hasCredential,
		chat.WithClock(func() time.Time { return fixed }))

	s := o.Active()
	assert.Equal(t, fixed, s.CreatedAt)
	assert.Equal(t, fixed, s.LastModified)
}

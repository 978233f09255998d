package chat_test

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lawbot"
	"lawbot/chat"
)

func msg(role lawbot.Role, text string) lawbot.Message {
	return lawbot.Message{Role: role, Text: text}
}

func TestBuildHistory(t *testing.T) {
	t.Parallel()

	t.Run("formats roles chronologically", func(t *testing.T) {
		t.Parallel()
		got := chat.BuildHistory([]lawbot.Message{
			msg(lawbot.RoleBot, "환영합니다"),
			msg(lawbot.RoleUser, "질문입니다"),
			msg(lawbot.RoleBot, "답변입니다"),
		})
		assert.Equal(t, []string{
			"LawBot: 환영합니다",
			"User: 질문입니다",
			"LawBot: 답변입니다",
		}, got)
	})

	t.Run("skips system and error messages", func(t *testing.T) {
		t.Parallel()
		errMsg := msg(lawbot.RoleBot, "oops")
		errMsg.IsError = true
		got := chat.BuildHistory([]lawbot.Message{
			msg(lawbot.RoleUser, "q"),
			msg(lawbot.RoleSystem, "[시스템] 자료 등록"),
			errMsg,
			msg(lawbot.RoleBot, "a"),
		})
		assert.Equal(t, []string{"User: q", "LawBot: a"}, got)
	})

	t.Run("drops oldest entries first under the budget", func(t *testing.T) {
		t.Parallel()
		// Each line is "User: " (6) + 3000 = 3006 runes; five of them
		// exceed 12000, so only the newest three fit.
		body := strings.Repeat("a", 3000)
		var msgs []lawbot.Message
		for range 5 {
			msgs = append(msgs, msg(lawbot.RoleUser, body))
		}
		msgs[0].Text = "oldest" + body

		got := chat.BuildHistory(msgs)
		require.Len(t, got, 3)

		total := 0
		for _, line := range got {
			total += utf8.RuneCountInString(line)
		}
		assert.LessOrEqual(t, total, 12000)
		for _, line := range got {
			assert.NotContains(t, line, "oldest")
		}
	})

	t.Run("stops at first overflowing entry", func(t *testing.T) {
		t.Parallel()
		// A huge old entry blocks everything before it, even smaller ones.
		got := chat.BuildHistory([]lawbot.Message{
			msg(lawbot.RoleUser, "tiny"),
			msg(lawbot.RoleUser, strings.Repeat("b", 13000)),
			msg(lawbot.RoleUser, "newest"),
		})
		assert.Equal(t, []string{"User: newest"}, got)
	})

	t.Run("empty transcript", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, chat.BuildHistory(nil))
	})
}

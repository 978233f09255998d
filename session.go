package lawbot

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

// User-facing Korean texts seeded into sessions.
const (
	// DefaultTitle is the title of a session before its first user message.
	DefaultTitle = "새로운 법률 상담"

	// ResetTitle replaces the title when a session is reset in place.
	ResetTitle = "새로운 상담 (초기화됨)"

	// WelcomeText is the bot message seeding every new session.
	WelcomeText = "안녕하세요. **Personal LawBot**입니다.\n\n저는 **2025년 최신 판례와 개정 법령**까지 실시간으로 검색하여 분석해 드리는 귀하만의 **개인 전담 법률 파트너**입니다.\n\n아래에서 전문 분야(일반/세무/노무/기업)를 선택하시고, 편하게 질문해 주세요."

	// ResetText is the bot message seeding a session after reset.
	ResetText = "상담 내용이 초기화되었습니다. 새로운 분야나 주제로 다시 말씀해 주십시오."
)

// titleRunes is the maximum derived-title length before truncation.
const titleRunes = 20

// Document is user-supplied reference text scoped to one session. It is
// injected verbatim into the model's instruction context and destroyed
// with its session.
type Document struct {
	ID      string
	Title   string
	Content string
	AddedAt time.Time
}

// Session is one independent conversation thread with its own transcript
// and reference documents.
type Session struct {
	ID           string
	Title        string
	Messages     []Message
	Documents    []Document
	CreatedAt    time.Time
	LastModified time.Time
	Pinned       bool
}

// NewSession returns a fresh session seeded with the welcome bot message.
func NewSession(now time.Time) Session {
	return Session{
		ID:    uuid.NewString(),
		Title: DefaultTitle,
		Messages: []Message{{
			ID:        uuid.NewString(),
			Role:      RoleBot,
			Text:      WelcomeText,
			Timestamp: now,
		}},
		CreatedAt:    now,
		LastModified: now,
	}
}

// clone returns a copy whose Messages and Documents slices do not alias
// the receiver's, so a transform can append or edit freely.
func (s Session) clone() Session {
	s.Messages = slices.Clone(s.Messages)
	s.Documents = slices.Clone(s.Documents)
	return s
}

// HasUserMessages reports whether the session contains any user message.
// The first user message is the one that fixes the session title.
func (s Session) HasUserMessages() bool {
	for _, m := range s.Messages {
		if m.Role == RoleUser {
			return true
		}
	}
	return false
}

// DeriveTitle derives a session title from the first user message: the
// text verbatim up to 20 runes, longer texts truncated with an ellipsis
// marker.
func DeriveTitle(text string) string {
	r := []rune(text)
	if len(r) <= titleRunes {
		return text
	}
	return string(r[:titleRunes]) + "..."
}

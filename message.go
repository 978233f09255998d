package lawbot

import "time"

// Role identifies the author of a Message.
type Role string

const (
	RoleUser   Role = "user"
	RoleBot    Role = "bot"
	RoleSystem Role = "system"
)

// Citation is a search-grounding source attached to a bot reply.
type Citation struct {
	URI   string
	Title string
}

// Message is one entry in a session transcript. Text and Citations are
// mutable only while the message is the streaming bot placeholder; once
// the stream ends the message is settled.
//
// System messages are local notices (e.g. "reference document added")
// and are never sent to the model as conversation turns.
type Message struct {
	ID        string
	Role      Role
	Text      string
	Timestamp time.Time
	IsError   bool
	Citations []Citation
}

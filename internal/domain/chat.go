package domain

import "time"

// ChatStage is the state of a preference-collection conversation.
type ChatStage string

const (
	StageCollecting ChatStage = "collecting"
	StageRecommend  ChatStage = "recommend"
)

// ChatRole identifies who wrote a ChatMessage.
type ChatRole string

const (
	RoleUser ChatRole = "user"
	RoleBot  ChatRole = "bot"
)

// ChatMessage is a single line of conversation history.
type ChatMessage struct {
	Role      ChatRole  `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// ChatSession is the persisted state of one conversation.
// Prefs accumulates answers until every field is filled.
type ChatSession struct {
	ID        string        `json:"id"`
	Prefs     Filters       `json:"prefs"`
	Messages  []ChatMessage `json:"messages"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// ChatReply is what the bot answers after a session starts or a message arrives.
// Filters is set only when Stage is StageRecommend.
type ChatReply struct {
	SessionID string
	Reply     string
	Stage     ChatStage
	Filters   *Filters
}

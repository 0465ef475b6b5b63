package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/pkordes/resrv/backend/internal/domain"
	"github.com/pkordes/resrv/backend/internal/session"
)

const (
	replyNeedNumber = "我沒抓到數字 你可以回我一個數字就好 例如 500"
	replyReady      = "收到 我幫你整理成推薦條件了"
	replyOpen       = "你想吃什麼 我可以幫你推薦"

	sessionKeyPrefix = "chat:session:"
)

type prefField int

const (
	fieldBudget prefField = iota
	fieldPeople
	fieldArea
	fieldCuisine
	fieldOccasion
)

type question struct {
	field   prefField
	prompt  string
	numeric bool
}

// questions are asked in order until every preference is filled.
var questions = []question{
	{fieldBudget, "嗨～你的預算大概落在哪個區間？請回覆我數字 例如：300 500 800", true},
	{fieldPeople, "幾個人用餐？", true},
	{fieldArea, "想在哪個地區？ 例如 信義 大安 中山 或輸入捷運站", false},
	{fieldCuisine, "想吃什麼類型？例如 日式 義式 火鍋 咖啡廳", false},
	{fieldOccasion, "這次是約會 聚餐 家庭 還是慶生？", false},
}

// ChatService runs the question-by-question preference collection that
// produces recommendation filters. Session state lives in the injected
// session.Store as JSON.
type ChatService struct {
	store session.Store

	// mu serializes read-modify-write of sessions within this process.
	mu sync.Mutex

	now   func() time.Time
	newID func() string
}

// NewChatService constructs a ChatService over store.
func NewChatService(store session.Store) *ChatService {
	return &ChatService{
		store: store,
		now:   func() time.Time { return time.Now().UTC() },
		newID: func() string { return strings.ReplaceAll(uuid.NewString(), "-", "") },
	}
}

// Start opens a new session and asks the first question.
func (s *ChatService) Start(ctx context.Context) (domain.ChatReply, error) {
	now := s.now()
	sess := domain.ChatSession{ID: s.newID(), CreatedAt: now, UpdatedAt: now}

	reply := replyOpen
	if q, ok := nextQuestion(sess.Prefs); ok {
		reply = q.prompt
	}
	sess.Messages = append(sess.Messages, domain.ChatMessage{Role: domain.RoleBot, Content: reply, CreatedAt: now})

	if err := s.save(ctx, sess); err != nil {
		return domain.ChatReply{}, fmt.Errorf("service.ChatService.Start: %w", err)
	}
	return domain.ChatReply{SessionID: sess.ID, Reply: reply, Stage: domain.StageCollecting}, nil
}

// Message records the user's answer, fills the next missing preference, and
// either asks the following question or, once everything is known, returns
// the collected filters with StageRecommend.
// Returns domain.ErrNotFound for an unknown session and domain.ErrValidation
// for a blank message.
func (s *ChatService) Message(ctx context.Context, sessionID, text string) (domain.ChatReply, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return domain.ChatReply{}, fmt.Errorf("service.ChatService.Message: %w: message is required", domain.ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.load(ctx, sessionID)
	if err != nil {
		return domain.ChatReply{}, fmt.Errorf("service.ChatService.Message: %w", err)
	}

	now := s.now()
	sess.Messages = append(sess.Messages, domain.ChatMessage{Role: domain.RoleUser, Content: text, CreatedAt: now})

	out := answer(&sess.Prefs, text)
	out.SessionID = sess.ID

	sess.Messages = append(sess.Messages, domain.ChatMessage{Role: domain.RoleBot, Content: out.Reply, CreatedAt: now})
	sess.UpdatedAt = now
	if err := s.save(ctx, sess); err != nil {
		return domain.ChatReply{}, fmt.Errorf("service.ChatService.Message: %w", err)
	}
	return out, nil
}

// History returns the conversation so far, oldest first.
// Returns domain.ErrNotFound for an unknown session.
func (s *ChatService) History(ctx context.Context, sessionID string) ([]domain.ChatMessage, error) {
	sess, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("service.ChatService.History: %w", err)
	}
	if sess.Messages == nil {
		return []domain.ChatMessage{}, nil
	}
	return sess.Messages, nil
}

// Reset forgets a session. Resetting an unknown session is not an error.
func (s *ChatService) Reset(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Delete(ctx, sessionKeyPrefix+sessionID); err != nil {
		return fmt.Errorf("service.ChatService.Reset: %w", err)
	}
	return nil
}

func (s *ChatService) load(ctx context.Context, sessionID string) (domain.ChatSession, error) {
	raw, ok, err := s.store.Get(ctx, sessionKeyPrefix+sessionID)
	if err != nil {
		return domain.ChatSession{}, err
	}
	if !ok {
		return domain.ChatSession{}, domain.ErrNotFound
	}

	var sess domain.ChatSession
	if err := json.Unmarshal([]byte(raw), &sess); err != nil {
		return domain.ChatSession{}, fmt.Errorf("decode session %s: %w", sessionID, err)
	}
	return sess, nil
}

func (s *ChatService) save(ctx context.Context, sess domain.ChatSession) error {
	raw, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("encode session %s: %w", sess.ID, err)
	}
	return s.store.Set(ctx, sessionKeyPrefix+sess.ID, string(raw))
}

// answer applies text to the first unanswered question and decides the reply.
func answer(prefs *domain.Filters, text string) domain.ChatReply {
	if q, ok := nextQuestion(*prefs); ok {
		if q.numeric {
			n, ok := parseNumber(text)
			if !ok {
				return domain.ChatReply{Reply: replyNeedNumber, Stage: domain.StageCollecting}
			}
			setNumber(prefs, q.field, n)
		} else {
			setText(prefs, q.field, text)
		}
	}

	if q, ok := nextQuestion(*prefs); ok {
		return domain.ChatReply{Reply: q.prompt, Stage: domain.StageCollecting}
	}

	filters := *prefs
	return domain.ChatReply{Reply: replyReady, Stage: domain.StageRecommend, Filters: &filters}
}

// nextQuestion returns the first question whose preference is still missing.
// Nil, empty, and zero all count as missing.
func nextQuestion(p domain.Filters) (question, bool) {
	for _, q := range questions {
		if missing(p, q.field) {
			return q, true
		}
	}
	return question{}, false
}

func missing(p domain.Filters, f prefField) bool {
	switch f {
	case fieldBudget:
		return p.Budget == nil || *p.Budget == 0
	case fieldPeople:
		return p.People == nil || *p.People == 0
	case fieldArea:
		return p.Area == ""
	case fieldCuisine:
		return p.Cuisine == ""
	case fieldOccasion:
		return p.Occasion == ""
	}
	return false
}

func setNumber(p *domain.Filters, f prefField, n int) {
	switch f {
	case fieldBudget:
		p.Budget = &n
	case fieldPeople:
		p.People = &n
	}
}

func setText(p *domain.Filters, f prefField, s string) {
	switch f {
	case fieldArea:
		p.Area = s
	case fieldCuisine:
		p.Cuisine = s
	case fieldOccasion:
		p.Occasion = s
	}
}

// parseNumber joins every ASCII digit in text ("約 500 元" -> 500).
func parseNumber(text string) (int, bool) {
	var digits strings.Builder
	for _, r := range text {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	if digits.Len() == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(digits.String())
	if err != nil {
		return 0, false
	}
	return n, true
}

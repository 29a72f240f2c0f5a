package conversation

import (
	"strings"
	"time"
)

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type Message struct {
	Role Role
	Text string
}

// State is the per-session memory consumed and updated each turn: the full
// message history plus the last resolved target date, which anaphoric
// follow-ups ("that day", "later") refer back to. Each session owns exactly
// one State; the hosting surface is responsible for keeping them apart.
type State struct {
	Messages       []Message
	LastTargetDate *time.Time
}

func NewState() *State {
	return &State{}
}

func (s *State) append(role Role, text string) {
	s.Messages = append(s.Messages, Message{Role: role, Text: text})
}

// historyBlock renders prior turns as "role: text" lines for the prompt.
func (s *State) historyBlock() string {
	lines := make([]string, 0, len(s.Messages))
	for _, m := range s.Messages {
		lines = append(lines, string(m.Role)+": "+m.Text)
	}

	return strings.Join(lines, "\n")
}

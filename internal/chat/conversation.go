// Package chat validates client conversations and renders them into the
// prompt text consumed by the inference runtime.
package chat

import (
	"fmt"
	"net/http"

	"chatd/pkg/types"
)

// Role identifies the author of a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// ParseRole maps a wire role tag to a Role. Matching is exact.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleUser, RoleAssistant, RoleSystem:
		return Role(s), true
	default:
		return "", false
	}
}

// Message is one normalized turn.
type Message struct {
	Role    Role
	Content string
}

// Conversation is an ordered, immutable list of messages.
type Conversation struct {
	msgs []Message
}

// NewConversation copies msgs into a Conversation.
func NewConversation(msgs ...Message) Conversation {
	return Conversation{msgs: append([]Message(nil), msgs...)}
}

// Len returns the number of messages.
func (c Conversation) Len() int { return len(c.msgs) }

// Empty reports whether the conversation has no messages.
func (c Conversation) Empty() bool { return len(c.msgs) == 0 }

// At returns the i-th message.
func (c Conversation) At(i int) Message { return c.msgs[i] }

// Messages returns a copy of the messages in order.
func (c Conversation) Messages() []Message {
	return append([]Message(nil), c.msgs...)
}

// InvalidRoleError reports a message whose role is not recognized.
type InvalidRoleError struct {
	Role  string
	Index int
}

func (e *InvalidRoleError) Error() string {
	return fmt.Sprintf("invalid role %q at message %d", e.Role, e.Index)
}

// StatusCode maps the error to 422 for the HTTP layer.
func (e *InvalidRoleError) StatusCode() int { return http.StatusUnprocessableEntity }

// Normalize converts request messages into a Conversation. An empty input
// yields an empty Conversation; rejecting it is left to the generator.
func Normalize(in []types.ChatMessage) (Conversation, error) {
	out := make([]Message, 0, len(in))
	for i, m := range in {
		role, ok := ParseRole(m.Role)
		if !ok {
			return Conversation{}, &InvalidRoleError{Role: m.Role, Index: i}
		}
		out = append(out, Message{Role: role, Content: m.Content})
	}
	return Conversation{msgs: out}, nil
}

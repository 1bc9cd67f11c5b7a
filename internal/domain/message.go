package domain

import (
	"errors"
	"strings"
	"time"
)

// Role identifica al autor de un mensaje. Enum cerrado, validado en el borde HTTP.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

var ErrInvalidRole = errors.New("invalid message role")

// ParseRole normaliza el campo "type" del API. Acepta "ai" como alias
// historico de assistant.
func ParseRole(s string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "user":
		return RoleUser, nil
	case "assistant", "ai":
		return RoleAssistant, nil
	}
	return "", ErrInvalidRole
}

type Message struct {
	ID      string `json:"id"`
	ChatID  string `json:"chat_id"`
	Content string `json:"content"`
	Role    Role   `json:"type"`
	// Seq es la clave de orden monotona por chat; los timestamps pueden empatar.
	Seq       int64     `json:"-"`
	CreatedAt time.Time `json:"timestamp"`
}

package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"tutor-llm/internal/domain"
	"tutor-llm/internal/llm"
	"tutor-llm/internal/repository"
)

var ErrChatInvalidInput = errors.New("chat invalid input")

// ChatService orquesta el turno conversacional completo: resolver chat,
// persistir el mensaje del usuario, derivar titulo, obtener y persistir la respuesta.
type ChatService struct {
	chats        repository.ChatRepository
	messages     repository.MessageRepository
	llmClient    llm.Client
	titles       *TitleService
	demoMode     bool
	systemPrompt string
	logger       *zap.Logger
}

func NewChatService(
	chats repository.ChatRepository,
	messages repository.MessageRepository,
	llmClient llm.Client,
	titles *TitleService,
	demoMode bool,
	promptStyle string,
	logger *zap.Logger,
) *ChatService {
	return &ChatService{
		chats:        chats,
		messages:     messages,
		llmClient:    llmClient,
		titles:       titles,
		demoMode:     demoMode,
		systemPrompt: systemPromptFor(promptStyle),
		logger:       logger,
	}
}

// TurnResult es la salida de un turno conversacional.
type TurnResult struct {
	ChatID string
	Reply  string
}

// SavedMessage es la salida de SaveMessage, con el titulo vigente del chat.
type SavedMessage struct {
	ChatID    string
	MessageID string
	Timestamp time.Time
	ChatTitle string
}

// Converse ejecuta un turno completo. Los fallos del proveedor no abortan el
// turno: se convierten en el texto de la respuesta y quedan en el historial.
func (s *ChatService) Converse(ctx context.Context, chatID, message string) (TurnResult, error) {
	if strings.TrimSpace(message) == "" {
		return TurnResult{}, ErrChatInvalidInput
	}

	chat, err := s.resolveChat(ctx, chatID)
	if err != nil {
		return TurnResult{}, err
	}

	userMsg := domain.Message{
		ID:        uuid.NewString(),
		ChatID:    chat.ID,
		Content:   message,
		Role:      domain.RoleUser,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.messages.Create(ctx, userMsg); err != nil {
		return TurnResult{}, fmt.Errorf("persist user message: %w", err)
	}

	if chat.Title == domain.SentinelTitle {
		if err := s.deriveTitle(ctx, chat.ID, message); err != nil {
			return TurnResult{}, err
		}
	}

	reply := s.generateReply(ctx, message)

	assistantMsg := domain.Message{
		ID:        uuid.NewString(),
		ChatID:    chat.ID,
		Content:   reply,
		Role:      domain.RoleAssistant,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.messages.Create(ctx, assistantMsg); err != nil {
		return TurnResult{}, fmt.Errorf("persist assistant message: %w", err)
	}

	return TurnResult{ChatID: chat.ID, Reply: reply}, nil
}

// SaveMessage persiste un mensaje suelto (flujo /api/message) y deriva el
// titulo cuando es el primer mensaje de usuario de un chat sin titular.
func (s *ChatService) SaveMessage(ctx context.Context, chatID, content string, role domain.Role) (SavedMessage, error) {
	if strings.TrimSpace(content) == "" {
		return SavedMessage{}, ErrChatInvalidInput
	}

	chat, err := s.resolveChat(ctx, chatID)
	if err != nil {
		return SavedMessage{}, err
	}

	msg := domain.Message{
		ID:        uuid.NewString(),
		ChatID:    chat.ID,
		Content:   content,
		Role:      role,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.messages.Create(ctx, msg); err != nil {
		return SavedMessage{}, fmt.Errorf("persist message: %w", err)
	}

	title := chat.Title
	if role == domain.RoleUser && chat.Title == domain.SentinelTitle {
		if err := s.deriveTitle(ctx, chat.ID, content); err != nil {
			return SavedMessage{}, err
		}
		if refreshed, err := s.chats.GetByID(ctx, chat.ID); err == nil {
			title = refreshed.Title
		}
	}

	return SavedMessage{
		ChatID:    chat.ID,
		MessageID: msg.ID,
		Timestamp: msg.CreatedAt,
		ChatTitle: title,
	}, nil
}

// CreateChat crea un chat con titulo explicito, o el default si viene vacio.
func (s *ChatService) CreateChat(ctx context.Context, title string) (domain.Chat, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		title = domain.DefaultChatTitle
	}

	chat := domain.Chat{
		ID:        uuid.NewString(),
		Title:     title,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.chats.Create(ctx, chat); err != nil {
		return domain.Chat{}, fmt.Errorf("create chat: %w", err)
	}
	return chat, nil
}

func (s *ChatService) ListChats(ctx context.Context) ([]domain.Chat, error) {
	return s.chats.List(ctx)
}

func (s *ChatService) GetChatWithMessages(ctx context.Context, id string) (domain.Chat, []domain.Message, error) {
	chat, err := s.chats.GetByID(ctx, id)
	if err != nil {
		return domain.Chat{}, nil, err
	}
	messages, err := s.messages.ListByChatID(ctx, id)
	if err != nil {
		return domain.Chat{}, nil, fmt.Errorf("list messages: %w", err)
	}
	return chat, messages, nil
}

func (s *ChatService) DeleteChat(ctx context.Context, id string) error {
	return s.chats.Delete(ctx, id)
}

// resolveChat devuelve el chat referenciado, o crea uno nuevo con el titulo
// sentinel cuando no viene id.
func (s *ChatService) resolveChat(ctx context.Context, chatID string) (domain.Chat, error) {
	if chatID == "" {
		chat := domain.Chat{
			ID:        uuid.NewString(),
			Title:     domain.SentinelTitle,
			CreatedAt: time.Now().UTC(),
		}
		if err := s.chats.Create(ctx, chat); err != nil {
			return domain.Chat{}, fmt.Errorf("create chat: %w", err)
		}
		return chat, nil
	}
	return s.chats.GetByID(ctx, chatID)
}

func (s *ChatService) deriveTitle(ctx context.Context, chatID, firstMessage string) error {
	title := s.titles.Derive(ctx, firstMessage)
	if err := s.chats.SetTitle(ctx, chatID, title); err != nil {
		return fmt.Errorf("set title: %w", err)
	}
	return nil
}

// generateReply obtiene el texto del assistant para este turno. Todo resultado
// no exitoso del proveedor se mapea a un string visible; nunca devuelve error.
func (s *ChatService) generateReply(ctx context.Context, message string) string {
	if s.demoMode {
		return demoReplies[rand.Intn(len(demoReplies))]
	}

	ctx, cancel := context.WithTimeout(ctx, replyTimeout)
	defer cancel()

	text, err := s.llmClient.Complete(ctx, s.systemPrompt, message, chatSampling)
	if err == nil {
		return text
	}

	if s.logger != nil {
		s.logger.Warn("completion failed", zap.Error(err))
	}

	var upstream *llm.UpstreamError
	switch {
	case errors.Is(err, llm.ErrRateLimited):
		return replyRateLimited
	case errors.As(err, &upstream):
		return replyUpstreamError(upstream.Status)
	default:
		return replyNetworkError
	}
}

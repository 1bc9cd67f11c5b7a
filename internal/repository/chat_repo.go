package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"tutor-llm/internal/domain"
)

// ErrChatNotFound se devuelve cuando un id no referencia ningun chat.
var ErrChatNotFound = errors.New("chat not found")

type ChatRepository interface {
	Create(ctx context.Context, chat domain.Chat) error
	GetByID(ctx context.Context, id string) (domain.Chat, error)
	List(ctx context.Context) ([]domain.Chat, error)
	SetTitle(ctx context.Context, id, title string) error
	Delete(ctx context.Context, id string) error
}

type PgChatRepository struct {
	pool *pgxpool.Pool
}

func NewPgChatRepository(pool *pgxpool.Pool) *PgChatRepository {
	return &PgChatRepository{pool: pool}
}

func (r *PgChatRepository) Create(ctx context.Context, chat domain.Chat) error {
	const query = `
		INSERT INTO chats (id, title, created_at)
		VALUES ($1, $2, $3)
	`
	_, err := r.pool.Exec(ctx, query, chat.ID, chat.Title, chat.CreatedAt)
	return err
}

func (r *PgChatRepository) GetByID(ctx context.Context, id string) (domain.Chat, error) {
	const query = `
		SELECT id, title, created_at
		FROM chats
		WHERE id = $1
	`
	var chat domain.Chat
	err := r.pool.QueryRow(ctx, query, id).Scan(&chat.ID, &chat.Title, &chat.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Chat{}, ErrChatNotFound
	}
	return chat, err
}

func (r *PgChatRepository) List(ctx context.Context) ([]domain.Chat, error) {
	const query = `
		SELECT id, title, created_at
		FROM chats
		ORDER BY created_at DESC
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var chats []domain.Chat
	for rows.Next() {
		var chat domain.Chat
		if err := rows.Scan(&chat.ID, &chat.Title, &chat.CreatedAt); err != nil {
			return nil, err
		}
		chats = append(chats, chat)
	}
	return chats, rows.Err()
}

// SetTitle reemplaza el titulo solo si sigue siendo el sentinel, de modo que
// dos turnos concurrentes no puedan pisarse el titulo ya derivado.
func (r *PgChatRepository) SetTitle(ctx context.Context, id, title string) error {
	const query = `
		UPDATE chats
		SET title = $2
		WHERE id = $1 AND title = $3
	`
	_, err := r.pool.Exec(ctx, query, id, title, domain.SentinelTitle)
	return err
}

// Delete borra el chat y todos sus mensajes en una sola transaccion.
func (r *PgChatRepository) Delete(ctx context.Context, id string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM messages WHERE chat_id = $1`, id); err != nil {
		return err
	}

	tag, err := tx.Exec(ctx, `DELETE FROM chats WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrChatNotFound
	}

	return tx.Commit(ctx)
}

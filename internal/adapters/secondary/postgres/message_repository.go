package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/andreaG-student-its24/EventHub/internal/core/domain"
	apperrors "github.com/andreaG-student-its24/EventHub/internal/core/errors"
	"github.com/andreaG-student-its24/EventHub/internal/core/ports"
)

// MessageRepository persists chat messages.
type MessageRepository struct {
	pool *pgxpool.Pool
}

var _ ports.MessageRepository = (*MessageRepository)(nil)

// NewMessageRepository creates a new message repository.
func NewMessageRepository(pool *pgxpool.Pool) ports.MessageRepository {
	return &MessageRepository{pool: pool}
}

// Create inserts a message. The database assigns the creation timestamp and
// the insertion sequence, which breaks ordering ties between messages
// created in the same instant.
func (r *MessageRepository) Create(ctx context.Context, message *domain.Message) (*domain.Message, error) {
	query := `
		INSERT INTO messages (id, event_id, sender_id, text)
		VALUES ($1, $2, $3, $4)
		RETURNING id, event_id, sender_id, text, created_at, seq`

	stored, err := scanMessage(GetDBTX(ctx, r.pool).QueryRow(ctx, query,
		message.ID,
		message.EventID,
		message.SenderID,
		message.Text,
	))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return nil, apperrors.ErrEventNotFound
		}
		return nil, err
	}
	return stored, nil
}

// ListByEventID returns the event's messages in send order.
func (r *MessageRepository) ListByEventID(ctx context.Context, eventID uuid.UUID) ([]*domain.Message, error) {
	query := `
		SELECT id, event_id, sender_id, text, created_at, seq
		FROM messages
		WHERE event_id = $1
		ORDER BY created_at ASC, seq ASC`

	rows, err := GetDBTX(ctx, r.pool).Query(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []*domain.Message
	for rows.Next() {
		message, err := scanMessage(rows)
		if err != nil {
			return nil, err
		}
		messages = append(messages, message)
	}
	return messages, rows.Err()
}

func scanMessage(row pgx.Row) (*domain.Message, error) {
	var message domain.Message
	err := row.Scan(
		&message.ID,
		&message.EventID,
		&message.SenderID,
		&message.Text,
		&message.CreatedAt,
		&message.Seq,
	)
	if err != nil {
		return nil, err
	}
	return &message, nil
}

package postgres

import (
	"context"
	"errors"
	"strconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/andreaG-student-its24/EventHub/internal/core/domain"
	apperrors "github.com/andreaG-student-its24/EventHub/internal/core/errors"
	"github.com/andreaG-student-its24/EventHub/internal/core/ports"
	"github.com/andreaG-student-its24/EventHub/internal/core/utils"
)

// EventRepository handles database operations for events, including the
// atomic participant set updates that enforce the capacity bound.
type EventRepository struct {
	pool *pgxpool.Pool
	txm  *TransactionManager
}

var _ ports.EventRepository = (*EventRepository)(nil)

// NewEventRepository creates a new event repository.
func NewEventRepository(pool *pgxpool.Pool, txm *TransactionManager) ports.EventRepository {
	return &EventRepository{pool: pool, txm: txm}
}

const eventColumns = `id, title, description, location, date, category, capacity, participants, status, creator_id, created_at, updated_at`

// Create inserts a new event.
func (r *EventRepository) Create(ctx context.Context, event *domain.Event) (*domain.Event, error) {
	query := `
		INSERT INTO events (id, title, description, location, date, category, capacity, participants, status, creator_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING ` + eventColumns

	row := GetDBTX(ctx, r.pool).QueryRow(ctx, query,
		event.ID,
		event.Title,
		event.Description,
		event.Location,
		event.Date,
		string(event.Category),
		event.Capacity,
		event.Participants,
		string(event.Status),
		event.CreatorID,
		event.CreatedAt,
	)

	return scanEvent(row)
}

// GetByID fetches a single event.
func (r *EventRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`

	event, err := scanEvent(GetDBTX(ctx, r.pool).QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrEventNotFound
		}
		return nil, err
	}
	return event, nil
}

// Update persists the event's content and moderation status. The participant
// set is deliberately excluded; it only changes through AddParticipant and
// RemoveParticipant.
func (r *EventRepository) Update(ctx context.Context, event *domain.Event) (*domain.Event, error) {
	query := `
		UPDATE events
		SET title = $2, description = $3, location = $4, date = $5,
		    category = $6, capacity = $7, status = $8, updated_at = $9
		WHERE id = $1
		RETURNING ` + eventColumns

	updated, err := scanEvent(GetDBTX(ctx, r.pool).QueryRow(ctx, query,
		event.ID,
		event.Title,
		event.Description,
		event.Location,
		event.Date,
		string(event.Category),
		event.Capacity,
		string(event.Status),
		utils.ToNullTime(event.UpdatedAt),
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrEventNotFound
		}
		return nil, err
	}
	return updated, nil
}

// Delete removes the event with its messages and reports in one transaction.
func (r *EventRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.txm.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM messages WHERE event_id = $1`, id); err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, `DELETE FROM reports WHERE event_id = $1`, id); err != nil {
			return err
		}

		tag, err := tx.Exec(ctx, `DELETE FROM events WHERE id = $1`, id)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return apperrors.ErrEventNotFound
		}
		return nil
	})
}

// List returns events matching the filter, soonest first.
func (r *EventRepository) List(ctx context.Context, filter ports.ListEventsFilter) ([]*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE 1=1`
	args := []interface{}{}
	argPos := 1

	if filter.Status != nil {
		query += ` AND status = $` + strconv.Itoa(argPos)
		args = append(args, string(*filter.Status))
		argPos++
	}
	if filter.Category != nil {
		query += ` AND category = $` + strconv.Itoa(argPos)
		args = append(args, string(*filter.Category))
		argPos++
	}
	if filter.Location != nil {
		query += ` AND location ILIKE '%' || $` + strconv.Itoa(argPos) + ` || '%'`
		args = append(args, *filter.Location)
		argPos++
	}

	query += ` ORDER BY date ASC`

	if filter.Limit > 0 {
		query += ` LIMIT $` + strconv.Itoa(argPos)
		args = append(args, filter.Limit)
		argPos++
	}
	if filter.Offset > 0 {
		query += ` OFFSET $` + strconv.Itoa(argPos)
		args = append(args, filter.Offset)
	}

	rows, err := GetDBTX(ctx, r.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanEvents(rows)
}

// ListByCreator returns the events created by an identity, newest first.
func (r *EventRepository) ListByCreator(ctx context.Context, creatorID uuid.UUID) ([]*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE creator_id = $1 ORDER BY created_at DESC`

	rows, err := GetDBTX(ctx, r.pool).Query(ctx, query, creatorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanEvents(rows)
}

// ListByParticipant returns the approved events the identity is registered to.
func (r *EventRepository) ListByParticipant(ctx context.Context, userID uuid.UUID) ([]*domain.Event, error) {
	query := `
		SELECT ` + eventColumns + `
		FROM events
		WHERE status = 'approved' AND participants @> ARRAY[$1]::uuid[]
		ORDER BY date ASC`

	rows, err := GetDBTX(ctx, r.pool).Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanEvents(rows)
}

// AddParticipant appends the identity to the participant set with a single
// conditional UPDATE. Postgres re-evaluates the predicate against the
// current row under the row lock, so two concurrent registrations for the
// last seat cannot both succeed.
func (r *EventRepository) AddParticipant(ctx context.Context, eventID, userID uuid.UUID) (*domain.Event, error) {
	query := `
		UPDATE events
		SET participants = array_append(participants, $2)
		WHERE id = $1
		  AND status = 'approved'
		  AND NOT participants @> ARRAY[$2]::uuid[]
		  AND cardinality(participants) < capacity
		RETURNING ` + eventColumns

	event, err := scanEvent(GetDBTX(ctx, r.pool).QueryRow(ctx, query, eventID, userID))
	if err == nil {
		return event, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	// The guarded update matched nothing. Fetch the row once to say why.
	return nil, r.explainAddFailure(ctx, eventID, userID)
}

func (r *EventRepository) explainAddFailure(ctx context.Context, eventID, userID uuid.UUID) error {
	event, err := r.GetByID(ctx, eventID)
	if err != nil {
		return err
	}

	switch {
	case event.Status != domain.StatusApproved:
		return apperrors.ErrEventNotApproved
	case event.HasParticipant(userID):
		return apperrors.ErrAlreadyRegistered
	case event.IsFull():
		return apperrors.ErrEventFull
	default:
		// The row changed between the update and this read. Report the
		// registration as full rather than guessing further.
		return apperrors.ErrEventFull
	}
}

// RemoveParticipant removes the identity from the participant set.
func (r *EventRepository) RemoveParticipant(ctx context.Context, eventID, userID uuid.UUID) (*domain.Event, error) {
	query := `
		UPDATE events
		SET participants = array_remove(participants, $2)
		WHERE id = $1
		  AND participants @> ARRAY[$2]::uuid[]
		RETURNING ` + eventColumns

	event, err := scanEvent(GetDBTX(ctx, r.pool).QueryRow(ctx, query, eventID, userID))
	if err == nil {
		return event, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	if _, getErr := r.GetByID(ctx, eventID); getErr != nil {
		return nil, getErr
	}
	return nil, apperrors.ErrNotRegistered
}

// IsParticipant re-derives room membership from the current row.
func (r *EventRepository) IsParticipant(ctx context.Context, eventID, userID uuid.UUID) (bool, error) {
	query := `SELECT participants @> ARRAY[$2]::uuid[] FROM events WHERE id = $1`

	var isMember bool
	err := GetDBTX(ctx, r.pool).QueryRow(ctx, query, eventID, userID).Scan(&isMember)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, apperrors.ErrEventNotFound
		}
		return false, err
	}
	return isMember, nil
}

func scanEvent(row pgx.Row) (*domain.Event, error) {
	var (
		event     domain.Event
		category  string
		status    string
		updatedAt pgtype.Timestamptz
	)

	err := row.Scan(
		&event.ID,
		&event.Title,
		&event.Description,
		&event.Location,
		&event.Date,
		&category,
		&event.Capacity,
		&event.Participants,
		&status,
		&event.CreatorID,
		&event.CreatedAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	event.Category = domain.EventCategory(category)
	event.Status = domain.EventStatus(status)
	event.UpdatedAt = utils.FromNullTime(updatedAt)
	if event.Participants == nil {
		event.Participants = []uuid.UUID{}
	}
	return &event, nil
}

func scanEvents(rows pgx.Rows) ([]*domain.Event, error) {
	var events []*domain.Event
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	return events, rows.Err()
}


package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"ethiqia/internal/models"
)

type ledgerRepository struct {
	db *sqlx.DB
}

func NewLedgerRepository(db *sqlx.DB) LedgerRepository {
	return &ledgerRepository{db: db}
}

const insertEvent = `
	INSERT INTO reputation_events (id, subject_id, event_type, points, metadata, created_at)
	VALUES (:id, :subject_id, :event_type, :points, :metadata, :created_at)
`

func prepareEvent(event *models.ReputationEvent) {
	if event.ID == "" {
		event.ID = uuid.New().String()
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now().UTC()
	}
	if len(event.Metadata) == 0 {
		event.Metadata = []byte("{}")
	}
}

func (r *ledgerRepository) Append(ctx context.Context, event *models.ReputationEvent) error {
	prepareEvent(event)

	if _, err := r.db.NamedExecContext(ctx, insertEvent, event); err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("subject %s: %w", event.SubjectID, ErrNotFound)
		}
		return fmt.Errorf("append reputation event: %w", err)
	}

	return nil
}

// AppendOnce inserts the event unless the award-once index already holds
// one for (subject_id, event_type). It reports whether the row was written.
func (r *ledgerRepository) AppendOnce(ctx context.Context, event *models.ReputationEvent) (bool, error) {
	prepareEvent(event)

	result, err := r.db.NamedExecContext(ctx, insertEvent+` ON CONFLICT DO NOTHING`, event)
	if err != nil {
		return false, fmt.Errorf("append reputation event: %w", err)
	}

	return changed(result)
}

func (r *ledgerRepository) ListBySubject(ctx context.Context, subjectID string) ([]models.ReputationEvent, error) {
	query := `
		SELECT id, subject_id, event_type, points, metadata, created_at
		FROM reputation_events
		WHERE subject_id = $1
		ORDER BY created_at DESC
	`

	events := []models.ReputationEvent{}
	if err := r.db.SelectContext(ctx, &events, query, subjectID); err != nil {
		return nil, fmt.Errorf("list reputation events: %w", err)
	}

	return events, nil
}

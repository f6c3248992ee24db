package audit

import (
	"context"
	"database/sql"

	dErrors "caresure/pkg/domain-errors"
)

// PostgresStore persists audit events durably.
//
// Schema:
//
//	CREATE TABLE audit_events (
//	    id         BIGSERIAL PRIMARY KEY,
//	    ts         TIMESTAMPTZ NOT NULL,
//	    action     TEXT NOT NULL,
//	    entity     TEXT NOT NULL,
//	    entity_id  BIGINT NOT NULL,
//	    related_id BIGINT NOT NULL DEFAULT 0,
//	    amount     BIGINT NOT NULL DEFAULT 0
//	);
//	CREATE INDEX audit_events_entity_idx ON audit_events (entity, entity_id);
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Append(ctx context.Context, event Event) error {
	const q = `
		INSERT INTO audit_events (ts, action, entity, entity_id, related_id, amount)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := s.db.ExecContext(ctx, q,
		event.Timestamp, event.Action, event.Entity,
		int64(event.EntityID), int64(event.RelatedID), event.Amount,
	)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to append audit event")
	}
	return nil
}

func (s *PostgresStore) ListByEntity(ctx context.Context, entity string, entityID uint64) ([]Event, error) {
	const q = `
		SELECT ts, action, entity, entity_id, related_id, amount
		FROM audit_events
		WHERE entity = $1 AND entity_id = $2
		ORDER BY id`
	rows, err := s.db.QueryContext(ctx, q, entity, int64(entityID))
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list audit events")
	}
	defer rows.Close()

	var out []Event
	for rows.Next() {
		var e Event
		var eid, rid int64
		if err := rows.Scan(&e.Timestamp, &e.Action, &e.Entity, &eid, &rid, &e.Amount); err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to scan audit event")
		}
		e.EntityID = uint64(eid)
		e.RelatedID = uint64(rid)
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to read audit events")
	}
	return out, nil
}

package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"daycare-dispatch/internal/apperr"
	"daycare-dispatch/internal/domain"
)

const agentColumns = `
	id, name, phone, zones, availability, active, rating, success_rate,
	max_concurrent, active_deliveries, total_deliveries,
	location, base_location, location_at, created_at, updated_at`

func scanAgent(row pgx.Row) (*domain.Agent, error) {
	var a domain.Agent
	err := row.Scan(
		&a.ID, &a.Name, &a.Phone, &a.Zones, &a.Availability, &a.Active, &a.Rating, &a.SuccessRate,
		&a.MaxConcurrent, &a.ActiveDeliveries, &a.TotalDeliveries,
		&a.Location, &a.BaseLocation, &a.LocationAt, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func collectAgents(rows pgx.Rows, capacity int) ([]domain.Agent, error) {
	defer rows.Close()
	out := make([]domain.Agent, 0, capacity)
	for rows.Next() {
		a, err := scanAgent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *a)
	}
	return out, rows.Err()
}

// CreateAgent - creates a new agent.
func (r *TxRepo) CreateAgent(ctx context.Context, a *domain.Agent) error {
	_, err := r.tx.Exec(ctx, `INSERT INTO agents (`+agentColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16)`,
		a.ID, a.Name, a.Phone, nonNilStrings(a.Zones), a.Availability, a.Active, a.Rating, a.SuccessRate,
		a.MaxConcurrent, a.ActiveDeliveries, a.TotalDeliveries,
		a.Location, a.BaseLocation, a.LocationAt, a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		if IsDuplicate(err) {
			return apperr.ErrConflict
		}
		return fmt.Errorf("create agent: %w", err)
	}
	return nil
}

// GetAgent - returns agent by its ID.
func (r *TxRepo) GetAgent(ctx context.Context, id string) (*domain.Agent, error) {
	a, err := scanAgent(r.tx.QueryRow(ctx, `SELECT `+agentColumns+` FROM agents WHERE id = $1`, id))
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get agent %q: %w", id, err)
	}
	return a, nil
}

// ListAgents returns agents ordered by id. If limit/offset are nil, returns the full list.
func (r *TxRepo) ListAgents(ctx context.Context, limit, offset *int) ([]domain.Agent, error) {
	q := `SELECT ` + agentColumns + ` FROM agents ORDER BY id`
	args := make([]any, 0, 2)
	if limit != nil {
		q += fmt.Sprintf(" LIMIT $%d", len(args)+1)
		args = append(args, *limit)
	}
	if offset != nil {
		q += fmt.Sprintf(" OFFSET $%d", len(args)+1)
		args = append(args, *offset)
	}

	rows, err := r.tx.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	capacity := 0
	if limit != nil && *limit > 0 {
		capacity = *limit
	}
	return collectAgents(rows, capacity)
}

// UpdateAgent applies a partial update to an agent and returns true if a row was affected.
func (r *TxRepo) UpdateAgent(ctx context.Context, u domain.PartialAgentUpdate) (bool, error) {
	ct, err := r.tx.Exec(ctx, `
        UPDATE agents
        SET
            name           = COALESCE($2, name),
            phone          = COALESCE($3, phone),
            zones          = COALESCE($4, zones),
            availability   = COALESCE($5, availability),
            active         = COALESCE($6, active),
            max_concurrent = COALESCE($7, max_concurrent),
            base_location  = COALESCE($8, base_location),
            updated_at     = now()
        WHERE id = $1
    `, u.ID, u.Name, u.Phone, u.Zones, u.Availability, u.Active, u.MaxConcurrent, u.BaseLocation)
	if err != nil {
		if IsDuplicate(err) {
			return false, apperr.ErrConflict
		}
		return false, fmt.Errorf("update agent %q: %w", u.ID, err)
	}
	return ct.RowsAffected() > 0, nil
}

// ListCandidates returns active, dispatchable agents covering any of zones.
func (r *TxRepo) ListCandidates(ctx context.Context, zones []string) ([]domain.Agent, error) {
	rows, err := r.tx.Query(ctx, `
        SELECT `+agentColumns+`
        FROM agents
        WHERE active AND availability IN ('available', 'busy') AND zones && $1
        ORDER BY id
    `, nonNilStrings(zones))
	if err != nil {
		return nil, fmt.Errorf("list candidates: %w", err)
	}
	return collectAgents(rows, 0)
}

func (r *TxRepo) agentExists(ctx context.Context, id string) (bool, error) {
	var ok bool
	err := r.tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM agents WHERE id = $1)`, id).Scan(&ok)
	return ok, err
}

// ReserveAgentSlot - take one capacity slot. The capacity check and the
// increment are one statement, so concurrent reservations cannot overshoot.
func (r *TxRepo) ReserveAgentSlot(ctx context.Context, id string) error {
	ct, err := r.tx.Exec(ctx, `
        UPDATE agents
        SET active_deliveries = active_deliveries + 1, updated_at = now()
        WHERE id = $1 AND active_deliveries < max_concurrent
    `, id)
	if err != nil {
		return fmt.Errorf("reserve slot of agent %q: %w", id, err)
	}
	if ct.RowsAffected() > 0 {
		return nil
	}
	ok, err := r.agentExists(ctx, id)
	if err != nil {
		return fmt.Errorf("reserve slot of agent %q: %w", id, err)
	}
	if !ok {
		return fmt.Errorf("agent %s: %w", id, apperr.ErrNotFound)
	}
	return fmt.Errorf("agent %s: %w", id, apperr.ErrCapacityExceeded)
}

// ReleaseAgentSlot - give one capacity slot back.
func (r *TxRepo) ReleaseAgentSlot(ctx context.Context, id string) error {
	ct, err := r.tx.Exec(ctx, `
        UPDATE agents
        SET active_deliveries = GREATEST(active_deliveries - 1, 0), updated_at = now()
        WHERE id = $1
    `, id)
	if err != nil {
		return fmt.Errorf("release slot of agent %q: %w", id, err)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("agent %s: %w", id, apperr.ErrNotFound)
	}
	return nil
}

// RecordDelivery - bump the lifetime count and fold rating into the average.
func (r *TxRepo) RecordDelivery(ctx context.Context, id string, rating *int) error {
	ct, err := r.tx.Exec(ctx, `
        UPDATE agents
        SET
            rating = CASE
                WHEN $2::int IS NULL THEN rating
                WHEN total_deliveries = 0 THEN $2::int
                ELSE (rating * total_deliveries + $2::int) / (total_deliveries + 1)
            END,
            total_deliveries = total_deliveries + 1,
            updated_at = now()
        WHERE id = $1
    `, id, rating)
	if err != nil {
		return fmt.Errorf("record delivery of agent %q: %w", id, err)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("agent %s: %w", id, apperr.ErrNotFound)
	}
	return nil
}

// UpdateAgentLocation - store the last reported position.
func (r *TxRepo) UpdateAgentLocation(ctx context.Context, id string, c domain.Coordinates, at time.Time) error {
	ct, err := r.tx.Exec(ctx, `
        UPDATE agents SET location = $2, location_at = $3, updated_at = now() WHERE id = $1
    `, id, c, at)
	if err != nil {
		return fmt.Errorf("update location of agent %q: %w", id, err)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("agent %s: %w", id, apperr.ErrNotFound)
	}
	return nil
}

package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"daycare-dispatch/internal/apperr"
	"daycare-dispatch/internal/domain"
)

const assignmentColumns = `
	id, order_id, vendor_id, pickup, drop_off, items,
	delivery_fee, platform_share, agent_share,
	status, type, agent_id, score, reason, attempts, rejected_agents, rejection_reason, failure_reason,
	response_deadline, estimated_duration, current_location, customer_rating, agent_earnings,
	assigned_at, accepted_at, picked_up_at, in_transit_at, delivered_at, failed_at,
	created_at, updated_at`

func scanAssignment(row pgx.Row) (*domain.Assignment, error) {
	var a domain.Assignment
	err := row.Scan(
		&a.ID, &a.OrderID, &a.VendorID, &a.Pickup, &a.DropOff, &a.Items,
		&a.DeliveryFee, &a.PlatformShare, &a.AgentShare,
		&a.Status, &a.Type, &a.AgentID, &a.Score, &a.Reason, &a.Attempts, &a.RejectedAgents, &a.RejectionReason, &a.FailureReason,
		&a.ResponseDeadline, &a.EstimatedDuration, &a.CurrentLocation, &a.CustomerRating, &a.AgentEarnings,
		&a.AssignedAt, &a.AcceptedAt, &a.PickedUpAt, &a.InTransitAt, &a.DeliveredAt, &a.FailedAt,
		&a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func collectAssignments(rows pgx.Rows) ([]domain.Assignment, error) {
	defer rows.Close()
	out := make([]domain.Assignment, 0)
	for rows.Next() {
		a, err := scanAssignment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *a)
	}
	return out, rows.Err()
}

func nonNilItems(items []domain.Item) []domain.Item {
	if items == nil {
		return []domain.Item{}
	}
	return items
}

func nonNilStrings(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// InsertAssignment - insert a new assignment. A second assignment for the same
// order and vendor is a conflict.
func (r *TxRepo) InsertAssignment(ctx context.Context, a *domain.Assignment) error {
	_, err := r.tx.Exec(ctx, `INSERT INTO assignments (`+assignmentColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21,$22,$23,$24,$25,$26,$27,$28,$29,$30,$31)`,
		a.ID, a.OrderID, a.VendorID, a.Pickup, a.DropOff, nonNilItems(a.Items),
		a.DeliveryFee, a.PlatformShare, a.AgentShare,
		a.Status, a.Type, a.AgentID, a.Score, a.Reason, a.Attempts, nonNilStrings(a.RejectedAgents), a.RejectionReason, a.FailureReason,
		a.ResponseDeadline, a.EstimatedDuration, a.CurrentLocation, a.CustomerRating, a.AgentEarnings,
		a.AssignedAt, a.AcceptedAt, a.PickedUpAt, a.InTransitAt, a.DeliveredAt, a.FailedAt,
		a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		if IsDuplicate(err) {
			return apperr.ErrConflict
		}
		return fmt.Errorf("insert assignment: %w", err)
	}
	return nil
}

// GetAssignment - get assignment by ID.
func (r *TxRepo) GetAssignment(ctx context.Context, id string) (*domain.Assignment, error) {
	a, err := scanAssignment(r.tx.QueryRow(ctx, `SELECT `+assignmentColumns+` FROM assignments WHERE id = $1`, id))
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get assignment %q: %w", id, err)
	}
	return a, nil
}

// LockAssignment - get assignment by ID and hold its row lock until the transaction ends.
func (r *TxRepo) LockAssignment(ctx context.Context, id string) (*domain.Assignment, error) {
	a, err := scanAssignment(r.tx.QueryRow(ctx, `SELECT `+assignmentColumns+` FROM assignments WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("lock assignment %q: %w", id, err)
	}
	return a, nil
}

// UpdateAssignment - write the mutable fields if the stored status is still expected.
func (r *TxRepo) UpdateAssignment(ctx context.Context, a *domain.Assignment, expected domain.AssignmentStatus) (bool, error) {
	ct, err := r.tx.Exec(ctx, `
        UPDATE assignments
        SET
            status = $3, type = $4, agent_id = $5, score = $6, reason = $7,
            attempts = $8, rejected_agents = $9, rejection_reason = $10, failure_reason = $11,
            response_deadline = $12, current_location = $13, customer_rating = $14, agent_earnings = $15,
            assigned_at = $16, accepted_at = $17, picked_up_at = $18, in_transit_at = $19,
            delivered_at = $20, failed_at = $21, updated_at = $22
        WHERE id = $1 AND status = $2
    `, a.ID, expected,
		a.Status, a.Type, a.AgentID, a.Score, a.Reason,
		a.Attempts, nonNilStrings(a.RejectedAgents), a.RejectionReason, a.FailureReason,
		a.ResponseDeadline, a.CurrentLocation, a.CustomerRating, a.AgentEarnings,
		a.AssignedAt, a.AcceptedAt, a.PickedUpAt, a.InTransitAt,
		a.DeliveredAt, a.FailedAt, a.UpdatedAt,
	)
	if err != nil {
		return false, fmt.Errorf("update assignment %q: %w", a.ID, err)
	}
	return ct.RowsAffected() > 0, nil
}

// ListAssignments returns assignments matching f ordered by creation time.
func (r *TxRepo) ListAssignments(ctx context.Context, f domain.AssignmentFilter) ([]domain.Assignment, error) {
	var (
		where []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}
	if len(f.Statuses) > 0 {
		statuses := make([]string, len(f.Statuses))
		for i, s := range f.Statuses {
			statuses[i] = string(s)
		}
		where = append(where, "status = ANY("+arg(statuses)+")")
	}
	if f.AgentID != "" {
		where = append(where, "agent_id = "+arg(f.AgentID))
	}
	if f.VendorID != "" {
		where = append(where, "vendor_id = "+arg(f.VendorID))
	}
	if f.OrderID != "" {
		where = append(where, "order_id = "+arg(f.OrderID))
	}
	if len(f.Zones) > 0 {
		p := arg(f.Zones)
		where = append(where, "(pickup_zone = ANY("+p+") OR dropoff_zone = ANY("+p+"))")
	}

	q := `SELECT ` + assignmentColumns + ` FROM assignments`
	if len(where) > 0 {
		q += " WHERE " + strings.Join(where, " AND ")
	}
	q += " ORDER BY created_at, id"
	if f.Limit > 0 {
		q += " LIMIT " + arg(f.Limit)
	}
	if f.Offset > 0 {
		q += " OFFSET " + arg(f.Offset)
	}

	rows, err := r.tx.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list assignments: %w", err)
	}
	return collectAssignments(rows)
}

// ListOverdue returns assigned assignments whose response deadline passed.
func (r *TxRepo) ListOverdue(ctx context.Context, now time.Time) ([]domain.Assignment, error) {
	rows, err := r.tx.Query(ctx, `
        SELECT `+assignmentColumns+`
        FROM assignments
        WHERE status = 'assigned' AND response_deadline < $1
        ORDER BY response_deadline
    `, now)
	if err != nil {
		return nil, fmt.Errorf("list overdue assignments: %w", err)
	}
	return collectAssignments(rows)
}

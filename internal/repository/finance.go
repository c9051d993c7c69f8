package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"daycare-dispatch/internal/apperr"
	"daycare-dispatch/internal/domain"
)

const commissionColumns = `
	order_id, id, order_number, vendors, delivery,
	total_vendor_commission, total_delivery_commission, total_revenue, gateway_fee, net_revenue,
	status, created_at, updated_at`

func scanCommission(row pgx.Row) (*domain.CommissionRecord, error) {
	var c domain.CommissionRecord
	err := row.Scan(
		&c.OrderID, &c.ID, &c.OrderNumber, &c.Vendors, &c.Delivery,
		&c.TotalVendorCommission, &c.TotalDeliveryCommission, &c.TotalRevenue, &c.GatewayFee, &c.NetRevenue,
		&c.Status, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// GetCommission - get the commission record of an order.
func (r *TxRepo) GetCommission(ctx context.Context, orderID string) (*domain.CommissionRecord, error) {
	c, err := scanCommission(r.tx.QueryRow(ctx, `SELECT `+commissionColumns+` FROM commissions WHERE order_id = $1`, orderID))
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get commission %q: %w", orderID, err)
	}
	return c, nil
}

// InsertCommission - insert the commission record of an order.
func (r *TxRepo) InsertCommission(ctx context.Context, c *domain.CommissionRecord) error {
	vendors := c.Vendors
	if vendors == nil {
		vendors = []domain.VendorCommission{}
	}
	_, err := r.tx.Exec(ctx, `INSERT INTO commissions (`+commissionColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)`,
		c.OrderID, c.ID, c.OrderNumber, vendors, c.Delivery,
		c.TotalVendorCommission, c.TotalDeliveryCommission, c.TotalRevenue, c.GatewayFee, c.NetRevenue,
		c.Status, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		if IsDuplicate(err) {
			return apperr.ErrConflict
		}
		return fmt.Errorf("insert commission: %w", err)
	}
	return nil
}

// SetCommissionStatus - update the status of a commission record.
func (r *TxRepo) SetCommissionStatus(ctx context.Context, orderID string, status domain.CommissionStatus, at time.Time) error {
	ct, err := r.tx.Exec(ctx, `UPDATE commissions SET status = $2, updated_at = $3 WHERE order_id = $1`, orderID, status, at)
	if err != nil {
		return fmt.Errorf("set commission status %q: %w", orderID, err)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("commission for order %s: %w", orderID, apperr.ErrNotFound)
	}
	return nil
}

// ListCommissions returns records created in [from, to). A zero to is open-ended.
func (r *TxRepo) ListCommissions(ctx context.Context, from, to time.Time) ([]domain.CommissionRecord, error) {
	q := `SELECT ` + commissionColumns + ` FROM commissions WHERE created_at >= $1`
	args := []any{from}
	if !to.IsZero() {
		q += ` AND created_at < $2`
		args = append(args, to)
	}
	q += ` ORDER BY created_at`

	rows, err := r.tx.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list commissions: %w", err)
	}
	defer rows.Close()

	out := make([]domain.CommissionRecord, 0)
	for rows.Next() {
		c, err := scanCommission(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	return out, rows.Err()
}

const vendorPayoutColumns = `
	id, vendor_id, batch, period_start, period_end, lines,
	total_gross, total_fee, total_net, bank, status, scheduled_date,
	processed_at, completed_at, transfer_ref, failure_reason, created_at, updated_at`

func scanVendorPayout(row pgx.Row) (*domain.VendorPayout, error) {
	var p domain.VendorPayout
	err := row.Scan(
		&p.ID, &p.VendorID, &p.Batch, &p.PeriodStart, &p.PeriodEnd, &p.Lines,
		&p.TotalGross, &p.TotalFee, &p.TotalNet, &p.Bank, &p.Status, &p.ScheduledDate,
		&p.ProcessedAt, &p.CompletedAt, &p.TransferRef, &p.FailureReason, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *TxRepo) queryVendorPayouts(ctx context.Context, q string, args ...any) ([]domain.VendorPayout, error) {
	rows, err := r.tx.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.VendorPayout, 0)
	for rows.Next() {
		p, err := scanVendorPayout(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

func nonNilLines(l []domain.PayoutLine) []domain.PayoutLine {
	if l == nil {
		return []domain.PayoutLine{}
	}
	return l
}

// LockVendorPayouts - hold the vendor's payout lock until the transaction ends.
func (r *TxRepo) LockVendorPayouts(ctx context.Context, vendorID string) error {
	if _, err := r.tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtextextended('vendor_payouts:' || $1, 0))`, vendorID); err != nil {
		return fmt.Errorf("lock vendor payouts %q: %w", vendorID, err)
	}
	return nil
}

// GetVendorPayout - get and lock a payout batch by ID.
func (r *TxRepo) GetVendorPayout(ctx context.Context, id string) (*domain.VendorPayout, error) {
	p, err := scanVendorPayout(r.tx.QueryRow(ctx, `SELECT `+vendorPayoutColumns+` FROM vendor_payouts WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get vendor payout %q: %w", id, err)
	}
	return p, nil
}

// FindVendorPayout - get and lock the payout of a vendor in a batch.
func (r *TxRepo) FindVendorPayout(ctx context.Context, vendorID, batch string) (*domain.VendorPayout, error) {
	p, err := scanVendorPayout(r.tx.QueryRow(ctx, `
        SELECT `+vendorPayoutColumns+`
        FROM vendor_payouts
        WHERE vendor_id = $1 AND batch = $2
        FOR UPDATE
    `, vendorID, batch))
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("find vendor payout %q/%q: %w", vendorID, batch, err)
	}
	return p, nil
}

// InsertVendorPayout - insert a payout batch. One batch per vendor and key.
func (r *TxRepo) InsertVendorPayout(ctx context.Context, p *domain.VendorPayout) error {
	_, err := r.tx.Exec(ctx, `INSERT INTO vendor_payouts (`+vendorPayoutColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18)`,
		p.ID, p.VendorID, p.Batch, p.PeriodStart, p.PeriodEnd, nonNilLines(p.Lines),
		p.TotalGross, p.TotalFee, p.TotalNet, p.Bank, p.Status, p.ScheduledDate,
		p.ProcessedAt, p.CompletedAt, p.TransferRef, p.FailureReason, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if IsDuplicate(err) {
			return apperr.ErrConflict
		}
		return fmt.Errorf("insert vendor payout: %w", err)
	}
	return nil
}

// UpdateVendorPayout - overwrite a payout batch.
func (r *TxRepo) UpdateVendorPayout(ctx context.Context, p *domain.VendorPayout) error {
	ct, err := r.tx.Exec(ctx, `
        UPDATE vendor_payouts
        SET
            lines = $2, total_gross = $3, total_fee = $4, total_net = $5, bank = $6,
            status = $7, scheduled_date = $8, processed_at = $9, completed_at = $10,
            transfer_ref = $11, failure_reason = $12, period_start = $13, period_end = $14,
            updated_at = $15
        WHERE id = $1
    `, p.ID, nonNilLines(p.Lines), p.TotalGross, p.TotalFee, p.TotalNet, p.Bank,
		p.Status, p.ScheduledDate, p.ProcessedAt, p.CompletedAt,
		p.TransferRef, p.FailureReason, p.PeriodStart, p.PeriodEnd,
		p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update vendor payout %q: %w", p.ID, err)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("payout %s: %w", p.ID, apperr.ErrNotFound)
	}
	return nil
}

// ListVendorPayouts returns a vendor's batches ordered by scheduled date.
func (r *TxRepo) ListVendorPayouts(ctx context.Context, vendorID string) ([]domain.VendorPayout, error) {
	out, err := r.queryVendorPayouts(ctx, `
        SELECT `+vendorPayoutColumns+`
        FROM vendor_payouts
        WHERE vendor_id = $1
        ORDER BY scheduled_date, id
    `, vendorID)
	if err != nil {
		return nil, fmt.Errorf("list vendor payouts %q: %w", vendorID, err)
	}
	return out, nil
}

// ListDuePayouts returns and locks scheduled batches due at now.
func (r *TxRepo) ListDuePayouts(ctx context.Context, now time.Time) ([]domain.VendorPayout, error) {
	out, err := r.queryVendorPayouts(ctx, `
        SELECT `+vendorPayoutColumns+`
        FROM vendor_payouts
        WHERE status = 'scheduled' AND scheduled_date <= $1
        ORDER BY scheduled_date, id
        FOR UPDATE
    `, now)
	if err != nil {
		return nil, fmt.Errorf("list due payouts: %w", err)
	}
	return out, nil
}

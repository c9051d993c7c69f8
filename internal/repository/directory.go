package repository

import (
	"context"
	"fmt"

	"daycare-dispatch/internal/domain"
)

// GetSettings - get the platform settings singleton.
func (r *TxRepo) GetSettings(ctx context.Context) (*domain.PlatformSettings, error) {
	var s domain.PlatformSettings
	err := r.tx.QueryRow(ctx, `SELECT data FROM platform_settings WHERE id = 1`).Scan(&s)
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get settings: %w", err)
	}
	return &s, nil
}

// SaveSettings - overwrite the platform settings singleton.
func (r *TxRepo) SaveSettings(ctx context.Context, s domain.PlatformSettings) error {
	_, err := r.tx.Exec(ctx, `
        INSERT INTO platform_settings (id, data, updated_at) VALUES (1, $1, now())
        ON CONFLICT (id) DO UPDATE SET data = EXCLUDED.data, updated_at = now()
    `, s)
	if err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}

// GetOrder - get an order from the local directory.
func (r *TxRepo) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	var o domain.Order
	err := r.tx.QueryRow(ctx, `
        SELECT id, number, items, shipping, total, shipping_address FROM orders WHERE id = $1
    `, id).Scan(&o.ID, &o.Number, &o.Items, &o.Shipping, &o.Total, &o.ShippingAddress)
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order %q: %w", id, err)
	}
	return &o, nil
}

// SaveOrder - upsert an order snapshot.
func (r *TxRepo) SaveOrder(ctx context.Context, o domain.Order) error {
	items := o.Items
	if items == nil {
		items = []domain.OrderItem{}
	}
	_, err := r.tx.Exec(ctx, `
        INSERT INTO orders (id, number, items, shipping, total, shipping_address)
        VALUES ($1, $2, $3, $4, $5, $6)
        ON CONFLICT (id) DO UPDATE SET
            number = EXCLUDED.number,
            items = EXCLUDED.items,
            shipping = EXCLUDED.shipping,
            total = EXCLUDED.total,
            shipping_address = EXCLUDED.shipping_address
    `, o.ID, o.Number, items, o.Shipping, o.Total, o.ShippingAddress)
	if err != nil {
		return fmt.Errorf("save order %q: %w", o.ID, err)
	}
	return nil
}

// GetVendor - get a vendor from the local directory.
func (r *TxRepo) GetVendor(ctx context.Context, id string) (*domain.Vendor, error) {
	var v domain.Vendor
	err := r.tx.QueryRow(ctx, `
        SELECT id, name, commission_rate, warehouse, bank FROM vendors WHERE id = $1
    `, id).Scan(&v.ID, &v.Name, &v.CommissionRate, &v.Warehouse, &v.Bank)
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get vendor %q: %w", id, err)
	}
	return &v, nil
}

// SaveVendor - upsert a vendor snapshot.
func (r *TxRepo) SaveVendor(ctx context.Context, v domain.Vendor) error {
	_, err := r.tx.Exec(ctx, `
        INSERT INTO vendors (id, name, commission_rate, warehouse, bank)
        VALUES ($1, $2, $3, $4, $5)
        ON CONFLICT (id) DO UPDATE SET
            name = EXCLUDED.name,
            commission_rate = EXCLUDED.commission_rate,
            warehouse = EXCLUDED.warehouse,
            bank = EXCLUDED.bank
    `, v.ID, v.Name, v.CommissionRate, v.Warehouse, v.Bank)
	if err != nil {
		return fmt.Errorf("save vendor %q: %w", v.ID, err)
	}
	return nil
}

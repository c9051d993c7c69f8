package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Schema is the DDL of the dispatch store. Every statement is idempotent.
const Schema = `
CREATE TABLE IF NOT EXISTS agents (
	id                TEXT PRIMARY KEY,
	name              TEXT NOT NULL,
	phone             TEXT NOT NULL UNIQUE,
	zones             TEXT[] NOT NULL DEFAULT '{}',
	availability      TEXT NOT NULL,
	active            BOOLEAN NOT NULL DEFAULT TRUE,
	rating            DOUBLE PRECISION NOT NULL,
	success_rate      DOUBLE PRECISION NOT NULL,
	max_concurrent    INTEGER NOT NULL CHECK (max_concurrent > 0),
	active_deliveries INTEGER NOT NULL DEFAULT 0 CHECK (active_deliveries >= 0),
	total_deliveries  INTEGER NOT NULL DEFAULT 0,
	location          JSONB,
	base_location     JSONB,
	location_at       TIMESTAMPTZ,
	created_at        TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at        TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS agents_zones_idx ON agents USING GIN (zones);

CREATE TABLE IF NOT EXISTS assignments (
	id                 TEXT PRIMARY KEY,
	order_id           TEXT NOT NULL,
	vendor_id          TEXT NOT NULL,
	pickup             JSONB NOT NULL,
	drop_off           JSONB NOT NULL,
	pickup_zone        TEXT GENERATED ALWAYS AS (pickup->>'zone') STORED,
	dropoff_zone       TEXT GENERATED ALWAYS AS (drop_off->>'zone') STORED,
	items              JSONB NOT NULL DEFAULT '[]',
	delivery_fee       NUMERIC(14,2) NOT NULL,
	platform_share     NUMERIC(14,2) NOT NULL,
	agent_share        NUMERIC(14,2) NOT NULL,
	status             TEXT NOT NULL,
	type               TEXT NOT NULL DEFAULT '',
	agent_id           TEXT NOT NULL DEFAULT '',
	score              DOUBLE PRECISION NOT NULL DEFAULT 0,
	reason             TEXT NOT NULL DEFAULT '',
	attempts           INTEGER NOT NULL DEFAULT 0,
	rejected_agents    TEXT[] NOT NULL DEFAULT '{}',
	rejection_reason   TEXT NOT NULL DEFAULT '',
	failure_reason     TEXT NOT NULL DEFAULT '',
	response_deadline  TIMESTAMPTZ,
	estimated_duration INTEGER NOT NULL DEFAULT 0,
	current_location   JSONB,
	customer_rating    INTEGER,
	agent_earnings     NUMERIC(14,2),
	assigned_at        TIMESTAMPTZ,
	accepted_at        TIMESTAMPTZ,
	picked_up_at       TIMESTAMPTZ,
	in_transit_at      TIMESTAMPTZ,
	delivered_at       TIMESTAMPTZ,
	failed_at          TIMESTAMPTZ,
	created_at         TIMESTAMPTZ NOT NULL,
	updated_at         TIMESTAMPTZ NOT NULL,
	UNIQUE (order_id, vendor_id)
);
CREATE INDEX IF NOT EXISTS assignments_status_idx ON assignments (status, created_at);
CREATE INDEX IF NOT EXISTS assignments_agent_idx ON assignments (agent_id) WHERE agent_id <> '';
CREATE INDEX IF NOT EXISTS assignments_deadline_idx ON assignments (response_deadline) WHERE status = 'assigned';

CREATE TABLE IF NOT EXISTS wallets (
	agent_id        TEXT PRIMARY KEY,
	balance         NUMERIC(14,2) NOT NULL DEFAULT 0,
	total_earnings  NUMERIC(14,2) NOT NULL DEFAULT 0,
	total_withdrawn NUMERIC(14,2) NOT NULL DEFAULT 0,
	created_at      TIMESTAMPTZ NOT NULL,
	updated_at      TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS wallet_transactions (
	seq           BIGSERIAL PRIMARY KEY,
	id            TEXT NOT NULL UNIQUE,
	agent_id      TEXT NOT NULL,
	type          TEXT NOT NULL,
	amount        NUMERIC(14,2) NOT NULL,
	balance_after NUMERIC(14,2) NOT NULL,
	source_ref    TEXT NOT NULL DEFAULT '',
	description   TEXT NOT NULL DEFAULT '',
	created_at    TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS wallet_transactions_agent_idx ON wallet_transactions (agent_id, seq);

CREATE TABLE IF NOT EXISTS agent_payouts (
	id              TEXT PRIMARY KEY,
	assignment_id   TEXT NOT NULL UNIQUE,
	agent_id        TEXT NOT NULL,
	order_id        TEXT NOT NULL,
	gross_fee       NUMERIC(14,2) NOT NULL,
	platform_share  NUMERIC(14,2) NOT NULL,
	agent_share     NUMERIC(14,2) NOT NULL,
	bonuses         JSONB NOT NULL DEFAULT '[]',
	penalties       JSONB NOT NULL DEFAULT '[]',
	total_bonus     NUMERIC(14,2) NOT NULL,
	total_penalty   NUMERIC(14,2) NOT NULL,
	net_earnings    NUMERIC(14,2) NOT NULL,
	on_time         BOOLEAN NOT NULL,
	delivery_time   INTEGER NOT NULL,
	customer_rating INTEGER,
	transaction_id  TEXT NOT NULL,
	created_at      TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS commissions (
	order_id                  TEXT PRIMARY KEY,
	id                        TEXT NOT NULL UNIQUE,
	order_number              TEXT NOT NULL DEFAULT '',
	vendors                   JSONB NOT NULL,
	delivery                  JSONB NOT NULL,
	total_vendor_commission   NUMERIC(14,2) NOT NULL,
	total_delivery_commission NUMERIC(14,2) NOT NULL,
	total_revenue             NUMERIC(14,2) NOT NULL,
	gateway_fee               NUMERIC(14,2) NOT NULL,
	net_revenue               NUMERIC(14,2) NOT NULL,
	status                    TEXT NOT NULL,
	created_at                TIMESTAMPTZ NOT NULL,
	updated_at                TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS commissions_created_idx ON commissions (created_at);

CREATE TABLE IF NOT EXISTS vendor_payouts (
	id             TEXT PRIMARY KEY,
	vendor_id      TEXT NOT NULL,
	batch          TEXT NOT NULL,
	period_start   TIMESTAMPTZ NOT NULL,
	period_end     TIMESTAMPTZ NOT NULL,
	lines          JSONB NOT NULL DEFAULT '[]',
	total_gross    NUMERIC(14,2) NOT NULL,
	total_fee      NUMERIC(14,2) NOT NULL,
	total_net      NUMERIC(14,2) NOT NULL,
	bank           JSONB NOT NULL,
	status         TEXT NOT NULL,
	scheduled_date TIMESTAMPTZ NOT NULL,
	processed_at   TIMESTAMPTZ,
	completed_at   TIMESTAMPTZ,
	transfer_ref   TEXT NOT NULL DEFAULT '',
	failure_reason TEXT NOT NULL DEFAULT '',
	created_at     TIMESTAMPTZ NOT NULL,
	updated_at     TIMESTAMPTZ NOT NULL,
	UNIQUE (vendor_id, batch)
);
CREATE INDEX IF NOT EXISTS vendor_payouts_due_idx ON vendor_payouts (scheduled_date) WHERE status = 'scheduled';

CREATE TABLE IF NOT EXISTS platform_settings (
	id         SMALLINT PRIMARY KEY CHECK (id = 1),
	data       JSONB NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS orders (
	id               TEXT PRIMARY KEY,
	number           TEXT NOT NULL DEFAULT '',
	items            JSONB NOT NULL DEFAULT '[]',
	shipping         NUMERIC(14,2) NOT NULL DEFAULT 0,
	total            NUMERIC(14,2) NOT NULL DEFAULT 0,
	shipping_address JSONB NOT NULL
);

CREATE TABLE IF NOT EXISTS vendors (
	id              TEXT PRIMARY KEY,
	name            TEXT NOT NULL DEFAULT '',
	commission_rate NUMERIC(5,2),
	warehouse       JSONB NOT NULL,
	bank            JSONB NOT NULL
);
`

// Migrate applies Schema.
func Migrate(ctx context.Context, db *pgxpool.Pool) error {
	if _, err := db.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

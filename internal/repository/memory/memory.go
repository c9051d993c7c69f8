// Package memory is a process-local implementation of the dispatch repository.
// Each transaction works on a copy of the state that replaces the live one on
// success, so a failed or panicking transaction leaves nothing behind.
package memory

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"daycare-dispatch/internal/apperr"
	"daycare-dispatch/internal/domain"
	"daycare-dispatch/internal/ports/dispatchtx"
)

type state struct {
	assignments   map[string]domain.Assignment
	agents        map[string]domain.Agent
	wallets       map[string]domain.Wallet
	walletTx      map[string][]domain.WalletTransaction
	agentPayouts  map[string]domain.AgentPayout
	commissions   map[string]domain.CommissionRecord
	vendorPayouts map[string]domain.VendorPayout
	orders        map[string]domain.Order
	vendors       map[string]domain.Vendor
	settings      *domain.PlatformSettings
}

func newState() *state {
	return &state{
		assignments:   map[string]domain.Assignment{},
		agents:        map[string]domain.Agent{},
		wallets:       map[string]domain.Wallet{},
		walletTx:      map[string][]domain.WalletTransaction{},
		agentPayouts:  map[string]domain.AgentPayout{},
		commissions:   map[string]domain.CommissionRecord{},
		vendorPayouts: map[string]domain.VendorPayout{},
		orders:        map[string]domain.Order{},
		vendors:       map[string]domain.Vendor{},
	}
}

// clone copies the maps. Values are treated as immutable once stored: every
// write replaces the entry with a fresh copy.
func (s *state) clone() *state {
	c := &state{
		assignments:   cloneMap(s.assignments),
		agents:        cloneMap(s.agents),
		wallets:       cloneMap(s.wallets),
		walletTx:      make(map[string][]domain.WalletTransaction, len(s.walletTx)),
		agentPayouts:  cloneMap(s.agentPayouts),
		commissions:   cloneMap(s.commissions),
		vendorPayouts: cloneMap(s.vendorPayouts),
		orders:        cloneMap(s.orders),
		vendors:       cloneMap(s.vendors),
	}
	for k, v := range s.walletTx {
		c.walletTx[k] = slices.Clip(v)
	}
	if s.settings != nil {
		st := s.settings.Clone()
		c.settings = &st
	}
	return c
}

func cloneMap[V any](m map[string]V) map[string]V {
	out := make(map[string]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Repo is a mutex-guarded in-memory store. Transactions are serialized.
type Repo struct {
	mu sync.Mutex
	st *state
}

// New returns an empty Repo.
func New() *Repo {
	return &Repo{st: newState()}
}

// WithTx runs fn against a private copy of the state and publishes it when fn succeeds.
func (r *Repo) WithTx(ctx context.Context, fn func(tx dispatchtx.Repository) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	next := r.st.clone()
	if err := fn(&store{st: next}); err != nil {
		return err
	}
	r.st = next
	return nil
}

type store struct{ st *state }

var _ dispatchtx.Repository = (*store)(nil)

// assignments

func (s *store) InsertAssignment(_ context.Context, a *domain.Assignment) error {
	if _, ok := s.st.assignments[a.ID]; ok {
		return apperr.ErrConflict
	}
	for _, other := range s.st.assignments {
		if other.OrderID == a.OrderID && other.VendorID == a.VendorID {
			return apperr.ErrConflict
		}
	}
	s.st.assignments[a.ID] = a.Clone()
	return nil
}

func (s *store) GetAssignment(_ context.Context, id string) (*domain.Assignment, error) {
	a, ok := s.st.assignments[id]
	if !ok {
		return nil, nil
	}
	c := a.Clone()
	return &c, nil
}

func (s *store) LockAssignment(ctx context.Context, id string) (*domain.Assignment, error) {
	return s.GetAssignment(ctx, id)
}

func (s *store) UpdateAssignment(_ context.Context, a *domain.Assignment, expected domain.AssignmentStatus) (bool, error) {
	cur, ok := s.st.assignments[a.ID]
	if !ok || cur.Status != expected {
		return false, nil
	}
	s.st.assignments[a.ID] = a.Clone()
	return true, nil
}

func (s *store) ListAssignments(_ context.Context, f domain.AssignmentFilter) ([]domain.Assignment, error) {
	out := make([]domain.Assignment, 0)
	for _, a := range s.st.assignments {
		if f.Matches(a) {
			out = append(out, a.Clone())
		}
	}
	slices.SortFunc(out, func(x, y domain.Assignment) int {
		if c := x.CreatedAt.Compare(y.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(x.ID, y.ID)
	})
	return page(out, f.Limit, f.Offset), nil
}

func (s *store) ListOverdue(_ context.Context, now time.Time) ([]domain.Assignment, error) {
	out := make([]domain.Assignment, 0)
	for _, a := range s.st.assignments {
		if a.Status == domain.AssignmentAssigned && a.ResponseDeadline != nil && a.ResponseDeadline.Before(now) {
			out = append(out, a.Clone())
		}
	}
	slices.SortFunc(out, func(x, y domain.Assignment) int {
		return x.ResponseDeadline.Compare(*y.ResponseDeadline)
	})
	return out, nil
}

func page[T any](items []T, limit, offset int) []T {
	if offset > 0 {
		if offset >= len(items) {
			return items[:0]
		}
		items = items[offset:]
	}
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}

// agents

func cloneAgent(a domain.Agent) domain.Agent {
	a.Zones = slices.Clone(a.Zones)
	if a.Location != nil {
		l := *a.Location
		a.Location = &l
	}
	if a.BaseLocation != nil {
		l := *a.BaseLocation
		a.BaseLocation = &l
	}
	if a.LocationAt != nil {
		t := *a.LocationAt
		a.LocationAt = &t
	}
	return a
}

func (s *store) phoneTaken(phone, exceptID string) bool {
	for id, a := range s.st.agents {
		if id != exceptID && a.Phone == phone {
			return true
		}
	}
	return false
}

func (s *store) CreateAgent(_ context.Context, a *domain.Agent) error {
	if _, ok := s.st.agents[a.ID]; ok || s.phoneTaken(a.Phone, "") {
		return apperr.ErrConflict
	}
	s.st.agents[a.ID] = cloneAgent(*a)
	return nil
}

func (s *store) GetAgent(_ context.Context, id string) (*domain.Agent, error) {
	a, ok := s.st.agents[id]
	if !ok {
		return nil, nil
	}
	c := cloneAgent(a)
	return &c, nil
}

func (s *store) sortedAgents(keep func(domain.Agent) bool) []domain.Agent {
	out := make([]domain.Agent, 0, len(s.st.agents))
	for _, a := range s.st.agents {
		if keep(a) {
			out = append(out, cloneAgent(a))
		}
	}
	slices.SortFunc(out, func(x, y domain.Agent) int { return cmp.Compare(x.ID, y.ID) })
	return out
}

func (s *store) ListAgents(_ context.Context, limit, offset *int) ([]domain.Agent, error) {
	out := s.sortedAgents(func(domain.Agent) bool { return true })
	l, o := 0, 0
	if limit != nil {
		l = *limit
	}
	if offset != nil {
		o = *offset
	}
	return page(out, l, o), nil
}

func (s *store) UpdateAgent(_ context.Context, u domain.PartialAgentUpdate) (bool, error) {
	a, ok := s.st.agents[u.ID]
	if !ok {
		return false, nil
	}
	a = cloneAgent(a)
	if u.Phone != nil {
		if s.phoneTaken(*u.Phone, u.ID) {
			return false, apperr.ErrConflict
		}
		a.Phone = *u.Phone
	}
	if u.Name != nil {
		a.Name = *u.Name
	}
	if u.Zones != nil {
		a.Zones = slices.Clone(*u.Zones)
	}
	if u.Availability != nil {
		a.Availability = *u.Availability
	}
	if u.Active != nil {
		a.Active = *u.Active
	}
	if u.MaxConcurrent != nil {
		a.MaxConcurrent = *u.MaxConcurrent
	}
	if u.BaseLocation != nil {
		l := *u.BaseLocation
		a.BaseLocation = &l
	}
	a.UpdatedAt = time.Now().UTC()
	s.st.agents[u.ID] = a
	return true, nil
}

func (s *store) ListCandidates(_ context.Context, zones []string) ([]domain.Agent, error) {
	return s.sortedAgents(func(a domain.Agent) bool {
		return a.Active && a.Availability.Dispatchable() && a.Covers(zones...)
	}), nil
}

func (s *store) ReserveAgentSlot(_ context.Context, id string) error {
	a, ok := s.st.agents[id]
	if !ok {
		return fmt.Errorf("agent %s: %w", id, apperr.ErrNotFound)
	}
	a.ActiveDeliveries++
	if a.ActiveDeliveries > a.MaxConcurrent {
		return fmt.Errorf("agent %s: %w", id, apperr.ErrCapacityExceeded)
	}
	s.st.agents[id] = a
	return nil
}

func (s *store) ReleaseAgentSlot(_ context.Context, id string) error {
	a, ok := s.st.agents[id]
	if !ok {
		return fmt.Errorf("agent %s: %w", id, apperr.ErrNotFound)
	}
	if a.ActiveDeliveries > 0 {
		a.ActiveDeliveries--
	}
	s.st.agents[id] = a
	return nil
}

func (s *store) RecordDelivery(_ context.Context, id string, rating *int) error {
	a, ok := s.st.agents[id]
	if !ok {
		return fmt.Errorf("agent %s: %w", id, apperr.ErrNotFound)
	}
	a.TotalDeliveries++
	if rating != nil {
		a.Rating = domain.RollingRating(a.Rating, a.TotalDeliveries, *rating)
	}
	s.st.agents[id] = a
	return nil
}

func (s *store) UpdateAgentLocation(_ context.Context, id string, c domain.Coordinates, at time.Time) error {
	a, ok := s.st.agents[id]
	if !ok {
		return fmt.Errorf("agent %s: %w", id, apperr.ErrNotFound)
	}
	a = cloneAgent(a)
	a.Location = &c
	a.LocationAt = &at
	s.st.agents[id] = a
	return nil
}

// wallets

func (s *store) GetWallet(_ context.Context, agentID string) (*domain.Wallet, error) {
	w, ok := s.st.wallets[agentID]
	if !ok {
		return nil, nil
	}
	return &w, nil
}

func (s *store) SaveWallet(_ context.Context, w *domain.Wallet) error {
	s.st.wallets[w.AgentID] = *w
	return nil
}

func (s *store) AppendWalletTransaction(_ context.Context, t domain.WalletTransaction) error {
	s.st.walletTx[t.AgentID] = append(s.st.walletTx[t.AgentID], t)
	return nil
}

func (s *store) ListWalletTransactions(_ context.Context, agentID string, limit int) ([]domain.WalletTransaction, error) {
	rows := s.st.walletTx[agentID]
	out := make([]domain.WalletTransaction, 0, len(rows))
	for i := len(rows) - 1; i >= 0; i-- {
		out = append(out, rows[i])
	}
	return page(out, limit, 0), nil
}

func (s *store) SumWalletTransactions(_ context.Context, agentID string) (decimal.Decimal, int, error) {
	sum := decimal.Zero
	rows := s.st.walletTx[agentID]
	for _, t := range rows {
		sum = sum.Add(t.Amount)
	}
	return sum, len(rows), nil
}

func (s *store) SumWithdrawalsSince(_ context.Context, agentID string, since time.Time) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, t := range s.st.walletTx[agentID] {
		if t.Type == domain.WalletTxWithdrawal && !t.CreatedAt.Before(since) {
			sum = sum.Sub(t.Amount)
		}
	}
	return sum, nil
}

func (s *store) GetAgentPayout(_ context.Context, assignmentID string) (*domain.AgentPayout, error) {
	p, ok := s.st.agentPayouts[assignmentID]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (s *store) InsertAgentPayout(_ context.Context, p *domain.AgentPayout) error {
	if _, ok := s.st.agentPayouts[p.AssignmentID]; ok {
		return apperr.ErrDuplicatePayout
	}
	c := *p
	c.Bonuses = slices.Clone(p.Bonuses)
	c.Penalties = slices.Clone(p.Penalties)
	s.st.agentPayouts[p.AssignmentID] = c
	return nil
}

// commissions

func (s *store) GetCommission(_ context.Context, orderID string) (*domain.CommissionRecord, error) {
	r, ok := s.st.commissions[orderID]
	if !ok {
		return nil, nil
	}
	r.Vendors = slices.Clone(r.Vendors)
	return &r, nil
}

func (s *store) InsertCommission(_ context.Context, r *domain.CommissionRecord) error {
	if _, ok := s.st.commissions[r.OrderID]; ok {
		return apperr.ErrConflict
	}
	c := *r
	c.Vendors = slices.Clone(r.Vendors)
	s.st.commissions[r.OrderID] = c
	return nil
}

func (s *store) SetCommissionStatus(_ context.Context, orderID string, status domain.CommissionStatus, at time.Time) error {
	r, ok := s.st.commissions[orderID]
	if !ok {
		return fmt.Errorf("commission for order %s: %w", orderID, apperr.ErrNotFound)
	}
	r.Status = status
	r.UpdatedAt = at
	s.st.commissions[orderID] = r
	return nil
}

func (s *store) ListCommissions(_ context.Context, from, to time.Time) ([]domain.CommissionRecord, error) {
	out := make([]domain.CommissionRecord, 0)
	for _, r := range s.st.commissions {
		if r.CreatedAt.Before(from) || (!to.IsZero() && !r.CreatedAt.Before(to)) {
			continue
		}
		r.Vendors = slices.Clone(r.Vendors)
		out = append(out, r)
	}
	slices.SortFunc(out, func(x, y domain.CommissionRecord) int { return x.CreatedAt.Compare(y.CreatedAt) })
	return out, nil
}

// vendor payouts

func clonePayout(p domain.VendorPayout) domain.VendorPayout {
	p.Lines = slices.Clone(p.Lines)
	return p
}

// LockVendorPayouts is a no-op; WithTx already runs one transaction at a time.
func (s *store) LockVendorPayouts(context.Context, string) error { return nil }

func (s *store) GetVendorPayout(_ context.Context, id string) (*domain.VendorPayout, error) {
	p, ok := s.st.vendorPayouts[id]
	if !ok {
		return nil, nil
	}
	c := clonePayout(p)
	return &c, nil
}

func (s *store) FindVendorPayout(_ context.Context, vendorID, batch string) (*domain.VendorPayout, error) {
	for _, p := range s.st.vendorPayouts {
		if p.VendorID == vendorID && p.Batch == batch {
			c := clonePayout(p)
			return &c, nil
		}
	}
	return nil, nil
}

func (s *store) InsertVendorPayout(ctx context.Context, p *domain.VendorPayout) error {
	if existing, _ := s.FindVendorPayout(ctx, p.VendorID, p.Batch); existing != nil {
		return apperr.ErrConflict
	}
	s.st.vendorPayouts[p.ID] = clonePayout(*p)
	return nil
}

func (s *store) UpdateVendorPayout(_ context.Context, p *domain.VendorPayout) error {
	if _, ok := s.st.vendorPayouts[p.ID]; !ok {
		return fmt.Errorf("payout %s: %w", p.ID, apperr.ErrNotFound)
	}
	s.st.vendorPayouts[p.ID] = clonePayout(*p)
	return nil
}

func (s *store) sortedPayouts(keep func(domain.VendorPayout) bool) []domain.VendorPayout {
	out := make([]domain.VendorPayout, 0)
	for _, p := range s.st.vendorPayouts {
		if keep(p) {
			out = append(out, clonePayout(p))
		}
	}
	slices.SortFunc(out, func(x, y domain.VendorPayout) int {
		if c := x.ScheduledDate.Compare(y.ScheduledDate); c != 0 {
			return c
		}
		return cmp.Compare(x.ID, y.ID)
	})
	return out
}

func (s *store) ListVendorPayouts(_ context.Context, vendorID string) ([]domain.VendorPayout, error) {
	return s.sortedPayouts(func(p domain.VendorPayout) bool { return p.VendorID == vendorID }), nil
}

func (s *store) ListDuePayouts(_ context.Context, now time.Time) ([]domain.VendorPayout, error) {
	return s.sortedPayouts(func(p domain.VendorPayout) bool {
		return p.Status == domain.PayoutScheduled && !p.ScheduledDate.After(now)
	}), nil
}

// settings

func (s *store) GetSettings(context.Context) (*domain.PlatformSettings, error) {
	if s.st.settings == nil {
		return nil, nil
	}
	c := s.st.settings.Clone()
	return &c, nil
}

func (s *store) SaveSettings(_ context.Context, ps domain.PlatformSettings) error {
	c := ps.Clone()
	s.st.settings = &c
	return nil
}

// directory

func (s *store) GetOrder(_ context.Context, id string) (*domain.Order, error) {
	o, ok := s.st.orders[id]
	if !ok {
		return nil, nil
	}
	o.Items = slices.Clone(o.Items)
	return &o, nil
}

func (s *store) SaveOrder(_ context.Context, o domain.Order) error {
	o.Items = slices.Clone(o.Items)
	s.st.orders[o.ID] = o
	return nil
}

func (s *store) GetVendor(_ context.Context, id string) (*domain.Vendor, error) {
	v, ok := s.st.vendors[id]
	if !ok {
		return nil, nil
	}
	return &v, nil
}

func (s *store) SaveVendor(_ context.Context, v domain.Vendor) error {
	s.st.vendors[v.ID] = v
	return nil
}

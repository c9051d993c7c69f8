package domain

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/shopspring/decimal"
)

// GeneralZone is the fallback zone for unmapped postal codes.
const GeneralZone = "General"

// DefaultZoneMinutes is the base delivery time of the fallback zone.
const DefaultZoneMinutes = 30

// Zone is a named set of postal codes.
type Zone struct {
	Name                string   `json:"name"`
	PostalCodes         []string `json:"postal_codes"`
	BaseDeliveryMinutes int      `json:"base_delivery_minutes"`
	Active              bool     `json:"active"`
}

// Weights are the scorer's factor weights, in percent.
type Weights struct {
	Distance    float64 `json:"distance"`
	Workload    float64 `json:"workload"`
	Rating      float64 `json:"rating"`
	SuccessRate float64 `json:"success_rate"`
}

// AutoAssignment controls automatic dispatch.
type AutoAssignment struct {
	Enabled               bool    `json:"enabled"`
	Weights               Weights `json:"weights"`
	TimeoutSeconds        int     `json:"timeout_seconds"`
	ReassignmentAttempts  int     `json:"reassignment_attempts"`
	FallbackToManual      bool    `json:"fallback_to_manual"`
	ExcludeRejectedAgents bool    `json:"exclude_rejected_agents"`
	SuggestionLimit       int     `json:"suggestion_limit"`
}

// CommissionSettings are the platform's commission rates, in percent.
type CommissionSettings struct {
	VendorDefaultRate   decimal.Decimal `json:"vendor_default_rate"`
	VendorMinRate       decimal.Decimal `json:"vendor_min_rate"`
	VendorMaxRate       decimal.Decimal `json:"vendor_max_rate"`
	DeliveryPlatformPct decimal.Decimal `json:"delivery_platform_pct"`
	DeliveryAgentPct    decimal.Decimal `json:"delivery_agent_pct"`
}

// Incentives are agent bonus and penalty amounts.
type Incentives struct {
	OnTimeBonus         decimal.Decimal `json:"on_time_bonus"`
	HighRatingBonus     decimal.Decimal `json:"high_rating_bonus"`
	HighRatingThreshold int             `json:"high_rating_threshold"`
	LatePenalty         decimal.Decimal `json:"late_penalty"`
	ComplaintPenalty    decimal.Decimal `json:"complaint_penalty"`
}

// Gateway fee absorbers.
const (
	FeeAbsorbedByPlatform = "platform"
	FeeAbsorbedByCustomer = "customer"
)

// PaymentGateway is the card processor fee policy.
type PaymentGateway struct {
	FeePct     decimal.Decimal `json:"fee_pct"`
	AbsorbedBy string          `json:"absorbed_by"`
}

// Payout schedules.
const (
	ScheduleWeekly   = "weekly"
	ScheduleBiweekly = "biweekly"
	ScheduleMonthly  = "monthly"
)

// VendorPayoutSettings controls vendor settlement batching.
type VendorPayoutSettings struct {
	Schedule      string          `json:"schedule"`
	Weekday       time.Weekday    `json:"weekday"`
	HoldingDays   int             `json:"holding_days"`
	MinimumPayout decimal.Decimal `json:"minimum_payout"`
}

// AgentPayoutSettings limits agent withdrawals.
type AgentPayoutSettings struct {
	MinimumWithdrawal    decimal.Decimal `json:"minimum_withdrawal"`
	DailyWithdrawalLimit decimal.Decimal `json:"daily_withdrawal_limit"`
}

// PlatformSettings is the process-wide configuration singleton.
type PlatformSettings struct {
	Zones          []Zone               `json:"zones"`
	AutoAssignment AutoAssignment       `json:"auto_assignment"`
	Commission     CommissionSettings   `json:"commission"`
	Incentives     Incentives           `json:"incentives"`
	DeliveryFee    decimal.Decimal      `json:"delivery_base_fee"`
	Gateway        PaymentGateway       `json:"payment_gateway"`
	VendorPayouts  VendorPayoutSettings `json:"vendor_payouts"`
	AgentPayouts   AgentPayoutSettings  `json:"agent_payouts"`
	UpdatedAt      time.Time            `json:"updated_at"`
}

// DefaultPlatformSettings returns the settings a fresh installation starts with.
func DefaultPlatformSettings() PlatformSettings {
	return PlatformSettings{
		Zones: []Zone{
			{Name: "Downtown", PostalCodes: []string{"10001", "10002", "10003"}, BaseDeliveryMinutes: 30, Active: true},
			{Name: "North Zone", PostalCodes: []string{"10010", "10011", "10012"}, BaseDeliveryMinutes: 45, Active: true},
			{Name: "South Zone", PostalCodes: []string{"10020", "10021", "10022"}, BaseDeliveryMinutes: 45, Active: true},
			{Name: "East Zone", PostalCodes: []string{"10030", "10031", "10032"}, BaseDeliveryMinutes: 50, Active: true},
			{Name: "West Zone", PostalCodes: []string{"10040", "10041", "10042"}, BaseDeliveryMinutes: 50, Active: true},
		},
		AutoAssignment: AutoAssignment{
			Enabled:              false,
			Weights:              Weights{Distance: 30, Workload: 40, Rating: 20, SuccessRate: 10},
			TimeoutSeconds:       300,
			ReassignmentAttempts: 3,
			FallbackToManual:     true,
			SuggestionLimit:      3,
		},
		Commission: CommissionSettings{
			VendorDefaultRate:   decimal.NewFromInt(15),
			VendorMinRate:       decimal.NewFromInt(5),
			VendorMaxRate:       decimal.NewFromInt(30),
			DeliveryPlatformPct: decimal.NewFromInt(20),
			DeliveryAgentPct:    decimal.NewFromInt(80),
		},
		Incentives: Incentives{
			OnTimeBonus:         decimal.NewFromInt(5),
			HighRatingBonus:     decimal.NewFromInt(10),
			HighRatingThreshold: 5,
			LatePenalty:         decimal.NewFromInt(10),
			ComplaintPenalty:    decimal.NewFromInt(50),
		},
		DeliveryFee: decimal.NewFromInt(30),
		Gateway: PaymentGateway{
			FeePct:     decimal.RequireFromString("2.5"),
			AbsorbedBy: FeeAbsorbedByPlatform,
		},
		VendorPayouts: VendorPayoutSettings{
			Schedule:      ScheduleWeekly,
			Weekday:       time.Friday,
			HoldingDays:   7,
			MinimumPayout: decimal.NewFromInt(500),
		},
		AgentPayouts: AgentPayoutSettings{
			MinimumWithdrawal:    decimal.NewFromInt(100),
			DailyWithdrawalLimit: decimal.NewFromInt(5000),
		},
	}
}

// AssignmentTimeout is how long an assigned agent has to respond.
func (s PlatformSettings) AssignmentTimeout() time.Duration {
	return time.Duration(s.AutoAssignment.TimeoutSeconds) * time.Second
}

// Clone returns a deep copy.
func (s PlatformSettings) Clone() PlatformSettings {
	c := s
	c.Zones = make([]Zone, len(s.Zones))
	for i, z := range s.Zones {
		z.PostalCodes = slices.Clone(z.PostalCodes)
		c.Zones[i] = z
	}
	return c
}

var hundred = decimal.NewFromInt(100)

// Validate checks internal consistency.
func (s PlatformSettings) Validate() error {
	var errs []error
	w := s.AutoAssignment.Weights
	if w.Distance < 0 || w.Workload < 0 || w.Rating < 0 || w.SuccessRate < 0 {
		errs = append(errs, errors.New("weights must be non-negative"))
	}
	if w.Distance+w.Workload+w.Rating+w.SuccessRate <= 0 {
		errs = append(errs, errors.New("weights must not all be zero"))
	}
	if s.AutoAssignment.TimeoutSeconds <= 0 {
		errs = append(errs, errors.New("assignment timeout must be positive"))
	}
	if s.AutoAssignment.ReassignmentAttempts <= 0 {
		errs = append(errs, errors.New("reassignment attempts must be positive"))
	}
	c := s.Commission
	if !c.DeliveryPlatformPct.Add(c.DeliveryAgentPct).Equal(hundred) {
		errs = append(errs, errors.New("delivery platform and agent percentages must total 100"))
	}
	if c.VendorDefaultRate.IsNegative() || c.VendorDefaultRate.GreaterThan(hundred) {
		errs = append(errs, fmt.Errorf("vendor default rate %s out of range", c.VendorDefaultRate))
	}
	if s.DeliveryFee.IsNegative() {
		errs = append(errs, errors.New("delivery base fee must not be negative"))
	}
	if s.Gateway.AbsorbedBy != FeeAbsorbedByPlatform && s.Gateway.AbsorbedBy != FeeAbsorbedByCustomer {
		errs = append(errs, fmt.Errorf("unknown gateway fee absorber %q", s.Gateway.AbsorbedBy))
	}
	switch s.VendorPayouts.Schedule {
	case ScheduleWeekly, ScheduleBiweekly, ScheduleMonthly:
	default:
		errs = append(errs, fmt.Errorf("unknown payout schedule %q", s.VendorPayouts.Schedule))
	}
	if s.VendorPayouts.HoldingDays < 0 {
		errs = append(errs, errors.New("holding period must not be negative"))
	}
	seen := map[string]string{}
	for _, z := range s.Zones {
		if z.Name == "" {
			errs = append(errs, errors.New("zone name must not be empty"))
		}
		for _, pc := range z.PostalCodes {
			if other, ok := seen[pc]; ok && other != z.Name {
				errs = append(errs, fmt.Errorf("postal code %s mapped to both %s and %s", pc, other, z.Name))
			}
			seen[pc] = z.Name
		}
	}
	return errors.Join(errs...)
}

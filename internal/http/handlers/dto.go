package handlers

import (
	"time"

	"github.com/shopspring/decimal"

	"daycare-dispatch/internal/domain"
	"daycare-dispatch/internal/service/dispatch"
)

type locationDTO struct {
	Address     string              `json:"address"`
	PostalCode  string              `json:"postal_code"`
	Zone        string              `json:"zone"`
	Coordinates *domain.Coordinates `json:"coordinates,omitempty"`
}

type itemDTO struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
}

type assignmentDTO struct {
	ID                string                  `json:"id"`
	OrderID           string                  `json:"order_id"`
	VendorID          string                  `json:"vendor_id"`
	Pickup            locationDTO             `json:"pickup"`
	DropOff           locationDTO             `json:"dropoff"`
	Items             []itemDTO               `json:"items"`
	DeliveryFee       decimal.Decimal         `json:"delivery_fee"`
	PlatformShare     decimal.Decimal         `json:"platform_share"`
	AgentShare        decimal.Decimal         `json:"agent_share"`
	Status            domain.AssignmentStatus `json:"status"`
	Type              domain.AssignmentType   `json:"assignment_type,omitempty"`
	AgentID           string                  `json:"agent_id,omitempty"`
	Score             float64                 `json:"score,omitempty"`
	Reason            string                  `json:"reason,omitempty"`
	Attempts          int                     `json:"attempts"`
	RejectedAgents    []string                `json:"rejected_agents"`
	RejectionReason   string                  `json:"rejection_reason,omitempty"`
	FailureReason     string                  `json:"failure_reason,omitempty"`
	ResponseDeadline  *time.Time              `json:"response_deadline,omitempty"`
	EstimatedDuration int                     `json:"estimated_duration"`
	CurrentLocation   *domain.Coordinates     `json:"current_location,omitempty"`
	CustomerRating    *int                    `json:"customer_rating,omitempty"`
	AgentEarnings     *decimal.Decimal        `json:"agent_earnings,omitempty"`
	AssignedAt        *time.Time              `json:"assigned_at,omitempty"`
	AcceptedAt        *time.Time              `json:"accepted_at,omitempty"`
	PickedUpAt        *time.Time              `json:"picked_up_at,omitempty"`
	InTransitAt       *time.Time              `json:"in_transit_at,omitempty"`
	DeliveredAt       *time.Time              `json:"delivered_at,omitempty"`
	FailedAt          *time.Time              `json:"failed_at,omitempty"`
	CreatedAt         time.Time               `json:"created_at"`
	UpdatedAt         time.Time               `json:"updated_at"`
}

type createAssignmentRequest struct {
	OrderID  string `json:"order_id"`
	VendorID string `json:"vendor_id"`
}

type assignManualRequest struct {
	AgentID string `json:"agent_id"`
}

type reasonRequest struct {
	Reason string `json:"reason"`
}

type deliverRequest struct {
	Rating *int `json:"rating,omitempty"`
}

type dispatchResultDTO struct {
	Outcome    dispatch.Outcome `json:"outcome"`
	Assignment *assignmentDTO   `json:"assignment,omitempty"`
}

type expireResultDTO struct {
	Released int `json:"released"`
}

type agentDTO struct {
	ID               string                   `json:"id"`
	Name             string                   `json:"name"`
	Phone            string                   `json:"phone"`
	Zones            []string                 `json:"zones"`
	Availability     domain.AgentAvailability `json:"availability"`
	Active           bool                     `json:"active"`
	Rating           float64                  `json:"rating"`
	SuccessRate      float64                  `json:"success_rate"`
	MaxConcurrent    int                      `json:"max_concurrent"`
	ActiveDeliveries int                      `json:"active_deliveries"`
	TotalDeliveries  int                      `json:"total_deliveries"`
	Location         *domain.Coordinates      `json:"location,omitempty"`
	BaseLocation     *domain.Coordinates      `json:"base_location,omitempty"`
	LocationAt       *time.Time               `json:"location_updated_at,omitempty"`
	CreatedAt        time.Time                `json:"created_at"`
	UpdatedAt        time.Time                `json:"updated_at"`
}

type createAgentRequest struct {
	ID            string                   `json:"id,omitempty"`
	Name          string                   `json:"name"`
	Phone         string                   `json:"phone"`
	Zones         []string                 `json:"zones"`
	Availability  domain.AgentAvailability `json:"availability,omitempty"`
	Rating        float64                  `json:"rating,omitempty"`
	SuccessRate   float64                  `json:"success_rate,omitempty"`
	MaxConcurrent int                      `json:"max_concurrent,omitempty"`
	BaseLocation  *domain.Coordinates      `json:"base_location,omitempty"`
}

type updateAgentRequest struct {
	Name          *string                   `json:"name,omitempty"`
	Phone         *string                   `json:"phone,omitempty"`
	Zones         *[]string                 `json:"zones,omitempty"`
	Availability  *domain.AgentAvailability `json:"availability,omitempty"`
	Active        *bool                     `json:"active,omitempty"`
	MaxConcurrent *int                      `json:"max_concurrent,omitempty"`
	BaseLocation  *domain.Coordinates       `json:"base_location,omitempty"`
}

type walletTransactionDTO struct {
	ID           string              `json:"id"`
	Type         domain.WalletTxType `json:"type"`
	Amount       decimal.Decimal     `json:"amount"`
	BalanceAfter decimal.Decimal     `json:"balance_after"`
	SourceRef    string              `json:"source_ref,omitempty"`
	Description  string              `json:"description,omitempty"`
	CreatedAt    time.Time           `json:"created_at"`
}

type walletDTO struct {
	AgentID        string                 `json:"agent_id"`
	Balance        decimal.Decimal        `json:"balance"`
	TotalEarnings  decimal.Decimal        `json:"total_earnings"`
	TotalWithdrawn decimal.Decimal        `json:"total_withdrawn"`
	Transactions   []walletTransactionDTO `json:"transactions"`
}

type withdrawRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

type reconciliationDTO struct {
	AgentID      string          `json:"agent_id"`
	Balance      decimal.Decimal `json:"balance"`
	LedgerSum    decimal.Decimal `json:"ledger_sum"`
	Transactions int             `json:"transactions"`
	Balanced     bool            `json:"balanced"`
}

type adjustmentDTO struct {
	Kind   string          `json:"kind"`
	Amount decimal.Decimal `json:"amount"`
	Reason string          `json:"reason"`
}

type agentPayoutDTO struct {
	ID             string          `json:"id"`
	AssignmentID   string          `json:"assignment_id"`
	AgentID        string          `json:"agent_id"`
	OrderID        string          `json:"order_id"`
	GrossFee       decimal.Decimal `json:"gross_fee"`
	PlatformShare  decimal.Decimal `json:"platform_share"`
	AgentShare     decimal.Decimal `json:"agent_share"`
	Bonuses        []adjustmentDTO `json:"bonuses"`
	Penalties      []adjustmentDTO `json:"penalties"`
	NetEarnings    decimal.Decimal `json:"net_earnings"`
	OnTime         bool            `json:"on_time"`
	DeliveryTime   int             `json:"delivery_time"`
	CustomerRating *int            `json:"customer_rating,omitempty"`
	TransactionID  string          `json:"transaction_id"`
	CreatedAt      time.Time       `json:"created_at"`
}

type settlementDTO struct {
	Payout        *agentPayoutDTO   `json:"payout,omitempty"`
	OrderSettled  bool              `json:"order_settled"`
	VendorPayouts []vendorPayoutDTO `json:"vendor_payouts"`
}

type payoutLineDTO struct {
	OrderID string          `json:"order_id"`
	Gross   decimal.Decimal `json:"gross"`
	Fee     decimal.Decimal `json:"fee"`
	Net     decimal.Decimal `json:"net"`
}

type vendorPayoutDTO struct {
	ID            string              `json:"id"`
	VendorID      string              `json:"vendor_id"`
	Batch         string              `json:"batch"`
	PeriodStart   time.Time           `json:"period_start"`
	PeriodEnd     time.Time           `json:"period_end"`
	Lines         []payoutLineDTO     `json:"orders"`
	TotalGross    decimal.Decimal     `json:"total_gross"`
	TotalFee      decimal.Decimal     `json:"total_commission"`
	TotalNet      decimal.Decimal     `json:"total_net"`
	Status        domain.PayoutStatus `json:"status"`
	ScheduledDate time.Time           `json:"scheduled_date"`
	ProcessedAt   *time.Time          `json:"processed_at,omitempty"`
	CompletedAt   *time.Time          `json:"completed_at,omitempty"`
	TransferRef   string              `json:"transfer_ref,omitempty"`
	FailureReason string              `json:"failure_reason,omitempty"`
}

type completePayoutRequest struct {
	TransferRef string `json:"transfer_ref"`
}

type commissionDTO struct {
	ID                      string                    `json:"id"`
	OrderID                 string                    `json:"order_id"`
	OrderNumber             string                    `json:"order_number,omitempty"`
	Vendors                 []domain.VendorCommission `json:"vendors"`
	Delivery                domain.DeliveryBreakdown  `json:"delivery"`
	TotalVendorCommission   decimal.Decimal           `json:"total_vendor_commission"`
	TotalDeliveryCommission decimal.Decimal           `json:"total_delivery_commission"`
	TotalRevenue            decimal.Decimal           `json:"total_revenue"`
	GatewayFee              decimal.Decimal           `json:"payment_gateway_fee"`
	NetRevenue              decimal.Decimal           `json:"net_revenue"`
	Status                  domain.CommissionStatus   `json:"status"`
	CreatedAt               time.Time                 `json:"created_at"`
}

type monthlyRevenueDTO struct {
	Month   string          `json:"month"`
	Orders  int             `json:"orders"`
	Revenue decimal.Decimal `json:"revenue"`
}

type commissionSummaryDTO struct {
	Orders                  int                 `json:"orders"`
	TotalVendorCommission   decimal.Decimal     `json:"total_vendor_commission"`
	TotalDeliveryCommission decimal.Decimal     `json:"total_delivery_commission"`
	TotalRevenue            decimal.Decimal     `json:"total_revenue"`
	NetRevenue              decimal.Decimal     `json:"net_revenue"`
	ByMonth                 []monthlyRevenueDTO `json:"by_month"`
}

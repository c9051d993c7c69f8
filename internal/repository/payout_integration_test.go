//go:build integration

package repository_test

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"daycare-dispatch/internal/domain"
	"daycare-dispatch/internal/logx"
	"daycare-dispatch/internal/ports/dispatchtx"
	"daycare-dispatch/internal/service/payout"
)

type defaultSettings struct{}

func (defaultSettings) Current(context.Context) (domain.PlatformSettings, error) {
	return domain.DefaultPlatformSettings(), nil
}

func (s *StoreSuite) newVendorCommission(vendorID string) string {
	now := time.Now().UTC().Truncate(time.Microsecond)
	rec := domain.CommissionRecord{
		ID:      uuid.NewString(),
		OrderID: uuid.NewString(),
		Vendors: []domain.VendorCommission{{
			VendorID: vendorID, Sales: decimal.RequireFromString("500"), Rate: decimal.RequireFromString("15"),
			Commission: decimal.RequireFromString("75"), NetPayout: decimal.RequireFromString("425"),
		}},
		Delivery:                domain.DeliveryBreakdown{TotalFee: decimal.Zero},
		TotalVendorCommission:   decimal.RequireFromString("75"),
		TotalDeliveryCommission: decimal.Zero,
		TotalRevenue:            decimal.RequireFromString("75"),
		GatewayFee:              decimal.Zero,
		NetRevenue:              decimal.RequireFromString("75"),
		Status:                  domain.CommissionPending,
		CreatedAt:               now,
		UpdatedAt:               now,
	}
	s.Require().NoError(s.tx(func(tx dispatchtx.Repository) error { return tx.InsertCommission(s.ctx, &rec) }))
	return rec.OrderID
}

func (s *StoreSuite) TestSchedulePayout_ConcurrentSameOrderAddsOneLine() {
	vendorID := "v-" + uuid.NewString()[:8]
	s.Require().NoError(s.tx(func(tx dispatchtx.Repository) error {
		return tx.SaveVendor(s.ctx, domain.Vendor{ID: vendorID, Name: "Busy Bees"})
	}))
	first := s.newVendorCommission(vendorID)
	order := s.newVendorCommission(vendorID)

	svc := payout.NewService(s.store, defaultSettings{}, nil, 10*time.Second, logx.Nop())
	_, err := svc.ScheduleForOrder(s.ctx, first)
	s.Require().NoError(err)

	const workers = 6
	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = svc.ScheduleForOrder(s.ctx, order)
		}()
	}
	wg.Wait()
	for _, err := range errs {
		s.Require().NoError(err)
	}

	var got []domain.VendorPayout
	s.Require().NoError(s.tx(func(tx dispatchtx.Repository) error {
		var err error
		got, err = tx.ListVendorPayouts(s.ctx, vendorID)
		return err
	}))
	s.Require().Len(got, 1)
	s.Len(got[0].Lines, 2)
	s.True(got[0].TotalNet.Equal(decimal.RequireFromString("850")), got[0].TotalNet.String())
}

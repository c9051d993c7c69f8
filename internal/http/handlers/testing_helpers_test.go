package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"daycare-dispatch/internal/domain"
	"daycare-dispatch/internal/http/middleware"
)

var (
	adminActor  = domain.Actor{ID: "ops-1", Role: domain.RoleAdmin}
	agentActor  = domain.Actor{ID: "agent-1", Role: domain.RoleAgent}
	vendorActor = domain.Actor{ID: "vendor-1", Role: domain.RoleVendor}
)

func newRequest(method, target, body string, actor *domain.Actor, params map[string]string) *http.Request {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}

	ctx := req.Context()
	if actor != nil {
		ctx = middleware.WithActor(ctx, *actor)
	}
	if len(params) > 0 {
		rctx := chi.NewRouteContext()
		for k, v := range params {
			rctx.URLParams.Add(k, v)
		}
		ctx = context.WithValue(ctx, chi.RouteCtxKey, rctx)
	}
	return req.WithContext(ctx)
}

func sampleAssignment(status domain.AssignmentStatus) *domain.Assignment {
	created := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	return &domain.Assignment{
		ID:       "asg-1",
		OrderID:  "ord-1",
		VendorID: "vendor-1",
		Pickup: domain.Location{
			Address:    "1 Warehouse Rd",
			PostalCode: "10001",
			Zone:       "Downtown",
		},
		DropOff: domain.Location{
			Address:    "5 Main St",
			PostalCode: "10002",
			Zone:       "Downtown",
		},
		DeliveryFee:   decimal.RequireFromString("50"),
		PlatformShare: decimal.RequireFromString("10"),
		AgentShare:    decimal.RequireFromString("40"),
		Status:        status,
		CreatedAt:     created,
		UpdatedAt:     created,
	}
}

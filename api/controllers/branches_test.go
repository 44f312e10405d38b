package controllers

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mvillagranc/mesaboard-backend/internal/branches"
	"github.com/mvillagranc/mesaboard-backend/pkg/logger"
	"github.com/mvillagranc/mesaboard-backend/pkg/pagination"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Level: zerolog.ErrorLevel, Output: io.Discard})
}

func availabilityRequest(branchID, productID uuid.UUID, body string) *http.Request {
	req := httptest.NewRequest(http.MethodPut, "/api/v1/branches/"+branchID.String()+"/products/"+productID.String()+"/availability", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add("branchId", branchID.String())
	routeCtx.URLParams.Add("productId", productID.String())
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))
}

func TestSetProductAvailabilityDispatch(t *testing.T) {
	logg := testLogger()
	branchID := uuid.New()
	productID := uuid.New()

	tests := []struct {
		name string
		body string
		want string
	}{
		{"enable cascades by default", `{"active":true}`, "enable"},
		{"enable with explicit cascade", `{"active":true,"cascade":true}`, "enable"},
		{"enable without cascade", `{"active":true,"cascade":false}`, "set"},
		{"disable never cascades", `{"active":false}`, "remove"},
		{"disable ignores cascade flag", `{"active":false,"cascade":true}`, "remove"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := &stubBranchService{}
			rec := httptest.NewRecorder()
			SetProductAvailability(stub, logg).ServeHTTP(rec, availabilityRequest(branchID, productID, tt.body))

			if rec.Code != http.StatusOK {
				t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
			}
			if stub.lastCall != tt.want {
				t.Fatalf("expected %s call, got %q", tt.want, stub.lastCall)
			}
			if stub.lastBranch != branchID || stub.lastProduct != productID {
				t.Fatalf("service called with wrong ids")
			}
		})
	}
}

func TestSetProductAvailabilityRejectsBadInput(t *testing.T) {
	logg := testLogger()
	stub := &stubBranchService{}

	req := httptest.NewRequest(http.MethodPut, "/api/v1/branches/not-a-uuid/products/x/availability", strings.NewReader(`{"active":true}`))
	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add("branchId", "not-a-uuid")
	routeCtx.URLParams.Add("productId", uuid.NewString())
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))
	rec := httptest.NewRecorder()
	SetProductAvailability(stub, logg).ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad branch id, got %d", rec.Code)
	}

	branchID := uuid.New()
	productID := uuid.New()
	rec = httptest.NewRecorder()
	SetProductAvailability(stub, logg).ServeHTTP(rec, availabilityRequest(branchID, productID, `{"active":true,"unknown":1}`))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown field, got %d", rec.Code)
	}
	if stub.lastCall != "" {
		t.Fatalf("service should not be called on invalid input")
	}
}

type stubBranchService struct {
	lastCall    string
	lastBranch  uuid.UUID
	lastProduct uuid.UUID
}

func (s *stubBranchService) CreateBranch(ctx context.Context, input branches.CreateBranchInput) (*branches.BranchDTO, error) {
	panic("unimplemented")
}

func (s *stubBranchService) GetBranch(ctx context.Context, id uuid.UUID) (*branches.BranchDTO, error) {
	panic("unimplemented")
}

func (s *stubBranchService) ListBranches(ctx context.Context, params pagination.Params) (*branches.BranchListResult, error) {
	panic("unimplemented")
}

func (s *stubBranchService) UpdateBranch(ctx context.Context, id uuid.UUID, input branches.UpdateBranchInput) (*branches.BranchDTO, error) {
	panic("unimplemented")
}

func (s *stubBranchService) DeleteBranch(ctx context.Context, id uuid.UUID) error {
	panic("unimplemented")
}

func (s *stubBranchService) EnableProduct(ctx context.Context, branchID, productID uuid.UUID) error {
	s.lastCall = "enable"
	s.lastBranch = branchID
	s.lastProduct = productID
	return nil
}

func (s *stubBranchService) RemoveProduct(ctx context.Context, branchID, productID uuid.UUID) error {
	s.lastCall = "remove"
	s.lastBranch = branchID
	s.lastProduct = productID
	return nil
}

func (s *stubBranchService) SetProductAvailability(ctx context.Context, branchID, productID uuid.UUID, available bool) error {
	s.lastCall = "set"
	s.lastBranch = branchID
	s.lastProduct = productID
	return nil
}

func (s *stubBranchService) SetIngredientAvailability(ctx context.Context, branchID, ingredientID uuid.UUID, available bool) error {
	s.lastCall = "set-ingredient"
	return nil
}

func (s *stubBranchService) IsProductAvailable(ctx context.Context, branchID, productID uuid.UUID) (*branches.AvailabilityDTO, error) {
	return &branches.AvailabilityDTO{BranchID: branchID, ItemID: productID, Available: s.lastCall != "remove"}, nil
}

func (s *stubBranchService) IsIngredientAvailable(ctx context.Context, branchID, ingredientID uuid.UUID) (*branches.AvailabilityDTO, error) {
	return &branches.AvailabilityDTO{BranchID: branchID, ItemID: ingredientID, Available: true}, nil
}

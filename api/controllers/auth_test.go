package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/mvillagranc/mesaboard-backend/api/middleware"
	"github.com/mvillagranc/mesaboard-backend/internal/staff"
	pkgerrors "github.com/mvillagranc/mesaboard-backend/pkg/errors"
)

func TestLogin(t *testing.T) {
	logg := testLogger()
	stub := &stubStaffService{loginResponse: &staff.LoginResponse{
		AccessToken:  "access",
		RefreshToken: "refresh",
	}}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(`{"email":"ana@mesaboard.mx","password":"secret"}`))
	rec := httptest.NewRecorder()
	Login(stub, logg).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var payload struct {
		Data staff.LoginResponse `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload.Data.AccessToken != "access" || payload.Data.RefreshToken != "refresh" {
		t.Fatalf("unexpected token pair %+v", payload.Data)
	}
	if stub.loginRequest == nil || stub.loginRequest.Email != "ana@mesaboard.mx" {
		t.Fatalf("service saw wrong request %+v", stub.loginRequest)
	}
}

func TestLoginRejectsMalformedBody(t *testing.T) {
	logg := testLogger()
	stub := &stubStaffService{}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(`{"email":`))
	rec := httptest.NewRecorder()
	Login(stub, logg).ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if stub.loginRequest != nil {
		t.Fatal("service should not be called")
	}
}

func TestLoginPropagatesUnauthorized(t *testing.T) {
	logg := testLogger()
	stub := &stubStaffService{loginErr: pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(`{"email":"ana@mesaboard.mx","password":"wrong"}`))
	rec := httptest.NewRecorder()
	Login(stub, logg).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestLogoutUsesAccessIDFromContext(t *testing.T) {
	logg := testLogger()
	stub := &stubStaffService{}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
	req = req.WithContext(middleware.WithAccessID(req.Context(), "session-123"))
	rec := httptest.NewRecorder()
	Logout(stub, logg).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if stub.logoutAccessID != "session-123" {
		t.Fatalf("expected access id from context, got %q", stub.logoutAccessID)
	}
}

type stubStaffService struct {
	loginRequest   *staff.LoginRequest
	loginResponse  *staff.LoginResponse
	loginErr       error
	logoutAccessID string
}

func (s *stubStaffService) Login(ctx context.Context, req staff.LoginRequest) (*staff.LoginResponse, error) {
	s.loginRequest = &req
	if s.loginErr != nil {
		return nil, s.loginErr
	}
	return s.loginResponse, nil
}

func (s *stubStaffService) Refresh(ctx context.Context, req staff.RefreshRequest) (*staff.RefreshResponse, error) {
	panic("unimplemented")
}

func (s *stubStaffService) Logout(ctx context.Context, accessID string) error {
	s.logoutAccessID = accessID
	return nil
}

func (s *stubStaffService) CreateStaff(ctx context.Context, req staff.CreateStaffRequest) (*staff.CreateStaffResponse, error) {
	panic("unimplemented")
}

func (s *stubStaffService) GetStaff(ctx context.Context, id uuid.UUID) (*staff.StaffUserDTO, error) {
	panic("unimplemented")
}

func (s *stubStaffService) ListStaff(ctx context.Context) ([]staff.StaffUserDTO, error) {
	panic("unimplemented")
}

func (s *stubStaffService) SetStaffActive(ctx context.Context, id uuid.UUID, active bool) (*staff.StaffUserDTO, error) {
	panic("unimplemented")
}

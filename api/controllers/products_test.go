package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func TestCreateProduct(t *testing.T) {
	logg := testLogger()
	groupID := uuid.New()

	stub := &stubCatalogService{}
	body := `{"name":"Burger","base_price":"89.50","tags":["grill"],"group_ids":["` + groupID.String() + `"]}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/products", strings.NewReader(body))
	rec := httptest.NewRecorder()
	CreateProduct(stub, logg).ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if stub.createProductInput == nil {
		t.Fatal("expected CreateProduct to be invoked")
	}
	if stub.createProductInput.Name != "Burger" {
		t.Fatalf("unexpected name %q", stub.createProductInput.Name)
	}
	if !stub.createProductInput.BasePrice.Equal(decimal.RequireFromString("89.50")) {
		t.Fatalf("unexpected base price %s", stub.createProductInput.BasePrice)
	}
	if len(stub.createProductInput.GroupIDs) != 1 || stub.createProductInput.GroupIDs[0] != groupID {
		t.Fatalf("unexpected group ids %v", stub.createProductInput.GroupIDs)
	}
}

func TestCreateProductRejectsBadPayload(t *testing.T) {
	logg := testLogger()

	tests := map[string]string{
		"missing name":  `{"base_price":"10.00"}`,
		"bad group id":  `{"name":"Burger","base_price":"10.00","group_ids":["nope"]}`,
		"unknown field": `{"name":"Burger","base_price":"10.00","surprise":true}`,
	}

	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			stub := &stubCatalogService{}
			req := httptest.NewRequest(http.MethodPost, "/api/v1/products", strings.NewReader(body))
			rec := httptest.NewRecorder()
			CreateProduct(stub, logg).ServeHTTP(rec, req)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", rec.Code)
			}
			if stub.createProductInput != nil {
				t.Fatal("service should not be called on invalid input")
			}
		})
	}
}

func TestDeleteProductBlockedByReferences(t *testing.T) {
	logg := testLogger()
	productID := uuid.New()

	stub := &stubCatalogService{deleteBlockedBy: []string{"Toppings"}}
	req := httptest.NewRequest(http.MethodDelete, "/api/v1/products/"+productID.String(), nil)
	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add("productId", productID.String())
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))
	rec := httptest.NewRecorder()
	DeleteProduct(stub, logg).ServeHTTP(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
	var payload struct {
		Error struct {
			Code    string `json:"code"`
			Details any    `json:"details"`
		} `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode error envelope: %v", err)
	}
	if payload.Error.Code != "RESOURCE_IN_USE" {
		t.Fatalf("unexpected code %s", payload.Error.Code)
	}
	if payload.Error.Details == nil {
		t.Fatal("expected reference labels in details")
	}
}

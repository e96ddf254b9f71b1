package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/speeti/speeti/internal/domain/errors"
	"github.com/speeti/speeti/internal/domain/model"
	"github.com/speeti/speeti/internal/server/http/dto"
	"github.com/speeti/speeti/internal/server/http/middleware"
	testhelpers "github.com/speeti/speeti/internal/test"
	"github.com/speeti/speeti/internal/usecase"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func performRequest(t *testing.T, method, path string, handler gin.HandlerFunc, setup func(*gin.Context), body []byte, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	return performRouteRequest(t, method, path, path, handler, setup, body, headers)
}

func performRouteRequest(t *testing.T, method, route, path string, handler gin.HandlerFunc, setup func(*gin.Context), body []byte, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	router := gin.New()
	router.Handle(method, route, func(c *gin.Context) {
		if setup != nil {
			setup(c)
		}
		handler(c)
	})

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func jsonHeaders() map[string]string {
	return map[string]string{"Content-Type": "application/json"}
}

func asUser(id int64) func(*gin.Context) {
	return func(c *gin.Context) {
		c.Set(middleware.UserIDContextKey, id)
	}
}

func TestCurrentUserID(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	if got := CurrentUserID(c); got != 0 {
		t.Fatalf("expected 0 when not set, got %d", got)
	}

	c.Set(middleware.UserIDContextKey, int64(42))
	if got := CurrentUserID(c); got != 42 {
		t.Fatalf("expected 42, got %d", got)
	}
}

func TestAuthHandlerRegister(t *testing.T) {
	body, _ := json.Marshal(dto.RegisterRequest{Email: "user@x.com", Password: "pass", FirstName: "Max"})
	resp := performRequest(t, http.MethodPost, "/register", NewAuthHandler(testhelpers.AuthFacadeStub{}).Register, nil, body, jsonHeaders())
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	if resp.Header().Get("Authorization") == "" {
		t.Fatalf("expected auth header to be set")
	}
}

func TestAuthHandlerRegisterPassesFields(t *testing.T) {
	email := testhelpers.RandomASCIIString(5, 10) + "@x.com"
	password := testhelpers.RandomASCIIString(16, 32)
	body, _ := json.Marshal(dto.RegisterRequest{Email: email, Password: password, FirstName: "Max", LastName: "Mustermann"})
	handler := NewAuthHandler(testhelpers.AuthFacadeStub{RegisterFn: func(ctx context.Context, gotEmail, gotPassword, gotFirst, gotLast string) (string, error) {
		if gotEmail != email || gotPassword != password || gotFirst != "Max" || gotLast != "Mustermann" {
			t.Fatalf("unexpected fields passed to facade: %q %q %q %q", gotEmail, gotPassword, gotFirst, gotLast)
		}
		return "session-token", nil
	}})
	resp := performRequest(t, http.MethodPost, "/register", handler.Register, nil, body, jsonHeaders())
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	if got := resp.Header().Get("Authorization"); got != "Bearer session-token" {
		t.Fatalf("unexpected authorization header %q", got)
	}
}

func TestAuthHandlerRegisterErrors(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{name: "invalid", err: domainErrors.ErrInvalidCredentials, want: http.StatusBadRequest},
		{name: "duplicate", err: domainErrors.ErrAlreadyExists, want: http.StatusConflict},
		{name: "internal", err: context.DeadlineExceeded, want: http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			handler := NewAuthHandler(testhelpers.AuthFacadeStub{RegisterFn: func(context.Context, string, string, string, string) (string, error) {
				return "", tc.err
			}})
			body, _ := json.Marshal(dto.RegisterRequest{Email: "user@x.com", Password: "pass", FirstName: "Max"})
			resp := performRequest(t, http.MethodPost, "/register", handler.Register, nil, body, jsonHeaders())
			if resp.Code != tc.want {
				t.Fatalf("expected status %d, got %d", tc.want, resp.Code)
			}
		})
	}

	resp := performRequest(t, http.MethodPost, "/register", NewAuthHandler(testhelpers.AuthFacadeStub{}).Register, nil, []byte("{broken"), jsonHeaders())
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed body, got %d", resp.Code)
	}
}

func TestAuthHandlerLogin(t *testing.T) {
	body, _ := json.Marshal(dto.LoginRequest{Email: "user@x.com", Password: "pass"})
	resp := performRequest(t, http.MethodPost, "/login", NewAuthHandler(testhelpers.AuthFacadeStub{}).Login, nil, body, jsonHeaders())
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}

	handler := NewAuthHandler(testhelpers.AuthFacadeStub{AuthenticateFn: func(context.Context, string, string) (string, error) {
		return "", domainErrors.ErrInvalidCredentials
	}})
	resp = performRequest(t, http.MethodPost, "/login", handler.Login, nil, body, jsonHeaders())
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for bad credentials, got %d", resp.Code)
	}
}

func TestOrderHandlerCheckout(t *testing.T) {
	facade := testhelpers.OrderFacadeStub{CheckoutFn: func(ctx context.Context, userID int64, addressID *int64, scheduledTime string, items []usecase.CheckoutItem) (*model.Order, error) {
		if userID != 7 {
			t.Fatalf("unexpected user id %d", userID)
		}
		if len(items) != 1 || items[0].ProductID != 3 || items[0].Quantity != 2 {
			t.Fatalf("unexpected items: %+v", items)
		}
		return &model.Order{ID: 42, UserID: userID, Status: model.OrderStatusPending, Total: 10, DeliveryFee: 2.9, CreatedAt: time.Unix(0, 0)}, nil
	}}
	body, _ := json.Marshal(dto.CheckoutRequest{Items: []dto.CheckoutItemRequest{{ProductID: 3, Quantity: 2}}})
	resp := performRequest(t, http.MethodPost, "/orders", NewOrderHandler(facade).Checkout, asUser(7), body, jsonHeaders())
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", resp.Code)
	}

	var payload dto.OrderResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload.OrderNumber != "SPEETI-00042" {
		t.Fatalf("expected synthesized display number, got %q", payload.OrderNumber)
	}
	if payload.Status != "pending" {
		t.Fatalf("unexpected status %q", payload.Status)
	}
}

func TestOrderHandlerCheckoutErrors(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{name: "empty", err: domainErrors.ErrEmptyOrder, want: http.StatusUnprocessableEntity},
		{name: "quantity", err: domainErrors.ErrInvalidQuantity, want: http.StatusUnprocessableEntity},
		{name: "missing product", err: domainErrors.ErrNotFound, want: http.StatusUnprocessableEntity},
		{name: "internal", err: context.DeadlineExceeded, want: http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			facade := testhelpers.OrderFacadeStub{CheckoutFn: func(context.Context, int64, *int64, string, []usecase.CheckoutItem) (*model.Order, error) {
				return nil, tc.err
			}}
			body, _ := json.Marshal(dto.CheckoutRequest{Items: []dto.CheckoutItemRequest{{ProductID: 1, Quantity: 1}}})
			resp := performRequest(t, http.MethodPost, "/orders", NewOrderHandler(facade).Checkout, asUser(7), body, jsonHeaders())
			if resp.Code != tc.want {
				t.Fatalf("expected status %d, got %d", tc.want, resp.Code)
			}
		})
	}

	resp := performRequest(t, http.MethodPost, "/orders", NewOrderHandler(testhelpers.OrderFacadeStub{}).Checkout, asUser(7), []byte("{broken"), jsonHeaders())
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed body, got %d", resp.Code)
	}
}

func TestOrderHandlerList(t *testing.T) {
	facade := testhelpers.OrderFacadeStub{OrdersFn: func(ctx context.Context, userID int64) ([]model.Order, error) {
		return []model.Order{{ID: 1, Number: "SPT-1", Status: model.OrderStatusDelivered, Total: 12, CreatedAt: time.Unix(0, 0)}}, nil
	}}
	resp := performRequest(t, http.MethodGet, "/orders", NewOrderHandler(facade).List, asUser(7), nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}

	var payload []dto.OrderResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(payload) != 1 || payload[0].OrderNumber != "SPT-1" {
		t.Fatalf("unexpected payload: %+v", payload)
	}

	empty := testhelpers.OrderFacadeStub{OrdersFn: func(context.Context, int64) ([]model.Order, error) {
		return nil, nil
	}}
	resp = performRequest(t, http.MethodGet, "/orders", NewOrderHandler(empty).List, asUser(7), nil, nil)
	if resp.Code != http.StatusNoContent {
		t.Fatalf("expected 204 for empty list, got %d", resp.Code)
	}
}

func TestOrderHandlerUpdateStatus(t *testing.T) {
	var gotID int64
	var gotStatus model.OrderStatus
	facade := testhelpers.OrderFacadeStub{UpdateStatusFn: func(ctx context.Context, orderID int64, status model.OrderStatus) error {
		gotID = orderID
		gotStatus = status
		return nil
	}}
	body, _ := json.Marshal(dto.UpdateStatusRequest{Status: "confirmed"})
	resp := performRouteRequest(t, http.MethodPatch, "/orders/:id/status", "/orders/5/status", NewOrderHandler(facade).UpdateStatus, nil, body, jsonHeaders())
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	if gotID != 5 || gotStatus != model.OrderStatusConfirmed {
		t.Fatalf("unexpected call: id=%d status=%s", gotID, gotStatus)
	}

	cases := []struct {
		name string
		err  error
		want int
	}{
		{name: "unknown status", err: domainErrors.ErrUnknownStatus, want: http.StatusUnprocessableEntity},
		{name: "bad transition", err: domainErrors.ErrInvalidStatusTransition, want: http.StatusConflict},
		{name: "missing order", err: domainErrors.ErrNotFound, want: http.StatusNotFound},
		{name: "internal", err: context.DeadlineExceeded, want: http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			failing := testhelpers.OrderFacadeStub{UpdateStatusFn: func(context.Context, int64, model.OrderStatus) error {
				return tc.err
			}}
			resp := performRouteRequest(t, http.MethodPatch, "/orders/:id/status", "/orders/5/status", NewOrderHandler(failing).UpdateStatus, nil, body, jsonHeaders())
			if resp.Code != tc.want {
				t.Fatalf("expected status %d, got %d", tc.want, resp.Code)
			}
		})
	}

	resp = performRouteRequest(t, http.MethodPatch, "/orders/:id/status", "/orders/abc/status", NewOrderHandler(facade).UpdateStatus, nil, body, jsonHeaders())
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for non-numeric id, got %d", resp.Code)
	}
}

func TestTrackingHandlerNotFound(t *testing.T) {
	facade := testhelpers.TrackingFacadeStub{TrackFn: func(context.Context, string, model.TrackingCredentials) (*model.TrackingResult, error) {
		return nil, domainErrors.ErrNotFound
	}}
	resp := performRouteRequest(t, http.MethodGet, "/track/:reference", "/track/SPEETI-00007", NewTrackingHandler(facade).Track, nil, nil, nil)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", resp.Code)
	}
	var payload map[string]string
	if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload["error"] != "order not found" {
		t.Fatalf("expected generic message, got %q", payload["error"])
	}
}

func TestTrackingHandlerVerificationPrompt(t *testing.T) {
	facade := testhelpers.TrackingFacadeStub{TrackFn: func(ctx context.Context, reference string, creds model.TrackingCredentials) (*model.TrackingResult, error) {
		if reference != "SPEETI-00042" {
			t.Fatalf("unexpected reference %q", reference)
		}
		if creds.Token != "wrong" {
			t.Fatalf("token query parameter not forwarded: %q", creds.Token)
		}
		return &model.TrackingResult{
			RequiresVerification: true,
			OrderNumber:          "SPEETI-00042",
			Message:              "bitte bestätigen",
		}, nil
	}}
	resp := performRouteRequest(t, http.MethodGet, "/track/:reference", "/track/SPEETI-00042?token=wrong", NewTrackingHandler(facade).Track, nil, nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}

	var payload dto.VerificationResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !payload.RequiresVerification || payload.OrderNumber != "SPEETI-00042" {
		t.Fatalf("unexpected payload: %+v", payload)
	}
	if bytes.Contains(resp.Body.Bytes(), []byte("items")) {
		t.Fatalf("verification prompt must not leak order details: %s", resp.Body.String())
	}
}

func TestTrackingHandlerVerified(t *testing.T) {
	view := &model.TrackingView{
		OrderNumber: "SPEETI-00042",
		Status:      model.OrderStatusDelivering,
		StatusInfo:  model.StatusInfo(model.OrderStatusDelivering),
		Total:       23.5,
		DeliveryFee: 2.9,
		Address: &model.TrackingAddress{
			Street: "Hauptstraße", HouseNumber: "12a", PostalCode: "10115", City: "Berlin",
		},
		CustomerName: "Max",
		Items: []model.TrackingItem{
			{Name: "Milch", ImageURL: "milch.jpg", Quantity: 2, UnitPrice: 1.19},
		},
		CreatedAt: time.Unix(0, 0),
		Timeline:  model.ComputeTimeline(model.OrderStatusDelivering),
	}
	facade := testhelpers.TrackingFacadeStub{TrackFn: func(context.Context, string, model.TrackingCredentials) (*model.TrackingResult, error) {
		return &model.TrackingResult{Verified: true, OrderNumber: view.OrderNumber, View: view}, nil
	}}

	resp := performRouteRequest(t, http.MethodGet, "/track/:reference", "/track/42?email=user@x.com", NewTrackingHandler(facade).Track, nil, nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}

	var payload dto.TrackingResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !payload.Verified || payload.OrderNumber != "SPEETI-00042" {
		t.Fatalf("unexpected payload: %+v", payload)
	}
	if payload.Address == nil || payload.Address.PLZ != "10115" {
		t.Fatalf("plz field missing: %+v", payload.Address)
	}
	if len(payload.Timeline) != 6 {
		t.Fatalf("expected 6 timeline entries, got %d", len(payload.Timeline))
	}
	if payload.StatusInfo.Step != 5 {
		t.Fatalf("unexpected status info: %+v", payload.StatusInfo)
	}
	if len(payload.Items) != 1 || payload.Items[0].Price != 1.19 {
		t.Fatalf("unexpected items: %+v", payload.Items)
	}
}

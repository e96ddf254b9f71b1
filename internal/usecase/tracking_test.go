package usecase_test

import (
	"context"
	"testing"
	"time"

	domainErrors "github.com/speeti/speeti/internal/domain/errors"
	"github.com/speeti/speeti/internal/domain/model"
	testhelpers "github.com/speeti/speeti/internal/test"
	. "github.com/speeti/speeti/internal/usecase"
)

func newTrackingFixture() (*TrackingUseCase, *testhelpers.OrderRepositoryStub) {
	addressID := int64(3)
	orders := &testhelpers.OrderRepositoryStub{
		Orders: []model.Order{{
			ID:          42,
			UserID:      7,
			AddressID:   &addressID,
			Status:      model.OrderStatusDelivering,
			Total:       23.50,
			DeliveryFee: 2.90,
			AccessToken: "secret-token",
			CreatedAt:   time.Unix(1700000000, 0),
		}},
		Items: map[int64][]model.OrderItem{
			42: {{OrderID: 42, ProductID: 1, Name: "Milch", ImageURL: "milch.jpg", Quantity: 2, UnitPrice: 1.19}},
		},
	}

	users := testhelpers.NewUserRepositoryStub()
	users.ByID[7] = &model.User{ID: 7, Email: "user@x.com", FirstName: "Max", LastName: "Mustermann"}

	addresses := &testhelpers.AddressRepositoryStub{Addresses: map[int64]*model.Address{
		3: {ID: 3, Street: "Hauptstraße", HouseNumber: "12a", PostalCode: "10115", City: "Berlin"},
	}}

	return NewTrackingUseCase(orders, users, addresses), orders
}

func TestTrackingUseCaseNotFound(t *testing.T) {
	uc, _ := newTrackingFixture()

	if _, err := uc.Track(context.Background(), "SPEETI-00007", model.TrackingCredentials{}); err != domainErrors.ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := uc.Track(context.Background(), "   ", model.TrackingCredentials{}); err != domainErrors.ErrNotFound {
		t.Fatalf("blank reference must be not found, got %v", err)
	}
}

func TestTrackingUseCaseRequiresVerification(t *testing.T) {
	uc, _ := newTrackingFixture()

	result, err := uc.Track(context.Background(), "SPEETI-00042", model.TrackingCredentials{})
	if err != nil {
		t.Fatalf("track returned error: %v", err)
	}
	if !result.RequiresVerification || result.Verified {
		t.Fatalf("missing credentials must yield a verification prompt: %+v", result)
	}
	if result.OrderNumber != "SPEETI-00042" {
		t.Fatalf("prompt discloses display number only, got %q", result.OrderNumber)
	}
	if result.Message == "" {
		t.Fatalf("prompt should carry a customer-facing message")
	}
	if result.View != nil {
		t.Fatalf("prompt must not carry order details")
	}
}

func TestTrackingUseCaseWrongCredentials(t *testing.T) {
	uc, _ := newTrackingFixture()

	result, err := uc.Track(context.Background(), "42", model.TrackingCredentials{Token: "wrong", Email: "other@x.com"})
	if err != nil {
		t.Fatalf("track returned error: %v", err)
	}
	if !result.RequiresVerification {
		t.Fatalf("wrong credentials must not disclose the order")
	}
}

func TestTrackingUseCaseTokenAccess(t *testing.T) {
	uc, _ := newTrackingFixture()

	result, err := uc.Track(context.Background(), "SPEETI-00042", model.TrackingCredentials{Token: "secret-token"})
	if err != nil {
		t.Fatalf("track returned error: %v", err)
	}
	if !result.Verified || result.View == nil {
		t.Fatalf("exact token must disclose the order: %+v", result)
	}

	view := result.View
	if view.CustomerName != "Max" {
		t.Fatalf("view discloses first name only, got %q", view.CustomerName)
	}
	if view.Address == nil || view.Address.PostalCode != "10115" {
		t.Fatalf("address missing from view: %+v", view.Address)
	}
	if len(view.Items) != 1 || view.Items[0].UnitPrice != 1.19 {
		t.Fatalf("item snapshot missing: %+v", view.Items)
	}
	if len(view.Timeline) != 6 {
		t.Fatalf("expected 6 timeline entries, got %d", len(view.Timeline))
	}
	if view.StatusInfo.Step != 5 {
		t.Fatalf("delivering maps to step 5, got %d", view.StatusInfo.Step)
	}
}

func TestTrackingUseCaseEmailAccessCaseInsensitive(t *testing.T) {
	uc, _ := newTrackingFixture()

	result, err := uc.Track(context.Background(), "42", model.TrackingCredentials{Email: "USER@X.COM"})
	if err != nil {
		t.Fatalf("track returned error: %v", err)
	}
	if !result.Verified {
		t.Fatalf("email match is case-insensitive")
	}
}

func TestTrackingUseCaseSubstringLookup(t *testing.T) {
	uc, orders := newTrackingFixture()
	orders.Orders = append(orders.Orders, model.Order{ID: 142, UserID: 7, Status: model.OrderStatusPending})

	result, err := uc.Track(context.Background(), "4", model.TrackingCredentials{Email: "user@x.com"})
	if err != nil {
		t.Fatalf("track returned error: %v", err)
	}
	// "4" is contained in both "42" and "142"; the lowest id wins.
	if result.OrderNumber != "SPEETI-00042" {
		t.Fatalf("expected lowest-id match, got %q", result.OrderNumber)
	}
}

func TestTrackingUseCaseSnapshotPriceSurvivesCatalogChange(t *testing.T) {
	orders := &testhelpers.OrderRepositoryStub{}
	products := &testhelpers.ProductRepositoryStub{Products: []model.Product{
		{ID: 1, Name: "Milch", ImageURL: "milch.jpg", Price: 1.19},
	}}
	users := testhelpers.NewUserRepositoryStub()
	users.ByID[5] = &model.User{ID: 5, Email: "user@x.com", FirstName: "Max"}

	checkout := NewOrderUseCase(orders, products, testhelpers.TokenGeneratorStub{Token: "tok"}, 2.90, 39.0)
	order, err := checkout.Checkout(context.Background(), 5, nil, "", []CheckoutItem{{ProductID: 1, Quantity: 2}})
	if err != nil {
		t.Fatalf("checkout returned error: %v", err)
	}

	products.Products[0].Price = 1.49

	uc := NewTrackingUseCase(orders, users, &testhelpers.AddressRepositoryStub{})
	result, err := uc.Track(context.Background(), order.DisplayNumber(), model.TrackingCredentials{Token: "tok"})
	if err != nil {
		t.Fatalf("track returned error: %v", err)
	}
	if !result.Verified {
		t.Fatalf("expected verified view: %+v", result)
	}
	if len(result.View.Items) != 1 || result.View.Items[0].UnitPrice != 1.19 {
		t.Fatalf("catalog price change leaked into the recorded order: %+v", result.View.Items)
	}
	if result.View.Total != order.Total {
		t.Fatalf("total changed after catalog update: %v != %v", result.View.Total, order.Total)
	}
}

func TestTrackingUseCaseMissingAddressTolerated(t *testing.T) {
	uc, orders := newTrackingFixture()
	missing := int64(99)
	orders.Orders[0].AddressID = &missing

	result, err := uc.Track(context.Background(), "42", model.TrackingCredentials{Token: "secret-token"})
	if err != nil {
		t.Fatalf("a dangling address reference must not fail tracking: %v", err)
	}
	if result.View.Address != nil {
		t.Fatalf("expected nil address in view")
	}
}

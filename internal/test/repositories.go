package test

import (
	"context"
	"strconv"
	"strings"
	"time"

	domainErrors "github.com/speeti/speeti/internal/domain/errors"
	"github.com/speeti/speeti/internal/domain/model"
)

// UserRepositoryStub stores users in-memory for tests.
type UserRepositoryStub struct {
	Users map[string]*model.User
	ByID  map[int64]*model.User
	Next  int64
	Err   error
}

// NewUserRepositoryStub constructs stub repository with initialized maps.
func NewUserRepositoryStub() *UserRepositoryStub {
	return &UserRepositoryStub{
		Users: make(map[string]*model.User),
		ByID:  make(map[int64]*model.User),
		Next:  1,
	}
}

// Create registers user unless already exists or stub has explicit error.
func (s *UserRepositoryStub) Create(ctx context.Context, email, passwordHash, firstName, lastName string) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Users == nil {
		s.Users = make(map[string]*model.User)
	}
	if s.ByID == nil {
		s.ByID = make(map[int64]*model.User)
	}
	if _, exists := s.Users[email]; exists {
		return nil, domainErrors.ErrAlreadyExists
	}
	if s.Next == 0 {
		s.Next = 1
	}
	user := &model.User{ID: s.Next, Email: email, PasswordHash: passwordHash, FirstName: firstName, LastName: lastName}
	s.Next++
	s.Users[email] = user
	s.ByID[user.ID] = user
	return user, nil
}

// GetByEmail fetches user by email or returns not found.
func (s *UserRepositoryStub) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.Users[email]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// GetByID fetches user by identifier or returns not found.
func (s *UserRepositoryStub) GetByID(ctx context.Context, id int64) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.ByID[id]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// OrderCreateCall stores information about Create invocations.
type OrderCreateCall struct {
	Order *model.Order
	Items []model.OrderItem
}

// OrderUpdateCall stores information about UpdateStatus invocations.
type OrderUpdateCall struct {
	OrderID int64
	Status  model.OrderStatus
}

// OrderRepositoryStub allows tests to customize behaviour.
type OrderRepositoryStub struct {
	CreateFn          func(context.Context, *model.Order, []model.OrderItem) (*model.Order, error)
	GetByIDFn         func(context.Context, int64) (*model.Order, error)
	FindByReferenceFn func(context.Context, string, string) (*model.Order, error)
	ItemsByOrderFn    func(context.Context, int64) ([]model.OrderItem, error)
	ListByUserFn      func(context.Context, int64) ([]model.Order, error)
	UpdateStatusFn    func(context.Context, int64, model.OrderStatus) error
	SelectBatchFn     func(context.Context, int) ([]model.StatusNotification, error)

	Orders        []model.Order
	Items         map[int64][]model.OrderItem
	Notifications []model.StatusNotification
	Created       []OrderCreateCall
	UpdateCalls   []OrderUpdateCall
	Next          int64
}

// Create tracks invocations and returns stored order with identifiers set.
func (s *OrderRepositoryStub) Create(ctx context.Context, order *model.Order, items []model.OrderItem) (*model.Order, error) {
	s.Created = append(s.Created, OrderCreateCall{Order: order, Items: items})
	if s.CreateFn != nil {
		return s.CreateFn(ctx, order, items)
	}
	if s.Next == 0 {
		s.Next = 1
	}
	stored := *order
	stored.ID = s.Next
	stored.CreatedAt = time.Now()
	stored.UpdatedAt = stored.CreatedAt
	s.Next++
	s.Orders = append(s.Orders, stored)
	if s.Items == nil {
		s.Items = make(map[int64][]model.OrderItem)
	}
	s.Items[stored.ID] = items
	return &stored, nil
}

// GetByID returns matched order either via override or stored slice.
func (s *OrderRepositoryStub) GetByID(ctx context.Context, id int64) (*model.Order, error) {
	if s.GetByIDFn != nil {
		return s.GetByIDFn(ctx, id)
	}
	for _, o := range s.Orders {
		if o.ID == id {
			order := o
			return &order, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// FindByReference mirrors the permissive lookup over the stored slice: exact
// order number, exact id, or substring of the stringified id, first by
// ascending id.
func (s *OrderRepositoryStub) FindByReference(ctx context.Context, number, idCandidate string) (*model.Order, error) {
	if s.FindByReferenceFn != nil {
		return s.FindByReferenceFn(ctx, number, idCandidate)
	}
	var found *model.Order
	for i := range s.Orders {
		o := s.Orders[i]
		idText := strconv.FormatInt(o.ID, 10)
		match := o.Number == number ||
			(idCandidate != "" && (idText == idCandidate || strings.Contains(idText, idCandidate)))
		if match && (found == nil || o.ID < found.ID) {
			order := o
			found = &order
		}
	}
	if found == nil {
		return nil, domainErrors.ErrNotFound
	}
	return found, nil
}

// ItemsByOrder returns stored item snapshots.
func (s *OrderRepositoryStub) ItemsByOrder(ctx context.Context, orderID int64) ([]model.OrderItem, error) {
	if s.ItemsByOrderFn != nil {
		return s.ItemsByOrderFn(ctx, orderID)
	}
	return s.Items[orderID], nil
}

// ListByUser returns orders from configured slice.
func (s *OrderRepositoryStub) ListByUser(ctx context.Context, userID int64) ([]model.Order, error) {
	if s.ListByUserFn != nil {
		return s.ListByUserFn(ctx, userID)
	}
	out := make([]model.Order, 0, len(s.Orders))
	for _, o := range s.Orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out, nil
}

// UpdateStatus records update invocations and applies them to stored orders.
func (s *OrderRepositoryStub) UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error {
	if s.UpdateStatusFn != nil {
		return s.UpdateStatusFn(ctx, orderID, status)
	}
	s.UpdateCalls = append(s.UpdateCalls, OrderUpdateCall{OrderID: orderID, Status: status})
	for i := range s.Orders {
		if s.Orders[i].ID == orderID {
			s.Orders[i].Status = status
			return nil
		}
	}
	return domainErrors.ErrNotFound
}

// SelectBatchForNotification returns queued notifications.
func (s *OrderRepositoryStub) SelectBatchForNotification(ctx context.Context, limit int) ([]model.StatusNotification, error) {
	if s.SelectBatchFn != nil {
		return s.SelectBatchFn(ctx, limit)
	}
	return s.Notifications, nil
}

// ProductRepositoryStub serves a fixed catalog slice.
type ProductRepositoryStub struct {
	GetByIDsFn func(context.Context, []int64) ([]model.Product, error)
	Products   []model.Product
	Err        error
}

// GetByIDs returns catalog entries matching requested identifiers.
func (s *ProductRepositoryStub) GetByIDs(ctx context.Context, ids []int64) ([]model.Product, error) {
	if s.GetByIDsFn != nil {
		return s.GetByIDsFn(ctx, ids)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	out := make([]model.Product, 0, len(ids))
	for _, id := range ids {
		for _, p := range s.Products {
			if p.ID == id {
				out = append(out, p)
			}
		}
	}
	return out, nil
}

// AddressRepositoryStub serves stored delivery addresses.
type AddressRepositoryStub struct {
	GetByIDFn func(context.Context, int64) (*model.Address, error)
	Addresses map[int64]*model.Address
	Err       error
}

// GetByID fetches the address or returns not found.
func (s *AddressRepositoryStub) GetByID(ctx context.Context, id int64) (*model.Address, error) {
	if s.GetByIDFn != nil {
		return s.GetByIDFn(ctx, id)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	if addr, ok := s.Addresses[id]; ok {
		return addr, nil
	}
	return nil, domainErrors.ErrNotFound
}

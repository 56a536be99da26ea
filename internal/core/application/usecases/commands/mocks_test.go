package commands_test

import (
	"context"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/domain/model/assignment"
	"marketplace/internal/core/domain/model/cart"
	"marketplace/internal/core/domain/model/coupon"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/pricing"
	"marketplace/internal/core/domain/model/rider"
	"marketplace/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

// Shared test doubles for the command handlers. Repository and unit of work
// mocks record expectations; the outbound collaborators that handlers only
// read from (locations, charges, locker) are plain stubs.

type MockCartRepository struct{ mock.Mock }

func (m *MockCartRepository) Add(ctx context.Context, c *cart.Cart) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}
func (m *MockCartRepository) Update(ctx context.Context, c *cart.Cart) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}
func (m *MockCartRepository) Get(ctx context.Context, id kernel.UUID) (*cart.Cart, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cart.Cart), args.Error(1)
}
func (m *MockCartRepository) GetByCustomer(ctx context.Context, customerID kernel.UUID) (*cart.Cart, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cart.Cart), args.Error(1)
}

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}
func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}
func (m *MockOrderRepository) UpdateGuarded(ctx context.Context, o *order.Order, expectedStatus order.Status, expectedDeliveryStatus order.DeliveryStatus) error {
	args := m.Called(ctx, o, expectedStatus, expectedDeliveryStatus)
	return args.Error(0)
}
func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}
func (m *MockOrderRepository) GetAllUnassigned(ctx context.Context) ([]*order.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

type MockAssignmentRepository struct{ mock.Mock }

func (m *MockAssignmentRepository) Add(ctx context.Context, a *assignment.Assignment) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}
func (m *MockAssignmentRepository) UpdateGuarded(ctx context.Context, a *assignment.Assignment, expectedStatus assignment.Status) error {
	args := m.Called(ctx, a, expectedStatus)
	return args.Error(0)
}
func (m *MockAssignmentRepository) Get(ctx context.Context, id kernel.UUID) (*assignment.Assignment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*assignment.Assignment), args.Error(1)
}
func (m *MockAssignmentRepository) GetByOrder(ctx context.Context, orderID kernel.UUID) ([]*assignment.Assignment, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*assignment.Assignment), args.Error(1)
}
func (m *MockAssignmentRepository) GetTakenByOrder(ctx context.Context, orderID kernel.UUID) (*assignment.Assignment, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*assignment.Assignment), args.Error(1)
}
func (m *MockAssignmentRepository) GetOpenByRider(ctx context.Context, riderID kernel.UUID) (*assignment.Assignment, error) {
	args := m.Called(ctx, riderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*assignment.Assignment), args.Error(1)
}
func (m *MockAssignmentRepository) GetPendingByRider(ctx context.Context, riderID kernel.UUID) ([]*assignment.Assignment, error) {
	args := m.Called(ctx, riderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*assignment.Assignment), args.Error(1)
}
func (m *MockAssignmentRepository) CancelPendingSiblings(ctx context.Context, orderID, winnerID kernel.UUID) error {
	args := m.Called(ctx, orderID, winnerID)
	return args.Error(0)
}

func (m *MockAssignmentRepository) CancelPendingByOrder(ctx context.Context, orderID kernel.UUID) error {
	args := m.Called(ctx, orderID)
	return args.Error(0)
}

type MockRiderRepository struct{ mock.Mock }

func (m *MockRiderRepository) Add(ctx context.Context, r *rider.Rider) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}
func (m *MockRiderRepository) Update(ctx context.Context, r *rider.Rider) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}
func (m *MockRiderRepository) Get(ctx context.Context, id kernel.UUID) (*rider.Rider, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*rider.Rider), args.Error(1)
}
func (m *MockRiderRepository) GetAllLocated(ctx context.Context) ([]*rider.Rider, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*rider.Rider), args.Error(1)
}

type MockCouponRepository struct{ mock.Mock }

func (m *MockCouponRepository) GetByCode(ctx context.Context, code string) (*coupon.Coupon, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*coupon.Coupon), args.Error(1)
}

// txMock embeds the shared Begin/Commit/Rollback recording.
type txMock struct{ mock.Mock }

func (m *txMock) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *txMock) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *txMock) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type MockCartUoW struct{ txMock }

func (m *MockCartUoW) CartRepository() ports.CartRepository {
	return m.Called().Get(0).(ports.CartRepository)
}
func (m *MockCartUoW) CouponRepository() ports.CouponRepository {
	return m.Called().Get(0).(ports.CouponRepository)
}

type MockCartUoWFactory struct{ mock.Mock }

func (m *MockCartUoWFactory) Create() commands.CartUoW {
	return m.Called().Get(0).(commands.CartUoW)
}

type MockCheckoutUoW struct{ txMock }

func (m *MockCheckoutUoW) CartRepository() ports.CartRepository {
	return m.Called().Get(0).(ports.CartRepository)
}
func (m *MockCheckoutUoW) OrderRepository() ports.OrderRepository {
	return m.Called().Get(0).(ports.OrderRepository)
}
func (m *MockCheckoutUoW) CouponRepository() ports.CouponRepository {
	return m.Called().Get(0).(ports.CouponRepository)
}

type MockCheckoutUoWFactory struct{ mock.Mock }

func (m *MockCheckoutUoWFactory) Create() commands.CheckoutUoW {
	return m.Called().Get(0).(commands.CheckoutUoW)
}

type MockOrderUoW struct{ txMock }

func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	return m.Called().Get(0).(ports.OrderRepository)
}
func (m *MockOrderUoW) AssignmentRepository() ports.AssignmentRepository {
	return m.Called().Get(0).(ports.AssignmentRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	return m.Called().Get(0).(commands.OrderUoW)
}

type MockDispatchUoW struct{ txMock }

func (m *MockDispatchUoW) OrderRepository() ports.OrderRepository {
	return m.Called().Get(0).(ports.OrderRepository)
}
func (m *MockDispatchUoW) AssignmentRepository() ports.AssignmentRepository {
	return m.Called().Get(0).(ports.AssignmentRepository)
}
func (m *MockDispatchUoW) RiderRepository() ports.RiderRepository {
	return m.Called().Get(0).(ports.RiderRepository)
}

type MockDispatchUoWFactory struct{ mock.Mock }

func (m *MockDispatchUoWFactory) Create() commands.DispatchUoW {
	return m.Called().Get(0).(commands.DispatchUoW)
}

type MockDeliveryUoW struct{ txMock }

func (m *MockDeliveryUoW) OrderRepository() ports.OrderRepository {
	return m.Called().Get(0).(ports.OrderRepository)
}
func (m *MockDeliveryUoW) AssignmentRepository() ports.AssignmentRepository {
	return m.Called().Get(0).(ports.AssignmentRepository)
}

type MockDeliveryUoWFactory struct{ mock.Mock }

func (m *MockDeliveryUoWFactory) Create() commands.DeliveryUoW {
	return m.Called().Get(0).(commands.DeliveryUoW)
}

type MockRiderUoW struct{ txMock }

func (m *MockRiderUoW) RiderRepository() ports.RiderRepository {
	return m.Called().Get(0).(ports.RiderRepository)
}

type MockRiderUoWFactory struct{ mock.Mock }

func (m *MockRiderUoWFactory) Create() commands.RiderUoW {
	return m.Called().Get(0).(commands.RiderUoW)
}

type MockRiderLocationUoW struct{ txMock }

func (m *MockRiderLocationUoW) RiderRepository() ports.RiderRepository {
	return m.Called().Get(0).(ports.RiderRepository)
}
func (m *MockRiderLocationUoW) AssignmentRepository() ports.AssignmentRepository {
	return m.Called().Get(0).(ports.AssignmentRepository)
}
func (m *MockRiderLocationUoW) OrderRepository() ports.OrderRepository {
	return m.Called().Get(0).(ports.OrderRepository)
}

type MockRiderLocationUoWFactory struct{ mock.Mock }

func (m *MockRiderLocationUoWFactory) Create() commands.RiderLocationUoW {
	return m.Called().Get(0).(commands.RiderLocationUoW)
}

type MockPaymentGateway struct{ mock.Mock }

func (m *MockPaymentGateway) Capture(ctx context.Context, orderID kernel.UUID, amount float64) error {
	args := m.Called(ctx, orderID, amount)
	return args.Error(0)
}

type MockEventPublisher struct{ mock.Mock }

func (m *MockEventPublisher) OrderCreated(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}
func (m *MockEventPublisher) OrderStatusChanged(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}
func (m *MockEventPublisher) AssignmentAccepted(ctx context.Context, a *assignment.Assignment) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

type MockMenuCatalog struct{ mock.Mock }

func (m *MockMenuCatalog) GetItem(ctx context.Context, menuItemRef kernel.UUID) (ports.MenuItem, error) {
	args := m.Called(ctx, menuItemRef)
	return args.Get(0).(ports.MenuItem), args.Error(1)
}

// stubLocker hands the lock out immediately and counts releases.
type stubLocker struct{ released int }

func (l *stubLocker) Acquire(_ context.Context, _ kernel.UUID) (func(), error) {
	return func() { l.released++ }, nil
}

// stubLocations resolves every party to a fixed point so pricing distances
// are deterministic in tests.
type stubLocations struct {
	restaurant kernel.GeoPoint
	customer   kernel.GeoPoint
	address    kernel.GeoPoint
}

func (s *stubLocations) RestaurantLocation(_ context.Context, _ kernel.UUID) (kernel.GeoPoint, error) {
	return s.restaurant, nil
}
func (s *stubLocations) CustomerLocation(_ context.Context, _ kernel.UUID) (kernel.GeoPoint, error) {
	return s.customer, nil
}
func (s *stubLocations) AddressLocation(_ context.Context, _ kernel.UUID) (kernel.GeoPoint, error) {
	return s.address, nil
}

type stubCharges struct{ cfg pricing.ChargeConfig }

func (s *stubCharges) Current(_ context.Context) (pricing.ChargeConfig, error) {
	return s.cfg, nil
}

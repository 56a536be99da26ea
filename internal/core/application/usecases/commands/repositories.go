// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"marketplace/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// Each handler depends on the narrowest interface covering the repositories it
// touches, keeping test doubles small and intent explicit.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// CartRepoFactory provides access to the cart repository within a transaction.
	CartRepoFactory interface {
		CartRepository() ports.CartRepository
	}

	// OrderRepoFactory provides access to the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// AssignmentRepoFactory provides access to the assignment repository within a transaction.
	AssignmentRepoFactory interface {
		AssignmentRepository() ports.AssignmentRepository
	}

	// RiderRepoFactory provides access to the rider repository within a transaction.
	RiderRepoFactory interface {
		RiderRepository() ports.RiderRepository
	}

	// CouponRepoFactory provides access to the coupon repository within a transaction.
	CouponRepoFactory interface {
		CouponRepository() ports.CouponRepository
	}

	// CartUoW manages transactions for cart mutations, which also read
	// coupons during pricing.
	CartUoW interface {
		TxManager
		CartRepoFactory
		CouponRepoFactory
	}

	// CartUoWFactory creates new cart unit of work instances.
	CartUoWFactory interface {
		Create() CartUoW
	}

	// CheckoutUoW manages the checkout transaction: the cart is cleared and
	// the order created atomically, with the coupon re-validated inside.
	CheckoutUoW interface {
		TxManager
		CartRepoFactory
		OrderRepoFactory
		CouponRepoFactory
	}

	// CheckoutUoWFactory creates new checkout unit of work instances.
	CheckoutUoWFactory interface {
		Create() CheckoutUoW
	}

	// OrderUoW manages transactions for order decisions. A rejection or
	// cancellation also sweeps the order's open assignment offers, so the
	// offers travel in the same transaction as the status write.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
		AssignmentRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// DispatchUoW manages the dispatch transaction across orders, riders
	// and the assignment offers being created.
	DispatchUoW interface {
		TxManager
		OrderRepoFactory
		AssignmentRepoFactory
		RiderRepoFactory
	}

	// DispatchUoWFactory creates new dispatch unit of work instances.
	DispatchUoWFactory interface {
		Create() DispatchUoW
	}

	// DeliveryUoW manages transactions that advance an assignment and its
	// order together: acceptance races and rider-side status updates.
	DeliveryUoW interface {
		TxManager
		OrderRepoFactory
		AssignmentRepoFactory
	}

	// DeliveryUoWFactory creates new delivery unit of work instances.
	DeliveryUoWFactory interface {
		Create() DeliveryUoW
	}

	// RiderUoW manages transactions for rider-only operations.
	RiderUoW interface {
		TxManager
		RiderRepoFactory
	}

	// RiderUoWFactory creates new rider unit of work instances.
	RiderUoWFactory interface {
		Create() RiderUoW
	}

	// RiderLocationUoW manages location updates, which also refresh the
	// pickup distances of the rider's still-pending offers.
	RiderLocationUoW interface {
		TxManager
		RiderRepoFactory
		AssignmentRepoFactory
		OrderRepoFactory
	}

	// RiderLocationUoWFactory creates new rider location unit of work instances.
	RiderLocationUoWFactory interface {
		Create() RiderLocationUoW
	}
)

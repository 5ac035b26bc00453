// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS split.
// All commands follow a consistent pattern: validation, authorization through
// the acting worker's grants, transaction management, and persistence.
//
// No handler ever retries a failed workflow transition: a denied permission,
// a lost claim, or an illegal transition is surfaced to the caller untouched.
// Only transient storage failures are retried, with a bounded backoff, and
// each retry re-reads current state inside a fresh transaction.
package commands

import (
	"context"

	"workshop/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// Each handler depends on the narrowest combination it needs.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// WorkerRepoFactory provides access to the worker repository within a transaction.
	WorkerRepoFactory interface {
		WorkerRepository() ports.WorkerRepository
	}

	// ProductRepoFactory provides access to the product repository within a transaction.
	ProductRepoFactory interface {
		ProductRepository() ports.ProductRepository
	}

	// StepUoW manages transactions for step workflow operations
	// (start, complete, notes, block/unblock): the acting worker is read for
	// authorization and the owning order is mutated.
	StepUoW interface {
		TxManager
		OrderRepoFactory
		WorkerRepoFactory
	}

	// StepUoWFactory creates new step unit of work instances.
	StepUoWFactory interface {
		Create() StepUoW
	}

	// OrderUoW manages transactions for order creation: workers for
	// authorization, products for template expansion, orders for persistence.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
		WorkerRepoFactory
		ProductRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}
)

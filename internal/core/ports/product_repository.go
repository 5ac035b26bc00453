package ports

import (
	"context"

	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/core/domain/model/product"
)

// ProductRepository defines the persistence contract for products and their
// step templates.
type ProductRepository interface {
	// Add persists a new product with its template steps.
	Add(ctx context.Context, aggregate *product.Product) error

	// Get retrieves a product by its unique identifier, template included.
	Get(ctx context.Context, id kernel.UUID) (*product.Product, error)

	// GetAll retrieves the products referenced by the given identifiers,
	// keyed by product ID. Missing products are simply absent from the map.
	GetAll(ctx context.Context, ids []kernel.UUID) (map[kernel.UUID]*product.Product, error)
}

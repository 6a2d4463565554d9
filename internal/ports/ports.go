// Package ports defines interfaces for external dependencies.
// Ports are contracts that adapters implement, allowing the application layer
// to depend on abstractions rather than concrete implementations.
//
// Port Design Principles:
//   - Context as first parameter (always) for cancellation and deadlines
//   - Return domain types, never external DTOs or infrastructure types
//   - Error returns use domain error types (ErrNotFound, ErrUnavailable, etc.)
package ports

import (
	"context"

	"insquote/internal/domain"
)

// NameGenderClient resolves the likely gender of a first name through an
// external name-prediction service. It is the only network-bound dependency
// of the quoting pipeline.
//
// Implementations must respect context deadlines: a slow collaborator must
// never stall quoting. An inconclusive prediction returns
// domain.ErrInconclusive; transport failures return domain unavailable
// errors. Callers are expected to degrade to a fixed default on any error.
type NameGenderClient interface {
	// ResolveFirstName predicts the gender for a first name.
	ResolveFirstName(ctx context.Context, firstName string) (domain.Gender, error)
}

// QuoteStore persists computed quotes. The write is a single atomic row:
// partial quotes must never be observable to subsequent reads.
type QuoteStore interface {
	// Insert persists the quote and fills its store-assigned ID and
	// CreatedAt. The application layer wraps failures in a domain storage
	// error carrying the computed quote.
	Insert(ctx context.Context, quote *domain.Quote) error

	// GetByID retrieves a quote by its identifier.
	// Returns domain.ErrNotFound if the quote does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Quote, error)

	// List returns all quotes, newest first.
	List(ctx context.Context) ([]*domain.Quote, error)
}

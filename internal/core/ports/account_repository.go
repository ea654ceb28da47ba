package ports

import (
	"context"

	"github.com/identware/account-api/internal/core/domain"
)

// AccountRepository defines the persistence contract for account records.
// Email uniqueness must be enforced at the store (unique index); the service
// performs a check-then-write and relies on the store to win the race.
type AccountRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.Account, error)
	FindByID(ctx context.Context, id string) (*domain.Account, error)
	Insert(ctx context.Context, account *domain.Account) error
	// GetAll returns every account in store order (insertion order).
	GetAll(ctx context.Context) ([]domain.Account, error)
	// Delete removes the record if present; deleting an absent id is not an error.
	Delete(ctx context.Context, id string) error
}

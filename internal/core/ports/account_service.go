package ports

import (
	"context"

	"github.com/identware/account-api/internal/core/domain"
)

// AccountService defines the use-case operations of the identity core.
// Register and Login return a signed bearer token; DeleteByID returns a
// fixed confirmation message.
type AccountService interface {
	Register(ctx context.Context, name, email, password string) (string, error)
	Login(ctx context.Context, email, password string) (string, error)
	ListAll(ctx context.Context) ([]domain.Account, error)
	GetByID(ctx context.Context, token, targetID string) (*domain.Account, error)
	DeleteByID(ctx context.Context, token, targetID string) (string, error)
}

package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/identware/account-api/internal/core/domain"
	"github.com/identware/account-api/internal/core/ports"
)

const deletedMessage = "account deleted successfully"

// AccountService is the authentication and account-management core. It owns
// every policy decision (credential checks, token checks, who may act on
// which record) and delegates all I/O to the injected collaborators. It
// holds no state of its own, so it is safe for unbounded concurrent use.
type AccountService struct {
	repo   ports.AccountRepository
	ids    ports.IDGenerator
	hasher ports.PasswordHasher
	tokens ports.TokenCodec
	log    zerolog.Logger
}

func NewAccountService(
	repo ports.AccountRepository,
	ids ports.IDGenerator,
	hasher ports.PasswordHasher,
	tokens ports.TokenCodec,
	log zerolog.Logger,
) *AccountService {
	return &AccountService{repo: repo, ids: ids, hasher: hasher, tokens: tokens, log: log}
}

// Register creates a new account with the normal role and returns a signed
// session token for it. The duplicate-email check here is advisory; the
// repository's unique index is what wins a concurrent race on the same email.
func (s *AccountService) Register(ctx context.Context, name, email, password string) (string, error) {
	if name == "" {
		return "", domain.InvalidInput("'name' is required")
	}
	if email == "" {
		return "", domain.InvalidInput("'email' is required")
	}
	if password == "" {
		return "", domain.InvalidInput("'password' is required")
	}

	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return "", domain.ErrEmailExists
	} else if err != domain.ErrAccountNotFound {
		return "", fmt.Errorf("register: %w", err)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return "", fmt.Errorf("register: hash password: %w", err)
	}

	account := &domain.Account{
		ID:           s.ids.Generate(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         domain.RoleNormal,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.repo.Insert(ctx, account); err != nil {
		return "", err
	}

	token, err := s.tokens.CreateToken(claimsFor(account))
	if err != nil {
		return "", fmt.Errorf("register: sign token: %w", err)
	}

	s.log.Info().Str("account_id", account.ID).Msg("account registered")
	return token, nil
}

// Login verifies the credentials and issues a fresh token. Claims are always
// rebuilt from the stored record, so a role or name change elsewhere shows up
// in the very next token even though already-issued tokens stay frozen.
func (s *AccountService) Login(ctx context.Context, email, password string) (string, error) {
	if email == "" {
		return "", domain.InvalidInput("'email' is required")
	}
	if password == "" {
		return "", domain.InvalidInput("'password' is required")
	}

	account, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return "", err
	}

	if !s.hasher.Compare(password, account.PasswordHash) {
		return "", domain.ErrInvalidCredentials
	}

	token, err := s.tokens.CreateToken(claimsFor(account))
	if err != nil {
		return "", fmt.Errorf("login: sign token: %w", err)
	}

	s.log.Info().Str("account_id", account.ID).Msg("account logged in")
	return token, nil
}

// ListAll returns every account in store order. Restricting access to the
// listing is a transport-layer decision, not made here.
func (s *AccountService) ListAll(ctx context.Context) ([]domain.Account, error) {
	return s.repo.GetAll(ctx)
}

// GetByID returns the account identified by targetID. The caller must present
// a valid token whose subject is the target or holds the admin role.
func (s *AccountService) GetByID(ctx context.Context, token, targetID string) (*domain.Account, error) {
	claims, err := s.verifyToken(token)
	if err != nil {
		return nil, err
	}
	if err := authorize(claims, targetID); err != nil {
		return nil, err
	}

	return s.repo.FindByID(ctx, targetID)
}

// DeleteByID removes the account identified by targetID under the same
// admin-or-self policy as GetByID. Deleting an id that does not exist fails
// with domain.ErrAccountNotFound, which makes a repeated delete observable.
func (s *AccountService) DeleteByID(ctx context.Context, token, targetID string) (string, error) {
	claims, err := s.verifyToken(token)
	if err != nil {
		return "", err
	}
	if err := authorize(claims, targetID); err != nil {
		return "", err
	}

	if _, err := s.repo.FindByID(ctx, targetID); err != nil {
		return "", err
	}

	if err := s.repo.Delete(ctx, targetID); err != nil {
		return "", err
	}

	s.log.Info().Str("account_id", targetID).Str("actor_id", claims.ID).Msg("account deleted")
	return deletedMessage, nil
}

// verifyToken enforces token presence and validity before any store access.
func (s *AccountService) verifyToken(token string) (*domain.SessionClaims, error) {
	if token == "" {
		return nil, domain.InvalidInput("token absent")
	}
	claims, err := s.tokens.Payload(token)
	if err != nil {
		return nil, domain.InvalidInput("token invalid")
	}
	return claims, nil
}

// authorize binds the acting identity to the target: admins may act on any
// record, everyone else only on their own.
func authorize(claims *domain.SessionClaims, targetID string) error {
	if claims.Role != domain.RoleAdmin && claims.ID != targetID {
		return domain.ErrForbidden
	}
	return nil
}

// claimsFor projects an account to its token claims. Kept as an explicit
// mapping so the password hash can never ride along into a token.
func claimsFor(account *domain.Account) domain.SessionClaims {
	return domain.SessionClaims{
		ID:   account.ID,
		Name: account.Name,
		Role: account.Role,
	}
}

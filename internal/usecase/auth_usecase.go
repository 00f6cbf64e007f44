package usecase

import (
	"context"
	"strings"

	"github.com/iho/dairyledger/internal/domain"
	"github.com/iho/dairyledger/internal/infrastructure/metrics"
)

// AuthUseCase verifies credentials and issues session tokens.
type AuthUseCase struct {
	customerRepo CustomerRepository
	tokens       TokenIssuer
	metrics      *metrics.Metrics
}

// NewAuthUseCase creates a new AuthUseCase. m may be nil.
func NewAuthUseCase(customerRepo CustomerRepository, tokens TokenIssuer, m *metrics.Metrics) *AuthUseCase {
	return &AuthUseCase{
		customerRepo: customerRepo,
		tokens:       tokens,
		metrics:      m,
	}
}

// LoginInput represents login credentials.
type LoginInput struct {
	UserID   string
	Password string
}

// LoginResult carries the authenticated user and its session token.
type LoginResult struct {
	User  *domain.Customer
	Token string
}

// Login checks the user ID and password. Unknown users and wrong passwords
// both yield ErrUnauthorized.
func (uc *AuthUseCase) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	user, err := uc.customerRepo.GetByID(ctx, strings.TrimSpace(input.UserID))
	if err != nil {
		if isNotFound(err) {
			uc.record("failure")
			return nil, domain.ErrUnauthorized
		}
		return nil, err
	}

	if err := verifyPassword(user.PasswordHash, input.Password); err != nil {
		uc.record("failure")
		return nil, domain.ErrUnauthorized
	}

	token, err := uc.tokens.Generate(user.ID, user.Role)
	if err != nil {
		return nil, err
	}

	uc.record("success")
	return &LoginResult{User: withoutHash(user), Token: token}, nil
}

// EnsureAdminInput describes the bootstrap admin account.
type EnsureAdminInput struct {
	ID       string
	Name     string
	Password string
}

// EnsureAdmin creates the admin account when no admin exists yet. It reports
// whether an account was created.
func (uc *AuthUseCase) EnsureAdmin(ctx context.Context, input EnsureAdminInput) (bool, error) {
	count, err := uc.customerRepo.Count(ctx, domain.RoleAdmin)
	if err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}

	if err := domain.ValidatePassword(input.Password); err != nil {
		return false, err
	}

	hashedPassword, err := HashPassword(input.Password)
	if err != nil {
		return false, err
	}

	name := input.Name
	if name == "" {
		name = "Administrator"
	}

	admin := &domain.Customer{
		ID:           input.ID,
		Name:         name,
		PasswordHash: hashedPassword,
		Role:         domain.RoleAdmin,
	}
	if err := uc.customerRepo.Create(ctx, admin); err != nil {
		return false, err
	}
	return true, nil
}

func (uc *AuthUseCase) record(status string) {
	if uc.metrics != nil {
		uc.metrics.AuthAttempts.WithLabelValues(status).Inc()
	}
}

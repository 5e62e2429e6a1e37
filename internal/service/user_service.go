package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/ideaflow-api/internal/domain"
	"github.com/phrazzld/ideaflow-api/internal/platform/logger"
	"github.com/phrazzld/ideaflow-api/internal/service/auth"
	"github.com/phrazzld/ideaflow-api/internal/store"
)

// Account is a user together with today's generation usage.
type Account struct {
	User  *domain.User      `json:"user"`
	Quota domain.QuotaUsage `json:"quota"`
}

// UserService provides account operations.
type UserService interface {
	// Register creates a free-plan account. Returns store.ErrEmailExists when
	// the email is taken and domain validation errors for bad input.
	Register(ctx context.Context, email, password string) (*domain.User, error)

	// Authenticate returns the user matching email and password, or
	// ErrInvalidCredentials.
	Authenticate(ctx context.Context, email, password string) (*domain.User, error)

	// GetUser retrieves a user by ID.
	GetUser(ctx context.Context, userID uuid.UUID) (*domain.User, error)

	// GetAccount returns the user and today's generation usage. Usage is
	// reported as unlimited when no quota is configured or it cannot be read.
	GetAccount(ctx context.Context, userID uuid.UUID) (*Account, error)

	// ChangePlan switches the user's subscription plan.
	ChangePlan(ctx context.Context, userID uuid.UUID, plan domain.Plan) error
}

// UserServiceImpl implements UserService.
type UserServiceImpl struct {
	userStore store.UserStore
	hasher    auth.PasswordHasher
	verifier  auth.PasswordVerifier
	quota     QuotaChecker
	logger    *slog.Logger
}

var _ UserService = (*UserServiceImpl)(nil)

// NewUserService creates a UserService. quota may be nil.
func NewUserService(
	userStore store.UserStore,
	hasher auth.PasswordHasher,
	verifier auth.PasswordVerifier,
	quota QuotaChecker,
	logger *slog.Logger,
) *UserServiceImpl {
	if logger == nil {
		logger = slog.Default()
	}
	return &UserServiceImpl{
		userStore: userStore,
		hasher:    hasher,
		verifier:  verifier,
		quota:     quota,
		logger:    logger.With("component", "user_service"),
	}
}

// Register implements UserService.
func (s *UserServiceImpl) Register(ctx context.Context, email, password string) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := domain.NewUser(email, password)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		log.ErrorContext(ctx, "failed to hash password", "error", err)
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	user.HashedPassword = hash
	user.Password = ""

	if err := s.userStore.Create(ctx, user); err != nil {
		if errors.Is(err, store.ErrEmailExists) {
			log.DebugContext(ctx, "attempted to register an existing email")
		} else {
			log.ErrorContext(ctx, "failed to save user", "error", err)
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	log.InfoContext(ctx, "user registered", "user_id", user.ID)
	return user, nil
}

// Authenticate implements UserService.
func (s *UserServiceImpl) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.userStore.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		logger.FromContextOrDefault(ctx, s.logger).ErrorContext(ctx, "failed to load user for login", "error", err)
		return nil, fmt.Errorf("failed to authenticate user: %w", err)
	}

	if err := s.verifier.Compare(user.HashedPassword, password); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// GetUser implements UserService.
func (s *UserServiceImpl) GetUser(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	user, err := s.userStore.GetByID(ctx, userID)
	if err != nil {
		if !errors.Is(err, store.ErrUserNotFound) {
			logger.FromContextOrDefault(ctx, s.logger).ErrorContext(ctx, "failed to retrieve user",
				"error", err, "user_id", userID)
		}
		return nil, fmt.Errorf("failed to retrieve user: %w", err)
	}
	return user, nil
}

// GetAccount implements UserService.
func (s *UserServiceImpl) GetAccount(ctx context.Context, userID uuid.UUID) (*Account, error) {
	user, err := s.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	account := &Account{User: user}
	if s.quota == nil {
		return account, nil
	}

	usage, err := s.quota.Usage(ctx, userID, user.Plan)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).WarnContext(ctx, "failed to read quota usage",
			"error", err, "user_id", userID)
		return account, nil
	}
	account.Quota = usage
	return account, nil
}

// ChangePlan implements UserService.
func (s *UserServiceImpl) ChangePlan(ctx context.Context, userID uuid.UUID, plan domain.Plan) error {
	if !plan.IsValid() {
		return domain.ErrInvalidPlan
	}
	if err := s.userStore.UpdatePlan(ctx, userID, plan); err != nil {
		return fmt.Errorf("failed to change plan: %w", err)
	}
	logger.FromContextOrDefault(ctx, s.logger).InfoContext(ctx, "plan changed",
		"user_id", userID, "plan", plan)
	return nil
}

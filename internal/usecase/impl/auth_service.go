// Package impl contains the application-specific business rules implementations.
package impl

import (
	"context"
	"log/slog"

	deliverycontext "pfm/internal/delivery/context"
	"pfm/internal/domain/entity"
	domainerrors "pfm/internal/domain/errors"
	"pfm/internal/domain/repository"
	"pfm/internal/domain/service"
	"pfm/internal/usecase"

	"github.com/pkg/errors"
)

// authService implements the AuthUsecase interface.
type authService struct {
	txManager    repository.TransactionManager
	userRepo     repository.UserRepository
	hasher       service.PasswordHasher
	tokenService service.TokenService
	logger       *slog.Logger
}

// NewAuthService is the constructor for authService. It receives all dependencies as interfaces.
func NewAuthService(
	txManager repository.TransactionManager,
	userRepo repository.UserRepository,
	hasher service.PasswordHasher,
	tokenService service.TokenService,
	logger *slog.Logger,
) usecase.AuthUsecase {
	return &authService{
		txManager:    txManager,
		userRepo:     userRepo,
		hasher:       hasher,
		tokenService: tokenService,
		logger:       logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register creates a new account and issues its first token pair.
// The duplicate pre-check produces the friendly error; the unique index on
// users.email remains the source of truth and a constraint violation maps to
// the same error.
func (srv *authService) Register(ctx context.Context, input *usecase.RegisterInput) (*usecase.AuthOutput, error) {
	srv.log(ctx).Info("Starting registration", slog.String("email", input.Email))

	// Hash outside the transaction (bcrypt is CPU-bound).
	hashedPassword, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password during registration", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to hash password during registration")
	}

	var createdUser *entity.User
	var tokens *service.TokenPair

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		_, findErr := userRepo.FindByEmail(ctx, input.Email)
		if findErr == nil {
			return errors.Wrap(domainerrors.ErrEmailAlreadyExists, "registration rejected")
		}
		if !errors.Is(findErr, repository.ErrUserNotFound) {
			return errors.Wrap(findErr, "failed to check email existence")
		}

		newUser := &entity.User{
			Email:        input.Email,
			Name:         input.Name,
			PasswordHash: hashedPassword,
		}

		if createErr := userRepo.Create(ctx, newUser); createErr != nil {
			return errors.Wrap(createErr, "failed to create user during registration")
		}

		// Issue the pair inside the transaction so a signing failure rolls the
		// user creation back and the operation stays all-or-nothing.
		pair, issueErr := srv.tokenService.IssuePair(newUser.ID)
		if issueErr != nil {
			return errors.Wrap(issueErr, "failed to issue token pair during registration")
		}

		createdUser = newUser
		tokens = pair

		return nil
	})

	if err != nil {
		srv.log(ctx).Warn("Registration failed", slog.String("email", input.Email), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute registration transaction")
	}
	srv.log(ctx).Debug("Registration completed", slog.Any("user_id", createdUser.ID))

	return &usecase.AuthOutput{
		User:   usecase.NewUserOutput(createdUser),
		Tokens: tokens,
	}, nil
}

// Login verifies credentials and issues a fresh token pair.
// Unknown email and wrong password collapse into the same error so the API
// never reveals whether an address is registered.
func (srv *authService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.AuthOutput, error) {
	srv.log(ctx).Debug("Starting login", slog.String("email", input.Email))

	user, err := srv.userRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			srv.log(ctx).Warn("Login failed", slog.String("email", input.Email))

			return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "login failed")
		}

		return nil, errors.Wrap(err, "failed to find user by email")
	}

	// Check password outside any transaction (bcrypt is CPU-bound).
	if !srv.hasher.Check(input.Password, user.PasswordHash) {
		srv.log(ctx).Warn("Login failed", slog.String("email", input.Email))

		return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "login failed")
	}

	tokens, err := srv.tokenService.IssuePair(user.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to issue token pair during login")
	}
	srv.log(ctx).Debug("User logged in successfully", slog.Any("user_id", user.ID))

	return &usecase.AuthOutput{
		User:   usecase.NewUserOutput(user),
		Tokens: tokens,
	}, nil
}

// RefreshToken rotates a valid refresh token into a brand-new token pair.
// Both tokens are replaced, which bounds the blast radius of a leaked refresh
// token to its remaining lifetime. Previously issued tokens stay valid until
// natural expiry; there is no revocation list.
func (srv *authService) RefreshToken(ctx context.Context, input *usecase.RefreshTokenInput) (*usecase.RefreshTokenOutput, error) {
	srv.log(ctx).Debug("Attempting token refresh")

	claims, err := srv.tokenService.VerifyToken(input.RefreshToken)
	if err != nil {
		srv.log(ctx).Warn("Token refresh rejected", slog.Any("error", err))

		return nil, errors.Wrap(err, "invalid refresh token")
	}

	if claims.Type != service.TokenTypeRefresh {
		srv.log(ctx).Warn("Token refresh rejected: wrong token type", slog.String("type", claims.Type))

		return nil, errors.Wrap(domainerrors.ErrInvalidTokenType, "refresh requires a refresh token")
	}

	user, err := srv.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, errors.Wrap(domainerrors.ErrUserNotFound, "token subject no longer exists")
		}

		return nil, errors.Wrap(err, "failed to find user by id")
	}

	tokens, err := srv.tokenService.IssuePair(user.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to issue rotated token pair")
	}
	srv.log(ctx).Debug("Token pair rotated", slog.Any("user_id", user.ID))

	return &usecase.RefreshTokenOutput{Tokens: tokens}, nil
}

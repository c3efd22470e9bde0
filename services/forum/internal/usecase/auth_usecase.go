package usecase

import (
	"context"
	"errors"
	"fmt"

	"qa-forum/pkg/jwt"
	"qa-forum/pkg/logger"
	"qa-forum/services/forum/internal/entity"
	"qa-forum/services/forum/internal/repo/persistent"

	"golang.org/x/crypto/bcrypt"
)

type AuthUseCase interface {
	Register(ctx context.Context, in RegistrationInput) (*entity.User, error)
	Login(ctx context.Context, username, password string) (*entity.User, string, error)
	Logout(ctx context.Context, claims *jwt.Claims) error
	GetUser(ctx context.Context, userID uint) (*entity.User, error)
	DeleteUser(ctx context.Context, username string) error
}

type authUseCase struct {
	userRepo   persistent.UserRepository
	jwtService *jwt.Service
	denylist   jwt.Denylist
	logger     *logger.Logger
}

// NewAuthUseCase builds the identity use case. denylist may be nil, in which
// case logout only clears the client's session.
func NewAuthUseCase(
	userRepo persistent.UserRepository,
	jwtService *jwt.Service,
	denylist jwt.Denylist,
	logger *logger.Logger,
) AuthUseCase {
	return &authUseCase{
		userRepo:   userRepo,
		jwtService: jwtService,
		denylist:   denylist,
		logger:     logger,
	}
}

func (uc *authUseCase) Register(ctx context.Context, in RegistrationInput) (*entity.User, error) {
	in, verr := validateRegistration(in)

	if !verr.Has("email") {
		exists, err := uc.userRepo.EmailExists(ctx, in.Email)
		if err != nil {
			uc.logger.Error("Failed to check email uniqueness: %v", err)
			return nil, fmt.Errorf("check email: %w", err)
		}
		if exists {
			verr.Add("email", msgEmailInUse)
		}
	}

	if !verr.Has("username") {
		exists, err := uc.userRepo.UsernameExists(ctx, in.Username)
		if err != nil {
			uc.logger.Error("Failed to check username uniqueness: %v", err)
			return nil, fmt.Errorf("check username: %w", err)
		}
		if exists {
			verr.Add("username", msgUsernameTaken)
		}
	}

	if err := verr.Err(); err != nil {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		uc.logger.Error("Failed to hash password: %v", err)
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &entity.User{
		Username: in.Username,
		Email:    in.Email,
		Password: string(hashedPassword),
		IsActive: true,
	}

	if err := uc.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, persistent.ErrDuplicate) {
			// Lost a race with a concurrent sign-up for the same name or email.
			dup := entity.NewValidationError()
			dup.Add(entity.NonFieldErrors, "A user with that username or email already exists.")
			return nil, dup
		}
		uc.logger.Error("Failed to create user: %v", err)
		return nil, err
	}

	uc.logger.Info("Registered user %s (id=%d)", user.Username, user.ID)
	user.Password = ""
	return user, nil
}

func (uc *authUseCase) Login(ctx context.Context, username, password string) (*entity.User, string, error) {
	user, err := uc.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return nil, "", entity.ErrInvalidCredentials
		}
		uc.logger.Error("Failed to load user %q: %v", username, err)
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, "", entity.ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, "", entity.ErrInactiveUser
	}

	token, err := uc.jwtService.GenerateToken(user.ID, user.Username)
	if err != nil {
		uc.logger.Error("Failed to generate token: %v", err)
		return nil, "", fmt.Errorf("generate token: %w", err)
	}

	user.Password = ""
	return user, token, nil
}

func (uc *authUseCase) Logout(ctx context.Context, claims *jwt.Claims) error {
	if uc.denylist == nil || claims == nil || claims.ID == "" {
		return nil
	}

	ttl := uc.jwtService.Remaining(claims)
	if ttl <= 0 {
		return nil
	}

	if err := uc.denylist.Revoke(ctx, claims.ID, ttl); err != nil {
		uc.logger.Error("Failed to revoke session %s: %v", claims.ID, err)
		return fmt.Errorf("revoke session: %w", err)
	}
	return nil
}

func (uc *authUseCase) GetUser(ctx context.Context, userID uint) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.Password = ""
	return user, nil
}

// DeleteUser removes the account along with everything it authored and liked.
func (uc *authUseCase) DeleteUser(ctx context.Context, username string) error {
	user, err := uc.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return err
	}

	if err := uc.userRepo.Delete(ctx, user.ID); err != nil {
		uc.logger.Error("Failed to delete user %s: %v", username, err)
		return err
	}

	uc.logger.Info("Deleted user %s (id=%d)", username, user.ID)
	return nil
}

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tuanvumaihuynh/inventory-service/internal/apperr"
	"github.com/tuanvumaihuynh/inventory-service/internal/model"
	"github.com/tuanvumaihuynh/inventory-service/internal/repository"
	"github.com/tuanvumaihuynh/inventory-service/internal/storage/upload"
)

type RegisterParams struct {
	Name     string
	Phone    string
	Email    string
	Password string
	// ProfileImage is optional.
	ProfileImage *upload.Image
	BaseURL      string
}

// LoginResult is the outcome of a credential check. When Authenticated is false,
// Reason tells the client why.
type LoginResult struct {
	Authenticated bool
	User          model.User
	Reason        string
}

func rejected(reason string) LoginResult {
	return LoginResult{Reason: reason}
}

type AuthService interface {
	Register(ctx context.Context, params RegisterParams) (model.User, error)
	Login(ctx context.Context, email, password string) (LoginResult, error)
	// ResolveSession loads the user a session is bound to.
	ResolveSession(ctx context.Context, userID uuid.UUID) (model.User, error)
	GetUser(ctx context.Context, id uuid.UUID) (model.User, error)
	ListUsers(ctx context.Context) ([]model.User, error)
}

type authService struct {
	userRepo repository.UserRepository
	hasher   PasswordHasher
	images   ImageIngester
}

func NewAuthService(
	userRepo repository.UserRepository,
	hasher PasswordHasher,
	images ImageIngester,
) AuthService {
	return &authService{
		userRepo: userRepo,
		hasher:   hasher,
		images:   images,
	}
}

func (s *authService) Register(ctx context.Context, params RegisterParams) (model.User, error) {
	if len(params.Password) > MaxPasswordBytes {
		return model.User{}, apperr.PasswordTooLongErr
	}

	_, err := s.userRepo.GetUserByEmail(ctx, params.Email)
	switch {
	case err == nil:
		return model.User{}, apperr.UserAlreadyExistsErr
	case !errors.Is(err, repository.ErrNotFound):
		return model.User{}, fmt.Errorf("user repository get user by email: %w", err)
	}

	var imageURL *string
	if params.ProfileImage != nil {
		urls, err := s.images.AcceptBatch(ctx, params.BaseURL, []upload.Image{*params.ProfileImage})
		if err != nil {
			return model.User{}, fmt.Errorf("accept profile image: %w", err)
		}
		imageURL = &urls[0]
	}

	user, err := s.createUser(ctx, params, imageURL)
	if err != nil {
		if imageURL != nil {
			s.images.Discard(ctx, []string{*imageURL})
		}
		return model.User{}, err
	}

	return user, nil
}

func (s *authService) createUser(ctx context.Context, params RegisterParams, imageURL *string) (model.User, error) {
	hash, err := s.hasher.Hash(params.Password)
	if err != nil {
		return model.User{}, fmt.Errorf("hash password: %w", err)
	}

	id, err := uuid.NewV7()
	if err != nil {
		return model.User{}, fmt.Errorf("generate uuid v7: %w", err)
	}

	user := model.User{
		ID:           id,
		Name:         params.Name,
		Phone:        params.Phone,
		Email:        params.Email,
		PasswordHash: hash,
		ImageURL:     imageURL,
		CreatedAt:    time.Now(),
	}
	if err := s.userRepo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return model.User{}, apperr.UserAlreadyExistsErr.WrapParent(err)
		}
		return model.User{}, fmt.Errorf("user repository create user: %w", err)
	}

	return user, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (LoginResult, error) {
	user, err := s.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return rejected(fmt.Sprintf("No user found associated with %s.", email)), nil
		}
		return LoginResult{}, fmt.Errorf("user repository get user by email: %w", err)
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return rejected("Incorrect password!"), nil
	}

	return LoginResult{Authenticated: true, User: user}, nil
}

func (s *authService) ResolveSession(ctx context.Context, userID uuid.UUID) (model.User, error) {
	user, err := s.userRepo.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.User{}, apperr.UnauthorizedErr.WrapParent(err)
		}
		return model.User{}, fmt.Errorf("user repository get user: %w", err)
	}
	return user, nil
}

func (s *authService) GetUser(ctx context.Context, id uuid.UUID) (model.User, error) {
	user, err := s.userRepo.GetUser(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.User{}, apperr.UserNotFoundErr
		}
		return model.User{}, fmt.Errorf("user repository get user: %w", err)
	}
	return user, nil
}

func (s *authService) ListUsers(ctx context.Context) ([]model.User, error) {
	users, err := s.userRepo.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("user repository list users: %w", err)
	}
	return users, nil
}

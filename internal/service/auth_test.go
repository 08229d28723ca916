package service

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/tuanvumaihuynh/inventory-service/internal/repository/memrepo"
)

func newTestAuth() (AuthService, *memrepo.Users, *fakeImages) {
	users := memrepo.NewUsers()
	images := &fakeImages{}
	return NewAuthService(users, NewPasswordHasher(bcrypt.MinCost), images), users, images
}

func registerParams(email string) RegisterParams {
	return RegisterParams{
		Name:     "Jane",
		Phone:    "0123456789",
		Email:    email,
		Password: "s3cret",
		BaseURL:  "http://localhost:8080",
	}
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("Should store a hashed password", func(t *testing.T) {
		svc, users, _ := newTestAuth()

		user, err := svc.Register(ctx, registerParams("jane@example.com"))
		require.NoError(t, err)

		assert.NotEqual(t, uuid.Nil, user.ID)
		assert.NotEqual(t, "s3cret", user.PasswordHash)
		assert.Nil(t, user.ImageURL)
		assert.Equal(t, 1, users.Len())
	})

	t.Run("Should reject a second registration with the same email", func(t *testing.T) {
		svc, users, _ := newTestAuth()
		_, err := svc.Register(ctx, registerParams("jane@example.com"))
		require.NoError(t, err)

		_, err = svc.Register(ctx, registerParams("jane@example.com"))
		requireCode(t, err, "USER_ALREADY_EXISTS")
		assert.Equal(t, 1, users.Len())
	})

	t.Run("Should attach the profile image url", func(t *testing.T) {
		svc, _, images := newTestAuth()
		params := registerParams("jane@example.com")
		img := pngImage("me.png")
		params.ProfileImage = &img

		user, err := svc.Register(ctx, params)
		require.NoError(t, err)

		require.NotNil(t, user.ImageURL)
		assert.Equal(t, "http://localhost:8080/uploads/me.png", *user.ImageURL)
		assert.Len(t, images.stored, 1)
	})

	t.Run("Should not store the image of a duplicate registration", func(t *testing.T) {
		svc, _, images := newTestAuth()
		_, err := svc.Register(ctx, registerParams("jane@example.com"))
		require.NoError(t, err)

		params := registerParams("jane@example.com")
		img := pngImage("me.png")
		params.ProfileImage = &img

		_, err = svc.Register(ctx, params)
		requireCode(t, err, "USER_ALREADY_EXISTS")
		assert.Empty(t, images.stored)
	})

	t.Run("Should reject an over-long password before storing the image", func(t *testing.T) {
		svc, users, images := newTestAuth()
		params := registerParams("jane@example.com")
		params.Password = strings.Repeat("x", 80)
		img := pngImage("me.png")
		params.ProfileImage = &img

		_, err := svc.Register(ctx, params)
		requireCode(t, err, "PASSWORD_TOO_LONG")
		assert.Equal(t, 0, users.Len())
		assert.Empty(t, images.stored)
	})

	t.Run("Should fail when the image is rejected", func(t *testing.T) {
		svc, users, images := newTestAuth()
		images.err = errBoom
		params := registerParams("jane@example.com")
		img := pngImage("me.png")
		params.ProfileImage = &img

		_, err := svc.Register(ctx, params)
		assert.ErrorIs(t, err, errBoom)
		assert.Equal(t, 0, users.Len())
	})
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	svc, users, _ := newTestAuth()
	registered, err := svc.Register(ctx, registerParams("jane@example.com"))
	require.NoError(t, err)

	t.Run("Should authenticate with correct credentials", func(t *testing.T) {
		res, err := svc.Login(ctx, "jane@example.com", "s3cret")
		require.NoError(t, err)

		assert.True(t, res.Authenticated)
		assert.Equal(t, registered.ID, res.User.ID)
		assert.Empty(t, res.Reason)
	})

	t.Run("Should reject a wrong password", func(t *testing.T) {
		res, err := svc.Login(ctx, "jane@example.com", "nope")
		require.NoError(t, err)

		assert.False(t, res.Authenticated)
		assert.Equal(t, "Incorrect password!", res.Reason)
	})

	t.Run("Should name the unknown email", func(t *testing.T) {
		res, err := svc.Login(ctx, "ghost@example.com", "s3cret")
		require.NoError(t, err)

		assert.False(t, res.Authenticated)
		assert.Equal(t, "No user found associated with ghost@example.com.", res.Reason)
	})

	t.Run("Should return infrastructure failures as errors", func(t *testing.T) {
		users.Err = errBoom
		defer func() { users.Err = nil }()

		_, err := svc.Login(ctx, "jane@example.com", "s3cret")
		assert.ErrorIs(t, err, errBoom)
	})
}

func TestAuthService_ResolveSession(t *testing.T) {
	ctx := context.Background()
	svc, users, _ := newTestAuth()
	registered, err := svc.Register(ctx, registerParams("jane@example.com"))
	require.NoError(t, err)

	t.Run("Should resolve to the bound user", func(t *testing.T) {
		user, err := svc.ResolveSession(ctx, registered.ID)
		require.NoError(t, err)
		assert.Equal(t, registered.Email, user.Email)
	})

	t.Run("Should treat a missing user as unauthorized", func(t *testing.T) {
		_, err := svc.ResolveSession(ctx, uuid.New())
		requireCode(t, err, "UNAUTHORIZED")
	})

	t.Run("Should propagate lookup failures", func(t *testing.T) {
		users.Err = errBoom
		defer func() { users.Err = nil }()

		_, err := svc.ResolveSession(ctx, registered.ID)
		assert.ErrorIs(t, err, errBoom)
	})
}

func TestAuthService_Users(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestAuth()
	registered, err := svc.Register(ctx, registerParams("jane@example.com"))
	require.NoError(t, err)

	t.Run("Should list registered users", func(t *testing.T) {
		users, err := svc.ListUsers(ctx)
		require.NoError(t, err)
		require.Len(t, users, 1)
		assert.Equal(t, registered.ID, users[0].ID)
	})

	t.Run("Should get a user by id", func(t *testing.T) {
		user, err := svc.GetUser(ctx, registered.ID)
		require.NoError(t, err)
		assert.Equal(t, "Jane", user.Name)
	})

	t.Run("Should report an unknown user", func(t *testing.T) {
		_, err := svc.GetUser(ctx, uuid.New())
		requireCode(t, err, "USER_NOT_FOUND")
	})
}

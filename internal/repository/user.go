package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/tuanvumaihuynh/inventory-service/internal/model"
	"github.com/tuanvumaihuynh/inventory-service/internal/storage/db"
)

type UserRepository interface {
	WithDB(db db.DB) UserRepository
	CreateUser(ctx context.Context, user model.User) error
	GetUser(ctx context.Context, id uuid.UUID) (model.User, error)
	GetUserByEmail(ctx context.Context, email string) (model.User, error)
	ListUsers(ctx context.Context) ([]model.User, error)
}

const userColumns = `id, name, phone, email, password_hash, image_url, created_at`

type userRepository struct {
	db db.DB
}

func NewUserRepository(db db.DB) UserRepository {
	return &userRepository{
		db: db,
	}
}

func (r userRepository) WithDB(db db.DB) UserRepository {
	return &userRepository{
		db: db,
	}
}

func (r userRepository) CreateUser(ctx context.Context, user model.User) error {
	if _, err := r.db.Exec(ctx, `
		INSERT INTO users (`+userColumns+`)
		VALUES (@id, @name, @phone, @email, @password_hash, @image_url, @created_at)
	`, pgx.NamedArgs{
		"id":            user.ID,
		"name":          user.Name,
		"phone":         user.Phone,
		"email":         user.Email,
		"password_hash": user.PasswordHash,
		"image_url":     user.ImageURL,
		"created_at":    user.CreatedAt,
	}); err != nil {
		return translateErr("create user", err)
	}

	return nil
}

func (r userRepository) GetUser(ctx context.Context, id uuid.UUID) (model.User, error) {
	return r.getOne(ctx, "get user", `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

func (r userRepository) GetUserByEmail(ctx context.Context, email string) (model.User, error) {
	return r.getOne(ctx, "get user by email", `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
}

func (r userRepository) ListUsers(ctx context.Context) ([]model.User, error) {
	rows, err := r.db.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY created_at, id`)
	if err != nil {
		return nil, translateErr("list users", err)
	}

	users, err := pgx.CollectRows(rows, scanUser)
	if err != nil {
		return nil, translateErr("list users", err)
	}

	return users, nil
}

func (r userRepository) getOne(ctx context.Context, op, sql string, args ...any) (model.User, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return model.User{}, translateErr(op, err)
	}

	user, err := pgx.CollectExactlyOneRow(rows, scanUser)
	if err != nil {
		return model.User{}, translateErr(op, err)
	}

	return user, nil
}

func scanUser(row pgx.CollectableRow) (model.User, error) {
	var u model.User
	err := row.Scan(&u.ID, &u.Name, &u.Phone, &u.Email, &u.PasswordHash, &u.ImageURL, &u.CreatedAt)
	return u, err
}

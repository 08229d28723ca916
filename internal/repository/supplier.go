package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/tuanvumaihuynh/inventory-service/internal/model"
	"github.com/tuanvumaihuynh/inventory-service/internal/storage/db"
)

type SupplierRepository interface {
	WithDB(db db.DB) SupplierRepository
	CreateSupplier(ctx context.Context, supplier model.Supplier) error
	DeleteSupplier(ctx context.Context, id uuid.UUID) (model.Supplier, error)
	GetSupplierByContactEmail(ctx context.Context, email string) (model.Supplier, error)
	ListSuppliers(ctx context.Context, params ListParams) ([]model.Supplier, int, error)
	SearchSuppliers(ctx context.Context, query string) ([]model.Supplier, error)
}

const supplierColumns = `id, name, contact_person, contact_email, contact_phone, address, website, created_at`

type supplierRepository struct {
	db db.DB
}

func NewSupplierRepository(db db.DB) SupplierRepository {
	return &supplierRepository{
		db: db,
	}
}

func (r supplierRepository) WithDB(db db.DB) SupplierRepository {
	return &supplierRepository{
		db: db,
	}
}

func (r supplierRepository) CreateSupplier(ctx context.Context, supplier model.Supplier) error {
	if _, err := r.db.Exec(ctx, `
		INSERT INTO suppliers (`+supplierColumns+`)
		VALUES (@id, @name, @contact_person, @contact_email, @contact_phone, @address, @website, @created_at)
	`, pgx.NamedArgs{
		"id":             supplier.ID,
		"name":           supplier.Name,
		"contact_person": supplier.ContactPerson,
		"contact_email":  supplier.ContactEmail,
		"contact_phone":  supplier.ContactPhone,
		"address":        supplier.Address,
		"website":        supplier.Website,
		"created_at":     supplier.CreatedAt,
	}); err != nil {
		return translateErr("create supplier", err)
	}

	return nil
}

func (r supplierRepository) DeleteSupplier(ctx context.Context, id uuid.UUID) (model.Supplier, error) {
	return r.getOne(ctx, "delete supplier",
		`DELETE FROM suppliers WHERE id = $1 RETURNING `+supplierColumns, id)
}

func (r supplierRepository) GetSupplierByContactEmail(ctx context.Context, email string) (model.Supplier, error) {
	return r.getOne(ctx, "get supplier by contact email",
		`SELECT `+supplierColumns+` FROM suppliers WHERE contact_email = $1`, email)
}

func (r supplierRepository) ListSuppliers(ctx context.Context, params ListParams) ([]model.Supplier, int, error) {
	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM suppliers`).Scan(&total); err != nil {
		return nil, 0, translateErr("count suppliers", err)
	}

	suppliers, err := r.getMany(ctx, "list suppliers", `
		SELECT `+supplierColumns+`
		FROM suppliers
		ORDER BY created_at, id
		LIMIT $1 OFFSET $2
	`, params.Limit, params.Offset)
	if err != nil {
		return nil, 0, err
	}

	return suppliers, total, nil
}

func (r supplierRepository) SearchSuppliers(ctx context.Context, query string) ([]model.Supplier, error) {
	return r.getMany(ctx, "search suppliers", `
		SELECT `+supplierColumns+`
		FROM suppliers
		WHERE name ILIKE $1 OR contact_person ILIKE $1 OR contact_email ILIKE $1
		ORDER BY created_at, id
	`, likePattern(query))
}

func (r supplierRepository) getOne(ctx context.Context, op, sql string, args ...any) (model.Supplier, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return model.Supplier{}, translateErr(op, err)
	}

	supplier, err := pgx.CollectExactlyOneRow(rows, scanSupplier)
	if err != nil {
		return model.Supplier{}, translateErr(op, err)
	}

	return supplier, nil
}

func (r supplierRepository) getMany(ctx context.Context, op, sql string, args ...any) ([]model.Supplier, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, translateErr(op, err)
	}

	suppliers, err := pgx.CollectRows(rows, scanSupplier)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return suppliers, nil
}

func scanSupplier(row pgx.CollectableRow) (model.Supplier, error) {
	var s model.Supplier
	err := row.Scan(
		&s.ID,
		&s.Name,
		&s.ContactPerson,
		&s.ContactEmail,
		&s.ContactPhone,
		&s.Address,
		&s.Website,
		&s.CreatedAt,
	)
	return s, err
}

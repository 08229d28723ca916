package repository

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/tuanvumaihuynh/inventory-service/internal/model"
	"github.com/tuanvumaihuynh/inventory-service/internal/storage/db"
)

type ListParams struct {
	Limit  int
	Offset int
}

type ProductRepository interface {
	WithDB(db db.DB) ProductRepository
	CreateProduct(ctx context.Context, product model.Product) error
	UpdateProduct(ctx context.Context, product model.Product) error
	DeleteProduct(ctx context.Context, id uuid.UUID) (model.Product, error)
	GetProduct(ctx context.Context, id uuid.UUID) (model.Product, error)
	GetProductBySku(ctx context.Context, sku string) (model.Product, error)
	ListProducts(ctx context.Context, params ListParams) ([]model.Product, int, error)
	SearchProducts(ctx context.Context, query string) ([]model.Product, error)
}

const productColumns = `id, name, category, brand, sku, quantity_in_stock, price, supplier_id,
	warranty_period, condition, specifications, images, created_at, updated_at`

type productRow struct {
	ID              uuid.UUID            `db:"id"`
	Name            string               `db:"name"`
	Category        string               `db:"category"`
	Brand           string               `db:"brand"`
	Sku             string               `db:"sku"`
	QuantityInStock int32                `db:"quantity_in_stock"`
	Price           pgtype.Numeric       `db:"price"`
	SupplierID      *uuid.UUID           `db:"supplier_id"`
	WarrantyPeriod  string               `db:"warranty_period"`
	Condition       string               `db:"condition"`
	Specifications  model.Specifications `db:"specifications"`
	Images          []string             `db:"images"`
	CreatedAt       time.Time            `db:"created_at"`
	UpdatedAt       time.Time            `db:"updated_at"`
}

type productRepository struct {
	db db.DB
}

func NewProductRepository(db db.DB) ProductRepository {
	return &productRepository{
		db: db,
	}
}

func (r productRepository) WithDB(db db.DB) ProductRepository {
	return &productRepository{
		db: db,
	}
}

func (r productRepository) CreateProduct(ctx context.Context, product model.Product) error {
	args, err := productArgs(product)
	if err != nil {
		return err
	}

	if _, err := r.db.Exec(ctx, `
		INSERT INTO products (`+productColumns+`)
		VALUES (
			@id, @name, @category, @brand, @sku, @quantity_in_stock, @price, @supplier_id,
			@warranty_period, @condition, @specifications, @images, @created_at, @updated_at
		)
	`, args); err != nil {
		return translateErr("create product", err)
	}

	return nil
}

func (r productRepository) UpdateProduct(ctx context.Context, product model.Product) error {
	args, err := productArgs(product)
	if err != nil {
		return err
	}

	tag, err := r.db.Exec(ctx, `
		UPDATE products
		SET
			name              = @name,
			category          = @category,
			brand             = @brand,
			sku               = @sku,
			quantity_in_stock = @quantity_in_stock,
			price             = @price,
			supplier_id       = @supplier_id,
			warranty_period   = @warranty_period,
			condition         = @condition,
			specifications    = @specifications,
			images            = @images,
			updated_at        = @updated_at
		WHERE id = @id
	`, args)
	if err != nil {
		return translateErr("update product", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update product: %w", ErrNotFound)
	}

	return nil
}

func (r productRepository) DeleteProduct(ctx context.Context, id uuid.UUID) (model.Product, error) {
	return r.getOne(ctx, "delete product",
		`DELETE FROM products WHERE id = $1 RETURNING `+productColumns, id)
}

func (r productRepository) GetProduct(ctx context.Context, id uuid.UUID) (model.Product, error) {
	return r.getOne(ctx, "get product",
		`SELECT `+productColumns+` FROM products WHERE id = $1`, id)
}

func (r productRepository) GetProductBySku(ctx context.Context, sku string) (model.Product, error) {
	return r.getOne(ctx, "get product by sku",
		`SELECT `+productColumns+` FROM products WHERE sku = $1`, sku)
}

func (r productRepository) ListProducts(ctx context.Context, params ListParams) ([]model.Product, int, error) {
	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM products`).Scan(&total); err != nil {
		return nil, 0, translateErr("count products", err)
	}

	products, err := r.getMany(ctx, "list products", `
		SELECT `+productColumns+`
		FROM products
		ORDER BY created_at, id
		LIMIT $1 OFFSET $2
	`, params.Limit, params.Offset)
	if err != nil {
		return nil, 0, err
	}

	return products, total, nil
}

func (r productRepository) SearchProducts(ctx context.Context, query string) ([]model.Product, error) {
	return r.getMany(ctx, "search products", `
		SELECT `+productColumns+`
		FROM products
		WHERE name ILIKE $1 OR category ILIKE $1 OR brand ILIKE $1
		ORDER BY created_at, id
	`, likePattern(query))
}

func (r productRepository) getOne(ctx context.Context, op, sql string, args ...any) (model.Product, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return model.Product{}, translateErr(op, err)
	}

	row, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[productRow])
	if err != nil {
		return model.Product{}, translateErr(op, err)
	}

	return productRowToModel(row)
}

func (r productRepository) getMany(ctx context.Context, op, sql string, args ...any) ([]model.Product, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, translateErr(op, err)
	}

	productRows, err := pgx.CollectRows(rows, pgx.RowToStructByName[productRow])
	if err != nil {
		return nil, translateErr(op, err)
	}

	products := make([]model.Product, 0, len(productRows))
	for _, row := range productRows {
		product, err := productRowToModel(row)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		products = append(products, product)
	}

	return products, nil
}

func productArgs(product model.Product) (pgx.NamedArgs, error) {
	var price pgtype.Numeric
	if err := price.Scan(fmt.Sprintf("%.2f", product.Price)); err != nil {
		return nil, fmt.Errorf("scan price: %w", err)
	}

	if product.QuantityInStock > math.MaxInt32 || product.QuantityInStock < 0 {
		return nil, fmt.Errorf("quantity in stock out of range: %d", product.QuantityInStock)
	}

	images := product.Images
	if images == nil {
		images = []string{}
	}

	return pgx.NamedArgs{
		"id":                product.ID,
		"name":              product.Name,
		"category":          string(product.Category),
		"brand":             product.Brand,
		"sku":               product.Sku,
		"quantity_in_stock": int32(product.QuantityInStock),
		"price":             price,
		"supplier_id":       product.SupplierID,
		"warranty_period":   product.WarrantyPeriod,
		"condition":         string(product.Condition),
		"specifications":    product.Specifications,
		"images":            images,
		"created_at":        product.CreatedAt,
		"updated_at":        product.UpdatedAt,
	}, nil
}

func productRowToModel(row productRow) (model.Product, error) {
	price, err := row.Price.Float64Value()
	if err != nil {
		return model.Product{}, fmt.Errorf("convert price to float64: %w", err)
	}

	images := row.Images
	if images == nil {
		images = []string{}
	}

	return model.Product{
		ID:              row.ID,
		Name:            row.Name,
		Category:        model.Category(row.Category),
		Brand:           row.Brand,
		Sku:             row.Sku,
		QuantityInStock: int(row.QuantityInStock),
		Price:           price.Float64,
		SupplierID:      row.SupplierID,
		WarrantyPeriod:  row.WarrantyPeriod,
		Condition:       model.Condition(row.Condition),
		Specifications:  row.Specifications,
		Images:          images,
		CreatedAt:       row.CreatedAt,
		UpdatedAt:       row.UpdatedAt,
	}, nil
}

// Package memrepo holds in-memory implementations of the repository interfaces.
// They enforce the same unique keys as the Postgres schema and are meant for tests.
package memrepo

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/tuanvumaihuynh/inventory-service/internal/model"
	"github.com/tuanvumaihuynh/inventory-service/internal/repository"
	"github.com/tuanvumaihuynh/inventory-service/internal/storage/db"
)

var errNoSQL = errors.New("memrepo: raw SQL is not supported")

// DB is a db.DB whose transactions simply run the callback.
type DB struct{}

var _ db.DB = DB{}

func (DB) Exec(context.Context, string, ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, errNoSQL
}

func (DB) Query(context.Context, string, ...any) (pgx.Rows, error) {
	return nil, errNoSQL
}

func (DB) QueryRow(context.Context, string, ...any) pgx.Row {
	return errRow{}
}

func (d DB) WithTx(_ context.Context, txFunc func(db.DB) error) error {
	return txFunc(d)
}

type errRow struct{}

func (errRow) Scan(...any) error { return errNoSQL }

func page[T any](items []T, params repository.ListParams) []T {
	if params.Offset >= len(items) {
		return []T{}
	}
	end := len(items)
	if params.Limit < end-params.Offset {
		end = params.Offset + params.Limit
	}
	return slices.Clone(items[params.Offset:end])
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

// Products is an in-memory repository.ProductRepository.
type Products struct {
	mu    sync.Mutex
	items []model.Product
}

var _ repository.ProductRepository = (*Products)(nil)

func NewProducts() *Products { return &Products{} }

func (r *Products) WithDB(db.DB) repository.ProductRepository { return r }

func (r *Products) CreateProduct(_ context.Context, product model.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, p := range r.items {
		if p.Sku == product.Sku {
			return fmt.Errorf("create product: %w", repository.ErrDuplicateKey)
		}
	}
	r.items = append(r.items, cloneProduct(product))
	return nil
}

func (r *Products) UpdateProduct(_ context.Context, product model.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := -1
	for i, p := range r.items {
		if p.ID == product.ID {
			idx = i
		} else if p.Sku == product.Sku {
			return fmt.Errorf("update product: %w", repository.ErrDuplicateKey)
		}
	}
	if idx < 0 {
		return fmt.Errorf("update product: %w", repository.ErrNotFound)
	}

	product.CreatedAt = r.items[idx].CreatedAt
	r.items[idx] = cloneProduct(product)
	return nil
}

func (r *Products) DeleteProduct(_ context.Context, id uuid.UUID) (model.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, p := range r.items {
		if p.ID == id {
			r.items = slices.Delete(r.items, i, i+1)
			return p, nil
		}
	}
	return model.Product{}, fmt.Errorf("delete product: %w", repository.ErrNotFound)
}

func (r *Products) GetProduct(_ context.Context, id uuid.UUID) (model.Product, error) {
	return r.find("get product", func(p model.Product) bool { return p.ID == id })
}

func (r *Products) GetProductBySku(_ context.Context, sku string) (model.Product, error) {
	return r.find("get product by sku", func(p model.Product) bool { return p.Sku == sku })
}

func (r *Products) ListProducts(_ context.Context, params repository.ListParams) ([]model.Product, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return page(r.items, params), len(r.items), nil
}

func (r *Products) SearchProducts(_ context.Context, query string) ([]model.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := []model.Product{}
	for _, p := range r.items {
		if containsFold(p.Name, query) || containsFold(string(p.Category), query) || containsFold(p.Brand, query) {
			out = append(out, cloneProduct(p))
		}
	}
	return out, nil
}

// Len returns the number of stored products.
func (r *Products) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.items)
}

func (r *Products) find(op string, match func(model.Product) bool) (model.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, p := range r.items {
		if match(p) {
			return cloneProduct(p), nil
		}
	}
	return model.Product{}, fmt.Errorf("%s: %w", op, repository.ErrNotFound)
}

func cloneProduct(p model.Product) model.Product {
	p.Images = slices.Clone(p.Images)
	if p.Images == nil {
		p.Images = []string{}
	}
	return p
}

// Suppliers is an in-memory repository.SupplierRepository.
type Suppliers struct {
	mu    sync.Mutex
	items []model.Supplier
}

var _ repository.SupplierRepository = (*Suppliers)(nil)

func NewSuppliers() *Suppliers { return &Suppliers{} }

func (r *Suppliers) WithDB(db.DB) repository.SupplierRepository { return r }

func (r *Suppliers) CreateSupplier(_ context.Context, supplier model.Supplier) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, s := range r.items {
		if s.ContactEmail == supplier.ContactEmail {
			return fmt.Errorf("create supplier: %w", repository.ErrDuplicateKey)
		}
	}
	r.items = append(r.items, supplier)
	return nil
}

func (r *Suppliers) DeleteSupplier(_ context.Context, id uuid.UUID) (model.Supplier, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, s := range r.items {
		if s.ID == id {
			r.items = slices.Delete(r.items, i, i+1)
			return s, nil
		}
	}
	return model.Supplier{}, fmt.Errorf("delete supplier: %w", repository.ErrNotFound)
}

func (r *Suppliers) GetSupplierByContactEmail(_ context.Context, email string) (model.Supplier, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, s := range r.items {
		if s.ContactEmail == email {
			return s, nil
		}
	}
	return model.Supplier{}, fmt.Errorf("get supplier by contact email: %w", repository.ErrNotFound)
}

func (r *Suppliers) ListSuppliers(_ context.Context, params repository.ListParams) ([]model.Supplier, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return page(r.items, params), len(r.items), nil
}

func (r *Suppliers) SearchSuppliers(_ context.Context, query string) ([]model.Supplier, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := []model.Supplier{}
	for _, s := range r.items {
		if containsFold(s.Name, query) || containsFold(s.ContactPerson, query) || containsFold(s.ContactEmail, query) {
			out = append(out, s)
		}
	}
	return out, nil
}

// Users is an in-memory repository.UserRepository.
type Users struct {
	mu    sync.Mutex
	items []model.User

	// Err, when set, is returned by every read.
	Err error
}

var _ repository.UserRepository = (*Users)(nil)

func NewUsers() *Users { return &Users{} }

func (r *Users) WithDB(db.DB) repository.UserRepository { return r }

func (r *Users) CreateUser(_ context.Context, user model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.items {
		if u.Email == user.Email {
			return fmt.Errorf("create user: %w", repository.ErrDuplicateKey)
		}
	}
	r.items = append(r.items, user)
	return nil
}

func (r *Users) GetUser(_ context.Context, id uuid.UUID) (model.User, error) {
	return r.find("get user", func(u model.User) bool { return u.ID == id })
}

func (r *Users) GetUserByEmail(_ context.Context, email string) (model.User, error) {
	return r.find("get user by email", func(u model.User) bool { return u.Email == email })
}

func (r *Users) ListUsers(context.Context) ([]model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.Err != nil {
		return nil, r.Err
	}
	return slices.Clone(r.items), nil
}

// Len returns the number of stored users.
func (r *Users) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.items)
}

func (r *Users) find(op string, match func(model.User) bool) (model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.Err != nil {
		return model.User{}, fmt.Errorf("%s: %w", op, r.Err)
	}
	for _, u := range r.items {
		if match(u) {
			return u, nil
		}
	}
	return model.User{}, fmt.Errorf("%s: %w", op, repository.ErrNotFound)
}

// LogEntries is an in-memory repository.LogEntryRepository.
type LogEntries struct {
	mu    sync.Mutex
	items []model.LogEntry

	// Err, when set, is returned by CreateLogEntry.
	Err error
}

var _ repository.LogEntryRepository = (*LogEntries)(nil)

func NewLogEntries() *LogEntries { return &LogEntries{} }

func (r *LogEntries) WithDB(db.DB) repository.LogEntryRepository { return r }

func (r *LogEntries) CreateLogEntry(_ context.Context, entry model.LogEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.Err != nil {
		return fmt.Errorf("create log entry: %w", r.Err)
	}
	r.items = append(r.items, entry)
	return nil
}

func (r *LogEntries) ListLogEntries(_ context.Context, params repository.ListParams) ([]model.LogEntry, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	newest := slices.Clone(r.items)
	slices.Reverse(newest)
	return page(newest, params), len(newest), nil
}

// All returns every entry in insertion order.
func (r *LogEntries) All() []model.LogEntry {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.items)
}

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
)

type AddSupplierParams struct {
	Name          string
	ContactPerson string
	ContactEmail  string
	ContactPhone  string
	Address       string
	Website       *string
}

type SupplierService interface {
	AddSupplier(ctx context.Context, params AddSupplierParams) (model.Supplier, error)
	ListSuppliers(ctx context.Context, page model.PageParams) ([]model.Supplier, int, error)
	// SearchSuppliers requires a non-empty query.
	SearchSuppliers(ctx context.Context, query string) ([]model.Supplier, error)
	RemoveSupplier(ctx context.Context, id uuid.UUID) (model.Supplier, error)
}

type supplierService struct {
	supplierRepo repository.SupplierRepository
	audit        AuditLog
}

func NewSupplierService(
	supplierRepo repository.SupplierRepository,
	audit AuditLog,
) SupplierService {
	return &supplierService{
		supplierRepo: supplierRepo,
		audit:        audit,
	}
}

func (s *supplierService) AddSupplier(ctx context.Context, params AddSupplierParams) (model.Supplier, error) {
	_, err := s.supplierRepo.GetSupplierByContactEmail(ctx, params.ContactEmail)
	switch {
	case err == nil:
		return model.Supplier{}, apperr.SupplierAlreadyExistsErr
	case !errors.Is(err, repository.ErrNotFound):
		return model.Supplier{}, fmt.Errorf("supplier repository get supplier by contact email: %w", err)
	}

	id, err := uuid.NewV7()
	if err != nil {
		return model.Supplier{}, fmt.Errorf("generate uuid v7: %w", err)
	}

	supplier := model.Supplier{
		ID:            id,
		Name:          params.Name,
		ContactPerson: params.ContactPerson,
		ContactEmail:  params.ContactEmail,
		ContactPhone:  params.ContactPhone,
		Address:       params.Address,
		Website:       params.Website,
		CreatedAt:     time.Now(),
	}
	if err := s.supplierRepo.CreateSupplier(ctx, supplier); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return model.Supplier{}, apperr.SupplierAlreadyExistsErr.WrapParent(err)
		}
		return model.Supplier{}, fmt.Errorf("supplier repository create supplier: %w", err)
	}

	s.audit.Append(ctx, model.OpAddSupplier, supplier)

	return supplier, nil
}

func (s *supplierService) ListSuppliers(ctx context.Context, page model.PageParams) ([]model.Supplier, int, error) {
	if !page.Valid() {
		return nil, 0, apperr.InvalidPaginationErr
	}

	suppliers, total, err := s.supplierRepo.ListSuppliers(ctx, repository.ListParams{
		Limit:  page.Limit,
		Offset: page.Offset(),
	})
	if err != nil {
		return nil, 0, fmt.Errorf("supplier repository list suppliers: %w", err)
	}

	return suppliers, total, nil
}

func (s *supplierService) SearchSuppliers(ctx context.Context, query string) ([]model.Supplier, error) {
	if query == "" {
		return nil, apperr.SearchQueryRequiredErr
	}

	suppliers, err := s.supplierRepo.SearchSuppliers(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("supplier repository search suppliers: %w", err)
	}
	return suppliers, nil
}

func (s *supplierService) RemoveSupplier(ctx context.Context, id uuid.UUID) (model.Supplier, error) {
	supplier, err := s.supplierRepo.DeleteSupplier(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.Supplier{}, apperr.SupplierNotFoundErr
		}
		return model.Supplier{}, fmt.Errorf("supplier repository delete supplier: %w", err)
	}

	s.audit.Append(ctx, model.OpRemoveSupplier, supplier)

	return supplier, nil
}

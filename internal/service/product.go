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
	"github.com/tuanvumaihuynh/inventory-service/internal/storage/db"
	"github.com/tuanvumaihuynh/inventory-service/internal/storage/upload"
)

type AddProductParams struct {
	Name            string
	Category        model.Category
	Brand           string
	Sku             string
	QuantityInStock int
	Price           float64
	SupplierID      *uuid.UUID
	WarrantyPeriod  string
	// Condition defaults to New when empty.
	Condition      model.Condition
	Specifications model.Specifications
	Images         []upload.Image
	BaseURL        string
}

// UpdateProductParams carries a partial update. Nil fields keep their current value.
// A non-nil Images replaces the whole image list.
type UpdateProductParams struct {
	Name            *string
	Category        *model.Category
	Brand           *string
	Sku             *string
	QuantityInStock *int
	Price           *float64
	SupplierID      *uuid.UUID
	// ClearSupplier removes the supplier reference. SupplierID is ignored when set.
	ClearSupplier  bool
	WarrantyPeriod *string
	Condition      *model.Condition
	Specifications *model.Specifications
	Images         []upload.Image
	BaseURL        string
}

type ProductService interface {
	AddProduct(ctx context.Context, params AddProductParams) (model.Product, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, params UpdateProductParams) (model.Product, error)
	// RemoveProduct deletes the product and returns it as it was before deletion.
	RemoveProduct(ctx context.Context, id uuid.UUID) (model.Product, error)
	GetProduct(ctx context.Context, id uuid.UUID) (model.Product, error)
	ListProducts(ctx context.Context, page model.PageParams) ([]model.Product, int, error)
	// SearchProducts matches name, category and brand. An empty query matches everything.
	SearchProducts(ctx context.Context, query string) ([]model.Product, error)
}

type productService struct {
	db          db.DB
	productRepo repository.ProductRepository
	images      ImageIngester
	audit       AuditLog
}

func NewProductService(
	db db.DB,
	productRepo repository.ProductRepository,
	images ImageIngester,
	audit AuditLog,
) ProductService {
	return &productService{
		db:          db,
		productRepo: productRepo,
		images:      images,
		audit:       audit,
	}
}

func (s *productService) AddProduct(ctx context.Context, params AddProductParams) (model.Product, error) {
	_, err := s.productRepo.GetProductBySku(ctx, params.Sku)
	switch {
	case err == nil:
		return model.Product{}, apperr.ProductAlreadyExistsErr
	case !errors.Is(err, repository.ErrNotFound):
		return model.Product{}, fmt.Errorf("product repository get product by sku: %w", err)
	}

	id, err := uuid.NewV7()
	if err != nil {
		return model.Product{}, fmt.Errorf("generate uuid v7: %w", err)
	}

	images := []string{}
	if len(params.Images) > 0 {
		images, err = s.images.AcceptBatch(ctx, params.BaseURL, params.Images)
		if err != nil {
			return model.Product{}, fmt.Errorf("accept product images: %w", err)
		}
	}

	condition := params.Condition
	if condition == "" {
		condition = model.ConditionNew
	}

	now := time.Now()
	product := model.Product{
		ID:              id,
		Name:            params.Name,
		Category:        params.Category,
		Brand:           params.Brand,
		Sku:             params.Sku,
		QuantityInStock: params.QuantityInStock,
		Price:           params.Price,
		SupplierID:      params.SupplierID,
		WarrantyPeriod:  params.WarrantyPeriod,
		Condition:       condition,
		Specifications:  params.Specifications,
		Images:          images,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.productRepo.CreateProduct(ctx, product); err != nil {
		s.images.Discard(ctx, images)
		if errors.Is(err, repository.ErrDuplicateKey) {
			return model.Product{}, apperr.ProductAlreadyExistsErr.WrapParent(err)
		}
		return model.Product{}, fmt.Errorf("product repository create product: %w", err)
	}

	s.audit.Append(ctx, model.OpAddProduct, product)

	return product, nil
}

func (s *productService) UpdateProduct(ctx context.Context, id uuid.UUID, params UpdateProductParams) (model.Product, error) {
	var newImages []string
	if params.Images != nil {
		var err error
		if newImages, err = s.images.AcceptBatch(ctx, params.BaseURL, params.Images); err != nil {
			return model.Product{}, fmt.Errorf("accept product images: %w", err)
		}
	}

	var product model.Product
	if err := s.db.WithTx(ctx, func(tx db.DB) error {
		repo := s.productRepo.WithDB(tx)

		current, err := repo.GetProduct(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return apperr.ProductNotFoundErr
			}
			return fmt.Errorf("product repository get product: %w", err)
		}

		if params.Sku != nil && *params.Sku != current.Sku {
			other, err := repo.GetProductBySku(ctx, *params.Sku)
			switch {
			case err == nil && other.ID != id:
				return apperr.ProductAlreadyExistsErr
			case err != nil && !errors.Is(err, repository.ErrNotFound):
				return fmt.Errorf("product repository get product by sku: %w", err)
			}
		}

		product = applyProductUpdate(current, params, newImages)
		product.UpdatedAt = time.Now()

		if err := repo.UpdateProduct(ctx, product); err != nil {
			if errors.Is(err, repository.ErrDuplicateKey) {
				return apperr.ProductAlreadyExistsErr.WrapParent(err)
			}
			if errors.Is(err, repository.ErrNotFound) {
				return apperr.ProductNotFoundErr
			}
			return fmt.Errorf("product repository update product: %w", err)
		}

		return nil
	}); err != nil {
		s.images.Discard(ctx, newImages)
		return model.Product{}, err
	}

	s.audit.Append(ctx, model.OpUpdateProduct, product)

	return product, nil
}

func applyProductUpdate(p model.Product, params UpdateProductParams, images []string) model.Product {
	if params.Name != nil {
		p.Name = *params.Name
	}
	if params.Category != nil {
		p.Category = *params.Category
	}
	if params.Brand != nil {
		p.Brand = *params.Brand
	}
	if params.Sku != nil {
		p.Sku = *params.Sku
	}
	if params.QuantityInStock != nil {
		p.QuantityInStock = *params.QuantityInStock
	}
	if params.Price != nil {
		p.Price = *params.Price
	}
	switch {
	case params.ClearSupplier:
		p.SupplierID = nil
	case params.SupplierID != nil:
		p.SupplierID = params.SupplierID
	}
	if params.WarrantyPeriod != nil {
		p.WarrantyPeriod = *params.WarrantyPeriod
	}
	if params.Condition != nil {
		p.Condition = *params.Condition
	}
	if params.Specifications != nil {
		p.Specifications = *params.Specifications
	}
	if images != nil {
		p.Images = images
	}
	return p
}

func (s *productService) RemoveProduct(ctx context.Context, id uuid.UUID) (model.Product, error) {
	product, err := s.productRepo.DeleteProduct(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.Product{}, apperr.ProductNotFoundErr
		}
		return model.Product{}, fmt.Errorf("product repository delete product: %w", err)
	}

	s.audit.Append(ctx, model.OpRemoveProduct, product)

	return product, nil
}

func (s *productService) GetProduct(ctx context.Context, id uuid.UUID) (model.Product, error) {
	product, err := s.productRepo.GetProduct(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.Product{}, apperr.ProductNotFoundErr
		}
		return model.Product{}, fmt.Errorf("product repository get product: %w", err)
	}
	return product, nil
}

func (s *productService) ListProducts(ctx context.Context, page model.PageParams) ([]model.Product, int, error) {
	if !page.Valid() {
		return nil, 0, apperr.InvalidPaginationErr
	}

	products, total, err := s.productRepo.ListProducts(ctx, repository.ListParams{
		Limit:  page.Limit,
		Offset: page.Offset(),
	})
	if err != nil {
		return nil, 0, fmt.Errorf("product repository list products: %w", err)
	}

	return products, total, nil
}

func (s *productService) SearchProducts(ctx context.Context, query string) ([]model.Product, error) {
	products, err := s.productRepo.SearchProducts(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("product repository search products: %w", err)
	}
	return products, nil
}

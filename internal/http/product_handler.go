package http

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/tuanvumaihuynh/inventory-service/internal/model"
	"github.com/tuanvumaihuynh/inventory-service/internal/service"
	"github.com/tuanvumaihuynh/inventory-service/internal/storage/upload"
	"github.com/tuanvumaihuynh/inventory-service/pkg/ptr"
)

const productImagesField = "images"

type addProductRequest struct {
	Name            string               `json:"name" validate:"required"`
	Category        model.Category       `json:"category" validate:"required,enum"`
	Brand           string               `json:"brand" validate:"required"`
	Sku             string               `json:"sku" validate:"required,sku"`
	QuantityInStock *int                 `json:"quantity_in_stock" validate:"omitnil,gte=0"`
	Price           *float64             `json:"price" validate:"required,gte=0,lte=9999999999.99"`
	SupplierID      *uuid.UUID           `json:"supplier_id"`
	WarrantyPeriod  string               `json:"warranty_period"`
	Condition       model.Condition      `json:"condition" validate:"omitempty,enum"`
	Specifications  model.Specifications `json:"specifications"`
}

type updateProductRequest struct {
	Name            *string               `json:"name" validate:"omitnil,min=1"`
	Category        *model.Category       `json:"category" validate:"omitnil,enum"`
	Brand           *string               `json:"brand" validate:"omitnil,min=1"`
	Sku             *string               `json:"sku" validate:"omitnil,sku"`
	QuantityInStock *int                  `json:"quantity_in_stock" validate:"omitnil,gte=0"`
	Price           *float64              `json:"price" validate:"omitnil,gte=0,lte=9999999999.99"`
	SupplierID      nullableID            `json:"supplier_id"`
	WarrantyPeriod  *string               `json:"warranty_period"`
	Condition       *model.Condition      `json:"condition" validate:"omitnil,enum"`
	Specifications  *model.Specifications `json:"specifications"`
}

func (s *Service) addProduct(w http.ResponseWriter, r *http.Request) error {
	var (
		req    addProductRequest
		images []upload.Image
	)

	if isMultipart(r) {
		if err := s.parseMultipart(w, r); err != nil {
			return err
		}
		f := newForm(r)
		req = addProductRequest{
			Name:            ptr.Value(f.text("name")),
			Category:        model.Category(ptr.Value(f.text("category"))),
			Brand:           ptr.Value(f.text("brand")),
			Sku:             ptr.Value(f.text("sku")),
			QuantityInStock: f.integer("quantity_in_stock"),
			Price:           f.number("price"),
			SupplierID:      f.id("supplier_id"),
			WarrantyPeriod:  ptr.Value(f.text("warranty_period")),
			Condition:       model.Condition(ptr.Value(f.text("condition"))),
			Specifications:  ptr.Value(f.specifications()),
		}
		if f.err != nil {
			return f.err
		}
		if err := s.validator.Validate(req); err != nil {
			return err
		}

		var (
			closeImages func()
			err         error
		)
		images, closeImages, err = s.formImages(r, productImagesField)
		defer closeImages()
		if err != nil {
			return err
		}
	} else if err := s.decodeJSON(r, &req); err != nil {
		return err
	}

	product, err := s.deps.ProductSvc.AddProduct(r.Context(), service.AddProductParams{
		Name:            req.Name,
		Category:        req.Category,
		Brand:           req.Brand,
		Sku:             req.Sku,
		QuantityInStock: ptr.Value(req.QuantityInStock),
		Price:           ptr.Value(req.Price),
		SupplierID:      req.SupplierID,
		WarrantyPeriod:  req.WarrantyPeriod,
		Condition:       req.Condition,
		Specifications:  req.Specifications,
		Images:          images,
		BaseURL:         s.baseURL(r),
	})
	if err != nil {
		return fmt.Errorf("product service add product: %w", err)
	}

	return writeJSON(w, http.StatusCreated, productResponse{
		Message: "Product added successfully!",
		Product: product,
	})
}

func (s *Service) updateProduct(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r)
	if err != nil {
		return err
	}

	var (
		req    updateProductRequest
		images []upload.Image
	)

	if isMultipart(r) {
		if err := s.parseMultipart(w, r); err != nil {
			return err
		}
		f := newForm(r)
		var category *model.Category
		if v := f.text("category"); v != nil {
			category = (*model.Category)(v)
		}
		var condition *model.Condition
		if v := f.text("condition"); v != nil {
			condition = (*model.Condition)(v)
		}
		req = updateProductRequest{
			Name:            f.text("name"),
			Category:        category,
			Brand:           f.text("brand"),
			Sku:             f.text("sku"),
			QuantityInStock: f.integer("quantity_in_stock"),
			Price:           f.number("price"),
			SupplierID:      f.nullableID("supplier_id"),
			WarrantyPeriod:  f.text("warranty_period"),
			Condition:       condition,
			Specifications:  f.specifications(),
		}
		if f.err != nil {
			return f.err
		}
		if err := s.validator.Validate(req); err != nil {
			return err
		}

		var closeImages func()
		images, closeImages, err = s.formImages(r, productImagesField)
		defer closeImages()
		if err != nil {
			return err
		}
		if len(images) == 0 {
			images = nil
		}
	} else if err := s.decodeJSON(r, &req); err != nil {
		return err
	}

	product, err := s.deps.ProductSvc.UpdateProduct(r.Context(), id, service.UpdateProductParams{
		Name:            req.Name,
		Category:        req.Category,
		Brand:           req.Brand,
		Sku:             req.Sku,
		QuantityInStock: req.QuantityInStock,
		Price:           req.Price,
		SupplierID:      req.SupplierID.ID,
		ClearSupplier:   req.SupplierID.cleared(),
		WarrantyPeriod:  req.WarrantyPeriod,
		Condition:       req.Condition,
		Specifications:  req.Specifications,
		Images:          images,
		BaseURL:         s.baseURL(r),
	})
	if err != nil {
		return fmt.Errorf("product service update product: %w", err)
	}

	return writeJSON(w, http.StatusOK, productResponse{
		Message: "Product updated successfully!",
		Product: product,
	})
}

func (s *Service) removeProduct(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r)
	if err != nil {
		return err
	}

	product, err := s.deps.ProductSvc.RemoveProduct(r.Context(), id)
	if err != nil {
		return fmt.Errorf("product service remove product: %w", err)
	}

	return writeJSON(w, http.StatusOK, productResponse{
		Message: "Product removed successfully!",
		Product: product,
	})
}

func (s *Service) getProduct(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r)
	if err != nil {
		return err
	}

	product, err := s.deps.ProductSvc.GetProduct(r.Context(), id)
	if err != nil {
		return fmt.Errorf("product service get product: %w", err)
	}

	return writeJSON(w, http.StatusOK, productResponse{
		Message: "Product retrieved successfully!",
		Product: product,
	})
}

func (s *Service) listProducts(w http.ResponseWriter, r *http.Request) error {
	page, err := bindPage(r)
	if err != nil {
		return err
	}

	products, total, err := s.deps.ProductSvc.ListProducts(r.Context(), page)
	if err != nil {
		return fmt.Errorf("product service list products: %w", err)
	}

	return writeJSON(w, http.StatusOK, productPageResponse{
		Message:    "Products retrieved successfully!",
		pagination: newPagination(page, total),
		Products:   products,
	})
}

func (s *Service) searchProducts(w http.ResponseWriter, r *http.Request) error {
	q, err := bindSearchQuery(r)
	if err != nil {
		return err
	}

	products, err := s.deps.ProductSvc.SearchProducts(r.Context(), q)
	if err != nil {
		return fmt.Errorf("product service search products: %w", err)
	}

	return writeJSON(w, http.StatusOK, productSearchResponse{
		Message:  "Products retrieved successfully!",
		Query:    q,
		Count:    len(products),
		Products: products,
	})
}

package http

import (
	"fmt"
	"net/http"

	"github.com/tuanvumaihuynh/inventory-service/internal/service"
)

type addSupplierRequest struct {
	Name          string  `json:"name" validate:"required"`
	ContactPerson string  `json:"contact_person" validate:"required"`
	ContactEmail  string  `json:"contact_email" validate:"required,email"`
	ContactPhone  string  `json:"contact_phone" validate:"required"`
	Address       string  `json:"address" validate:"required"`
	Website       *string `json:"website" validate:"omitnil,url"`
}

func (s *Service) addSupplier(w http.ResponseWriter, r *http.Request) error {
	var req addSupplierRequest
	if err := s.decodeJSON(r, &req); err != nil {
		return err
	}

	supplier, err := s.deps.SupplierSvc.AddSupplier(r.Context(), service.AddSupplierParams{
		Name:          req.Name,
		ContactPerson: req.ContactPerson,
		ContactEmail:  req.ContactEmail,
		ContactPhone:  req.ContactPhone,
		Address:       req.Address,
		Website:       req.Website,
	})
	if err != nil {
		return fmt.Errorf("supplier service add supplier: %w", err)
	}

	return writeJSON(w, http.StatusCreated, supplierResponse{
		Message:  "Supplier added successfully!",
		Supplier: supplier,
	})
}

func (s *Service) listSuppliers(w http.ResponseWriter, r *http.Request) error {
	page, err := bindPage(r)
	if err != nil {
		return err
	}

	suppliers, total, err := s.deps.SupplierSvc.ListSuppliers(r.Context(), page)
	if err != nil {
		return fmt.Errorf("supplier service list suppliers: %w", err)
	}

	return writeJSON(w, http.StatusOK, supplierPageResponse{
		Message:    "Suppliers retrieved successfully!",
		pagination: newPagination(page, total),
		Suppliers:  suppliers,
	})
}

func (s *Service) searchSuppliers(w http.ResponseWriter, r *http.Request) error {
	q, err := bindSearchQuery(r)
	if err != nil {
		return err
	}

	suppliers, err := s.deps.SupplierSvc.SearchSuppliers(r.Context(), q)
	if err != nil {
		return fmt.Errorf("supplier service search suppliers: %w", err)
	}

	return writeJSON(w, http.StatusOK, supplierSearchResponse{
		Message:   "Suppliers retrieved successfully!",
		Query:     q,
		Count:     len(suppliers),
		Suppliers: suppliers,
	})
}

func (s *Service) removeSupplier(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r)
	if err != nil {
		return err
	}

	supplier, err := s.deps.SupplierSvc.RemoveSupplier(r.Context(), id)
	if err != nil {
		return fmt.Errorf("supplier service remove supplier: %w", err)
	}

	return writeJSON(w, http.StatusOK, supplierResponse{
		Message:  "Supplier removed successfully!",
		Supplier: supplier,
	})
}

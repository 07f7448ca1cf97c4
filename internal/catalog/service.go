package catalog

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/stockpilot/stockpilot/internal/platform/httpx"
)

// ProductStore exposes the product persistence operations used by Service.
type ProductStore interface {
	List(ctx context.Context) ([]Product, error)
	Create(ctx context.Context, payload ProductPayload) (Product, error)
	Update(ctx context.Context, identifier string, payload ProductPayload) (Product, error)
	Delete(ctx context.Context, identifier string) error
}

// SupplierStore exposes the supplier persistence operations used by Service.
type SupplierStore interface {
	List(ctx context.Context) ([]Supplier, error)
	Create(ctx context.Context, payload SupplierPayload) (Supplier, error)
	Update(ctx context.Context, identifier string, payload SupplierPayload) (Supplier, error)
	Delete(ctx context.Context, identifier string) error
}

// CategoryStore exposes the category persistence operations used by Service.
type CategoryStore interface {
	List(ctx context.Context) ([]Category, error)
	Create(ctx context.Context, payload CategoryPayload) (Category, error)
	Update(ctx context.Context, identifier string, payload CategoryPayload) (Category, error)
	Delete(ctx context.Context, identifier string) error
}

// Service normalises request bodies into canonical payloads, validates
// them and delegates to the entity stores.
type Service struct {
	products   ProductStore
	suppliers  SupplierStore
	categories CategoryStore
	validate   *validator.Validate
}

// NewService constructs Service.
func NewService(products ProductStore, suppliers SupplierStore, categories CategoryStore) *Service {
	return &Service{
		products:   products,
		suppliers:  suppliers,
		categories: categories,
		validate:   validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (s *Service) check(payload any) error {
	if err := s.validate.Struct(payload); err != nil {
		return fmt.Errorf("%v: %w", err, httpx.ErrValidation)
	}
	return nil
}

// ListProducts returns all products.
func (s *Service) ListProducts(ctx context.Context) ([]Product, error) {
	return s.products.List(ctx)
}

// CreateProduct builds the canonical payload from the request body and
// inserts it.
func (s *Service) CreateProduct(ctx context.Context, body Body) (Product, error) {
	payload := BuildProductPayload(body)
	if err := s.check(payload); err != nil {
		return Product{}, err
	}
	return s.products.Create(ctx, payload)
}

// UpdateProduct applies the normalised body to the product addressed by
// identifier, trying the application id before the storage id.
func (s *Service) UpdateProduct(ctx context.Context, identifier string, body Body) (Product, error) {
	payload := BuildProductPayload(body)
	if err := s.check(payload); err != nil {
		return Product{}, err
	}
	return s.products.Update(ctx, identifier, payload)
}

// DeleteProduct removes the product addressed by identifier.
func (s *Service) DeleteProduct(ctx context.Context, identifier string) error {
	return s.products.Delete(ctx, identifier)
}

// ListSuppliers returns all suppliers.
func (s *Service) ListSuppliers(ctx context.Context) ([]Supplier, error) {
	return s.suppliers.List(ctx)
}

// CreateSupplier builds the canonical payload from the request body and
// inserts it.
func (s *Service) CreateSupplier(ctx context.Context, body Body) (Supplier, error) {
	payload := BuildSupplierPayload(body)
	if err := s.check(payload); err != nil {
		return Supplier{}, err
	}
	return s.suppliers.Create(ctx, payload)
}

// UpdateSupplier applies the normalised body to the supplier addressed by
// identifier.
func (s *Service) UpdateSupplier(ctx context.Context, identifier string, body Body) (Supplier, error) {
	payload := BuildSupplierPayload(body)
	if err := s.check(payload); err != nil {
		return Supplier{}, err
	}
	return s.suppliers.Update(ctx, identifier, payload)
}

// DeleteSupplier removes the supplier addressed by identifier.
func (s *Service) DeleteSupplier(ctx context.Context, identifier string) error {
	return s.suppliers.Delete(ctx, identifier)
}

// ListCategories returns all categories.
func (s *Service) ListCategories(ctx context.Context) ([]Category, error) {
	return s.categories.List(ctx)
}

// CreateCategory builds the canonical payload from the request body and
// inserts it.
func (s *Service) CreateCategory(ctx context.Context, body Body) (Category, error) {
	payload := BuildCategoryPayload(body)
	if err := s.check(payload); err != nil {
		return Category{}, err
	}
	return s.categories.Create(ctx, payload)
}

// UpdateCategory applies the normalised body to the category addressed by
// identifier.
func (s *Service) UpdateCategory(ctx context.Context, identifier string, body Body) (Category, error) {
	payload := BuildCategoryPayload(body)
	if err := s.check(payload); err != nil {
		return Category{}, err
	}
	return s.categories.Update(ctx, identifier, payload)
}

// DeleteCategory removes the category addressed by identifier.
func (s *Service) DeleteCategory(ctx context.Context, identifier string) error {
	return s.categories.Delete(ctx, identifier)
}

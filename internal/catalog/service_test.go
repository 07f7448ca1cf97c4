package catalog

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/stockpilot/stockpilot/internal/platform/httpx"
)

// memoryProducts mimics the Mongo repository, including the two-tier
// identifier lookup and the sku/id uniqueness constraints.
type memoryProducts struct {
	items []Product
}

func (m *memoryProducts) List(ctx context.Context) ([]Product, error) {
	out := make([]Product, len(m.items))
	copy(out, m.items)
	return out, nil
}

func (m *memoryProducts) Create(ctx context.Context, payload ProductPayload) (Product, error) {
	for _, p := range m.items {
		if p.SKU == payload.SKU || p.ID == payload.ID {
			return Product{}, fmt.Errorf("product %q: %w", payload.SKU, httpx.ErrDuplicate)
		}
	}
	now := time.Now()
	product := Product{
		OID:         primitive.NewObjectID(),
		ID:          payload.ID,
		Name:        payload.Name,
		SKU:         payload.SKU,
		Category:    payload.Category,
		Price:       payload.Price,
		Quantity:    payload.Quantity,
		Supplier:    payload.Supplier,
		Description: payload.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	m.items = append(m.items, product)
	return product, nil
}

func (m *memoryProducts) find(identifier string) int {
	for i, p := range m.items {
		if p.ID == identifier {
			return i
		}
	}
	for i, p := range m.items {
		if p.OID.Hex() == identifier {
			return i
		}
	}
	return -1
}

func (m *memoryProducts) Update(ctx context.Context, identifier string, payload ProductPayload) (Product, error) {
	i := m.find(identifier)
	if i < 0 {
		return Product{}, httpx.ErrNotFound
	}
	p := &m.items[i]
	p.ID = payload.ID
	p.Name = payload.Name
	p.SKU = payload.SKU
	p.Category = payload.Category
	p.Price = payload.Price
	p.Quantity = payload.Quantity
	p.Supplier = payload.Supplier
	p.Description = payload.Description
	p.UpdatedAt = time.Now()
	return *p, nil
}

func (m *memoryProducts) Delete(ctx context.Context, identifier string) error {
	i := m.find(identifier)
	if i < 0 {
		return httpx.ErrNotFound
	}
	m.items = append(m.items[:i], m.items[i+1:]...)
	return nil
}

type memorySuppliers struct {
	items []Supplier
}

func (m *memorySuppliers) List(ctx context.Context) ([]Supplier, error) {
	out := make([]Supplier, len(m.items))
	copy(out, m.items)
	return out, nil
}

func (m *memorySuppliers) Create(ctx context.Context, payload SupplierPayload) (Supplier, error) {
	for _, s := range m.items {
		if s.Email == payload.Email || s.ID == payload.ID {
			return Supplier{}, fmt.Errorf("supplier %q: %w", payload.Email, httpx.ErrDuplicate)
		}
	}
	supplier := Supplier{
		OID: primitive.NewObjectID(), ID: payload.ID, Name: payload.Name,
		Email: payload.Email, Phone: payload.Phone, Website: payload.Website,
		Address: payload.Address, City: payload.City, State: payload.State,
		Zip: payload.Zip, Country: payload.Country, Notes: payload.Notes,
		CreatedAt: time.Now(), UpdatedAt: time.Now(),
	}
	m.items = append(m.items, supplier)
	return supplier, nil
}

func (m *memorySuppliers) Update(ctx context.Context, identifier string, payload SupplierPayload) (Supplier, error) {
	for i, s := range m.items {
		if fmt.Sprint(s.ID) == identifier || s.OID.Hex() == identifier {
			m.items[i].Name = payload.Name
			m.items[i].Email = payload.Email
			m.items[i].Country = payload.Country
			m.items[i].UpdatedAt = time.Now()
			return m.items[i], nil
		}
	}
	return Supplier{}, httpx.ErrNotFound
}

func (m *memorySuppliers) Delete(ctx context.Context, identifier string) error {
	for i, s := range m.items {
		if fmt.Sprint(s.ID) == identifier || s.OID.Hex() == identifier {
			m.items = append(m.items[:i], m.items[i+1:]...)
			return nil
		}
	}
	return httpx.ErrNotFound
}

type memoryCategories struct {
	items []Category
}

func (m *memoryCategories) List(ctx context.Context) ([]Category, error) {
	out := make([]Category, len(m.items))
	copy(out, m.items)
	return out, nil
}

func (m *memoryCategories) Create(ctx context.Context, payload CategoryPayload) (Category, error) {
	for _, c := range m.items {
		if c.Name == payload.Name || c.ID == payload.ID {
			return Category{}, fmt.Errorf("category %q: %w", payload.Name, httpx.ErrDuplicate)
		}
	}
	category := Category{
		OID: primitive.NewObjectID(), ID: payload.ID, Name: payload.Name,
		Description: payload.Description, Color: payload.Color, Icon: payload.Icon,
		Status: payload.Status, CreatedAt: time.Now(), UpdatedAt: time.Now(),
	}
	m.items = append(m.items, category)
	return category, nil
}

func (m *memoryCategories) Update(ctx context.Context, identifier string, payload CategoryPayload) (Category, error) {
	for i, c := range m.items {
		if fmt.Sprint(c.ID) == identifier || c.OID.Hex() == identifier {
			m.items[i].Name = payload.Name
			m.items[i].Color = payload.Color
			m.items[i].Status = payload.Status
			m.items[i].UpdatedAt = time.Now()
			return m.items[i], nil
		}
	}
	return Category{}, httpx.ErrNotFound
}

func (m *memoryCategories) Delete(ctx context.Context, identifier string) error {
	for i, c := range m.items {
		if fmt.Sprint(c.ID) == identifier || c.OID.Hex() == identifier {
			m.items = append(m.items[:i], m.items[i+1:]...)
			return nil
		}
	}
	return httpx.ErrNotFound
}

func newTestService() (*Service, *memoryProducts) {
	products := &memoryProducts{}
	return NewService(products, &memorySuppliers{}, &memoryCategories{}), products
}

func productBody(sku string) Body {
	return Body{
		"productName":     "USB Hub",
		"productSKU":      sku,
		"productCategory": "Accessories",
		"productPrice":    "24.99",
		"productQuantity": "30",
		"productSupplier": "tech-supplies",
	}
}

func TestCreateProductPersistsCanonicalPayload(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	product, err := svc.CreateProduct(ctx, productBody("HUB-01"))
	require.NoError(t, err)
	require.Equal(t, "USB Hub", product.Name)
	require.Equal(t, "Tech Supplies Co.", product.Supplier)
	require.NotEmpty(t, product.ID)

	listed, err := svc.ListProducts(ctx)
	require.NoError(t, err)
	require.Len(t, listed, 1)
}

func TestCreateProductDuplicateSKU(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	first := productBody("HUB-01")
	first["id"] = "p-1"
	_, err := svc.CreateProduct(ctx, first)
	require.NoError(t, err)

	clash := productBody("HUB-01")
	clash["id"] = "p-2"
	_, err = svc.CreateProduct(ctx, clash)
	require.ErrorIs(t, err, httpx.ErrDuplicate)

	unique := productBody("HUB-02")
	unique["id"] = "p-3"
	_, err = svc.CreateProduct(ctx, unique)
	require.NoError(t, err)
}

func TestCreateProductMissingNameFailsValidation(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.CreateProduct(context.Background(), Body{"productSKU": "HUB-01"})
	require.ErrorIs(t, err, httpx.ErrValidation)
}

func TestUpdateProductByApplicationID(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	body := productBody("HUB-01")
	body["id"] = "1700000000000"
	created, err := svc.CreateProduct(ctx, body)
	require.NoError(t, err)

	body["productQuantity"] = "5"
	updated, err := svc.UpdateProduct(ctx, "1700000000000", body)
	require.NoError(t, err)
	require.Equal(t, 5, updated.Quantity)
	require.Equal(t, created.ID, updated.ID)

	listed, err := svc.ListProducts(ctx)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	require.Equal(t, 5, listed[0].Quantity)
}

func TestUpdateProductFallsBackToStorageID(t *testing.T) {
	svc, products := newTestService()
	ctx := context.Background()

	body := productBody("HUB-01")
	body["id"] = "legacy"
	_, err := svc.CreateProduct(ctx, body)
	require.NoError(t, err)

	oid := products.items[0].OID.Hex()
	body["productQuantity"] = "9"
	updated, err := svc.UpdateProduct(ctx, oid, body)
	require.NoError(t, err)
	require.Equal(t, 9, updated.Quantity)
}

func TestUpdateProductNotFound(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.UpdateProduct(context.Background(), "missing", productBody("HUB-01"))
	require.ErrorIs(t, err, httpx.ErrNotFound)
}

func TestDeleteProductIsIdempotentlyReported(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	body := productBody("HUB-01")
	body["id"] = "p-1"
	_, err := svc.CreateProduct(ctx, body)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteProduct(ctx, "p-1"))

	listed, err := svc.ListProducts(ctx)
	require.NoError(t, err)
	require.Empty(t, listed)

	// Second delete reports not-found rather than raising.
	require.ErrorIs(t, svc.DeleteProduct(ctx, "p-1"), httpx.ErrNotFound)
}

func TestCreateSupplierDefaultsAndUniqueness(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	supplier, err := svc.CreateSupplier(ctx, Body{
		"supplierName":  "Vision Tech",
		"supplierEmail": "sales@visiontech.example",
	})
	require.NoError(t, err)
	require.Equal(t, "Lebanon", supplier.Country)

	_, err = svc.CreateSupplier(ctx, Body{
		"supplierName":  "Vision Tech 2",
		"supplierEmail": "sales@visiontech.example",
	})
	require.ErrorIs(t, err, httpx.ErrDuplicate)
}

func TestCategoryStatusValidation(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.CreateCategory(ctx, Body{"categoryName": "Cables", "categoryStatus": "archived"})
	require.ErrorIs(t, err, httpx.ErrValidation)

	category, err := svc.CreateCategory(ctx, Body{"categoryName": "Cables"})
	require.NoError(t, err)
	require.Equal(t, CategoryStatusActive, category.Status)
}

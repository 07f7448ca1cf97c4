package catalog

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockpilot/stockpilot/internal/shared"
	"github.com/stockpilot/stockpilot/internal/view"
)

func newTestRouter(t *testing.T) (http.Handler, *Service) {
	t.Helper()
	svc, _ := newTestService()
	templates, err := view.NewEngine()
	require.NoError(t, err)
	logger := slog.New(slog.NewTextHandler(&strings.Builder{}, nil))
	h := NewHandler(logger, svc, templates, shared.NewCSRFManager("test"))

	r := chi.NewRouter()
	r.Route("/products", h.MountProductRoutes)
	r.Route("/suppliers", h.MountSupplierRoutes)
	r.Route("/categories", h.MountCategoryRoutes)
	return r, svc
}

func postForm(t *testing.T, router http.Handler, path string, form url.Values, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func productForm(sku string) url.Values {
	return url.Values{
		"productName":     {"USB Hub"},
		"productSKU":      {sku},
		"productCategory": {"Accessories"},
		"productPrice":    {"24.99"},
		"productQuantity": {"30"},
		"productSupplier": {"tech-supplies"},
	}
}

func TestCreateProductFormRedirects(t *testing.T) {
	router, _ := newTestRouter(t)

	rr := postForm(t, router, "/products/add", productForm("HUB-01"), nil)

	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/products", rr.Header().Get("Location"))
}

func TestCreateProductXHRReturnsJSON(t *testing.T) {
	router, _ := newTestRouter(t)

	rr := postForm(t, router, "/products/add", productForm("HUB-01"),
		map[string]string{"X-Requested-With": "XMLHttpRequest"})

	require.Equal(t, http.StatusOK, rr.Code)
	var body struct {
		Success bool    `json:"success"`
		Product Product `json:"product"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, "HUB-01", body.Product.SKU)
	assert.Equal(t, "Tech Supplies Co.", body.Product.Supplier)
}

func TestCreateProductAcceptHeaderNegotiation(t *testing.T) {
	router, _ := newTestRouter(t)

	rr := postForm(t, router, "/products/add", productForm("HUB-01"),
		map[string]string{"Accept": "application/json, text/plain, */*"})

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"success":true`)
}

func TestUpdateMissingProductReturns404(t *testing.T) {
	router, _ := newTestRouter(t)

	rr := postForm(t, router, "/products/update/nope", productForm("HUB-01"),
		map[string]string{"Accept": "application/json"})

	require.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), `"success":false`)
}

func TestDuplicateSKUReturns400(t *testing.T) {
	router, _ := newTestRouter(t)

	first := postForm(t, router, "/products/add", productForm("HUB-01"),
		map[string]string{"Accept": "application/json"})
	require.Equal(t, http.StatusOK, first.Code)

	second := postForm(t, router, "/products/add", productForm("HUB-01"),
		map[string]string{"Accept": "application/json"})
	assert.Equal(t, http.StatusBadRequest, second.Code)
	assert.Contains(t, second.Body.String(), `"success":false`)
}

func TestDeleteProductTwice(t *testing.T) {
	router, _ := newTestRouter(t)

	form := productForm("HUB-01")
	form.Set("id", "p-1")
	created := postForm(t, router, "/products/add", form,
		map[string]string{"Accept": "application/json"})
	require.Equal(t, http.StatusOK, created.Code)

	headers := map[string]string{"X-Requested-With": "XMLHttpRequest"}
	first := postForm(t, router, "/products/delete/p-1", url.Values{}, headers)
	assert.Equal(t, http.StatusOK, first.Code)

	second := postForm(t, router, "/products/delete/p-1", url.Values{}, headers)
	assert.Equal(t, http.StatusNotFound, second.Code)
}

func TestCategoriesAPIListsJSON(t *testing.T) {
	router, _ := newTestRouter(t)

	created := postForm(t, router, "/categories/add", url.Values{"categoryName": {"Cables"}},
		map[string]string{"Accept": "application/json"})
	require.Equal(t, http.StatusOK, created.Code)

	req := httptest.NewRequest(http.MethodGet, "/categories/api", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var body struct {
		Success    bool       `json:"success"`
		Categories []Category `json:"categories"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.True(t, body.Success)
	require.Len(t, body.Categories, 1)
	assert.Equal(t, "#3498db", body.Categories[0].Color)
}

func TestValidationFailureRedirectsBrowserWithFlash(t *testing.T) {
	router, _ := newTestRouter(t)

	rr := postForm(t, router, "/products/add", url.Values{"productSKU": {"HUB-01"}}, nil)

	// Browser clients are sent back to the listing page.
	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/products", rr.Header().Get("Location"))
}

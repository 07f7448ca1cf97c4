package catalog

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/stockpilot/stockpilot/internal/platform/httpx"
	"github.com/stockpilot/stockpilot/internal/shared"
	"github.com/stockpilot/stockpilot/internal/view"
)

// Handler serves the catalog pages and their JSON API.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	templates *view.Engine
	csrf      *shared.CSRFManager
}

// NewHandler builds Handler instance.
func NewHandler(logger *slog.Logger, service *Service, templates *view.Engine, csrf *shared.CSRFManager) *Handler {
	return &Handler{logger: logger, service: service, templates: templates, csrf: csrf}
}

// MountProductRoutes registers the product routes.
func (h *Handler) MountProductRoutes(r chi.Router) {
	r.Get("/", h.listProducts)
	r.Get("/add", h.showProductForm)
	r.Post("/add", h.createProduct)
	r.Post("/update/{id}", h.updateProduct)
	r.Post("/delete/{id}", h.deleteProduct)
}

// MountSupplierRoutes registers the supplier routes.
func (h *Handler) MountSupplierRoutes(r chi.Router) {
	r.Get("/", h.listSuppliers)
	r.Post("/add", h.createSupplier)
	r.Post("/update/{id}", h.updateSupplier)
	r.Post("/delete/{id}", h.deleteSupplier)
}

// MountCategoryRoutes registers the category routes.
func (h *Handler) MountCategoryRoutes(r chi.Router) {
	r.Get("/", h.listCategories)
	r.Get("/api", h.categoriesAPI)
	r.Post("/add", h.createCategory)
	r.Post("/update/{id}", h.updateCategory)
	r.Post("/delete/{id}", h.deleteCategory)
}

// wantsJSON reports whether the client expects a JSON response instead of
// a redirect: async XHR clients and anyone accepting application/json.
func wantsJSON(r *http.Request) bool {
	if strings.EqualFold(r.Header.Get("X-Requested-With"), "XMLHttpRequest") {
		return true
	}
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}

// ============================================================================
// PRODUCT HANDLERS
// ============================================================================

func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.ListProducts(r.Context())
	if err != nil {
		h.logger.Error("list products failed", "error", err)
		http.Error(w, "Failed to load products", http.StatusInternalServerError)
		return
	}

	// Categories and suppliers feed the filter dropdowns on the page.
	categories, err := h.service.ListCategories(r.Context())
	if err != nil {
		h.logger.Error("list categories failed", "error", err)
		categories = []Category{}
	}
	suppliers, err := h.service.ListSuppliers(r.Context())
	if err != nil {
		h.logger.Error("list suppliers failed", "error", err)
		suppliers = []Supplier{}
	}

	h.render(w, r, "pages/products.html", "Product List", map[string]any{
		"Products":   products,
		"Categories": categories,
		"Suppliers":  suppliers,
	})
}

func (h *Handler) showProductForm(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.ListCategories(r.Context())
	if err != nil {
		h.logger.Error("list categories failed", "error", err)
		categories = []Category{}
	}
	suppliers, err := h.service.ListSuppliers(r.Context())
	if err != nil {
		h.logger.Error("list suppliers failed", "error", err)
		suppliers = []Supplier{}
	}

	h.render(w, r, "pages/product_form.html", "Add New Product", map[string]any{
		"Categories": categories,
		"Suppliers":  suppliers,
	})
}

func (h *Handler) createProduct(w http.ResponseWriter, r *http.Request) {
	product, err := h.service.CreateProduct(r.Context(), BodyFromRequest(r))
	if err != nil {
		h.fail(w, r, "/products", "create product", err)
		return
	}
	if wantsJSON(r) {
		httpx.JSON(w, http.StatusOK, map[string]any{"success": true, "product": product})
		return
	}
	h.redirectWithFlash(w, r, "/products", "success", "Product created successfully")
}

func (h *Handler) updateProduct(w http.ResponseWriter, r *http.Request) {
	product, err := h.service.UpdateProduct(r.Context(), chi.URLParam(r, "id"), BodyFromRequest(r))
	if err != nil {
		h.fail(w, r, "/products", "update product", err)
		return
	}
	if wantsJSON(r) {
		httpx.JSON(w, http.StatusOK, map[string]any{"success": true, "product": product})
		return
	}
	h.redirectWithFlash(w, r, "/products", "success", "Product updated successfully")
}

func (h *Handler) deleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteProduct(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.fail(w, r, "/products", "delete product", err)
		return
	}
	if wantsJSON(r) {
		httpx.JSON(w, http.StatusOK, map[string]any{"success": true})
		return
	}
	h.redirectWithFlash(w, r, "/products", "success", "Product deleted successfully")
}

// ============================================================================
// SUPPLIER HANDLERS
// ============================================================================

func (h *Handler) listSuppliers(w http.ResponseWriter, r *http.Request) {
	suppliers, err := h.service.ListSuppliers(r.Context())
	if err != nil {
		h.logger.Error("list suppliers failed", "error", err)
		http.Error(w, "Failed to load suppliers", http.StatusInternalServerError)
		return
	}

	h.render(w, r, "pages/suppliers.html", "Supplier List", map[string]any{
		"Suppliers": suppliers,
	})
}

func (h *Handler) createSupplier(w http.ResponseWriter, r *http.Request) {
	supplier, err := h.service.CreateSupplier(r.Context(), BodyFromRequest(r))
	if err != nil {
		h.fail(w, r, "/suppliers", "create supplier", err)
		return
	}
	if wantsJSON(r) {
		httpx.JSON(w, http.StatusOK, map[string]any{"success": true, "supplier": supplier})
		return
	}
	h.redirectWithFlash(w, r, "/suppliers", "success", "Supplier created successfully")
}

func (h *Handler) updateSupplier(w http.ResponseWriter, r *http.Request) {
	supplier, err := h.service.UpdateSupplier(r.Context(), chi.URLParam(r, "id"), BodyFromRequest(r))
	if err != nil {
		h.fail(w, r, "/suppliers", "update supplier", err)
		return
	}
	if wantsJSON(r) {
		httpx.JSON(w, http.StatusOK, map[string]any{"success": true, "supplier": supplier})
		return
	}
	h.redirectWithFlash(w, r, "/suppliers", "success", "Supplier updated successfully")
}

func (h *Handler) deleteSupplier(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteSupplier(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.fail(w, r, "/suppliers", "delete supplier", err)
		return
	}
	if wantsJSON(r) {
		httpx.JSON(w, http.StatusOK, map[string]any{"success": true})
		return
	}
	h.redirectWithFlash(w, r, "/suppliers", "success", "Supplier deleted successfully")
}

// ============================================================================
// CATEGORY HANDLERS
// ============================================================================

func (h *Handler) listCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.ListCategories(r.Context())
	if err != nil {
		h.logger.Error("list categories failed", "error", err)
		http.Error(w, "Failed to load categories", http.StatusInternalServerError)
		return
	}

	h.render(w, r, "pages/categories.html", "Category List", map[string]any{
		"Categories": categories,
	})
}

// categoriesAPI serves the category list as JSON for other pages, such as
// the product form selects.
func (h *Handler) categoriesAPI(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.ListCategories(r.Context())
	if err != nil {
		h.logger.Error("list categories failed", "error", err)
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"success": true, "categories": categories})
}

func (h *Handler) createCategory(w http.ResponseWriter, r *http.Request) {
	category, err := h.service.CreateCategory(r.Context(), BodyFromRequest(r))
	if err != nil {
		h.fail(w, r, "/categories", "create category", err)
		return
	}
	if wantsJSON(r) {
		httpx.JSON(w, http.StatusOK, map[string]any{"success": true, "category": category})
		return
	}
	h.redirectWithFlash(w, r, "/categories", "success", "Category created successfully")
}

func (h *Handler) updateCategory(w http.ResponseWriter, r *http.Request) {
	category, err := h.service.UpdateCategory(r.Context(), chi.URLParam(r, "id"), BodyFromRequest(r))
	if err != nil {
		h.fail(w, r, "/categories", "update category", err)
		return
	}
	if wantsJSON(r) {
		httpx.JSON(w, http.StatusOK, map[string]any{"success": true, "category": category})
		return
	}
	h.redirectWithFlash(w, r, "/categories", "success", "Category updated successfully")
}

func (h *Handler) deleteCategory(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteCategory(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.fail(w, r, "/categories", "delete category", err)
		return
	}
	if wantsJSON(r) {
		httpx.JSON(w, http.StatusOK, map[string]any{"success": true})
		return
	}
	h.redirectWithFlash(w, r, "/categories", "success", "Category deleted successfully")
}

// ============================================================================
// HELPER METHODS
// ============================================================================

func (h *Handler) render(w http.ResponseWriter, r *http.Request, template, title string, data map[string]any) {
	sess := shared.SessionFromContext(r.Context())
	csrfToken, _ := h.csrf.EnsureToken(r.Context(), sess)
	var flash *shared.FlashMessage
	if sess != nil {
		flash = sess.PopFlash()
	}
	viewData := view.TemplateData{
		Title:       title,
		CSRFToken:   csrfToken,
		Flash:       flash,
		CurrentPath: r.URL.Path,
		Data:        data,
	}
	if err := h.templates.Render(w, template, viewData); err != nil {
		h.logger.Error("render template", "error", err, "template", template)
	}
}

func (h *Handler) redirectWithFlash(w http.ResponseWriter, r *http.Request, location, kind, message string) {
	if sess := shared.SessionFromContext(r.Context()); sess != nil {
		sess.AddFlash(shared.FlashMessage{Kind: kind, Message: message})
	}
	http.Redirect(w, r, location, http.StatusSeeOther)
}

// fail reports an operation failure: JSON clients get the unified error
// envelope with a differentiated status code, browsers get a redirect back
// to the listing page with an error flash.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, location, op string, err error) {
	h.logger.Error(op+" failed", "error", err)
	if wantsJSON(r) {
		httpx.RespondError(w, err)
		return
	}
	h.redirectWithFlash(w, r, location, "error", err.Error())
}

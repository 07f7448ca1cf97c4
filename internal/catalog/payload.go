package catalog

import (
	"encoding/json"
	"mime"
	"net/http"
	"strconv"
	"time"
)

// Body is a flat request body: form fields or a JSON object. Values are
// kept as strings so form and API clients normalise through one path.
type Body map[string]string

// BodyFromRequest flattens the request body into a Body. Form submissions
// and JSON objects are both accepted; anything unreadable yields an empty
// Body, never an error, because the normaliser supplies defaults for every
// canonical field.
func BodyFromRequest(r *http.Request) Body {
	body := Body{}
	ct, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if ct == "application/json" {
		var raw map[string]any
		if err := json.NewDecoder(r.Body).Decode(&raw); err == nil {
			for k, v := range raw {
				body[k] = stringify(v)
			}
		}
		return body
	}
	if err := r.ParseForm(); err != nil {
		return body
	}
	for k, vs := range r.PostForm {
		if len(vs) > 0 {
			body[k] = vs[0]
		}
	}
	return body
}

func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case json.Number:
		return t.String()
	default:
		data, _ := json.Marshal(t)
		return string(data)
	}
}

// first returns the first non-empty value among the aliases, in the given
// precedence order (prefixed form-field name first, generic name second).
func (b Body) first(keys ...string) string {
	for _, k := range keys {
		if v := b[k]; v != "" {
			return v
		}
	}
	return ""
}

// number coerces the first non-empty alias to a float; unparseable or
// missing input coerces to 0.
func (b Body) number(keys ...string) float64 {
	v, err := strconv.ParseFloat(b.first(keys...), 64)
	if err != nil {
		return 0
	}
	return v
}

// integer behaves like number but truncates to an integer.
func (b Body) integer(keys ...string) int64 {
	return int64(b.number(keys...))
}

// supplierNames maps legacy form slugs to supplier display names. Older
// product forms submitted these slugs instead of the name itself.
var supplierNames = map[string]string{
	"tech-supplies":    "Tech Supplies Co.",
	"electroparts":     "ElectroParts Ltd.",
	"keyboard-masters": "KeyBoard Masters",
	"vision-tech":      "Vision Tech",
}

// BuildProductPayload normalises a request body into a canonical product
// payload. Missing ids are generated from the current Unix-millisecond
// timestamp, matching ids issued by earlier revisions.
func BuildProductPayload(b Body) ProductPayload {
	// A recognised slug in either alias wins before any raw value is
	// considered, so a legacy slug in the generic field still resolves
	// when the prefixed field carries a free-form name.
	supplier := ""
	for _, key := range []string{"productSupplier", "supplier"} {
		if name, ok := supplierNames[b[key]]; ok {
			supplier = name
			break
		}
	}
	if supplier == "" {
		supplier = b.first("productSupplier", "supplier")
	}
	id := b.first("id")
	if id == "" {
		id = strconv.FormatInt(time.Now().UnixMilli(), 10)
	}
	return ProductPayload{
		ID:          id,
		Name:        b.first("productName", "name"),
		SKU:         b.first("productSKU", "sku"),
		Category:    b.first("productCategory", "category"),
		Price:       b.number("productPrice", "price"),
		Quantity:    int(b.integer("productQuantity", "quantity")),
		Supplier:    supplier,
		Description: b.first("productDescription", "description"),
	}
}

// BuildSupplierPayload normalises a request body into a canonical supplier
// payload.
func BuildSupplierPayload(b Body) SupplierPayload {
	id := b.integer("id")
	if id == 0 {
		id = time.Now().UnixMilli()
	}
	country := b.first("supplierCountry", "country")
	if country == "" {
		country = "Lebanon"
	}
	return SupplierPayload{
		ID:      id,
		Name:    b.first("supplierName", "name"),
		Email:   b.first("supplierEmail", "email"),
		Phone:   b.integer("supplierPhone", "phone"),
		Website: b.first("supplierWebsite", "website"),
		Address: b.first("supplierAddress", "address"),
		City:    b.first("supplierCity", "city"),
		State:   b.first("supplierState", "state"),
		Zip:     b.integer("supplierZip", "zip"),
		Country: country,
		Notes:   b.first("supplierNotes", "notes"),
	}
}

// BuildCategoryPayload normalises a request body into a canonical category
// payload.
func BuildCategoryPayload(b Body) CategoryPayload {
	id := b.integer("id")
	if id == 0 {
		id = time.Now().UnixMilli()
	}
	color := b.first("categoryColor", "color")
	if color == "" {
		color = "#3498db"
	}
	icon := b.first("categoryIcon", "icon")
	if icon == "" {
		icon = "fa-tag"
	}
	status := CategoryStatus(b.first("categoryStatus", "status"))
	if status == "" {
		status = CategoryStatusActive
	}
	return CategoryPayload{
		ID:          id,
		Name:        b.first("categoryName", "name"),
		Description: b.first("categoryDescription", "description"),
		Color:       color,
		Icon:        icon,
		Status:      status,
	}
}

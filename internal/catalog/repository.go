package catalog

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/stockpilot/stockpilot/internal/platform/httpx"
)

// Collection names in the product-inventory database.
const (
	productsCollection   = "products"
	suppliersCollection  = "suppliers"
	categoriesCollection = "categories"
)

// idKind selects how the application-level id field is coerced during
// identifier resolution.
type idKind int

const (
	stringID idKind = iota
	numericID
)

// identifierFilters builds the candidate filters for the two-tier lookup,
// in precedence order: the application-level id field (coerced to the
// entity's declared type) first, then the storage-generated ObjectID.
// Records created before the id field existed are only addressable by
// ObjectID, so the fallback keeps them reachable without a migration.
func identifierFilters(identifier string, kind idKind) []bson.M {
	var filters []bson.M
	switch kind {
	case numericID:
		if n, err := strconv.ParseInt(identifier, 10, 64); err == nil {
			filters = append(filters, bson.M{"id": n})
		}
	default:
		filters = append(filters, bson.M{"id": identifier})
	}
	if oid, err := primitive.ObjectIDFromHex(identifier); err == nil {
		filters = append(filters, bson.M{"_id": oid})
	}
	return filters
}

// findOneAndUpdate runs the two-tier lookup, applying the update against
// the first filter that matches and decoding the post-update document
// into out. Returns httpx.ErrNotFound when no filter matches.
func findOneAndUpdate(ctx context.Context, coll *mongo.Collection, filters []bson.M, update any, out any) error {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	for _, filter := range filters {
		err := coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(out)
		if err == nil {
			return nil
		}
		if err != mongo.ErrNoDocuments {
			return fmt.Errorf("catalog: update %s: %w", coll.Name(), err)
		}
	}
	return httpx.ErrNotFound
}

// findOneAndDelete mirrors findOneAndUpdate for deletions.
func findOneAndDelete(ctx context.Context, coll *mongo.Collection, filters []bson.M) error {
	for _, filter := range filters {
		err := coll.FindOneAndDelete(ctx, filter).Err()
		if err == nil {
			return nil
		}
		if err != mongo.ErrNoDocuments {
			return fmt.Errorf("catalog: delete %s: %w", coll.Name(), err)
		}
	}
	return httpx.ErrNotFound
}

func uniqueIndexes(fields ...string) []mongo.IndexModel {
	models := make([]mongo.IndexModel, 0, len(fields))
	for _, f := range fields {
		models = append(models, mongo.IndexModel{
			Keys:    bson.D{{Key: f, Value: 1}},
			Options: options.Index().SetUnique(true),
		})
	}
	return models
}

// ProductRepository persists products in MongoDB.
type ProductRepository struct {
	coll *mongo.Collection
}

// NewProductRepository constructs ProductRepository.
func NewProductRepository(db *mongo.Database) *ProductRepository {
	return &ProductRepository{coll: db.Collection(productsCollection)}
}

// EnsureIndexes creates the uniqueness constraints for products.
func (r *ProductRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateMany(ctx, uniqueIndexes("id", "sku"))
	if err != nil {
		return fmt.Errorf("catalog: product indexes: %w", err)
	}
	return nil
}

// List returns every product; filtering is a presentation concern.
func (r *ProductRepository) List(ctx context.Context) ([]Product, error) {
	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("catalog: list products: %w", err)
	}
	var products []Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("catalog: decode products: %w", err)
	}
	return products, nil
}

// Create inserts a new product.
func (r *ProductRepository) Create(ctx context.Context, payload ProductPayload) (Product, error) {
	now := time.Now()
	product := Product{
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
	res, err := r.coll.InsertOne(ctx, product)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return Product{}, fmt.Errorf("product %q: %w", payload.SKU, httpx.ErrDuplicate)
		}
		return Product{}, fmt.Errorf("catalog: insert product: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		product.OID = oid
	}
	return product, nil
}

// Update applies the payload to the product matched by the two-tier
// identifier lookup and returns the updated record.
func (r *ProductRepository) Update(ctx context.Context, identifier string, payload ProductPayload) (Product, error) {
	update := bson.M{
		"$set":         payload,
		"$currentDate": bson.M{"updatedAt": true},
	}
	var product Product
	if err := findOneAndUpdate(ctx, r.coll, identifierFilters(identifier, stringID), update, &product); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return Product{}, fmt.Errorf("product %q: %w", payload.SKU, httpx.ErrDuplicate)
		}
		return Product{}, err
	}
	return product, nil
}

// Delete removes the product matched by the two-tier identifier lookup.
func (r *ProductRepository) Delete(ctx context.Context, identifier string) error {
	return findOneAndDelete(ctx, r.coll, identifierFilters(identifier, stringID))
}

// SupplierRepository persists suppliers in MongoDB.
type SupplierRepository struct {
	coll *mongo.Collection
}

// NewSupplierRepository constructs SupplierRepository.
func NewSupplierRepository(db *mongo.Database) *SupplierRepository {
	return &SupplierRepository{coll: db.Collection(suppliersCollection)}
}

// EnsureIndexes creates the uniqueness constraints for suppliers.
func (r *SupplierRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateMany(ctx, uniqueIndexes("id", "email"))
	if err != nil {
		return fmt.Errorf("catalog: supplier indexes: %w", err)
	}
	return nil
}

// List returns every supplier.
func (r *SupplierRepository) List(ctx context.Context) ([]Supplier, error) {
	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("catalog: list suppliers: %w", err)
	}
	var suppliers []Supplier
	if err := cursor.All(ctx, &suppliers); err != nil {
		return nil, fmt.Errorf("catalog: decode suppliers: %w", err)
	}
	return suppliers, nil
}

// Create inserts a new supplier.
func (r *SupplierRepository) Create(ctx context.Context, payload SupplierPayload) (Supplier, error) {
	now := time.Now()
	supplier := Supplier{
		ID:        payload.ID,
		Name:      payload.Name,
		Email:     payload.Email,
		Phone:     payload.Phone,
		Website:   payload.Website,
		Address:   payload.Address,
		City:      payload.City,
		State:     payload.State,
		Zip:       payload.Zip,
		Country:   payload.Country,
		Notes:     payload.Notes,
		CreatedAt: now,
		UpdatedAt: now,
	}
	res, err := r.coll.InsertOne(ctx, supplier)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return Supplier{}, fmt.Errorf("supplier %q: %w", payload.Email, httpx.ErrDuplicate)
		}
		return Supplier{}, fmt.Errorf("catalog: insert supplier: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		supplier.OID = oid
	}
	return supplier, nil
}

// Update applies the payload to the supplier matched by the two-tier
// identifier lookup.
func (r *SupplierRepository) Update(ctx context.Context, identifier string, payload SupplierPayload) (Supplier, error) {
	update := bson.M{
		"$set":         payload,
		"$currentDate": bson.M{"updatedAt": true},
	}
	var supplier Supplier
	if err := findOneAndUpdate(ctx, r.coll, identifierFilters(identifier, numericID), update, &supplier); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return Supplier{}, fmt.Errorf("supplier %q: %w", payload.Email, httpx.ErrDuplicate)
		}
		return Supplier{}, err
	}
	return supplier, nil
}

// Delete removes the supplier matched by the two-tier identifier lookup.
func (r *SupplierRepository) Delete(ctx context.Context, identifier string) error {
	return findOneAndDelete(ctx, r.coll, identifierFilters(identifier, numericID))
}

// CategoryRepository persists categories in MongoDB.
type CategoryRepository struct {
	coll *mongo.Collection
}

// NewCategoryRepository constructs CategoryRepository.
func NewCategoryRepository(db *mongo.Database) *CategoryRepository {
	return &CategoryRepository{coll: db.Collection(categoriesCollection)}
}

// EnsureIndexes creates the uniqueness constraints for categories.
func (r *CategoryRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateMany(ctx, uniqueIndexes("id", "name"))
	if err != nil {
		return fmt.Errorf("catalog: category indexes: %w", err)
	}
	return nil
}

// List returns every category.
func (r *CategoryRepository) List(ctx context.Context) ([]Category, error) {
	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("catalog: list categories: %w", err)
	}
	var categories []Category
	if err := cursor.All(ctx, &categories); err != nil {
		return nil, fmt.Errorf("catalog: decode categories: %w", err)
	}
	return categories, nil
}

// Create inserts a new category.
func (r *CategoryRepository) Create(ctx context.Context, payload CategoryPayload) (Category, error) {
	now := time.Now()
	category := Category{
		ID:          payload.ID,
		Name:        payload.Name,
		Description: payload.Description,
		Color:       payload.Color,
		Icon:        payload.Icon,
		Status:      payload.Status,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	res, err := r.coll.InsertOne(ctx, category)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return Category{}, fmt.Errorf("category %q: %w", payload.Name, httpx.ErrDuplicate)
		}
		return Category{}, fmt.Errorf("catalog: insert category: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		category.OID = oid
	}
	return category, nil
}

// Update applies the payload to the category matched by the two-tier
// identifier lookup.
func (r *CategoryRepository) Update(ctx context.Context, identifier string, payload CategoryPayload) (Category, error) {
	update := bson.M{
		"$set":         payload,
		"$currentDate": bson.M{"updatedAt": true},
	}
	var category Category
	if err := findOneAndUpdate(ctx, r.coll, identifierFilters(identifier, numericID), update, &category); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return Category{}, fmt.Errorf("category %q: %w", payload.Name, httpx.ErrDuplicate)
		}
		return Category{}, err
	}
	return category, nil
}

// Delete removes the category matched by the two-tier identifier lookup.
func (r *CategoryRepository) Delete(ctx context.Context, identifier string) error {
	return findOneAndDelete(ctx, r.coll, identifierFilters(identifier, numericID))
}

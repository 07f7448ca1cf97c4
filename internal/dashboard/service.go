package dashboard

import (
	"context"
	"fmt"
	"sort"

	"github.com/stockpilot/stockpilot/internal/catalog"
)

// transactionDateLayout matches the en-US locale string the pages expect.
const transactionDateLayout = "01/02/2006, 03:04 PM"

// ProductSource and SupplierSource are the read-only slices of the catalog
// the dashboard aggregates over.
type ProductSource interface {
	List(ctx context.Context) ([]catalog.Product, error)
}

type SupplierSource interface {
	List(ctx context.Context) ([]catalog.Supplier, error)
}

// Service computes the dashboard summary from the current catalog state.
// Nothing is cached; every request reads fresh data.
type Service struct {
	products  ProductSource
	suppliers SupplierSource
}

// NewService constructs Service.
func NewService(products ProductSource, suppliers SupplierSource) *Service {
	return &Service{products: products, suppliers: suppliers}
}

// Summarize builds the full dashboard summary.
func (s *Service) Summarize(ctx context.Context) (Summary, error) {
	products, err := s.products.List(ctx)
	if err != nil {
		return Summary{}, fmt.Errorf("load products: %w", err)
	}
	suppliers, err := s.suppliers.List(ctx)
	if err != nil {
		return Summary{}, fmt.Errorf("load suppliers: %w", err)
	}

	lowStock := make([]catalog.Product, 0, len(products))
	inventoryValue := 0.0
	for _, p := range products {
		if p.Quantity < LowStockThreshold {
			lowStock = append(lowStock, p)
		}
		inventoryValue += p.Price * float64(p.Quantity)
	}

	// One ascending sort feeds both the alerts and the restock suggestions.
	sort.SliceStable(lowStock, func(i, j int) bool {
		return lowStock[i].Quantity < lowStock[j].Quantity
	})

	return Summary{
		Stats: Stats{
			TotalProducts:  len(products),
			TotalSuppliers: len(suppliers),
			LowStockCount:  len(lowStock),
			InventoryValue: inventoryValue,
		},
		Alerts:               buildAlerts(lowStock),
		Suggested:            head(lowStock, maxSuggested),
		StockLevels:          buildStockLevels(products),
		RecentTransactions:   buildTransactions(products),
		CategoryDistribution: buildCategoryDistribution(products),
		ValueByCategory:      buildValueByCategory(products),
	}, nil
}

func head(products []catalog.Product, n int) []catalog.Product {
	if len(products) > n {
		products = products[:n]
	}
	out := make([]catalog.Product, len(products))
	copy(out, products)
	return out
}

func buildAlerts(lowStock []catalog.Product) []Alert {
	alerts := make([]Alert, 0, maxAlerts)
	for _, p := range head(lowStock, maxAlerts) {
		urgency := "warning"
		if p.Quantity < UrgentThreshold {
			urgency = "urgent"
		}
		alerts = append(alerts, Alert{Product: p, Urgency: urgency})
	}
	return alerts
}

// buildStockLevels picks the best stocked products for the chart, with
// names shortened to keep the axis labels readable.
func buildStockLevels(products []catalog.Product) []StockLevel {
	sorted := make([]catalog.Product, len(products))
	copy(sorted, products)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Quantity > sorted[j].Quantity
	})
	if len(sorted) > maxStockLevels {
		sorted = sorted[:maxStockLevels]
	}

	levels := make([]StockLevel, 0, len(sorted))
	for _, p := range sorted {
		name := p.Name
		// Truncation counts characters, not bytes, so multi-byte names
		// never split mid-rune.
		if runes := []rune(name); len(runes) > stockLevelNameLen {
			name = string(runes[:stockLevelNameLen]) + "..."
		}
		levels = append(levels, StockLevel{
			Name:     name,
			Quantity: p.Quantity,
			IsLow:    p.Quantity < LowStockThreshold,
		})
	}
	return levels
}

// buildTransactions synthesises an activity feed from the most recently
// updated products.
func buildTransactions(products []catalog.Product) []TransactionRow {
	sorted := make([]catalog.Product, len(products))
	copy(sorted, products)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].UpdatedAt.After(sorted[j].UpdatedAt)
	})
	if len(sorted) > maxTransactions {
		sorted = sorted[:maxTransactions]
	}

	rows := make([]TransactionRow, 0, len(sorted))
	for _, p := range sorted {
		rows = append(rows, TransactionRow{
			Date:        p.UpdatedAt.Format(transactionDateLayout),
			ProductName: p.Name,
			SKU:         p.SKU,
			Type:        "update",
			Quantity:    p.Quantity,
			Status:      "completed",
		})
	}
	return rows
}

func buildCategoryDistribution(products []catalog.Product) map[string]int {
	distribution := make(map[string]int)
	for _, p := range products {
		category := p.Category
		if category == "" {
			category = "Uncategorized"
		}
		distribution[category]++
	}
	return distribution
}

func buildValueByCategory(products []catalog.Product) map[string]float64 {
	values := make(map[string]float64)
	for _, p := range products {
		category := p.Category
		if category == "" {
			category = "Uncategorized"
		}
		values[category] += p.Price * float64(p.Quantity)
	}
	return values
}

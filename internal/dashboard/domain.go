package dashboard

import "github.com/stockpilot/stockpilot/internal/catalog"

const (
	// LowStockThreshold marks a product as running low.
	LowStockThreshold = 20
	// UrgentThreshold marks a low-stock product as urgent rather than a warning.
	UrgentThreshold = 10

	maxAlerts         = 3
	maxSuggested      = 4
	maxStockLevels    = 8
	maxTransactions   = 4
	stockLevelNameLen = 15
)

// Stats holds the headline counters shown at the top of the dashboard.
type Stats struct {
	TotalProducts  int     `json:"totalProducts"`
	TotalSuppliers int     `json:"totalSuppliers"`
	LowStockCount  int     `json:"lowStockCount"`
	InventoryValue float64 `json:"inventoryValue"`
}

// Alert is a low-stock product annotated with how urgent the restock is.
type Alert struct {
	catalog.Product
	Urgency string `json:"urgency"`
}

// StockLevel is one bar of the stock-level chart.
type StockLevel struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	IsLow    bool   `json:"isLow"`
}

// TransactionRow is a synthesised activity entry derived from the most
// recently updated products. There is no dedicated transaction ledger.
type TransactionRow struct {
	Date        string `json:"date"`
	ProductName string `json:"productName"`
	SKU         string `json:"sku"`
	Type        string `json:"type"`
	Quantity    int    `json:"quantity"`
	Status      string `json:"status"`
}

// Summary aggregates everything the dashboard page and its JSON API expose.
type Summary struct {
	Stats                Stats              `json:"stats"`
	Alerts               []Alert            `json:"alerts"`
	Suggested            []catalog.Product  `json:"suggestedItems"`
	StockLevels          []StockLevel       `json:"stockLevels"`
	RecentTransactions   []TransactionRow   `json:"recentTransactions"`
	CategoryDistribution map[string]int     `json:"categoryDistribution"`
	ValueByCategory      map[string]float64 `json:"valueByCategory"`
}

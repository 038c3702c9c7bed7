package model

// StatusResponse represents the outcome of the most recent normalization
// attempt, rendered for display
type StatusResponse struct {
	Message string `json:"message"`
	Level   string `json:"level"`
}

// TableRowResponse represents a single display-ready record row
type TableRowResponse struct {
	Date    string  `json:"date"`
	Product string  `json:"product"`
	Sales   string  `json:"sales"`
	Amount  float64 `json:"amount"`
}

// RecordsResponse represents the records table
type RecordsResponse struct {
	Data  []TableRowResponse `json:"data"`
	Count int                `json:"count"`
}

// DailyPointResponse represents one point of the daily sales series
type DailyPointResponse struct {
	Date  string  `json:"date"`
	Total float64 `json:"total"`
}

// DailySalesResponse represents the daily sales chart data
type DailySalesResponse struct {
	Data  []DailyPointResponse `json:"data"`
	Color string               `json:"color"`
}

// ProductTotalResponse represents one bar of the top products chart
type ProductTotalResponse struct {
	Product string  `json:"product"`
	Total   float64 `json:"total"`
}

// TopProductsResponse represents the top products chart data
type TopProductsResponse struct {
	Data  []ProductTotalResponse `json:"data"`
	Color string                 `json:"color"`
}

// StatsResponse represents the summary statistics panel
type StatsResponse struct {
	TotalSales       string `json:"totalSales"`
	AverageSale      string `json:"averageSale"`
	DistinctProducts int    `json:"distinctProducts"`
	RecordCount      int    `json:"recordCount"`
}

// MutationResponse pairs a status message with the resulting record count
type MutationResponse struct {
	Status StatusResponse `json:"status"`
	Count  int            `json:"count"`
}

// ErrorResponse represents a standard error response
type ErrorResponse struct {
	Status  string        `json:"status"`
	Message string        `json:"message"`
	Details []ErrorDetail `json:"details,omitempty"`
}

// ErrorDetail represents detailed error information
type ErrorDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

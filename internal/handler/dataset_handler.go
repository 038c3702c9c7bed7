package handler

import (
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yooku98/sales-dashboard/internal/config"
	"github.com/yooku98/sales-dashboard/internal/domain"
	"github.com/yooku98/sales-dashboard/internal/model"
	"github.com/yooku98/sales-dashboard/internal/normalizer"
	"github.com/yooku98/sales-dashboard/internal/presenter"
	"github.com/yooku98/sales-dashboard/internal/service"
)

// DatasetHandler handles HTTP requests for dataset and dashboard operations
type DatasetHandler struct {
	datasetService service.DatasetService
	palette        config.Palette
}

// NewDatasetHandler creates a new dataset handler
func NewDatasetHandler(datasetService service.DatasetService, palette config.Palette) *DatasetHandler {
	return &DatasetHandler{
		datasetService: datasetService,
		palette:        palette,
	}
}

// UploadDataset handles the POST /datasets/upload endpoint
// @Summary Upload a sales spreadsheet
// @Description Upload a CSV or Excel file; accepted rows replace the entire record set
// @Tags datasets
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Spreadsheet file (.csv, .xlsx, .xls)"
// @Success 200 {object} model.MutationResponse "Dataset replaced"
// @Failure 400 {object} model.ErrorResponse "Bad request"
// @Failure 422 {object} model.MutationResponse "File could not be parsed"
// @Failure 500 {object} model.ErrorResponse "Internal server error"
// @Router /v1/datasets/upload [post]
func (h *DatasetHandler) UploadDataset(c *gin.Context) {
	file, header, err := getFormFile(c, "file")
	if err != nil {
		respondBadRequest(c, err.Error(), newErrorDetail("file", "Spreadsheet file is required"))
		return
	}
	defer file.Close()

	fileBytes, err := io.ReadAll(file)
	if err != nil {
		respondInternalServerError(c, ErrFileProcessing)
		return
	}

	outcome, err := h.datasetService.UploadDataset(c.Request.Context(), fileBytes, header.Filename)
	if err != nil {
		respondInternalServerError(c, fmt.Sprintf("Failed to process upload: %v", err))
		return
	}

	h.respondOutcome(c, outcome)
}

// AddRecord handles the POST /records endpoint
// @Summary Add a record manually
// @Description Validate a single date/product/sales entry and append it to the record set
// @Tags records
// @Accept json
// @Produce json
// @Param record body normalizer.EntryInput true "Record fields"
// @Success 201 {object} model.MutationResponse "Record appended"
// @Failure 400 {object} model.MutationResponse "Invalid entry"
// @Failure 500 {object} model.ErrorResponse "Internal server error"
// @Router /v1/records [post]
func (h *DatasetHandler) AddRecord(c *gin.Context) {
	var input normalizer.EntryInput
	if err := bindJSON(c, &input); err != nil {
		respondBadRequest(c, ErrInvalidInput)
		return
	}

	outcome, err := h.datasetService.AddEntry(c.Request.Context(), input)
	if err != nil {
		respondInternalServerError(c, fmt.Sprintf("Failed to add record: %v", err))
		return
	}

	h.respondOutcome(c, outcome)
}

// ClearRecords handles the DELETE /records endpoint
// @Summary Clear all records
// @Description Empty the record set unconditionally
// @Tags records
// @Produce json
// @Success 204 "Records cleared"
// @Failure 500 {object} model.ErrorResponse "Internal server error"
// @Router /v1/records [delete]
func (h *DatasetHandler) ClearRecords(c *gin.Context) {
	if err := h.datasetService.ClearDataset(c.Request.Context()); err != nil {
		respondInternalServerError(c, fmt.Sprintf("Failed to clear records: %v", err))
		return
	}
	respondNoContent(c)
}

// GetRecords handles the GET /records endpoint
// @Summary List records as table rows
// @Description Get display-ready record rows, most-recent date first by default
// @Tags records
// @Produce json
// @Param sort query string false "Sort column: date, product, sales" default(date)
// @Param order query string false "Sort order: asc, desc"
// @Param product query string false "Case-insensitive product substring filter"
// @Success 200 {object} model.RecordsResponse "Record rows"
// @Failure 400 {object} model.ErrorResponse "Invalid query parameters"
// @Failure 500 {object} model.ErrorResponse "Internal server error"
// @Router /v1/records [get]
func (h *DatasetHandler) GetRecords(c *gin.Context) {
	opts, err := parseTableOptions(c)
	if err != nil {
		respondBadRequest(c, ErrInvalidQueryParams, newErrorDetail("query", err.Error()))
		return
	}

	records, err := h.datasetService.Records(c.Request.Context())
	if err != nil {
		respondInternalServerError(c, fmt.Sprintf("Failed to retrieve records: %v", err))
		return
	}

	rows := presenter.TableRows(records, opts)
	respondOK(c, formatRecordsResponse(rows))
}

// ExportRecords handles the GET /records/export endpoint
// @Summary Download records as CSV
// @Description Export the canonical record set in the same format the upload accepts
// @Tags records
// @Produce text/csv
// @Success 200 {string} string "CSV content"
// @Failure 500 {object} model.ErrorResponse "Internal server error"
// @Router /v1/records/export [get]
func (h *DatasetHandler) ExportRecords(c *gin.Context) {
	data, err := h.datasetService.ExportCSV(c.Request.Context())
	if err != nil {
		respondInternalServerError(c, fmt.Sprintf("Failed to export records: %v", err))
		return
	}

	c.Header("Content-Disposition", `attachment; filename="sales.csv"`)
	c.Data(http.StatusOK, "text/csv", data)
}

// GetDailySales handles the GET /dashboard/daily-sales endpoint
// @Summary Get the daily sales series
// @Description Sales totals grouped by calendar date, ascending
// @Tags dashboard
// @Produce json
// @Success 200 {object} model.DailySalesResponse "Daily sales series"
// @Failure 500 {object} model.ErrorResponse "Internal server error"
// @Router /v1/dashboard/daily-sales [get]
func (h *DatasetHandler) GetDailySales(c *gin.Context) {
	daily, err := h.datasetService.DailyTotals(c.Request.Context())
	if err != nil {
		respondInternalServerError(c, fmt.Sprintf("Failed to retrieve daily sales: %v", err))
		return
	}

	respondOK(c, formatDailySalesResponse(daily, h.palette))
}

// GetTopProducts handles the GET /dashboard/top-products endpoint
// @Summary Get the top products ranking
// @Description Sales totals grouped by product, largest first
// @Tags dashboard
// @Produce json
// @Success 200 {object} model.TopProductsResponse "Top products ranking"
// @Failure 500 {object} model.ErrorResponse "Internal server error"
// @Router /v1/dashboard/top-products [get]
func (h *DatasetHandler) GetTopProducts(c *gin.Context) {
	byProduct, err := h.datasetService.TopProducts(c.Request.Context())
	if err != nil {
		respondInternalServerError(c, fmt.Sprintf("Failed to retrieve top products: %v", err))
		return
	}

	respondOK(c, formatTopProductsResponse(byProduct, h.palette))
}

// GetStats handles the GET /dashboard/stats endpoint
// @Summary Get summary statistics
// @Description Total, mean, distinct products and record count for the current record set
// @Tags dashboard
// @Produce json
// @Success 200 {object} model.StatsResponse "Summary statistics"
// @Failure 500 {object} model.ErrorResponse "Internal server error"
// @Router /v1/dashboard/stats [get]
func (h *DatasetHandler) GetStats(c *gin.Context) {
	stats, err := h.datasetService.Stats(c.Request.Context())
	if err != nil {
		respondInternalServerError(c, fmt.Sprintf("Failed to retrieve stats: %v", err))
		return
	}

	respondOK(c, formatStatsResponse(stats))
}

// GetStatus handles the GET /status endpoint
// @Summary Get the last operation status
// @Description Human-readable result of the most recent upload or manual entry
// @Tags status
// @Produce json
// @Success 200 {object} model.StatusResponse "Last operation status"
// @Router /v1/status [get]
func (h *DatasetHandler) GetStatus(c *gin.Context) {
	status := presenter.StatusMessage(h.datasetService.LastOutcome())
	respondOK(c, model.StatusResponse{Message: status.Message, Level: status.Level})
}

// respondOutcome maps a normalization outcome to the HTTP response: 200/201
// on success, 400 for rejected manual entries, 422 for unusable files.
func (h *DatasetHandler) respondOutcome(c *gin.Context, outcome domain.Outcome) {
	status := presenter.StatusMessage(outcome)
	response := model.MutationResponse{
		Status: model.StatusResponse{Message: status.Message, Level: status.Level},
		Count:  outcome.Count,
	}

	switch outcome.Kind {
	case domain.OutcomeSuccess:
		if outcome.Source == "" {
			respondCreated(c, response)
		} else {
			respondOK(c, response)
		}
	case domain.OutcomeValidationFailure:
		respondBadRequest(c, status.Message)
	default:
		respondUnprocessableEntity(c, status.Message)
	}
}

// Helper functions

// parseTableOptions extracts sorting and filtering parameters from the request
func parseTableOptions(c *gin.Context) (presenter.TableOptions, error) {
	opts := presenter.TableOptions{
		SortBy:  c.DefaultQuery("sort", "date"),
		Order:   c.Query("order"),
		Product: c.Query("product"),
	}

	switch opts.SortBy {
	case "date", "product", "sales":
	default:
		return opts, fmt.Errorf("sort must be one of: date, product, sales")
	}

	switch opts.Order {
	case "", "asc", "desc":
	default:
		return opts, fmt.Errorf("order must be asc or desc")
	}

	return opts, nil
}

// formatRecordsResponse formats table rows for response
func formatRecordsResponse(rows []presenter.TableRow) model.RecordsResponse {
	formatted := make([]model.TableRowResponse, len(rows))
	for i, row := range rows {
		formatted[i] = model.TableRowResponse{
			Date:    row.Date,
			Product: row.Product,
			Sales:   row.Sales,
			Amount:  row.Amount,
		}
	}
	return model.RecordsResponse{Data: formatted, Count: len(formatted)}
}

// formatDailySalesResponse formats the daily series for response
func formatDailySalesResponse(daily []domain.DailyTotal, palette config.Palette) model.DailySalesResponse {
	data := make([]model.DailyPointResponse, len(daily))
	for i, point := range daily {
		data[i] = model.DailyPointResponse{
			Date:  point.Date.String(),
			Total: point.Total,
		}
	}
	return model.DailySalesResponse{Data: data, Color: palette.LineColor}
}

// formatTopProductsResponse formats the product ranking for response
func formatTopProductsResponse(byProduct []domain.ProductTotal, palette config.Palette) model.TopProductsResponse {
	data := make([]model.ProductTotalResponse, len(byProduct))
	for i, total := range byProduct {
		data[i] = model.ProductTotalResponse{
			Product: total.Product,
			Total:   total.Total,
		}
	}
	return model.TopProductsResponse{Data: data, Color: palette.BarColor}
}

// formatStatsResponse formats summary statistics for response
func formatStatsResponse(stats domain.Stats) model.StatsResponse {
	return model.StatsResponse{
		TotalSales:       presenter.FormatCurrency(stats.TotalSales),
		AverageSale:      presenter.FormatCurrency(stats.AverageSale),
		DistinctProducts: stats.DistinctProducts,
		RecordCount:      stats.RecordCount,
	}
}

// RegisterRoutes registers the API routes for the dataset handler
func (h *DatasetHandler) RegisterRoutes(router *gin.Engine) {
	api := router.Group("/v1")

	datasets := api.Group("/datasets")
	{
		datasets.POST("/upload", h.UploadDataset)
	}

	records := api.Group("/records")
	{
		records.POST("", h.AddRecord)
		records.GET("", h.GetRecords)
		records.DELETE("", h.ClearRecords)
		records.GET("/export", h.ExportRecords)
	}

	dashboard := api.Group("/dashboard")
	{
		dashboard.GET("/daily-sales", h.GetDailySales)
		dashboard.GET("/top-products", h.GetTopProducts)
		dashboard.GET("/stats", h.GetStats)
	}

	api.GET("/status", h.GetStatus)
}

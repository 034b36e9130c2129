package tables

import (
	"encoding/json"
	"io"
	"mime/multipart"
	"sort"
	"strings"

	"table-steward/core/cache"
	"table-steward/core/logger"
	"table-steward/core/merge"
	"table-steward/core/table"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for table merging and scanning.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the tables routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/tables")
	group.Post("/analyze-headers", h.HandleAnalyzeHeaders)
	group.Post("/merge-and-scan", h.HandleMergeAndScan)
	group.Post("/propose-rules", h.HandleProposeRules)
	group.Post("/get-scan-rules", h.HandleScanRules)
	group.Get("/check-status", h.HandleCheckStatus)
}

// HandleAnalyzeHeaders analyzes uploaded headers and caches the file set.
// @Summary Analyze Upload Headers
// @Description Diffs the uploaded files' headers against the first file, suggests a merge strategy, and returns a cache token for the follow-up merge call.
// @Tags tables
// @Accept multipart/form-data
// @Produce json
// @Param files formData file true "CSV or XLSX files"
// @Success 200 {object} tables.HeaderAnalysis "Header Analysis"
// @Failure 400 {object} map[string]string "Bad Request"
// @Router /tables/analyze-headers [post]
func (h *Handler) HandleAnalyzeHeaders(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	entries, err := uploadedEntries(c)
	if err != nil {
		l.Warn("header analysis rejected", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if len(entries) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "upload at least one CSV or XLSX file",
		})
	}

	return c.JSON(h.service.AnalyzeAndCache(entries))
}

// HandleMergeAndScan merges the uploaded (or cached) files and scans the result.
// @Summary Merge And Scan
// @Description Merges the files under the chosen strategy, runs the health scan over the merged table, and returns the reconciliation report, the defect manifest, and the merged rows.
// @Tags tables
// @Accept multipart/form-data
// @Produce json
// @Param files formData file false "CSV or XLSX files; optional when cache_key is given"
// @Param cache_key formData string false "Token returned by analyze-headers"
// @Param baseline_columns formData string false "JSON array overriding the baseline columns"
// @Param primary_key_columns formData string false "JSON array of primary key columns (switches to key-joined strategy)"
// @Param template_incremental formData string false "true to union newly discovered columns into the baseline"
// @Success 200 {object} tables.MergeScanResult "Merge And Scan Result"
// @Failure 400 {object} map[string]string "Bad Request"
// @Router /tables/merge-and-scan [post]
func (h *Handler) HandleMergeAndScan(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var entries []cache.Entry
	if token := strings.TrimSpace(c.FormValue("cache_key")); token != "" {
		if cached, ok := h.service.ClaimCached(token); ok {
			entries = cached
		}
	}
	if len(entries) == 0 {
		uploaded, err := uploadedEntries(c)
		if err != nil || len(uploaded) == 0 {
			l.Warn("merge rejected: no input", zap.Error(err))
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "upload CSV/XLSX files or provide a valid cache_key from analyze-headers",
			})
		}
		entries = uploaded
	}

	opts := merge.Options{
		BaselineColumns:   stringList(c.FormValue("baseline_columns")),
		PrimaryKeyColumns: stringList(c.FormValue("primary_key_columns")),
		Incremental:       parseBool(c.FormValue("template_incremental")),
	}

	result := h.service.MergeAndScan(entries, opts)
	return c.JSON(result)
}

// HandleProposeRules proposes scan rules for a set of columns.
// @Summary Propose Scan Rules
// @Description Infers cleaning rules from the column names: numeric and outlier columns, date and email formats, composite keys.
// @Tags tables
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{} "Proposed Rules"
// @Router /tables/propose-rules [post]
func (h *Handler) HandleProposeRules(c *fiber.Ctx) error {
	inferred := InferRules(baseColumnsFromBody(c))
	return c.JSON(fiber.Map{
		"basic": fiber.Map{
			"required_columns":      inferred.RequiredColumns,
			"numeric_columns":       inferred.NumericColumns,
			"composite_key_columns": inferred.CompositeKeyColumns,
		},
		"proposed": inferred.Proposed,
	})
}

// HandleScanRules returns the effective scan configuration for a set of columns.
// @Summary Get Scan Rules
// @Description Returns the rules the health scanner will apply for the given columns, for a rule-confirmation view.
// @Tags tables
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{} "Scan Rules"
// @Router /tables/get-scan-rules [post]
func (h *Handler) HandleScanRules(c *fiber.Ctx) error {
	inferred := InferRules(baseColumnsFromBody(c))
	return c.JSON(fiber.Map{
		"required_columns":      inferred.RequiredColumns,
		"numeric_columns":       inferred.NumericColumns,
		"composite_key_columns": inferred.CompositeKeyColumns,
	})
}

// HandleCheckStatus returns the fingerprint of the last successful merge.
// @Summary Check Merge Status
// @Description Returns the fingerprint recorded by the last successful merge, for clients polling for source changes.
// @Tags tables
// @Produce json
// @Success 200 {object} map[string]string "Fingerprint"
// @Router /tables/check-status [get]
func (h *Handler) HandleCheckStatus(c *fiber.Ctx) error {
	fp := h.service.Fingerprint()
	if fp == "" {
		return c.JSON(fiber.Map{"fingerprint": nil})
	}
	return c.JSON(fiber.Map{"fingerprint": fp})
}

// uploadedEntries reads the multipart "files" field, keeping only supported
// formats, sorted by name for reproducible merges.
func uploadedEntries(c *fiber.Ctx) ([]cache.Entry, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, nil
	}
	var entries []cache.Entry
	for _, fh := range form.File["files"] {
		if !table.Supported(fh.Filename) {
			continue
		}
		content, err := readUpload(fh)
		if err != nil {
			return nil, err
		}
		entries = append(entries, cache.Entry{Name: fh.Filename, Content: content})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	return entries, nil
}

func readUpload(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

// stringList parses a JSON array form value. Malformed input is ignored so a
// broken strategy field degrades to the default rather than failing the merge.
func stringList(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	var out []string
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func parseBool(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "true", "1", "yes":
		return true
	default:
		return false
	}
}

func baseColumnsFromBody(c *fiber.Ctx) []string {
	var body struct {
		BaseColumns []string `json:"base_columns"`
	}
	if err := c.BodyParser(&body); err != nil {
		return nil
	}
	return body.BaseColumns
}

package tables

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strings"
	"sync"

	"table-steward/core/cache"
	"table-steward/core/merge"
	"table-steward/core/scan"
	"table-steward/core/table"

	"go.uber.org/zap"
)

// previewMaxRows bounds the merge preview to a thumbnail per file.
const previewMaxRows = 3

// Candidate column-name pairs that may describe the same thing under
// different headers, surfaced so the user can rename before merging.
var synonymPairs = [][]string{
	{"score", "grade"},
	{"name", "full name"},
	{"date", "time"},
}

// primaryKeyKeywords rank columns as primary-key candidates.
var primaryKeyKeywords = []string{"name", "class", "id", "code", "student"}

// Service orchestrates the upload cache, the merge engine, and the health
// scanner. The last-merge fingerprint is the only state it keeps.
type Service struct {
	store  *cache.Store
	logger *zap.Logger

	mu              sync.Mutex
	lastFingerprint string
}

// NewService creates a new tables service.
func NewService(store *cache.Store, logger *zap.Logger) *Service {
	return &Service{store: store, logger: logger}
}

// HeaderEntry is the per-file outcome of header analysis.
type HeaderEntry struct {
	File           string   `json:"file"`
	RowCount       int      `json:"row_count"`
	MissingColumns []string `json:"missing_columns"`
	ExtraColumns   []string `json:"extra_columns"`
	Error          string   `json:"error,omitempty"`
}

// Preview is a bounded thumbnail of the aligned merge result.
type Preview struct {
	Columns []string             `json:"columns"`
	Rows    []map[string]*string `json:"rows"`
}

// HeaderAnalysis is the response of analyze-headers: the header diff per
// file plus strategy suggestions and a cache token for the follow-up merge.
type HeaderAnalysis struct {
	BaseColumns         []string      `json:"base_columns"`
	Files               []HeaderEntry `json:"files"`
	ColumnsIntersection []string      `json:"columns_intersection"`
	ColumnsUnion        []string      `json:"columns_union"`
	SynonymCandidates   [][]string    `json:"synonym_candidates"`
	SuggestedPrimaryKey []string      `json:"suggested_primary_key"`
	SuggestedMergeMode  string        `json:"suggested_merge_mode"`
	Preview             *Preview      `json:"preview,omitempty"`
	CacheToken          string        `json:"cache_token,omitempty"`
}

// MergedData is the merged table in response form. Absent cells are null.
type MergedData struct {
	Columns []string             `json:"columns"`
	Rows    []map[string]*string `json:"rows"`
}

// MergeScanResult bundles everything a merge-and-scan request produces.
type MergeScanResult struct {
	SchemaReport   *merge.Report  `json:"schema_report"`
	HealthManifest *scan.Manifest `json:"health_manifest"`
	Merged         MergedData     `json:"merged"`
	Fingerprint    *string        `json:"fingerprint"`
}

// AnalyzeAndCache analyzes the uploaded headers and caches the file set for
// the follow-up merge call. Files must already be sorted by name.
func (s *Service) AnalyzeAndCache(entries []cache.Entry) *HeaderAnalysis {
	analysis := s.analyzeHeaders(entries)
	analysis.CacheToken = s.store.Put(entries)
	s.logger.Info("analyzed upload headers",
		zap.Int("files", len(entries)),
		zap.Int("base_columns", len(analysis.BaseColumns)))
	return analysis
}

func (s *Service) analyzeHeaders(entries []cache.Entry) *HeaderAnalysis {
	out := &HeaderAnalysis{
		BaseColumns:         []string{},
		Files:               []HeaderEntry{},
		ColumnsIntersection: []string{},
		ColumnsUnion:        []string{},
		SynonymCandidates:   [][]string{},
		SuggestedPrimaryKey: []string{},
		SuggestedMergeMode:  "intersection",
	}
	if len(entries) == 0 {
		return out
	}

	// Baseline = first file that decodes; later files diff against it.
	var baseline []string
	var tables []*table.Table
	var fileColumns [][]string
	for _, e := range entries {
		entry := HeaderEntry{File: e.Name, MissingColumns: []string{}, ExtraColumns: []string{}}
		t, err := table.Read(e.Name, e.Content)
		if err != nil {
			entry.Error = err.Error()
			out.Files = append(out.Files, entry)
			tables = append(tables, nil)
			continue
		}
		entry.RowCount = t.RowCount()
		if baseline == nil {
			baseline = t.Columns
			out.BaseColumns = append([]string{}, baseline...)
		} else {
			entry.MissingColumns, entry.ExtraColumns = diffColumns(baseline, t.Columns)
		}
		out.Files = append(out.Files, entry)
		tables = append(tables, t)
		fileColumns = append(fileColumns, t.Columns)
	}
	if baseline == nil {
		return out
	}

	out.ColumnsIntersection, out.ColumnsUnion = columnSets(baseline, fileColumns)
	out.SynonymCandidates = synonymCandidates(out.ColumnsUnion)
	out.SuggestedPrimaryKey = suggestPrimaryKey(out.ColumnsIntersection)
	if len(out.ColumnsUnion)-len(out.ColumnsIntersection) > 2 {
		out.SuggestedMergeMode = "union"
	}
	out.Preview = buildPreview(out.ColumnsUnion, entries, tables)
	return out
}

// MergeAndScan runs the whole pipeline: sort, decode, merge, infer rules,
// scan, fingerprint. Fatal merges yield an empty manifest and do not touch
// the stored fingerprint.
func (s *Service) MergeAndScan(entries []cache.Entry, opts merge.Options) *MergeScanResult {
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })

	files := make([]merge.File, len(entries))
	for i, e := range entries {
		files[i] = merge.FileFromBytes(e.Name, e.Content)
	}
	merged, rep := merge.Merge(files, opts)

	if rep.Error != "" && rep.MergedRowCount == 0 {
		s.logger.Warn("merge failed", zap.String("error", rep.Error))
		return &MergeScanResult{
			SchemaReport:   rep,
			HealthManifest: &scan.Manifest{Defects: []scan.Defect{}, Summary: "merge produced no data"},
			Merged:         MergedData{Columns: []string{}, Rows: []map[string]*string{}},
		}
	}

	inferred := InferRules(rep.ReferenceColumns)
	cfg := inferred.ScanConfig()
	if len(opts.PrimaryKeyColumns) > 0 {
		cfg.CompositeKeyColumns = opts.PrimaryKeyColumns
	}
	manifest := scan.Scan(merged, rep, cfg)

	fp := fingerprint(entries)
	s.mu.Lock()
	s.lastFingerprint = fp
	s.mu.Unlock()

	s.logger.Info("merge and scan completed",
		zap.Int("files", len(entries)),
		zap.Int("rows", rep.MergedRowCount),
		zap.Int("defects", manifest.Counts.Total))

	return &MergeScanResult{
		SchemaReport:   rep,
		HealthManifest: manifest,
		Merged:         mergedData(merged),
		Fingerprint:    &fp,
	}
}

// ClaimCached returns and removes the cached file set for the token.
func (s *Service) ClaimCached(token string) ([]cache.Entry, bool) {
	return s.store.Claim(token)
}

// Fingerprint returns the fingerprint of the last successful merge, or ""
// when no merge has completed yet.
func (s *Service) Fingerprint() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastFingerprint
}

// fingerprint hashes the file contents in slice order.
func fingerprint(entries []cache.Entry) string {
	h := sha256.New()
	for _, e := range entries {
		h.Write(e.Content)
	}
	return hex.EncodeToString(h.Sum(nil))
}

func mergedData(t *table.Table) MergedData {
	out := MergedData{
		Columns: append([]string{}, t.Columns...),
		Rows:    make([]map[string]*string, 0, t.RowCount()),
	}
	for r := 0; r < t.RowCount(); r++ {
		row := make(map[string]*string, len(t.Columns))
		for _, col := range t.Columns {
			c := t.Cell(r, col)
			if c.Absent {
				row[col] = nil
			} else {
				v := c.Value
				row[col] = &v
			}
		}
		out.Rows = append(out.Rows, row)
	}
	return out
}

func diffColumns(baseline, actual []string) (missing, extra []string) {
	actualSet := make(map[string]struct{}, len(actual))
	for _, c := range actual {
		actualSet[c] = struct{}{}
	}
	baseSet := make(map[string]struct{}, len(baseline))
	for _, c := range baseline {
		baseSet[c] = struct{}{}
	}
	missing = []string{}
	for _, c := range baseline {
		if _, ok := actualSet[c]; !ok {
			missing = append(missing, c)
		}
	}
	extra = []string{}
	for _, c := range actual {
		if _, ok := baseSet[c]; !ok {
			extra = append(extra, c)
		}
	}
	return missing, extra
}

// columnSets computes the intersection (baseline order) and the union
// (baseline columns first, then the rest sorted) over all readable files.
func columnSets(baseline []string, fileColumns [][]string) (intersection, union []string) {
	inter := make(map[string]struct{}, len(baseline))
	all := make(map[string]struct{}, len(baseline))
	for _, c := range baseline {
		inter[c] = struct{}{}
		all[c] = struct{}{}
	}
	for _, cols := range fileColumns[1:] {
		set := make(map[string]struct{}, len(cols))
		for _, c := range cols {
			set[c] = struct{}{}
			all[c] = struct{}{}
		}
		for c := range inter {
			if _, ok := set[c]; !ok {
				delete(inter, c)
			}
		}
	}

	intersection = []string{}
	for _, c := range baseline {
		if _, ok := inter[c]; ok {
			intersection = append(intersection, c)
		}
	}
	union = append([]string{}, baseline...)
	baseSet := make(map[string]struct{}, len(baseline))
	for _, c := range baseline {
		baseSet[c] = struct{}{}
	}
	var extras []string
	for c := range all {
		if _, ok := baseSet[c]; !ok {
			extras = append(extras, c)
		}
	}
	sort.Strings(extras)
	union = append(union, extras...)
	return intersection, union
}

func synonymCandidates(union []string) [][]string {
	present := make(map[string]string, len(union))
	for _, c := range union {
		present[normalizeHeader(c)] = c
	}
	out := [][]string{}
	for _, pair := range synonymPairs {
		var found []string
		for _, p := range pair {
			if c, ok := present[p]; ok {
				found = append(found, c)
			}
		}
		if len(found) >= 2 {
			out = append(out, found)
		}
	}
	return out
}

func suggestPrimaryKey(intersection []string) []string {
	out := []string{}
	for _, kw := range primaryKeyKeywords {
		for _, col := range intersection {
			if !containsString(out, col) && containsAny(normalizeHeader(col), []string{kw}) {
				out = append(out, col)
			}
		}
	}
	if len(out) == 0 {
		if len(intersection) >= 2 {
			out = append(out, intersection[:2]...)
		} else {
			out = append(out, intersection...)
		}
	}
	return out
}

// buildPreview aligns the first rows of every readable file onto the union
// columns, mirroring how the merged table will look.
func buildPreview(columns []string, entries []cache.Entry, tables []*table.Table) *Preview {
	p := &Preview{
		Columns: append([]string{}, columns...),
		Rows:    []map[string]*string{},
	}
	for i := range entries {
		t := tables[i]
		if t == nil {
			continue
		}
		rows := t.RowCount()
		if rows > previewMaxRows {
			rows = previewMaxRows
		}
		for r := 0; r < rows; r++ {
			row := make(map[string]*string, len(columns))
			for _, col := range columns {
				c := t.Cell(r, col)
				if c.Absent {
					row[col] = nil
				} else {
					v := c.Value
					row[col] = &v
				}
			}
			p.Rows = append(p.Rows, row)
		}
	}
	return p
}

func normalizeHeader(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func containsString(list []string, s string) bool {
	for _, c := range list {
		if c == s {
			return true
		}
	}
	return false
}

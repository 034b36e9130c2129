package tables

import (
	"testing"

	"table-steward/core/cache"
	"table-steward/core/merge"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestService() *Service {
	return NewService(cache.NewStore(20), zap.NewNop())
}

func csvEntry(name, body string) cache.Entry {
	return cache.Entry{Name: name, Content: []byte(body)}
}

func TestAnalyzeAndCache_HeaderDiff(t *testing.T) {
	svc := newTestService()

	analysis := svc.AnalyzeAndCache([]cache.Entry{
		csvEntry("a.csv", "Name,Class,Score\nAnn,1A,90\n"),
		csvEntry("b.csv", "Name,Score,Bonus\nBob,85,5\n"),
	})

	assert.Equal(t, []string{"Name", "Class", "Score"}, analysis.BaseColumns)
	require.Len(t, analysis.Files, 2)
	assert.Equal(t, []string{"Class"}, analysis.Files[1].MissingColumns)
	assert.Equal(t, []string{"Bonus"}, analysis.Files[1].ExtraColumns)

	assert.Equal(t, []string{"Name", "Score"}, analysis.ColumnsIntersection)
	assert.Equal(t, []string{"Name", "Class", "Score", "Bonus"}, analysis.ColumnsUnion)
	assert.Equal(t, "intersection", analysis.SuggestedMergeMode)
	assert.Equal(t, []string{"Name"}, analysis.SuggestedPrimaryKey)

	// The file set is cached and claimable exactly once
	require.NotEmpty(t, analysis.CacheToken)
	entries, ok := svc.ClaimCached(analysis.CacheToken)
	require.True(t, ok)
	assert.Len(t, entries, 2)
	_, ok = svc.ClaimCached(analysis.CacheToken)
	assert.False(t, ok)
}

func TestAnalyzeHeaders_BaselineFromFirstReadableFile(t *testing.T) {
	svc := newTestService()

	analysis := svc.AnalyzeAndCache([]cache.Entry{
		csvEntry("bad.csv", ""),
		csvEntry("good.csv", "Name,Score\nAnn,90\n"),
	})

	assert.Equal(t, []string{"Name", "Score"}, analysis.BaseColumns)
	require.Len(t, analysis.Files, 2)
	assert.NotEmpty(t, analysis.Files[0].Error)
	assert.Empty(t, analysis.Files[1].Error)
}

func TestAnalyzeHeaders_SuggestsUnionForDivergentSchemas(t *testing.T) {
	svc := newTestService()

	analysis := svc.AnalyzeAndCache([]cache.Entry{
		csvEntry("a.csv", "Name,Score\nAnn,90\n"),
		csvEntry("b.csv", "Name,Bonus,Rank,Seat\nBob,5,1,12\n"),
	})

	assert.Equal(t, "union", analysis.SuggestedMergeMode)
}

func TestAnalyzeHeaders_PreviewBounded(t *testing.T) {
	svc := newTestService()

	analysis := svc.AnalyzeAndCache([]cache.Entry{
		csvEntry("a.csv", "Name\nr1\nr2\nr3\nr4\nr5\n"),
		csvEntry("b.csv", "Name\ns1\n"),
	})

	require.NotNil(t, analysis.Preview)
	assert.Len(t, analysis.Preview.Rows, 4)
}

func TestMergeAndScan_FullPipeline(t *testing.T) {
	svc := newTestService()

	result := svc.MergeAndScan([]cache.Entry{
		csvEntry("b.csv", "Name,Class\nCid,2A\n"),
		csvEntry("a.csv", "Name,Class,Score\nAnn,1A,90\nBob,1B,abc\n"),
	}, merge.Options{})

	rep := result.SchemaReport
	require.Empty(t, rep.Error)
	// Files are processed sorted by name; a.csv anchors
	assert.Equal(t, "a.csv", rep.ReferenceFile)
	assert.Equal(t, 3, rep.MergedRowCount)

	manifest := result.HealthManifest
	require.NotNil(t, manifest)
	// "abc" in the inferred numeric column plus the structural null from b.csv
	assert.Equal(t, 1, manifest.Counts.TypeErrors)
	assert.Equal(t, 1, manifest.Counts.StructuralNulls)

	require.NotNil(t, result.Fingerprint)
	assert.Equal(t, *result.Fingerprint, svc.Fingerprint())

	assert.Equal(t, rep.ReferenceColumns, result.Merged.Columns)
	require.Len(t, result.Merged.Rows, 3)
	assert.Nil(t, result.Merged.Rows[2]["Score"])
	require.NotNil(t, result.Merged.Rows[0]["Score"])
	assert.Equal(t, "90", *result.Merged.Rows[0]["Score"])
}

func TestMergeAndScan_PrimaryKeysOverrideDuplicateKey(t *testing.T) {
	svc := newTestService()

	result := svc.MergeAndScan([]cache.Entry{
		csvEntry("a.csv", "Name,Class,Score\nAnn,1A,90\nAnn,1B,85\n"),
	}, merge.Options{PrimaryKeyColumns: []string{"Name"}})

	// With the key narrowed to Name alone, the second Ann is a duplicate
	assert.Equal(t, 1, result.HealthManifest.Counts.Duplicates)
}

func TestMergeAndScan_FatalMergeYieldsEmptyManifest(t *testing.T) {
	svc := newTestService()

	result := svc.MergeAndScan([]cache.Entry{
		csvEntry("bad.csv", ""),
	}, merge.Options{})

	assert.NotEmpty(t, result.SchemaReport.Error)
	assert.Nil(t, result.Fingerprint)
	assert.Empty(t, result.HealthManifest.Defects)
	assert.Equal(t, "merge produced no data", result.HealthManifest.Summary)
	assert.Empty(t, svc.Fingerprint(), "a failed merge must not record a fingerprint")
}

func TestMergeAndScan_FingerprintStableForSameContent(t *testing.T) {
	svc := newTestService()
	entries := func() []cache.Entry {
		return []cache.Entry{csvEntry("a.csv", "Name\nAnn\n")}
	}

	first := svc.MergeAndScan(entries(), merge.Options{})
	second := svc.MergeAndScan(entries(), merge.Options{})

	require.NotNil(t, first.Fingerprint)
	require.NotNil(t, second.Fingerprint)
	assert.Equal(t, *first.Fingerprint, *second.Fingerprint)
}

package export

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/de-tools/bucket-doctor/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleReport() domain.BucketReport {
	start := time.Date(2026, 2, 3, 4, 5, 6, 0, time.UTC)
	return domain.BucketReport{
		BucketName: "assets",
		Region:     "eu-west-1",
		ScanStart:  start,
		ScanEnd:    start.Add(1500 * time.Millisecond),
		Score:      45,
		Health:     domain.HealthUnhealthy,
		AIAnalysis: "Block public access first.",
		Results: []domain.DiagnosticResult{
			{
				Check:          domain.CheckPublicAccessBlock,
				Status:         domain.StatusFail,
				Severity:       domain.SeverityCritical,
				Message:        "Public access block disabled: BlockPublicAcls",
				Recommendation: "Enable all public access block settings",
				AutoFixable:    true,
				FixDescription: "Enable all four public access block settings",
				Details:        domain.PublicAccessBlockFacts{Exists: true},
			},
			{
				Check:    domain.CheckVersioning,
				Status:   domain.StatusPass,
				Severity: domain.SeverityInfo,
				Message:  "Versioning is enabled",
			},
		},
	}
}

func TestReporter_Handle(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, NewReporter(&buf).Handle(sampleReport()))

	out := buf.String()
	assert.Contains(t, out, "Bucket: assets")
	assert.Contains(t, out, "45/100")
	assert.Contains(t, out, "UNHEALTHY")
	assert.Contains(t, out, "Public Access Block")
	assert.Contains(t, out, "✗ FAIL")
	assert.Contains(t, out, "1. [Public Access Block] Enable all public access block settings")
	assert.Contains(t, out, "AI Analysis")
	assert.NotContains(t, out, "AI Summary")
}

func TestReporter_FixSummary(t *testing.T) {
	var buf bytes.Buffer
	after := sampleReport()
	after.Score = 70

	NewReporter(&buf).FixSummary(domain.FixSummary{
		Before: sampleReport(),
		After:  &after,
		Outcomes: []domain.FixOutcome{
			{Check: domain.CheckPublicAccessBlock, Success: true, Message: "Public access blocked"},
			{Check: domain.CheckEncryption, Error: "AccessDenied"},
		},
	})

	out := buf.String()
	assert.Contains(t, out, "Public Access Block: Public access blocked")
	assert.Contains(t, out, "Server-Side Encryption: AccessDenied")
	assert.Contains(t, out, "45 -> 70 (+25)")
}

func TestReporter_History(t *testing.T) {
	var buf bytes.Buffer

	NewReporter(&buf).History(domain.BucketHistory{
		Bucket: "assets",
		Trend:  domain.TrendDegrading,
		Delta:  -5,
		Records: []domain.ScanRecord{
			{Score: 60, Health: domain.HealthNeedsAttention},
			{Score: 65, Health: domain.HealthNeedsAttention},
		},
	})

	assert.Contains(t, buf.String(), "Trend: degrading (-5)")
}

func TestFileWriter(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "reports")
	w := NewFileWriter(dir)
	w.now = func() time.Time { return time.Date(2026, 2, 3, 4, 5, 6, 0, time.UTC) }

	t.Run("json", func(t *testing.T) {
		path, err := w.WriteJSON(sampleReport())
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "assets_20260203_040506.json"), path)

		raw, err := os.ReadFile(path)
		require.NoError(t, err)
		var doc map[string]any
		require.NoError(t, json.Unmarshal(raw, &doc))
		assert.Equal(t, "assets", doc["bucket_name"])
		assert.EqualValues(t, 45, doc["score"])
		assert.EqualValues(t, 2, doc["total_checks"])
	})

	t.Run("html", func(t *testing.T) {
		path, err := w.WriteHTML(sampleReport())
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "assets_20260203_040506.html"), path)

		raw, err := os.ReadFile(path)
		require.NoError(t, err)
		html := string(raw)
		assert.Contains(t, html, "S3 Diagnostic Report - assets")
		assert.Contains(t, html, "score-unhealthy")
		assert.Contains(t, html, `class="status-fail"`)
		assert.Contains(t, html, "severity-critical")
		assert.Contains(t, html, "Block public access first.")
	})
}

func TestProgress(t *testing.T) {
	var buf bytes.Buffer
	p := NewProgress(NewReporter(&buf))

	p.CheckStarted(domain.CheckExistence, 0, 14)
	p.CheckFinished(domain.DiagnosticResult{Check: domain.CheckExistence, Status: domain.StatusPass})
	p.CheckStarted(domain.CheckBucketPolicy, 1, 14)
	p.CheckFinished(domain.DiagnosticResult{Check: domain.CheckBucketPolicy, Status: domain.StatusError})

	out := buf.String()
	assert.Equal(t, 1, strings.Count(out, "Running 14 checks..."))
	assert.Contains(t, out, "✓ PASS Bucket Existence")
	assert.Contains(t, out, "✗ ERR Bucket Policy")
}

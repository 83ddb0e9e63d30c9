package adapters

import (
	"encoding/json"
	"fmt"

	"github.com/de-tools/bucket-doctor/pkg/models/api"
	"github.com/de-tools/bucket-doctor/pkg/models/domain"
	"github.com/de-tools/bucket-doctor/pkg/models/store"
)

func MapDiagnosticResultDomainToApi(r domain.DiagnosticResult) api.DiagnosticResult {
	return api.DiagnosticResult{
		CheckName:      r.CheckName(),
		Status:         string(r.Status),
		Severity:       r.Severity.String(),
		Message:        r.Message,
		Details:        r.Details,
		Recommendation: r.Recommendation,
		AutoFixable:    r.AutoFixable,
		FixDescription: r.FixDescription,
		Timestamp:      r.Timestamp,
	}
}

func MapBucketReportDomainToApi(r domain.BucketReport) api.BucketReport {
	counts := r.Counts()
	res := api.BucketReport{
		BucketName:    r.BucketName,
		Region:        r.Region,
		ScanStart:     r.ScanStart,
		ScanEnd:       r.ScanEnd,
		OverallHealth: string(r.Health),
		Score:         r.Score,
		TotalChecks:   counts.Total,
		Passed:        counts.Passed,
		Failed:        counts.Failed,
		Warnings:      counts.Warnings,
		Errors:        counts.Errors,
		Results:       make([]api.DiagnosticResult, 0, len(r.Results)),
		AIAnalysis:    r.AIAnalysis,
		AISummary:     r.AISummary,
	}
	for _, result := range r.Results {
		res.Results = append(res.Results, MapDiagnosticResultDomainToApi(result))
	}
	return res
}

func MapFixOutcomeDomainToApi(o domain.FixOutcome) api.FixOutcome {
	return api.FixOutcome{
		Check:   o.Check.Name(),
		Success: o.Success,
		Message: o.Message,
		Error:   o.Error,
	}
}

func MapFixSummaryDomainToApi(s domain.FixSummary, aiRecommendations string) api.FixResponse {
	res := api.FixResponse{
		FixesApplied:      make([]api.FixOutcome, 0, len(s.Outcomes)),
		BeforeScore:       s.Before.Score,
		AfterScore:        s.AfterScore(),
		Improvement:       s.Improvement(),
		AIRecommendations: aiRecommendations,
		States:            make([]string, 0, len(s.States)),
	}
	report := s.Before
	if s.After != nil {
		report = *s.After
	}
	res.Report = MapBucketReportDomainToApi(report)
	for _, o := range s.Outcomes {
		res.FixesApplied = append(res.FixesApplied, MapFixOutcomeDomainToApi(o))
	}
	for _, state := range s.States {
		res.States = append(res.States, string(state))
	}
	return res
}

func MapAccountSummaryDomainToApi(s domain.AccountSummary) api.ScanAllResponse {
	res := api.ScanAllResponse{
		Buckets:      make([]api.BucketSummary, 0, len(s.Buckets)),
		Total:        len(s.Buckets),
		AverageScore: s.AverageScore,
	}
	for _, b := range s.Buckets {
		res.Buckets = append(res.Buckets, api.BucketSummary{
			Bucket:   b.Bucket,
			Region:   b.Region,
			Score:    b.Score,
			Health:   string(b.Health),
			Passed:   b.Counts.Passed,
			Failed:   b.Counts.Failed,
			Warnings: b.Counts.Warnings,
			Error:    b.Error,
		})
	}
	return res
}

func MapCallerIdentityDomainToApi(id domain.CallerIdentity) api.CredentialsResponse {
	return api.CredentialsResponse{
		Valid:   true,
		Account: id.Account,
		ARN:     id.ARN,
		UserID:  id.UserID,
	}
}

func MapBucketHistoryDomainToApi(h domain.BucketHistory) api.HistoryResponse {
	res := api.HistoryResponse{
		Bucket:  h.Bucket,
		Trend:   string(h.Trend),
		Delta:   h.Delta,
		Records: make([]api.ScanRecord, 0, len(h.Records)),
	}
	for _, r := range h.Records {
		res.Records = append(res.Records, api.ScanRecord{
			Score:     r.Score,
			Health:    string(r.Health),
			Passed:    r.Counts.Passed,
			Failed:    r.Counts.Failed,
			Warnings:  r.Counts.Warnings,
			Errors:    r.Counts.Errors,
			ScanStart: r.ScanStart,
			ScanEnd:   r.ScanEnd,
		})
	}
	return res
}

// MapBucketReportDomainToStore embeds the API document of the report.
func MapBucketReportDomainToStore(r domain.BucketReport) (store.ScanHistory, error) {
	doc, err := json.Marshal(MapBucketReportDomainToApi(r))
	if err != nil {
		return store.ScanHistory{}, fmt.Errorf("failed to encode report: %w", err)
	}
	counts := r.Counts()
	return store.ScanHistory{
		Bucket:    r.BucketName,
		Region:    r.Region,
		Score:     r.Score,
		Health:    string(r.Health),
		Total:     counts.Total,
		Passed:    counts.Passed,
		Failed:    counts.Failed,
		Warnings:  counts.Warnings,
		Errors:    counts.Errors,
		ScanStart: r.ScanStart,
		ScanEnd:   r.ScanEnd,
		Report:    doc,
	}, nil
}

func MapScanHistoryStoreToDomain(h store.ScanHistory) domain.ScanRecord {
	return domain.ScanRecord{
		Bucket: h.Bucket,
		Region: h.Region,
		Score:  h.Score,
		Health: domain.Health(h.Health),
		Counts: domain.ReportCounts{
			Total:    h.Total,
			Passed:   h.Passed,
			Failed:   h.Failed,
			Warnings: h.Warnings,
			Errors:   h.Errors,
		},
		ScanStart: h.ScanStart,
		ScanEnd:   h.ScanEnd,
	}
}

package api

import "time"

type DiagnosticResult struct {
	CheckName      string    `json:"check_name"`
	Status         string    `json:"status"`
	Severity       string    `json:"severity"`
	Message        string    `json:"message"`
	Details        any       `json:"details"`
	Recommendation string    `json:"recommendation"`
	AutoFixable    bool      `json:"auto_fixable"`
	FixDescription string    `json:"fix_description"`
	Timestamp      time.Time `json:"timestamp"`
}

type BucketReport struct {
	BucketName    string             `json:"bucket_name"`
	Region        string             `json:"region"`
	ScanStart     time.Time          `json:"scan_start"`
	ScanEnd       time.Time          `json:"scan_end"`
	OverallHealth string             `json:"overall_health"`
	Score         int                `json:"score"`
	TotalChecks   int                `json:"total_checks"`
	Passed        int                `json:"passed"`
	Failed        int                `json:"failed"`
	Warnings      int                `json:"warnings"`
	Errors        int                `json:"errors"`
	Results       []DiagnosticResult `json:"results"`
	AIAnalysis    string             `json:"ai_analysis"`
	AISummary     string             `json:"ai_summary"`
}

type FixOutcome struct {
	Check   string `json:"check"`
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

type FixResponse struct {
	FixesApplied      []FixOutcome `json:"fixes_applied"`
	BeforeScore       int          `json:"before_score"`
	AfterScore        int          `json:"after_score"`
	Improvement       int          `json:"improvement"`
	Report            BucketReport `json:"report"`
	AIRecommendations string       `json:"ai_recommendations"`
	States            []string     `json:"workflow_states"`
}

type BucketSummary struct {
	Bucket   string `json:"bucket"`
	Region   string `json:"region,omitempty"`
	Score    int    `json:"score"`
	Health   string `json:"health"`
	Passed   int    `json:"passed"`
	Failed   int    `json:"failed"`
	Warnings int    `json:"warnings"`
	Error    string `json:"error,omitempty"`
}

type ScanAllResponse struct {
	Buckets      []BucketSummary `json:"buckets"`
	Total        int             `json:"total"`
	AverageScore int             `json:"average_score"`
}

type HealthResponse struct {
	Status      string `json:"status"`
	Version     string `json:"version"`
	AIAvailable bool   `json:"ai_available"`
	AIProvider  string `json:"ai_provider"`
}

type CredentialsResponse struct {
	Valid   bool   `json:"valid"`
	Account string `json:"account,omitempty"`
	ARN     string `json:"arn,omitempty"`
	UserID  string `json:"user_id,omitempty"`
	Error   string `json:"error,omitempty"`
}

type BucketsResponse struct {
	Buckets []string `json:"buckets"`
	Count   int      `json:"count"`
}

type TroubleshootRequest struct {
	BucketName string         `json:"bucket_name"`
	Issue      string         `json:"issue"`
	Context    map[string]any `json:"context"`
}

type TroubleshootResponse struct {
	Response string `json:"response"`
}

type ScanRecord struct {
	Score     int       `json:"score"`
	Health    string    `json:"health"`
	Passed    int       `json:"passed"`
	Failed    int       `json:"failed"`
	Warnings  int       `json:"warnings"`
	Errors    int       `json:"errors"`
	ScanStart time.Time `json:"scan_start"`
	ScanEnd   time.Time `json:"scan_end"`
}

type HistoryResponse struct {
	Bucket  string       `json:"bucket"`
	Trend   string       `json:"trend"`
	Delta   int          `json:"delta"`
	Records []ScanRecord `json:"records"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

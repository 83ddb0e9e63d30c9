package domain

import "time"

type Trend string

const (
	TrendImproving Trend = "improving"
	TrendDegrading Trend = "degrading"
	TrendStable    Trend = "stable"
	TrendNew       Trend = "new"
)

// ScanRecord is a persisted summary of a past scan.
type ScanRecord struct {
	Bucket    string
	Region    string
	Score     int
	Health    Health
	Counts    ReportCounts
	ScanStart time.Time
	ScanEnd   time.Time
}

type BucketHistory struct {
	Bucket  string
	Records []ScanRecord
	Trend   Trend
	Delta   int
}

// BucketSummary is one row of an account-wide scan.
type BucketSummary struct {
	Bucket string
	Region string
	Score  int
	Health Health
	Counts ReportCounts
	Error  string
}

type AccountSummary struct {
	Buckets      []BucketSummary
	AverageScore int
}

package store

import "time"

// ScanHistory is one row of the scan_history table. Report holds the JSON
// document of the full report.
type ScanHistory struct {
	Bucket    string
	Region    string
	Score     int
	Health    string
	Total     int
	Passed    int
	Failed    int
	Warnings  int
	Errors    int
	ScanStart time.Time
	ScanEnd   time.Time
	Report    []byte
}

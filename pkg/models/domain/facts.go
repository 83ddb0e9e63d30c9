package domain

// Facts is the structured evidence a check result carries. Every concern has
// its own variant; the set is sealed to this package.
type Facts interface {
	isFacts()
}

type ExistenceFacts struct {
	Exists     bool   `json:"exists"`
	Accessible bool   `json:"accessible"`
	StatusCode int    `json:"status_code,omitempty"`
	Error      string `json:"error,omitempty"`
}

type PolicyFacts struct {
	Exists   bool   `json:"exists"`
	Document string `json:"policy,omitempty"`
}

type PolicyIssueType string

const (
	PolicyIssueOpenAccess       PolicyIssueType = "OPEN_ACCESS"
	PolicyIssueWildcardActions  PolicyIssueType = "WILDCARD_ACTIONS"
	PolicyIssueMissingCondition PolicyIssueType = "MISSING_CONDITION"
)

type PolicyIssue struct {
	Type     PolicyIssueType `json:"type"`
	Severity Severity        `json:"severity"`
	Detail   string          `json:"detail"`
}

// PolicyAnalysis is the parsed policy document with the issues found in it.
type PolicyAnalysis struct {
	Policy map[string]any `json:"policy"`
	Issues []PolicyIssue  `json:"issues"`
}

func (a PolicyAnalysis) HasCritical() bool {
	for _, issue := range a.Issues {
		if issue.Severity == SeverityCritical {
			return true
		}
	}
	return false
}

type PublicAccessBlockFacts struct {
	Exists                bool `json:"exists"`
	BlockPublicAcls       bool `json:"BlockPublicAcls"`
	IgnorePublicAcls      bool `json:"IgnorePublicAcls"`
	BlockPublicPolicy     bool `json:"BlockPublicPolicy"`
	RestrictPublicBuckets bool `json:"RestrictPublicBuckets"`
}

// Disabled lists the names of the flags that are off, in canonical order.
func (f PublicAccessBlockFacts) Disabled() []string {
	var disabled []string
	flags := []struct {
		name string
		on   bool
	}{
		{"BlockPublicAcls", f.BlockPublicAcls},
		{"IgnorePublicAcls", f.IgnorePublicAcls},
		{"BlockPublicPolicy", f.BlockPublicPolicy},
		{"RestrictPublicBuckets", f.RestrictPublicBuckets},
	}
	for _, flag := range flags {
		if !flag.on {
			disabled = append(disabled, flag.name)
		}
	}
	return disabled
}

type ACLGrant struct {
	GranteeType string `json:"grantee_type,omitempty"`
	URI         string `json:"uri,omitempty"`
	ID          string `json:"id,omitempty"`
	DisplayName string `json:"display_name,omitempty"`
	Permission  string `json:"permission"`
}

type ACLIssue struct {
	Type       string `json:"type"`
	Grantee    string `json:"grantee"`
	Permission string `json:"permission"`
}

type ACLFacts struct {
	Owner  string     `json:"owner,omitempty"`
	Grants []ACLGrant `json:"grants"`
	Issues []ACLIssue `json:"issues,omitempty"`
}

type EncryptionRule struct {
	Algorithm        string `json:"algorithm"`
	KMSKeyID         string `json:"kms_key_id,omitempty"`
	BucketKeyEnabled bool   `json:"bucket_key_enabled"`
}

type EncryptionFacts struct {
	Enabled bool             `json:"enabled"`
	Rules   []EncryptionRule `json:"rules,omitempty"`
}

type VersioningFacts struct {
	Status    string `json:"status"`
	MFADelete string `json:"mfa_delete"`
}

type LifecycleRule struct {
	ID     string `json:"id,omitempty"`
	Status string `json:"status"`
}

type LifecycleFacts struct {
	Exists bool            `json:"exists"`
	Rules  []LifecycleRule `json:"rules,omitempty"`
}

// EnabledRules counts rules whose status is Enabled.
func (f LifecycleFacts) EnabledRules() int {
	n := 0
	for _, r := range f.Rules {
		if r.Status == "Enabled" {
			n++
		}
	}
	return n
}

type CORSRule struct {
	AllowedOrigins []string `json:"allowed_origins"`
	AllowedMethods []string `json:"allowed_methods"`
	AllowedHeaders []string `json:"allowed_headers,omitempty"`
	MaxAgeSeconds  int32    `json:"max_age_seconds,omitempty"`
}

type CORSIssue struct {
	Type   string `json:"type"`
	Detail string `json:"detail"`
}

type CORSFacts struct {
	Exists bool        `json:"exists"`
	Rules  []CORSRule  `json:"rules,omitempty"`
	Issues []CORSIssue `json:"issues,omitempty"`
}

type LoggingFacts struct {
	Enabled      bool   `json:"enabled"`
	TargetBucket string `json:"target_bucket,omitempty"`
	TargetPrefix string `json:"target_prefix,omitempty"`
}

type ReplicationFacts struct {
	Enabled bool   `json:"enabled"`
	Role    string `json:"role,omitempty"`
	Rules   int    `json:"rules"`
}

type ObjectLockFacts struct {
	Enabled       bool   `json:"enabled"`
	RetentionMode string `json:"retention_mode,omitempty"`
	Days          int32  `json:"days,omitempty"`
	Years         int32  `json:"years,omitempty"`
}

type AccelerationFacts struct {
	Status string `json:"status"`
}

type TaggingFacts struct {
	Tags               map[string]string `json:"tags"`
	MissingRecommended []string          `json:"missing_recommended,omitempty"`
}

type SizeFacts struct {
	ObjectCount    int64   `json:"object_count"`
	TotalSizeBytes int64   `json:"total_size_bytes"`
	TotalSizeMB    float64 `json:"total_size_mb"`
	Sampled        bool    `json:"sampled"`
}

// QueryFailure carries the error text when a concern could not be queried.
type QueryFailure struct {
	Error string `json:"error"`
}

func (ExistenceFacts) isFacts()         {}
func (PolicyFacts) isFacts()            {}
func (PolicyAnalysis) isFacts()         {}
func (PublicAccessBlockFacts) isFacts() {}
func (ACLFacts) isFacts()               {}
func (EncryptionFacts) isFacts()        {}
func (VersioningFacts) isFacts()        {}
func (LifecycleFacts) isFacts()         {}
func (CORSFacts) isFacts()              {}
func (LoggingFacts) isFacts()           {}
func (ReplicationFacts) isFacts()       {}
func (ObjectLockFacts) isFacts()        {}
func (AccelerationFacts) isFacts()      {}
func (TaggingFacts) isFacts()           {}
func (SizeFacts) isFacts()              {}
func (QueryFailure) isFacts()           {}

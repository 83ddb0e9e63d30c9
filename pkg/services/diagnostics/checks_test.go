package diagnostics

import (
	"errors"
	"testing"

	"github.com/de-tools/bucket-doctor/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog_MatchesCheckOrder(t *testing.T) {
	ids := make([]domain.CheckID, 0, len(catalog))
	for _, entry := range catalog {
		ids = append(ids, entry.id)
	}
	assert.Equal(t, domain.AllChecks(), ids)
}

func TestEvaluateExistence(t *testing.T) {
	tests := []struct {
		name     string
		facts    domain.ExistenceFacts
		err      error
		status   domain.CheckStatus
		severity domain.Severity
		message  string
	}{
		{"accessible", domain.ExistenceFacts{Exists: true, Accessible: true}, nil,
			domain.StatusPass, domain.SeverityCritical, "Bucket 'b' exists and is accessible."},
		{"access denied", domain.ExistenceFacts{Exists: true, Accessible: false}, nil,
			domain.StatusFail, domain.SeverityCritical, "Bucket 'b' exists but ACCESS DENIED."},
		{"missing", domain.ExistenceFacts{}, nil,
			domain.StatusFail, domain.SeverityCritical, "Bucket 'b' does NOT exist."},
		{"query failed", domain.ExistenceFacts{}, errors.New("throttled"),
			domain.StatusError, domain.SeverityCritical, "Could not retrieve bucket status: throttled"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := evaluateExistence("b", tt.facts, tt.err)
			assert.Equal(t, domain.CheckExistence, res.Check)
			assert.Equal(t, tt.status, res.Status)
			assert.Equal(t, tt.severity, res.Severity)
			assert.Equal(t, tt.message, res.Message)
			assert.False(t, res.AutoFixable)
		})
	}
}

func TestEvaluatePolicy(t *testing.T) {
	t.Run("absent policy", func(t *testing.T) {
		res := evaluatePolicy(domain.PolicyFacts{Exists: false}, nil)
		assert.Equal(t, domain.StatusWarning, res.Status)
		assert.Equal(t, domain.SeverityLow, res.Severity)
	})

	t.Run("wildcard principal is critical", func(t *testing.T) {
		doc := `{"Statement":[{"Effect":"Allow","Principal":"*","Action":"s3:GetObject"}]}`
		res := evaluatePolicy(domain.PolicyFacts{Exists: true, Document: doc}, nil)
		assert.Equal(t, domain.StatusFail, res.Status)
		assert.Equal(t, domain.SeverityCritical, res.Severity)
		assert.Equal(t, "Bucket policy has 1 issue(s).", res.Message)

		analysis, ok := res.Details.(domain.PolicyAnalysis)
		require.True(t, ok)
		require.Len(t, analysis.Issues, 1)
		assert.Equal(t, domain.PolicyIssueOpenAccess, analysis.Issues[0].Type)
	})

	t.Run("wildcard action only is a warning", func(t *testing.T) {
		doc := `{"Statement":[{"Effect":"Allow","Principal":{"AWS":"arn:aws:iam::1:root"},"Action":"s3:*"}]}`
		res := evaluatePolicy(domain.PolicyFacts{Exists: true, Document: doc}, nil)
		assert.Equal(t, domain.StatusWarning, res.Status)
		assert.Equal(t, domain.SeverityHigh, res.Severity)
	})

	t.Run("clean policy", func(t *testing.T) {
		doc := `{"Statement":[{"Effect":"Deny","Principal":"*","Action":"s3:*"}]}`
		res := evaluatePolicy(domain.PolicyFacts{Exists: true, Document: doc}, nil)
		// s3:* is flagged regardless of effect
		assert.Equal(t, domain.StatusWarning, res.Status)

		doc = `{"Statement":[{"Effect":"Allow","Principal":{"AWS":"arn:aws:iam::1:root"},"Action":["s3:GetObject"]}]}`
		res = evaluatePolicy(domain.PolicyFacts{Exists: true, Document: doc}, nil)
		assert.Equal(t, domain.StatusPass, res.Status)
		assert.Equal(t, domain.SeverityHigh, res.Severity)
	})

	t.Run("unparsable document", func(t *testing.T) {
		res := evaluatePolicy(domain.PolicyFacts{Exists: true, Document: "{not json"}, nil)
		assert.Equal(t, domain.StatusError, res.Status)
		assert.Equal(t, domain.SeverityHigh, res.Severity)
		assert.Equal(t, "Failed to parse bucket policy JSON.", res.Message)
	})

	t.Run("null document", func(t *testing.T) {
		res := evaluatePolicy(domain.PolicyFacts{Exists: true, Document: "null"}, nil)
		assert.Equal(t, domain.StatusError, res.Status)
		assert.Equal(t, "Failed to parse bucket policy JSON.", res.Message)
	})

	t.Run("list-form wildcards", func(t *testing.T) {
		doc := `{"Statement":[{"Effect":"Allow","Principal":{"AWS":["*"]},"Action":"s3:GetObject"}]}`
		res := evaluatePolicy(domain.PolicyFacts{Exists: true, Document: doc}, nil)
		assert.Equal(t, domain.StatusFail, res.Status)
		assert.Equal(t, domain.SeverityCritical, res.Severity)

		doc = `{"Statement":[{"Effect":"Allow","Principal":{"AWS":"arn:aws:iam::1:root"},"Action":["s3:*"]}]}`
		res = evaluatePolicy(domain.PolicyFacts{Exists: true, Document: doc}, nil)
		assert.Equal(t, domain.StatusWarning, res.Status)
		assert.Equal(t, domain.SeverityHigh, res.Severity)
	})

	t.Run("query failed", func(t *testing.T) {
		res := evaluatePolicy(domain.PolicyFacts{}, errors.New("boom"))
		assert.Equal(t, domain.StatusError, res.Status)
	})
}

func TestEvaluatePublicAccessBlock(t *testing.T) {
	t.Run("absent block", func(t *testing.T) {
		res := evaluatePublicAccessBlock(domain.PublicAccessBlockFacts{Exists: false}, nil)
		assert.Equal(t, domain.StatusFail, res.Status)
		assert.Equal(t, domain.SeverityCritical, res.Severity)
		assert.True(t, res.AutoFixable)
		assert.NotEmpty(t, res.FixDescription)
	})

	t.Run("partially disabled", func(t *testing.T) {
		res := evaluatePublicAccessBlock(domain.PublicAccessBlockFacts{
			Exists: true, BlockPublicAcls: true, IgnorePublicAcls: true, BlockPublicPolicy: true,
		}, nil)
		assert.Equal(t, domain.StatusFail, res.Status)
		assert.True(t, res.AutoFixable)
		assert.Contains(t, res.Message, "RestrictPublicBuckets")
	})

	t.Run("fully blocked", func(t *testing.T) {
		res := evaluatePublicAccessBlock(domain.PublicAccessBlockFacts{
			Exists: true, BlockPublicAcls: true, IgnorePublicAcls: true, BlockPublicPolicy: true, RestrictPublicBuckets: true,
		}, nil)
		assert.Equal(t, domain.StatusPass, res.Status)
		assert.False(t, res.AutoFixable)
	})

	t.Run("query failed is not fixable", func(t *testing.T) {
		res := evaluatePublicAccessBlock(domain.PublicAccessBlockFacts{}, errors.New("denied"))
		assert.Equal(t, domain.StatusError, res.Status)
		assert.False(t, res.AutoFixable)
	})
}

func TestEvaluateACL(t *testing.T) {
	t.Run("public grant", func(t *testing.T) {
		res := evaluateACL(domain.ACLFacts{Grants: []domain.ACLGrant{
			{URI: "http://acs.amazonaws.com/groups/global/AllUsers", Permission: "READ"},
			{URI: "http://acs.amazonaws.com/groups/global/AuthenticatedUsers", Permission: "WRITE"},
		}}, nil)
		assert.Equal(t, domain.StatusFail, res.Status)
		assert.Equal(t, domain.SeverityCritical, res.Severity)
		facts := res.Details.(domain.ACLFacts)
		require.Len(t, facts.Issues, 2)
		assert.Equal(t, "PUBLIC_ACL", facts.Issues[0].Type)
		assert.Equal(t, "AUTHENTICATED_USERS_ACL", facts.Issues[1].Type)
	})

	t.Run("private", func(t *testing.T) {
		res := evaluateACL(domain.ACLFacts{Grants: []domain.ACLGrant{{ID: "owner", Permission: "FULL_CONTROL"}}}, nil)
		assert.Equal(t, domain.StatusPass, res.Status)
		assert.Equal(t, domain.SeverityHigh, res.Severity)
	})

	t.Run("query failed", func(t *testing.T) {
		res := evaluateACL(domain.ACLFacts{}, errors.New("denied"))
		assert.Equal(t, domain.StatusError, res.Status)
		assert.Equal(t, domain.SeverityHigh, res.Severity)
		assert.Equal(t, "Could not retrieve ACL: denied", res.Message)
	})
}

func TestEvaluateEncryption(t *testing.T) {
	res := evaluateEncryption(domain.EncryptionFacts{Enabled: true, Rules: []domain.EncryptionRule{{Algorithm: "aws:kms"}}}, nil)
	assert.Equal(t, domain.StatusPass, res.Status)
	assert.Equal(t, "Encryption enabled with aws:kms.", res.Message)

	res = evaluateEncryption(domain.EncryptionFacts{Enabled: false}, nil)
	assert.Equal(t, domain.StatusFail, res.Status)
	assert.Equal(t, domain.SeverityHigh, res.Severity)
	assert.True(t, res.AutoFixable)
	assert.Equal(t, "Enable AES-256 default encryption.", res.FixDescription)
}

func TestEvaluateVersioning(t *testing.T) {
	tests := []struct {
		status   string
		expected domain.CheckStatus
		fixable  bool
	}{
		{"Enabled", domain.StatusPass, false},
		{"Suspended", domain.StatusWarning, true},
		{"Disabled", domain.StatusFail, true},
		{"", domain.StatusFail, true},
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			res := evaluateVersioning(domain.VersioningFacts{Status: tt.status}, nil)
			assert.Equal(t, tt.expected, res.Status)
			assert.Equal(t, domain.SeverityMedium, res.Severity)
			assert.Equal(t, tt.fixable, res.AutoFixable)
		})
	}
}

func TestEvaluateLifecycle(t *testing.T) {
	res := evaluateLifecycle(domain.LifecycleFacts{Exists: true, Rules: []domain.LifecycleRule{
		{ID: "a", Status: "Enabled"}, {ID: "b", Status: "Disabled"},
	}}, nil)
	assert.Equal(t, domain.StatusPass, res.Status)
	assert.Equal(t, "1 active lifecycle rule(s) configured.", res.Message)

	res = evaluateLifecycle(domain.LifecycleFacts{Exists: true, Rules: []domain.LifecycleRule{{ID: "b", Status: "Disabled"}}}, nil)
	assert.Equal(t, domain.StatusWarning, res.Status)

	res = evaluateLifecycle(domain.LifecycleFacts{}, nil)
	assert.Equal(t, domain.StatusWarning, res.Status)
	assert.Equal(t, domain.SeverityLow, res.Severity)
}

func TestEvaluateCORS(t *testing.T) {
	res := evaluateCORS(domain.CORSFacts{}, nil)
	assert.Equal(t, domain.StatusPass, res.Status)
	assert.Equal(t, domain.SeverityInfo, res.Severity)

	res = evaluateCORS(domain.CORSFacts{Exists: true, Rules: []domain.CORSRule{
		{AllowedOrigins: []string{"*"}, AllowedMethods: []string{"GET"}},
	}}, nil)
	assert.Equal(t, domain.StatusWarning, res.Status)
	assert.Equal(t, domain.SeverityMedium, res.Severity)

	res = evaluateCORS(domain.CORSFacts{Exists: true, Rules: []domain.CORSRule{
		{AllowedOrigins: []string{"https://example.com"}, AllowedMethods: []string{"GET", "PUT"}},
	}}, nil)
	assert.Equal(t, domain.StatusWarning, res.Status)
	assert.Contains(t, res.Details.(domain.CORSFacts).Issues[0].Detail, "PUT")

	res = evaluateCORS(domain.CORSFacts{Exists: true, Rules: []domain.CORSRule{
		{AllowedOrigins: []string{"https://example.com"}, AllowedMethods: []string{"GET"}},
	}}, nil)
	assert.Equal(t, domain.StatusPass, res.Status)
	assert.Equal(t, domain.SeverityLow, res.Severity)
}

func TestEvaluateLogging_NotAutoFixable(t *testing.T) {
	res := evaluateLogging(domain.LoggingFacts{Enabled: false}, nil)
	assert.Equal(t, domain.StatusWarning, res.Status)
	assert.Equal(t, domain.SeverityMedium, res.Severity)
	assert.False(t, res.AutoFixable)
	assert.NotEmpty(t, res.FixDescription)

	res = evaluateLogging(domain.LoggingFacts{Enabled: true}, nil)
	assert.Equal(t, domain.StatusPass, res.Status)
}

func TestEvaluateInformationalChecks(t *testing.T) {
	res := evaluateReplication(domain.ReplicationFacts{}, nil)
	assert.Equal(t, domain.StatusInfo, res.Status)
	assert.Equal(t, domain.SeverityInfo, res.Severity)

	res = evaluateReplication(domain.ReplicationFacts{Enabled: true}, nil)
	assert.Equal(t, domain.StatusPass, res.Status)

	res = evaluateObjectLock(domain.ObjectLockFacts{}, nil)
	assert.Equal(t, domain.StatusInfo, res.Status)

	res = evaluateAcceleration(domain.AccelerationFacts{Status: "Enabled"}, nil)
	assert.Equal(t, domain.StatusInfo, res.Status)
	assert.Equal(t, "Transfer Acceleration: Enabled", res.Message)
}

func TestEvaluateTagging(t *testing.T) {
	res := evaluateTagging(domain.TaggingFacts{Tags: map[string]string{"Environment": "prod"}}, nil)
	assert.Equal(t, domain.StatusWarning, res.Status)
	assert.Equal(t, []string{"Project", "Owner", "CostCenter"}, res.Details.(domain.TaggingFacts).MissingRecommended)

	res = evaluateTagging(domain.TaggingFacts{}, nil)
	assert.Equal(t, domain.StatusWarning, res.Status)
	assert.Equal(t, "No tags configured.", res.Message)

	res = evaluateTagging(domain.TaggingFacts{Tags: map[string]string{
		"Environment": "prod", "Project": "p", "Owner": "o", "CostCenter": "c",
	}}, nil)
	assert.Equal(t, domain.StatusPass, res.Status)
	assert.Equal(t, domain.SeverityLow, res.Severity)
}

func TestEvaluateSize(t *testing.T) {
	res := evaluateSize(domain.SizeFacts{ObjectCount: 1000, TotalSizeMB: 12.5, Sampled: true}, nil)
	assert.Equal(t, domain.StatusInfo, res.Status)
	assert.Equal(t, "Bucket contains ~1000 objects, ~12.50 MB (sampled).", res.Message)

	res = evaluateSize(domain.SizeFacts{}, errors.New("timeout"))
	assert.Equal(t, domain.StatusError, res.Status)
	assert.Equal(t, domain.SeverityInfo, res.Severity)
}

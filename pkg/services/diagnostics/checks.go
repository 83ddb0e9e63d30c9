package diagnostics

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/de-tools/bucket-doctor/pkg/models/domain"
)

var recommendedTags = []string{"Environment", "Project", "Owner", "CostCenter"}

type checkFunc func(ctx context.Context, p FactProvider, bucket string, opts Options) domain.DiagnosticResult

type catalogEntry struct {
	id  domain.CheckID
	run checkFunc
}

// catalog is ordered; results are reported in this order.
var catalog = []catalogEntry{
	{domain.CheckExistence, func(ctx context.Context, p FactProvider, bucket string, _ Options) domain.DiagnosticResult {
		facts, err := p.BucketExistence(ctx, bucket)
		return evaluateExistence(bucket, facts, err)
	}},
	{domain.CheckBucketPolicy, func(ctx context.Context, p FactProvider, bucket string, _ Options) domain.DiagnosticResult {
		facts, err := p.BucketPolicy(ctx, bucket)
		return evaluatePolicy(facts, err)
	}},
	{domain.CheckPublicAccessBlock, func(ctx context.Context, p FactProvider, bucket string, _ Options) domain.DiagnosticResult {
		facts, err := p.PublicAccessBlock(ctx, bucket)
		return evaluatePublicAccessBlock(facts, err)
	}},
	{domain.CheckACL, func(ctx context.Context, p FactProvider, bucket string, _ Options) domain.DiagnosticResult {
		facts, err := p.BucketACL(ctx, bucket)
		return evaluateACL(facts, err)
	}},
	{domain.CheckEncryption, func(ctx context.Context, p FactProvider, bucket string, _ Options) domain.DiagnosticResult {
		facts, err := p.BucketEncryption(ctx, bucket)
		return evaluateEncryption(facts, err)
	}},
	{domain.CheckVersioning, func(ctx context.Context, p FactProvider, bucket string, _ Options) domain.DiagnosticResult {
		facts, err := p.BucketVersioning(ctx, bucket)
		return evaluateVersioning(facts, err)
	}},
	{domain.CheckLifecycle, func(ctx context.Context, p FactProvider, bucket string, _ Options) domain.DiagnosticResult {
		facts, err := p.BucketLifecycle(ctx, bucket)
		return evaluateLifecycle(facts, err)
	}},
	{domain.CheckCORS, func(ctx context.Context, p FactProvider, bucket string, _ Options) domain.DiagnosticResult {
		facts, err := p.BucketCORS(ctx, bucket)
		return evaluateCORS(facts, err)
	}},
	{domain.CheckLogging, func(ctx context.Context, p FactProvider, bucket string, _ Options) domain.DiagnosticResult {
		facts, err := p.BucketLogging(ctx, bucket)
		return evaluateLogging(facts, err)
	}},
	{domain.CheckReplication, func(ctx context.Context, p FactProvider, bucket string, _ Options) domain.DiagnosticResult {
		facts, err := p.BucketReplication(ctx, bucket)
		return evaluateReplication(facts, err)
	}},
	{domain.CheckObjectLock, func(ctx context.Context, p FactProvider, bucket string, _ Options) domain.DiagnosticResult {
		facts, err := p.ObjectLock(ctx, bucket)
		return evaluateObjectLock(facts, err)
	}},
	{domain.CheckAcceleration, func(ctx context.Context, p FactProvider, bucket string, _ Options) domain.DiagnosticResult {
		facts, err := p.TransferAcceleration(ctx, bucket)
		return evaluateAcceleration(facts, err)
	}},
	{domain.CheckTagging, func(ctx context.Context, p FactProvider, bucket string, _ Options) domain.DiagnosticResult {
		facts, err := p.BucketTagging(ctx, bucket)
		return evaluateTagging(facts, err)
	}},
	{domain.CheckSize, func(ctx context.Context, p FactProvider, bucket string, opts Options) domain.DiagnosticResult {
		facts, err := p.BucketSize(ctx, bucket, opts.SizeSampleKeys)
		return evaluateSize(facts, err)
	}},
}

func queryFailed(id domain.CheckID, severity domain.Severity, what string, err error) domain.DiagnosticResult {
	return domain.DiagnosticResult{
		Check:    id,
		Status:   domain.StatusError,
		Severity: severity,
		Message:  fmt.Sprintf("Could not retrieve %s: %v", what, err),
		Details:  domain.QueryFailure{Error: err.Error()},
	}
}

func evaluateExistence(bucket string, facts domain.ExistenceFacts, err error) domain.DiagnosticResult {
	if err != nil {
		return queryFailed(domain.CheckExistence, domain.SeverityCritical, "bucket status", err)
	}

	res := domain.DiagnosticResult{
		Check:    domain.CheckExistence,
		Severity: domain.SeverityCritical,
		Details:  facts,
	}
	switch {
	case facts.Exists && facts.Accessible:
		res.Status = domain.StatusPass
		res.Message = fmt.Sprintf("Bucket '%s' exists and is accessible.", bucket)
	case facts.Exists:
		res.Status = domain.StatusFail
		res.Message = fmt.Sprintf("Bucket '%s' exists but ACCESS DENIED.", bucket)
		res.Recommendation = "Check IAM policies. Ensure your user/role has s3:ListBucket, " +
			"s3:GetBucketLocation permissions. Check bucket policy for explicit denies."
	default:
		res.Status = domain.StatusFail
		res.Message = fmt.Sprintf("Bucket '%s' does NOT exist.", bucket)
		res.Recommendation = "Verify the bucket name (case-sensitive, globally unique). " +
			"Check for typos. The bucket may have been deleted."
	}
	return res
}

func evaluatePolicy(facts domain.PolicyFacts, err error) domain.DiagnosticResult {
	if err != nil {
		return queryFailed(domain.CheckBucketPolicy, domain.SeverityHigh, "bucket policy", err)
	}
	if !facts.Exists {
		return domain.DiagnosticResult{
			Check:          domain.CheckBucketPolicy,
			Status:         domain.StatusWarning,
			Severity:       domain.SeverityLow,
			Message:        "No bucket policy is configured.",
			Details:        facts,
			Recommendation: "Consider adding a bucket policy to explicitly define access controls.",
		}
	}

	analysis, err := AnalyzePolicy(facts.Document)
	if err != nil {
		return domain.DiagnosticResult{
			Check:    domain.CheckBucketPolicy,
			Status:   domain.StatusError,
			Severity: domain.SeverityHigh,
			Message:  "Failed to parse bucket policy JSON.",
			Details:  facts,
		}
	}

	if len(analysis.Issues) > 0 {
		res := domain.DiagnosticResult{
			Check:    domain.CheckBucketPolicy,
			Status:   domain.StatusWarning,
			Severity: domain.SeverityHigh,
			Message:  fmt.Sprintf("Bucket policy has %d issue(s).", len(analysis.Issues)),
			Details:  analysis,
			Recommendation: "Review and tighten bucket policy. Remove wildcard principals, " +
				"restrict actions, and add conditions.",
		}
		if analysis.HasCritical() {
			res.Status = domain.StatusFail
			res.Severity = domain.SeverityCritical
		}
		return res
	}

	return domain.DiagnosticResult{
		Check:    domain.CheckBucketPolicy,
		Status:   domain.StatusPass,
		Severity: domain.SeverityHigh,
		Message:  "Bucket policy exists and appears properly configured.",
		Details:  analysis,
	}
}

func evaluatePublicAccessBlock(facts domain.PublicAccessBlockFacts, err error) domain.DiagnosticResult {
	if err != nil {
		return queryFailed(domain.CheckPublicAccessBlock, domain.SeverityCritical, "Public Access Block", err)
	}
	if !facts.Exists {
		return domain.DiagnosticResult{
			Check:          domain.CheckPublicAccessBlock,
			Status:         domain.StatusFail,
			Severity:       domain.SeverityCritical,
			Message:        "No Public Access Block configuration found! Bucket may be publicly accessible.",
			Details:        facts,
			Recommendation: "Enable all four Public Access Block settings immediately.",
			AutoFixable:    true,
			FixDescription: "Enable BlockPublicAcls, IgnorePublicAcls, BlockPublicPolicy, RestrictPublicBuckets.",
		}
	}

	disabled := facts.Disabled()
	if len(disabled) == 0 {
		return domain.DiagnosticResult{
			Check:    domain.CheckPublicAccessBlock,
			Status:   domain.StatusPass,
			Severity: domain.SeverityCritical,
			Message:  "All public access is blocked.",
			Details:  facts,
		}
	}

	list := strings.Join(disabled, ", ")
	return domain.DiagnosticResult{
		Check:          domain.CheckPublicAccessBlock,
		Status:         domain.StatusFail,
		Severity:       domain.SeverityCritical,
		Message:        fmt.Sprintf("Public access block is INCOMPLETE. Disabled: %s", list),
		Details:        facts,
		Recommendation: fmt.Sprintf("Enable these settings: %s", list),
		AutoFixable:    true,
		FixDescription: "Set all Public Access Block settings to True.",
	}
}

func evaluateACL(facts domain.ACLFacts, err error) domain.DiagnosticResult {
	if err != nil {
		return domain.DiagnosticResult{
			Check:    domain.CheckACL,
			Status:   domain.StatusError,
			Severity: domain.SeverityHigh,
			Message:  fmt.Sprintf("Could not retrieve ACL: %v", err),
			Details:  domain.QueryFailure{Error: err.Error()},
		}
	}

	var issues []domain.ACLIssue
	for _, grant := range facts.Grants {
		switch {
		case strings.Contains(grant.URI, "AllUsers"):
			issues = append(issues, domain.ACLIssue{
				Type:       "PUBLIC_ACL",
				Grantee:    "Everyone (AllUsers)",
				Permission: grant.Permission,
			})
		case strings.Contains(grant.URI, "AuthenticatedUsers"):
			issues = append(issues, domain.ACLIssue{
				Type:       "AUTHENTICATED_USERS_ACL",
				Grantee:    "All AWS Authenticated Users",
				Permission: grant.Permission,
			})
		}
	}

	if len(issues) > 0 {
		facts.Issues = issues
		return domain.DiagnosticResult{
			Check:          domain.CheckACL,
			Status:         domain.StatusFail,
			Severity:       domain.SeverityCritical,
			Message:        fmt.Sprintf("ACL has %d overly permissive grant(s).", len(issues)),
			Details:        facts,
			Recommendation: "Remove public ACL grants. Use bucket policies for access control instead.",
		}
	}

	return domain.DiagnosticResult{
		Check:    domain.CheckACL,
		Status:   domain.StatusPass,
		Severity: domain.SeverityHigh,
		Message:  "ACL permissions look correct.",
		Details:  facts,
	}
}

func evaluateEncryption(facts domain.EncryptionFacts, err error) domain.DiagnosticResult {
	if err != nil {
		return queryFailed(domain.CheckEncryption, domain.SeverityHigh, "encryption configuration", err)
	}
	if facts.Enabled {
		algorithm := "Unknown"
		if len(facts.Rules) > 0 && facts.Rules[0].Algorithm != "" {
			algorithm = facts.Rules[0].Algorithm
		}
		return domain.DiagnosticResult{
			Check:    domain.CheckEncryption,
			Status:   domain.StatusPass,
			Severity: domain.SeverityHigh,
			Message:  fmt.Sprintf("Encryption enabled with %s.", algorithm),
			Details:  facts,
		}
	}

	return domain.DiagnosticResult{
		Check:          domain.CheckEncryption,
		Status:         domain.StatusFail,
		Severity:       domain.SeverityHigh,
		Message:        "Server-side encryption is NOT enabled.",
		Details:        facts,
		Recommendation: "Enable default encryption (AES-256 or aws:kms).",
		AutoFixable:    true,
		FixDescription: "Enable AES-256 default encryption.",
	}
}

func evaluateVersioning(facts domain.VersioningFacts, err error) domain.DiagnosticResult {
	if err != nil {
		return queryFailed(domain.CheckVersioning, domain.SeverityMedium, "versioning status", err)
	}

	switch facts.Status {
	case "Enabled":
		return domain.DiagnosticResult{
			Check:    domain.CheckVersioning,
			Status:   domain.StatusPass,
			Severity: domain.SeverityMedium,
			Message:  "Versioning is enabled.",
			Details:  facts,
		}
	case "Suspended":
		return domain.DiagnosticResult{
			Check:    domain.CheckVersioning,
			Status:   domain.StatusWarning,
			Severity: domain.SeverityMedium,
			Message: "Versioning is SUSPENDED. Previously versioned objects remain, " +
				"but new versions won't be created.",
			Details:        facts,
			Recommendation: "Re-enable versioning for data protection.",
			AutoFixable:    true,
			FixDescription: "Enable bucket versioning.",
		}
	default:
		return domain.DiagnosticResult{
			Check:          domain.CheckVersioning,
			Status:         domain.StatusFail,
			Severity:       domain.SeverityMedium,
			Message:        "Versioning is NOT enabled.",
			Details:        facts,
			Recommendation: "Enable versioning to protect against accidental deletes and overwrites.",
			AutoFixable:    true,
			FixDescription: "Enable bucket versioning.",
		}
	}
}

func evaluateLifecycle(facts domain.LifecycleFacts, err error) domain.DiagnosticResult {
	if err != nil {
		return queryFailed(domain.CheckLifecycle, domain.SeverityLow, "lifecycle rules", err)
	}

	if enabled := facts.EnabledRules(); facts.Exists && enabled > 0 {
		return domain.DiagnosticResult{
			Check:    domain.CheckLifecycle,
			Status:   domain.StatusPass,
			Severity: domain.SeverityLow,
			Message:  fmt.Sprintf("%d active lifecycle rule(s) configured.", enabled),
			Details:  facts,
		}
	}

	message := "No lifecycle rules configured."
	if len(facts.Rules) > 0 {
		message = fmt.Sprintf("%d lifecycle rule(s) configured but none are enabled.", len(facts.Rules))
	}
	return domain.DiagnosticResult{
		Check:    domain.CheckLifecycle,
		Status:   domain.StatusWarning,
		Severity: domain.SeverityLow,
		Message:  message,
		Details:  facts,
		Recommendation: "Add lifecycle rules to manage storage costs " +
			"(e.g., transition to Glacier, expire old objects).",
	}
}

func evaluateCORS(facts domain.CORSFacts, err error) domain.DiagnosticResult {
	if err != nil {
		return queryFailed(domain.CheckCORS, domain.SeverityMedium, "CORS configuration", err)
	}
	if !facts.Exists {
		return domain.DiagnosticResult{
			Check:    domain.CheckCORS,
			Status:   domain.StatusPass,
			Severity: domain.SeverityInfo,
			Message:  "No CORS configuration (fine if not serving web content).",
			Details:  facts,
		}
	}

	var issues []domain.CORSIssue
	for i, rule := range facts.Rules {
		if slices.Contains(rule.AllowedOrigins, "*") {
			issues = append(issues, domain.CORSIssue{
				Type:   "WILDCARD_ORIGIN",
				Detail: fmt.Sprintf("Rule %d allows requests from any origin (*)", i),
			})
		}
		var writes []string
		for _, m := range rule.AllowedMethods {
			if m == "PUT" || m == "DELETE" {
				writes = append(writes, m)
			}
		}
		if len(writes) > 0 {
			issues = append(issues, domain.CORSIssue{
				Type:   "WRITE_METHODS",
				Detail: fmt.Sprintf("Rule %d allows write methods: %s", i, strings.Join(writes, ", ")),
			})
		}
	}

	if len(issues) > 0 {
		facts.Issues = issues
		return domain.DiagnosticResult{
			Check:          domain.CheckCORS,
			Status:         domain.StatusWarning,
			Severity:       domain.SeverityMedium,
			Message:        fmt.Sprintf("CORS has %d potential issue(s).", len(issues)),
			Details:        facts,
			Recommendation: "Restrict CORS origins to specific domains. Avoid wildcard (*).",
		}
	}

	return domain.DiagnosticResult{
		Check:    domain.CheckCORS,
		Status:   domain.StatusPass,
		Severity: domain.SeverityLow,
		Message:  "CORS configuration looks properly scoped.",
		Details:  facts,
	}
}

// Logging carries a fix description but is not auto-fixable: no remediation
// action is registered for it.
func evaluateLogging(facts domain.LoggingFacts, err error) domain.DiagnosticResult {
	if err != nil {
		return queryFailed(domain.CheckLogging, domain.SeverityMedium, "access logging status", err)
	}
	if facts.Enabled {
		return domain.DiagnosticResult{
			Check:    domain.CheckLogging,
			Status:   domain.StatusPass,
			Severity: domain.SeverityMedium,
			Message:  "Access logging is enabled.",
			Details:  facts,
		}
	}

	return domain.DiagnosticResult{
		Check:          domain.CheckLogging,
		Status:         domain.StatusWarning,
		Severity:       domain.SeverityMedium,
		Message:        "Access logging is NOT enabled.",
		Details:        facts,
		Recommendation: "Enable server access logging for audit and security monitoring.",
		FixDescription: "Enable access logging to a target bucket.",
	}
}

func evaluateReplication(facts domain.ReplicationFacts, err error) domain.DiagnosticResult {
	if err != nil {
		return queryFailed(domain.CheckReplication, domain.SeverityInfo, "replication configuration", err)
	}
	if facts.Enabled {
		return domain.DiagnosticResult{
			Check:    domain.CheckReplication,
			Status:   domain.StatusPass,
			Severity: domain.SeverityInfo,
			Message:  "Cross-region/same-region replication is configured.",
			Details:  facts,
		}
	}

	return domain.DiagnosticResult{
		Check:          domain.CheckReplication,
		Status:         domain.StatusInfo,
		Severity:       domain.SeverityInfo,
		Message:        "No replication configured (may be acceptable depending on requirements).",
		Details:        facts,
		Recommendation: "Consider enabling replication for disaster recovery.",
	}
}

func evaluateObjectLock(facts domain.ObjectLockFacts, err error) domain.DiagnosticResult {
	if err != nil {
		return queryFailed(domain.CheckObjectLock, domain.SeverityInfo, "Object Lock configuration", err)
	}
	if facts.Enabled {
		return domain.DiagnosticResult{
			Check:    domain.CheckObjectLock,
			Status:   domain.StatusPass,
			Severity: domain.SeverityInfo,
			Message:  "Object Lock is enabled (WORM protection).",
			Details:  facts,
		}
	}

	return domain.DiagnosticResult{
		Check:          domain.CheckObjectLock,
		Status:         domain.StatusInfo,
		Severity:       domain.SeverityInfo,
		Message:        "Object Lock is not enabled.",
		Details:        facts,
		Recommendation: "Enable Object Lock if you need WORM (Write Once Read Many) compliance.",
	}
}

func evaluateAcceleration(facts domain.AccelerationFacts, err error) domain.DiagnosticResult {
	if err != nil {
		return queryFailed(domain.CheckAcceleration, domain.SeverityInfo, "Transfer Acceleration status", err)
	}
	status := facts.Status
	if status == "" {
		status = "Not configured"
	}
	return domain.DiagnosticResult{
		Check:    domain.CheckAcceleration,
		Status:   domain.StatusInfo,
		Severity: domain.SeverityInfo,
		Message:  fmt.Sprintf("Transfer Acceleration: %s", status),
		Details:  facts,
	}
}

func evaluateTagging(facts domain.TaggingFacts, err error) domain.DiagnosticResult {
	if err != nil {
		return queryFailed(domain.CheckTagging, domain.SeverityLow, "bucket tags", err)
	}
	if len(facts.Tags) == 0 {
		return domain.DiagnosticResult{
			Check:          domain.CheckTagging,
			Status:         domain.StatusWarning,
			Severity:       domain.SeverityLow,
			Message:        "No tags configured.",
			Details:        facts,
			Recommendation: "Add tags (Environment, Project, Owner, CostCenter) for governance.",
		}
	}

	var missing []string
	for _, tag := range recommendedTags {
		if _, ok := facts.Tags[tag]; !ok {
			missing = append(missing, tag)
		}
	}

	if len(missing) > 0 {
		facts.MissingRecommended = missing
		list := strings.Join(missing, ", ")
		return domain.DiagnosticResult{
			Check:          domain.CheckTagging,
			Status:         domain.StatusWarning,
			Severity:       domain.SeverityLow,
			Message:        fmt.Sprintf("Bucket has %d tag(s) but missing recommended: %s", len(facts.Tags), list),
			Details:        facts,
			Recommendation: fmt.Sprintf("Add these tags for governance: %s", list),
		}
	}

	return domain.DiagnosticResult{
		Check:    domain.CheckTagging,
		Status:   domain.StatusPass,
		Severity: domain.SeverityLow,
		Message:  fmt.Sprintf("Bucket has %d tag(s) including recommended governance tags.", len(facts.Tags)),
		Details:  facts,
	}
}

func evaluateSize(facts domain.SizeFacts, err error) domain.DiagnosticResult {
	if err != nil {
		return domain.DiagnosticResult{
			Check:    domain.CheckSize,
			Status:   domain.StatusError,
			Severity: domain.SeverityInfo,
			Message:  fmt.Sprintf("Could not determine bucket size: %v", err),
			Details:  domain.QueryFailure{Error: err.Error()},
		}
	}

	mode := "(complete)"
	if facts.Sampled {
		mode = "(sampled)"
	}
	return domain.DiagnosticResult{
		Check:    domain.CheckSize,
		Status:   domain.StatusInfo,
		Severity: domain.SeverityInfo,
		Message:  fmt.Sprintf("Bucket contains ~%d objects, ~%.2f MB %s.", facts.ObjectCount, facts.TotalSizeMB, mode),
		Details:  facts,
	}
}

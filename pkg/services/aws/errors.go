package aws

import (
	"errors"
	"net/http"

	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	"github.com/aws/smithy-go"
)

// Error codes S3 uses to say a configuration is simply not set.
var absentCodes = map[string]bool{
	"NoSuchBucketPolicy":                             true,
	"NoSuchPublicAccessBlockConfiguration":           true,
	"ServerSideEncryptionConfigurationNotFoundError": true,
	"NoSuchLifecycleConfiguration":                   true,
	"NoSuchCORSConfiguration":                        true,
	"ReplicationConfigurationNotFoundError":          true,
	"ObjectLockConfigurationNotFoundError":           true,
	"NoSuchTagSet":                                   true,
}

func errorCode(err error) string {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return apiErr.ErrorCode()
	}
	return ""
}

func statusCode(err error) int {
	var respErr *awshttp.ResponseError
	if errors.As(err, &respErr) {
		return respErr.HTTPStatusCode()
	}
	return 0
}

// isAbsent reports whether err means "not configured" rather than a failure.
func isAbsent(err error) bool {
	return absentCodes[errorCode(err)]
}

func isNotFound(err error) bool {
	code := errorCode(err)
	return code == "NotFound" || code == "NoSuchBucket" || statusCode(err) == http.StatusNotFound
}

func isForbidden(err error) bool {
	code := errorCode(err)
	return code == "Forbidden" || code == "AccessDenied" || statusCode(err) == http.StatusForbidden
}

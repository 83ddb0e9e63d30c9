package domain

import "fmt"

// CheckID identifies one entry of the check catalog. The set is closed.
type CheckID int

const (
	CheckExistence CheckID = iota + 1
	CheckBucketPolicy
	CheckPublicAccessBlock
	CheckACL
	CheckEncryption
	CheckVersioning
	CheckLifecycle
	CheckCORS
	CheckLogging
	CheckReplication
	CheckObjectLock
	CheckAcceleration
	CheckTagging
	CheckSize
)

var checkNames = map[CheckID]string{
	CheckExistence:         "Bucket Existence & Access",
	CheckBucketPolicy:      "Bucket Policy",
	CheckPublicAccessBlock: "Public Access Block",
	CheckACL:               "ACL Permissions",
	CheckEncryption:        "Server-Side Encryption",
	CheckVersioning:        "Versioning",
	CheckLifecycle:         "Lifecycle Rules",
	CheckCORS:              "CORS Configuration",
	CheckLogging:           "Access Logging",
	CheckReplication:       "Replication",
	CheckObjectLock:        "Object Lock",
	CheckAcceleration:      "Transfer Acceleration",
	CheckTagging:           "Bucket Tagging",
	CheckSize:              "Bucket Size",
}

// AllChecks returns every check in catalog order.
func AllChecks() []CheckID {
	return []CheckID{
		CheckExistence,
		CheckBucketPolicy,
		CheckPublicAccessBlock,
		CheckACL,
		CheckEncryption,
		CheckVersioning,
		CheckLifecycle,
		CheckCORS,
		CheckLogging,
		CheckReplication,
		CheckObjectLock,
		CheckAcceleration,
		CheckTagging,
		CheckSize,
	}
}

// RemediableChecks lists the checks that have a registered remediation action.
func RemediableChecks() []CheckID {
	return []CheckID{CheckPublicAccessBlock, CheckEncryption, CheckVersioning}
}

func (c CheckID) Name() string {
	if name, ok := checkNames[c]; ok {
		return name
	}
	return fmt.Sprintf("Check(%d)", int(c))
}

func (c CheckID) String() string {
	return c.Name()
}

func (c CheckID) Valid() bool {
	_, ok := checkNames[c]
	return ok
}

func (c CheckID) Remediable() bool {
	for _, id := range RemediableChecks() {
		if id == c {
			return true
		}
	}
	return false
}

func ParseCheckID(name string) (CheckID, error) {
	for id, n := range checkNames {
		if n == name {
			return id, nil
		}
	}
	return 0, fmt.Errorf("unknown check %q", name)
}

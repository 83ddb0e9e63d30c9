package domain

import "fmt"

type ProfileSource string

const (
	ProfileSourceConfig      ProfileSource = "config"
	ProfileSourceCredentials ProfileSource = "credentials"
)

// AWSProfile is a named profile found in the shared AWS configuration files.
type AWSProfile struct {
	Name   string
	Region string
	Source ProfileSource
}

func (p AWSProfile) String() string {
	return fmt.Sprintf("%s:%s", p.Source, p.Name)
}

type CallerIdentity struct {
	Account string
	ARN     string
	UserID  string
}

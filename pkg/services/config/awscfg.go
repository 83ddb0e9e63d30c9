package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/de-tools/bucket-doctor/pkg/models/domain"
	"gopkg.in/ini.v1"
)

// Registry lists the named profiles of the shared AWS configuration files.
type Registry interface {
	GetProfiles(ctx context.Context) ([]domain.AWSProfile, error)
	GetProfile(ctx context.Context, name string) (domain.AWSProfile, error)
}

type cfgRegistry struct {
	config      *ini.File
	credentials *ini.File
}

// DefaultPaths honours AWS_CONFIG_FILE and AWS_SHARED_CREDENTIALS_FILE.
func DefaultPaths() (configPath, credentialsPath string) {
	home, _ := os.UserHomeDir()
	configPath = os.Getenv("AWS_CONFIG_FILE")
	if configPath == "" {
		configPath = filepath.Join(home, ".aws", "config")
	}
	credentialsPath = os.Getenv("AWS_SHARED_CREDENTIALS_FILE")
	if credentialsPath == "" {
		credentialsPath = filepath.Join(home, ".aws", "credentials")
	}
	return configPath, credentialsPath
}

// NewRegistry loads both files. Missing files are treated as empty.
func NewRegistry(configPath, credentialsPath string) (Registry, error) {
	cfg, err := ini.LooseLoad(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", configPath, err)
	}
	creds, err := ini.LooseLoad(credentialsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", credentialsPath, err)
	}
	return &cfgRegistry{config: cfg, credentials: creds}, nil
}

func (cr *cfgRegistry) GetProfiles(_ context.Context) ([]domain.AWSProfile, error) {
	byName := map[string]domain.AWSProfile{}

	for _, section := range cr.credentials.Sections() {
		if len(section.Keys()) == 0 {
			continue
		}
		byName[section.Name()] = domain.AWSProfile{
			Name:   section.Name(),
			Source: domain.ProfileSourceCredentials,
		}
	}

	// The config file prefixes every profile except default with "profile ".
	for _, section := range cr.config.Sections() {
		if len(section.Keys()) == 0 {
			continue
		}
		name := section.Name()
		if name != "default" {
			if !strings.HasPrefix(name, "profile ") {
				continue
			}
			name = strings.TrimSpace(strings.TrimPrefix(name, "profile "))
		}
		profile, ok := byName[name]
		if !ok {
			profile = domain.AWSProfile{Name: name, Source: domain.ProfileSourceConfig}
		}
		profile.Region = section.Key("region").String()
		byName[name] = profile
	}

	profiles := make([]domain.AWSProfile, 0, len(byName))
	for _, p := range byName {
		profiles = append(profiles, p)
	}
	sort.Slice(profiles, func(i, j int) bool { return profiles[i].Name < profiles[j].Name })
	return profiles, nil
}

func (cr *cfgRegistry) GetProfile(ctx context.Context, name string) (domain.AWSProfile, error) {
	profiles, err := cr.GetProfiles(ctx)
	if err != nil {
		return domain.AWSProfile{}, err
	}
	for _, p := range profiles {
		if p.Name == name {
			return p, nil
		}
	}
	return domain.AWSProfile{}, fmt.Errorf("profile %s not found", name)
}

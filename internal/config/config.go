package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/semanticbi/tabsync/pkg/tabsync"
)

// ErrConfigNotFound is returned when the config file does not exist.
// Callers can check for this with errors.Is(err, config.ErrConfigNotFound).
var ErrConfigNotFound = errors.New("config file not found")

// SyncConfig holds the synchronization policies as written in the config
// file. Policy values are strings there; SyncOptions converts and validates.
type SyncConfig struct {
	PerspectiveMergePolicy string `yaml:"perspective_merge_policy"`
	CultureMergePolicy     string `yaml:"culture_merge_policy"`
	RoleMemberMatch        string `yaml:"role_member_match,omitempty"`
}

// DeployConfig holds deployment defaults.
type DeployConfig struct {
	Server         string   `yaml:"server"`
	Database       string   `yaml:"database"`
	ProcessingMode string   `yaml:"processing_mode,omitempty"`
	ProcessTables  []string `yaml:"process_tables,omitempty"`
	UseTransaction bool     `yaml:"use_transaction,omitempty"`
	Verbose        bool     `yaml:"verbose,omitempty"`
}

// ProjectConfig is the top-level tabsync.yaml shape.
type ProjectConfig struct {
	Sync   SyncConfig   `yaml:"sync"`
	Deploy DeployConfig `yaml:"deploy"`
}

const ConfigFileName = "tabsync.yaml"

// Load reads tabsync.yaml from the given directory.
func Load(sourcePath string) (*ProjectConfig, error) {
	configPath := filepath.Join(sourcePath, ConfigFileName)
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cfg ProjectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// SyncOptions converts the file's policy strings into validated options.
// Empty strings take the defaults (replace, match by member id).
func (c *ProjectConfig) SyncOptions() (tabsync.SyncOptions, error) {
	opts := tabsync.SyncOptions{}

	var err error
	if opts.PerspectiveMergePolicy, err = parseMergePolicy(c.Sync.PerspectiveMergePolicy); err != nil {
		return opts, fmt.Errorf("perspective_merge_policy: %w", err)
	}
	if opts.CultureMergePolicy, err = parseMergePolicy(c.Sync.CultureMergePolicy); err != nil {
		return opts, fmt.Errorf("culture_merge_policy: %w", err)
	}
	if opts.RoleMemberMatchPolicy, err = parseMemberMatch(c.Sync.RoleMemberMatch); err != nil {
		return opts, fmt.Errorf("role_member_match: %w", err)
	}
	return opts, nil
}

// DeployOptions converts the deploy section into validated options.
func (c *ProjectConfig) DeployOptions() (tabsync.DeployOptions, error) {
	mode, err := parseProcessingMode(c.Deploy.ProcessingMode)
	if err != nil {
		return tabsync.DeployOptions{}, fmt.Errorf("processing_mode: %w", err)
	}

	opts := tabsync.DeployOptions{
		ServerAddress:  c.Deploy.Server,
		DatabaseName:   c.Deploy.Database,
		ProcessingMode: mode,
		ProcessTables:  append([]string(nil), c.Deploy.ProcessTables...),
		UseTransaction: c.Deploy.UseTransaction,
		Verbose:        c.Deploy.Verbose,
	}
	if err := opts.Validate(); err != nil {
		return tabsync.DeployOptions{}, err
	}
	return opts, nil
}

func parseMergePolicy(s string) (tabsync.MergePolicy, error) {
	switch s {
	case "", "replace":
		return tabsync.MergePolicyReplace, nil
	case "merge":
		return tabsync.MergePolicyMerge, nil
	default:
		return 0, fmt.Errorf("unknown merge policy %q (expected replace or merge): %w", s, tabsync.ErrInvalidConfig)
	}
}

func parseMemberMatch(s string) (tabsync.RoleMemberMatchPolicy, error) {
	switch s {
	case "", "id":
		return tabsync.MatchMembersByID, nil
	case "name":
		return tabsync.MatchMembersByName, nil
	default:
		return 0, fmt.Errorf("unknown role member match %q (expected id or name): %w", s, tabsync.ErrInvalidConfig)
	}
}

func parseProcessingMode(s string) (tabsync.ProcessingMode, error) {
	switch s {
	case "", "default":
		return tabsync.ProcessDefault, nil
	case "full":
		return tabsync.ProcessFull, nil
	case "none":
		return tabsync.ProcessNone, nil
	default:
		return 0, fmt.Errorf("unknown processing mode %q (expected default, full or none): %w", s, tabsync.ErrInvalidConfig)
	}
}

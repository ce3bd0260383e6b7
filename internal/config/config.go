package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"

	dserrors "github.com/systmms/opcred/internal/errors"
	"github.com/systmms/opcred/internal/logging"
)

// DefaultAWSRegion is used for sites with no configured region.
const DefaultAWSRegion = "us-east-1"

//go:embed schema.json
var schemaJSON string

// Config holds the runtime configuration
type Config struct {
	Path    string
	Logger  *logging.Logger
	Debug   bool
	NoColor bool

	data     map[string]interface{}
	problems error
}

// DefaultPath returns ~/.config/opcreds/config.yml.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".config", "opcreds", "config.yml")
}

// Defaults returns a fresh copy of the compiled-in configuration.
func Defaults() map[string]interface{} {
	return map[string]interface{}{
		"default_vault":        "HomeLab",
		"aws_operations_vault": "AWS-Operations",
		"aws_bootstrap_vault":  "AWS-Bootstrap",
		"sites": map[string]interface{}{
			"singapore": map[string]interface{}{
				"alias":      "sg",
				"aws_region": "ap-southeast-1",
			},
			"us": map[string]interface{}{
				"alias":      "us",
				"aws_region": "us-east-1",
			},
		},
	}
}

// New returns a config holding only the defaults. Load merges the file over it.
func New(path string) *Config {
	return &Config{Path: path, data: Defaults()}
}

// Load reads the YAML file at c.Path and deep-merges it over the defaults.
// A missing file is not an error. Schema violations are logged and kept in
// Problems so that `opcred config` can still repair the file; Save refuses
// to write them back.
func (c *Config) Load() error {
	c.data = Defaults()
	c.problems = nil
	if c.Path == "" {
		c.Path = DefaultPath()
	}

	raw, err := os.ReadFile(c.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return dserrors.UserError{
			Message:    "Failed to read configuration file",
			Details:    err.Error(),
			Suggestion: "Check file permissions and path",
			Err:        err,
		}
	}

	var loaded map[string]interface{}
	if err := yaml.Unmarshal(raw, &loaded); err != nil {
		return dserrors.ConfigError{
			Field:      "path",
			Value:      c.Path,
			Message:    "invalid YAML syntax in configuration file",
			Suggestion: "Check for indentation errors, missing quotes, or invalid characters",
		}
	}

	merged := DeepMerge(c.data, loaded)
	if err := Validate(merged); err != nil {
		c.problems = err
		if c.Logger != nil {
			c.Logger.Warn("Configuration %s has invalid values: %v", c.Path, err)
		}
	}

	c.data = merged
	return nil
}

// Problems returns the schema violations found by the last Load, or nil.
func (c *Config) Problems() error {
	return c.problems
}

// Save validates the configuration and writes it back to c.Path.
// Last writer wins.
func (c *Config) Save() error {
	if err := Validate(c.tree()); err != nil {
		return err
	}
	if c.Path == "" {
		c.Path = DefaultPath()
	}
	if err := os.MkdirAll(filepath.Dir(c.Path), 0o700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	out, err := c.YAML()
	if err != nil {
		return err
	}

	if err := os.WriteFile(c.Path, []byte(out), 0o600); err != nil {
		return dserrors.UserError{
			Message:    "Failed to write configuration file",
			Details:    err.Error(),
			Suggestion: "Check file permissions and path",
			Err:        err,
		}
	}
	return nil
}

// YAML renders the current configuration.
func (c *Config) YAML() (string, error) {
	out, err := yaml.Marshal(c.tree())
	if err != nil {
		return "", fmt.Errorf("failed to encode configuration: %w", err)
	}
	return string(out), nil
}

// Get resolves a dotted key such as "sites.singapore.aws_region".
// It returns nil when any segment is missing.
func (c *Config) Get(key string) interface{} {
	var cur interface{} = c.tree()
	for _, k := range strings.Split(key, ".") {
		m, ok := cur.(map[string]interface{})
		if !ok {
			return nil
		}
		cur = m[k]
	}
	return cur
}

// GetString is Get formatted as a string, or "" when unset.
func (c *Config) GetString(key string) string {
	v := c.Get(key)
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// Set assigns value at a dotted key, creating intermediate maps as needed.
// Intermediate values that are not maps are replaced.
func (c *Config) Set(key string, value interface{}) {
	keys := strings.Split(key, ".")
	last := keys[len(keys)-1]

	target := c.tree()
	for _, k := range keys[:len(keys)-1] {
		next, ok := target[k].(map[string]interface{})
		if !ok {
			next = map[string]interface{}{}
			target[k] = next
		}
		target = next
	}
	target[last] = value
}

// SiteConfig looks a site up by name or alias. The returned map is a copy
// carrying the canonical site name under "name". Unknown sites get the
// default AWS region.
func (c *Config) SiteConfig(site string) map[string]interface{} {
	sites, _ := c.tree()["sites"].(map[string]interface{})

	if cfg, ok := sites[site].(map[string]interface{}); ok {
		return withName(cfg, site)
	}

	names := make([]string, 0, len(sites))
	for name := range sites {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		cfg, ok := sites[name].(map[string]interface{})
		if ok && cfg["alias"] == site {
			return withName(cfg, name)
		}
	}

	return map[string]interface{}{
		"name":       site,
		"aws_region": DefaultAWSRegion,
	}
}

// SiteRegion returns the AWS region configured for a site, or "".
func (c *Config) SiteRegion(site string) string {
	region, _ := c.SiteConfig(site)["aws_region"].(string)
	return region
}

// VaultFor maps a vault purpose to its configured vault name.
func (c *Config) VaultFor(kind string) string {
	switch kind {
	case "aws_operations", "aws":
		return c.GetString("aws_operations_vault")
	case "aws_bootstrap":
		return c.GetString("aws_bootstrap_vault")
	default:
		return c.GetString("default_vault")
	}
}

func (c *Config) tree() map[string]interface{} {
	if c.data == nil {
		c.data = Defaults()
	}
	return c.data
}

func withName(cfg map[string]interface{}, name string) map[string]interface{} {
	out := make(map[string]interface{}, len(cfg)+1)
	for k, v := range cfg {
		out[k] = v
	}
	out["name"] = name
	return out
}

// DeepMerge returns base with override merged in. Nested maps merge per
// key; any other override value replaces the base value. Neither input is
// modified.
func DeepMerge(base, override map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(base)+len(override))
	for k, v := range base {
		out[k] = v
	}
	for k, nv := range override {
		oldMap, oldIsMap := out[k].(map[string]interface{})
		newMap, newIsMap := nv.(map[string]interface{})
		if oldIsMap && newIsMap {
			out[k] = DeepMerge(oldMap, newMap)
			continue
		}
		out[k] = nv
	}
	return out
}

// Validate checks a configuration tree against the embedded JSON schema.
func Validate(data map[string]interface{}) error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(schemaJSON),
		gojsonschema.NewGoLoader(data),
	)
	if err != nil {
		return fmt.Errorf("schema validation error: %w", err)
	}

	if !result.Valid() {
		var msgs []string
		for _, desc := range result.Errors() {
			msgs = append(msgs, desc.String())
		}
		return dserrors.ConfigError{
			Message:    "configuration does not match schema:\n  - " + strings.Join(msgs, "\n  - "),
			Suggestion: "Fix the listed keys or reset them with 'opcred config <key> <value>'",
		}
	}
	return nil
}

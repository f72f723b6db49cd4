package snapshot

import (
	"fmt"
	"os"
	"path/filepath"

	"treesnap/pkg/glob"

	"gopkg.in/yaml.v3"
)

// ConfigFileName is the optional per-project configuration file, looked up
// at the project root.
const ConfigFileName = ".treesnap.yaml"

// DefaultOutput is the artifact path relative to the project root.
const DefaultOutput = "context-snapshot.txt"

// Rule pairs a glob pattern with a line limit. Rules are ordered; the
// first rule whose pattern matches an accepted file applies, and no file
// is affected by more than one rule.
type Rule struct {
	Pattern  string `yaml:"pattern"`
	MaxLines int    `yaml:"maxLines"`
	Notice   string `yaml:"notice"`
}

// Config holds the per-run configuration, fixed once the run starts.
type Config struct {
	Root     string   `yaml:"-"`
	Output   string   `yaml:"output"`
	Exclude  []string `yaml:"exclude"`
	Truncate []Rule   `yaml:"truncate"`
}

var defaultExcludes = []string{
	".git/**",
	"**/node_modules/**",
	"**/dist/**",
	"**/build/**",
	"**/vendor/**",
	"**/__pycache__/**",
	"**/.DS_Store",
	"**/*.env",
}

var defaultTruncations = []Rule{
	{Pattern: "**/package-lock.json", MaxLines: 100, Notice: "[... lockfile truncated ...]"},
	{Pattern: "**/yarn.lock", MaxLines: 100, Notice: "[... lockfile truncated ...]"},
	{Pattern: "**/pnpm-lock.yaml", MaxLines: 100, Notice: "[... lockfile truncated ...]"},
	{Pattern: "**/*.snap", MaxLines: 200, Notice: "[... snapshot file truncated ...]"},
}

// DefaultConfig returns the built-in configuration for the given root.
func DefaultConfig(root string) *Config {
	return &Config{
		Root:     root,
		Output:   DefaultOutput,
		Exclude:  append([]string(nil), defaultExcludes...),
		Truncate: append([]Rule(nil), defaultTruncations...),
	}
}

// LoadConfig builds the run configuration for root. When configPath is
// empty, an optional ConfigFileName at the root is consulted; a missing
// file leaves the defaults in place. An explicit configPath must exist.
// Explicit exclude/truncate lists replace the defaults wholesale.
func LoadConfig(root, configPath string) (*Config, error) {
	cfg := DefaultConfig(root)

	path := configPath
	if path == "" {
		path = filepath.Join(root, ConfigFileName)
		if _, err := os.Stat(path); err != nil {
			return cfg, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var override Config
	if err := yaml.Unmarshal(data, &override); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if override.Output != "" {
		cfg.Output = override.Output
	}
	if override.Exclude != nil {
		cfg.Exclude = override.Exclude
	}
	if override.Truncate != nil {
		cfg.Truncate = override.Truncate
	}
	return cfg, nil
}

// compiledRule is a truncation rule with its pattern compiled.
type compiledRule struct {
	pattern  *glob.Pattern
	maxLines int
	notice   string
}

// ruleSet is the compiled form of a Config, built once before scanning.
type ruleSet struct {
	exclude *glob.Set
	rules   []compiledRule
}

// compileConfig validates and compiles the configuration. Any malformed
// glob pattern or non-positive line limit fails here, before any
// directory is scanned.
func compileConfig(cfg *Config) (*ruleSet, error) {
	exclude, err := glob.CompileSet(cfg.Exclude)
	if err != nil {
		return nil, fmt.Errorf("exclusion rules: %w", err)
	}

	rules := make([]compiledRule, 0, len(cfg.Truncate))
	for _, r := range cfg.Truncate {
		if r.MaxLines <= 0 {
			return nil, fmt.Errorf("truncation rule %q: maxLines must be positive, got %d", r.Pattern, r.MaxLines)
		}
		p, err := glob.Compile(r.Pattern)
		if err != nil {
			return nil, fmt.Errorf("truncation rules: %w", err)
		}
		rules = append(rules, compiledRule{pattern: p, maxLines: r.MaxLines, notice: r.Notice})
	}

	return &ruleSet{exclude: exclude, rules: rules}, nil
}

// firstMatch returns the first rule whose pattern matches path, or nil.
func (rs *ruleSet) firstMatch(path string) *compiledRule {
	for i := range rs.rules {
		if rs.rules[i].pattern.Match(path) {
			return &rs.rules[i]
		}
	}
	return nil
}

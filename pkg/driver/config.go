package driver

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ConfigFileName is the file FindConfig searches for.
const ConfigFileName = "lispy.yml"

const (
	DefaultPrompt             = "lispy> "
	DefaultContinuationPrompt = "  ...> "
	DefaultHistoryLimit       = 1000
)

// ErrConfigNotFound is returned by FindConfig when no lispy.yml exists in the
// start directory or any of its parents.
var ErrConfigNotFound = errors.New("lispy.yml not found")

// Config represents the parsed contents of lispy.yml.
type Config struct {
	Path               string
	Prompt             string
	ContinuationPrompt string
	Banner             bool
	HistoryFile        string
	HistoryLimit       int
	// Prelude files are evaluated into the global environment, in order,
	// before any user input. Paths are resolved against the config file.
	Prelude []string
	// EchoResults makes `lispy run` print every top-level result, not just
	// errors.
	EchoResults bool
}

// DefaultConfig is used when no lispy.yml is present.
func DefaultConfig() *Config {
	return &Config{
		Prompt:             DefaultPrompt,
		ContinuationPrompt: DefaultContinuationPrompt,
		Banner:             true,
		HistoryFile:        defaultHistoryFile(),
		HistoryLimit:       DefaultHistoryLimit,
		EchoResults:        false,
	}
}

func defaultHistoryFile() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return ""
	}
	return filepath.Join(home, ".lispy_history")
}

// ValidationError aggregates config validation failures.
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "config: invalid configuration"
	}
	var b strings.Builder
	b.WriteString("config validation failed:")
	for _, issue := range e.Issues {
		b.WriteString("\n- ")
		b.WriteString(issue)
	}
	return b.String()
}

// LoadConfig parses lispy.yml from disk, returning a validated config.
// Unset fields keep their DefaultConfig values.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config: empty path")
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("config: resolve %s: %w", path, err)
	}
	file, err := os.Open(absPath)
	if err != nil {
		return nil, fmt.Errorf("config: open %s: %w", absPath, err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)

	var raw configFile
	if err := decoder.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			cfg := DefaultConfig()
			cfg.Path = absPath
			return cfg, nil
		}
		return nil, fmt.Errorf("config: parse %s: %w", absPath, err)
	}

	cfg := raw.toConfig(absPath)
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// FindConfig walks from start towards the filesystem root looking for
// lispy.yml.
func FindConfig(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("config: resolve %s: %w", start, err)
	}
	for {
		candidate := filepath.Join(dir, ConfigFileName)
		info, err := os.Stat(candidate)
		if err == nil && !info.IsDir() {
			return candidate, nil
		}
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("config: stat %s: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrConfigNotFound
		}
		dir = parent
	}
}

func (c *Config) validate() error {
	var errs ValidationError
	if c.Prompt == "" {
		errs.Issues = append(errs.Issues, "prompt must not be empty")
	}
	if c.ContinuationPrompt == "" {
		errs.Issues = append(errs.Issues, "continuation_prompt must not be empty")
	}
	if c.HistoryLimit < 0 {
		errs.Issues = append(errs.Issues, fmt.Sprintf("history_limit must be >= 0, got %d", c.HistoryLimit))
	}
	seen := make(map[string]struct{}, len(c.Prelude))
	for i, path := range c.Prelude {
		if _, dup := seen[path]; dup {
			errs.Issues = append(errs.Issues, fmt.Sprintf("prelude[%d] %q listed more than once", i, path))
			continue
		}
		seen[path] = struct{}{}
	}
	if len(errs.Issues) > 0 {
		return &errs
	}
	return nil
}

type configFile struct {
	Prompt             *string    `yaml:"prompt"`
	ContinuationPrompt *string    `yaml:"continuation_prompt"`
	Banner             *bool      `yaml:"banner"`
	HistoryFile        *string    `yaml:"history_file"`
	HistoryLimit       *int       `yaml:"history_limit"`
	Prelude            stringList `yaml:"prelude"`
	EchoResults        *bool      `yaml:"echo_results"`
}

func (cf configFile) toConfig(path string) *Config {
	cfg := DefaultConfig()
	cfg.Path = path
	if cf.Prompt != nil {
		cfg.Prompt = *cf.Prompt
	}
	if cf.ContinuationPrompt != nil {
		cfg.ContinuationPrompt = *cf.ContinuationPrompt
	}
	if cf.Banner != nil {
		cfg.Banner = *cf.Banner
	}
	if cf.HistoryFile != nil {
		cfg.HistoryFile = expandHome(strings.TrimSpace(*cf.HistoryFile))
	}
	if cf.HistoryLimit != nil {
		cfg.HistoryLimit = *cf.HistoryLimit
	}
	if cf.EchoResults != nil {
		cfg.EchoResults = *cf.EchoResults
	}
	base := filepath.Dir(path)
	for _, entry := range cf.Prelude {
		entry = expandHome(entry)
		if !filepath.IsAbs(entry) {
			entry = filepath.Join(base, entry)
		}
		cfg.Prelude = append(cfg.Prelude, filepath.Clean(entry))
	}
	return cfg
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

// stringList accepts either a single string or a sequence of strings.
type stringList []string

func (l *stringList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		if value.Tag == "!!null" || strings.TrimSpace(value.Value) == "" {
			*l = nil
			return nil
		}
		*l = stringList{strings.TrimSpace(value.Value)}
		return nil
	case yaml.SequenceNode:
		items := make([]string, 0, len(value.Content))
		for _, node := range value.Content {
			var str string
			if err := node.Decode(&str); err != nil {
				return err
			}
			str = strings.TrimSpace(str)
			if str == "" {
				continue
			}
			items = append(items, str)
		}
		*l = stringList(items)
		return nil
	case yaml.AliasNode:
		return l.UnmarshalYAML(value.Alias)
	default:
		return fmt.Errorf("config: expected string or sequence but found %s", value.ShortTag())
	}
}

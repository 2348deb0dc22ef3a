package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	configPathEnv     = "ASPECT_SCANNER_CONFIG"
	defaultConfigPath = "config.yaml"

	// EngineChrome drives a headless Chromium; EngineStatic fetches
	// documents over plain HTTP and degrades waits to immediate lookups.
	EngineChrome = "chrome"
	EngineStatic = "static"

	defaultSettleDelay       = 2 * time.Second
	defaultWiktionaryTimeout = 15
	defaultOutputDir         = "biaspectual_verbs"
)

// Config holds every setting consumed across the application.
type Config struct {
	// Timeout, in seconds, bounds every wait against the corpus UI.
	Timeout    int              `yaml:"timeout"`
	SeedURL    string           `yaml:"seed_url"`
	Headless   bool             `yaml:"headless"`
	Engine     string           `yaml:"engine"`
	Delays     DelaysConfig     `yaml:"delays"`
	Selectors  SelectorConfig   `yaml:"css_selectors"`
	XPaths     XPathConfig      `yaml:"x_paths"`
	Wiktionary WiktionaryConfig `yaml:"wiktionary"`
	Output     OutputConfig     `yaml:"output"`
	Journal    JournalConfig    `yaml:"journal"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// DelaysConfig names the fixed settle pauses applied where the target app
// exposes no reliable readiness signal. Tests substitute zero durations.
type DelaysConfig struct {
	Navigate time.Duration `yaml:"navigate"`
	Scroll   time.Duration `yaml:"scroll"`
	Paginate time.Duration `yaml:"paginate"`
}

// UnmarshalYAML accepts Go duration strings ("2s", "500ms") for the delay
// values, which yaml cannot decode into time.Duration on its own.
func (d *DelaysConfig) UnmarshalYAML(value *yaml.Node) error {
	var raw struct {
		Navigate string `yaml:"navigate"`
		Scroll   string `yaml:"scroll"`
		Paginate string `yaml:"paginate"`
	}
	if err := value.Decode(&raw); err != nil {
		return err
	}

	for _, field := range []struct {
		name string
		in   string
		out  *time.Duration
	}{
		{"navigate", raw.Navigate, &d.Navigate},
		{"scroll", raw.Scroll, &d.Scroll},
		{"paginate", raw.Paginate, &d.Paginate},
	} {
		if field.in == "" {
			continue
		}
		parsed, err := time.ParseDuration(field.in)
		if err != nil {
			return fmt.Errorf("delays.%s: %w", field.name, err)
		}
		*field.out = parsed
	}
	return nil
}

// SelectorConfig carries the CSS selectors of the detail-overlay fields.
// The two list-valued entries are ordered candidate selectors tried
// first-match-wins, because those fields render under different selectors
// depending on lemma type.
type SelectorConfig struct {
	MainAnalysis        string   `yaml:"main_analysis"`
	Lemma               string   `yaml:"lemma"`
	Grammar             string   `yaml:"grammar"`
	Semantics           string   `yaml:"semantics"`
	RelatedWords        string   `yaml:"related_words"`
	SyntacticProperties []string `yaml:"syntactic_properties"`
	AdditionalFeatures  []string `yaml:"additional_features"`
}

// XPathConfig carries the XPath locators of the search UI.
type XPathConfig struct {
	SearchInput string `yaml:"search_input"`
}

// WiktionaryConfig describes the dictionary category workflow.
type WiktionaryConfig struct {
	CategoryURL string `yaml:"category_url"`
	// Timeout, in seconds, for category-page waits; defaults to 15.
	Timeout int `yaml:"timeout"`
	// Engine overrides the top-level engine for this workflow only. The
	// category pages need no script execution, so the static engine is a
	// common choice here even when the corpus workflow drives chrome.
	Engine string `yaml:"engine"`
}

// OutputConfig locates the directory receiving all result files.
type OutputConfig struct {
	Dir string `yaml:"dir"`
}

// JournalConfig describes the processed-word journal database.
type JournalConfig struct {
	Path     string `yaml:"path"`
	Disabled bool   `yaml:"disabled"`
}

// LoggingConfig selects the log level.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Path resolves the config file location: explicit argument, then the
// ASPECT_SCANNER_CONFIG environment variable, then ./config.yaml.
func Path(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if path := os.Getenv(configPathEnv); path != "" {
		return path
	}
	return defaultConfigPath
}

// Load reads and validates YAML configuration. Missing required keys are a
// fatal configuration error at startup, surfaced here.
func Load(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}

	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}

	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Engine == "" {
		c.Engine = EngineChrome
	}
	if c.Delays.Navigate == 0 {
		c.Delays.Navigate = defaultSettleDelay
	}
	if c.Delays.Scroll == 0 {
		c.Delays.Scroll = defaultSettleDelay
	}
	if c.Delays.Paginate == 0 {
		c.Delays.Paginate = defaultSettleDelay
	}
	if c.Wiktionary.Timeout == 0 {
		c.Wiktionary.Timeout = defaultWiktionaryTimeout
	}
	if c.Output.Dir == "" {
		c.Output.Dir = defaultOutputDir
	}
	if c.Journal.Path == "" {
		c.Journal.Path = "aspectscanner.db"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
}

func (c Config) validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be a positive number of seconds")
	}
	if c.SeedURL == "" {
		return fmt.Errorf("seed_url is required")
	}
	if c.Engine != EngineChrome && c.Engine != EngineStatic {
		return fmt.Errorf("engine must be %q or %q, got %q", EngineChrome, EngineStatic, c.Engine)
	}
	if c.Wiktionary.Engine != "" && c.Wiktionary.Engine != EngineChrome && c.Wiktionary.Engine != EngineStatic {
		return fmt.Errorf("wiktionary.engine must be %q or %q, got %q", EngineChrome, EngineStatic, c.Wiktionary.Engine)
	}
	if c.XPaths.SearchInput == "" {
		return fmt.Errorf("x_paths.search_input is required")
	}

	required := map[string]string{
		"css_selectors.main_analysis": c.Selectors.MainAnalysis,
		"css_selectors.lemma":         c.Selectors.Lemma,
		"css_selectors.grammar":       c.Selectors.Grammar,
		"css_selectors.semantics":     c.Selectors.Semantics,
		"css_selectors.related_words": c.Selectors.RelatedWords,
	}
	for key, value := range required {
		if value == "" {
			return fmt.Errorf("%s is required", key)
		}
	}
	if len(c.Selectors.SyntacticProperties) == 0 {
		return fmt.Errorf("css_selectors.syntactic_properties needs at least one candidate selector")
	}
	if len(c.Selectors.AdditionalFeatures) == 0 {
		return fmt.Errorf("css_selectors.additional_features needs at least one candidate selector")
	}

	return nil
}

// WaitTimeout converts the configured corpus timeout to a duration.
func (c Config) WaitTimeout() time.Duration {
	return time.Duration(c.Timeout) * time.Second
}

// WiktionaryWaitTimeout converts the category-workflow timeout to a duration.
func (c Config) WiktionaryWaitTimeout() time.Duration {
	return time.Duration(c.Wiktionary.Timeout) * time.Second
}

// WiktionaryEngine resolves the engine driving the category workflow,
// falling back to the top-level engine when no override is set.
func (c Config) WiktionaryEngine() string {
	if c.Wiktionary.Engine != "" {
		return c.Wiktionary.Engine
	}
	return c.Engine
}

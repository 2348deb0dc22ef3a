package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validConfig = `
timeout: 15
seed_url: "https://corpus.example/search"
headless: true
x_paths:
  search_input: "//button[contains(@class, 'search-button')]"
css_selectors:
  main_analysis: "div.main-analysis"
  lemma: "div.lemma"
  grammar: "div.gramm"
  semantics: "div.semantic"
  related_words: "div.lex"
  syntactic_properties:
    - "div.syntax-full"
    - "div.syntax"
  additional_features:
    - "div.flags-full"
    - "div.flags"
`

func writeConfig(t *testing.T, content string) string {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := Load(writeConfig(t, validConfig))
	require.NoError(t, err)

	assert.Equal(t, EngineChrome, cfg.Engine)
	assert.Equal(t, 2*time.Second, cfg.Delays.Navigate)
	assert.Equal(t, 2*time.Second, cfg.Delays.Scroll)
	assert.Equal(t, 2*time.Second, cfg.Delays.Paginate)
	assert.Equal(t, 15*time.Second, cfg.WaitTimeout())
	assert.Equal(t, 15*time.Second, cfg.WiktionaryWaitTimeout())
	assert.Equal(t, "biaspectual_verbs", cfg.Output.Dir)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, []string{"div.syntax-full", "div.syntax"}, cfg.Selectors.SyntacticProperties)
}

func TestLoadParsesDelayStrings(t *testing.T) {
	t.Parallel()

	cfg, err := Load(writeConfig(t, validConfig+"\ndelays:\n  navigate: 500ms\n  scroll: 1s\n"))
	require.NoError(t, err)

	assert.Equal(t, 500*time.Millisecond, cfg.Delays.Navigate)
	assert.Equal(t, time.Second, cfg.Delays.Scroll)
	assert.Equal(t, 2*time.Second, cfg.Delays.Paginate, "unset delay keeps its default")
}

func TestLoadMissingRequiredKeysIsFatal(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		mangle  func(string) string
		wantErr string
	}{
		{
			name:    "missing timeout",
			mangle:  func(s string) string { return stripLine(s, "timeout: 15") },
			wantErr: "timeout",
		},
		{
			name:    "missing seed url",
			mangle:  func(s string) string { return stripLine(s, `seed_url: "https://corpus.example/search"`) },
			wantErr: "seed_url",
		},
		{
			name:    "missing grammar selector",
			mangle:  func(s string) string { return stripLine(s, `  grammar: "div.gramm"`) },
			wantErr: "grammar",
		},
		{
			name: "missing search xpath",
			mangle: func(s string) string {
				return stripLine(stripLine(s, "x_paths:"), `  search_input: "//button[contains(@class, 'search-button')]"`)
			},
			wantErr: "search_input",
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := Load(writeConfig(t, tc.mangle(validConfig)))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestLoadRejectsUnknownEngine(t *testing.T) {
	t.Parallel()

	_, err := Load(writeConfig(t, validConfig+"\nengine: firefox\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "engine")
}

func TestWiktionaryEngineOverride(t *testing.T) {
	t.Parallel()

	cfg, err := Load(writeConfig(t, validConfig+"\nwiktionary:\n  engine: static\n"))
	require.NoError(t, err)
	assert.Equal(t, EngineChrome, cfg.Engine)
	assert.Equal(t, EngineStatic, cfg.WiktionaryEngine())

	cfg, err = Load(writeConfig(t, validConfig))
	require.NoError(t, err)
	assert.Equal(t, EngineChrome, cfg.WiktionaryEngine(), "no override falls back to the top-level engine")

	_, err = Load(writeConfig(t, validConfig+"\nwiktionary:\n  engine: firefox\n"))
	require.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	t.Parallel()

	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func stripLine(content, line string) string {
	var out strings.Builder
	for _, l := range strings.Split(content, "\n") {
		if l == line {
			continue
		}
		out.WriteString(l)
		out.WriteByte('\n')
	}
	return out.String()
}

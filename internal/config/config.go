// Package config loads tool configuration from a TOML file.
package config

import (
	"fmt"
	"os"
	"regexp"

	"github.com/pelletier/go-toml/v2"

	"github.com/dshills/textify/internal/outline"
)

// Tools holds the per-tool enable flags.
type Tools struct {
	CodeMap     bool `toml:"code_map"`
	FindReplace bool `toml:"find_replace"`
	JumpToLine  bool `toml:"jump_to_line"`
	Counters    bool `toml:"counters"`
	Trim        bool `toml:"trim"`
	CaseConvert bool `toml:"case_convert"`
	Switcher    bool `toml:"switcher"`
	Bookmarks   bool `toml:"bookmarks"`
	Occurrences bool `toml:"occurrences"`
	Definition  bool `toml:"definition"`
	RecentFiles bool `toml:"recent_files"`
	Script      bool `toml:"script"`
}

// Language holds the outline recognition patterns for one language.
type Language struct {
	Class    string `toml:"class"`
	Function string `toml:"function"`
	Property string `toml:"property"`
	Constant string `toml:"constant"`
	Variable string `toml:"variable"`
	Comment  string `toml:"comment"`
}

// Patterns converts the language entry to an outline pattern set.
func (l Language) Patterns() outline.PatternSet {
	return outline.PatternSet{
		Class:    l.Class,
		Function: l.Function,
		Property: l.Property,
		Constant: l.Constant,
		Variable: l.Variable,
		Comment:  l.Comment,
	}
}

// Outline holds outline builder settings.
type Outline struct {
	TabWidth  int                 `toml:"tab_width"`
	Languages map[string]Language `toml:"languages"`
}

// Find holds find/replace defaults.
type Find struct {
	MatchCase bool `toml:"match_case"`
	WholeWord bool `toml:"whole_word"`
	Wrap      bool `toml:"wrap"`
}

// Recent holds recent-files settings.
type Recent struct {
	Path       string `toml:"path"`
	MaxEntries int    `toml:"max_entries"`
}

// Bookmarks holds bookmark display settings.
type Bookmarks struct {
	PreviewLength int `toml:"preview_length"`
}

// Script holds Lua transform settings.
type Script struct {
	Dir string `toml:"dir"`
}

// Config is the full tool configuration.
type Config struct {
	Tools     Tools     `toml:"tools"`
	Outline   Outline   `toml:"outline"`
	Find      Find      `toml:"find"`
	Recent    Recent    `toml:"recent"`
	Bookmarks Bookmarks `toml:"bookmarks"`
	Script    Script    `toml:"script"`
}

// Default returns the configuration used when no file is present:
// every tool enabled, Python-style outline patterns.
func Default() Config {
	dp := outline.DefaultPatterns()
	return Config{
		Tools: Tools{
			CodeMap:     true,
			FindReplace: true,
			JumpToLine:  true,
			Counters:    true,
			Trim:        true,
			CaseConvert: true,
			Switcher:    true,
			Bookmarks:   true,
			Occurrences: true,
			Definition:  true,
			RecentFiles: true,
			Script:      true,
		},
		Outline: Outline{
			TabWidth: 4,
			Languages: map[string]Language{
				"python": {
					Class:    dp.Class,
					Function: dp.Function,
					Property: dp.Property,
					Constant: dp.Constant,
					Variable: dp.Variable,
					Comment:  dp.Comment,
				},
			},
		},
		Find: Find{
			Wrap: true,
		},
		Recent: Recent{
			MaxEntries: 20,
		},
		Bookmarks: Bookmarks{
			PreviewLength: 60,
		},
	}
}

// Load reads a TOML config file and merges it over the defaults.
// A missing file yields the defaults, not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config file %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Default(), &ParseError{Path: path, Err: err}
	}

	if err := cfg.Validate(); err != nil {
		return Default(), err
	}
	return cfg, nil
}

// Validate checks the configuration for values the tools cannot use.
func (c Config) Validate() error {
	if c.Outline.TabWidth < 1 {
		return fmt.Errorf("%w: outline.tab_width must be at least 1", ErrInvalidConfig)
	}
	if c.Recent.MaxEntries < 1 {
		return fmt.Errorf("%w: recent.max_entries must be at least 1", ErrInvalidConfig)
	}
	if c.Bookmarks.PreviewLength < 1 {
		return fmt.Errorf("%w: bookmarks.preview_length must be at least 1", ErrInvalidConfig)
	}
	for name, lang := range c.Outline.Languages {
		for kind, pattern := range map[string]string{
			"class":    lang.Class,
			"function": lang.Function,
			"property": lang.Property,
			"constant": lang.Constant,
			"variable": lang.Variable,
		} {
			if pattern == "" {
				continue
			}
			if _, err := regexp.Compile(pattern); err != nil {
				return fmt.Errorf("%w: outline.languages.%s.%s: %v", ErrInvalidConfig, name, kind, err)
			}
		}
	}
	return nil
}

// PatternsFor returns the outline patterns for a language, falling back to
// the Python defaults when the language is not configured.
func (c Config) PatternsFor(language string) outline.PatternSet {
	if lang, ok := c.Outline.Languages[language]; ok {
		return lang.Patterns()
	}
	return outline.DefaultPatterns()
}

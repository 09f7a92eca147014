package internal

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/starford/inkpress/internal/markdown"
	"github.com/starford/inkpress/internal/selector"
)

// Log formats.
const (
	LogFormatJSON = "json"
	LogFormatText = "text"
)

// Config represents the application configuration.
type Config struct {
	App      ApplicationConfig `yaml:"app" toml:"app"`
	Site     SiteConfig        `yaml:"site" toml:"site"`
	Paths    PathsConfig       `yaml:"paths" toml:"paths"`
	Publish  PublishConfig     `yaml:"publish" toml:"publish"`
	Markdown MarkdownConfig    `yaml:"markdown" toml:"markdown"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.App.Validate(); err != nil {
		return fmt.Errorf("app: %w", err)
	}
	if err := c.Site.Validate(); err != nil {
		return fmt.Errorf("site: %w", err)
	}
	if err := c.Paths.Validate(); err != nil {
		return fmt.Errorf("paths: %w", err)
	}
	if err := c.Publish.Validate(); err != nil {
		return fmt.Errorf("publish: %w", err)
	}
	if err := c.Markdown.Validate(); err != nil {
		return fmt.Errorf("markdown: %w", err)
	}
	return nil
}

// ApplicationConfig holds process-level configuration.
type ApplicationConfig struct {
	LogLevel  slog.Level `yaml:"log_level" toml:"log_level"`
	LogFormat string     `yaml:"log_format" toml:"log_format"`
}

// Validate validates the application configuration.
func (c *ApplicationConfig) Validate() error {
	if c.LogFormat == "" {
		c.LogFormat = LogFormatJSON
	}
	return validation.ValidateStruct(c,
		validation.Field(&c.LogFormat, validation.In(LogFormatJSON, LogFormatText)),
	)
}

// SiteConfig describes the published blog.
type SiteConfig struct {
	Name string `yaml:"name" toml:"name"`
	// URL is the base every permalink is built on.
	URL string `yaml:"url" toml:"url"`
	// ShortURL is an optional base for short links. Empty means URL.
	ShortURL string `yaml:"short_url" toml:"short_url"`
	// Timezone applies to post dates written without an offset.
	Timezone string `yaml:"timezone" toml:"timezone"`
}

// Validate validates the site configuration.
func (c *SiteConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.URL, validation.Required, validation.By(absoluteURL)),
		validation.Field(&c.ShortURL, validation.By(absoluteURL)),
		validation.Field(&c.Timezone, validation.By(loadableZone)),
	)
}

// Location returns the configured time zone, time.Local when unset.
func (c *SiteConfig) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	return time.LoadLocation(c.Timezone)
}

// PathsConfig holds the directories the publisher works with.
type PathsConfig struct {
	// Templates is a directory or a glob such as "template/*".
	Templates string `yaml:"templates" toml:"templates"`
	Output    string `yaml:"output" toml:"output"`
	Source    string `yaml:"source" toml:"source"`
}

// Validate validates the paths configuration.
func (c *PathsConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Templates, validation.Required),
		validation.Field(&c.Output, validation.Required),
		validation.Field(&c.Source, validation.Required),
	)
}

// PublishConfig tunes one publish run.
type PublishConfig struct {
	// Recent is the size of the working set.
	Recent int `yaml:"recent" toml:"recent"`
	// Order is "name" or "time".
	Order   string `yaml:"order" toml:"order"`
	PageExt string `yaml:"page_ext" toml:"page_ext"`
	// StrictHeader fails posts whose header never reaches the delimiter.
	StrictHeader bool `yaml:"strict_header" toml:"strict_header"`
	// ReconcileCategories checks every post of the working set against its
	// category files, not only the newest.
	ReconcileCategories bool `yaml:"reconcile_categories" toml:"reconcile_categories"`
	VerifyFeed          bool `yaml:"verify_feed" toml:"verify_feed"`
}

// Validate validates the publish configuration.
func (c *PublishConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Recent, validation.Required, validation.Min(1)),
		validation.Field(&c.Order, validation.Required,
			validation.In(string(selector.OrderByName), string(selector.OrderByTime))),
		validation.Field(&c.PageExt, validation.Required, validation.By(pageExt)),
	)
}

// MarkdownConfig configures body conversion.
type MarkdownConfig struct {
	Extensions []string `yaml:"extensions" toml:"extensions"`
	HardWraps  bool     `yaml:"hard_wraps" toml:"hard_wraps"`
}

// Validate validates the markdown configuration.
func (c *MarkdownConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Extensions, validation.Each(validation.By(knownExtension))),
	)
}

func absoluteURL(value any) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	u, err := url.Parse(s)
	if err != nil {
		return errors.New("must be a valid URL")
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return errors.New("must be an absolute http(s) URL")
	}
	return nil
}

func loadableZone(value any) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	if _, err := time.LoadLocation(s); err != nil {
		return fmt.Errorf("unknown time zone %q", s)
	}
	return nil
}

func pageExt(value any) error {
	s, _ := value.(string)
	if strings.ContainsAny(s, `./\`) {
		return errors.New("must be a bare extension such as php")
	}
	return nil
}

func knownExtension(value any) error {
	s, _ := value.(string)
	if !markdown.KnownExtension(s) {
		return fmt.Errorf("unknown extension %q, supported: %s", s, strings.Join(markdown.Extensions(), ", "))
	}
	return nil
}

// NewDefaultConfig returns a new Config with sensible default values.
func NewDefaultConfig() *Config {
	return &Config{
		App: ApplicationConfig{
			LogLevel:  slog.LevelInfo,
			LogFormat: LogFormatJSON,
		},
		Site: SiteConfig{
			Name: "inkpress",
		},
		Paths: PathsConfig{
			Templates: "template/*",
			Output:    "archive",
			Source:    "source",
		},
		Publish: PublishConfig{
			Recent:     10,
			Order:      string(selector.OrderByName),
			PageExt:    "php",
			VerifyFeed: true,
		},
		Markdown: MarkdownConfig{
			Extensions: append([]string(nil), markdown.DefaultExtensions...),
		},
	}
}

package config

import (
	"net/url"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values. The defaults are deliberately
// conservative: a one-second politeness delay, no request timeout, and
// output under ./output.
const (
	// AppName is the application name used for XDG directory paths.
	AppName = "adventcal"

	// DefaultSite is the base URL of the crawl target. It is exposed as
	// a setting (rather than hard-coded) so tests and mirrors can point
	// the whole crawler at another host with one flag.
	DefaultSite = "https://qiita.com/"

	// DefaultDelay is the politeness interval before every HTTP request.
	// 1 second bounds the request rate to at most one request per second
	// site-wide, since the crawl is strictly sequential.
	DefaultDelay = 1 * time.Second

	// DefaultTimeout of zero means no per-request timeout: a hung
	// request blocks the crawl indefinitely until interrupted.
	// Operators who want a bound set --timeout.
	DefaultTimeout = 0 * time.Second

	// DefaultOutputDir is the root directory for TSV output files.
	DefaultOutputDir = "output"

	// DefaultUserAgent identifies the crawler in HTTP requests.
	// A descriptive User-Agent lets site operators identify crawler
	// traffic in their logs.
	DefaultUserAgent = "adventcal/1.0 (+https://github.com/nao1215/adventcal)"
)

// Config holds all configuration options for a crawl command.
//
// Design decision: We use a single flat struct instead of nested structs
// (e.g. CrawlConfig, ReportConfig) for simplicity. The number of options
// is manageable, and nesting would add complexity without significant
// benefit.
type Config struct {
	// Site is the base URL of the crawl target, trailing slash included.
	// The own-site filter for liker crawling prefix-matches against it.
	Site string

	// Year is the advent calendar year to crawl.
	Year int

	// Category narrows the crawl to one category listing.
	// Empty crawls the whole year.
	Category string

	// OutputDir is the root directory for TSV output files.
	// Files are written under OutputDir/Year.
	OutputDir string

	// Delay is the politeness interval applied before every request.
	// Zero disables the wait (useful only in tests).
	Delay time.Duration

	// Timeout is the per-request timeout. Zero means no timeout.
	Timeout time.Duration

	// UserAgent is the User-Agent header sent with every request.
	UserAgent string

	// Headers are extra HTTP headers sent with every request,
	// typically loaded from the config file.
	Headers map[string]string

	// Verbose enables detailed log output using slog.LevelDebug.
	// When false, only warnings and errors are logged.
	Verbose bool

	// JSONReport renders the run summary as JSON instead of a table.
	// Mutually exclusive with MarkdownReport.
	JSONReport bool

	// MarkdownReport renders the run summary as Markdown instead of a
	// table. Mutually exclusive with JSONReport.
	MarkdownReport bool

	// ReportFile is the output file path for the run summary.
	// When empty, the summary goes to stdout.
	ReportFile string

	// ConfigFilePath is an explicit configuration file path. When empty,
	// .adventcal is searched in the current directory and then in the
	// user's home directory.
	ConfigFilePath string

	// HistoryDir is the directory for the run-history SQLite database.
	// When empty, run history is not saved.
	HistoryDir string
}

// NewConfig creates a Config with default values.
//
// Design decision: We use a constructor function instead of relying on
// zero values because most defaults are non-zero. This also serves as
// documentation of what the defaults are.
func NewConfig() *Config {
	return &Config{
		Site:       DefaultSite,
		OutputDir:  DefaultOutputDir,
		Delay:      DefaultDelay,
		Timeout:    DefaultTimeout,
		UserAgent:  DefaultUserAgent,
		HistoryDir: XDGDataDir(),
	}
}

// XDGDataDir returns the XDG data directory for adventcal.
// This follows the XDG Base Directory Specification.
// On Linux: ~/.local/share/adventcal
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for adventcal.
// On Linux: ~/.config/adventcal
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks if the configuration is valid.
// It returns the first problem found; fixing one error often makes the
// others irrelevant.
func (c *Config) Validate() error {
	if c.Year <= 0 {
		return ErrInvalidYear
	}

	if c.Site == "" {
		return ErrInvalidSite
	}
	if u, err := url.Parse(c.Site); err != nil || !u.IsAbs() {
		return ErrInvalidSite
	}

	// Zero delay is allowed (tests), negative is not
	if c.Delay < 0 {
		return ErrInvalidDelay
	}

	// Zero timeout means "no timeout", negative is invalid
	if c.Timeout < 0 {
		return ErrInvalidTimeout
	}

	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}

	return nil
}

package output

import (
	"io"

	"github.com/ilham-ap/parex/internal/executor"
)

// Format represents the output format type
type Format string

const (
	// FormatTable outputs data in a table format
	FormatTable Format = "table"
	// FormatJSON outputs data in JSON format
	FormatJSON Format = "json"
	// FormatYAML outputs data in YAML format
	FormatYAML Format = "yaml"
)

// Formatter defines the interface for output formatting
type Formatter interface {
	// Format outputs a single data item to the writer
	Format(w io.Writer, data interface{}) error

	// FormatResults outputs a batch of task results to the writer
	FormatResults(w io.Writer, results []executor.Result) error
}

// Option is a functional option for configuring formatters
type Option func(*Options)

// Options holds configuration for formatters
type Options struct {
	// NoColor disables color output
	NoColor bool

	// NoHeaders disables table headers
	NoHeaders bool

	// Wide enables wide output with additional columns
	Wide bool
}

// WithNoColor disables color output
func WithNoColor(noColor bool) Option {
	return func(o *Options) {
		o.NoColor = noColor
	}
}

// WithNoHeaders disables table headers
func WithNoHeaders(noHeaders bool) Option {
	return func(o *Options) {
		o.NoHeaders = noHeaders
	}
}

// WithWide enables wide output
func WithWide(wide bool) Option {
	return func(o *Options) {
		o.Wide = wide
	}
}

// NewFormatter creates a new formatter based on the specified format
func NewFormatter(format Format, opts ...Option) Formatter {
	options := &Options{}
	for _, opt := range opts {
		opt(options)
	}

	switch format {
	case FormatJSON:
		return NewJSONFormatter(options)
	case FormatYAML:
		return NewYAMLFormatter(options)
	case FormatTable:
		fallthrough
	default:
		return NewTableFormatter(options)
	}
}

// resultEntry is the serializable view of a result used by the JSON and
// YAML formatters
type resultEntry struct {
	Index    int    `json:"index" yaml:"index"`
	Label    string `json:"label,omitempty" yaml:"label,omitempty"`
	Status   string `json:"status" yaml:"status"`
	Value    any    `json:"value,omitempty" yaml:"value,omitempty"`
	Error    string `json:"error,omitempty" yaml:"error,omitempty"`
	Duration string `json:"duration" yaml:"duration"`
}

func toEntries(results []executor.Result) []resultEntry {
	entries := make([]resultEntry, len(results))
	for i, r := range results {
		entry := resultEntry{
			Index:    r.Index,
			Label:    r.Label,
			Duration: r.Duration.String(),
		}
		if r.Err != nil {
			entry.Status = "failed"
			entry.Error = r.Err.Error()
		} else {
			entry.Status = "success"
			entry.Value = r.Value
		}
		entries[i] = entry
	}
	return entries
}

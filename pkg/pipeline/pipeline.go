// Package pipeline runs the decode → build → render pipeline behind the CLI.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Decode: parse JSON, YAML or TOML input into an ordered [value.Value]
//  2. Build: turn the value into a depth-capped [tree.Node] tree
//  3. Render: produce artifacts (HTML, a text outline, DOT, SVG)
//
// Rendered artifacts are cached under a hash of the input and every option
// that changes the output.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Input:    data,
//	    Filename: "config.yaml",
//	    Formats:  []string{"html"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	page := result.Artifacts["html"]
package pipeline

import (
	"io"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/jsonview/pkg/cache"
	"github.com/matzehuels/jsonview/pkg/errors"
	"github.com/matzehuels/jsonview/pkg/tree"
	"github.com/matzehuels/jsonview/pkg/view"
)

// Input formats.
const (
	InputJSON = "json"
	InputYAML = "yaml"
	InputTOML = "toml"
)

// Output formats.
const (
	FormatHTML = "html"
	FormatText = "text"
	FormatDOT  = "dot"
	FormatSVG  = "svg"
)

// ValidInputFormats is the set of supported input formats.
var ValidInputFormats = map[string]bool{
	InputJSON: true,
	InputYAML: true,
	InputTOML: true,
}

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatHTML: true,
	FormatText: true,
	FormatDOT:  true,
	FormatSVG:  true,
}

// Options contains all configuration for one pipeline run.
type Options struct {
	// Input
	Input       []byte `json:"-"`
	Filename    string `json:"filename,omitempty"`
	InputFormat string `json:"input_format,omitempty"`

	// Build options
	MaxDepth *int `json:"max_depth,omitempty"` // nil uses tree.DefaultMaxDepth, tree.Unlimited removes the cap
	Titles   bool `json:"titles,omitempty"`

	// Render options
	Formats     []string `json:"formats,omitempty"`
	Expand      bool     `json:"expand,omitempty"`
	EmptyBranch bool     `json:"empty_branch,omitempty"`
	HideSize    bool     `json:"hide_size,omitempty"`
	HiddenKeys  bool     `json:"hidden_keys,omitempty"`
	HTML        bool     `json:"html,omitempty"`
	Indent      int      `json:"indent,omitempty"`
	MaxPreview  int      `json:"max_preview,omitempty"`
	Detailed    bool     `json:"detailed,omitempty"`
	Refresh     bool     `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	validated bool
}

// ValidateFormat checks that an output format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: html, text, dot, svg)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	return errors.ValidateFormats(formats, []string{FormatHTML, FormatText, FormatDOT, FormatSVG})
}

// ValidateInputFormat checks that an input format is valid.
func ValidateInputFormat(format string) error {
	if !ValidInputFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid input format: %q (must be one of: json, yaml, toml)", format)
	}
	return nil
}

// DetectInputFormat maps a file name to an input format by extension.
// Unknown extensions, stdin ("-") and empty names are JSON.
func DetectInputFormat(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		return InputYAML
	case ".toml":
		return InputTOML
	default:
		return InputJSON
	}
}

// ValidateAndSetDefaults checks the options and fills in defaults.
// Calling it again has no further effect.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.InputFormat == "" {
		o.InputFormat = DetectInputFormat(o.Filename)
	}
	o.InputFormat = strings.ToLower(o.InputFormat)
	if o.InputFormat == "yml" {
		o.InputFormat = InputYAML
	}
	if err := ValidateInputFormat(o.InputFormat); err != nil {
		return err
	}
	if o.Depth() < tree.Unlimited {
		return errors.New(errors.ErrCodeInvalidConfig, "invalid max depth %d", o.Depth())
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatHTML}
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Indent == 0 {
		o.Indent = view.DefaultIndent
	}
	if o.MaxPreview == 0 {
		o.MaxPreview = view.DefaultMaxPreview
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// Depth returns the depth limit in effect. Zero keeps only the root.
func (o *Options) Depth() int {
	if o.MaxDepth == nil {
		return tree.DefaultMaxDepth
	}
	return *o.MaxDepth
}

// DepthLimit returns a pointer for [Options.MaxDepth].
func DepthLimit(depth int) *int { return &depth }

// TreeOptions returns the tree builder options.
func (o *Options) TreeOptions() []tree.Option {
	opts := []tree.Option{tree.WithMaxDepth(o.Depth())}
	if o.Titles {
		opts = append(opts, tree.WithTitles())
	}
	return opts
}

// ViewOptions returns the renderer options.
func (o *Options) ViewOptions() []view.Option {
	opts := []view.Option{
		view.WithIndent(o.Indent),
		view.WithMaxPreview(o.MaxPreview),
	}
	if o.Logger != nil {
		opts = append(opts, view.WithLogger(o.Logger))
	}
	if o.HideSize {
		opts = append(opts, view.WithHideSize())
	}
	if o.HTML {
		opts = append(opts, view.WithHTML())
	}
	if o.HiddenKeys {
		opts = append(opts, view.WithHiddenKeys())
	}
	if o.EmptyBranch {
		opts = append(opts, view.WithEmptyAsBranch())
	}
	if o.Expand {
		opts = append(opts, view.WithStartExpanded())
	}
	return opts
}

// ArtifactKeyOpts returns cache key options for one output format.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:      format,
		InputFormat: o.InputFormat,
		MaxDepth:    o.Depth(),
		Titles:      o.Titles,
		Expand:      o.Expand,
		EmptyBranch: o.EmptyBranch,
		HideSize:    o.HideSize,
		HiddenKeys:  o.HiddenKeys,
		HTML:        o.HTML,
		Indent:      o.Indent,
		MaxPreview:  o.MaxPreview,
		Detailed:    o.Detailed,
	}
}

package view

import (
	"html/template"
	"io"

	"github.com/charmbracelet/log"
)

// Default rendering settings.
const (
	DefaultIndent     = 18
	DefaultMaxPreview = 80
)

// Option configures [Render].
type Option func(*options)

type options struct {
	indent        int
	maxPreview    int
	hideSize      bool
	html          bool
	hiddenKeys    bool
	emptyBranch   bool
	startExpanded bool
	templates     *template.Template
	logger        *log.Logger
}

func defaultOptions() options {
	return options{
		indent:     DefaultIndent,
		maxPreview: DefaultMaxPreview,
		logger:     log.New(io.Discard),
	}
}

// WithIndent sets the left margin per depth level, in pixels.
func WithIndent(px int) Option {
	return func(o *options) {
		if px >= 0 {
			o.indent = px
		}
	}
}

// WithMaxPreview caps the text shown for composite values cut off by the
// depth limit. Zero or less shows the full text.
func WithMaxPreview(runes int) Option {
	return func(o *options) { o.maxPreview = runes }
}

// WithHideSize drops the "[N]"/"{N}" size label from branch lines.
func WithHideSize() Option {
	return func(o *options) { o.hideSize = true }
}

// WithHTML treats keys and string values as markup. The markup is
// sanitized with a user-generated-content policy before it reaches the
// DOM, and strings are shown without quotes.
func WithHTML() Option {
	return func(o *options) { o.html = true }
}

// WithHiddenKeys hides the key of entries named "__HIDDEN__", showing only
// their value.
func WithHiddenKeys() Option {
	return func(o *options) { o.hiddenKeys = true }
}

// WithEmptyAsBranch renders empty objects and arrays as expandable
// branches without children instead of "{}"/"[]" leaves.
func WithEmptyAsBranch() Option {
	return func(o *options) { o.emptyBranch = true }
}

// WithStartExpanded expands the whole tree right after rendering.
func WithStartExpanded() Option {
	return func(o *options) { o.startExpanded = true }
}

// WithTemplates replaces the line templates. The set must define
// "branch" and "leaf"; see [DefaultTemplates] for the data they receive.
func WithTemplates(t *template.Template) Option {
	return func(o *options) { o.templates = t }
}

// WithLogger sets the logger for debug output.
func WithLogger(l *log.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/jsonview/pkg/httputil"
	"github.com/matzehuels/jsonview/pkg/pipeline"
)

// extensions maps output formats to file extensions.
var extensions = map[string]string{
	pipeline.FormatHTML: ".html",
	pipeline.FormatText: ".txt",
	pipeline.FormatDOT:  ".dot",
	pipeline.FormatSVG:  ".svg",
}

// renderFlags holds the command-line flags for the render command. Flags
// left unset keep the values from the config file.
type renderFlags struct {
	formats     string
	output      string
	inputFormat string
	maxDepth    int
	indent      int
	maxPreview  int
	expand      bool
	emptyBranch bool
	hideSize    bool
	titles      bool
	hiddenKeys  bool
	html        bool
	detailed    bool
	noCache     bool
	refresh     bool
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var f renderFlags

	cmd := &cobra.Command{
		Use:   "render <file|url|->",
		Short: "Render a document as a collapsible tree",
		Long: `Render a JSON, YAML or TOML document as a collapsible tree.

The input format follows the file extension unless --input-format is given;
"-" reads JSON from stdin and an http(s) URL is fetched, with the
response cached for an hour. With a single format and no --output the result is
written to stdout. With several formats each one is written next to the
output base path (or the input file) with its own extension.

Formats:
  html  the tree container with one line per node, ready for a stylesheet
  text  an indented outline of the visible lines
  dot   a Graphviz digraph of the tree
  svg   the DOT graph laid out by Graphviz

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.renderOptions(cmd, &f)
			if err != nil {
				return err
			}
			return c.runRender(cmd.Context(), cmd, args[0], opts, &f)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&f.formats, "format", "f", "", "output format(s): html (default), text, dot, svg (comma-separated)")
	flags.StringVarP(&f.output, "output", "o", "", "output file (single format) or base path (multiple)")
	flags.StringVar(&f.inputFormat, "input-format", "", "input format: json, yaml, toml (default: from extension)")
	flags.IntVar(&f.maxDepth, "max-depth", 0, "deepest level with its own line, -1 for no limit (default 3)")
	flags.IntVar(&f.indent, "indent", 0, "left margin per level in pixels (default 18)")
	flags.IntVar(&f.maxPreview, "max-preview", 0, "maximum length of previews of cut-off values (default 80)")
	flags.BoolVar(&f.expand, "expand", false, "render with every node expanded")
	flags.BoolVar(&f.emptyBranch, "empty-branch", false, "render empty objects and arrays as branches")
	flags.BoolVar(&f.hideSize, "hide-size", false, "hide the size of objects and arrays")
	flags.BoolVar(&f.titles, "titles", false, "label objects by their __TITLE__ field")
	flags.BoolVar(&f.hiddenKeys, "hidden-keys", false, "hide the key of __HIDDEN__ entries")
	flags.BoolVar(&f.html, "html", false, "treat keys and strings as sanitized HTML")
	flags.BoolVar(&f.detailed, "detailed", false, "show type and depth in dot and svg output")
	flags.BoolVar(&f.noCache, "no-cache", false, "disable caching")
	flags.BoolVar(&f.refresh, "refresh", false, "ignore cached results")

	return cmd
}

// renderOptions merges the flags over the configured defaults.
func (c *CLI) renderOptions(cmd *cobra.Command, f *renderFlags) (pipeline.Options, error) {
	opts := c.pipelineOptions()
	opts.Formats = parseFormats(f.formats)
	if err := pipeline.ValidateFormats(opts.Formats); err != nil {
		return opts, err
	}
	opts.InputFormat = f.inputFormat

	changed := cmd.Flags().Changed
	if changed("max-depth") {
		opts.MaxDepth = pipeline.DepthLimit(f.maxDepth)
	}
	if changed("indent") {
		opts.Indent = f.indent
	}
	if changed("max-preview") {
		opts.MaxPreview = f.maxPreview
	}
	opts.Expand = opts.Expand || f.expand
	opts.EmptyBranch = opts.EmptyBranch || f.emptyBranch
	opts.HideSize = opts.HideSize || f.hideSize
	opts.Titles = opts.Titles || f.titles
	opts.HiddenKeys = opts.HiddenKeys || f.hiddenKeys
	opts.HTML = opts.HTML || f.html
	opts.Detailed = f.detailed
	opts.Refresh = f.refresh
	opts.Logger = c.Logger
	return opts, nil
}

// fetchTTL is how long fetched remote documents stay cached.
const fetchTTL = time.Hour

// readInput reads the named file, stdin for "-", or an http(s) URL. It
// returns the data and the name used to detect the input format. Remote
// documents share the runner's cache.
func (c *CLI) readInput(ctx context.Context, cmd *cobra.Command, name string, runner *pipeline.Runner, refresh bool) ([]byte, string, error) {
	switch {
	case name == "-":
		data, err := io.ReadAll(cmd.InOrStdin())
		return data, name, err
	case httputil.IsURL(name):
		f := httputil.NewFetcher(httputil.WithCache(runner.Cache, runner.Keyer, fetchTTL))
		data, err := f.Fetch(ctx, name, refresh)
		return data, httputil.Filename(name), err
	}
	data, err := os.ReadFile(name)
	return data, name, err
}

func (c *CLI) runRender(ctx context.Context, cmd *cobra.Command, input string, opts pipeline.Options, f *renderFlags) error {
	runner, err := c.newRunner(ctx, f.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	data, filename, err := c.readInput(ctx, cmd, input, runner, f.refresh)
	if err != nil {
		return fmt.Errorf("read %s: %w", input, err)
	}
	opts.Input = data
	opts.Filename = filename

	prog := newProgress(loggerFromContext(ctx))
	spin := newSpinner(ctx, cmd.ErrOrStderr(), "Rendering "+input)
	spin.Start()
	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spin.StopWithError(fmt.Sprintf("Failed to render %s", input))
		return err
	}
	spin.Stop()
	prog.done(fmt.Sprintf("Rendered %s", input))

	out := cmd.OutOrStdout()
	if len(opts.Formats) == 1 && f.output == "" {
		_, err := out.Write(result.Artifacts[opts.Formats[0]])
		return err
	}

	paths := outputPaths(opts.Formats, f.output, opts.Filename)
	for _, format := range opts.Formats {
		if err := os.WriteFile(paths[format], result.Artifacts[format], 0644); err != nil {
			return fmt.Errorf("write %s: %w", paths[format], err)
		}
	}

	printSuccess(out, "Rendered %s", input)
	printStats(out, result.Stats.NodeCount, result.CacheInfo.RenderHit)
	for _, format := range opts.Formats {
		printFile(out, paths[format])
	}
	return nil
}

// outputPaths returns the file each format is written to. A single format
// goes to output as given; several formats share a base path derived from
// output or, failing that, the input name.
func outputPaths(formats []string, output, input string) map[string]string {
	paths := make(map[string]string, len(formats))
	if len(formats) == 1 && output != "" {
		paths[formats[0]] = output
		return paths
	}
	base := basePath(output, input)
	for _, format := range formats {
		paths[format] = base + extensions[format]
	}
	return paths
}

// basePath strips a known output extension from output, or the extension
// from input when output is empty. Stdin input uses "jsonview".
func basePath(output, input string) string {
	if output == "" {
		if input == "-" {
			return "jsonview"
		}
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	for _, known := range extensions {
		if ext == known {
			return strings.TrimSuffix(output, ext)
		}
	}
	return output
}

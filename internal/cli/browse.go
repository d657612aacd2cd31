package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/jsonview/pkg/dom/htmldom"
	"github.com/matzehuels/jsonview/pkg/pipeline"
	"github.com/matzehuels/jsonview/pkg/tree"
	"github.com/matzehuels/jsonview/pkg/view"
)

// browseCommand creates the interactive browse command.
func (c *CLI) browseCommand() *cobra.Command {
	var f renderFlags

	cmd := &cobra.Command{
		Use:   "browse <file|url|->",
		Short: "Explore a document as a collapsible tree in the terminal",
		Long: `Explore a JSON, YAML or TOML document as a collapsible tree.

Keys:
  ↑/↓ k/j      move
  enter/space  open or close the selected node
  e/c          expand or collapse the selected subtree
  E/C          expand or collapse everything
  q            quit`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.renderOptions(cmd, &f)
			if err != nil {
				return err
			}
			return c.runBrowse(cmd.Context(), cmd, args[0], opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&f.inputFormat, "input-format", "", "input format: json, yaml, toml (default: from extension)")
	flags.IntVar(&f.maxDepth, "max-depth", 0, "deepest level with its own line, -1 for no limit (default 3)")
	flags.BoolVar(&f.expand, "expand", false, "start with every node expanded")
	flags.BoolVar(&f.emptyBranch, "empty-branch", false, "show empty objects and arrays as branches")
	flags.BoolVar(&f.hideSize, "hide-size", false, "hide the size of objects and arrays")
	flags.BoolVar(&f.titles, "titles", false, "label objects by their __TITLE__ field")
	flags.BoolVar(&f.hiddenKeys, "hidden-keys", false, "hide the key of __HIDDEN__ entries")

	return cmd
}

func (c *CLI) runBrowse(ctx context.Context, cmd *cobra.Command, input string, opts pipeline.Options) error {
	runner, err := c.newRunner(ctx, false)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	data, filename, err := c.readInput(ctx, cmd, input, runner, opts.Refresh)
	if err != nil {
		return fmt.Errorf("read %s: %w", input, err)
	}
	opts.Input = data
	opts.Filename = filename
	opts.Formats = nil
	// The terminal belongs to the program while it runs.
	opts.Logger = nil

	v, err := pipeline.Decode(ctx, opts)
	if err != nil {
		return err
	}
	doc := htmldom.New()
	tv, err := pipeline.RenderView(ctx, doc, v, opts)
	if err != nil {
		return err
	}
	defer tv.Destroy()

	c.Logger.Debug("browsing", "input", input, "nodes", tv.Root().Count())

	progOpts := []tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithContext(ctx),
		tea.WithOutput(cmd.OutOrStdout()),
	}
	if input == "-" {
		// stdin held the document; read keys from the terminal instead.
		progOpts = append(progOpts, tea.WithInputTTY())
	}
	p := tea.NewProgram(newBrowseModel(input, doc, tv), progOpts...)
	final, err := p.Run()
	if err != nil {
		return err
	}
	if m, ok := final.(browseModel); ok && m.err != nil {
		return m.err
	}
	return nil
}

// =============================================================================
// browseModel - Interactive tree view
// =============================================================================

// browseModel is the bubbletea model for the tree browser. It drives the
// rendered view through its public controller and caret clicks, and reads
// what to draw back from the DOM.
type browseModel struct {
	title  string
	doc    *htmldom.Document
	view   *view.View
	lines  []view.Line
	cursor int
	offset int
	height int
	err    error
}

func newBrowseModel(title string, doc *htmldom.Document, tv *view.View) browseModel {
	return browseModel{
		title:  title,
		doc:    doc,
		view:   tv,
		lines:  tv.VisibleLines(),
		height: 20,
	}
}

func (m browseModel) Init() tea.Cmd {
	return nil
}

func (m browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			m.move(-1)
		case "down", "j":
			m.move(1)
		case "enter", " ":
			m.click()
		case "e":
			m.apply(m.view.Expand)
		case "c":
			m.apply(m.view.Collapse)
		case "E":
			m.err = m.view.ExpandAll()
			m.refresh()
		case "C":
			m.err = m.view.CollapseAll()
			m.refresh()
		}
	case tea.WindowSizeMsg:
		m.height = msg.Height - 4
		if m.height < 5 {
			m.height = 5
		}
		m.scroll()
	}
	return m, nil
}

func (m *browseModel) move(delta int) {
	next := m.cursor + delta
	if next < 0 || next >= len(m.lines) {
		return
	}
	m.cursor = next
	m.scroll()
}

func (m *browseModel) scroll() {
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+m.height {
		m.offset = m.cursor - m.height + 1
	}
}

// click delivers a click to the caret of the selected line, the same event
// a browser would send.
func (m *browseModel) click() {
	if len(m.lines) == 0 {
		return
	}
	caret, err := m.lines[m.cursor].Element.QuerySelector("." + view.ClassCaret)
	if err != nil || caret == nil {
		return
	}
	m.doc.Click(caret)
	m.refresh()
}

func (m *browseModel) apply(op func(*tree.Node) error) {
	if len(m.lines) == 0 {
		return
	}
	m.err = op(m.lines[m.cursor].Node)
	m.refresh()
}

// refresh re-reads the visible lines and keeps the cursor on the same node.
func (m *browseModel) refresh() {
	var selected *tree.Node
	if m.cursor < len(m.lines) {
		selected = m.lines[m.cursor].Node
	}
	m.lines = m.view.VisibleLines()
	m.cursor = 0
	for i, l := range m.lines {
		if l.Node == selected {
			m.cursor = i
			break
		}
	}
	m.scroll()
}

func (m browseModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.title))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("↑/↓ move  ⏎ toggle  e/c subtree  E/C all  q quit"))
	b.WriteString("\n\n")

	end := m.offset + m.height
	if end > len(m.lines) {
		end = len(m.lines)
	}
	for i := m.offset; i < end; i++ {
		b.WriteString(m.renderLine(i))
		b.WriteString("\n")
	}

	if m.err != nil {
		b.WriteString(StyleWarning.Render(m.err.Error()))
		b.WriteString("\n")
	}
	return b.String()
}

func (m browseModel) renderLine(i int) string {
	l := m.lines[i]
	text := l.Text()

	cursor := "  "
	if i == m.cursor {
		cursor = styleCursor.Render("> ")
	}

	marker := "  "
	switch {
	case l.Open:
		marker = view.MarkerOpen + " "
	case l.Branch:
		marker = view.MarkerClosed + " "
	}

	var parts []string
	if text.Key != "" {
		key := styleKey
		if l.Node.InArray() {
			key = styleIndex
		}
		if i == m.cursor {
			key = key.Bold(true)
		}
		parts = append(parts, key.Render(text.Key))
	}
	if text.Value != "" {
		if len(parts) > 0 {
			parts[0] += StyleDim.Render(":")
		}
		parts = append(parts, valueStyle(l.Node.Type).Render(text.Value))
	}
	if text.Size != "" {
		parts = append(parts, styleSize.Render(text.Size))
	}

	return cursor + strings.Repeat("  ", l.Node.Depth) + marker + strings.Join(parts, " ")
}

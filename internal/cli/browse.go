package cli

import (
	"cmp"
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	pkgerrors "github.com/matzehuels/deprank/pkg/errors"
	"github.com/matzehuels/deprank/pkg/graph"
	"github.com/matzehuels/deprank/pkg/io"
	"github.com/matzehuels/deprank/pkg/pipeline"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// browseCommand creates the browse command.
func (c *CLI) browseCommand() *cobra.Command {
	var exclude []string

	cmd := &cobra.Command{
		Use:   "browse [path]",
		Short: "Browse ranked projects interactively",
		Long: `Open an interactive view of the ranked projects.

The argument is either a directory, which is analyzed with default settings,
or a JSON graph written by analyze --json.`,
		Example: `  deprank browse src -x tests
  deprank browse graph.json`,
		Args: exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := c.loadRegistry(cmd.Context(), args[0], exclude)
			if err != nil {
				return err
			}
			if reg.Len() == 0 {
				printWarning(c.Out, "no projects to browse")
				return nil
			}
			_, err = tea.NewProgram(NewBrowseModel(reg), tea.WithContext(cmd.Context())).Run()
			return err
		},
	}

	cmd.Flags().StringArrayVarP(&exclude, "exclude", "x", nil, "exclude projects whose name contains this text (repeatable)")
	return cmd
}

// loadRegistry imports a JSON graph or analyzes a directory.
func (c *CLI) loadRegistry(ctx context.Context, path string, exclude []string) (*graph.Registry, error) {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		reg, err := io.ImportJSON(path)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.ErrCodeInvalidInput, err, "cannot import graph")
		}
		return reg, nil
	}
	if _, err := os.Stat(path); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.ErrCodeInvalidPath, err, "cannot read input")
	}

	logger := loggerFromContext(ctx)
	res, err := pipeline.NewRunner(logger).Analyze(ctx, pipeline.Options{
		Root:    path,
		Exclude: exclude,
		Logger:  logger,
	})
	if err != nil {
		return nil, err
	}
	return res.Registry, nil
}

// =============================================================================
// BrowseModel - Interactive rank browser
// =============================================================================

// BrowseModel is the bubbletea model for browsing ranked projects. Rows are
// ordered by ascending rank, then name; unranked projects come last.
type BrowseModel struct {
	Projects   []*graph.Project
	Dependents map[string][]string // Projects referencing each project, sorted
	Cursor     int
	Height     int
	Offset     int
}

// NewBrowseModel creates a browse model over every project in r.
func NewBrowseModel(r *graph.Registry) BrowseModel {
	projects := r.Sorted()
	slices.SortStableFunc(projects, func(a, b *graph.Project) int {
		return cmp.Compare(sortRank(a), sortRank(b))
	})

	dependents := make(map[string][]string)
	for _, ref := range r.References() {
		if !slices.Contains(dependents[ref.To], ref.From) {
			dependents[ref.To] = append(dependents[ref.To], ref.From)
		}
	}
	for _, names := range dependents {
		slices.Sort(names)
	}

	return BrowseModel{
		Projects:   projects,
		Dependents: dependents,
		Height:     15,
	}
}

// sortRank orders unranked projects after every ranked one.
func sortRank(p *graph.Project) int {
	if r, ok := p.Rank(); ok {
		return r
	}
	return math.MaxInt
}

// Selected returns the project under the cursor.
func (m BrowseModel) Selected() *graph.Project {
	return m.Projects[m.Cursor]
}

func (m BrowseModel) Init() tea.Cmd {
	return nil
}

func (m BrowseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			m.moveTo(m.Cursor - 1)
		case "down", "j":
			m.moveTo(m.Cursor + 1)
		case "home", "g":
			m.moveTo(0)
		case "end", "G":
			m.moveTo(len(m.Projects) - 1)
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 12
		if m.Height < 5 {
			m.Height = 5
		}
		m.moveTo(m.Cursor)
	}
	return m, nil
}

// moveTo places the cursor at i, clamped, and scrolls it into view.
func (m *BrowseModel) moveTo(i int) {
	m.Cursor = max(0, min(i, len(m.Projects)-1))
	if m.Cursor < m.Offset {
		m.Offset = m.Cursor
	}
	if m.Cursor >= m.Offset+m.Height {
		m.Offset = m.Cursor - m.Height + 1
	}
}

func (m BrowseModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Projects by rank"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  g/G first/last  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Projects))

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		p := m.Projects[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		rank := "—"
		if r, ok := p.Rank(); ok {
			rank = strconv.Itoa(r)
		}
		rows = append(rows, []string{
			cursor, rank, p.Name,
			strconv.Itoa(len(p.ProjectRefs)),
			strconv.Itoa(len(p.PackageRefs)),
			strconv.Itoa(len(m.Dependents[p.Name])),
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Rank", "Project", "Refs", "Packages", "Used by").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if m.Offset+row == m.Cursor {
				return listSelectedStyle
			}
			return lipgloss.NewStyle()
		})

	b.WriteString(t.Render())
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Projects))))
	b.WriteString("\n\n")

	p := m.Selected()
	b.WriteString(detailLine("References", p.ProjectRefs))
	b.WriteString(detailLine("Used by", m.Dependents[p.Name]))
	pkgs := make([]string, len(p.PackageRefs))
	for i, ref := range p.PackageRefs {
		pkgs[i] = ref.String()
	}
	b.WriteString(detailLine("Packages", pkgs))

	return b.String()
}

func detailLine(label string, items []string) string {
	value := listDimStyle.Render("none")
	if len(items) > 0 {
		value = StyleValue.Render(strings.Join(items, ", "))
	}
	return styleKey.Render(label) + " " + value + "\n"
}

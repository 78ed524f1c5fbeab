package cli

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/bracketmaker/pkg/bracket"
)

var (
	listDimStyle     = lipgloss.NewStyle().Foreground(colorDim)
	tableHeaderStyle = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	winnersStyle     = lipgloss.NewStyle().Foreground(colorGreen)
	losersStyle      = lipgloss.NewStyle().Foreground(colorRed)
)

// =============================================================================
// PreviewModel - Stage-by-stage bracket browser
// =============================================================================

// PreviewModel is the bubbletea model of the preview command. It shows one
// stage at a time as a table of matches and where their winners and losers go.
type PreviewModel struct {
	Bracket *bracket.Bracket
	Stage   int

	winnerTo map[int]int
	loserTo  map[int]int
}

// NewPreviewModel creates a model positioned at the first stage.
func NewPreviewModel(b *bracket.Bracket) PreviewModel {
	m := PreviewModel{
		Bracket:  b,
		winnerTo: make(map[int]int),
		loserTo:  make(map[int]int),
	}
	for _, p := range b.Progressions {
		if p.Losers {
			m.loserTo[p.SourceID] = p.TargetID
		} else {
			m.winnerTo[p.SourceID] = p.TargetID
		}
	}
	return m
}

func (m PreviewModel) Init() tea.Cmd {
	return nil
}

func (m PreviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "left", "h":
			if m.Stage > 0 {
				m.Stage--
			}
		case "right", "l":
			if m.Stage < m.Bracket.Stages()-1 {
				m.Stage++
			}
		case "home", "g":
			m.Stage = 0
		case "end", "G":
			m.Stage = max(m.Bracket.Stages()-1, 0)
		}
	}
	return m, nil
}

func (m PreviewModel) View() string {
	var b strings.Builder

	title := fmt.Sprintf("Stage %d of %d", m.Stage+1, m.Bracket.Stages())
	if m.Bracket.Stages() == 0 {
		title = "No matches"
	}
	b.WriteString(StyleTitle.Render(title))
	b.WriteString("  ")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("%d teams · %d matches · %d progressions",
		m.Bracket.Capacity, len(m.Bracket.Matches), len(m.Bracket.Progressions))))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("←/→ stage  q quit"))
	b.WriteString("\n\n")
	b.WriteString(m.stageTable(m.Stage))
	b.WriteString("\n")

	return b.String()
}

// stageTable renders the matches of one stage.
func (m PreviewModel) stageTable(stage int) string {
	var rows [][]string
	var groups []bracket.Group
	for _, match := range m.Bracket.Matches {
		if match.Slot.Stage != stage {
			continue
		}
		rows = append(rows, []string{
			match.Slot.Group.String(),
			"#" + strconv.Itoa(match.ID),
			fmt.Sprintf("%d,%d", match.Position.X, match.Position.Y),
			target(m.winnerTo, match.ID),
			target(m.loserTo, match.ID),
		})
		groups = append(groups, match.Slot.Group)
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Group", "Match", "Position", "Winner to", "Loser to").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return tableHeaderStyle
			}
			if col != 0 || row < 0 || row >= len(groups) {
				return lipgloss.NewStyle()
			}
			if groups[row].IsLosers() {
				return losersStyle
			}
			return winnersStyle
		})
	return t.Render()
}

func target(edges map[int]int, id int) string {
	if to, ok := edges[id]; ok {
		return "#" + strconv.Itoa(to)
	}
	return "—"
}

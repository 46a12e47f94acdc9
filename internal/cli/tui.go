package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/laserfinity/laserfinity/pkg/baseplate"
	"github.com/laserfinity/laserfinity/pkg/config"
)

var listDimStyle = lipgloss.NewStyle().Foreground(colorDim)

// ProfileEntry is one row in the profile picker.
type ProfileEntry struct {
	Name      string
	Default   bool
	Constants baseplate.Constants
	Err       error // set when the profile fails validation
}

// ProfileListModel is the bubbletea model for interactive profile selection.
type ProfileListModel struct {
	Profiles []ProfileEntry
	Cursor   int
	Selected *ProfileEntry
	Height   int
	Offset   int
}

// NewProfileListModel creates a picker with the cursor on the profile named
// current, or on the first entry.
func NewProfileListModel(profiles []ProfileEntry, current string) ProfileListModel {
	m := ProfileListModel{Profiles: profiles, Height: 10}
	for i, p := range profiles {
		if p.Name == current || (current == "" && p.Default) {
			m.Cursor = i
			break
		}
	}
	if m.Cursor >= m.Height {
		m.Offset = m.Cursor - m.Height + 1
	}
	return m
}

// profileEntries resolves every profile in cfg for display.
func profileEntries(cfg *config.Config) []ProfileEntry {
	def := cfg.DefaultProfile()
	var out []ProfileEntry
	for _, name := range cfg.Names() {
		c, err := cfg.Profile(name)
		out = append(out, ProfileEntry{Name: name, Default: name == def, Constants: c, Err: err})
	}
	return out
}

func (m ProfileListModel) Init() tea.Cmd {
	return nil
}

func (m ProfileListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Profiles)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			if len(m.Profiles) == 0 {
				return m, tea.Quit
			}
			p := m.Profiles[m.Cursor]
			if p.Err != nil {
				return m, nil
			}
			m.Selected = &p
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-8, 3)
	}
	return m, nil
}

func (m ProfileListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Profile"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Profiles))
	var rows [][]string
	for i := m.Offset; i < end; i++ {
		p := m.Profiles[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		name := p.Name
		if p.Default {
			name += " *"
		}
		if p.Err != nil {
			rows = append(rows, []string{cursor, name, "invalid", "", "", ""})
			continue
		}
		c := p.Constants
		rows = append(rows, []string{
			cursor, name,
			mm(c.Pitch), mm(c.CellSize), mm(c.CornerRadius),
			fmt.Sprintf("%g", c.Resolution),
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Profile", "Pitch", "Cell", "Radius", "DPI").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			idx := m.Offset + row
			if idx >= len(m.Profiles) {
				return lipgloss.NewStyle()
			}
			switch {
			case m.Profiles[idx].Err != nil:
				return lipgloss.NewStyle().Foreground(colorDim)
			case idx == m.Cursor:
				return lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]  * default", m.Cursor+1, len(m.Profiles))))

	return b.String()
}

func mm(v float64) string {
	return fmt.Sprintf("%g mm", v)
}

// pickProfile runs the picker. ok is false when the user quit without
// choosing.
func pickProfile(cfg *config.Config, current string) (name string, ok bool, err error) {
	p := tea.NewProgram(NewProfileListModel(profileEntries(cfg), current))
	final, err := p.Run()
	if err != nil {
		return "", false, err
	}
	fm, isModel := final.(ProfileListModel)
	if !isModel || fm.Selected == nil {
		return "", false, nil
	}
	return fm.Selected.Name, true, nil
}

package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
)

// profilesCommand lists the available constants profiles.
func (c *CLI) profilesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "profiles",
		Short: "List the available constants profiles",
		Long: `List every profile that --profile accepts, with the physical constants it
resolves to. The built-in "gridfinity" profile is always present; others come
from the profile file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}

			entries := profileEntries(cfg)
			fmt.Fprintln(cmd.OutOrStdout(), renderProfileTable(entries))
			if cfg.Path != "" {
				c.ui().detail("Loaded from %s", cfg.Path)
			}
			for _, e := range entries {
				if e.Err != nil {
					c.ui().warning("%s: %v", e.Name, e.Err)
				}
			}
			return nil
		},
	}
}

func renderProfileTable(entries []ProfileEntry) string {
	var rows [][]string
	for _, e := range entries {
		name := e.Name
		if e.Default {
			name += " (default)"
		}
		if e.Err != nil {
			rows = append(rows, []string{name, "invalid", "", "", "", "", ""})
			continue
		}
		k := e.Constants
		rows = append(rows, []string{
			name, mm(k.Pitch), mm(k.CellSize), mm(k.CornerRadius), mm(k.StrokeWidth),
			fmt.Sprintf("%g", k.Resolution), k.StrokeColor,
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Profile", "Pitch", "Cell", "Radius", "Stroke", "DPI", "Color").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if col == 0 {
				return lipgloss.NewStyle().Foreground(colorCyan).Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		}).
		Render()
}

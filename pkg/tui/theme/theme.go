package theme

import "github.com/charmbracelet/lipgloss"

// Theme centralizes Lip Gloss styles for the picker.
type Theme struct {
	Search  SearchTheme
	Grid    GridTheme
	Bar     BarTheme
	Footer  FooterTheme
	Overlay OverlayTheme
}

// SearchTheme styles the query line and the list tip under it.
type SearchTheme struct {
	Prompt  lipgloss.Style
	Focused lipgloss.Style
	Blurred lipgloss.Style
	Tip     lipgloss.Style
}

// GridTheme styles emoji cells.
type GridTheme struct {
	Cell     lipgloss.Style
	Cursor   lipgloss.Style
	Selected lipgloss.Style
	Empty    lipgloss.Style
}

// BarTheme styles the category bar.
type BarTheme struct {
	Item   lipgloss.Style
	Active lipgloss.Style
}

// FooterTheme groups styles used by the buffer, status and help lines.
type FooterTheme struct {
	Buffer lipgloss.Style
	Status lipgloss.Style
	Help   lipgloss.Style
}

// OverlayTheme styles the skintone chooser and the tag editor.
type OverlayTheme struct {
	Frame  lipgloss.Style
	Title  lipgloss.Style
	Option lipgloss.Style
	Active lipgloss.Style
}

// Default returns the built-in theme.
func Default() Theme {
	cell := lipgloss.NewStyle().Padding(0, 1)
	barItem := lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("244"))

	return Theme{
		Search: SearchTheme{
			Prompt:  lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true),
			Focused: lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("212")),
			Blurred: lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")),
			Tip:     lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Italic(true),
		},
		Grid: GridTheme{
			Cell:     cell,
			Cursor:   cell.Reverse(true),
			Selected: cell.Background(lipgloss.Color("236")).Underline(true),
			Empty:    lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		},
		Bar: BarTheme{
			Item:   barItem,
			Active: barItem.Foreground(lipgloss.Color("212")).Underline(true),
		},
		Footer: FooterTheme{
			Buffer: lipgloss.NewStyle().Foreground(lipgloss.Color("229")),
			Status: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
			Help:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		},
		Overlay: OverlayTheme{
			Frame: lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				Padding(0, 1),
			Title:  lipgloss.NewStyle().Bold(true),
			Option: cell,
			Active: cell.Reverse(true),
		},
	}
}

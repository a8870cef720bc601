// Package view renders recipe results and details as terminal text.
package view

import "github.com/charmbracelet/lipgloss"

// Theme defines the colour palette.
type Theme struct {
	Primary    lipgloss.Color
	Success    lipgloss.Color
	Foreground lipgloss.Color
	Muted      lipgloss.Color
	Error      lipgloss.Color
	Border     lipgloss.Color
}

// DefaultTheme returns the default colour theme.
func DefaultTheme() *Theme {
	return &Theme{
		Primary:    lipgloss.Color("#F97316"), // Orange
		Success:    lipgloss.Color("#A6E3A1"), // Green
		Foreground: lipgloss.Color("#CDD6F4"), // Light gray
		Muted:      lipgloss.Color("#6C7086"), // Medium gray
		Error:      lipgloss.Color("#F38BA8"), // Red
		Border:     lipgloss.Color("#45475A"), // Border gray
	}
}

// Styles contains pre-configured lipgloss styles.
type Styles struct {
	Title     lipgloss.Style
	Heading   lipgloss.Style
	Normal    lipgloss.Style
	Muted     lipgloss.Style
	Selected  lipgloss.Style
	Success   lipgloss.Style
	Error     lipgloss.Style
	BadgeHigh lipgloss.Style
	BadgeLow  lipgloss.Style
	Chip      lipgloss.Style
	BarFilled lipgloss.Style
	BarEmpty  lipgloss.Style
	CardBox   lipgloss.Style
	FocusBox  lipgloss.Style
	Toast     lipgloss.Style
	ToastErr  lipgloss.Style
	Help      lipgloss.Style
}

// NewStyles creates styles from a theme.
func NewStyles(theme *Theme) *Styles {
	if theme == nil {
		theme = DefaultTheme()
	}

	return &Styles{
		Title:   lipgloss.NewStyle().Bold(true).Foreground(theme.Primary),
		Heading: lipgloss.NewStyle().Bold(true).Foreground(theme.Foreground),
		Normal:  lipgloss.NewStyle().Foreground(theme.Foreground),
		Muted:   lipgloss.NewStyle().Foreground(theme.Muted),
		Selected: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Foreground).
			Background(theme.Primary),
		Success:   lipgloss.NewStyle().Foreground(theme.Success),
		Error:     lipgloss.NewStyle().Foreground(theme.Error),
		BadgeHigh: lipgloss.NewStyle().Bold(true).Foreground(theme.Success),
		BadgeLow:  lipgloss.NewStyle().Bold(true).Foreground(theme.Primary),
		Chip: lipgloss.NewStyle().
			Foreground(theme.Foreground).
			Padding(0, 1),
		BarFilled: lipgloss.NewStyle().Foreground(theme.Primary),
		BarEmpty:  lipgloss.NewStyle().Foreground(theme.Border),
		CardBox: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(0, 1),
		FocusBox: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Primary).
			Padding(0, 1),
		Toast: lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(theme.Success).
			Padding(0, 1),
		ToastErr: lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(theme.Error).
			Padding(0, 1),
		Help: lipgloss.NewStyle().Foreground(theme.Muted),
	}
}

// DefaultStyles returns styles with the default theme.
func DefaultStyles() *Styles {
	return NewStyles(DefaultTheme())
}

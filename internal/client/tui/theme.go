package tui

import "github.com/charmbracelet/lipgloss"

// Theme defines the color palette for the UI.
type Theme struct {
	Name string

	Text      string
	Muted     string
	Accent    string
	Border    string
	Selection string
	Success   string
	Warning   string
	Danger    string
	Info      string
}

func DarkTheme() Theme {
	return Theme{
		Name:      "dark",
		Text:      "#f8f8f2",
		Muted:     "#6272a4",
		Accent:    "#bd93f9",
		Border:    "#44475a",
		Selection: "#44475a",
		Success:   "#50fa7b",
		Warning:   "#f1fa8c",
		Danger:    "#ff5555",
		Info:      "#8be9fd",
	}
}

func LightTheme() Theme {
	return Theme{
		Name:      "light",
		Text:      "#282a36",
		Muted:     "#999999",
		Accent:    "#7c3aed",
		Border:    "#cccccc",
		Selection: "#e8e8e8",
		Success:   "#1a7f37",
		Warning:   "#9a6700",
		Danger:    "#cf222e",
		Info:      "#0969da",
	}
}

// ThemeForMode picks the palette for the dark-mode flag.
func ThemeForMode(dark bool) Theme {
	if dark {
		return DarkTheme()
	}
	return LightTheme()
}

// DetectDark falls back to the terminal background when no preference is
// stored.
func DetectDark() bool {
	return lipgloss.HasDarkBackground()
}

// Styles are the lipgloss styles derived from a theme.
type Styles struct {
	Text      lipgloss.Style
	Muted     lipgloss.Style
	Accent    lipgloss.Style
	Title     lipgloss.Style
	Selected  lipgloss.Style
	Box       lipgloss.Style
	Success   lipgloss.Style
	Warning   lipgloss.Style
	Danger    lipgloss.Style
	Info      lipgloss.Style
	ToastBox  lipgloss.Style
	DialogBox lipgloss.Style
}

func (t Theme) Styles() Styles {
	return Styles{
		Text:  lipgloss.NewStyle().Foreground(lipgloss.Color(t.Text)),
		Muted: lipgloss.NewStyle().Foreground(lipgloss.Color(t.Muted)),
		Accent: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Accent)),
		Title: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Accent)).
			Bold(true),
		Selected: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Selection)).
			Foreground(lipgloss.Color(t.Text)),
		Box: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(t.Border)).
			Padding(0, 1),
		Success: lipgloss.NewStyle().Foreground(lipgloss.Color(t.Success)).Bold(true),
		Warning: lipgloss.NewStyle().Foreground(lipgloss.Color(t.Warning)),
		Danger:  lipgloss.NewStyle().Foreground(lipgloss.Color(t.Danger)).Bold(true),
		Info:    lipgloss.NewStyle().Foreground(lipgloss.Color(t.Info)),
		ToastBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(t.Accent)).
			Padding(0, 1),
		DialogBox: lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color(t.Accent)).
			Padding(1, 2),
	}
}

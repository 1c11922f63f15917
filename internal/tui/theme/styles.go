package theme

import "charm.land/lipgloss/v2"

// Styles contains all pre-built lipgloss styles for the TUI.
type Styles struct {
	// Header / navigation
	HeaderTitle   lipgloss.Style
	HeaderTagline lipgloss.Style
	NavLink       lipgloss.Style
	NavLinkActive lipgloss.Style

	// Hints
	HintKey       lipgloss.Style
	HintDesc      lipgloss.Style
	HintSeparator lipgloss.Style

	// Text
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Body     lipgloss.Style
	Muted    lipgloss.Style
	Accent   lipgloss.Style
	Success  lipgloss.Style
	Warning  lipgloss.Style
	Error    lipgloss.Style
	Link     lipgloss.Style

	// Containers
	Card           lipgloss.Style
	CardFocused    lipgloss.Style
	ModalContainer lipgloss.Style
	ModalTitle     lipgloss.Style
	Chip           lipgloss.Style

	// Choices
	Option         lipgloss.Style
	OptionFocused  lipgloss.Style
	OptionSelected lipgloss.Style

	// Buttons
	Button         lipgloss.Style
	ButtonFocused  lipgloss.Style
	ButtonDisabled lipgloss.Style

	// Progress
	ProgressEmpty lipgloss.Style
	ProgressLabel lipgloss.Style

	// Toast
	Toast      lipgloss.Style
	ToastError lipgloss.Style
}

// buildStyles constructs the pre-built styles from theme colors.
func (t *Theme) buildStyles() *Styles {
	c := lipgloss.Color
	button := lipgloss.NewStyle().Padding(0, 2).MarginRight(1)
	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(c(t.BgSurface2)).
		Padding(0, 1)

	return &Styles{
		HeaderTitle: lipgloss.NewStyle().
			Foreground(c(t.Primary)).
			Bold(true),
		HeaderTagline: lipgloss.NewStyle().
			Foreground(c(t.FgSubtle)).
			Italic(true),
		NavLink: lipgloss.NewStyle().
			Foreground(c(t.FgSubtle)).
			Padding(0, 1),
		NavLinkActive: lipgloss.NewStyle().
			Foreground(c(t.BgBase)).
			Background(c(t.Primary)).
			Bold(true).
			Padding(0, 1),

		HintKey: lipgloss.NewStyle().
			Foreground(c(t.FgSubtle)).
			Bold(true),
		HintDesc: lipgloss.NewStyle().
			Foreground(c(t.FgMuted)),
		HintSeparator: lipgloss.NewStyle().
			Foreground(c(t.BgSurface2)),

		Title: lipgloss.NewStyle().
			Foreground(c(t.FgBright)).
			Bold(true),
		Subtitle: lipgloss.NewStyle().
			Foreground(c(t.Tertiary)).
			Bold(true),
		Body:    lipgloss.NewStyle().Foreground(c(t.FgBase)),
		Muted:   lipgloss.NewStyle().Foreground(c(t.FgMuted)),
		Accent:  lipgloss.NewStyle().Foreground(c(t.Secondary)).Bold(true),
		Success: lipgloss.NewStyle().Foreground(c(t.Success)),
		Warning: lipgloss.NewStyle().Foreground(c(t.Warning)),
		Error:   lipgloss.NewStyle().Foreground(c(t.Error)),
		Link: lipgloss.NewStyle().
			Foreground(c(t.Info)).
			Underline(true),

		Card:        card,
		CardFocused: card.BorderForeground(c(t.Primary)),
		ModalContainer: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(c(t.Tertiary)).
			Background(c(t.BgBase)).
			Padding(1, 2),
		ModalTitle: lipgloss.NewStyle().
			Foreground(c(t.Primary)).
			Bold(true).
			Align(lipgloss.Center),
		Chip: lipgloss.NewStyle().
			Foreground(c(t.FgBase)).
			Background(c(t.BgSurface0)).
			Padding(0, 1).
			MarginRight(1),

		Option: lipgloss.NewStyle().
			Foreground(c(t.FgBase)).
			Padding(0, 1),
		OptionFocused: lipgloss.NewStyle().
			Foreground(c(t.Primary)).
			Background(c(t.BgSurface0)).
			Bold(true).
			Padding(0, 1),
		OptionSelected: lipgloss.NewStyle().
			Foreground(c(t.BgBase)).
			Background(c(t.Secondary)).
			Bold(true).
			Padding(0, 1),

		Button: button.
			Foreground(c(t.FgBase)).
			Background(c(t.BgSurface0)),
		ButtonFocused: button.
			Foreground(c(t.BgBase)).
			Background(c(t.Tertiary)).
			Bold(true),
		ButtonDisabled: button.
			Foreground(c(t.FgMuted)).
			Background(c(t.BgMantle)),

		ProgressEmpty: lipgloss.NewStyle().Foreground(c(t.BgSurface1)),
		ProgressLabel: lipgloss.NewStyle().Foreground(c(t.FgBright)).Bold(true),

		Toast: lipgloss.NewStyle().
			Foreground(c(t.BgBase)).
			Background(c(t.Success)).
			Bold(true).
			Padding(0, 1),
		ToastError: lipgloss.NewStyle().
			Foreground(c(t.BgBase)).
			Background(c(t.Warning)).
			Bold(true).
			Padding(0, 1),
	}
}

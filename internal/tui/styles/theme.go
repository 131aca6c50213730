package styles

import (
	"github.com/allbin/boardfinder"
	"github.com/allbin/boardfinder/internal/tui/colors"
	"github.com/charmbracelet/lipgloss"
)

var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colors.Mauve).
			Background(colors.Surface0).
			Padding(0, 1)

	PathStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colors.Text)

	MutedStyle = lipgloss.NewStyle().
			Foreground(colors.Overlay0)

	// Table styles
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colors.Mauve)

	BorderStyle = lipgloss.NewStyle().
			Foreground(colors.Surface2)

	// Input styles
	InputStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colors.Surface2).
			Padding(0, 1)

	PromptStyle = lipgloss.NewStyle().
			Foreground(colors.Yellow).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colors.Red)

	SuccessStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colors.Green)

	InfoStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colors.Blue)
)

// FamilyStyle colors a family by its position in the signature table.
// Unknown and unlisted families are muted.
func FamilyStyle(table *boardfinder.Table, family string) lipgloss.Style {
	if table != nil {
		for i, f := range table.Families() {
			if f == family {
				return lipgloss.NewStyle().
					Bold(true).
					Foreground(colors.Families[i%len(colors.Families)])
			}
		}
	}
	return MutedStyle
}

// OutcomeStyle returns the style for reporting a permission grant outcome.
func OutcomeStyle(outcome boardfinder.GrantOutcome) lipgloss.Style {
	switch outcome {
	case boardfinder.GrantApplied:
		return SuccessStyle
	case boardfinder.GrantAlreadyAccessible, boardfinder.GrantNotRequired:
		return InfoStyle
	default:
		return ErrorStyle
	}
}

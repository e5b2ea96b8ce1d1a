package styles

import (
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/x/exp/charmtone"
)

var (
	// Title styles list titles.
	Title = lipgloss.NewStyle().
		Foreground(lipgloss.Color("99")).
		MarginLeft(2)

	// Selected styles the address of the highlighted list row.
	Selected = lipgloss.NewStyle().Foreground(lipgloss.Color("170"))

	// Dim styles addresses of other rows.
	Dim = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

	// Label styles secondary columns such as register names.
	Label = lipgloss.NewStyle().Foreground(lipgloss.Color(charmtone.Malibu.Hex()))

	// Spinner styles the loading spinner.
	Spinner = lipgloss.NewStyle().Foreground(lipgloss.Color("170"))

	// Error styles load failures.
	Error = lipgloss.NewStyle().Foreground(lipgloss.Color(charmtone.Coral.Hex())).Bold(true)
)

// MenuBar renders the bottom key help bar across width columns.
func MenuBar(text string, width int) string {
	return lipgloss.NewStyle().
		Background(lipgloss.Color("235")).
		Foreground(lipgloss.Color("252")).
		Padding(0, 1).
		Width(width).
		Render(text)
}

package theme

import "github.com/charmbracelet/lipgloss"

type DefaultTheme struct{}

var (
	passStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#00d75f"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffaf00"))
	failStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ec1e00"))
	headingStyle = lipgloss.NewStyle().Bold(true)
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#6e7681"))

	beatColors = map[int]lipgloss.Color{
		1:  "#ec1e00", // downbeat red
		2:  "#0076ec", // blue
		3:  "#6a00ec", // purple
		4:  "#ecc300", // yellow
		-1: "#ffffff", // other white
	}
)

func (t *DefaultTheme) Pass(s string) string    { return passStyle.Render(s) }
func (t *DefaultTheme) Warn(s string) string    { return warnStyle.Render(s) }
func (t *DefaultTheme) Fail(s string) string    { return failStyle.Render(s) }
func (t *DefaultTheme) Heading(s string) string { return headingStyle.Render(s) }
func (t *DefaultTheme) Dim(s string) string     { return dimStyle.Render(s) }

func (t *DefaultTheme) Beat(beat int, s string) string {
	col, ok := beatColors[beat]
	if !ok {
		col = beatColors[-1]
	}
	return lipgloss.NewStyle().Foreground(col).Render(s)
}

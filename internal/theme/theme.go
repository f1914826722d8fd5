package theme

type Theme interface {
	Pass(s string) string
	Warn(s string) string
	Fail(s string) string
	Heading(s string) string
	Dim(s string) string

	// Color a bar position label by its beat within the bar
	Beat(beat int, s string) string
}

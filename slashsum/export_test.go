package slashsum

import "io/fs"

// WithHomeForTest overrides the directory "~" expands to.
func (a *App) WithHomeForTest(home string) *App {
	a.home = home
	return a
}

// WithOpenForTest overrides how the input file is opened.
func (a *App) WithOpenForTest(open func(string) (fs.File, error)) *App {
	a.open = open
	return a
}

// ExpandTildeForTest exposes expandTilde.
func ExpandTildeForTest(path, home string) string {
	return expandTilde(path, home)
}

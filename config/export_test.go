package config

// DiscoverForTest runs discovery with injected environment and XDG
// lookup.
func DiscoverForTest(
	getenv func(string) string,
	search func(string) (string, error),
) (Settings, string, error) {
	return discover(getenv, search)
}

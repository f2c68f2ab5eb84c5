// Package config loads slashsum's optional YAML settings file and
// resolves it into the typed values the pipeline, the reporter and
// the logger consume.
//
// The file is looked up at $SLASHSUM_CONFIG, then at
// $XDG_CONFIG_HOME/slashsum/config.yaml (and the XDG config dirs).
// Without a file every setting takes its default.
package config

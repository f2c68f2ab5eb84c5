// Package report renders a finished pipeline run for people and
// machines, and persists the text rendering to a .checksum sidecar
// next to the input file.
package report

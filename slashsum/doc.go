// Package slashsum implements the slashsum command: argument
// handling, path expansion, running the digest pipeline over one file
// and printing (and optionally saving) the report.
package slashsum

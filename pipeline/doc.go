// Package pipeline fans a single sequential chunk stream out to one
// worker goroutine per digest algorithm and joins their results.
//
// The reading goroutine pushes every chunk to each algorithm's
// bounded queue in configured order. A full queue blocks the reader,
// which bounds memory to roughly capacity x chunk size x algorithms
// regardless of input size. Workers share nothing but the read-only
// chunks. Any read failure or worker fault aborts the whole run and
// no partial Outcome is returned.
package pipeline

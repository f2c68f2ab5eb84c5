// Package chunk reads an input stream sequentially into fixed-size,
// immutable chunks. A Source hands out each chunk exactly once, in read
// order; consumers share the returned slices read-only and never modify
// them.
package chunk

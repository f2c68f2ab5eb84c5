// Package digest implements the per-algorithm streaming accumulators
// fed by the pipeline. Each Accumulator ingests chunks in the order
// they were read and produces a single lowercase hex digest.
//
// The default set is CRC32 (IEEE), MD5, SHA1, SHA256 and SHA512.
// BLAKE3, XXH3, SHA3-256 and BLAKE2b-512 can be enabled at startup.
package digest

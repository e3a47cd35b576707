// Package afp defines the in-memory object model produced by the external
// archive parsers: movie clips with their frame and tag trees, texture sheets
// and sub-texture regions, and the two container families the pipeline can
// ingest.
//
// Nothing in this package reads bytes off disk. Containers arrive fully
// parsed, are read once by the normalizer, and are discarded; the types here
// are treated as read-only by everything downstream.
package afp

// Package render turns a registered movie clip into an ordered frame
// sequence.
//
// Frame compositing is delegated to a Compositor; the package owns the
// transform planning, the worker pool, and the ordering guarantee: workers
// write into index-addressed slots, so output order matches the timeline
// regardless of scheduling. There is no cancellation mid-render; the first
// compositing error aborts the run once in-flight frames finish.
package render

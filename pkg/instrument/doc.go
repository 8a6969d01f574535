// Package instrument provides ready-made profilers for the render-tree
// builder: a Prometheus recorder and an OpenTelemetry span tracer.
//
// Builder operations are strictly nested and single-goroutine, so both
// implementations keep a plain stack of in-flight operations. Wire a
// profiler with rendertree.SetProfiler and compile with the rtprofile build
// tag to activate the hooks; without the tag the hooks compile to no-ops and
// the profiler is never called.
package instrument

package rendertree

// Operation names passed to the profiler hooks.
const (
	opOpenElement           = "OpenElement"
	opCloseElement          = "CloseElement"
	opOpenComponent         = "OpenComponent"
	opCloseComponent        = "CloseComponent"
	opOpenRegion            = "OpenRegion"
	opCloseRegion           = "CloseRegion"
	opAddText               = "AddText"
	opAddMarkup             = "AddMarkup"
	opAddAttribute          = "AddAttribute"
	opAddMultipleAttributes = "AddMultipleAttributes"
)

// Profiler receives start/end callbacks around builder operations when the
// package is compiled with the "rtprofile" build tag. Default builds compile
// the call sites down to nothing, so the hooks cost zero in production.
//
// Implementations are single-threaded: callbacks arrive from the one
// goroutine driving the builder, strictly nested.
type Profiler interface {
	OperationStart(name string)
	OperationEnd(name string)
}

var activeProfiler Profiler

// SetProfiler registers the profiler invoked by instrumented builds. It has
// no effect unless the binary was built with the rtprofile tag.
func SetProfiler(p Profiler) {
	activeProfiler = p
}

//go:build rtprofile

package rendertree

func profileStart(name string) {
	if activeProfiler != nil {
		activeProfiler.OperationStart(name)
	}
}

func profileEnd(name string) {
	if activeProfiler != nil {
		activeProfiler.OperationEnd(name)
	}
}

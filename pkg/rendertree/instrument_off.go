//go:build !rtprofile

package rendertree

func profileStart(string) {}

func profileEnd(string) {}

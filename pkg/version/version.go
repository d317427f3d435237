// Package version holds the build version, overridden at link time with
// -ldflags "-X github.com/javipelopi/gridcast/pkg/version.Version=...".
package version

var Version = "dev"

// internal/version/version.go
package version

// Version is set at build time with
// -ldflags "-X oligostan/internal/version.Version=v1.2.3".
var Version = "dev"

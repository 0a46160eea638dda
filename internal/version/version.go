package version

// Version is the current extractcli release. Overridden at build time with
// -ldflags "-X github.com/studiowebux/extractcli/internal/version.Version=...".
var Version = "0.1.0"

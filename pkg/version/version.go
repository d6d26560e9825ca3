package version

// Version specifies the current version of polaroidwall
// This value is injected at build time with -ldflags "-X ...version.Version=x.y.z"
var Version = "0.0.0-dev"

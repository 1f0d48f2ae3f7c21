package config

// Version is the kittrack binary version.
// Set at build time via: -ldflags "-X github.com/kitworks/kittrack/internal/config.Version=<tag>"
// Defaults to "dev" when built without ldflags.
var Version = "dev"

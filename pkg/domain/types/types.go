package types

// AppName is the service name used in CLI, logs and health responses
const AppName = "resumediff"

// Version is the application version. Overwritten at build time via ldflags.
var Version = "1.0.0"

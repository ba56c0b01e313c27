package version

// Version is the semantic version of this build. It is overridden at link
// time for release builds.
var Version = "0.1.0"

package tmsim

import _ "embed"

// Version is the release of the tmsim module, read from the VERSION file.
//
//go:embed VERSION
var Version string

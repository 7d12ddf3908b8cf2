// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

// Package info holds the build metadata of the application.
package info

var (
	// AppName is the name of the application.
	AppName = "cardiostat"
	// Version is overridden at build time with -ldflags.
	Version = "DEV"
	// BuildDate is overridden at build time with -ldflags, as YYYY-MM-DD.
	BuildDate = ""
)

// VersionString formats version and the optional buildDate followed by the
// Go runtime that built the binary.
func VersionString(version, buildDate, runtimeVersion string) string {
	formatted := version
	if buildDate != "" {
		formatted += " (" + buildDate + ")"
	}

	return formatted + ", Go Version: " + runtimeVersion
}

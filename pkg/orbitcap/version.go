// Package orbitcap exposes build metadata for the orbitcap tool.
package orbitcap

// Version is the current orbitcap release.
const Version = "0.1.0"

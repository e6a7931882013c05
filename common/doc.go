// Package common holds process-wide helpers shared by the provider binaries:
// logger construction, build variables and the package description injected
// into providers at construction time.
package common

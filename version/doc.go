// Package version reports build information. Values are set at link time:
//
//	go build -ldflags "-X github.com/kbukum/slaybot/version.Version=1.2.0" ./cmd/slaybot
//
// When they are not set, VCS data stamped by the Go toolchain is used.
package version

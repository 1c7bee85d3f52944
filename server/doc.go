// Package server runs the bot's operational HTTP endpoint: a Gin engine
// behind an h2c handler serving health, readiness and version information
// for probes. It is a component.Component and reports its routes to the
// startup summary.
package server

// Package cli implements the oledmon command-line interface.
//
// # Command Structure
//
//	oledmon ping <address,label>...   - Ping hosts and show their status
//	oledmon stats [--screen] [--once] - Rotate system, network and clock screens
//	oledmon config                    - Print the effective configuration
//	oledmon doctor [--json]           - Diagnose the display bus, probes and metric sources
//	oledmon version                   - Print build information
//	oledmon completion <shell>        - Generate shell completion
//
// # Lifecycle
//
// Every dashboard command follows the same order: load and validate config,
// parse arguments, open the display, start background work, then hand the
// main goroutine to the render loop until SIGINT or SIGTERM. Configuration
// problems are reported before any device is touched and exit with code 1.
//
// Collaborators (display, pinger, metrics, clock) are held on an app value so
// tests can swap them for fakes.
package cli

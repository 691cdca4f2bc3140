package ui

// Unicode symbols for status indicators.
const (
	SymbolSuccess = "✓" // Operation succeeded
	SymbolFail    = "✗" // Operation failed
	SymbolUp      = "●" // Host reachable, same glyph as the filled panel indicator
	SymbolDown    = "○" // Host unreachable
)

// Package ui styles oledmon's console output.
//
// Colors are ANSI codes so they follow the user's terminal theme:
//
//	ColorSuccess   (green)  - hosts up, successful startup
//	ColorError     (red)    - hosts down, fatal errors
//	ColorWarning   (yellow) - warnings
//	ColorInfo      (cyan)   - addresses and panel preview
//	ColorMuted     (gray)   - borders, secondary text
//
// Use DisableColors() to switch to monochrome output (for --no-color flag).
package ui

package alerts

import "fmt"

// Level represents the severity of an alert.
type Level int

const (
	// LevelError indicates a failure or error condition.
	LevelError Level = iota
	// LevelWarning indicates a potential issue or important notice.
	LevelWarning
	// LevelInfo indicates general informational messages.
	LevelInfo
	// LevelSuccess indicates successful completion of an operation.
	LevelSuccess
)

// Symbols printed in front of alert messages.
const (
	SymbolSuccess = "✓"
	SymbolError   = "✗"
	SymbolWarning = "!"
	SymbolInfo    = "i"
	SymbolUnknown = "?"
)

const resetColor = "\033[0m"

// String returns the string representation of the alert level.
func (l Level) String() string {
	switch l {
	case LevelError:
		return "error"
	case LevelWarning:
		return "warning"
	case LevelInfo:
		return "info"
	case LevelSuccess:
		return "success"
	default:
		return fmt.Sprintf("unknown(%d)", l)
	}
}

// Icon returns the symbol for the alert level.
func (l Level) Icon() string {
	switch l {
	case LevelError:
		return SymbolError
	case LevelWarning:
		return SymbolWarning
	case LevelInfo:
		return SymbolInfo
	case LevelSuccess:
		return SymbolSuccess
	default:
		return SymbolUnknown
	}
}

// Color returns ANSI color codes for terminal output.
func (l Level) Color() string {
	switch l {
	case LevelError:
		return "\033[31m" // red
	case LevelWarning:
		return "\033[33m" // yellow
	case LevelInfo:
		return "\033[36m" // cyan
	case LevelSuccess:
		return "\033[32m" // green
	default:
		return resetColor
	}
}

package compiler

// ASCII boundary constants
const (
	// MaxASCIIRune is the exclusive upper bound for ASCII characters.
	// Generated class maps answer runes below it from a flat table.
	MaxASCIIRune = 128
)

// Defaults for Config fields left zero.
const (
	// DefaultName prefixes generated identifiers when Config.Name is empty.
	DefaultName = "Lexer"

	// DefaultWorkers normalizes rules one at a time.
	DefaultWorkers = 1
)

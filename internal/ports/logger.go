package ports

import "github.com/kb1gnc/cwkeyd/pkg/log"

// Logger is the structured logging abstraction used across the core.
// It aliases pkg/log so internal packages do not need to import both.
type Logger = log.Logger

// Field is a structured logging field.
type Field = log.Field

// Re-exported field constructors for convenience.
var (
	String   = log.String
	Int      = log.Int
	Bool     = log.Bool
	Byte     = log.Byte
	Duration = log.Duration
	Err      = log.Err
	Any      = log.Any
)

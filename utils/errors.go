package utils

import "errors"

// Error categories returned by the connectivity and deduplication routines.
// Callers match them with errors.Is; messages carry the offending values.
var (
	ErrInvalidArgument       = errors.New("invalid argument")
	ErrOutOfRange            = errors.New("out of range")
	ErrUnsupportedCellType   = errors.New("unsupported cell type")
	ErrMalformedConnectivity = errors.New("malformed connectivity")
)

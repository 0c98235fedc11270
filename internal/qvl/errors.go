package qvl

import "errors"

// Parse failures abort the run. Cell-level problems (unparseable capacity,
// missing optional fields) degrade to zero values instead and never surface
// as errors.
var (
	ErrTableNotFound  = errors.New("qvl table not found")
	ErrHeaderNotFound = errors.New("qvl table header row not found")
)

package mcos

import "fmt"

// reconstructionError names the pipeline stage that failed. The root
// package's exported ReconstructionError carries the same shape;
// decode logs this error's text when it downgrades a timeseries to
// RawBytes rather than constructing that type here, since doing so
// would require importing the root package and would cycle back.
type reconstructionError struct {
	stage  string
	detail string
}

func (e *reconstructionError) Error() string {
	return fmt.Sprintf("stage %s: %s", e.stage, e.detail)
}

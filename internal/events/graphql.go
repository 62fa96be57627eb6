package events

import "time"

// QueryGenerated is emitted when a template finishes assembling
// operation text, before execution.
type QueryGenerated struct {
	Operation     string
	OperationType string
	Query         string
}

// ExecuteStart is emitted before handing operation text to the executor.
type ExecuteStart struct {
	Operation     string
	OperationType string
	Query         string
}

// ExecuteFinish is emitted after the executor returns.
type ExecuteFinish struct {
	Operation     string
	OperationType string
	Errors        []error
	Duration      time.Duration
}

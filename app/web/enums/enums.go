// Package enums provides type-safe enumeration types for job history.
//
// This package uses code generation via go-pkgz/enum. The enum types are defined as unexported
// integer types (e.g., jobStatus int) in this file, and the go:generate directives create the
// exported types with all methods in separate files (*_enum.go).
//
// For each enum type, the generator creates:
//   - An exported struct type (e.g., JobStatus) with name and value fields
//   - String() method for string representation
//   - Parse functions (e.g., ParseJobStatus) for string-to-enum conversion
//   - Database methods (Scan/Value), enums are stored as strings
//   - JSON marshaling methods (MarshalText/UnmarshalText)
//   - Exported constants for each enum value (e.g., JobStatusSuccess, JobKindPDF)
//
// Usage:
//
//	status := enums.JobStatusFailed
//	fmt.Println(status.String()) // "failed"
//
//	parsed, err := enums.ParseJobStatus("success")
//	if err != nil {
//	    // handle invalid input
//	}
//
// To regenerate the enum types after modifications:
//
//	go generate ./app/web/enums
package enums

//go:generate go run github.com/go-pkgz/enum@latest -type jobStatus -lower
//go:generate go run github.com/go-pkgz/enum@latest -type jobKind -lower

// jobStatus is the outcome of a single request.
// Generator input only, use the exported JobStatus type.
type jobStatus int

const (
	jobStatusUnknown  jobStatus = iota
	jobStatusSuccess            // document or latex returned
	jobStatusRejected           // invalid input, nothing was run
	jobStatusFailed             // compiler or generation service failed
	jobStatusError              // unexpected internal error
)

// jobKind is the endpoint a job came from.
// Generator input only, use the exported JobKind type.
type jobKind int

const (
	jobKindUnknown jobKind = iota
	jobKindPDF
	jobKindLatex
)

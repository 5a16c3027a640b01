package types

import "fmt"

// InvalidDocumentError reports a document missing one of the metadata
// fields required for a write or delete. It is raised before any backend
// call is made.
type InvalidDocumentError struct {
	Field string
}

func (e *InvalidDocumentError) Error() string {
	return fmt.Sprintf("invalid document: missing %s", e.Field)
}

// MalformedFileError reports content that could not be interpreted: a file
// that is not valid JSON, a package without a docs array, or a dashboard
// whose panel list cannot be resolved.
type MalformedFileError struct {
	Path   string
	Reason string
}

func (e *MalformedFileError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("malformed content: %s", e.Reason)
	}
	return fmt.Sprintf("malformed file %s: %s", e.Path, e.Reason)
}

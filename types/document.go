package types

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Object types stored in the Kibana configuration index.
const (
	TypeConfig        = "config"
	TypeDashboard     = "dashboard"
	TypeVisualization = "visualization"
	TypeSearch        = "search"
	TypeIndexPattern  = "index-pattern"
)

// Document is a single configuration object in the shape the backend
// returns it. The actual payload lives in Source; the other fields are the
// metadata needed to index it again later. Fields are declared in JSON key
// order so marshaled output comes out key-sorted.
type Document struct {
	ID     string                 `json:"_id" validate:"required"`
	Index  string                 `json:"_index" validate:"required"`
	Source map[string]interface{} `json:"_source" validate:"required,min=1"`
	Type   string                 `json:"_type" validate:"required"`
}

// DocumentPackage bundles documents for bulk transfer as a single file.
type DocumentPackage struct {
	Docs []Document `json:"docs"`
}

// DocumentSet holds the result of a multi-document fetch, keyed by id.
type DocumentSet map[string]Document

var validate = validator.New()

func init() {
	// Report JSON tag names so a failed check names _index, _id, _type or
	// _source rather than the Go field.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// Validate checks the write invariant: _index, _id, _type and a non-empty
// _source are all required.
func (d Document) Validate() error {
	return invalidDocument(validate.Struct(d))
}

// ValidateMeta checks the delete invariant, which does not require _source.
func (d Document) ValidateMeta() error {
	return invalidDocument(validate.StructPartial(d, "ID", "Index", "Type"))
}

func invalidDocument(err error) error {
	if err == nil {
		return nil
	}
	if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
		return &InvalidDocumentError{Field: errs[0].Field()}
	}
	return err
}

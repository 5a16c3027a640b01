package types_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kibanatools/kbackup/types"
)

func validDoc() types.Document {
	return types.Document{
		ID:     "main-dashboard",
		Index:  ".kibana",
		Source: map[string]interface{}{"title": "Main"},
		Type:   types.TypeDashboard,
	}
}

func TestDocumentValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*types.Document)
		missing string
	}{
		{name: "valid", mutate: func(d *types.Document) {}},
		{name: "missing index", mutate: func(d *types.Document) { d.Index = "" }, missing: "_index"},
		{name: "missing id", mutate: func(d *types.Document) { d.ID = "" }, missing: "_id"},
		{name: "missing type", mutate: func(d *types.Document) { d.Type = "" }, missing: "_type"},
		{name: "missing source", mutate: func(d *types.Document) { d.Source = nil }, missing: "_source"},
		{name: "empty source", mutate: func(d *types.Document) { d.Source = map[string]interface{}{} }, missing: "_source"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := validDoc()
			tt.mutate(&doc)
			err := doc.Validate()
			if tt.missing == "" {
				assert.NoError(t, err)
				return
			}
			var invalid *types.InvalidDocumentError
			assert.True(t, errors.As(err, &invalid))
			assert.Equal(t, tt.missing, invalid.Field)
			assert.Contains(t, err.Error(), tt.missing)
		})
	}
}

func TestDocumentValidateMeta(t *testing.T) {
	doc := validDoc()
	doc.Source = nil
	assert.NoError(t, doc.ValidateMeta(), "delete does not require _source")

	doc.ID = ""
	err := doc.ValidateMeta()
	var invalid *types.InvalidDocumentError
	assert.True(t, errors.As(err, &invalid))
	assert.Equal(t, "_id", invalid.Field)
}

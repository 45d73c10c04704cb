package schemas

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPropertyCreateSchema(t *testing.T) {
	valid := []byte(`{
		"name": "Lakeview Residency",
		"type": "flat",
		"bhk": "2BHK",
		"city": "Bangalore",
		"minAmount": 1400,
		"maxAmount": 1800,
		"features": ["parking", "lift"],
		"geo": {"latitude": 12.9352, "longitude": 77.6245}
	}`)
	assert.NoError(t, Validate(PropertyCreate, valid))

	assert.Error(t, Validate(PropertyCreate, []byte(`{"type": "flat", "city": "Pune"}`)),
		"name is required")
	assert.Error(t, Validate(PropertyCreate, []byte(`{"name": "X", "type": "castle", "city": "Pune"}`)),
		"unknown property type")
	assert.Error(t, Validate(PropertyCreate, []byte(`{"name": "X", "type": "flat", "city": "Pune", "geo": {"latitude": 123, "longitude": 0}}`)),
		"latitude out of range")
	assert.Error(t, Validate(PropertyCreate, []byte(`not json`)))
}

func TestPropertyUpdateSchema(t *testing.T) {
	assert.NoError(t, Validate(PropertyUpdate, []byte(`{"minAmount": 1500}`)))
	assert.Error(t, Validate(PropertyUpdate, []byte(`{}`)), "empty update")
	assert.Error(t, Validate(PropertyUpdate, []byte(`{"code": "PROP-1"}`)),
		"immutable fields are not accepted")
}

func TestUnknownSchemaName(t *testing.T) {
	assert.Error(t, Validate("missing.schema.json", []byte(`{}`)))
}

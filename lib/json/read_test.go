package json

import (
	"bytes"
	"testing"
)

var (
	badJson = []byte(`{
    "Key": "value",
}
`)

	commentedJson = []byte(`{
    "Key": "value"
# Translation for the Spanish status labels.
}
`)
)

type jsonDataType struct {
	Key string
}

func TestBad(t *testing.T) {
	var data jsonDataType
	if err := Read(bytes.NewBuffer(badJson), &data); err == nil {
		t.Errorf("No failure trying to read bad JSON")
	}
}

func TestCommentedFiltered(t *testing.T) {
	var data jsonDataType
	if err := Read(bytes.NewBuffer(commentedJson), &data); err != nil {
		t.Errorf("Failure trying to read filtered commented JSON: %s", err)
	}
	if data.Key != "value" {
		t.Errorf("Key: expected: \"value\", got: \"%s\"", data.Key)
	}
}

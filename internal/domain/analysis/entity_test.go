package analysis

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestPersonList_UnmarshalArray(t *testing.T) {
	var p PersonList
	if err := json.Unmarshal([]byte(`["Ada Lovelace","Alan Turing"]`), &p); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if !reflect.DeepEqual(p, PersonList{"Ada Lovelace", "Alan Turing"}) {
		t.Errorf("unexpected list: %v", p)
	}
	if p.Join() != "Ada Lovelace, Alan Turing" {
		t.Errorf("unexpected join: %q", p.Join())
	}
}

func TestPersonList_UnmarshalString(t *testing.T) {
	var p PersonList
	if err := json.Unmarshal([]byte(`"Marie Curie"`), &p); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if !reflect.DeepEqual(p, PersonList{"Marie Curie"}) {
		t.Errorf("single string should stay one element, got %v", p)
	}
}

func TestPersonList_UnmarshalEmptyString(t *testing.T) {
	var p PersonList
	if err := json.Unmarshal([]byte(`""`), &p); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if len(p) != 0 {
		t.Errorf("empty string should mean no persons, got %v", p)
	}
	if p.Join() != "" {
		t.Errorf("empty list should join to empty string, got %q", p.Join())
	}
}

func TestPersonList_UnmarshalRejectsOtherShapes(t *testing.T) {
	var p PersonList
	if err := json.Unmarshal([]byte(`{"name":"Ada"}`), &p); err == nil {
		t.Error("object shape should fail to unmarshal")
	}
}

func TestDecodeResult_Defaults(t *testing.T) {
	res, err := DecodeResult([]byte(`{}`))
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if res.Summary != "" {
		t.Errorf("summary should default to empty, got %q", res.Summary)
	}
	if len(res.Persons) != 0 {
		t.Errorf("persons should default to empty, got %v", res.Persons)
	}
	if res.Category != CategoryOther {
		t.Errorf("category should default to Other, got %q", res.Category)
	}
}

func TestDecodeResult_PassesThroughUnknownCategory(t *testing.T) {
	res, err := DecodeResult([]byte(`{"category":"Gardening"}`))
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if res.Category != "Gardening" {
		t.Errorf("unknown categories pass through, got %q", res.Category)
	}
}

func TestDecodeResult_Malformed(t *testing.T) {
	if _, err := DecodeResult([]byte(`{"summary":`)); err == nil {
		t.Error("malformed payload should error")
	}
}

package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestJSONFormatter_FieldNamesAndValues(t *testing.T) {
	f := &JSONFormatter{}
	var buf bytes.Buffer

	if err := f.Format(&buf, sampleDiagnostics); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var raw []map[string]any
	if err := json.Unmarshal(buf.Bytes(), &raw); err != nil {
		t.Fatalf("output is not valid JSON: %v\noutput: %s", err, buf.String())
	}
	if len(raw) != 2 {
		t.Fatalf("expected 2 elements, got %d", len(raw))
	}

	item := raw[0]
	for _, field := range []string{"file", "line", "rule", "name", "severity", "message"} {
		if _, ok := item[field]; !ok {
			t.Errorf("missing field %q in JSON output", field)
		}
	}
	if _, ok := item["column"]; ok {
		t.Error("unexpected column field")
	}
	if item["file"] != "pkg/mod.py" {
		t.Errorf("file: got %v", item["file"])
	}
	if item["line"] != float64(10) {
		t.Errorf("line: got %v", item["line"])
	}
	if item["rule"] != "DS004" || item["name"] != "params-mismatch" {
		t.Errorf("rule: got %v / %v", item["rule"], item["name"])
	}
	if item["severity"] != "error" {
		t.Errorf("severity: got %v", item["severity"])
	}
}

func TestJSONFormatter_PreservesOrder(t *testing.T) {
	var buf bytes.Buffer
	if err := (&JSONFormatter{}).Format(&buf, sampleDiagnostics); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var result []jsonDiagnostic
	if err := json.Unmarshal(buf.Bytes(), &result); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if result[0].File != "pkg/mod.py" || result[1].File != "main.py" {
		t.Errorf("unexpected order: %+v", result)
	}
}

func TestJSONFormatter_EmptyDiagnostics(t *testing.T) {
	var buf bytes.Buffer
	if err := (&JSONFormatter{}).Format(&buf, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.TrimSpace(buf.String()) != "[]" {
		t.Errorf("expected [], got %q", buf.String())
	}
}

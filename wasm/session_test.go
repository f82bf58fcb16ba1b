//go:build wasm

package main

import (
	"encoding/json"
	"strings"
	"syscall/js"
	"testing"

	"github.com/srcweave/srcweave"
	"github.com/srcweave/srcweave/pkg/serve"
)

func openSession(t *testing.T) int {
	t.Helper()
	result, ok := newSession(js.Value{}, nil).(map[string]interface{})
	if !ok {
		t.Fatalf("expected map result")
	}
	if errMsg, hasError := result["error"]; hasError {
		t.Fatalf("failed to create session: %v", errMsg)
	}
	handle := result["handle"].(int)
	t.Cleanup(func() { closeSession(js.Value{}, []js.Value{js.ValueOf(handle)}) })
	return handle
}

func TestRender(t *testing.T) {
	handle := openSession(t)

	payload, _ := json.Marshal(serve.RenderPayload{Filename: "a.go", Content: "package a\nvar x = 1 < 2\n"})
	out := renderFile(js.Value{}, []js.Value{js.ValueOf(handle), js.ValueOf(string(payload))})

	s, ok := out.(string)
	if !ok {
		t.Fatalf("expected JSON string, got %v", out)
	}
	var result serve.RenderResult
	if err := json.Unmarshal([]byte(s), &result); err != nil {
		t.Fatalf("failed to parse result: %v", err)
	}
	if !strings.Contains(result.HTML, "1 &lt; 2") {
		t.Errorf("expected escaped output, got %q", result.HTML)
	}
}

func TestIndex(t *testing.T) {
	handle := openSession(t)

	pairs := []srcweave.Pair{{
		Occurrence: &srcweave.Interval{Filename: "a.go", Start: 20, End: 20},
		Definition: &srcweave.Interval{Filename: "a.go", Start: 14, End: 14},
	}}
	pairsJSON, _ := json.Marshal(pairs)
	out := buildIndex(js.Value{}, []js.Value{js.ValueOf(handle), js.ValueOf(string(pairsJSON))})

	var result serve.IndexResult
	if err := json.Unmarshal([]byte(out.(string)), &result); err != nil {
		t.Fatalf("failed to parse result: %v", err)
	}
	if len(result.Definitions) != 1 || len(result.Regions) != 1 {
		t.Errorf("expected one definition and one region, got %+v", result)
	}
}

func TestInvalidHandle(t *testing.T) {
	out := renderFile(js.Value{}, []js.Value{js.ValueOf(999), js.ValueOf("{}")})
	result, ok := out.(map[string]interface{})
	if !ok || result["error"] != "invalid session handle" {
		t.Errorf("expected invalid handle error, got %v", out)
	}
}

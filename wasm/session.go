//go:build wasm

package main

import (
	"context"
	"encoding/json"
	"sync"
	"syscall/js"

	"github.com/srcweave/srcweave"
	"github.com/srcweave/srcweave/pkg/serve"
)

var (
	sessions   = make(map[int]*serve.Session)
	sessionsMu sync.RWMutex
	nextID     int
)

func errorResult(msg string) map[string]interface{} {
	return map[string]interface{}{"error": msg}
}

func lookup(handle int) (*serve.Session, bool) {
	sessionsMu.RLock()
	defer sessionsMu.RUnlock()
	s, ok := sessions[handle]
	return s, ok
}

// newSession creates a render session with its own token cache.
// JS: SrcweaveNewSession([cacheSize]) -> {handle} or {error}
func newSession(this js.Value, args []js.Value) interface{} {
	size := 0
	if len(args) > 0 && args[0].Type() == js.TypeNumber {
		size = args[0].Int()
	}

	s, err := serve.NewSession(size, nil)
	if err != nil {
		return errorResult("failed to create session: " + err.Error())
	}

	sessionsMu.Lock()
	id := nextID
	nextID++
	sessions[id] = s
	sessionsMu.Unlock()

	return map[string]interface{}{"handle": id}
}

// renderFile renders one file with caller-supplied wrappers.
// JS: SrcweaveRender(handle, payloadJSON) -> JSON RenderResult or {error}
func renderFile(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return errorResult("handle and payloadJSON arguments required")
	}

	s, ok := lookup(args[0].Int())
	if !ok {
		return errorResult("invalid session handle")
	}

	var payload serve.RenderPayload
	if err := json.Unmarshal([]byte(args[1].String()), &payload); err != nil {
		return errorResult("failed to parse payload JSON: " + err.Error())
	}

	result, err := s.Render(payload)
	if err != nil {
		return errorResult("render failed: " + err.Error())
	}
	return marshal(result)
}

// buildIndex turns raw pairs into definitions and regions.
// JS: SrcweaveIndex(handle, pairsJSON) -> JSON IndexResult or {error}
func buildIndex(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return errorResult("handle and pairsJSON arguments required")
	}

	s, ok := lookup(args[0].Int())
	if !ok {
		return errorResult("invalid session handle")
	}

	var pairs []srcweave.Pair
	if err := json.Unmarshal([]byte(args[1].String()), &pairs); err != nil {
		return errorResult("failed to parse pairs JSON: " + err.Error())
	}
	return marshal(s.Index(serve.IndexPayload{Pairs: pairs}))
}

// annotate resolves identifiers in a single file and returns its HTML.
// JS: SrcweaveAnnotate(filename, content) -> HTML string or {error}
func annotate(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return errorResult("filename and content arguments required")
	}

	out, err := srcweave.Annotate(context.Background(), args[0].String(), []byte(args[1].String()))
	if err != nil {
		return errorResult("annotate failed: " + err.Error())
	}
	return out
}

// closeSession releases a session.
// JS: SrcweaveCloseSession(handle)
func closeSession(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return errorResult("handle argument required")
	}

	handle := args[0].Int()
	sessionsMu.Lock()
	_, ok := sessions[handle]
	delete(sessions, handle)
	sessionsMu.Unlock()

	if !ok {
		return errorResult("invalid session handle")
	}
	return nil
}

func marshal(v any) interface{} {
	b, err := json.Marshal(v)
	if err != nil {
		return errorResult("failed to marshal result: " + err.Error())
	}
	return string(b)
}

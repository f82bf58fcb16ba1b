package serve

import (
	"encoding/json"

	"github.com/srcweave/srcweave/pkg/index"
	"github.com/srcweave/srcweave/pkg/types"
)

// Request and response types.
const (
	TypeReady  = "ready"
	TypeRender = "render"
	TypeIndex  = "index"
	TypeClose  = "close"
	TypeDecode = "decode"
	TypeError  = "unknown"
)

// Request represents an incoming NDJSON request.
type Request struct {
	Type    string          `json:"type"` // "render" | "index" | "close"
	Payload json.RawMessage `json:"payload"`
}

// RenderPayload is the payload for "render" requests.
type RenderPayload struct {
	Filename string          `json:"filename"`
	Content  string          `json:"content"`
	Wrappers []types.Wrapper `json:"wrappers"`
	// Raw disables HTML escaping of token text.
	Raw bool `json:"raw,omitempty"`
	// Strict rejects crossing wrappers.
	Strict bool `json:"strict,omitempty"`
}

// RenderResult is the data of a "render" response.
type RenderResult struct {
	HTML   string `json:"html"`
	Tokens int    `json:"tokens"`
	Cached bool   `json:"cached"`
}

// IndexPayload is the payload for "index" requests.
type IndexPayload struct {
	Pairs []types.Pair `json:"pairs"`
}

// IndexResult is the data of an "index" response.
type IndexResult struct {
	Definitions []types.Definition   `json:"definitions"`
	Regions     []types.ActiveRegion `json:"regions"`
	Stats       index.Stats          `json:"stats"`
}

// Response represents an outgoing NDJSON response.
type Response struct {
	Success bool            `json:"success"`
	Type    string          `json:"type"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// ReadyData is the data field for "ready" responses.
type ReadyData struct {
	Version string `json:"version"`
}

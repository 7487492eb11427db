// Package ffi provides C FFI exports for embedding linkprune in other
// runtimes.
//
// Build with:
//
//	CGO_ENABLED=1 go build -buildmode=c-shared -o liblinkprune.so ./pkg/ffi/
//
// All inputs/outputs are C strings. Complex data is JSON-serialized.
// The LinkpruneResult type provides both data and error fields.
// Callers must free results with linkprune_result_free.
package ffi

// #include "linkprune.h"
import "C"
import (
	"encoding/json"
	"unsafe"

	"github.com/linkprune/linkprune/pkg/linkprune"
)

// === One-shot cleaning ===

// cleanResponse is the JSON payload returned by linkprune_clean and
// linkprune_generate.
type cleanResponse struct {
	HTML   string           `json:"html"`
	Report linkprune.Report `json:"report"`
}

//export linkprune_clean
func linkprune_clean(html *C.char, configJSON *C.char) C.LinkpruneResult {
	cfg, err := parseConfig(C.GoString(configJSON))
	if err != nil {
		return makeError(err.Error())
	}

	session, err := linkprune.NewAnalyzer(cfg).Analyze(C.GoString(html))
	if err != nil {
		return makeError(err.Error())
	}
	session.AutoStrip()

	result, err := session.GenerateClean()
	if err != nil {
		return makeError(err.Error())
	}
	return makeJSON(cleanResponse{HTML: result.HTML, Report: result.Report})
}

// === Session lifecycle ===

//export linkprune_analyze
func linkprune_analyze(html *C.char, configJSON *C.char) C.int {
	cfg, err := parseConfig(C.GoString(configJSON))
	if err != nil {
		return 0
	}
	session, err := linkprune.NewAnalyzer(cfg).Analyze(C.GoString(html))
	if err != nil {
		return 0
	}
	return sessions.add(session)
}

//export linkprune_session_free
func linkprune_session_free(handle C.int) {
	sessions.remove(handle)
}

// === Session operations ===

// inventoryResponse is the JSON payload returned by linkprune_inventory.
type inventoryResponse struct {
	Stats    linkprune.Stats     `json:"stats"`
	Groups   []*linkprune.Group  `json:"groups"`
	Warnings []linkprune.Warning `json:"warnings,omitempty"`
}

//export linkprune_inventory
func linkprune_inventory(handle C.int) C.LinkpruneResult {
	session, ok := sessions.get(handle)
	if !ok {
		return makeError("invalid session handle")
	}
	return makeJSON(inventoryResponse{
		Stats:    session.Stats(),
		Groups:   session.OrderedGroups(),
		Warnings: session.Warnings,
	})
}

//export linkprune_auto_strip
func linkprune_auto_strip(handle C.int) C.LinkpruneResult {
	session, ok := sessions.get(handle)
	if !ok {
		return makeError("invalid session handle")
	}
	session.AutoStrip()
	return makeJSON(keepStates(session))
}

//export linkprune_keep_all
func linkprune_keep_all(handle C.int) C.LinkpruneResult {
	session, ok := sessions.get(handle)
	if !ok {
		return makeError("invalid session handle")
	}
	session.KeepAll()
	return makeJSON(keepStates(session))
}

//export linkprune_toggle
func linkprune_toggle(handle C.int, id C.int, keep C.int) C.LinkpruneResult {
	session, ok := sessions.get(handle)
	if !ok {
		return makeError("invalid session handle")
	}
	if err := session.Toggle(int(id), keep != 0); err != nil {
		return makeError(err.Error())
	}
	return makeResult("{}")
}

//export linkprune_generate
func linkprune_generate(handle C.int) C.LinkpruneResult {
	session, ok := sessions.get(handle)
	if !ok {
		return makeError("invalid session handle")
	}
	result, err := session.GenerateClean()
	if err != nil {
		return makeError(err.Error())
	}
	return makeJSON(cleanResponse{HTML: result.HTML, Report: result.Report})
}

// === Memory Management ===

//export linkprune_result_free
func linkprune_result_free(result C.LinkpruneResult) {
	if result.data != nil {
		C.free(unsafe.Pointer(result.data))
	}
	if result.error != nil {
		C.free(unsafe.Pointer(result.error))
	}
}

// helpers

// parseConfig merges a JSON config overlay onto the defaults. An empty
// string means defaults only.
func parseConfig(configJSON string) (*linkprune.Config, error) {
	cfg := linkprune.DefaultConfig()
	if configJSON != "" {
		var overlay linkprune.Config
		if err := json.Unmarshal([]byte(configJSON), &overlay); err != nil {
			return nil, err
		}
		cfg = cfg.Merge(&overlay)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func keepStates(session *linkprune.Session) []linkprune.KeepState {
	states := make([]linkprune.KeepState, 0, len(session.Links))
	for _, l := range session.Links {
		states = append(states, linkprune.KeepState{ID: l.ID, Keep: l.Keep})
	}
	return states
}

func makeJSON(v any) C.LinkpruneResult {
	data, err := json.Marshal(v)
	if err != nil {
		return makeError(err.Error())
	}
	return makeResult(string(data))
}

func makeResult(data string) C.LinkpruneResult {
	cData := C.CString(data)
	return C.LinkpruneResult{
		data:  cData,
		len:   C.int(len(data)),
		error: nil,
	}
}

func makeError(msg string) C.LinkpruneResult {
	cErr := C.CString(msg)
	return C.LinkpruneResult{
		data:  nil,
		len:   0,
		error: cErr,
	}
}

// main is required for c-shared build mode but should not be called.
func main() {}

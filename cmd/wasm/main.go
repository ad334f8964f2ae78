//go:build js && wasm

// Command wasm exposes the speed profiler to the browser via WebAssembly.
// After loading, it registers a global JavaScript function:
//
//	runProfile(jsonString) -> jsonString
//
// The argument is a pipeline Input: a track of line and arc primitives, raw points or a
// segment list, plus optional config and vehicle. The result is the Output JSON with the
// segments, the sampled speed profile and its summary, or {"error": ...}.
package main

import (
	"syscall/js"

	"github.com/cxd309/speed-profile/internal/pipeline"
)

func main() {
	js.Global().Set("runProfile", js.FuncOf(runProfile))
	select {} // keep the WASM module alive until the page is closed
}

func runProfile(_ js.Value, args []js.Value) any {
	if len(args) < 1 {
		return map[string]any{"error": "no input provided"}
	}

	result, err := pipeline.RunJSON(args[0].String())
	if err != nil {
		return map[string]any{"error": err.Error()}
	}
	return result
}

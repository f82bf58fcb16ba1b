//go:build wasm

package main

import (
	"syscall/js"
)

func main() {
	js.Global().Set("SrcweaveNewSession", js.FuncOf(newSession))
	js.Global().Set("SrcweaveRender", js.FuncOf(renderFile))
	js.Global().Set("SrcweaveIndex", js.FuncOf(buildIndex))
	js.Global().Set("SrcweaveCloseSession", js.FuncOf(closeSession))
	js.Global().Set("SrcweaveAnnotate", js.FuncOf(annotate))

	// Keep WASM running
	<-make(chan struct{})
}

//go:build js && wasm

package main

import (
	"syscall/js"

	"thermalsynth/pkg/thermal"
)

var (
	lastSource *thermal.Image
	lastResult *thermal.Result
)

func main() {
	js.Global().Set("thermalize", js.FuncOf(thermalize))
	js.Global().Set("renderPreview", js.FuncOf(renderPreview))
	select {} // block forever
}

// thermalize(fileBytes, options) -> {width, height, colored, grayscale, fieldMin, fieldMax, degenerate}
// Outputs are PNG encoded Uint8Arrays.
func thermalize(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return errorResult("usage: thermalize(fileBytes, options)")
	}

	// Extract file bytes
	jsBytes := args[0]
	length := jsBytes.Get("length").Int()
	fileBytes := make([]byte, length)
	js.CopyBytesToGo(fileBytes, jsBytes)

	params := thermal.NewParams()
	width, height := 512, 512
	if len(args) >= 2 && args[1].Type() == js.TypeObject {
		opts := args[1]
		readFloat(opts, "gamma", &params.Gamma)
		readFloat(opts, "brightnessWeight", &params.BrightnessWeight)
		readFloat(opts, "redWeight", &params.RedWeight)
		readFloat(opts, "greenWeight", &params.GreenWeight)
		readFloat(opts, "blueWeight", &params.BlueWeight)
		readFloat(opts, "clipLimit", &params.ClipLimit)
		readInt(opts, "tilesX", &params.TileGrid.X)
		readInt(opts, "tilesY", &params.TileGrid.Y)
		readInt(opts, "width", &width)
		readInt(opts, "height", &height)
	}

	synth, err := thermal.NewSynthesizer(params)
	if err != nil {
		return errorResult("parameter error: " + err.Error())
	}

	src, err := thermal.Decode(fileBytes)
	if err != nil {
		return errorResult("decode error: " + err.Error())
	}
	src, err = thermal.Resize(src, width, height)
	if err != nil {
		return errorResult("resize error: " + err.Error())
	}

	res, err := synth.Synthesize(src)
	if err != nil {
		return errorResult("synthesis error: " + err.Error())
	}
	lastSource, lastResult = src, res

	colored, err := thermal.Encode(".png", res.Colored)
	if err != nil {
		return errorResult("encode error: " + err.Error())
	}
	gray, err := thermal.Encode(".png", res.Gray)
	if err != nil {
		return errorResult("encode error: " + err.Error())
	}

	return js.ValueOf(map[string]interface{}{
		"width":      res.Gray.Width,
		"height":     res.Gray.Height,
		"colored":    toUint8Array(colored),
		"grayscale":  toUint8Array(gray),
		"fieldMin":   res.Stats.Min,
		"fieldMax":   res.Stats.Max,
		"degenerate": res.Stats.Degenerate,
	})
}

// renderPreview returns a JPEG comparison sheet of the last thermalize call.
func renderPreview(this js.Value, args []js.Value) interface{} {
	if lastResult == nil {
		return js.Null()
	}

	title := "preview"
	if len(args) >= 1 && args[0].Type() == js.TypeString {
		title = args[0].String()
	}
	jpegBytes, err := thermal.RenderPreviewBytes(lastSource, lastResult, title)
	if err != nil {
		return js.Null()
	}
	return toUint8Array(jpegBytes)
}

func toUint8Array(b []byte) js.Value {
	uint8Array := js.Global().Get("Uint8Array").New(len(b))
	js.CopyBytesToJS(uint8Array, b)
	return uint8Array
}

func readFloat(opts js.Value, key string, dst *float64) {
	if v := opts.Get(key); v.Type() == js.TypeNumber {
		*dst = v.Float()
	}
}

func readInt(opts js.Value, key string, dst *int) {
	if v := opts.Get(key); v.Type() == js.TypeNumber {
		*dst = v.Int()
	}
}

func errorResult(msg string) interface{} {
	return js.ValueOf(map[string]interface{}{
		"error": msg,
	})
}

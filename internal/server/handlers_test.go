package server

import (
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ironsheep/imgmode/internal/imaging"
)

// createTestImageFile writes a solid-colour PNG into a temp dir and returns
// its path.
func createTestImageFile(t *testing.T, width, height int, c color.Color) string {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}

	path := filepath.Join(t.TempDir(), "input.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create image file: %v", err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		t.Fatalf("failed to encode image: %v", err)
	}
	return path
}

// callTool sends a tools/call request and returns the response.
func callTool(t *testing.T, s *Server, name string, args interface{}) *MCPResponse {
	t.Helper()

	params, err := json.Marshal(map[string]interface{}{"name": name, "arguments": args})
	if err != nil {
		t.Fatalf("marshal params: %v", err)
	}

	resp := s.handleRequest(&MCPRequest{JSONRPC: "2.0", ID: 1, Method: "tools/call", Params: params})
	if resp == nil {
		t.Fatal("handleRequest returned nil")
	}
	return resp
}

// decodeContent unmarshals the text content of a successful tool response.
func decodeContent(t *testing.T, resp *MCPResponse, v interface{}) {
	t.Helper()

	if resp.Error != nil {
		t.Fatalf("Unexpected error: %+v", resp.Error)
	}
	result := resp.Result.(map[string]interface{})
	content := result["content"].([]map[string]interface{})
	if len(content) != 1 || content[0]["type"] != "text" {
		t.Fatalf("unexpected content: %v", content)
	}
	if err := json.Unmarshal([]byte(content[0]["text"].(string)), v); err != nil {
		t.Fatalf("content is not JSON: %v", err)
	}
}

func TestHandleToolsCall_ImageConvert(t *testing.T) {
	s := newTestServer()
	input := createTestImageFile(t, 20, 10, color.RGBA{255, 0, 0, 255})
	output := filepath.Join(t.TempDir(), "gray.png")

	resp := callTool(t, s, "image_convert", map[string]interface{}{
		"input_path":  input,
		"output_path": output,
		"mode":        "L",
	})

	var info imaging.ImageInfo
	decodeContent(t, resp, &info)
	if info.Mode != "L" {
		t.Errorf("mode: got %s, want L", info.Mode)
	}
	if info.Width != 20 || info.Height != 10 {
		t.Errorf("size: got %dx%d, want 20x10", info.Width, info.Height)
	}
	if info.Path != output {
		t.Errorf("path: got %s, want %s", info.Path, output)
	}
}

func TestHandleToolsCall_ImageConvertDither(t *testing.T) {
	s := newTestServer()
	// Luma 128 is white under a plain threshold.
	input := createTestImageFile(t, 8, 8, color.RGBA{128, 128, 128, 255})
	output := filepath.Join(t.TempDir(), "bits.gif")

	resp := callTool(t, s, "image_convert", map[string]interface{}{
		"input_path":  input,
		"output_path": output,
		"mode":        "1",
		"dither":      "none",
	})
	if resp.Error != nil {
		t.Fatalf("Unexpected error: %+v", resp.Error)
	}

	img, _, err := imaging.LoadImage(output)
	if err != nil {
		t.Fatalf("LoadImage: %v", err)
	}
	for i, idx := range img.(*image.Paletted).Pix {
		if idx != 1 {
			t.Fatalf("pixel %d: got index %d, want 1 (white)", i, idx)
		}
	}
}

func TestHandleToolsCall_ImageConvertErrors(t *testing.T) {
	s := newTestServer()
	input := createTestImageFile(t, 4, 4, color.RGBA{0, 0, 255, 255})
	dir := t.TempDir()

	tests := []struct {
		name string
		args map[string]interface{}
		want string
	}{
		{
			"unsupported mode",
			map[string]interface{}{"input_path": input, "output_path": filepath.Join(dir, "a.png"), "mode": "HSV"},
			"unsupported mode",
		},
		{
			"missing input",
			map[string]interface{}{"input_path": filepath.Join(dir, "missing.png"), "output_path": filepath.Join(dir, "b.png"), "mode": "L"},
			"missing.png",
		},
		{
			"not storable",
			map[string]interface{}{"input_path": input, "output_path": filepath.Join(dir, "c.jpg"), "mode": "CMYK"},
			"cannot store",
		},
		{
			"bad dither",
			map[string]interface{}{"input_path": input, "output_path": filepath.Join(dir, "d.png"), "mode": "P", "dither": "ordered"},
			"unknown dither",
		},
		{
			"missing paths",
			map[string]interface{}{"mode": "L"},
			"required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := callTool(t, s, "image_convert", tt.args)
			if resp.Error == nil {
				t.Fatal("expected error response")
			}
			if resp.Error.Code != codeToolFailed {
				t.Errorf("code: got %d, want %d", resp.Error.Code, codeToolFailed)
			}
			data, _ := resp.Error.Data.(string)
			if !strings.Contains(data, tt.want) {
				t.Errorf("data %q should contain %q", data, tt.want)
			}
		})
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("failed conversions left %d files behind", len(entries))
	}
}

func TestHandleToolsCall_ImageInfo(t *testing.T) {
	s := newTestServer()
	path := createTestImageFile(t, 30, 12, color.RGBA{10, 20, 30, 255})

	var info imaging.ImageInfo
	decodeContent(t, callTool(t, s, "image_info", map[string]interface{}{"path": path}), &info)

	if info.Width != 30 || info.Height != 12 {
		t.Errorf("size: got %dx%d, want 30x12", info.Width, info.Height)
	}
	if info.Format != "png" || info.Mode != "RGB" {
		t.Errorf("got format %s mode %s, want png RGB", info.Format, info.Mode)
	}
}

func TestHandleToolsCall_ImageModes(t *testing.T) {
	s := newTestServer()

	var modes []ModeSummary
	decodeContent(t, callTool(t, s, "image_modes", map[string]interface{}{}), &modes)

	if len(modes) != len(imaging.Modes()) {
		t.Fatalf("got %d modes, want %d", len(modes), len(imaging.Modes()))
	}
	last := modes[len(modes)-1]
	if last.Mode != "CMYK" || len(last.Formats) != 0 {
		t.Errorf("CMYK: got %+v, want no formats", last)
	}
	if modes[0].Mode != "1" || modes[0].Bits != 1 {
		t.Errorf("first mode: got %+v", modes[0])
	}
}

func TestHandleToolsCall_UnknownTool(t *testing.T) {
	resp := callTool(t, newTestServer(), "image_resize", map[string]interface{}{})
	if resp.Error == nil || resp.Error.Code != codeToolFailed {
		t.Fatalf("got %+v, want tool failure", resp.Error)
	}
}

func TestHandleToolsCall_InvalidParams(t *testing.T) {
	s := newTestServer()
	resp := s.handleRequest(&MCPRequest{JSONRPC: "2.0", ID: 1, Method: "tools/call", Params: json.RawMessage(`[1,2]`)})
	if resp.Error == nil || resp.Error.Code != codeInvalidParams {
		t.Fatalf("got %+v, want invalid params", resp.Error)
	}
}

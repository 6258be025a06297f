package server

import (
	"encoding/json"
	"fmt"

	"github.com/ironsheep/imgmode/internal/imaging"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_convert").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, codeInvalidParams, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		s.log.WithError(err).WithField("tool", params.Name).Info("tool failed")
		return s.errorResponse(req.ID, codeToolFailed, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	case "image_convert":
		return s.handleImageConvert(args)
	case "image_info":
		return s.handleImageInfo(args)
	case "image_modes":
		return handleImageModes(), nil
	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// On marshal failure it returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

type imageConvertArgs struct {
	InputPath  string `json:"input_path"`
	OutputPath string `json:"output_path"`
	Mode       string `json:"mode"`
	Dither     string `json:"dither"`
}

func (s *Server) handleImageConvert(args json.RawMessage) (interface{}, error) {
	var a imageConvertArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.InputPath == "" || a.OutputPath == "" {
		return nil, fmt.Errorf("input_path and output_path are required")
	}

	opts := append([]imaging.Option(nil), s.opts...)
	if a.Dither != "" {
		d, err := imaging.ParseDither(a.Dither)
		if err != nil {
			return nil, err
		}
		opts = append(opts, imaging.WithDither(d))
	}

	if err := imaging.Convert(a.InputPath, a.OutputPath, a.Mode, opts...); err != nil {
		return nil, err
	}
	return imaging.Inspect(a.OutputPath)
}

type imageInfoArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleImageInfo(args json.RawMessage) (interface{}, error) {
	var a imageInfoArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.Inspect(a.Path)
}

// ModeSummary describes one pixel mode for the image_modes tool.
type ModeSummary struct {
	Mode     string   `json:"mode"`
	Channels int      `json:"channels"`
	Bits     int      `json:"bits_per_channel"`
	HasAlpha bool     `json:"has_alpha"`
	Formats  []string `json:"formats"`
}

func handleImageModes() []ModeSummary {
	modes := imaging.Modes()
	out := make([]ModeSummary, 0, len(modes))
	for _, m := range modes {
		spec := m.Spec()
		formats := []string{}
		for _, f := range imaging.FormatsFor(m) {
			formats = append(formats, f.Name())
		}
		out = append(out, ModeSummary{
			Mode:     spec.Name,
			Channels: spec.Channels,
			Bits:     spec.Bits,
			HasAlpha: spec.HasAlpha,
			Formats:  formats,
		})
	}
	return out
}

package server

import "github.com/ironsheep/imgmode/internal/imaging"

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	modeNames := make([]string, 0, len(imaging.Modes()))
	for _, m := range imaging.Modes() {
		modeNames = append(modeNames, m.String())
	}

	return []Tool{
		{
			Name:        "image_convert",
			Description: "Convert an image file to another pixel mode and write it to a new file. The output format follows the output file's extension.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"input_path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the source image",
					},
					"output_path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to write; extension selects png, jpeg, gif, tiff or bmp",
					},
					"mode": map[string]interface{}{
						"type":        "string",
						"enum":        modeNames,
						"description": "Target pixel mode",
					},
					"dither": map[string]interface{}{
						"type":        "string",
						"enum":        []string{imaging.DitherFloydSteinberg.String(), imaging.DitherNone.String()},
						"description": "Dithering for modes 1 and P. Defaults to the server setting",
					},
				},
				"required": []string{"input_path", "output_path", "mode"},
			},
		},
		{
			Name:        "image_info",
			Description: "Get the dimensions, detected format and pixel mode of an image file.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_modes",
			Description: "List the supported pixel modes and the output formats that can store each one.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},
	}
}

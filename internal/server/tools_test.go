package server

import (
	"testing"

	"github.com/ironsheep/imgmode/internal/imaging"
)

func TestGetToolDefinitions(t *testing.T) {
	tools := GetToolDefinitions()

	expected := []string{"image_convert", "image_info", "image_modes"}
	if len(tools) != len(expected) {
		t.Fatalf("got %d tools, want %d", len(tools), len(expected))
	}
	for i, name := range expected {
		if tools[i].Name != name {
			t.Errorf("tool %d: got %s, want %s", i, tools[i].Name, name)
		}
	}
}

func TestToolDefinitions_Structure(t *testing.T) {
	for _, tool := range GetToolDefinitions() {
		t.Run(tool.Name, func(t *testing.T) {
			if tool.Description == "" {
				t.Error("Tool description is empty")
			}
			if tool.InputSchema["type"] != "object" {
				t.Errorf("InputSchema type: got %v, want 'object'", tool.InputSchema["type"])
			}
			props, ok := tool.InputSchema["properties"].(map[string]interface{})
			if !ok {
				t.Fatal("InputSchema missing properties")
			}

			required, _ := tool.InputSchema["required"].([]string)
			for _, name := range required {
				if _, ok := props[name]; !ok {
					t.Errorf("required property %s is not defined", name)
				}
			}
		})
	}
}

func TestToolDefinitions_ModeEnum(t *testing.T) {
	convert := GetToolDefinitions()[0]
	props := convert.InputSchema["properties"].(map[string]interface{})
	enum := props["mode"].(map[string]interface{})["enum"].([]string)

	if len(enum) != len(imaging.Modes()) {
		t.Fatalf("mode enum: got %v", enum)
	}
	for _, name := range enum {
		if _, err := imaging.ParseMode(name); err != nil {
			t.Errorf("enum value %q does not parse: %v", name, err)
		}
	}
}

package main

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/example/go-llm-host/internal/llm"
)

func TestRenderSessionConfig(t *testing.T) {
	sess, err := llm.NewSessionConfig().
		ModulePath("model.pte").
		TokenizerPath("tokenizer.model").
		ModelKind(llm.ModelKindTextVision).
		Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	out, err := renderSessionConfig(sess)
	if err != nil {
		t.Fatalf("renderSessionConfig: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, out)
	}

	if decoded["ModulePath"] != "model.pte" {
		t.Errorf("ModulePath = %v", decoded["ModulePath"])
	}
	if decoded["ModelKindName"] != "multimodal" {
		t.Errorf("ModelKindName = %v, want multimodal", decoded["ModelKindName"])
	}
	if !strings.Contains(out, "\"Temperature\": 0.8") {
		t.Errorf("default temperature missing from output:\n%s", out)
	}
}

// Package encoder verifies the ONNX graphs that back a multimodal model's
// vision and audio encoders. It does not run them; the host only needs to
// know the graphs load against the installed ONNX Runtime before handing
// them to the native session.
package encoder

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Modality tags an encoder graph with the input it handles.
type Modality string

const (
	ModalityVision Modality = "vision"
	ModalityAudio  Modality = "audio"
)

// Graph describes one encoder graph from the manifest, with its file path
// resolved relative to the manifest location.
type Graph struct {
	Name     string   `json:"name"`
	Filename string   `json:"filename"`
	Modality Modality `json:"modality"`

	Path string `json:"-"`
}

type manifestFile struct {
	Graphs []Graph `json:"graphs"`
}

// LoadManifest reads and validates an encoder graph manifest.
func LoadManifest(manifestPath string) ([]Graph, error) {
	if manifestPath == "" {
		return nil, errors.New("manifest path is required")
	}

	data, err := os.ReadFile(manifestPath)
	if err != nil {
		return nil, fmt.Errorf("read encoder manifest: %w", err)
	}

	var manifest manifestFile
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("decode encoder manifest: %w", err)
	}

	if len(manifest.Graphs) == 0 {
		return nil, errors.New("encoder manifest has no graphs")
	}

	baseDir := filepath.Dir(manifestPath)
	seen := make(map[string]bool, len(manifest.Graphs))
	graphs := make([]Graph, 0, len(manifest.Graphs))

	for _, g := range manifest.Graphs {
		if g.Name == "" {
			return nil, errors.New("manifest graph has empty name")
		}

		if g.Filename == "" {
			return nil, fmt.Errorf("manifest graph %q has empty filename", g.Name)
		}

		switch g.Modality {
		case ModalityVision, ModalityAudio:
		default:
			return nil, fmt.Errorf("manifest graph %q has unknown modality %q", g.Name, g.Modality)
		}

		if seen[g.Name] {
			return nil, fmt.Errorf("duplicate graph name %q in manifest", g.Name)
		}

		seen[g.Name] = true

		path := g.Filename
		if !filepath.IsAbs(path) {
			path = filepath.Join(baseDir, g.Filename)
		}

		g.Path = filepath.Clean(path)
		if _, err := os.Stat(g.Path); err != nil {
			return nil, fmt.Errorf("graph file for %q: %w", g.Name, err)
		}

		graphs = append(graphs, g)
	}

	return graphs, nil
}

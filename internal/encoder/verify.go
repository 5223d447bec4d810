package encoder

import (
	"errors"
	"fmt"
	"io"
	"strings"

	ort "github.com/shota3506/onnxruntime-purego/onnxruntime"
)

// VerifyOptions controls which encoder graphs are smoke-loaded.
type VerifyOptions struct {
	ManifestPath  string
	ORTLibrary    string
	ORTAPIVersion uint32

	// Vision and Audio mirror the session config's encoder toggles; graphs
	// for a disabled modality are skipped.
	Vision bool
	Audio  bool

	Stdout io.Writer
	Stderr io.Writer
}

var loadNativeGraph = loadNativeGraphImpl

// Verify smoke-loads every enabled encoder graph against the ONNX Runtime
// library and reports PASS/FAIL per graph.
func Verify(opts VerifyOptions) error {
	if opts.ManifestPath == "" {
		return errors.New("manifest path is required")
	}

	if opts.ORTAPIVersion == 0 {
		opts.ORTAPIVersion = 23
	}

	if opts.Stdout == nil {
		opts.Stdout = io.Discard
	}

	if opts.Stderr == nil {
		opts.Stderr = io.Discard
	}

	graphs, err := LoadManifest(opts.ManifestPath)
	if err != nil {
		return fmt.Errorf("load encoder graphs: %w", err)
	}

	var failures []string

	for _, g := range graphs {
		if g.Modality == ModalityVision && !opts.Vision {
			_, _ = fmt.Fprintf(opts.Stdout, "SKIP %s (vision encoder disabled)\n", g.Name)
			continue
		}

		if g.Modality == ModalityAudio && !opts.Audio {
			_, _ = fmt.Fprintf(opts.Stdout, "SKIP %s (audio encoder disabled)\n", g.Name)
			continue
		}

		err := loadNativeGraph(opts.ORTLibrary, opts.ORTAPIVersion, g)
		if err != nil {
			_, _ = fmt.Fprintf(opts.Stderr, "FAIL %s: %v\n", g.Name, err)
			failures = append(failures, g.Name)

			continue
		}

		_, _ = fmt.Fprintf(opts.Stdout, "PASS %s\n", g.Name)
	}

	if len(failures) > 0 {
		return fmt.Errorf("verify failed for %d graph(s): %s", len(failures), strings.Join(failures, ", "))
	}

	return nil
}

func loadNativeGraphImpl(libPath string, apiVersion uint32, g Graph) error {
	runtime, err := ort.NewRuntime(libPath, apiVersion)
	if err != nil {
		return fmt.Errorf("initialize ONNX Runtime (lib=%q api=%d): %w", libPath, apiVersion, err)
	}

	defer func() { _ = runtime.Close() }()

	env, err := runtime.NewEnv("llmhost-encoder-verify", ort.LoggingLevelWarning)
	if err != nil {
		return fmt.Errorf("create ONNX Runtime env: %w", err)
	}
	defer env.Close()

	session, err := runtime.NewSession(env, g.Path, nil)
	if err != nil {
		return fmt.Errorf("load encoder graph %q (%s): %w", g.Name, g.Path, err)
	}

	session.Close()

	return nil
}

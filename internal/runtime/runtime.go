// Package runtime locates and bootstraps the native model-execution library.
// The execution engine itself stays behind the Engine boundary; this package
// only resolves where it lives and prepares process-wide state.
package runtime

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sync"
	"sync/atomic"

	"github.com/example/go-llm-host/internal/config"
)

type Info struct {
	LibraryPath string
	Version     string
	Initialized bool
}

var versionPattern = regexp.MustCompile(`([0-9]+\.[0-9]+\.[0-9]+)`)

var (
	bootstrapOnce sync.Once
	bootstrapInfo Info
	errBootstrap  error
	shutdownFlag  atomic.Bool
)

// Bootstrap resolves the runtime library exactly once per process and keeps
// the result for later native bindings.
func Bootstrap(cfg config.RuntimeConfig) (Info, error) {
	bootstrapOnce.Do(func() {
		info, err := Detect(cfg)
		if err != nil {
			errBootstrap = err
			return
		}

		// Keep this process-local marker for the native session bindings.
		err = os.Setenv("LLMHOST_RUNTIME_LIB", info.LibraryPath)
		if err != nil {
			errBootstrap = fmt.Errorf("set LLMHOST_RUNTIME_LIB: %w", err)
			return
		}

		bootstrapInfo = info
		bootstrapInfo.Initialized = true
	})

	if errBootstrap != nil {
		return Info{}, errBootstrap
	}

	return bootstrapInfo, nil
}

// Shutdown tears down process-wide runtime state. Safe to call repeatedly
// and before Bootstrap.
func Shutdown() error {
	if !bootstrapInfo.Initialized {
		return nil
	}

	if shutdownFlag.Swap(true) {
		return nil
	}

	bootstrapInfo.Initialized = false

	return nil
}

// Detect resolves the runtime library path from config, environment and
// well-known locations, and infers the library version.
func Detect(cfg config.RuntimeConfig) (Info, error) {
	path := cfg.LibraryPath
	if path == "" {
		path = os.Getenv("LLMHOST_RUNTIME_LIB")
	}

	if path == "" {
		path = os.Getenv("LLM_RUNTIME_LIBRARY_PATH")
	}

	if path == "" {
		candidates := []string{
			"/usr/lib/libllmrt.so",
			"/usr/local/lib/libllmrt.so",
			"/opt/homebrew/lib/libllmrt.dylib",
			"C:/llmrt/lib/llmrt.dll",
		}
		for _, c := range candidates {
			_, err := os.Stat(c)
			if err == nil {
				path = c
				break
			}
		}
	}

	if path == "" {
		return Info{LibraryPath: "not found", Version: "unknown"}, errors.New("unable to detect native runtime library path")
	}

	_, err := os.Stat(path)
	if err != nil {
		return Info{LibraryPath: path, Version: "unknown"}, fmt.Errorf("runtime library path check failed: %w", err)
	}

	version := cfg.Version
	if version == "" {
		version = os.Getenv("LLM_RUNTIME_VERSION")
	}

	if version == "" {
		version = inferVersionFromPath(path)
	}

	if version == "" {
		version = "unknown"
	}

	return Info{LibraryPath: path, Version: version}, nil
}

func inferVersionFromPath(path string) string {
	name := filepath.Base(path)
	if m := versionPattern.FindStringSubmatch(name); len(m) == 2 {
		return m[1]
	}

	return ""
}

// Package doctor provides environment preflight checks for llmhost.
package doctor

import (
	"fmt"
	"io"
	"os"
)

// PassMark and FailMark are the prefix symbols printed for each check result.
const (
	PassMark = "✓"
	FailMark = "✗"
)

// DetectFunc resolves the native runtime library and returns a description
// (path and version) or an error if it cannot be found.
type DetectFunc func() (string, error)

// AudioProbeFunc decodes an audio sample file and returns its sample count.
type AudioProbeFunc func(path string) (int, error)

// Config holds the artifact paths and injectable dependencies for each check.
type Config struct {
	// ModulePath is the compiled model module to verify on disk.
	ModulePath string
	// TokenizerPath is the tokenizer artifact to verify on disk.
	TokenizerPath string
	// DataPath is an optional supplementary data path; empty means none.
	DataPath string
	// DetectRuntime resolves the native runtime library.
	DetectRuntime DetectFunc
	// SkipRuntime skips the runtime library check.
	SkipRuntime bool
	// AudioSamplePath is an optional audio file to validate against the
	// audio encoder's expected input format; empty means none.
	AudioSamplePath string
	// ProbeAudio decodes AudioSamplePath.
	ProbeAudio AudioProbeFunc
}

// Result collects the outcome of all checks.
type Result struct {
	failures []string
}

// Failed returns true if any check failed.
func (r *Result) Failed() bool { return len(r.failures) > 0 }

// Failures returns the list of failure messages.
func (r *Result) Failures() []string { return append([]string(nil), r.failures...) }

func (r *Result) fail(msg string) { r.failures = append(r.failures, msg) }

// Run executes all configured checks and writes human-readable output to w.
// Each check line is prefixed with PassMark or FailMark.
func Run(cfg Config, w io.Writer) Result {
	var res Result

	// ---- model module -----------------------------------------------------
	checkArtifact(&res, w, "model module", cfg.ModulePath)

	// ---- tokenizer artifact -----------------------------------------------
	checkArtifact(&res, w, "tokenizer artifact", cfg.TokenizerPath)

	// ---- native runtime library -------------------------------------------
	if cfg.SkipRuntime {
		fmt.Fprintf(w, "%s runtime library: skipped\n", PassMark)
	} else if cfg.DetectRuntime == nil {
		res.fail("runtime library: no detector configured")
		fmt.Fprintf(w, "%s runtime library: no detector configured\n", FailMark)
	} else if desc, err := cfg.DetectRuntime(); err != nil {
		res.fail(fmt.Sprintf("runtime library: %v", err))
		fmt.Fprintf(w, "%s runtime library: not found (%v)\n", FailMark, err)
	} else {
		fmt.Fprintf(w, "%s runtime library: %s\n", PassMark, desc)
	}

	// ---- data path (optional) ----------------------------------------------
	if cfg.DataPath != "" {
		if _, err := os.Stat(cfg.DataPath); err != nil {
			res.fail(fmt.Sprintf("data path %q: %v", cfg.DataPath, err))
			fmt.Fprintf(w, "%s data path %s: not found\n", FailMark, cfg.DataPath)
		} else {
			fmt.Fprintf(w, "%s data path: %s\n", PassMark, cfg.DataPath)
		}
	}

	// ---- audio sample (optional) --------------------------------------------
	if cfg.AudioSamplePath != "" {
		if cfg.ProbeAudio == nil {
			res.fail("audio sample: no probe configured")
			fmt.Fprintf(w, "%s audio sample: no probe configured\n", FailMark)
		} else if n, err := cfg.ProbeAudio(cfg.AudioSamplePath); err != nil {
			res.fail(fmt.Sprintf("audio sample %q: %v", cfg.AudioSamplePath, err))
			fmt.Fprintf(w, "%s audio sample %s: %v\n", FailMark, cfg.AudioSamplePath, err)
		} else {
			fmt.Fprintf(w, "%s audio sample: %s (%d samples)\n", PassMark, cfg.AudioSamplePath, n)
		}
	}

	return res
}

// checkArtifact verifies that path names an existing regular file.
func checkArtifact(res *Result, w io.Writer, label, path string) {
	if path == "" {
		res.fail(fmt.Sprintf("%s: no path configured", label))
		fmt.Fprintf(w, "%s %s: no path configured\n", FailMark, label)

		return
	}

	info, err := os.Stat(path)
	if err != nil {
		res.fail(fmt.Sprintf("%s %q: %v", label, path, err))
		fmt.Fprintf(w, "%s %s %s: not found\n", FailMark, label, path)

		return
	}

	if !info.Mode().IsRegular() {
		res.fail(fmt.Sprintf("%s %q: not a regular file", label, path))
		fmt.Fprintf(w, "%s %s %s: not a regular file\n", FailMark, label, path)

		return
	}

	fmt.Fprintf(w, "%s %s: %s\n", PassMark, label, path)
}

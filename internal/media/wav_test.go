package media

import (
	"bytes"
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// makeWAV builds a minimal valid WAV file from parameters for testing.
func makeWAV(sampleRate uint32, numChannels uint16, bitDepth uint16, numSamples int) []byte {
	blockAlign := numChannels * bitDepth / 8
	byteRate := sampleRate * uint32(blockAlign)
	dataSize := uint32(numSamples) * uint32(blockAlign)
	riffSize := 4 + (8 + 16) + (8 + dataSize)

	buf := &bytes.Buffer{}
	buf.WriteString("RIFF")
	_ = binary.Write(buf, binary.LittleEndian, uint32(riffSize))
	buf.WriteString("WAVE")

	// fmt chunk
	buf.WriteString("fmt ")
	_ = binary.Write(buf, binary.LittleEndian, uint32(16)) // chunk size
	_ = binary.Write(buf, binary.LittleEndian, uint16(1))  // PCM
	_ = binary.Write(buf, binary.LittleEndian, numChannels)
	_ = binary.Write(buf, binary.LittleEndian, sampleRate)
	_ = binary.Write(buf, binary.LittleEndian, byteRate)
	_ = binary.Write(buf, binary.LittleEndian, blockAlign)
	_ = binary.Write(buf, binary.LittleEndian, bitDepth)

	// data chunk
	buf.WriteString("data")
	_ = binary.Write(buf, binary.LittleEndian, dataSize)
	for range numSamples {
		_ = binary.Write(buf, binary.LittleEndian, int16(0))
	}

	return buf.Bytes()
}

func TestDecodeWAV(t *testing.T) {
	t.Run("decodes valid 16kHz mono 16-bit WAV", func(t *testing.T) {
		data := makeWAV(16000, 1, 16, 160)
		samples, err := DecodeWAV(data)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(samples) != 160 {
			t.Errorf("got %d samples, want 160", len(samples))
		}
	})

	t.Run("rejects wrong sample rate", func(t *testing.T) {
		data := makeWAV(44100, 1, 16, 10)
		_, err := DecodeWAV(data)
		if err == nil {
			t.Fatal("expected error for wrong sample rate")
		}
		if !errors.Is(err, ErrFormatMismatch) {
			t.Errorf("expected ErrFormatMismatch, got %v", err)
		}
	})

	t.Run("rejects stereo", func(t *testing.T) {
		data := makeWAV(16000, 2, 16, 10)
		_, err := DecodeWAV(data)
		if err == nil {
			t.Fatal("expected error for stereo")
		}
		if !errors.Is(err, ErrFormatMismatch) {
			t.Errorf("expected ErrFormatMismatch, got %v", err)
		}
	})

	t.Run("rejects wrong bit depth", func(t *testing.T) {
		data := makeWAV(16000, 1, 8, 10)
		_, err := DecodeWAV(data)
		if !errors.Is(err, ErrFormatMismatch) {
			t.Errorf("expected ErrFormatMismatch, got %v", err)
		}
	})

	t.Run("rejects invalid WAV data", func(t *testing.T) {
		_, err := DecodeWAV([]byte("not a wav file"))
		if err == nil {
			t.Fatal("expected error for invalid WAV")
		}
	})

	t.Run("rejects empty input", func(t *testing.T) {
		_, err := DecodeWAV(nil)
		if err == nil {
			t.Fatal("expected error for nil input")
		}
	})
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	samples := make([]float32, 320)
	for i := range samples {
		samples[i] = float32(i%100) / 100
	}

	data, err := EncodeWAV(samples)
	if err != nil {
		t.Fatalf("EncodeWAV: %v", err)
	}

	if len(data) < 44 {
		t.Fatalf("WAV too short: %d bytes", len(data))
	}

	decoded, err := DecodeWAV(data)
	if err != nil {
		t.Fatalf("DecodeWAV: %v", err)
	}

	if len(decoded) != len(samples) {
		t.Errorf("round trip length = %d; want %d", len(decoded), len(samples))
	}
}

func TestLoadWAV(t *testing.T) {
	t.Run("loads file from disk", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "sample.wav")

		err := os.WriteFile(path, makeWAV(16000, 1, 16, 80), 0o644)
		if err != nil {
			t.Fatalf("WriteFile: %v", err)
		}

		samples, err := LoadWAV(path)
		if err != nil {
			t.Fatalf("LoadWAV: %v", err)
		}

		if len(samples) != 80 {
			t.Errorf("got %d samples, want 80", len(samples))
		}
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadWAV("/nonexistent/sample.wav")
		if err == nil {
			t.Fatal("expected error for missing file")
		}
	})
}

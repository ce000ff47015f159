package dispatch

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// ErrMissingFile is returned when the base env-override file is absent.
var ErrMissingFile = errors.New("required file not found")

// PlainText is the only override type this tool emits.
const PlainText = "PLAINTEXT"

// EnvOverride is one CodeBuild environment variable override.
type EnvOverride struct {
	Name  string `json:"name"`
	Value string `json:"value"`
	Type  string `json:"type"`
}

// plain builds a PLAINTEXT override.
func plain(name, value string) EnvOverride {
	return EnvOverride{Name: name, Value: value, Type: PlainText}
}

// LoadEnvOverrides reads the base env-override file written by the image
// builder. A missing file yields an error wrapping ErrMissingFile.
func LoadEnvOverrides(path string) ([]EnvOverride, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s is required to set test environment variables for test jobs", ErrMissingFile, path)
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var overrides []EnvOverride
	if err := json.Unmarshal(data, &overrides); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return overrides, nil
}

// WriteEnvOverrides replaces the file at path with overrides.
func WriteEnvOverrides(path string, overrides []EnvOverride) error {
	data, err := json.MarshalIndent(overrides, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// TestImages is one entry of the test-type image map.
type TestImages struct {
	TestType string
	Images   []string
}

// LoadTestImages reads the test-type image map, keeping the file's key order
// so jobs are started in the order the image builder listed them. A repeated
// key keeps its first position and takes its last value.
func LoadTestImages(path string) ([]TestImages, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening test type images: %w", err)
	}
	defer f.Close()

	dec := json.NewDecoder(f)
	if err := expectDelim(dec, '{'); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	var entries []TestImages
	index := make(map[string]int)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("parsing %s: unexpected key %v", path, tok)
		}

		var images []string
		if err := dec.Decode(&images); err != nil {
			return nil, fmt.Errorf("parsing %s: images for %q: %w", path, key, err)
		}
		if i, ok := index[key]; ok {
			entries[i].Images = images
			continue
		}
		index[key] = len(entries)
		entries = append(entries, TestImages{TestType: key, Images: images})
	}

	if err := expectDelim(dec, '}'); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return entries, nil
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != want {
		return fmt.Errorf("expected %q, got %v", want, tok)
	}
	return nil
}

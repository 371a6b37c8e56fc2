// Package transcript produces hypothesis transcripts from audio using hosted
// speech-to-text services and reads them back for scoring.
package transcript

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// Result is one service's transcription of one audio file. It is saved as
// <audio>.<service>.json next to the audio.
type Result struct {
	Service  string `json:"service"`
	Version  string `json:"version"`
	FullText string `json:"text"`
	Duration int64  `json:"milliseconds"`
	Date     string `json:"date"`
	Raw      []byte `json:"raw"`
}

type Client interface {
	Run(ctx context.Context, audio []byte) (*Result, error)
}

// Options shared by every service
type Options struct {
	Language    string // BCP-47, e.g. en-US
	SampleRate  int    // Hz
	Encoding    string // GCP encoding name, e.g. LINEAR16
	MediaFormat string // AWS media format, e.g. wav
}

// Fields describes the keys accepted by Extract
var Fields = map[string]string{
	"service":      "Extracts the provider service",
	"version":      "Extracts the version",
	"text":         "Extracts full text",
	"milliseconds": "Extracts duration in milliseconds",
	"date":         "Extracts the date",
	"raw":          "Extracts the raw provider response",
}

// FieldNames returns the keys of Fields in a stable order
func FieldNames() []string {
	names := make([]string, 0, len(Fields))
	for k := range Fields {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Extract returns a single field of result as text
func Extract(result *Result, key string) (string, error) {
	switch key {
	case "service":
		return result.Service, nil
	case "version":
		return result.Version, nil
	case "text":
		return result.FullText, nil
	case "milliseconds":
		return fmt.Sprintf("%d", result.Duration), nil
	case "date":
		return result.Date, nil
	case "raw":
		return string(result.Raw), nil
	}
	return "", fmt.Errorf("Extract: %v not in struct transcript.Result", key)
}

// Load reads a saved Result
func Load(filename string) (*Result, error) {
	buf, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	var result Result
	if err := json.Unmarshal(buf, &result); err != nil {
		return nil, fmt.Errorf("%v: %w", filepath.Base(filename), err)
	}
	return &result, nil
}

// Save writes result to dst as json
func Save(result *Result, dst string) error {
	encoded, err := json.Marshal(result)
	if err != nil {
		return err
	}
	return os.WriteFile(dst, encoded, 0600)
}

// ReadText returns the transcript held in filename. A .json file is read as
// a Result; anything else is taken as plain text.
func ReadText(filename string) (string, error) {
	if strings.EqualFold(filepath.Ext(filename), ".json") {
		result, err := Load(filename)
		if err != nil {
			return "", err
		}
		return result.FullText, nil
	}
	buf, err := os.ReadFile(filename)
	if err != nil {
		return "", err
	}
	return string(buf), nil
}

func fmtTime(t time.Time) string {
	return t.Format("2006-01-02 15:04:05 MST")
}

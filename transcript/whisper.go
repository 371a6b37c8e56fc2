package transcript

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path"
	"strings"
	"time"
)

const defaultWhisperEndpoint = "https://api.openai.com"

type whisperCredentials struct {
	Key      string `json:"api_key"`
	Endpoint string `json:"endpoint"`
}

type whisperResponse struct {
	Text string `json:"text"`
}

// WhisperClient talks to the OpenAI audio transcription API or any server
// exposing the same /v1/audio/transcriptions endpoint.
type WhisperClient struct {
	CredentialsPath string
	Model           string
	Endpoint        string // Overrides the endpoint in openai.json
	Options
}

// Method required by transcript.Client
// Returns Whisper transcription Result
// Reference: https://platform.openai.com/docs/api-reference/audio/createTranscription
func (c WhisperClient) Run(ctx context.Context, audio []byte) (*Result, error) {
	const (
		service     = "Whisper"
		keyName     = "openai.json"
		uriPath     = "/v1/audio/transcriptions"
		httpTimeout = time.Minute * 5
	)

	credentialsFile := path.Join(c.CredentialsPath, keyName)
	f, err := os.ReadFile(credentialsFile)
	if err != nil {
		return nil, err
	}
	credentials := &whisperCredentials{}
	if err := json.Unmarshal(f, credentials); err != nil {
		return nil, err
	}
	if credentials.Key == "" {
		return nil, fmt.Errorf("No 'api_key' in %s", credentialsFile)
	}
	endpoint := firstNonEmpty(c.Endpoint, credentials.Endpoint, defaultWhisperEndpoint)
	model := firstNonEmpty(c.Model, "whisper-1")

	body, contentType, err := c.multipartAudio(audio, model)
	if err != nil {
		return nil, err
	}

	client := &http.Client{Timeout: httpTimeout}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, strings.TrimSuffix(endpoint, "/")+uriPath, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+credentials.Key)

	start := time.Now()
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	milli := int64(time.Since(start) / time.Millisecond)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("Whisper status %d: %s", resp.StatusCode, truncate(raw, 512))
	}

	var response whisperResponse
	if err := json.Unmarshal(raw, &response); err != nil {
		return nil, err
	}

	return &Result{
		Service:  service,
		Version:  model,
		FullText: strings.TrimSpace(response.Text),
		Duration: milli,
		Date:     fmtTime(start.UTC()),
		Raw:      raw,
	}, nil
}

func (c WhisperClient) multipartAudio(audio []byte, model string) (*bytes.Buffer, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	ext := firstNonEmpty(c.MediaFormat, "wav")
	part, err := w.CreateFormFile("file", "audio."+ext)
	if err != nil {
		return nil, "", err
	}
	if _, err := part.Write(audio); err != nil {
		return nil, "", err
	}
	fields := map[string]string{
		"model":           model,
		"response_format": "json",
	}
	// Whisper wants ISO-639-1, so en-US becomes en
	if lang, _, _ := strings.Cut(c.Language, "-"); lang != "" {
		fields["language"] = strings.ToLower(lang)
	}
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			return nil, "", err
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

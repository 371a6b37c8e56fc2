package transcript

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"strings"
	"time"
)

type azureClientCredentials struct {
	Key      string `json:"subscription_key"`
	Endpoint string `json:"endpoint"`
}

type azureSpeechResponse struct {
	RecognitionStatus string `json:"RecognitionStatus"`
	DisplayText       string `json:"DisplayText"`
	Offset            int64  `json:"Offset"`
	Duration          int64  `json:"Duration"`
}

type AzureClient struct {
	CredentialsPath string
	Options
}

// Method required by transcript.Client
// Returns Azure short audio speech-to-text Result. Audio must be WAV.
// Reference: https://learn.microsoft.com/azure/ai-services/speech-service/rest-speech-to-text-short
func (c AzureClient) Run(ctx context.Context, audio []byte) (*Result, error) {
	const (
		service     = "Azure"
		version     = "v1"
		keyName     = "azure.json"
		uriPath     = "speech/recognition/conversation/cognitiveservices/v1"
		httpTimeout = time.Second * 60
	)

	credentialsFile := path.Join(c.CredentialsPath, keyName)
	f, err := os.ReadFile(credentialsFile)
	if err != nil {
		return nil, err
	}
	credentials := &azureClientCredentials{}
	if err := json.Unmarshal(f, credentials); err != nil {
		return nil, err
	}
	if credentials.Endpoint == "" || credentials.Key == "" {
		return nil, fmt.Errorf("No 'subscription_key' or 'endpoint' in %s", credentialsFile)
	}

	params := url.Values{}
	params.Set("language", c.Language)
	params.Set("format", "simple")
	uri := strings.TrimSuffix(credentials.Endpoint, "/") + "/" + uriPath + "?" + params.Encode()

	client := &http.Client{Timeout: httpTimeout}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, uri, bytes.NewReader(audio))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", fmt.Sprintf("audio/wav; codecs=audio/pcm; samplerate=%d", c.SampleRate))
	req.Header.Set("Ocp-Apim-Subscription-Key", credentials.Key)
	req.Header.Set("Accept", "application/json")

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
		return nil, fmt.Errorf("Azure status %d: %s", resp.StatusCode, truncate(raw, 512))
	}

	fullText, err := azureText(raw)
	if err != nil {
		return nil, err
	}

	return &Result{
		Service:  service,
		Version:  version,
		FullText: fullText,
		Duration: milli,
		Date:     fmtTime(start.UTC()),
		Raw:      raw,
	}, nil
}

func azureText(raw []byte) (string, error) {
	var response azureSpeechResponse
	if err := json.Unmarshal(raw, &response); err != nil {
		return "", err
	}
	switch response.RecognitionStatus {
	case "Success":
		return response.DisplayText, nil
	case "NoMatch", "InitialSilenceTimeout":
		return "", nil // Silence is a valid, empty transcript
	default:
		return "", fmt.Errorf("Azure recognition status: %v", response.RecognitionStatus)
	}
}

func truncate(b []byte, n int) string {
	if len(b) > n {
		b = b[:n]
	}
	return string(b)
}

package transcript

import (
	"context"
	"encoding/json"
	"fmt"
	"path"
	"strings"
	"time"

	speech "cloud.google.com/go/speech/apiv1"
	"google.golang.org/api/option"
	speechpb "google.golang.org/genproto/googleapis/cloud/speech/v1"
)

type GCPClient struct {
	CredentialsPath string
	Options
}

// Method required by transcript.Client
// Returns GCP speech recognition Result. Synchronous recognition only
// accepts about one minute of audio.
// Reference: https://cloud.google.com/speech-to-text/docs/sync-recognize
func (c GCPClient) Run(ctx context.Context, audio []byte) (*Result, error) {
	const (
		service = "GCP"
		version = "v1"
		keyName = "gcp.json"
	)

	encoding, err := gcpEncoding(c.Encoding)
	if err != nil {
		return nil, err
	}

	credentialsFile := path.Join(c.CredentialsPath, keyName)
	client, err := speech.NewClient(ctx, option.WithCredentialsFile(credentialsFile))
	if err != nil {
		return nil, err
	}
	defer client.Close()

	req := &speechpb.RecognizeRequest{
		Config: &speechpb.RecognitionConfig{
			Encoding:        encoding,
			SampleRateHertz: int32(c.SampleRate),
			LanguageCode:    c.Language,
		},
		Audio: &speechpb.RecognitionAudio{
			AudioSource: &speechpb.RecognitionAudio_Content{Content: audio},
		},
	}

	start := time.Now()
	response, err := client.Recognize(ctx, req)
	milli := int64(time.Since(start) / time.Millisecond)
	if err != nil {
		return nil, err
	}

	encoded, err := json.Marshal(response)
	return &Result{
		Service:  service,
		Version:  version,
		FullText: gcpText(response),
		Duration: milli,
		Date:     fmtTime(start.UTC()),
		Raw:      encoded,
	}, err
}

func gcpEncoding(name string) (speechpb.RecognitionConfig_AudioEncoding, error) {
	if name == "" {
		return speechpb.RecognitionConfig_LINEAR16, nil
	}
	v, ok := speechpb.RecognitionConfig_AudioEncoding_value[strings.ToUpper(name)]
	if !ok {
		return 0, fmt.Errorf("Unknown GCP audio encoding: %v", name)
	}
	return speechpb.RecognitionConfig_AudioEncoding(v), nil
}

// Joins the most likely alternative of each consecutive result
func gcpText(response *speechpb.RecognizeResponse) string {
	if response == nil {
		return ""
	}
	parts := make([]string, 0, len(response.Results))
	for _, r := range response.Results {
		if len(r.Alternatives) == 0 {
			continue
		}
		if t := strings.TrimSpace(r.Alternatives[0].Transcript); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, " ")
}

package transcript

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/aws/aws-sdk-go/service/transcribeservice"
	"github.com/google/uuid"
)

type awsTranscript struct {
	JobName string `json:"jobName"`
	Status  string `json:"status"`
	Results struct {
		Transcripts []struct {
			Transcript string `json:"transcript"`
		} `json:"transcripts"`
	} `json:"results"`
}

// AWSClient runs an Amazon Transcribe batch job. Transcribe only reads media
// from S3, so the audio is uploaded to Bucket first.
type AWSClient struct {
	CredentialsPath string
	Region          string
	Bucket          string
	PollInterval    time.Duration
	Options
}

// Method required by transcript.Client
// Returns AWS Transcribe Result
// Reference: https://docs.aws.amazon.com/transcribe/
func (c AWSClient) Run(ctx context.Context, audio []byte) (*Result, error) {
	const (
		service    = "AWS"
		version    = "2017-10-26"
		keyName    = "credentials"
		configName = "config"
	)
	if c.Bucket == "" {
		return nil, fmt.Errorf("No S3 bucket configured for AWS Transcribe")
	}

	credentialsFile := path.Join(c.CredentialsPath, keyName)
	configFile := path.Join(c.CredentialsPath, configName)

	config := aws.Config{
		MaxRetries: aws.Int(3),
	}
	if c.Region != "" {
		config.Region = aws.String(c.Region)
	}
	s, err := session.NewSessionWithOptions(
		session.Options{
			Config:            config,
			SharedConfigFiles: []string{credentialsFile, configFile},
			SharedConfigState: session.SharedConfigEnable,
		},
	)
	if err != nil {
		return nil, err
	}

	format := firstNonEmpty(c.MediaFormat, "wav")
	jobName := "tigerscore-" + uuid.NewString()
	key := jobName + "." + format
	uploader := s3manager.NewUploader(s)
	if _, err := uploader.UploadWithContext(ctx, &s3manager.UploadInput{
		Bucket: aws.String(c.Bucket),
		Key:    aws.String(key),
		Body:   bytes.NewReader(audio),
	}); err != nil {
		return nil, fmt.Errorf("Upload s3://%s/%s: %w", c.Bucket, key, err)
	}

	client := transcribeservice.New(s)
	input := &transcribeservice.StartTranscriptionJobInput{
		TranscriptionJobName: aws.String(jobName),
		LanguageCode:         aws.String(c.Language),
		MediaFormat:          aws.String(format),
		Media: &transcribeservice.Media{
			MediaFileUri: aws.String(fmt.Sprintf("s3://%s/%s", c.Bucket, key)),
		},
	}
	if c.SampleRate > 0 {
		input.MediaSampleRateHertz = aws.Int64(int64(c.SampleRate))
	}

	start := time.Now()
	if _, err := client.StartTranscriptionJobWithContext(ctx, input); err != nil {
		return nil, err
	}
	job, err := c.wait(ctx, client, jobName)
	milli := int64(time.Since(start) / time.Millisecond)
	if err != nil {
		return nil, err
	}
	if job.Transcript == nil {
		return nil, fmt.Errorf("Transcription job %s has no transcript", jobName)
	}

	raw, err := download(ctx, aws.StringValue(job.Transcript.TranscriptFileUri))
	if err != nil {
		return nil, err
	}
	fullText, err := awsText(raw)
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

// Polls until the job leaves the queued and in progress states
func (c AWSClient) wait(ctx context.Context, client *transcribeservice.TranscribeService, jobName string) (*transcribeservice.TranscriptionJob, error) {
	interval := c.PollInterval
	if interval <= 0 {
		interval = 5 * time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		out, err := client.GetTranscriptionJobWithContext(ctx, &transcribeservice.GetTranscriptionJobInput{
			TranscriptionJobName: aws.String(jobName),
		})
		if err != nil {
			return nil, err
		}
		job := out.TranscriptionJob
		switch aws.StringValue(job.TranscriptionJobStatus) {
		case transcribeservice.TranscriptionJobStatusCompleted:
			return job, nil
		case transcribeservice.TranscriptionJobStatusFailed:
			return nil, fmt.Errorf("Transcription job %s failed: %s", jobName, aws.StringValue(job.FailureReason))
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}

func download(ctx context.Context, uri string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
	if err != nil {
		return nil, err
	}
	resp, err := (&http.Client{Timeout: time.Minute}).Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("Transcript download status %d: %s", resp.StatusCode, truncate(raw, 512))
	}
	return raw, nil
}

func awsText(raw []byte) (string, error) {
	var response awsTranscript
	if err := json.Unmarshal(raw, &response); err != nil {
		return "", err
	}
	parts := make([]string, 0, len(response.Results.Transcripts))
	for _, t := range response.Results.Transcripts {
		parts = append(parts, t.Transcript)
	}
	return strings.Join(parts, "\n"), nil
}

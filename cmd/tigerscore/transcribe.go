package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ughe/tigerscore/config"
	"github.com/ughe/tigerscore/metrics"
	"github.com/ughe/tigerscore/transcript"
	"github.com/ughe/tigerscore/util"
)

type TranscribeCmd struct {
	Files   []string `arg:"" optional:"" help:"Audio files"`
	Dir     string   `help:"Also transcribe every .mp3, .wav and .m4a file in this directory" type:"existingdir"`
	Keys    string   `help:"Path to credentials directory (default: credentials_path)" type:"path"`
	Out     string   `short:"o" help:"Directory for <audio>.<service>.json results (default: working directory)" type:"path"`
	AWS     bool     `name:"aws" help:"Run AWS Transcribe. Key files: credentials config. Needs transcribe.aws.bucket"`
	Azure   bool     `help:"Run Azure Speech. Key file: azure.json with 'subscription_key' and 'endpoint' items"`
	GCP     bool     `name:"gcp" help:"Run GCP Speech-to-Text. Key file: gcp.json"`
	Whisper bool     `help:"Run OpenAI Whisper. Key file: openai.json with 'api_key' and optional 'endpoint' items"`
}

func (c *TranscribeCmd) Run(g *Globals) error {
	services := c.clients(g.cfg)
	if len(services) == 0 {
		return errors.New("No service(s) selected: use --aws, --azure, --gcp or --whisper")
	}
	outDir := c.Out
	if outDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return err
		}
		outDir = wd
	}

	files := c.Files
	if c.Dir != "" {
		found, err := audioFiles(c.Dir)
		if err != nil {
			return err
		}
		files = append(files, found...)
	}
	if len(files) == 0 {
		return errors.New("No audio files: pass files or --dir")
	}

	errs := make([]error, 0)
	for _, filename := range files {
		if err := transcribeFile(g.ctx, filename, outDir, services, g.out, g.errw); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

var audioExts = map[string]bool{".mp3": true, ".wav": true, ".m4a": true}

// Audio files directly inside dir, sorted by name
func audioFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	files := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() && audioExts[strings.ToLower(filepath.Ext(e.Name()))] {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	return files, nil
}

func (c *TranscribeCmd) clients(cfg config.Config) map[string]transcript.Client {
	keys := firstSet(c.Keys, cfg.CredentialsPath)
	t := cfg.Transcribe
	opts := transcript.Options{
		Language:    t.Language,
		SampleRate:  t.SampleRate,
		Encoding:    t.Encoding,
		MediaFormat: t.MediaFormat,
	}

	m := make(map[string]transcript.Client, 4)
	if c.AWS {
		m["aws"] = transcript.AWSClient{
			CredentialsPath: keys,
			Region:          t.AWS.Region,
			Bucket:          t.AWS.Bucket,
			PollInterval:    time.Duration(t.AWS.PollIntervalMS) * time.Millisecond,
			Options:         opts,
		}
	}
	if c.Azure {
		m["azure"] = transcript.AzureClient{CredentialsPath: keys, Options: opts}
	}
	if c.GCP {
		m["gcp"] = transcript.GCPClient{CredentialsPath: keys, Options: opts}
	}
	if c.Whisper {
		m["whisper"] = transcript.WhisperClient{
			CredentialsPath: keys,
			Endpoint:        t.Whisper.Endpoint,
			Model:           t.Whisper.Model,
			Options:         opts,
		}
	}
	return m
}

func runService(ctx context.Context, audio []byte, client transcript.Client, service, dst string) (string, error) {
	name := filepath.Base(dst)
	start := time.Now()
	result, err := client.Run(ctx, audio)
	metrics.TranscribeDuration.WithLabelValues(service).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.TranscribeErrors.WithLabelValues(service).Inc()
		return "", fmt.Errorf("%v:Run:%v", name, err)
	}
	if err := transcript.Save(result, dst); err != nil {
		return "", fmt.Errorf("%v:Save:%v", name, err)
	}
	return fmt.Sprintf("%s:%v", name, result.Duration), nil
}

// Runs every service on one file at once. Service failures are reported on
// stderr and do not fail the file.
func transcribeFile(ctx context.Context, filename, outDir string, services map[string]transcript.Client, stdout, stderr io.Writer) error {
	buf, err := util.Read(filename)
	if err != nil {
		return err
	}
	namepath := filepath.Join(outDir, filepath.Base(filename))

	type done struct {
		line string
		err  error
	}
	ch := make(chan done, len(services))
	for service, client := range services {
		go func(service string, client transcript.Client) {
			line, err := runService(ctx, buf, client, service, namepath+"."+service+".json")
			ch <- done{line, err}
		}(service, client)
	}
	// Wait for each service to finish
	for i := 0; i < len(services); i++ {
		d := <-ch
		if d.err != nil {
			fmt.Fprintf(stderr, "%v\n", d.err)
		} else {
			fmt.Fprintln(stdout, d.line)
		}
	}
	return nil
}

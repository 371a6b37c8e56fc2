// Package report scores directories of reference and hypothesis transcripts
// and writes the results as CSV and PDF.
package report

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/ughe/tigerscore/metrics"
	"github.com/ughe/tigerscore/score"
	"github.com/ughe/tigerscore/transcript"
	"github.com/ughe/tigerscore/util"
)

// Pair is one hypothesis to be scored against its reference
type Pair struct {
	Name       string // Hypothesis file name
	Reference  string
	Hypothesis string
}

// Row is the score of one Pair. Err is set when the pair could not be scored.
type Row struct {
	Name      string  `json:"name"`
	RefWords  int     `json:"ref_words"`
	RefChars  int     `json:"ref_chars"`
	WordEdits int     `json:"word_edits"`
	CharEdits int     `json:"char_edits"`
	WER       float64 `json:"wer"`
	CER       float64 `json:"cer"`
	Err       string  `json:"error,omitempty"`
}

// Summary aggregates the scored rows. Mean rates weigh every file equally;
// corpus rates divide total edits by total reference units.
type Summary struct {
	Scored    int     `json:"scored"`
	Failed    int     `json:"failed"`
	MeanWER   float64 `json:"mean_wer"`
	MeanCER   float64 `json:"mean_cer"`
	CorpusWER float64 `json:"corpus_wer"`
	CorpusCER float64 `json:"corpus_cer"`
}

type Report struct {
	ID      uuid.UUID `json:"id"`
	Date    string    `json:"date"`
	Rows    []Row     `json:"rows"`
	Summary Summary   `json:"summary"`
}

// Pairs matches every refExt file in refDir to its hypotheses in hypDir. For
// reference name.txt the hypotheses are name.txt (when the directories
// differ), name.<service>.json and name.<audio ext>.<service>.json as saved
// by the transcribe command.
func Pairs(refDir, hypDir, refExt string) ([]Pair, error) {
	refs, err := os.ReadDir(refDir)
	if err != nil {
		return nil, err
	}
	hyps, err := os.ReadDir(hypDir)
	if err != nil {
		return nil, err
	}
	sameDir := filepath.Clean(refDir) == filepath.Clean(hypDir)

	pairs := make([]Pair, 0, len(refs))
	for _, ref := range refs {
		if ref.IsDir() || filepath.Ext(ref.Name()) != refExt {
			continue
		}
		base := strings.TrimSuffix(ref.Name(), refExt)
		for _, hyp := range hyps {
			name := hyp.Name()
			if hyp.IsDir() || (sameDir && name == ref.Name()) {
				continue
			}
			if name == base+".txt" || savedFor(name, base) {
				pairs = append(pairs, Pair{
					Name:       name,
					Reference:  filepath.Join(refDir, ref.Name()),
					Hypothesis: filepath.Join(hypDir, name),
				})
			}
		}
	}
	if len(pairs) == 0 {
		return nil, fmt.Errorf("No matching reference and hypothesis files in: %s and %s", refDir, hypDir)
	}
	return pairs, nil
}

var audioExts = map[string]bool{
	".wav": true, ".mp3": true, ".m4a": true, ".flac": true, ".ogg": true, ".webm": true, ".mp4": true,
}

// Reports whether name is a saved transcript of base. Exactly one service
// extension sits before ".json", optionally preceded by one audio extension.
func savedFor(name, base string) bool {
	ext := filepath.Ext(name)
	if !strings.EqualFold(ext, ".json") {
		return false
	}
	stem := strings.TrimSuffix(name, ext)
	service := filepath.Ext(stem)
	if len(service) < 2 {
		return false
	}
	stem = strings.TrimSuffix(stem, service)
	if stem == base {
		return true
	}
	audio := filepath.Ext(stem)
	return audioExts[strings.ToLower(audio)] && strings.TrimSuffix(stem, audio) == base
}

// Run scores pairs with up to workers goroutines. Pairs with an empty
// reference are kept as failed rows. Any read error stops the run.
func Run(ctx context.Context, pairs []Pair, workers int, logger *slog.Logger) (*Report, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if workers < 1 {
		workers = 1
	}
	workers = min(workers, max(len(pairs), 1))

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	rows := make([]Row, len(pairs))
	jobs := make(chan int, len(pairs))
	for i := range pairs {
		jobs <- i
	}
	close(jobs)

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				if ctx.Err() != nil {
					return
				}
				row, err := scorePair(pairs[i])
				if err != nil {
					mu.Lock()
					if firstErr == nil {
						firstErr = err
					}
					mu.Unlock()
					cancel()
					return
				}
				if row.Err != "" {
					logger.Warn("pair not scored", "name", row.Name, "error", row.Err)
				} else {
					logger.Debug("pair scored", "name", row.Name, "wer", row.WER, "cer", row.CER)
				}
				rows[i] = row
			}
		}()
	}
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Name < rows[j].Name })
	report := &Report{
		ID:      uuid.New(),
		Date:    time.Now().UTC().Format("2006-01-02 15:04:05 MST"),
		Rows:    rows,
		Summary: summarize(rows),
	}
	logger.Info("batch scored", "id", report.ID, "scored", report.Summary.Scored,
		"failed", report.Summary.Failed, "corpus_wer", report.Summary.CorpusWER)
	return report, nil
}

func scorePair(p Pair) (Row, error) {
	row := Row{Name: p.Name}
	ref, err := util.Read(p.Reference)
	if err != nil {
		return row, fmt.Errorf("%v: %w", p.Reference, err)
	}
	hyp, err := transcript.ReadText(p.Hypothesis)
	if err != nil {
		return row, fmt.Errorf("%v: %w", p.Hypothesis, err)
	}

	start := time.Now()
	detail, err := score.Analyze(string(ref), hyp)
	metrics.ScoreDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		if errors.Is(err, score.ErrEmptyReference) {
			metrics.EmptyReference.Inc()
		}
		if !score.IsDomainError(err) {
			return row, err
		}
		row.Err = err.Error()
		return row, nil
	}
	metrics.ScoresTotal.Inc()
	metrics.WER.Observe(detail.WER)
	metrics.CER.Observe(detail.CER)

	row.RefWords = detail.RefWords
	row.RefChars = detail.RefChars
	row.WordEdits = detail.Words.Edits()
	row.CharEdits = detail.Chars.Edits()
	row.WER = detail.WER
	row.CER = detail.CER
	return row, nil
}

func summarize(rows []Row) Summary {
	var s Summary
	var words, chars, wordEdits, charEdits int
	for _, r := range rows {
		if r.Err != "" {
			s.Failed++
			continue
		}
		s.Scored++
		s.MeanWER += r.WER
		s.MeanCER += r.CER
		words += r.RefWords
		chars += r.RefChars
		wordEdits += r.WordEdits
		charEdits += r.CharEdits
	}
	if s.Scored == 0 {
		return s
	}
	s.MeanWER /= float64(s.Scored)
	s.MeanCER /= float64(s.Scored)
	s.CorpusWER = float64(wordEdits) / float64(words)
	s.CorpusCER = float64(charEdits) / float64(chars)
	return s
}

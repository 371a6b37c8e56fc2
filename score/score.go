// Package score computes Word Error Rate and Character Error Rate between a
// reference transcript and a hypothesis transcript.
//
// Both rates are edits per reference unit, so insertions can push them above
// 1.0. Scoring is pure and safe for concurrent use.
package score

import (
	"github.com/ughe/tigerscore/editdist"
	"github.com/ughe/tigerscore/normalize"
)

// Result holds the two error rates of one reference/hypothesis pair
type Result struct {
	WER float64 `json:"wer"`
	CER float64 `json:"cer"`
}

// Detail extends Result with the unit counts and the edit breakdown
type Detail struct {
	Result
	Reference  string       `json:"reference"`
	Hypothesis string       `json:"hypothesis"`
	RefWords   int          `json:"ref_words"`
	HypWords   int          `json:"hyp_words"`
	RefChars   int          `json:"ref_chars"`
	HypChars   int          `json:"hyp_chars"`
	Words      editdist.Ops `json:"words"`
	Chars      editdist.Ops `json:"chars"`
}

// Evaluate normalizes both texts and returns their WER and CER. An empty
// normalized reference yields a *DomainError wrapping ErrEmptyReference.
func Evaluate(reference, hypothesis string) (Result, error) {
	ref, hyp := normalize.Normalize(reference), normalize.Normalize(hypothesis)
	wer, err := rate("wer", normalize.Words(ref), normalize.Words(hyp))
	if err != nil {
		return Result{}, err
	}
	cer, err := rate("cer", normalize.Chars(ref), normalize.Chars(hyp))
	if err != nil {
		return Result{}, err
	}
	return Result{WER: wer, CER: cer}, nil
}

// WER returns only the word error rate
func WER(reference, hypothesis string) (float64, error) {
	ref, hyp := normalize.Normalize(reference), normalize.Normalize(hypothesis)
	return rate("wer", normalize.Words(ref), normalize.Words(hyp))
}

// CER returns only the character error rate
func CER(reference, hypothesis string) (float64, error) {
	ref, hyp := normalize.Normalize(reference), normalize.Normalize(hypothesis)
	return rate("cer", normalize.Chars(ref), normalize.Chars(hyp))
}

func rate[T comparable](metric string, ref, hyp []T) (float64, error) {
	if len(ref) == 0 {
		return 0, &DomainError{Metric: metric, Err: ErrEmptyReference}
	}
	return float64(editdist.Levenshtein(ref, hyp)) / float64(len(ref)), nil
}

// Analyze scores like Evaluate but keeps the full tables to count
// substitutions, insertions and deletions at both granularities.
func Analyze(reference, hypothesis string) (*Detail, error) {
	ref, hyp := normalize.Normalize(reference), normalize.Normalize(hypothesis)
	refWords, hypWords := normalize.Words(ref), normalize.Words(hyp)
	refChars, hypChars := normalize.Chars(ref), normalize.Chars(hyp)
	if len(refWords) == 0 {
		return nil, &DomainError{Metric: "wer", Err: ErrEmptyReference}
	}

	words := editdist.Align(refWords, hypWords, editdist.Table(refWords, hypWords))
	chars := editdist.Align(refChars, hypChars, editdist.Table(refChars, hypChars))
	return &Detail{
		Result: Result{
			WER: float64(words.Edits()) / float64(len(refWords)),
			CER: float64(chars.Edits()) / float64(len(refChars)),
		},
		Reference:  ref,
		Hypothesis: hyp,
		RefWords:   len(refWords),
		HypWords:   len(hypWords),
		RefChars:   len(refChars),
		HypChars:   len(hypChars),
		Words:      words,
		Chars:      chars,
	}, nil
}

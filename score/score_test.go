package score

import (
	"errors"
	"fmt"
	"math"
	"sync"
	"testing"
)

const eps = 1e-12

func near(a, b float64) bool {
	return math.Abs(a-b) < eps
}

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name       string
		reference  string
		hypothesis string
		wantWER    float64
		wantCER    float64
	}{
		{"identical", "the cat sat", "the cat sat", 0, 0},
		{"case and whitespace", "Hello  World", "hello world", 0, 0},
		{"substitution", "the cat sat", "the cat sit", 1.0 / 3, 1.0 / 11},
		{"deletion", "a b c", "a b", 1.0 / 3, 2.0 / 5},
		{"insertion", "hello", "hello world", 1.0, 6.0 / 5},
		{"apostrophe kept", "it's fine!", "its fine", 1.0 / 2, 1.0 / 9},
		{"punctuation ignored", "Hello, world!", "hello world", 0, 0},
		{"empty hypothesis", "some words", "", 1.0, 1.0},
		{"completely different", "the cat sat", "a dog ran", 1.0, 8.0 / 11},
		{"non-ascii", "ñandú été", "nandu ete", 1.0, 4.0 / 9},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Evaluate(tt.reference, tt.hypothesis)
			if err != nil {
				t.Fatalf("Evaluate(%q, %q): %v", tt.reference, tt.hypothesis, err)
			}
			if !near(got.WER, tt.wantWER) {
				t.Errorf("WER = %v, want %v", got.WER, tt.wantWER)
			}
			if !near(got.CER, tt.wantCER) {
				t.Errorf("CER = %v, want %v", got.CER, tt.wantCER)
			}
			wer, _ := WER(tt.reference, tt.hypothesis)
			cer, _ := CER(tt.reference, tt.hypothesis)
			if wer != got.WER || cer != got.CER {
				t.Errorf("WER/CER = %v/%v, Evaluate = %+v", wer, cer, got)
			}
		})
	}
}

func TestEvaluateSelfIsZero(t *testing.T) {
	for _, s := range []string{"x", "Hello? This is the book.", "ÉTÉ 1302 we're", "a  -  b"} {
		got, err := Evaluate(s, s)
		if err != nil {
			t.Fatalf("Evaluate(%q, %q): %v", s, s, err)
		}
		if got.WER != 0 || got.CER != 0 {
			t.Errorf("Evaluate(%q, itself) = %+v", s, got)
		}
	}
}

func TestEmptyReference(t *testing.T) {
	for _, ref := range []string{"", "   ", "?!", " -- "} {
		for _, hyp := range []string{"", "hello", "some words here"} {
			_, err := Evaluate(ref, hyp)
			if !errors.Is(err, ErrEmptyReference) {
				t.Fatalf("Evaluate(%q, %q) err = %v, want ErrEmptyReference", ref, hyp, err)
			}
			var de *DomainError
			if !errors.As(err, &de) || de.Metric != "wer" {
				t.Fatalf("Evaluate(%q, %q) err = %#v, want wer DomainError", ref, hyp, err)
			}
			if _, err := CER(ref, hyp); !IsDomainError(err) {
				t.Fatalf("CER(%q, %q) err = %v", ref, hyp, err)
			}
			if _, err := Analyze(ref, hyp); !IsDomainError(err) {
				t.Fatalf("Analyze(%q, %q) err = %v", ref, hyp, err)
			}
		}
	}
}

func TestDomainErrorWrapped(t *testing.T) {
	_, err := Evaluate("", "x")
	wrapped := fmt.Errorf("scoring pair 3: %w", err)
	if !IsDomainError(wrapped) || !errors.Is(wrapped, ErrEmptyReference) {
		t.Fatalf("wrapped error lost its type: %v", wrapped)
	}
	if got := err.Error(); got != "wer: empty reference" {
		t.Errorf("Error() = %q", got)
	}
	if IsDomainError(errors.New("other")) {
		t.Errorf("plain error reported as DomainError")
	}
}

func TestAnalyze(t *testing.T) {
	d, err := Analyze("The cat sat on the mat.", "the cat sit on mat")
	if err != nil {
		t.Fatal(err)
	}
	if d.RefWords != 6 || d.HypWords != 5 {
		t.Errorf("words = %d/%d, want 6/5", d.RefWords, d.HypWords)
	}
	if d.RefChars != 22 || d.HypChars != 18 {
		t.Errorf("chars = %d/%d, want 22/18", d.RefChars, d.HypChars)
	}
	if d.Words.Substitutions != 1 || d.Words.Deletions != 1 || d.Words.Insertions != 0 || d.Words.Matches != 4 {
		t.Errorf("word ops = %+v", d.Words)
	}
	if d.Reference != "the cat sat on the mat" {
		t.Errorf("Reference = %q", d.Reference)
	}
	r, _ := Evaluate("The cat sat on the mat.", "the cat sit on mat")
	if !near(d.WER, r.WER) || !near(d.CER, r.CER) {
		t.Errorf("Analyze %+v disagrees with Evaluate %+v", d.Result, r)
	}
}

func TestAnalyzeAgreesWithEvaluate(t *testing.T) {
	reference := "Hello? This is the book. It will be a bank of 1302 with international speedway pull apart. " +
		"Okay. We're being robbed. He's saying he has a bomb. He's saying he has a tager."
	hypothesis := "Hello? This is the book. It will be a bank at 1302 with international speedway pull apart. " +
		"Ok. Were being robed. He's saying he has a bom. He's saying he has a taser."
	d, err := Analyze(reference, hypothesis)
	if err != nil {
		t.Fatal(err)
	}
	r, err := Evaluate(reference, hypothesis)
	if err != nil {
		t.Fatal(err)
	}
	if !near(d.WER, r.WER) || !near(d.CER, r.CER) {
		t.Errorf("Analyze %+v disagrees with Evaluate %+v", d.Result, r)
	}
	// of->at, okay->ok, we're->were, robbed->robed, bomb->bom, tager->taser
	if d.Words.Edits() != 6 || d.Words.Substitutions != 6 {
		t.Errorf("word ops = %+v", d.Words)
	}
	if !near(r.WER, 6.0/float64(d.RefWords)) {
		t.Errorf("WER = %v, want 6/%d", r.WER, d.RefWords)
	}
}

func TestEvaluateConcurrent(t *testing.T) {
	var wg sync.WaitGroup
	errs := make(chan error, 32)
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			r, err := Evaluate("the cat sat", "the cat sit")
			if err != nil {
				errs <- err
				return
			}
			if !near(r.WER, 1.0/3) {
				errs <- fmt.Errorf("goroutine %d: WER %v", i, r.WER)
			}
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Error(err)
	}
}

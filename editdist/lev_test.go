package editdist

import (
	"encoding/csv"
	"io"
	"math/rand"
	"os"
	"strconv"
	"strings"
	"testing"

	"github.com/agnivade/levenshtein"
)

const TEST_FILENAME = "lev_test.csv"

func TestLevenshtein(t *testing.T) {
	f, err := os.Open(TEST_FILENAME)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	r := csv.NewReader(f)

	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("Error parsing %v: %v", TEST_FILENAME, err)
		}
		if len(record) != 3 {
			t.Fatalf("Expected string,string,int but got: %v", record)
		}
		dist, err := strconv.Atoi(record[2])
		if err != nil {
			t.Fatalf("%v is not an int. %v", record[2], err)
		}
		check(t, record[0], record[1], dist)
	}
}

func check(t *testing.T, as string, bs string, exp int) {
	a := []rune(as)
	b := []rune(bs)
	dists := Table(a, b)
	dist := dists.Distance()
	if exp != dist {
		t.Fatalf("Expected: %v. Received: %v. Lev '%v' '%v'\n%v",
			exp, dist, as, bs, Render(a, b, dists))
	}
	dist = Levenshtein(b, a)
	if exp != dist {
		t.Fatalf("Expected: %v. Received: %v. Lev '%v' '%v'\n%v",
			exp, dist, bs, as, Render(b, a, Table(b, a)))
	}
	if ops := Align(a, b, dists); ops.Edits() != exp {
		t.Fatalf("Align %+v sums to %d. Expected %d for '%v' '%v'", ops, ops.Edits(), exp, as, bs)
	}
}

func TestLevenshteinWords(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want int
	}{
		{"identical", "the cat sat", "the cat sat", 0},
		{"substitution", "the cat sat", "the cat sit", 1},
		{"deletion", "a b c", "a b", 1},
		{"insertion", "hello", "hello world", 1},
		{"empty hypothesis", "some words", "", 2},
		{"empty reference", "", "two words", 2},
		{"mixed", "the quick brown fox jumps over the lazy dog", "a quick brown cat jumps the lazy dog", 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, b := strings.Fields(tt.a), strings.Fields(tt.b)
			if got := Levenshtein(a, b); got != tt.want {
				t.Errorf("Levenshtein = %d, want %d\n%v", got, tt.want, Render(a, b, Table(a, b)))
			}
			if got := Table(a, b).Distance(); got != tt.want {
				t.Errorf("Table.Distance = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestAlign(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want Ops
	}{
		{"match", "a b c", "a b c", Ops{Matches: 3}},
		{"substitution", "the cat sat", "the cat sit", Ops{Matches: 2, Substitutions: 1}},
		{"deletion", "a b c", "a b", Ops{Matches: 2, Deletions: 1}},
		{"insertion", "hello", "hello world", Ops{Matches: 1, Insertions: 1}},
		{"only deletions", "x y", "", Ops{Deletions: 2}},
		{"only insertions", "", "x y", Ops{Insertions: 2}},
		{"mixed", "ask not what your country can do", "ask what your country can do for", Ops{Matches: 6, Deletions: 1, Insertions: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, b := strings.Fields(tt.a), strings.Fields(tt.b)
			m := Table(a, b)
			got := Align(a, b, m)
			if got != tt.want {
				t.Errorf("Align = %+v, want %+v\n%v", got, tt.want, Render(a, b, m))
			}
			if got.Edits() != m.Distance() {
				t.Errorf("Edits = %d, distance %d", got.Edits(), m.Distance())
			}
		})
	}
}

func randomString(rng *rand.Rand, alphabet []rune, max int) []rune {
	n := rng.Intn(max + 1)
	s := make([]rune, n)
	for i := range s {
		s[i] = alphabet[rng.Intn(len(alphabet))]
	}
	return s
}

func TestMetricProperties(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	alphabet := []rune("ab cé")
	for n := 0; n < 500; n++ {
		a := randomString(rng, alphabet, 12)
		b := randomString(rng, alphabet, 12)
		c := randomString(rng, alphabet, 12)
		ab, ba := Levenshtein(a, b), Levenshtein(b, a)
		if ab != ba {
			t.Fatalf("Not symmetric: d(%q,%q)=%d d(%q,%q)=%d", string(a), string(b), ab, string(b), string(a), ba)
		}
		ac, bc := Levenshtein(a, c), Levenshtein(b, c)
		if ac > ab+bc {
			t.Fatalf("Triangle inequality: d(%q,%q)=%d > %d+%d", string(a), string(c), ac, ab, bc)
		}
		if Levenshtein(a, a) != 0 {
			t.Fatalf("d(%q,%q) != 0", string(a), string(a))
		}
		if dense := Table(a, b).Distance(); dense != ab {
			t.Fatalf("Rolling %d != dense %d for %q %q", ab, dense, string(a), string(b))
		}
	}
}

func TestAgainstReference(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	alphabet := []rune("abcdeñü '")
	for n := 0; n < 300; n++ {
		a := randomString(rng, alphabet, 20)
		b := randomString(rng, alphabet, 20)
		want := levenshtein.ComputeDistance(string(a), string(b))
		if got := Levenshtein(a, b); got != want {
			t.Fatalf("Levenshtein(%q, %q) = %d, reference %d", string(a), string(b), got, want)
		}
	}
}

func TestRender(t *testing.T) {
	a, b := []rune("ab"), []rune("b")
	out := Render(a, b, Table(a, b))
	for _, want := range []string{"   b", "   a  |   1   1", "   b  |   2   1"} {
		if !strings.Contains(out, want) {
			t.Errorf("Render missing %q in:\n%s", want, out)
		}
	}
}

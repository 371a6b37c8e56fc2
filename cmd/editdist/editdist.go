package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/ughe/tigerscore/editdist"
	"github.com/ughe/tigerscore/normalize"
	"github.com/ughe/tigerscore/transcript"
)

// Word and character edit counts between two transcripts after normalization
func distances(first, second string) (words, chars int) {
	a, b := normalize.Normalize(first), normalize.Normalize(second)
	words = editdist.Levenshtein(normalize.Words(a), normalize.Words(b))
	chars = editdist.Levenshtein(normalize.Chars(a), normalize.Chars(b))
	return words, chars
}

func main() {
	raw := flag.Bool("raw", false, "Print the code point distance of the unnormalized text only")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [-raw] first second\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 2 {
		flag.Usage()
		os.Exit(2)
	}
	first, err := transcript.ReadText(flag.Arg(0))
	if err != nil {
		log.Fatal(err)
	}
	second, err := transcript.ReadText(flag.Arg(1))
	if err != nil {
		log.Fatal(err)
	}
	if *raw {
		fmt.Printf("%v\n", editdist.Levenshtein([]rune(first), []rune(second)))
		return
	}
	words, chars := distances(first, second)
	fmt.Printf("words %d chars %d\n", words, chars)
}

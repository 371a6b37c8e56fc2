package main

import (
	"fmt"
	"log"
	"os"

	"github.com/ughe/tigerscore/score"
	"github.com/ughe/tigerscore/transcript"
)

func main() {
	if len(os.Args) != 3 {
		log.Fatal("usage: cer reference.txt hypothesis.txt")
	}
	ref, err := transcript.ReadText(os.Args[1])
	if err != nil {
		log.Fatal(err)
	}
	hyp, err := transcript.ReadText(os.Args[2])
	if err != nil {
		log.Fatal(err)
	}
	e, err := score.CER(ref, hyp)
	if err != nil {
		log.Fatalf("%v: %v", os.Args[1], err)
	}
	fmt.Printf("%v\n", e)
}

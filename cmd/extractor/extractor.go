package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/ughe/tigerscore/transcript"
)

func main() {
	// Flags
	flags := make(map[string]*bool)
	for k, v := range transcript.Fields {
		flags[k] = flag.Bool(k, false, v)
	}
	flag.Parse()
	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(1)
	}

	// Read in the result file
	name := flag.Arg(0)
	result, err := transcript.Load(name)
	if err != nil {
		log.Fatalf("Failed to read json file '%v': %v\n", name, err)
	}

	// Extract the provided field
	for _, k := range transcript.FieldNames() {
		if *flags[k] {
			out, err := transcript.Extract(result, k)
			if err != nil {
				log.Fatalln(err)
			}
			fmt.Println(out)
			return
		}
	}

	// No flag selected
	flag.Usage()
}

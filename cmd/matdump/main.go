// Command matdump lists or prints variables from a MATLAB v7.3 .mat
// file.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/scigolib/mat73"
)

func main() {
	var variable string
	flag.StringVar(&variable, "var", "", "decode and print a single variable instead of listing all")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: matdump [-var name] file.mat")
		os.Exit(2)
	}
	path := flag.Arg(0)

	f, err := mat73.Open(path, mat73.WithLogger(mat73.NewStdLogger(nil)))
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close() //nolint:errcheck // CLI cleanup on exit

	if variable != "" {
		v, err := f.ReadVariable(variable)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println(v.String())
		return
	}

	listings, err := f.ListVariables()
	if err != nil {
		log.Fatal(err)
	}
	for _, l := range listings {
		fmt.Printf("%s: %s\n", l.Name, l.String())
	}
}

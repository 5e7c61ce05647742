package main

import (
	"flag"
	"fmt"
	"os"

	iplruntime "github.com/gosuda/ipl/runtime"
)

func main() {
	in := flag.String("in", "", "input snapshot path")
	out := flag.String("out", "", "output snapshot path")
	to := flag.String("to", "", "output format: json|yaml (default from -out extension)")
	flag.Parse()

	if *in == "" || *out == "" {
		fmt.Fprintln(os.Stderr, "usage: go run ./cmd/snapcodec -in <input> -out <output> [-to json|yaml]")
		os.Exit(2)
	}
	format := *to
	if format == "" {
		format = iplruntime.FormatFromPath(*out)
	}
	if err := iplruntime.ConvertSnapshotFile(*in, *out, format); err != nil {
		fmt.Fprintf(os.Stderr, "convert failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("converted %s -> %s (%s)\n", *in, *out, format)
}

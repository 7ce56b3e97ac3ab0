// Package main prints the label distribution of an annotation file.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/lueurxax/stance-classifier/internal/core/domain"
	"github.com/lueurxax/stance-classifier/internal/ingest"
)

const errFmt = "%v\n"

func main() {
	annotationsPath := flag.String("annotations", "", "Path to annotations JSON")

	flag.Parse()

	if err := run(*annotationsPath); err != nil {
		fmt.Fprintf(os.Stderr, errFmt, err)
		os.Exit(1)
	}
}

func run(path string) error {
	annotations, err := ingest.LoadAnnotations(path)
	if err != nil {
		return err
	}

	counts := make(map[domain.Stance]int)
	for _, stance := range annotations {
		counts[stance]++
	}

	total := len(annotations)

	fmt.Printf("total: %d\n", total)

	for _, stance := range domain.Stances() {
		share := 0.0
		if total > 0 {
			share = float64(counts[stance]) / float64(total)
		}

		fmt.Printf("%-8s %6d  %.4f\n", stance, counts[stance], share)
	}

	return nil
}

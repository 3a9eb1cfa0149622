package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
)

func main() {
	outFile := flag.String("o", "", "Output file (default: input.txt)")
	channel := flag.Int("channel", 0, "Only convert this MIDI channel (1-16, 0 for all)")
	noHeader := flag.Bool("no-header", false, "Omit header comment")
	stats := flag.Bool("stats", false, "Print conversion statistics")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: mid2events [options] input.mid\n\nConverts a Standard MIDI File to a Breath Engine note event list.\n\nOptions:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  mid2events songs/greensleeves.mid\n")
		fmt.Fprintf(os.Stderr, "  mid2events -channel 1 -o flute.txt songs/quartet.mid\n")
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(1)
	}

	inputPath := flag.Arg(0)

	conv := NewConverter()
	conv.noHeader = *noHeader
	if err := conv.SetChannel(*channel); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	events, err := conv.ConvertFileFromPath(inputPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	outputPath := *outFile
	if outputPath == "" {
		outputPath = strings.TrimSuffix(strings.TrimSuffix(inputPath, ".mid"), ".midi") + ".txt"
	}

	f, err := os.Create(outputPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	if err := conv.Write(f, inputPath, events); err != nil {
		f.Close()
		fmt.Fprintf(os.Stderr, "error writing %s: %v\n", outputPath, err)
		os.Exit(1)
	}
	if err := f.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "error writing %s: %v\n", outputPath, err)
		os.Exit(1)
	}

	if *stats {
		s := conv.Stats()
		fmt.Printf("Input:  %s (%d tracks)\n", inputPath, s.Tracks)
		fmt.Printf("Output: %s (%d events)\n", outputPath, len(events))
		fmt.Printf("Notes:  %d on, %d off, %d panics, %d skipped\n", s.NotesOn, s.NotesOff, s.Panics, s.Skipped)
	}
}

// Command cic-wav decimates or interpolates integer PCM WAV files with a
// CIC filter.
//
// Usage:
//
//	cic-wav -factor 4 input.wav output.wav                    # 48 kHz -> 12 kHz
//	cic-wav -mode interpolate -factor 2 input.wav output.wav  # 48 kHz -> 96 kHz
//	cic-wav -stages 5 -delay 2 -factor 8 input.wav output.wav
//
// The output keeps the input bit depth (16, 24 or 32 bits). Channels are
// filtered independently, in parallel unless -parallel=false.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime/pprof"
	"time"

	"github.com/tphakala/go-cic"
)

const (
	// Frames per processing chunk
	bufferFrames = 16384

	// Sample format constants
	bitsPerSample16 = 16
	bitsPerSample24 = 24
	bitsPerSample32 = 32

	// Progress reporting
	progressInterval = 10 // Print progress every N%
	percentScale     = 100

	// CLI defaults
	defaultFactor   = 4
	minRequiredArgs = 2

	// WAV format tag for integer PCM
	wavFormatPCM = 1
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	mode := flag.String("mode", "decimate", "Filter mode: decimate or interpolate")
	factor := flag.Int("factor", defaultFactor, "Integer rate change factor R")
	stages := flag.Int("stages", cic.DefaultStages, "Number of integrator/comb stages N")
	delay := flag.Int("delay", 1, "Comb differential delay M (1 or 2)")
	round := flag.Bool("round", true, "Round to nearest before discarding low bits")
	saturate := flag.Bool("sat", true, "Saturate instead of wrapping on overflow")
	parallel := flag.Bool("parallel", true, "Enable parallel channel processing")
	verbose := flag.Bool("v", false, "Verbose output")
	cpuprofile := flag.String("cpuprofile", "", "Write CPU profile to file")
	flag.Parse()

	args := flag.Args()
	if len(args) < minRequiredArgs {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] input.wav output.wav\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s -factor 4 in.wav out.wav                    # Decimate by 4\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -mode interpolate -factor 2 in.wav out.wav  # Interpolate by 2\n", os.Args[0])
		return fmt.Errorf("insufficient arguments")
	}

	if *cpuprofile != "" {
		f, err := os.Create(*cpuprofile)
		if err != nil {
			return fmt.Errorf("could not create CPU profile: %w", err)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			_ = f.Close()
			return fmt.Errorf("could not start CPU profile: %w", err)
		}
		defer func() {
			pprof.StopCPUProfile()
			_ = f.Close()
		}()
	}

	m, err := parseMode(*mode)
	if err != nil {
		return err
	}

	opts := options{
		mode:     m,
		factor:   *factor,
		stages:   *stages,
		delay:    *delay,
		round:    *round,
		saturate: *saturate,
		parallel: *parallel,
		verbose:  *verbose,
	}

	inputPath := args[0]
	outputPath := args[1]

	if *verbose {
		log.Printf("Input: %s", inputPath)
		log.Printf("Output: %s", outputPath)
		log.Printf("Filter: %s N=%d R=%d M=%d round=%v sat=%v",
			m, opts.stages, opts.factor, opts.delay, opts.round, opts.saturate)
		if *parallel {
			log.Printf("Parallel: enabled (concurrent channel processing)")
		} else {
			log.Printf("Parallel: disabled (sequential processing)")
		}
	}

	start := time.Now()
	stats, err := filterWAV(inputPath, outputPath, opts)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	fmt.Printf("Filtered %s -> %s\n", filepath.Base(inputPath), filepath.Base(outputPath))
	fmt.Printf("  %d Hz -> %d Hz (%d channels, %d-bit)\n",
		stats.inputRate, stats.outputRate, stats.channels, stats.bitDepth)
	fmt.Printf("  %d frames -> %d frames\n", stats.inputFrames, stats.outputFrames)
	fmt.Printf("  Widths: full %d bits, %d discarded\n", stats.fullWidth, stats.discarded)
	if elapsed > 0 && stats.inputRate > 0 {
		fmt.Printf("  Duration: %.2fs, Speed: %.1fx realtime\n",
			elapsed.Seconds(),
			float64(stats.inputFrames)/float64(stats.inputRate)/elapsed.Seconds())
	}

	return nil
}

type options struct {
	mode     cic.Mode
	factor   int
	stages   int
	delay    int
	round    bool
	saturate bool
	parallel bool
	verbose  bool
}

type filterStats struct {
	inputRate    int
	outputRate   int
	channels     int
	bitDepth     int
	inputFrames  int64
	outputFrames int64
	fullWidth    int
	discarded    int
}

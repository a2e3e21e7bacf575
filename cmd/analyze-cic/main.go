// Command analyze-cic prints the register widths, gain, impulse response
// and frequency response figures of a CIC filter configuration.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/tphakala/go-cic"
	"github.com/tphakala/go-cic/internal/analysis"
)

const (
	// Display limits
	maxTapsToShow = 32
	barWidth      = 40

	// Default passband edge, relative to the low rate
	defaultBandwidth = 0.1

	// Droop table points, relative to the low rate
	droopSteps = 10
	droopSpan  = 0.5
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		log.Fatal(err)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("analyze-cic", flag.ContinueOnError)
	stages := fs.Int("stages", cic.DefaultStages, "Number of integrator/comb stages N")
	factor := fs.Int("factor", 8, "Rate change factor R")
	delay := fs.Int("delay", 1, "Comb differential delay M (1 or 2)")
	inWidth := fs.Int("in", cic.DefaultWidth, "Input width in bits")
	outWidth := fs.Int("out", cic.DefaultWidth, "Output width in bits")
	mode := fs.String("mode", "decimate", "Filter mode: decimate or interpolate")
	bandwidth := fs.Float64("bw", defaultBandwidth, "Passband edge relative to the low rate")
	if err := fs.Parse(args); err != nil {
		return err
	}

	m := cic.ModeDecimate
	if strings.EqualFold(*mode, "interpolate") {
		m = cic.ModeInterpolate
	}

	f, err := cic.New(&cic.Config{
		Stages:            *stages,
		Factor:            *factor,
		DifferentialDelay: *delay,
		InputWidth:        *inWidth,
		OutputWidth:       *outWidth,
		Round:             true,
		Saturate:          true,
		Mode:              m,
	})
	if err != nil {
		return err
	}

	info := cic.GetInfo(f)
	w := info.Widths

	fmt.Println("=== CIC Filter Analysis ===")
	fmt.Printf("  Algorithm: %s\n", info.Algorithm)
	fmt.Printf("  N=%d R=%d M=%d\n", w.Stages, w.Factor, w.Delay)
	fmt.Printf("  Input width: %d bits\n", w.In)
	fmt.Printf("  Bit growth: %d bits\n", w.Growth)
	fmt.Printf("  Full precision: %d bits (%s datapath)\n", w.Full, info.Datapath)
	fmt.Printf("  Output width: %d bits (%d discarded)\n", w.Out, w.Discard())
	fmt.Printf("  Gain: %s (%.6f at output)\n", info.Gain, info.OutputGain)
	fmt.Printf("  Latency: %d samples\n", info.Latency)
	fmt.Printf("  Registers: %d (%d bytes)\n", info.Registers, info.MemoryUsage)
	fmt.Printf("  SIMD: %s\n", info.SIMDType)

	p := analysis.Params{Stages: w.Stages, Factor: w.Factor, Delay: w.Delay}
	h, err := analysis.Coefficients(p)
	if err != nil {
		return err
	}

	fmt.Printf("\nImpulse response (%d taps):\n", len(h))
	peak := h[analysis.PeakIndex(h)]
	for i, c := range h[:min(len(h), maxTapsToShow)] {
		bar := strings.Repeat("#", int(c/peak*barWidth))
		fmt.Printf("  h[%3d] = %10.0f %s\n", i, c, bar)
	}
	if len(h) > maxTapsToShow {
		fmt.Printf("  ... %d more\n", len(h)-maxTapsToShow)
	}

	fmt.Println("\nPassband droop:")
	for i := 0; i <= droopSteps; i++ {
		freq := droopSpan * float64(i) / droopSteps
		fmt.Printf("  f=%.3f  %8.3f dB\n", freq, analysis.DroopDB(p, freq))
	}

	rejection, err := analysis.AliasRejection(p, *bandwidth)
	if err != nil {
		return err
	}
	fmt.Printf("\nWorst-case alias rejection for bw=%.3f: %.2f dB\n", *bandwidth, rejection)

	return nil
}

package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"math/bits"
	"os"
	"strings"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/tphakala/go-cic"
)

// parseMode maps the -mode flag to a filter mode.
func parseMode(s string) (cic.Mode, error) {
	switch strings.ToLower(s) {
	case "decimate", "dec", "down":
		return cic.ModeDecimate, nil
	case "interpolate", "int", "up":
		return cic.ModeInterpolate, nil
	default:
		return 0, fmt.Errorf("unknown mode %q (want decimate or interpolate)", s)
	}
}

// wavInputInfo holds validated input file information.
type wavInputInfo struct {
	file         *os.File
	decoder      *wav.Decoder
	rate         int
	channels     int
	bitDepth     int
	totalSamples int64
	format       *audio.Format
}

// openWAVInput opens and validates a WAV file, returning format information.
func openWAVInput(path string, verbose bool) (*wavInputInfo, error) {
	inputFile, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}

	decoder := wav.NewDecoder(inputFile)
	if !decoder.IsValidFile() {
		_ = inputFile.Close()
		return nil, fmt.Errorf("invalid WAV file: %s", path)
	}

	format := decoder.Format()
	bitDepth := int(decoder.BitDepth)
	switch bitDepth {
	case bitsPerSample16, bitsPerSample24, bitsPerSample32:
	default:
		_ = inputFile.Close()
		return nil, fmt.Errorf("unsupported bit depth %d (want 16, 24 or 32)", bitDepth)
	}

	if verbose {
		log.Printf("Input format: %d Hz, %d channels, %d-bit", format.SampleRate, format.NumChannels, bitDepth)
	}

	duration, err := decoder.Duration()
	if err != nil {
		duration = 0
	}

	return &wavInputInfo{
		file:         inputFile,
		decoder:      decoder,
		rate:         format.SampleRate,
		channels:     format.NumChannels,
		bitDepth:     bitDepth,
		totalSamples: int64(duration.Seconds() * float64(format.SampleRate)),
		format:       format,
	}, nil
}

// Close closes the input file.
func (w *wavInputInfo) Close() error {
	return w.file.Close()
}

// gainShift returns how many extra output bits an interpolator keeps.
// Zero stuffing divides the DC gain by R; keeping ceil(log2(R)) more bits
// restores unity gain for power-of-two factors.
func gainShift(opts options) int {
	if opts.mode != cic.ModeInterpolate {
		return 0
	}
	return bits.Len(uint(opts.factor - 1))
}

// bankConfig builds the filter configuration for a file. Samples enter at
// the file bit depth and leave gainShift bits wider; the writer clamps them
// back to the file range.
func bankConfig(opts options, bitDepth, channels int) *cic.Config {
	return &cic.Config{
		Stages:            opts.stages,
		Factor:            opts.factor,
		DifferentialDelay: opts.delay,
		InputWidth:        bitDepth,
		OutputWidth:       bitDepth + gainShift(opts),
		Round:             opts.round,
		Saturate:          opts.saturate,
		Mode:              opts.mode,
		Channels:          channels,
		EnableParallel:    opts.parallel,
	}
}

// outputRate returns the sample rate after the rate change.
func outputRate(opts options, rate int) int {
	if opts.mode == cic.ModeInterpolate {
		return rate * opts.factor
	}
	return rate / opts.factor
}

// wavOutputWriter wraps the output file and encoder.
type wavOutputWriter struct {
	file    *os.File
	encoder *wav.Encoder
	format  *audio.Format
	depth   int
}

// createWAVOutput creates the output file and encoder.
func createWAVOutput(path string, sampleRate, bitDepth, channels int) (*wavOutputWriter, error) {
	outputFile, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}

	return &wavOutputWriter{
		file:    outputFile,
		encoder: wav.NewEncoder(outputFile, sampleRate, bitDepth, channels, wavFormatPCM),
		format:  &audio.Format{NumChannels: channels, SampleRate: sampleRate},
		depth:   bitDepth,
	}, nil
}

// WriteSamples writes interleaved samples to the output file.
func (w *wavOutputWriter) WriteSamples(samples []int64) error {
	if len(samples) == 0 {
		return nil
	}

	hi := int64(1)<<(w.depth-1) - 1
	lo := -hi - 1
	data := make([]int, len(samples))
	for i, s := range samples {
		data[i] = int(min(max(s, lo), hi))
	}

	return w.encoder.Write(&audio.IntBuffer{
		Format:         w.format,
		Data:           data,
		SourceBitDepth: w.depth,
	})
}

// Close finalizes the WAV header and closes the file.
func (w *wavOutputWriter) Close() error {
	if err := w.encoder.Close(); err != nil {
		_ = w.file.Close()
		return err
	}
	return w.file.Close()
}

// progressTracker handles progress reporting.
type progressTracker struct {
	totalSamples int64
	lastProgress int
	verbose      bool
}

// newProgressTracker creates a new progress tracker.
func newProgressTracker(totalSamples int64, verbose bool) *progressTracker {
	return &progressTracker{
		totalSamples: totalSamples,
		verbose:      verbose,
	}
}

// reportIfNeeded reports progress if threshold crossed.
func (p *progressTracker) reportIfNeeded(currentSamples int64) {
	if !p.verbose || p.totalSamples == 0 {
		return
	}

	progress := int(float64(currentSamples) / float64(p.totalSamples) * percentScale)
	if progress >= p.lastProgress+progressInterval {
		log.Printf("Progress: %d%%", progress)
		p.lastProgress = progress
	}
}

// filterWAV runs a whole file through a filter bank.
func filterWAV(inputPath, outputPath string, opts options) (stats *filterStats, err error) {
	input, err := openWAVInput(inputPath, opts.verbose)
	if err != nil {
		return nil, err
	}
	defer func() { _ = input.Close() }()

	bank, err := cic.NewBank(bankConfig(opts, input.bitDepth, input.channels))
	if err != nil {
		return nil, fmt.Errorf("failed to create filter: %w", err)
	}

	rate := outputRate(opts, input.rate)
	if rate < 1 {
		return nil, fmt.Errorf("factor %d too large for %d Hz input", opts.factor, input.rate)
	}

	output, err := createWAVOutput(outputPath, rate, input.bitDepth, input.channels)
	if err != nil {
		return nil, err
	}
	// Close errors matter here: the encoder writes the final header sizes
	defer func() {
		if closeErr := output.Close(); err == nil {
			err = closeErr
		}
	}()

	w := bank.Channel(0).Widths()
	stats = &filterStats{
		inputRate:  input.rate,
		outputRate: rate,
		channels:   input.channels,
		bitDepth:   input.bitDepth,
		fullWidth:  w.Full,
		discarded:  w.Discard(),
	}
	progress := newProgressTracker(input.totalSamples, opts.verbose)

	buf := &audio.IntBuffer{
		Data:   make([]int, bufferFrames*input.channels),
		Format: input.format,
	}
	samples := make([]int64, 0, len(buf.Data))

	for {
		n, err := input.decoder.PCMBuffer(buf)
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("failed to read audio data: %w", err)
		}
		// drop a trailing partial frame
		n -= n % input.channels
		if n == 0 {
			break
		}

		samples = samples[:0]
		for _, v := range buf.Data[:n] {
			samples = append(samples, int64(v))
		}
		stats.inputFrames += int64(n / input.channels)

		out, err := bank.ProcessInterleaved(samples)
		if err != nil {
			return nil, err
		}
		stats.outputFrames += int64(len(out) / input.channels)

		if err := output.WriteSamples(out); err != nil {
			return nil, fmt.Errorf("failed to write audio data: %w", err)
		}

		progress.reportIfNeeded(stats.inputFrames)
	}

	return stats, nil
}

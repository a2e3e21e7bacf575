package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tphakala/go-cic"
)

// writeTestWAV writes interleaved 16-bit samples to a temporary WAV file.
func writeTestWAV(t *testing.T, rate, channels int, data []int) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "input.wav")
	f, err := os.Create(path)
	require.NoError(t, err)

	enc := wav.NewEncoder(f, rate, bitsPerSample16, channels, wavFormatPCM)
	require.NoError(t, enc.Write(&audio.IntBuffer{
		Format:         &audio.Format{NumChannels: channels, SampleRate: rate},
		Data:           data,
		SourceBitDepth: bitsPerSample16,
	}))
	require.NoError(t, enc.Close())
	require.NoError(t, f.Close())

	return path
}

// readTestWAV returns the decoded samples and format of a WAV file.
func readTestWAV(t *testing.T, path string) ([]int, *audio.Format) {
	t.Helper()

	f, err := os.Open(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	dec := wav.NewDecoder(f)
	buf, err := dec.FullPCMBuffer()
	require.NoError(t, err)

	return buf.Data, buf.Format
}

func defaultOptions() options {
	return options{
		mode:     cic.ModeDecimate,
		factor:   4,
		stages:   3,
		delay:    1,
		round:    true,
		saturate: true,
		parallel: true,
	}
}

func TestOpenWAVInput_FileNotFound(t *testing.T) {
	_, err := openWAVInput("/nonexistent/file.wav", false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open input file")
}

func TestOpenWAVInput_InvalidWAV(t *testing.T) {
	tmpDir := t.TempDir()
	invalidFile := filepath.Join(tmpDir, "invalid.wav")
	err := os.WriteFile(invalidFile, []byte("not a wav file"), 0o644)
	require.NoError(t, err)

	_, err = openWAVInput(invalidFile, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid WAV file")
}

func TestOpenWAVInput_Format(t *testing.T) {
	path := writeTestWAV(t, 48000, 2, make([]int, 200))

	in, err := openWAVInput(path, false)
	require.NoError(t, err)
	defer func() { _ = in.Close() }()

	assert.Equal(t, 48000, in.rate)
	assert.Equal(t, 2, in.channels)
	assert.Equal(t, bitsPerSample16, in.bitDepth)
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    cic.Mode
		wantErr bool
	}{
		{"decimate", cic.ModeDecimate, false},
		{"DOWN", cic.ModeDecimate, false},
		{"interpolate", cic.ModeInterpolate, false},
		{"up", cic.ModeInterpolate, false},
		{"resample", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseMode(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBankConfig(t *testing.T) {
	opts := defaultOptions()

	config := bankConfig(opts, bitsPerSample24, 2)
	require.NoError(t, config.Validate())
	assert.Equal(t, 24, config.InputWidth)
	assert.Equal(t, 24, config.OutputWidth)
	assert.Equal(t, 2, config.Channels)

	opts.mode = cic.ModeInterpolate
	opts.factor = 8
	config = bankConfig(opts, bitsPerSample16, 1)
	require.NoError(t, config.Validate())
	assert.Equal(t, 16, config.InputWidth)
	assert.Equal(t, 19, config.OutputWidth)
}

func TestGainShift(t *testing.T) {
	opts := defaultOptions()
	assert.Equal(t, 0, gainShift(opts))

	opts.mode = cic.ModeInterpolate
	for factor, want := range map[int]int{1: 0, 2: 1, 3: 2, 4: 2, 5: 3, 16: 4} {
		opts.factor = factor
		assert.Equal(t, want, gainShift(opts), "factor %d", factor)
	}
}

func TestOutputRate(t *testing.T) {
	opts := defaultOptions()
	assert.Equal(t, 12000, outputRate(opts, 48000))

	opts.mode = cic.ModeInterpolate
	opts.factor = 2
	assert.Equal(t, 96000, outputRate(opts, 48000))
}

func TestCreateWAVOutput_InvalidDirectory(t *testing.T) {
	_, err := createWAVOutput("/nonexistent/dir/output.wav", 48000, 16, 2)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create output file")
}

func TestWriteSamples_Clamps(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clamp.wav")
	out, err := createWAVOutput(path, 8000, bitsPerSample16, 1)
	require.NoError(t, err)

	require.NoError(t, out.WriteSamples(nil))
	require.NoError(t, out.WriteSamples([]int64{40000, -40000, 123}))
	require.NoError(t, out.Close())

	data, _ := readTestWAV(t, path)
	assert.Equal(t, []int{32767, -32768, 123}, data)
}

func TestProgressTracker_VerboseMode(t *testing.T) {
	tracker := newProgressTracker(1000, true)
	tracker.reportIfNeeded(150)
	assert.Equal(t, 15, tracker.lastProgress)

	// below the next threshold: unchanged
	tracker.reportIfNeeded(200)
	assert.Equal(t, 15, tracker.lastProgress)
}

func TestProgressTracker_NonVerboseMode(t *testing.T) {
	tracker := newProgressTracker(1000, false)
	tracker.reportIfNeeded(500)
	assert.Equal(t, 0, tracker.lastProgress)
}

func TestProgressTracker_ZeroSamples(t *testing.T) {
	tracker := newProgressTracker(0, true)
	tracker.reportIfNeeded(500)
	assert.Equal(t, 0, tracker.lastProgress)
}

func TestFilterWAV_DecimateStereo(t *testing.T) {
	const frames = 4096
	data := make([]int, 0, 2*frames)
	for range frames {
		data = append(data, 1000, -2000)
	}
	inputPath := writeTestWAV(t, 48000, 2, data)
	outputPath := filepath.Join(t.TempDir(), "output.wav")

	stats, err := filterWAV(inputPath, outputPath, defaultOptions())
	require.NoError(t, err)

	assert.Equal(t, 12000, stats.outputRate)
	assert.Equal(t, int64(frames), stats.inputFrames)
	assert.Equal(t, int64(frames/4), stats.outputFrames)
	assert.Equal(t, 22, stats.fullWidth)
	assert.Equal(t, 6, stats.discarded)

	out, format := readTestWAV(t, outputPath)
	assert.Equal(t, 12000, format.SampleRate)
	assert.Equal(t, 2, format.NumChannels)
	require.Len(t, out, 2*frames/4)

	// R=4, N=3: gain 64 is exactly the 6 discarded bits
	n := len(out)
	assert.Equal(t, 1000, out[n-2])
	assert.Equal(t, -2000, out[n-1])
}

func TestFilterWAV_InterpolateMono(t *testing.T) {
	const frames = 1000
	data := make([]int, frames)
	for i := range data {
		data[i] = 3000
	}
	inputPath := writeTestWAV(t, 8000, 1, data)
	outputPath := filepath.Join(t.TempDir(), "output.wav")

	opts := defaultOptions()
	opts.mode = cic.ModeInterpolate
	opts.factor = 2
	opts.parallel = false

	stats, err := filterWAV(inputPath, outputPath, opts)
	require.NoError(t, err)
	assert.Equal(t, int64(2*frames), stats.outputFrames)

	out, format := readTestWAV(t, outputPath)
	assert.Equal(t, 16000, format.SampleRate)
	require.Len(t, out, 2*frames)

	// unity gain once the cascade has filled
	for _, v := range out[len(out)-10:] {
		assert.Equal(t, 3000, v)
	}
}

func TestFilterWAV_FactorTooLarge(t *testing.T) {
	inputPath := writeTestWAV(t, 8, 1, make([]int, 16))
	outputPath := filepath.Join(t.TempDir(), "output.wav")

	opts := defaultOptions()
	opts.factor = 16
	_, err := filterWAV(inputPath, outputPath, opts)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "too large")
}

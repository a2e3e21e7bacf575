// Package cic provides streaming fixed-point CIC (cascaded integrator-comb)
// decimation and interpolation filters in pure Go.
//
// A CIC filter changes the sample rate by an integer factor R using only
// additions, subtractions and delays. The datapath is bit-exact: registers
// are sized from the configuration so the filter never loses precision
// internally, and the output stage rounds and saturates or wraps exactly as
// a hardware implementation of the same widths would.
//
// # Features
//
//   - Decimators and interpolators of any order, rate factor and
//     differential delay of 1 or 2
//   - Bit-exact fixed-point arithmetic at any internal width; registers
//     wider than 64 bits switch to math/big transparently
//   - Optional round-half-up and saturation at the output
//   - Cycle-level ready/valid streaming interface with backpressure
//   - Batch processing and multi-channel banks with optional parallelism
//
// # Quick Start
//
// For one-shot decimation:
//
//	out, err := cic.Decimate(samples, &cic.Config{
//	    Stages:            3,
//	    Factor:            8,
//	    DifferentialDelay: 1,
//	    InputWidth:        16,
//	    OutputWidth:       16,
//	    Round:             true,
//	    Saturate:          true,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// For streaming use, create a filter once and call Process repeatedly. State
// carries over between calls, so chunk boundaries do not affect the output:
//
//	d, err := cic.NewDecimator(config)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for chunk := range chunks {
//	    out, err := d.Process(chunk)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    writeOutput(out)
//	}
//
// # Widths
//
// The internal register width is
//
//	FullWidth = InputWidth + Stages*ceil(log2(Factor*DifferentialDelay))
//
// and OutputWidth may not exceed it. The output is the top OutputWidth bits
// of the full-precision result, so the DC gain seen at the output is
// (R*M)^N / 2^(FullWidth-OutputWidth) for a decimator. [Info] reports every
// derived width together with the gains.
//
// # Streaming Ports
//
// [Filter.Step] advances the filter by one clock tick. The [Signals] passed
// in drive the input handshake (InValid, InData), the downstream ready
// signal (OutReady) and a synchronous reset. The returned [Tick] reports
// what happened during the tick: whether the input was accepted, and the
// registered output with its valid flag. A sample is transferred whenever
// valid and ready are both high.
//
// A decimator accepts one input per tick while downstream keeps up and
// produces one output per R inputs. An interpolator accepts one input and
// then emits R outputs on the following ticks, refusing input meanwhile.
// When downstream holds OutReady low the output is held unchanged and
// input stalls; the output sequence does not depend on the backpressure
// pattern.
//
// # Thread Safety
//
// Every method on a single filter is serialized internally. A [Bank] keeps
// one filter per channel and can process channels concurrently when
// EnableParallel is set.
package cic

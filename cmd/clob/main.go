// Command clob wires the external reader, the matching engine, the
// trade sink, and the snapshot printer into the one end-to-end run the
// core itself stays out of: reading one order per line until EOF,
// streaming trades as they're produced, and printing the final
// resting book.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"ember/internal/engine"
	"ember/internal/ingest"
	"ember/internal/present"
	"ember/internal/sink"
)

func main() {
	os.Exit(run())
}

func run() int {
	inPath := flag.String("in", "", "input file (default: stdin)")
	outPath := flag.String("out", "", "output file (default: stdout)")
	logLevel := flag.String("log-level", "info", "zerolog level: debug, info, warn, error")
	flag.Parse()

	level, err := zerolog.ParseLevel(*logLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid -log-level: %v\n", err)
		return 2
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	in := os.Stdin
	if *inPath != "" {
		f, err := os.Open(*inPath)
		if err != nil {
			log.Error().Err(err).Msg("unable to open input file")
			return 1
		}
		defer f.Close()
		in = f
	}

	out := os.Stdout
	if *outPath != "" {
		f, err := os.Create(*outPath)
		if err != nil {
			log.Error().Err(err).Msg("unable to create output file")
			return 1
		}
		defer f.Close()
		out = f
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	writer := sink.NewWriterSink(out)
	async := sink.NewAsyncSink(ctx, writer)

	eng := engine.New(async)
	log.Info().Str("run_id", eng.RunID()).Msg("engine started")

	scanner := bufio.NewScanner(in)
	lineNo := 0
	for scanner.Scan() {
		select {
		case <-ctx.Done():
			log.Warn().Msg("interrupted, stopping before end of input")
			async.Close()
			return 130
		default:
		}

		lineNo++
		line := scanner.Text()
		if line == "" {
			continue
		}

		o, err := ingest.ParseLine(line)
		if err != nil {
			log.Error().Err(err).Int("line", lineNo).Msg("malformed input")
			async.Close()
			return 1
		}

		if err := eng.Submit(o); err != nil {
			log.Error().Err(err).Int("line", lineNo).Str("id", o.ID()).Msg("order rejected")
			async.Close()
			return 1
		}
	}
	if err := scanner.Err(); err != nil {
		log.Error().Err(err).Msg("error reading input")
		async.Close()
		return 1
	}

	if err := async.Close(); err != nil {
		log.Error().Err(err).Msg("error flushing trade sink")
		return 1
	}

	buys, sells := eng.Snapshot()
	if err := present.Snapshot(out, buys, sells); err != nil {
		log.Error().Err(err).Msg("error writing snapshot")
		return 1
	}

	return 0
}

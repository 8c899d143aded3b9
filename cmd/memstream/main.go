package main

import (
	goerrors "errors"
	"flag"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/wippyai/memstream/errors"
	"github.com/wippyai/memstream/guest"
	"github.com/wippyai/memstream/memory"
	"github.com/wippyai/memstream/stream"
	"github.com/wippyai/memstream/streams"
)

func main() {
	var (
		kind        = flag.String("mode", "growable", "Stream kind: fixed or growable")
		capacity    = flag.Int("cap", 4096, "Capacity of a fixed stream")
		fmode       = flag.String("fmode", "w+", "Open mode of a fixed stream (r, w, a, +, b)")
		initial     = flag.Int("initial", memory.DefaultInitialCapacity, "Initial capacity of a growable stream")
		limit       = flag.Int("limit", 0, "Largest allocation a growable stream may make (0 = unlimited)")
		verbose     = flag.Bool("v", false, "Log stream events to stderr")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
	)
	flag.Parse()

	if *verbose {
		logger, err := zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer func() { _ = logger.Sync() }()
		memory.SetLogger(logger)
		streams.SetLogger(logger)
		guest.SetLogger(logger)
	}

	opts := options{
		kind:     *kind,
		capacity: *capacity,
		fmode:    *fmode,
		initial:  *initial,
		limit:    *limit,
	}

	if *interactive {
		if !term.IsTerminal(int(os.Stdin.Fd())) {
			fmt.Fprintln(os.Stderr, "Error: -i needs a terminal on stdin")
			os.Exit(1)
		}
		if err := runInteractive(opts); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := run(opts, os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run pipes in through a stream opened with opts and copies the stream's
// content to out. A fixed stream keeps what fits and reports the rest as
// dropped.
func run(opts options, in io.Reader, out, diag io.Writer) error {
	ss, err := openSession(opts)
	if err != nil {
		return err
	}
	defer func() { _ = ss.close() }()

	data, err := io.ReadAll(in)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	n, err := stream.WriteAll(ss.s, data)
	if err != nil && !goerrors.Is(err, errors.ErrCapacityExhausted) {
		return err
	}
	if n < len(data) {
		fmt.Fprintf(diag, "stream full: dropped %d of %d bytes\n", len(data)-n, len(data))
	}

	if _, err := ss.s.Seek(0, io.SeekStart); err != nil {
		return err
	}
	if ss.s.Readable() {
		if _, err := io.Copy(out, ss.s); err != nil {
			return fmt.Errorf("copy output: %w", err)
		}
	}

	fmt.Fprintf(diag, "%s: %s\n", opts.kind, ss.stats())
	return nil
}

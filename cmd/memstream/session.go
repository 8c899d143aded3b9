package main

import (
	"fmt"

	"github.com/wippyai/memstream/memory"
	"github.com/wippyai/memstream/stream"
)

type options struct {
	kind     string
	capacity int
	fmode    string
	initial  int
	limit    int
}

// session is one open stream plus what the CLI needs to describe it.
type session struct {
	opts   options
	s      *stream.Stream
	fixed  *memory.Fixed
	grow   *memory.Growable
	out    *memory.Buffer
	buf    []byte
	closed bool
}

func openSession(opts options) (*session, error) {
	ss := &session{opts: opts}
	switch opts.kind {
	case "fixed":
		// NewFixed rejects a negative capacity.
		ss.buf = make([]byte, max(opts.capacity, 0))
		f, err := memory.NewFixed(ss.buf, opts.capacity, opts.fmode)
		if err != nil {
			return nil, err
		}
		s, err := stream.Bind(f)
		if err != nil {
			return nil, err
		}
		ss.s, ss.fixed = s, f

	case "growable":
		cfg := memory.NewConfig().WithInitialCapacity(opts.initial)
		if opts.limit > 0 {
			cfg = cfg.WithLimit(opts.limit)
		}
		out := &memory.Buffer{}
		g, err := memory.NewGrowable(out, cfg)
		if err != nil {
			return nil, err
		}
		s, err := stream.Bind(g)
		if err != nil {
			return nil, err
		}
		ss.s, ss.grow, ss.out = s, g, out

	default:
		return nil, fmt.Errorf("unknown stream kind %q (want fixed or growable)", opts.kind)
	}
	return ss, nil
}

// reopen closes the current stream, if open, and starts a fresh one with
// the same options.
func (ss *session) reopen() (*session, error) {
	if !ss.closed {
		_ = ss.s.Close()
	}
	return openSession(ss.opts)
}

func (ss *session) close() error {
	if ss.closed {
		return nil
	}
	ss.closed = true
	return ss.s.Close()
}

type stats struct {
	pos      int
	length   int
	capacity int
	grows    int
}

// stats reports the stream's bookkeeping. After close the content is still
// available from the caller-side buffers but position is meaningless.
func (ss *session) stats() stats {
	if ss.fixed != nil {
		return stats{pos: ss.fixed.Pos(), length: ss.fixed.HighWaterMark(), capacity: ss.fixed.Cap()}
	}
	st := stats{length: ss.out.Len(), capacity: ss.out.Cap()}
	if !ss.closed {
		st.pos = ss.grow.Pos()
		st.grows = ss.grow.Grows()
	}
	return st
}

// content returns the valid bytes of the stream.
func (ss *session) content() []byte {
	if ss.fixed != nil {
		return ss.buf[:ss.fixed.HighWaterMark()]
	}
	return ss.out.Bytes()
}

func (st stats) String() string {
	s := fmt.Sprintf("pos=%d len=%d cap=%d", st.pos, st.length, st.capacity)
	if st.grows > 0 {
		s += fmt.Sprintf(" grows=%d", st.grows)
	}
	return s
}

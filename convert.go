package seehtml

import (
	"errors"
	"fmt"
	"io"
	"sync"
)

var sessionPool = sync.Pool{
	New: func() any {
		return &Session{}
	},
}

var htmlWriterPool = sync.Pool{
	New: func() any {
		return &HTMLWriter{}
	},
}

// ConvertRequest configures Convert.
type ConvertRequest struct {
	Reader  io.Reader
	Writer  io.Writer
	Options []Option
}

// DecodeRequest configures Decode.
type DecodeRequest struct {
	Reader  io.Reader
	Sink    Sink
	Options []Option
}

// Convert renders a listing from Reader as HTML to Writer.
func Convert(req ConvertRequest) error {
	if req.Reader == nil {
		return fmt.Errorf("convert: reader is nil")
	}
	if req.Writer == nil {
		return fmt.Errorf("convert: writer is nil")
	}
	cfg := newConfig(req.Options)
	if err := cfg.tags.Validate(); err != nil {
		return fmt.Errorf("convert: %w", err)
	}
	w := htmlWriterPool.Get().(*HTMLWriter)
	w.resetWithConfig(req.Writer, cfg)
	err := decode(req.Reader, w, cfg)
	if err != nil {
		// Keep what was rendered before the failure.
		_ = w.Flush()
	}
	w.Reset(io.Discard)
	htmlWriterPool.Put(w)
	if err != nil {
		return fmt.Errorf("convert: %w", err)
	}
	return nil
}

// Decode reads a listing and writes its tokens to a sink.
func Decode(req DecodeRequest) error {
	if req.Reader == nil {
		return fmt.Errorf("decode: reader is nil")
	}
	if req.Sink == nil {
		return fmt.Errorf("decode: sink is nil")
	}
	if err := decode(req.Reader, req.Sink, newConfig(req.Options)); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	return nil
}

func decode(r io.Reader, sink Sink, cfg config) error {
	s := sessionPool.Get().(*Session)
	s.reset(sink, cfg)
	defer func() {
		s.reset(nil, config{})
		sessionPool.Put(s)
	}()
	lines := NewLineReader(r, cfg.maxLine)
	first, err := lines.ReadLine()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return ErrEmptyInput
		}
		return fmt.Errorf("read: %w", err)
	}
	if err := s.Begin(); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	pos := []linePos{{lines.Line(), lines.Offset()}}
	h, err := ExtractHeader(first, func() ([]byte, error) {
		line, err := lines.ReadLine()
		if err == nil {
			pos = append(pos, linePos{lines.Line(), lines.Offset()})
		}
		return line, err
	})
	if err != nil {
		return fmt.Errorf("read: %w", err)
	}
	if err := s.writeHeader(h, pos); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	for {
		line, err := lines.ReadLine()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return fmt.Errorf("read: %w", err)
		}
		if err := s.renderLine(lines.Line(), lines.Offset(), line); err != nil {
			return fmt.Errorf("write: %w", err)
		}
	}
	if err := s.End(); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	return nil
}

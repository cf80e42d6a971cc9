// Copyright (c) 2024 Neomantra Corp
//
// Input adapters for the framer: plain files, gzip- or zstd-compressed
// files, and raw TCP sockets. The framer itself is agnostic to where its
// bytes come from (§6); this package is the one place that knows how to
// open each.

package source

import (
	"bufio"
	"fmt"
	"io"
	"net"
	"os"
	"strings"
	"time"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// Open returns a reader over path, transparently decompressing based on
// its extension (.gz, .zst). The returned closer closes every layer it
// opened, in reverse order.
func Open(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("itchbook: open %s: %w", path, err)
	}

	switch {
	case strings.HasSuffix(path, ".gz"):
		gz, err := gzip.NewReader(bufio.NewReaderSize(f, 64*1024))
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("itchbook: open gzip %s: %w", path, err)
		}
		return &multiCloser{r: gz, closers: []io.Closer{gz, f}}, nil

	case strings.HasSuffix(path, ".zst"):
		zr, err := zstd.NewReader(bufio.NewReaderSize(f, 64*1024))
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("itchbook: open zstd %s: %w", path, err)
		}
		return &multiCloser{r: zr.IOReadCloser(), closers: []io.Closer{zr.IOReadCloser(), f}}, nil

	default:
		return f, nil
	}
}

type multiCloser struct {
	r       io.Reader
	closers []io.Closer
}

func (m *multiCloser) Read(p []byte) (int, error) { return m.r.Read(p) }

func (m *multiCloser) Close() error {
	var firstErr error
	for _, c := range m.closers {
		if err := c.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// DialTCP connects to a raw TCP feed source (e.g. a SoupBinTCP gateway
// that has already stripped its session layer down to bare ITCH
// payloads). The framer reads from the returned connection like any other
// io.Reader; the connection is the caller's to close.
func DialTCP(addr string, timeout time.Duration) (net.Conn, error) {
	conn, err := net.DialTimeout("tcp", addr, timeout)
	if err != nil {
		return nil, fmt.Errorf("itchbook: dial %s: %w", addr, err)
	}
	return conn, nil
}

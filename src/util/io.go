package util

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/pkg/errors"
)

// Writer buffers one compile unit's ILOC text and flushes it onto a shared
// output channel, adapted from the teacher's util/io.go buffered channel-fed
// Writer: that design already supports multiple concurrent producers writing
// to one sink, which is exactly what batch-compiling independent files needs
// (SPEC_FULL.md's concurrency section).
type Writer struct {
	sb strings.Builder
	c  chan string
}

var wc chan string
var cc chan struct{}
var wg *sync.WaitGroup

// Write appends a formatted string to the Writer's buffer.
func (w *Writer) Write(format string, args ...interface{}) {
	w.sb.WriteString(fmt.Sprintf(format, args...))
}

// WriteString appends s to the Writer's buffer.
func (w *Writer) WriteString(s string) {
	w.sb.WriteString(s)
}

// Flush sends the buffer's contents to the shared output sink and resets it.
func (w *Writer) Flush() {
	w.c <- w.sb.String()
	w.sb = strings.Builder{}
}

// Close flushes and then signals completion to ListenWrite's WaitGroup.
func (w *Writer) Close() {
	w.Flush()
	w.c = nil
	wg.Done()
}

// NewWriter returns a Writer bound to the sink started by ListenWrite.
func NewWriter() Writer {
	wg.Add(1)
	return Writer{c: wc}
}

// ReadSource reads source text from path.
func ReadSource(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", errors.Wrapf(err, "reading %s", path)
	}
	return string(b), nil
}

// ListenWrite starts the background sink that serializes every Writer's
// output to f (stdout if f is nil). threads sizes the channel buffer so that
// threads concurrent producers never block each other on a full channel.
func ListenWrite(f *os.File, threads int, wgg *sync.WaitGroup) {
	wg = wgg
	if threads < 1 {
		threads = 1
	}
	wc = make(chan string, threads)
	cc = make(chan struct{})
	var out *os.File = f
	if out == nil {
		out = os.Stdout
	}
	bw := bufio.NewWriter(out)

	go func() {
		defer close(wc)
		for {
			select {
			case s := <-wc:
				_, _ = bw.WriteString(s)
				_ = bw.Flush()
			case <-cc:
				return
			}
		}
	}()
}

// CloseWrite signals the output sink to stop.
func CloseWrite() {
	close(cc)
}

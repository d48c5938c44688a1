// Package logwriter adapts line-oriented subprocess output to a logr.Logger.
package logwriter

import (
	"bufio"
	"io"

	"github.com/go-logr/logr"
)

// Writer logs every line written to it. Close flushes the last partial line
// and waits until every line has been logged.
type Writer struct {
	pw   *io.PipeWriter
	done chan struct{}
}

// LinePrefix returns a Writer that logs each line at V(level) with the
// given source attached.
func LinePrefix(log logr.Logger, level int, source string) *Writer {
	pr, pw := io.Pipe()
	w := &Writer{pw: pw, done: make(chan struct{})}

	go func() {
		defer close(w.done)
		defer func() { _ = pr.Close() }()

		s := bufio.NewScanner(pr)
		for s.Scan() {
			log.V(level).Info(s.Text(), "source", source)
		}
	}()

	return w
}

func (w *Writer) Write(p []byte) (int, error) {
	return w.pw.Write(p)
}

// Close ends the stream and waits for the logging goroutine.
func (w *Writer) Close() error {
	err := w.pw.Close()
	<-w.done
	return err
}

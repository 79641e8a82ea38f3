package proc

import (
	"bytes"
	"io"
	"sync"
	"time"
)

// capture accumulates stream content. Reads and the final snapshot race on
// the stuck path, hence the lock.
type capture struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (c *capture) append(p []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.buf.Write(p)
}

func (c *capture) String() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.buf.String()
}

// drainStreams consumes stdout and stderr until both hit EOF, echoing every
// chunk to the matching parent writer and accumulating it per stream. If
// neither stream produces a byte for idle, it gives up and returns
// stuck=true with whatever was captured so far; termination is the caller's
// job. Within one stream bytes are captured and echoed in read order; the
// interleaving between the two streams is unspecified.
func drainStreams(stdout, stderr io.Reader, echoOut, echoErr io.Writer, idle time.Duration) (capturedOut, capturedErr string, stuck bool) {
	activity := make(chan struct{}, 1)
	outCap := &capture{}
	errCap := &capture{}

	var wg sync.WaitGroup
	pump := func(r io.Reader, c *capture, echo io.Writer) {
		defer wg.Done()
		buf := make([]byte, 4096)
		for {
			n, err := r.Read(buf)
			if n > 0 {
				c.append(buf[:n])
				_, _ = echo.Write(buf[:n])
				select {
				case activity <- struct{}{}:
				default:
				}
			}
			if err != nil {
				return
			}
		}
	}
	wg.Add(2)
	go pump(stdout, outCap, echoOut)
	go pump(stderr, errCap, echoErr)

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	timer := time.NewTimer(idle)
	defer timer.Stop()
	for {
		select {
		case <-done:
			return outCap.String(), errCap.String(), false
		case <-activity:
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			timer.Reset(idle)
		case <-timer.C:
			// The pump goroutines stay blocked in Read until the caller
			// kills the child and its pipes close.
			return outCap.String(), errCap.String(), true
		}
	}
}

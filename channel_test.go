package smartscreen

import (
	"bytes"
	"errors"
	"testing"
)

// fakeChannel is an in-memory Channel standing in for a serial port. Reads
// serve stale bytes first, then queued responses, then report a timeout
// (0, nil) like a serial port with SetReadTimeout. Writes are recorded and
// can trigger a scripted response, mimicking a device that answers frames.
type fakeChannel struct {
	stale    []byte
	pending  []byte
	writes   [][]byte
	respond  func(frame []byte) []byte
	writeErr error
}

func (c *fakeChannel) Read(p []byte) (int, error) {
	if len(c.stale) > 0 {
		n := copy(p, c.stale)
		c.stale = c.stale[n:]
		return n, nil
	}
	if len(c.pending) > 0 {
		n := copy(p, c.pending)
		c.pending = c.pending[n:]
		return n, nil
	}
	return 0, nil
}

func (c *fakeChannel) Write(p []byte) (int, error) {
	if c.writeErr != nil {
		return 0, c.writeErr
	}
	frame := append([]byte(nil), p...)
	c.writes = append(c.writes, frame)
	if c.respond != nil {
		c.pending = append(c.pending, c.respond(frame)...)
	}
	return len(p), nil
}

// wrote returns every written byte in order.
func (c *fakeChannel) wrote() []byte {
	var buf bytes.Buffer
	for _, w := range c.writes {
		buf.Write(w)
	}
	return buf.Bytes()
}

func TestReadFullTimeout(t *testing.T) {
	ch := &fakeChannel{}
	buf := make([]byte, 4)
	if err := readFull(ch, buf); !errors.Is(err, ErrResponseTimeout) {
		t.Errorf("readFull on silent channel = %v, want ErrResponseTimeout", err)
	}
}

func TestReadFullShortRead(t *testing.T) {
	ch := &fakeChannel{pending: []byte{1, 2}}
	buf := make([]byte, 4)
	if err := readFull(ch, buf); !errors.Is(err, ErrShortRead) {
		t.Errorf("readFull on truncated response = %v, want ErrShortRead", err)
	}
}

func TestReadFullAcrossSplitReads(t *testing.T) {
	// Serve one byte per Read call to force the loop to accumulate.
	reads := [][]byte{{0xca}, {1}, {2}, {0xca}}
	idx := 0
	ch := readerFunc(func(p []byte) (int, error) {
		if idx >= len(reads) {
			return 0, nil
		}
		n := copy(p, reads[idx])
		idx++
		return n, nil
	})

	buf := make([]byte, 4)
	if err := readFull(ch, buf); err != nil {
		t.Fatalf("readFull failed: %v", err)
	}
	if !bytes.Equal(buf, []byte{0xca, 1, 2, 0xca}) {
		t.Errorf("readFull assembled %x, want ca0102ca", buf)
	}
}

func TestDrainStopsAtTimeout(t *testing.T) {
	ch := &fakeChannel{stale: bytes.Repeat([]byte{0x55}, 200)}
	drain(ch)
	if len(ch.stale) != 0 {
		t.Errorf("drain left %d stale bytes", len(ch.stale))
	}
}

// readerFunc adapts a function to Channel for read-only tests.
type readerFunc func(p []byte) (int, error)

func (f readerFunc) Read(p []byte) (int, error)  { return f(p) }
func (f readerFunc) Write(p []byte) (int, error) { return len(p), nil }

package smartscreen

import (
	"bytes"
	"errors"
	"testing"
	"time"
)

// echoFor builds a handshake response for the given descriptor, with the
// wildcard positions filled with firmware-ish bytes.
func echoFor(desc *Descriptor, filler byte) []byte {
	resp := append([]byte(nil), desc.Probe.Expect...)
	for i, m := range desc.Probe.Mask {
		if m == 0 {
			resp[i] = filler
		}
	}
	return resp
}

// answerOnly responds to the given descriptor's handshake and stays silent
// for anything else.
func answerOnly(desc *Descriptor, filler byte) func([]byte) []byte {
	return func(frame []byte) []byte {
		if bytes.Equal(frame, desc.Probe.Request) {
			return echoFor(desc, filler)
		}
		return nil
	}
}

func TestProbeBindsAnsweringVariant(t *testing.T) {
	ch := &fakeChannel{respond: answerOnly(RevB, 0x12)}

	disp, err := Probe(ch, nil)
	if err != nil {
		t.Fatalf("Probe failed: %v", err)
	}
	if disp.Descriptor() != RevB {
		t.Errorf("bound %v, want %v", disp.Descriptor(), RevB)
	}
	if len(ch.writes) != 1 || !bytes.Equal(ch.writes[0], RevB.Probe.Request) {
		t.Errorf("wire traffic = %v, want just the Rev B handshake", ch.writes)
	}
}

func TestProbeTriesCandidatesInOrder(t *testing.T) {
	// The first candidate stays silent; the prober must move on and bind the
	// second, after having sent both handshakes in order.
	ch := &fakeChannel{respond: answerOnly(RevB, 0x12)}

	disp, err := Probe(ch, nil, RevA, RevB)
	if err != nil {
		t.Fatalf("Probe failed: %v", err)
	}
	if disp.Descriptor() != RevB {
		t.Errorf("bound %v, want %v", disp.Descriptor(), RevB)
	}
	if len(ch.writes) != 2 {
		t.Fatalf("got %d handshakes, want 2", len(ch.writes))
	}
	if !bytes.Equal(ch.writes[0], RevA.Probe.Request) {
		t.Errorf("first handshake = %v, want Rev A's", ch.writes[0])
	}
	if !bytes.Equal(ch.writes[1], RevB.Probe.Request) {
		t.Errorf("second handshake = %v, want Rev B's", ch.writes[1])
	}
}

func TestProbeNoDeviceRecognized(t *testing.T) {
	ch := &fakeChannel{}

	_, err := Probe(ch, nil)
	if !errors.Is(err, ErrNoDeviceRecognized) {
		t.Fatalf("Probe on silent channel = %v, want ErrNoDeviceRecognized", err)
	}
	if len(ch.writes) != len(Variants()) {
		t.Errorf("sent %d handshakes, want one per candidate (%d)", len(ch.writes), len(Variants()))
	}
}

func TestProbeDrainsStaleBytes(t *testing.T) {
	ch := &fakeChannel{
		stale:   bytes.Repeat([]byte{0x99}, 30),
		respond: answerOnly(RevB, 0),
	}

	disp, err := Probe(ch, nil)
	if err != nil {
		t.Fatalf("Probe with stale bytes failed: %v", err)
	}
	if disp.Descriptor() != RevB {
		t.Errorf("bound %v, want %v", disp.Descriptor(), RevB)
	}
}

func TestProbeSkipsMismatchedResponse(t *testing.T) {
	// A wrong-pattern answer to the first candidate must not bind it.
	ch := &fakeChannel{respond: func(frame []byte) []byte {
		if bytes.Equal(frame, RevB.Probe.Request) {
			return bytes.Repeat([]byte{0x5a}, len(RevB.Probe.Expect))
		}
		if bytes.Equal(frame, RevA.Probe.Request) {
			return echoFor(RevA, 0x07)
		}
		return nil
	}}

	disp, err := Probe(ch, nil)
	if err != nil {
		t.Fatalf("Probe failed: %v", err)
	}
	if disp.Descriptor() != RevA {
		t.Errorf("bound %v, want %v", disp.Descriptor(), RevA)
	}
}

func TestProbeIgnoresFirmwareBytes(t *testing.T) {
	for _, filler := range []byte{0x00, 0x42, 0xff} {
		ch := &fakeChannel{respond: answerOnly(RevB, filler)}
		if _, err := Probe(ch, nil); err != nil {
			t.Errorf("firmware bytes %#02x rejected: %v", filler, err)
		}
	}
}

func TestProbeWriteErrorIsFatal(t *testing.T) {
	wantErr := errors.New("port gone")
	ch := &fakeChannel{writeErr: wantErr}

	_, err := Probe(ch, nil)
	if !errors.Is(err, wantErr) {
		t.Errorf("Probe = %v, want wrapped write error", err)
	}
	if errors.Is(err, ErrNoDeviceRecognized) {
		t.Error("write failure must not be reported as no device")
	}
}

func TestOptsDefaults(t *testing.T) {
	var nilOpts *Opts
	if got := nilOpts.interFrameDelay(); got != defaultInterFrameDelay {
		t.Errorf("nil opts delay = %v, want %v", got, defaultInterFrameDelay)
	}
	if got := (&Opts{InterFrameDelay: -1}).interFrameDelay(); got != 0 {
		t.Errorf("negative delay = %v, want pacing disabled", got)
	}
	if got := (&Opts{InterFrameDelay: 5 * time.Millisecond}).interFrameDelay(); got != 5*time.Millisecond {
		t.Errorf("explicit delay = %v, want 5ms", got)
	}
}

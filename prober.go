package smartscreen

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// Opts is the configuration for probing and for the bound display.
type Opts struct {
	// Logger receives probe progress and chunk-level debug output.
	// nil disables logging.
	Logger *zerolog.Logger

	// InterFrameDelay is the quiet gap enforced between bitmap data and the
	// next frame write. The panels corrupt their framebuffer without it.
	// Chunks within one region update stream back-to-back and pay the gap
	// only once. Zero means the 20ms default; negative disables pacing.
	InterFrameDelay time.Duration
}

// defaultInterFrameDelay is the quiet gap the panels need after bitmap data.
const defaultInterFrameDelay = 20 * time.Millisecond

func (o *Opts) logger() zerolog.Logger {
	if o == nil || o.Logger == nil {
		return zerolog.Nop()
	}
	return *o.Logger
}

func (o *Opts) interFrameDelay() time.Duration {
	if o == nil || o.InterFrameDelay == 0 {
		return defaultInterFrameDelay
	}
	if o.InterFrameDelay < 0 {
		return 0
	}
	return o.InterFrameDelay
}

// Probe identifies the panel attached to ch and returns a bound Display.
//
// Candidates are tried strictly in the order given; with none given,
// Variants() supplies the default priority order. For each candidate the
// channel is drained of stale bytes, the candidate's handshake is sent, and
// the response is matched against its expected pattern. The first match
// wins. A candidate that times out or answers with the wrong pattern is
// logged and skipped; a channel write failure is fatal.
//
// When every candidate fails, Probe returns ErrNoDeviceRecognized. That is
// terminal for this channel: a half-consumed handshake may have left the
// device mid-protocol, so reopen or reset the device before probing again.
func Probe(ch Channel, opts *Opts, candidates ...*Descriptor) (*Display, error) {
	if len(candidates) == 0 {
		candidates = Variants()
	}
	log := opts.logger()

	for _, desc := range candidates {
		drain(ch)

		log.Debug().Str("variant", desc.Name).Msg("sending handshake")
		if _, err := ch.Write(desc.Probe.Request); err != nil {
			return nil, fmt.Errorf("smartscreen: probe write: %w", err)
		}

		resp := make([]byte, len(desc.Probe.Expect))
		if err := readFull(ch, resp); err != nil {
			log.Debug().Str("variant", desc.Name).Err(err).Msg("no handshake response")
			continue
		}
		if !desc.Probe.Matches(resp) {
			log.Debug().Str("variant", desc.Name).Hex("response", resp).Msg("handshake response mismatch")
			continue
		}

		log.Info().Str("variant", desc.Name).Msg("panel identified")
		return newDisplay(ch, desc, opts), nil
	}

	return nil, ErrNoDeviceRecognized
}

package smartscreen

import (
	"fmt"
)

// Frame codec. Encoding and decoding are driven by the variant's Layout
// table; no device-specific logic lives here.

// EncodeFrame builds the on-wire bytes for one command: fixed-width header
// (opcode plus zero-padded parameters, echoed trailer when the layout asks
// for one), the payload, and the checksum when the layout declares one.
func EncodeFrame(l Layout, opcode byte, params, payload []byte) ([]byte, error) {
	if len(params) > l.ParamLen {
		return nil, fmt.Errorf("smartscreen: %d parameter bytes exceed layout width %d", len(params), l.ParamLen)
	}

	frame := make([]byte, 0, l.headerLen()+len(payload)+1)

	if l.OpcodeFirst {
		frame = append(frame, opcode)
	}
	frame = append(frame, params...)
	for i := len(params); i < l.ParamLen; i++ {
		frame = append(frame, 0)
	}
	if !l.OpcodeFirst {
		frame = append(frame, opcode)
	} else if l.TrailerEcho {
		frame = append(frame, opcode)
	}

	frame = append(frame, payload...)

	if sum, ok := checksum(l.Checksum, frame); ok {
		frame = append(frame, sum)
	}

	return frame, nil
}

// DecodeResponse validates a complete response frame against the layout and
// returns its status byte. The response must carry the command's opcode in
// the positions the layout dictates; a declared checksum is verified over
// everything preceding it.
func DecodeResponse(l Layout, opcode byte, resp []byte) (byte, error) {
	body := resp

	if l.Checksum != ChecksumNone {
		if len(body) < 2 {
			return 0, ErrShortRead
		}
		n := len(body) - 1
		want, _ := checksum(l.Checksum, body[:n])
		if body[n] != want {
			return 0, ErrChecksumMismatch
		}
		body = body[:n]
	}

	if l.TrailerEcho {
		if len(body) < 1 || body[len(body)-1] != opcode {
			return 0, ErrBadFraming
		}
		body = body[:len(body)-1]
	}

	if len(body) < 2 {
		return 0, ErrShortRead
	}
	if l.OpcodeFirst {
		if body[0] != opcode {
			return 0, ErrBadFraming
		}
		return body[1], nil
	}
	if body[len(body)-1] != opcode {
		return 0, ErrBadFraming
	}
	return body[0], nil
}

// checksum computes the declared checksum over data. The second return is
// false for ChecksumNone.
func checksum(kind ChecksumKind, data []byte) (byte, bool) {
	switch kind {
	case ChecksumSum8:
		var s byte
		for _, b := range data {
			s += b
		}
		return s, true
	case ChecksumXor8:
		var s byte
		for _, b := range data {
			s ^= b
		}
		return s, true
	default:
		return 0, false
	}
}

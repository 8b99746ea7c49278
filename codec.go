package spdm

import (
	"errors"
	"fmt"
)

var (
	// ErrTruncated means the buffer is shorter than the minimum size required
	// by the declared message type.
	ErrTruncated = errors.New("spdm: truncated message")

	// ErrMalformed means the buffer is structurally present but internally
	// inconsistent, e.g. a payload where the layout forbids one.
	ErrMalformed = errors.New("spdm: malformed message")

	// ErrReservedCode means the code byte is reserved for future spec
	// revisions. Whether to log and ignore or abort the session is the
	// transport layer's call, not this codec's.
	ErrReservedCode = errors.New("spdm: reserved message code")

	// ErrUnimplemented means the code is assigned by the spec but this codec
	// carries no payload schema for it yet. Distinct from ErrMalformed so
	// callers can tell "bad data" from "not yet supported".
	ErrUnimplemented = errors.New("spdm: message code not implemented")
)

// payloadDecoder turns a header plus payload bytes into a message value,
// returning any non-fatal trailing bytes the layout did not consume.
type payloadDecoder func(h Header, payload []byte) (any, []byte, error)

// Dispatch tables: one entry per assigned code, nil where SPDM defines a
// payload this codec does not carry yet. Filling in a placeholder later
// means replacing one nil; the dispatch logic itself never changes.
var requestDecoders = map[RequestCode]payloadDecoder{
	ReqGetDigests:          nil,
	ReqGetCertificate:      nil,
	ReqChallenge:           nil,
	ReqGetVersion:          decodeGetVersion,
	ReqGetMeasurements:     nil,
	ReqGetCapabilities:     nil,
	ReqNegotiateAlgorithms: nil,
	ReqVendorDefined:       nil,
	ReqRespondIfReady:      decodeRespondIfReady,
}

var responseDecoders = map[ResponseCode]payloadDecoder{
	RspDigests:       nil,
	RspCertificate:   nil,
	RspChallengeAuth: nil,
	RspVersion:       decodeVersion,
	RspMeasurements:  nil,
	RspCapabilities:  nil,
	RspAlgorithms:    nil,
	RspVendorDefined: nil,
	RspError:         decodeError,
}

// Encode serializes msg, which must be a pointer to one of the variant
// structs (*GetVersion, *VersionResponse, *RespondIfReady, *ErrorResponse,
// *Raw). The emitted code byte always comes from the variant's declared
// code, never from caller-supplied state, so a header/payload mismatch
// cannot be produced.
func Encode(msg any) ([]byte, error) {
	switch m := msg.(type) {
	case *GetVersion:
		return m.encode(), nil
	case *VersionResponse:
		return m.encode()
	case *RespondIfReady:
		return m.encode(), nil
	case *ErrorResponse:
		return m.encode(), nil
	case *Raw:
		return m.encode(), nil
	default:
		return nil, fmt.Errorf("spdm: unsupported message type %T", msg)
	}
}

// Decode parses exactly one message from buf in strict mode: reserved codes
// fail with ErrReservedCode and assigned codes without a payload schema fail
// with ErrUnimplemented. The second return value is any surplus bytes past
// the message's declared layout — non-fatal for layouts that tolerate
// trailing data (see VERSION). On error no partial message is returned.
func Decode(buf []byte, dir Direction) (any, []byte, error) {
	return decode(buf, dir, false)
}

// DecodePermissive is Decode, except reserved and unimplemented codes decode
// to *Raw instead of failing, so unknown traffic stays observable.
func DecodePermissive(buf []byte, dir Direction) (any, []byte, error) {
	return decode(buf, dir, true)
}

func decode(buf []byte, dir Direction, permissive bool) (any, []byte, error) {
	h, payload, err := DecodeHeader(buf)
	if err != nil {
		return nil, nil, err
	}

	var dec payloadDecoder
	var assigned bool
	switch dir {
	case DirRequest:
		dec, assigned = requestDecoders[RequestCode(h.Code)]
	case DirResponse:
		dec, assigned = responseDecoders[ResponseCode(h.Code)]
	default:
		return nil, nil, fmt.Errorf("spdm: invalid direction %d", int(dir))
	}

	switch {
	case !assigned:
		if permissive {
			return decodeRaw(h, payload)
		}
		return nil, nil, fmt.Errorf("%w: 0x%02X (%s)", ErrReservedCode, h.Code, dir)
	case dec == nil:
		if permissive {
			return decodeRaw(h, payload)
		}
		return nil, nil, fmt.Errorf("%w: %s", ErrUnimplemented, codeName(dir, h.Code))
	}
	return dec(h, payload)
}

func codeName(dir Direction, code byte) string {
	if dir == DirRequest {
		return RequestCode(code).String()
	}
	return ResponseCode(code).String()
}

package spdm

import (
	"encoding/binary"
	"fmt"
)

const (
	// versionFixedSize is a VERSION message before its entries: header plus
	// one reserved byte plus the one-byte entry count.
	versionFixedSize = HeaderSize + 2

	// entrySize is the wire width of one VersionNumberEntry.
	entrySize = 2
)

// GetVersion is the GET_VERSION request that begins discovery. It has no
// payload: the message is exactly the 4-byte header.
type GetVersion struct {
	Version Version
	Param1  byte // reserved, normally 0x00
	Param2  byte // reserved, normally 0x00
}

// NewGetVersion returns the default GET_VERSION request, which encodes to
// 10 84 00 00: major version 1, reserved params zeroed.
func NewGetVersion() *GetVersion {
	return &GetVersion{Version: Version10}
}

func (m *GetVersion) encode() []byte {
	return []byte{byte(m.Version), byte(ReqGetVersion), m.Param1, m.Param2}
}

func decodeGetVersion(h Header, payload []byte) (any, []byte, error) {
	if len(payload) != 0 {
		return nil, nil, fmt.Errorf("%w: GET_VERSION carries no payload, got %d extra bytes", ErrMalformed, len(payload))
	}
	return &GetVersion{Version: h.Version, Param1: h.Param1, Param2: h.Param2}, nil, nil
}

// VersionResponse is the VERSION response listing every protocol version the
// Responder supports. Entry order is preserved exactly as given in both
// directions; the spec leaves ordering to the implementation and this codec
// does not sort.
type VersionResponse struct {
	Version  Version
	Param1   byte
	Param2   byte
	Reserved byte
	Entries  []VersionEntry
}

// encode serializes the response. The on-wire entry count is always derived
// from len(Entries); there is no count field for a caller to get wrong.
func (m *VersionResponse) encode() ([]byte, error) {
	if len(m.Entries) > 0xFF {
		return nil, fmt.Errorf("%w: %d version entries, count field is one byte", ErrMalformed, len(m.Entries))
	}
	buf := make([]byte, versionFixedSize+entrySize*len(m.Entries))
	buf[0] = byte(m.Version)
	buf[1] = byte(RspVersion)
	buf[2] = m.Param1
	buf[3] = m.Param2
	buf[4] = m.Reserved
	buf[5] = byte(len(m.Entries))
	for i, e := range m.Entries {
		binary.LittleEndian.PutUint16(buf[versionFixedSize+entrySize*i:], uint16(e))
	}
	return buf, nil
}

// decodeVersion parses the VERSION payload. Bytes beyond the declared entry
// list are returned as trailing data, not rejected: a future minor version
// may append fields.
func decodeVersion(h Header, payload []byte) (any, []byte, error) {
	if len(payload) < versionFixedSize-HeaderSize {
		return nil, nil, fmt.Errorf("%w: VERSION needs at least %d bytes, got %d", ErrTruncated, versionFixedSize, HeaderSize+len(payload))
	}
	count := int(payload[1])
	if len(payload)-2 < entrySize*count {
		return nil, nil, fmt.Errorf("%w: VERSION declares %d entries but only %d payload bytes follow", ErrTruncated, count, len(payload)-2)
	}

	m := &VersionResponse{
		Version:  h.Version,
		Param1:   h.Param1,
		Param2:   h.Param2,
		Reserved: payload[0],
	}
	if count > 0 {
		m.Entries = make([]VersionEntry, count)
		for i := range m.Entries {
			m.Entries[i] = VersionEntry(binary.LittleEndian.Uint16(payload[2+entrySize*i:]))
		}
	}
	return m, payload[2+entrySize*count:], nil
}

// RespondIfReady is the RESPOND_IF_READY request asking the Responder to
// retry a response it previously deferred. Param1 carries the original
// request code, Param2 the Responder-issued token.
type RespondIfReady struct {
	Version      Version
	OriginalCode RequestCode
	Token        byte
}

func (m *RespondIfReady) encode() []byte {
	return []byte{byte(m.Version), byte(ReqRespondIfReady), byte(m.OriginalCode), m.Token}
}

func decodeRespondIfReady(h Header, payload []byte) (any, []byte, error) {
	if len(payload) != 0 {
		return nil, nil, fmt.Errorf("%w: RESPOND_IF_READY carries no payload, got %d extra bytes", ErrMalformed, len(payload))
	}
	return &RespondIfReady{Version: h.Version, OriginalCode: RequestCode(h.Param1), Token: h.Param2}, nil, nil
}

// ErrorResponse is the ERROR response a Responder sends when it cannot
// process a request. ErrorCode and ErrorData ride in the header params; any
// extended error data is carried as opaque bytes — interpreting it belongs
// to the session layer.
type ErrorResponse struct {
	Version      Version
	ErrorCode    byte
	ErrorData    byte
	ExtendedData []byte
}

func (m *ErrorResponse) encode() []byte {
	buf := make([]byte, HeaderSize+len(m.ExtendedData))
	buf[0] = byte(m.Version)
	buf[1] = byte(RspError)
	buf[2] = m.ErrorCode
	buf[3] = m.ErrorData
	copy(buf[HeaderSize:], m.ExtendedData)
	return buf
}

func decodeError(h Header, payload []byte) (any, []byte, error) {
	m := &ErrorResponse{Version: h.Version, ErrorCode: h.Param1, ErrorData: h.Param2}
	if len(payload) > 0 {
		// The decoded message owns its payload; the transport may reuse buf.
		m.ExtendedData = append([]byte(nil), payload...)
	}
	return m, nil, nil
}

// Raw is an undecoded message: the verbatim header plus its opaque payload.
// Permissive decoding produces Raw for reserved or not-yet-implemented codes
// so callers can log unknown traffic instead of dropping it.
type Raw struct {
	Header  Header
	Payload []byte
}

func (m *Raw) encode() []byte {
	hdr := m.Header.Encode()
	return append(hdr[:], m.Payload...)
}

func decodeRaw(h Header, payload []byte) (any, []byte, error) {
	m := &Raw{Header: h}
	if len(payload) > 0 {
		m.Payload = append([]byte(nil), payload...)
	}
	return m, nil, nil
}

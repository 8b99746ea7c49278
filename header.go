package spdm

import "fmt"

// HeaderSize is the fixed length of the prefix shared by every message.
const HeaderSize = 4

// Header is the common 4-byte message prefix. Code is kept as the raw second
// byte: whether it names a request or a response depends on message
// direction, which the header alone does not carry.
type Header struct {
	Version Version
	Code    byte
	Param1  byte
	Param2  byte
}

// DecodeHeader splits buf into its header and the remaining payload bytes.
func DecodeHeader(buf []byte) (Header, []byte, error) {
	if len(buf) < HeaderSize {
		return Header{}, nil, fmt.Errorf("%w: %d bytes, header needs %d", ErrTruncated, len(buf), HeaderSize)
	}
	h := Header{
		Version: Version(buf[0]),
		Code:    buf[1],
		Param1:  buf[2],
		Param2:  buf[3],
	}
	return h, buf[HeaderSize:], nil
}

// Encode returns the header's wire form. Every Header value has one: there
// is no failure case.
func (h Header) Encode() [HeaderSize]byte {
	return [HeaderSize]byte{byte(h.Version), h.Code, h.Param1, h.Param2}
}

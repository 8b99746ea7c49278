package spdm

import "fmt"

// Class partitions a code space. Every byte in 0x00–0xFF is exactly one of
// Required, Optional, or Reserved, independently per direction.
type Class int

const (
	ClassReserved Class = iota
	ClassRequired
	ClassOptional
)

func (c Class) String() string {
	switch c {
	case ClassRequired:
		return "required"
	case ClassOptional:
		return "optional"
	default:
		return "reserved"
	}
}

// Direction selects which code table interprets a header's code byte. The
// byte alone is ambiguous: request and response codes are indexed
// independently, so the transport must say which way the message traveled.
type Direction int

const (
	DirRequest Direction = iota
	DirResponse
)

func (d Direction) String() string {
	switch d {
	case DirRequest:
		return "request"
	case DirResponse:
		return "response"
	default:
		return fmt.Sprintf("direction(%d)", int(d))
	}
}

// RequestCode is a message code sent by the Requester.
type RequestCode byte

const (
	ReqGetDigests          RequestCode = 0x81
	ReqGetCertificate      RequestCode = 0x82
	ReqChallenge           RequestCode = 0x83
	ReqGetVersion          RequestCode = 0x84
	ReqGetMeasurements     RequestCode = 0xE0
	ReqGetCapabilities     RequestCode = 0xE1
	ReqNegotiateAlgorithms RequestCode = 0xE3
	ReqVendorDefined       RequestCode = 0xFE
	ReqRespondIfReady      RequestCode = 0xFF
)

// ResponseCode is a message code sent by the Responder.
type ResponseCode byte

const (
	RspDigests       ResponseCode = 0x01
	RspCertificate   ResponseCode = 0x02
	RspChallengeAuth ResponseCode = 0x03
	RspVersion       ResponseCode = 0x04
	RspMeasurements  ResponseCode = 0x60
	RspCapabilities  ResponseCode = 0x61
	RspAlgorithms    ResponseCode = 0x63
	RspVendorDefined ResponseCode = 0x7E
	RspError         ResponseCode = 0x7F
)

type codeInfo struct {
	name  string
	class Class
}

// Assigned codes per the SPDM 1.0 tables. Any byte absent from these maps is
// Reserved: the spec reserves every unassigned value, which is what makes the
// three classes partition the full byte range with no gaps.
var requestCodes = map[RequestCode]codeInfo{
	ReqGetDigests:          {"GET_DIGESTS", ClassOptional},
	ReqGetCertificate:      {"GET_CERTIFICATE", ClassOptional},
	ReqChallenge:           {"CHALLENGE", ClassOptional},
	ReqGetVersion:          {"GET_VERSION", ClassRequired},
	ReqGetMeasurements:     {"GET_MEASUREMENTS", ClassOptional},
	ReqGetCapabilities:     {"GET_CAPABILITIES", ClassRequired},
	ReqNegotiateAlgorithms: {"NEGOTIATE_ALGORITHMS", ClassRequired},
	ReqVendorDefined:       {"VENDOR_DEFINED_REQUEST", ClassOptional},
	ReqRespondIfReady:      {"RESPOND_IF_READY", ClassRequired},
}

// ERROR is classified Required: a Responder may send it in reply to anything,
// so a compliant Requester must always accept it.
var responseCodes = map[ResponseCode]codeInfo{
	RspDigests:       {"DIGESTS", ClassOptional},
	RspCertificate:   {"CERTIFICATE", ClassOptional},
	RspChallengeAuth: {"CHALLENGE_AUTH", ClassOptional},
	RspVersion:       {"VERSION", ClassRequired},
	RspMeasurements:  {"MEASUREMENTS", ClassOptional},
	RspCapabilities:  {"CAPABILITIES", ClassRequired},
	RspAlgorithms:    {"ALGORITHMS", ClassRequired},
	RspVendorDefined: {"VENDOR_DEFINED_RESPONSE", ClassOptional},
	RspError:         {"ERROR", ClassRequired},
}

// Class reports whether c is Required, Optional, or Reserved.
func (c RequestCode) Class() Class {
	if info, ok := requestCodes[c]; ok {
		return info.class
	}
	return ClassReserved
}

// String returns the symbolic name of an assigned code, or RESERVED(0xNN).
func (c RequestCode) String() string {
	if info, ok := requestCodes[c]; ok {
		return info.name
	}
	return fmt.Sprintf("RESERVED(0x%02X)", byte(c))
}

// Class reports whether c is Required, Optional, or Reserved.
func (c ResponseCode) Class() Class {
	if info, ok := responseCodes[c]; ok {
		return info.class
	}
	return ClassReserved
}

// String returns the symbolic name of an assigned code, or RESERVED(0xNN).
func (c ResponseCode) String() string {
	if info, ok := responseCodes[c]; ok {
		return info.name
	}
	return fmt.Sprintf("RESERVED(0x%02X)", byte(c))
}

// RequestCodeByName looks up an assigned request code by its symbolic name,
// e.g. "GET_VERSION".
func RequestCodeByName(name string) (RequestCode, bool) {
	for c, info := range requestCodes {
		if info.name == name {
			return c, true
		}
	}
	return 0, false
}

// ResponseCodeByName looks up an assigned response code by its symbolic name,
// e.g. "VERSION".
func ResponseCodeByName(name string) (ResponseCode, bool) {
	for c, info := range responseCodes {
		if info.name == name {
			return c, true
		}
	}
	return 0, false
}

package spdm

import (
	"bytes"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestGetVersionDefaultBytes(t *testing.T) {
	raw, err := Encode(NewGetVersion())
	if err != nil {
		t.Fatal(err)
	}
	want := []byte{0x10, 0x84, 0x00, 0x00}
	if !bytes.Equal(raw, want) {
		t.Fatalf("encoded % X, want % X", raw, want)
	}
}

func TestGetVersionRoundTrip(t *testing.T) {
	original := NewGetVersion()
	raw, err := Encode(original)
	if err != nil {
		t.Fatal(err)
	}
	msg, trailing, err := Decode(raw, DirRequest)
	if err != nil {
		t.Fatal(err)
	}
	if len(trailing) != 0 {
		t.Fatalf("unexpected trailing data: % X", trailing)
	}
	decoded, ok := msg.(*GetVersion)
	if !ok {
		t.Fatalf("expected *GetVersion, got %T", msg)
	}
	if diff := cmp.Diff(original, decoded); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestGetVersionRejectsPayload(t *testing.T) {
	_, _, err := Decode([]byte{0x10, 0x84, 0x00, 0x00, 0xAA}, DirRequest)
	if !errors.Is(err, ErrMalformed) {
		t.Fatalf("expected ErrMalformed, got %v", err)
	}
}

func TestVersionResponseGoldenBytes(t *testing.T) {
	raw := []byte{0x10, 0x04, 0x00, 0x00, 0x00, 0x02, 0x10, 0x00, 0x12, 0x00}

	msg, trailing, err := Decode(raw, DirResponse)
	if err != nil {
		t.Fatal(err)
	}
	if len(trailing) != 0 {
		t.Fatalf("unexpected trailing data: % X", trailing)
	}
	decoded, ok := msg.(*VersionResponse)
	if !ok {
		t.Fatalf("expected *VersionResponse, got %T", msg)
	}

	want := &VersionResponse{
		Version: 0x10,
		Entries: []VersionEntry{0x0010, 0x0012},
	}
	if diff := cmp.Diff(want, decoded); diff != "" {
		t.Fatalf("decode mismatch (-want +got):\n%s", diff)
	}

	reencoded, err := Encode(decoded)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(reencoded, raw) {
		t.Fatalf("re-encoded % X, want % X", reencoded, raw)
	}
}

// The wire count always comes from len(Entries); the struct carries no count
// field a caller could set wrong.
func TestVersionResponseCountDerived(t *testing.T) {
	raw, err := Encode(&VersionResponse{
		Version: Version10,
		Entries: []VersionEntry{0x1000, 0x1200},
	})
	if err != nil {
		t.Fatal(err)
	}
	if raw[5] != 0x02 {
		t.Fatalf("entry count byte = 0x%02X, want 0x02", raw[5])
	}
	want := []byte{0x10, 0x04, 0x00, 0x00, 0x00, 0x02, 0x00, 0x10, 0x00, 0x12}
	if !bytes.Equal(raw, want) {
		t.Fatalf("encoded % X, want % X", raw, want)
	}
}

func TestVersionResponseTruncated(t *testing.T) {
	// Five bytes: header plus the reserved byte, no entry count.
	_, _, err := Decode([]byte{0x10, 0x04, 0x00, 0x00, 0x00}, DirResponse)
	if !errors.Is(err, ErrTruncated) {
		t.Fatalf("expected ErrTruncated, got %v", err)
	}

	// Declares three entries, carries one.
	_, _, err = Decode([]byte{0x10, 0x04, 0x00, 0x00, 0x00, 0x03, 0x10, 0x00}, DirResponse)
	if !errors.Is(err, ErrTruncated) {
		t.Fatalf("expected ErrTruncated, got %v", err)
	}
}

func TestVersionResponseTrailingData(t *testing.T) {
	raw := []byte{0x10, 0x04, 0x00, 0x00, 0x00, 0x01, 0x10, 0x00, 0xDE, 0xAD}

	msg, trailing, err := Decode(raw, DirResponse)
	if err != nil {
		t.Fatal(err)
	}
	decoded := msg.(*VersionResponse)
	if len(decoded.Entries) != 1 || decoded.Entries[0] != 0x0010 {
		t.Fatalf("entries = %v, want [0x0010]", decoded.Entries)
	}
	if !bytes.Equal(trailing, []byte{0xDE, 0xAD}) {
		t.Fatalf("trailing = % X, want DE AD", trailing)
	}
}

func TestVersionResponseNoEntries(t *testing.T) {
	raw, err := Encode(&VersionResponse{Version: Version10})
	if err != nil {
		t.Fatal(err)
	}
	want := []byte{0x10, 0x04, 0x00, 0x00, 0x00, 0x00}
	if !bytes.Equal(raw, want) {
		t.Fatalf("encoded % X, want % X", raw, want)
	}

	msg, _, err := Decode(raw, DirResponse)
	if err != nil {
		t.Fatal(err)
	}
	if decoded := msg.(*VersionResponse); len(decoded.Entries) != 0 {
		t.Fatalf("expected no entries, got %v", decoded.Entries)
	}
}

func TestVersionResponseTooManyEntries(t *testing.T) {
	_, err := Encode(&VersionResponse{
		Version: Version10,
		Entries: make([]VersionEntry, 256),
	})
	if !errors.Is(err, ErrMalformed) {
		t.Fatalf("expected ErrMalformed, got %v", err)
	}
}

func TestRespondIfReadyRoundTrip(t *testing.T) {
	original := &RespondIfReady{
		Version:      Version10,
		OriginalCode: ReqGetCapabilities,
		Token:        0x07,
	}
	raw, err := Encode(original)
	if err != nil {
		t.Fatal(err)
	}
	want := []byte{0x10, 0xFF, 0xE1, 0x07}
	if !bytes.Equal(raw, want) {
		t.Fatalf("encoded % X, want % X", raw, want)
	}

	msg, _, err := Decode(raw, DirRequest)
	if err != nil {
		t.Fatal(err)
	}
	decoded, ok := msg.(*RespondIfReady)
	if !ok {
		t.Fatalf("expected *RespondIfReady, got %T", msg)
	}
	if diff := cmp.Diff(original, decoded); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestErrorResponseRoundTrip(t *testing.T) {
	original := &ErrorResponse{
		Version:      Version10,
		ErrorCode:    0x01,
		ErrorData:    0x84,
		ExtendedData: []byte{0xCA, 0xFE},
	}
	raw, err := Encode(original)
	if err != nil {
		t.Fatal(err)
	}
	msg, trailing, err := Decode(raw, DirResponse)
	if err != nil {
		t.Fatal(err)
	}
	if len(trailing) != 0 {
		t.Fatalf("unexpected trailing data: % X", trailing)
	}
	decoded := msg.(*ErrorResponse)
	if diff := cmp.Diff(original, decoded); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

// A decoded message owns its payload: mutating the input buffer afterwards
// must not reach into the message.
func TestErrorResponseOwnsPayload(t *testing.T) {
	raw := []byte{0x10, 0x7F, 0x01, 0x00, 0xAB}
	msg, _, err := Decode(raw, DirResponse)
	if err != nil {
		t.Fatal(err)
	}
	raw[4] = 0x00
	if decoded := msg.(*ErrorResponse); decoded.ExtendedData[0] != 0xAB {
		t.Fatalf("extended data aliases the input buffer")
	}
}

func TestRawRoundTrip(t *testing.T) {
	original := &Raw{
		Header:  Header{Version: Version10, Code: 0xFE, Param1: 0x01, Param2: 0x02},
		Payload: []byte{0x11, 0x22, 0x33},
	}
	raw, err := Encode(original)
	if err != nil {
		t.Fatal(err)
	}
	want := []byte{0x10, 0xFE, 0x01, 0x02, 0x11, 0x22, 0x33}
	if !bytes.Equal(raw, want) {
		t.Fatalf("encoded % X, want % X", raw, want)
	}
}

// --- Fuzz tests ---

func FuzzDecodeRequest(f *testing.F) {
	f.Add([]byte{0x10, 0x84, 0x00, 0x00})
	f.Add([]byte{0x10, 0xFF, 0xE1, 0x07})
	f.Fuzz(func(t *testing.T, data []byte) {
		Decode(data, DirRequest)
		DecodePermissive(data, DirRequest)
	})
}

func FuzzDecodeResponse(f *testing.F) {
	f.Add([]byte{0x10, 0x04, 0x00, 0x00, 0x00, 0x02, 0x10, 0x00, 0x12, 0x00})
	f.Add([]byte{0x10, 0x7F, 0x01, 0x00, 0xAB})
	f.Fuzz(func(t *testing.T, data []byte) {
		msg, trailing, err := Decode(data, DirResponse)
		if err != nil {
			return
		}
		// Anything accepted without trailing data must re-encode verbatim.
		if len(trailing) != 0 {
			return
		}
		reencoded, err := Encode(msg)
		if err != nil {
			t.Fatalf("re-encode failed: %v", err)
		}
		if !bytes.Equal(reencoded, data) {
			t.Fatalf("re-encoded % X, want % X", reencoded, data)
		}
	})
}

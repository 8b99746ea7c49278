// Package spdm implements the wire encoding for SPDM (Security Protocol and
// Data Model) v1.0.0 messages exchanged between a Requester and a Responder
// during device attestation discovery.
//
// Every message starts with the same 4-byte header, followed by a payload
// whose layout depends on the code byte:
//
//	0         1        2        3        4
//	┌─────────┬────────┬────────┬────────┬─────────────────────┐
//	│ version │  code  │ param1 │ param2 │ payload (0+ bytes)  │
//	│ maj|min │        │        │        │                     │
//	└─────────┴────────┴────────┴────────┴─────────────────────┘
//
// The second byte is a request code or a response code depending on which
// way the message travels; the two code spaces are indexed independently, so
// decoding requires the caller to say which Direction the bytes came from.
//
// The package validates structural well-formedness only. Certificate,
// measurement, and challenge semantics belong to the layers above, and
// framing — delivering exactly one message's bytes per Decode call — belongs
// to the transport below. All lookup tables are immutable after package
// initialization, so every function here is safe for concurrent use.
package spdm

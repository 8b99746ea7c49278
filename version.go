package spdm

// Version is the header's version byte: major version in the high nibble,
// minor version in the low nibble.
type Version uint8

// Version10 is SPDM major version 1, minor version 0. Discovery always
// starts with a major version 1 GET_VERSION.
const Version10 Version = 0x10

// Major returns the major-version nibble, masked but not shifted: a major
// version of 1 reads as 0x10.
func (v Version) Major() uint8 { return uint8(v) & 0xF0 }

// Minor returns the minor-version nibble.
func (v Version) Minor() uint8 { return uint8(v) & 0x0F }

// Compatible reports whether the major version is 1, the only major this
// codec speaks. The minor version is informational.
func (v Version) Compatible() bool { return v.Major() == uint8(Version10) }

// VersionEntry is one 16-bit VersionNumberEntry advertised in a VERSION
// response, little-endian on the wire. The codec carries it opaquely;
// unpacking the (major, minor, update, alpha) tuple is the caller's business.
type VersionEntry uint16

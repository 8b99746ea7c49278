// Command spdmdump decodes SPDM message hex dumps for debugging. It is a
// thin wrapper over the codec: feed it one message's bytes per argument or
// per stdin line and it logs what the codec makes of them.
package main

import (
	"bufio"
	"encoding/hex"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/chronologos/spdm"
	"github.com/chronologos/spdm/internal/version"
)

// globalFlags holds double-dash flags parsed from os.Args before dispatch.
// rest contains the remaining arguments with global flags stripped.
type globalFlags struct {
	version    bool
	response   bool
	permissive bool
	rest       []string
}

func (g globalFlags) direction() spdm.Direction {
	if g.response {
		return spdm.DirResponse
	}
	return spdm.DirRequest
}

// parseGlobalFlags extracts double-dash flags from os.Args and returns the
// parsed values plus remaining args.
func parseGlobalFlags() globalFlags {
	var g globalFlags
	for _, arg := range os.Args[1:] {
		switch arg {
		case "--version":
			g.version = true
		case "--response":
			g.response = true
		case "--permissive":
			g.permissive = true
		default:
			g.rest = append(g.rest, arg)
		}
	}
	return g
}

func main() {
	gf := parseGlobalFlags()

	if gf.version || (len(gf.rest) > 0 && gf.rest[0] == "version") {
		fmt.Printf("spdmdump %s (%s)\n", version.Version, version.Commit)
		os.Exit(0)
	}

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	if len(gf.rest) > 0 && gf.rest[0] == "sample" {
		runSample(logger)
		os.Exit(0)
	}

	inputs := gf.rest
	if len(inputs) == 0 {
		if stat, err := os.Stdin.Stat(); err != nil || stat.Mode()&os.ModeCharDevice != 0 {
			usage()
			os.Exit(1)
		}
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			if line := strings.TrimSpace(scanner.Text()); line != "" {
				inputs = append(inputs, line)
			}
		}
	}

	failed := 0
	for _, in := range inputs {
		if !dump(logger, in, gf) {
			failed++
		}
	}
	if failed > 0 {
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: spdmdump [--response] [--permissive] <hex>...")
	fmt.Fprintln(os.Stderr, "       spdmdump sample")
	fmt.Fprintln(os.Stderr, "       spdmdump version")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "With no <hex> arguments, reads one hex message per stdin line.")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "flags:")
	fmt.Fprintln(os.Stderr, "  --version      print version and exit")
	fmt.Fprintln(os.Stderr, "  --response     decode as Responder messages (default: Requester)")
	fmt.Fprintln(os.Stderr, "  --permissive   surface reserved/unimplemented codes as raw messages")
}

// dump decodes one hex-encoded message and logs the result. Returns false if
// the input could not be decoded.
func dump(logger zerolog.Logger, in string, gf globalFlags) bool {
	clean := strings.Map(func(r rune) rune {
		if r == ' ' || r == ':' {
			return -1
		}
		return r
	}, in)

	raw, err := hex.DecodeString(clean)
	if err != nil {
		logger.Error().Str("input", in).Err(err).Msg("not valid hex")
		return false
	}

	dir := gf.direction()
	var msg any
	var trailing []byte
	if gf.permissive {
		msg, trailing, err = spdm.DecodePermissive(raw, dir)
	} else {
		msg, trailing, err = spdm.Decode(raw, dir)
	}
	if err != nil {
		logger.Error().
			Stringer("direction", dir).
			Int("size", len(raw)).
			Err(err).
			Msg("decode failed")
		return false
	}

	ev := logger.Info().Stringer("direction", dir).Int("size", len(raw))
	if len(trailing) > 0 {
		ev = ev.Hex("trailing", trailing)
	}

	switch m := msg.(type) {
	case *spdm.GetVersion:
		ev.Stringer("code", spdm.ReqGetVersion).
			Uint8("major", m.Version.Major()).
			Uint8("minor", m.Version.Minor()).
			Msg("decoded")
	case *spdm.VersionResponse:
		entries := make([]string, len(m.Entries))
		for i, e := range m.Entries {
			entries[i] = fmt.Sprintf("0x%04X", uint16(e))
		}
		ev.Stringer("code", spdm.RspVersion).
			Int("entry_count", len(m.Entries)).
			Strs("entries", entries).
			Msg("decoded")
	case *spdm.RespondIfReady:
		ev.Stringer("code", spdm.ReqRespondIfReady).
			Stringer("original_code", m.OriginalCode).
			Uint8("token", m.Token).
			Msg("decoded")
	case *spdm.ErrorResponse:
		ev.Stringer("code", spdm.RspError).
			Uint8("error_code", m.ErrorCode).
			Uint8("error_data", m.ErrorData).
			Hex("extended_data", m.ExtendedData).
			Msg("decoded")
	case *spdm.Raw:
		ev.Str("code", codeName(dir, m.Header.Code)).
			Str("class", codeClass(dir, m.Header.Code).String()).
			Hex("payload", m.Payload).
			Msg("decoded raw")
	default:
		ev.Msgf("decoded %T", msg)
	}
	return true
}

func codeName(dir spdm.Direction, code byte) string {
	if dir == spdm.DirRequest {
		return spdm.RequestCode(code).String()
	}
	return spdm.ResponseCode(code).String()
}

func codeClass(dir spdm.Direction, code byte) spdm.Class {
	if dir == spdm.DirRequest {
		return spdm.RequestCode(code).Class()
	}
	return spdm.ResponseCode(code).Class()
}

// runSample encodes the canonical discovery exchange and prints the wire
// bytes, mirroring the messages a Requester and Responder trade first.
func runSample(logger zerolog.Logger) {
	getVersion, err := spdm.Encode(spdm.NewGetVersion())
	if err != nil {
		logger.Fatal().Err(err).Msg("encode GET_VERSION")
	}
	fmt.Printf("GET_VERSION  %s\n", hex.EncodeToString(getVersion))

	versionMsg, err := spdm.Encode(&spdm.VersionResponse{
		Version: spdm.Version10,
		Entries: []spdm.VersionEntry{0x0010, 0x0012},
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("encode VERSION")
	}
	fmt.Printf("VERSION      %s\n", hex.EncodeToString(versionMsg))
}

package spirv

import (
	"encoding/binary"

	"github.com/gogpu/spv/ssa"
)

// Version is a SPIR-V version number, encoded as it appears in the module
// header: major in bits [16:23], minor in bits [8:15] (spec.md §4.1).
type Version struct {
	Major uint8
	Minor uint8
}

func (v Version) word() uint32 {
	return uint32(v.Major)<<16 | uint32(v.Minor)<<8
}

func versionFromWord(w uint32) Version {
	return Version{Major: uint8(w >> 16), Minor: uint8(w >> 8)}
}

// Header is the fixed 5-word prologue of a SPIR-V module (spec.md §4.1).
type Header struct {
	Version     Version
	GeneratorID uint32
	Bound       ssa.ID
}

// Stream is a fully decoded word stream: header plus the flat instruction
// list in encounter order, before any structural interpretation.
type Stream struct {
	Header       Header
	Schema       uint32
	Instructions []Instruction
}

// Decode parses a binary SPIR-V module from its byte form. It detects
// byte-swapped streams via the magic word (spec.md §4.1, §7, scenario §8.6)
// and transparently rewords them before decoding instructions, so the
// returned Stream's Instructions are always in host word order.
func Decode(data []byte) (Stream, error) {
	if len(data)%4 != 0 || len(data) < 20 {
		return Stream{}, &MalformedHeaderError{Got: headerMagicOrZero(data)}
	}
	words := make([]uint32, len(data)/4)
	var order binary.ByteOrder = binary.LittleEndian
	magic := order.Uint32(data[0:4])
	switch magic {
	case MagicNumber:
		// host order already matches
	case byteSwappedMagic:
		order = binary.BigEndian
	default:
		return Stream{}, &MalformedHeaderError{Got: magic}
	}
	for i := range words {
		words[i] = order.Uint32(data[i*4 : i*4+4])
	}

	hdr := Header{
		Version:     versionFromWord(words[1]),
		GeneratorID: words[2],
		Bound:       ssa.ID(words[3]),
	}
	stream := Stream{Header: hdr, Schema: words[4]}

	offset := 5
	for offset < len(words) {
		ins, consumed, err := decodeInstruction(words, offset)
		if err != nil {
			return Stream{}, err
		}
		stream.Instructions = append(stream.Instructions, ins)
		offset += consumed
	}
	return stream, nil
}

func headerMagicOrZero(data []byte) uint32 {
	if len(data) < 4 {
		return 0
	}
	return binary.LittleEndian.Uint32(data[0:4])
}

// Encode serializes a Stream to its canonical little-endian binary form.
// The Bound in s.Header is not recomputed; callers that mutate
// Instructions should keep it in sync (ir.Emit does this).
func Encode(s Stream) []byte {
	words := []uint32{MagicNumber, s.Header.Version.word(), s.Header.GeneratorID, uint32(s.Header.Bound), s.Schema}
	for _, ins := range s.Instructions {
		words = append(words, ins.Words()...)
	}
	out := make([]byte, len(words)*4)
	for i, w := range words {
		binary.LittleEndian.PutUint32(out[i*4:i*4+4], w)
	}
	return out
}

// Package codec decodes a posting-list row_ids blob into row IDs. The
// offline index loader is free to choose any of four encodings; decoding
// is a pure function of (blob, n) so the engine never has to know or
// assume which one was used.
package codec

import (
	"encoding/binary"
	"fmt"
)

// DecodeError reports that a blob matched none of the supported encodings.
type DecodeError struct {
	BlobLen int
	N       int
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("postings: cannot decode blob of length %d (n=%d): no supported encoding matched", e.BlobLen, e.N)
}

// Decode decodes blob into row IDs, trying in priority order: packed u32
// or u64 sized exactly to the companion column n, packed u32/u64 sized by
// length alone, LEB128 varints (plain or delta-encoded).
func Decode(blob []byte, n int) ([]int64, error) {
	if len(blob) == 0 {
		return nil, nil
	}

	if n > 0 {
		if len(blob) == n*4 {
			return decodeU32(blob), nil
		}
		if len(blob) == n*8 {
			return decodeU64(blob), nil
		}
	}

	if len(blob)%8 == 0 {
		return decodeU64(blob), nil
	}
	if len(blob)%4 == 0 {
		return decodeU32(blob), nil
	}

	values, err := decodeVarints(blob)
	if err != nil {
		return nil, &DecodeError{BlobLen: len(blob), N: n}
	}
	if looksDeltaEncoded(values) {
		return cumulativeSum(values), nil
	}
	return values, nil
}

func decodeU32(blob []byte) []int64 {
	n := len(blob) / 4
	out := make([]int64, n)
	for i := 0; i < n; i++ {
		out[i] = int64(binary.LittleEndian.Uint32(blob[i*4 : i*4+4]))
	}
	return out
}

func decodeU64(blob []byte) []int64 {
	n := len(blob) / 8
	out := make([]int64, n)
	for i := 0; i < n; i++ {
		out[i] = int64(binary.LittleEndian.Uint64(blob[i*8 : i*8+8]))
	}
	return out
}

// decodeVarints reads a sequence of unsigned LEB128 varints until blob is
// exhausted.
func decodeVarints(blob []byte) ([]int64, error) {
	var out []int64
	i := 0
	for i < len(blob) {
		v, n := binary.Uvarint(blob[i:])
		if n <= 0 {
			return nil, fmt.Errorf("postings: malformed varint at byte %d", i)
		}
		out = append(out, int64(v))
		i += n
	}
	return out, nil
}

// looksDeltaEncoded applies a size heuristic: the decoded
// values are implausibly small on their own, but their running sum is
// plausible as a row-id sequence. A delta-encoded cumulative sequence has
// its total concentrated in the sum rather than any single value; a plain
// row-id sequence does not.
func looksDeltaEncoded(values []int64) bool {
	if len(values) < 2 {
		return false
	}
	var sum, max int64
	for _, v := range values {
		sum += v
		if v > max {
			max = v
		}
	}
	if max == 0 {
		return false
	}
	return sum > max*4
}

func cumulativeSum(values []int64) []int64 {
	out := make([]int64, len(values))
	var running int64
	for i, v := range values {
		running += v
		out[i] = running
	}
	return out
}

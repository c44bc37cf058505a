package proof

import (
	"fmt"

	"subsetsum-zk/internal/hashx"
	"subsetsum-zk/merkle"

	"google.golang.org/protobuf/encoding/protowire"
)

// Wire layout (protobuf encoding, no generated code):
//
//	Proof { 1: string hash; 2: repeated Round rounds }
//	Round { 1: bytes root; 2: sint64 challenge; 3: sint64 value_a;
//	        4: sint64 value_b; 5: repeated bytes path_a; 6: repeated bytes path_b }
const (
	fieldProofHash  protowire.Number = 1
	fieldProofRound protowire.Number = 2

	fieldRoundRoot      protowire.Number = 1
	fieldRoundChallenge protowire.Number = 2
	fieldRoundValueA    protowire.Number = 3
	fieldRoundValueB    protowire.Number = 4
	fieldRoundPathA     protowire.Number = 5
	fieldRoundPathB     protowire.Number = 6
)

// MarshalBinary encodes pf as a length-prefixed list of rounds.
func (pf *Proof) MarshalBinary() ([]byte, error) {
	if pf == nil {
		return nil, fmt.Errorf("proof: marshal nil proof")
	}
	var b []byte
	b = protowire.AppendTag(b, fieldProofHash, protowire.BytesType)
	b = protowire.AppendString(b, pf.Hash)
	for i := range pf.Rounds {
		b = protowire.AppendTag(b, fieldProofRound, protowire.BytesType)
		b = protowire.AppendBytes(b, appendRound(nil, &pf.Rounds[i]))
	}
	return b, nil
}

// Size returns the encoded length of pf in bytes.
func (pf *Proof) Size() int {
	b, err := pf.MarshalBinary()
	if err != nil {
		return 0
	}
	return len(b)
}

func appendRound(b []byte, rd *Round) []byte {
	b = protowire.AppendTag(b, fieldRoundRoot, protowire.BytesType)
	b = protowire.AppendBytes(b, rd.Root[:])
	b = appendSint(b, fieldRoundChallenge, int64(rd.Challenge))
	b = appendSint(b, fieldRoundValueA, rd.ValueA)
	b = appendSint(b, fieldRoundValueB, rd.ValueB)
	for _, d := range rd.PathA {
		b = protowire.AppendTag(b, fieldRoundPathA, protowire.BytesType)
		b = protowire.AppendBytes(b, d[:])
	}
	for _, d := range rd.PathB {
		b = protowire.AppendTag(b, fieldRoundPathB, protowire.BytesType)
		b = protowire.AppendBytes(b, d[:])
	}
	return b
}

func appendSint(b []byte, num protowire.Number, v int64) []byte {
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, protowire.EncodeZigZag(v))
}

// UnmarshalBinary decodes data produced by MarshalBinary. Unknown fields are
// skipped.
func (pf *Proof) UnmarshalBinary(data []byte) error {
	var out Proof
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return fmt.Errorf("proof: decode tag: %w", protowire.ParseError(n))
		}
		data = data[n:]
		switch {
		case num == fieldProofHash && typ == protowire.BytesType:
			s, n := protowire.ConsumeString(data)
			if n < 0 {
				return fmt.Errorf("proof: decode hash: %w", protowire.ParseError(n))
			}
			out.Hash = s
			data = data[n:]
		case num == fieldProofRound && typ == protowire.BytesType:
			raw, n := protowire.ConsumeBytes(data)
			if n < 0 {
				return fmt.Errorf("proof: decode round: %w", protowire.ParseError(n))
			}
			rd, err := decodeRound(raw)
			if err != nil {
				return fmt.Errorf("proof: round %d: %w", len(out.Rounds), err)
			}
			out.Rounds = append(out.Rounds, rd)
			data = data[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, data)
			if n < 0 {
				return fmt.Errorf("proof: skip field %d: %w", num, protowire.ParseError(n))
			}
			data = data[n:]
		}
	}
	*pf = out
	return nil
}

func decodeRound(data []byte) (Round, error) {
	var rd Round
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return rd, protowire.ParseError(n)
		}
		data = data[n:]
		switch typ {
		case protowire.BytesType:
			v, n := protowire.ConsumeBytes(data)
			if n < 0 {
				return rd, protowire.ParseError(n)
			}
			data = data[n:]
			var d hashx.Digest
			if num == fieldRoundRoot || num == fieldRoundPathA || num == fieldRoundPathB {
				if len(v) != hashx.Size {
					return rd, fmt.Errorf("field %d: digest length %d, want %d", num, len(v), hashx.Size)
				}
				copy(d[:], v)
			}
			switch num {
			case fieldRoundRoot:
				rd.Root = d
			case fieldRoundPathA:
				rd.PathA = append(rd.PathA, d)
			case fieldRoundPathB:
				rd.PathB = append(rd.PathB, d)
			}
		case protowire.VarintType:
			v, n := protowire.ConsumeVarint(data)
			if n < 0 {
				return rd, protowire.ParseError(n)
			}
			data = data[n:]
			x := protowire.DecodeZigZag(v)
			switch num {
			case fieldRoundChallenge:
				rd.Challenge = int(x)
			case fieldRoundValueA:
				rd.ValueA = x
			case fieldRoundValueB:
				rd.ValueB = x
			}
		default:
			n := protowire.ConsumeFieldValue(num, typ, data)
			if n < 0 {
				return rd, protowire.ParseError(n)
			}
			data = data[n:]
		}
	}
	if rd.PathA == nil {
		rd.PathA = merkle.Path{}
	}
	if rd.PathB == nil {
		rd.PathB = merkle.Path{}
	}
	return rd, nil
}

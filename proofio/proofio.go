// Package proofio reads problem instances and reads/writes encoded proofs.
package proofio

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"subsetsum-zk/proof"

	"github.com/klauspost/compress/zstd"
)

// Instance is a problem together with the prover's private assignment.
// Verifier-side files may omit the assignment.
type Instance struct {
	Problem    []int64 `json:"problem"`
	Assignment []int64 `json:"assignment,omitempty"`
}

// LoadInstance reads a JSON instance file.
func LoadInstance(path string) (Instance, error) {
	var in Instance
	data, err := os.ReadFile(path)
	if err != nil {
		return in, err
	}
	if err := json.Unmarshal(data, &in); err != nil {
		return in, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(in.Assignment) > 0 && len(in.Assignment) != len(in.Problem) {
		return in, fmt.Errorf("%s: assignment has %d entries, problem has %d", path, len(in.Assignment), len(in.Problem))
	}
	return in, nil
}

// SaveInstance writes in as indented JSON.
func SaveInstance(path string, in Instance) error {
	b, err := json.MarshalIndent(in, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}

var zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}

// maxProofBytes caps the decompressed size of a proof file. A 255-entry
// problem at 4096 rounds encodes to well under 64 MiB.
var maxProofBytes uint64 = 64 << 20

// WriteProof encodes pf to path, optionally as a zstd frame.
func WriteProof(path string, pf *proof.Proof, compress bool) error {
	data, err := pf.MarshalBinary()
	if err != nil {
		return err
	}
	if compress {
		enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedBetterCompression))
		if err != nil {
			return fmt.Errorf("zstd encoder: %w", err)
		}
		data = enc.EncodeAll(data, nil)
		if err := enc.Close(); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadProof decodes a proof written by WriteProof, detecting compression from
// the zstd frame magic.
func ReadProof(path string) (*proof.Proof, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if bytes.HasPrefix(data, zstdMagic) {
		dec, err := zstd.NewReader(nil, zstd.WithDecoderMaxMemory(maxProofBytes))
		if err != nil {
			return nil, fmt.Errorf("zstd decoder: %w", err)
		}
		defer dec.Close()
		if data, err = dec.DecodeAll(data, nil); err != nil {
			return nil, fmt.Errorf("decompress %s: %w", path, err)
		}
	}
	pf := new(proof.Proof)
	if err := pf.UnmarshalBinary(data); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return pf, nil
}

package params

import (
	"encoding/json"
	"fmt"
	"os"

	"subsetsum-zk/internal/hashx"
)

// Params holds the public protocol parameters shared by prover and verifier.
type Params struct {
	NumQueries int    `json:"num_queries"` // proof rounds
	Hash       string `json:"hash"`        // hashx registry name
	Workers    int    `json:"workers"`     // goroutines for leaf hashing and round checks
}

// Default returns the parameters used when no configuration is supplied.
func Default() Params {
	return Params{NumQueries: 64, Hash: hashx.Default, Workers: 1}
}

// Validate performs basic consistency checks on the parameter set.
func (p *Params) Validate() error {
	if p == nil {
		return fmt.Errorf("nil params")
	}
	if p.NumQueries < 1 {
		return fmt.Errorf("num_queries must be >= 1, got %d", p.NumQueries)
	}
	if _, err := p.Hasher(); err != nil {
		return fmt.Errorf("hash: %w", err)
	}
	if p.Workers < 1 {
		return fmt.Errorf("workers must be >= 1, got %d", p.Workers)
	}
	return nil
}

// Hasher returns the configured hash primitive.
func (p Params) Hasher() (hashx.Hasher, error) {
	return hashx.ByName(p.Hash)
}

// Load reads a JSON parameter file. Fields absent from the file keep their
// Default values.
func Load(path string) (Params, error) {
	p := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return p, err
	}
	if err := json.Unmarshal(data, &p); err != nil {
		return p, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := p.Validate(); err != nil {
		return p, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// Save writes p as indented JSON.
func Save(path string, p Params) error {
	b, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}

package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"subsetsum-zk/params"
	"subsetsum-zk/prof"
	"subsetsum-zk/proof"
	"subsetsum-zk/proofio"

	"github.com/tuneinsight/lattigo/v4/utils"
)

func usage() {
	fmt.Fprintf(os.Stderr, "usage: subsetsum <prove|verify> [flags]\n")
	fmt.Fprintf(os.Stderr, "  prove  -instance in.json | -problem 1,2,3 -assignment 1,1,-1  [-out proof.bin]\n")
	fmt.Fprintf(os.Stderr, "  verify -instance in.json | -problem 1,2,3  -proof proof.bin [-queries k | -bits b]\n")
	os.Exit(2)
}

func main() {
	log.SetFlags(0)
	if len(os.Args) < 2 {
		usage()
	}
	switch os.Args[1] {
	case "prove":
		runProve(os.Args[2:])
	case "verify":
		runVerify(os.Args[2:])
	default:
		usage()
	}
}

type common struct {
	instance string
	problem  string
	config   string
	hash     string
	workers  int
}

func (c *common) register(fs *flag.FlagSet) {
	fs.StringVar(&c.instance, "instance", "", "JSON instance file {problem, assignment}")
	fs.StringVar(&c.problem, "problem", "", "comma-separated problem entries (overrides -instance)")
	fs.StringVar(&c.config, "config", "", "optional JSON parameter file")
	fs.StringVar(&c.hash, "hash", "", "hash primitive override (shake256|sha3-256|blake3)")
	fs.IntVar(&c.workers, "workers", 0, "goroutines for hashing and round checks (0 = config)")
}

func (c *common) params(queries int) params.Params {
	p := params.Default()
	if c.config != "" {
		var err error
		if p, err = params.Load(c.config); err != nil {
			log.Fatalf("load params: %v", err)
		}
	}
	if queries > 0 {
		p.NumQueries = queries
	}
	if c.hash != "" {
		p.Hash = c.hash
	}
	if c.workers > 0 {
		p.Workers = c.workers
	}
	if err := p.Validate(); err != nil {
		log.Fatalf("params: %v", err)
	}
	return p
}

func (c *common) instanceData(assignment string) proofio.Instance {
	var in proofio.Instance
	if c.instance != "" {
		var err error
		if in, err = proofio.LoadInstance(c.instance); err != nil {
			log.Fatalf("load instance: %v", err)
		}
	}
	if c.problem != "" {
		in.Problem = mustInts("problem", c.problem)
	}
	if assignment != "" {
		in.Assignment = mustInts("assignment", assignment)
	}
	return in
}

func runProve(args []string) {
	fs := flag.NewFlagSet("prove", flag.ExitOnError)
	var c common
	c.register(fs)
	assignment := fs.String("assignment", "", "comma-separated ±1 assignment (overrides -instance)")
	queries := fs.Int("queries", 0, "number of proof rounds (0 = config)")
	bits := fs.Float64("bits", 0, "pick the round count for this many soundness bits (overrides -queries)")
	seedHex := fs.String("seed", "", "optional hex PRNG key for a reproducible proof")
	out := fs.String("out", "proof.bin", "output proof file")
	compress := fs.Bool("zstd", false, "zstd-compress the proof file")
	saveConfig := fs.String("save-config", "", "write the effective parameters to this JSON file")
	saveInstance := fs.String("save-instance", "", "write the public problem (no assignment) to this JSON file")
	_ = fs.Parse(args)

	in := c.instanceData(*assignment)
	if len(in.Assignment) == 0 {
		log.Fatalf("prove: no assignment given")
	}
	if *bits > 0 {
		*queries = proof.RoundsFor(len(in.Problem), *bits)
	}
	p := c.params(*queries)

	var prng utils.PRNG
	if *seedHex != "" {
		key, err := hex.DecodeString(*seedHex)
		if err != nil {
			log.Fatalf("seed: %v", err)
		}
		if prng, err = utils.NewKeyedPRNG(key); err != nil {
			log.Fatalf("seed prng: %v", err)
		}
	}

	if *saveConfig != "" {
		if err := params.Save(*saveConfig, p); err != nil {
			log.Fatalf("save params: %v", err)
		}
	}
	if *saveInstance != "" {
		if err := proofio.SaveInstance(*saveInstance, proofio.Instance{Problem: in.Problem}); err != nil {
			log.Fatalf("save instance: %v", err)
		}
	}

	log.Printf("[subsetsum] proving n=%d rounds=%d hash=%s", len(in.Problem), p.NumQueries, p.Hash)
	pr, err := proof.NewProver(p, prng)
	if err != nil {
		log.Fatalf("new prover: %v", err)
	}
	pf, err := pr.Generate(in.Problem, in.Assignment)
	if err != nil {
		log.Fatalf("generate: %v", err)
	}
	if err := proofio.WriteProof(*out, pf, *compress); err != nil {
		log.Fatalf("write proof: %v", err)
	}
	log.Printf("[subsetsum] wrote %s (%d bytes encoded, soundness %.2f bits)",
		*out, pf.Size(), proof.SoundnessBits(len(in.Problem), len(pf.Rounds)))
	reportTimings()
}

func runVerify(args []string) {
	fs := flag.NewFlagSet("verify", flag.ExitOnError)
	var c common
	c.register(fs)
	proofPath := fs.String("proof", "proof.bin", "proof file to verify")
	queries := fs.Int("queries", 0, "minimum number of proof rounds (0 = config)")
	bits := fs.Float64("bits", 0, "require enough rounds for this many soundness bits (overrides -queries)")
	_ = fs.Parse(args)

	in := c.instanceData("")
	pf, err := proofio.ReadProof(*proofPath)
	if err != nil {
		log.Fatalf("read proof: %v", err)
	}
	if c.hash == "" && c.config == "" {
		c.hash = pf.Hash
	}
	if *bits > 0 {
		*queries = proof.RoundsFor(len(in.Problem), *bits)
	}
	p := c.params(*queries)
	log.Printf("[subsetsum] verifying n=%d rounds=%d (min %d) hash=%s", len(in.Problem), len(pf.Rounds), p.NumQueries, p.Hash)

	v, err := proof.NewVerifier(p)
	if err != nil {
		log.Fatalf("new verifier: %v", err)
	}
	rep, err := v.Check(in.Problem, pf)
	if err != nil {
		log.Fatalf("verify: %v", err)
	}
	reportTimings()
	if !rep.OK() {
		log.Printf("[subsetsum] proof REJECTED: failed rounds %v of %d", rep.Failures(), len(rep.Rounds))
		os.Exit(1)
	}
	log.Printf("[subsetsum] proof accepted (%d rounds, soundness %.2f bits)",
		len(rep.Rounds), proof.SoundnessBits(len(in.Problem), len(rep.Rounds)))
}

func reportTimings() {
	for _, t := range prof.Totals(prof.SnapshotAndReset()) {
		log.Printf("[subsetsum] %-16s calls=%-4d total=%v", t.Label, t.Calls, t.Dur)
	}
}

func mustInts(name, s string) []int64 {
	fields := strings.Split(s, ",")
	out := make([]int64, 0, len(fields))
	for _, f := range fields {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		v, err := strconv.ParseInt(f, 10, 64)
		if err != nil {
			log.Fatalf("%s: %v", name, err)
		}
		out = append(out, v)
	}
	return out
}

package main

import (
	"encoding/json"
	"flag"
	"log"
	"os"

	"github.com/gbusto/overseer/internal/ground"
	"github.com/gbusto/overseer/internal/world"
)

func main() {
	var (
		inPath  string
		outPath string
		samples int
		seed    int64
	)
	flag.StringVar(&inPath, "in", "overseer_map.json", "path of the map artifact to read")
	flag.StringVar(&outPath, "out", "ground_coords.json", "path of the coordinate list to write")
	flag.IntVar(&samples, "samples", 1000, "maximum number of ground positions to select")
	flag.Int64Var(&seed, "seed", 1337, "seed for the sampling permutation")
	flag.Parse()

	artifact, err := world.ReadFile(inPath)
	if err != nil {
		log.Fatalf("load map artifact: %v", err)
	}

	coords, err := ground.Sample(artifact, ground.Options{Samples: samples, Seed: seed})
	if err != nil {
		log.Fatalf("sample ground blocks: %v", err)
	}

	data, err := json.MarshalIndent(coords, "", "  ")
	if err != nil {
		log.Fatalf("encode coordinates: %v", err)
	}
	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		log.Fatalf("write coordinates: %v", err)
	}
	log.Printf("wrote %d ground coordinates to %s", len(coords), outPath)
}

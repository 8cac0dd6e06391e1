// Command cmusearch builds a CMUSearch index from a sources JSON file
// and a config JSON file, runs one query against it, and prints the
// ranked results. It exists to exercise the cmusearch package end to
// end from the command line; it is not part of the library's public
// surface.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/ScottyLabs/cmusearch"
)

func main() {
	sourcesPath := flag.String("sources", "", "path to a JSON file of source_id -> doc_id -> field -> value")
	configPath := flag.String("config", "", "path to a JSON file of source_id -> field -> weight")
	query := flag.String("query", "", "query string to search for")
	n := flag.Int("n", 10, "maximum number of results to print")
	flag.Parse()

	if *sourcesPath == "" || *configPath == "" || *query == "" {
		fmt.Fprintln(os.Stderr, "usage: cmusearch -sources sources.json -config config.json -query \"...\"")
		os.Exit(2)
	}

	sources, err := loadSources(*sourcesPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "cmusearch:", err)
		os.Exit(1)
	}

	config, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "cmusearch:", err)
		os.Exit(1)
	}

	engine := cmusearch.NewEngine()
	if err := engine.InitEngine(sources, config); err != nil {
		fmt.Fprintln(os.Stderr, "cmusearch: init:", err)
		os.Exit(1)
	}

	results, err := engine.SearchDocs(*query, *n)
	if err != nil {
		fmt.Fprintln(os.Stderr, "cmusearch: search:", err)
		os.Exit(1)
	}

	for i, r := range results {
		fmt.Printf("%2d. %s/%s  score=%.4f  %v\n", i+1, r.SourceID, r.DocID, r.Score, r.Document)
	}
}

func loadSources(path string) (cmusearch.Sources, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading sources file: %w", err)
	}
	var sources cmusearch.Sources
	if err := json.Unmarshal(data, &sources); err != nil {
		return nil, fmt.Errorf("%w: parsing sources JSON: %v", cmusearch.ErrInputMalformed, err)
	}
	return sources, nil
}

func loadConfig(path string) (cmusearch.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	var config cmusearch.Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("%w: parsing config JSON: %v", cmusearch.ErrInputMalformed, err)
	}
	return config, nil
}

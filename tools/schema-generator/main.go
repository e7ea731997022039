// Command schema-generator writes the JSON Schema of familiar.toml so editors
// with TOML language servers can validate and complete config files.
package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"

	"github.com/grovetools/familiar/config"
)

func main() {
	outputDir := flag.String("out", "schema/definitions", "directory to write familiar.schema.json into")
	flag.Parse()

	outputPath, err := generate(*outputDir)
	if err != nil {
		log.Fatalf("Error generating schema: %v", err)
	}
	log.Printf("Successfully generated schema at %s", outputPath)
}

func generate(outputDir string) (string, error) {
	schemaBytes, err := config.Schema()
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return "", err
	}

	outputPath := filepath.Join(outputDir, "familiar.schema.json")
	if err := os.WriteFile(outputPath, append(schemaBytes, '\n'), 0o644); err != nil {
		return "", err
	}
	return outputPath, nil
}

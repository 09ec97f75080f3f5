package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/invopop/jsonschema"

	"github.com/umputun/texpress/app/generate"
)

func main() {
	// prompt config is yaml, take field names from yaml tags
	r := jsonschema.Reflector{FieldNameTag: "yaml"}
	schema := r.Reflect(&generate.PromptConfig{})

	schema.Title = "texpress prompt configuration schema"
	schema.Description = "Schema for texpress prompt override file"
	schema.Version = "1.0.0"

	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		log.Fatalf("failed to marshal schema: %v", err)
	}

	outputPath := "prompt-schema.json"
	if len(os.Args) > 1 {
		outputPath = os.Args[1]
	}

	if err := os.WriteFile(outputPath, data, 0o600); err != nil { //nolint:gosec // schema file is not sensitive
		log.Fatalf("failed to write schema file: %v", err)
	}

	fmt.Printf("Schema generated successfully at %s\n", outputPath)
}

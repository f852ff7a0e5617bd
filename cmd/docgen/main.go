//go:generate go run . -output ../../docs/configuration

// Command docgen generates markdown documentation from Go config structs.
//
// Usage:
//
//	go run ./cmd/docgen -output docs/configuration
//
// This tool parses Go source files using go/ast to extract struct definitions,
// field types, yaml tags, and doc comments, then generates markdown documentation.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
)

// configFile represents a source file and the structs to extract from it.
type configFile struct {
	path     string
	structs  []string
	docTitle string
	docDesc  string
}

var configFiles = []configFile{
	{
		path:     "pkg/config/config.go",
		structs:  []string{"DeployConfig", "HostingPlanConfig", "StorageConfig", "AppConfig", "AppSetting"},
		docTitle: "Deployment Configuration",
		docDesc:  "Configuration options for the document-processing deployment: project identity, hosting plan, storage, and Function Apps.",
	},
	{
		path:     "pkg/git/config.go",
		structs:  []string{"Config"},
		docTitle: "Template Repository Configuration",
		docDesc:  "Configuration options for fetching engine template overrides from a Git repository.",
	},
}

func main() {
	outputDir := flag.String("output", "docs/configuration", "Output directory for generated documentation")
	rootDir := flag.String("root", "", "Root directory of the project (defaults to current directory)")
	verbose := flag.Bool("verbose", false, "Enable verbose output")
	flag.Parse()

	if *rootDir == "" {
		// Try to find the project root by looking for go.mod
		wd, err := os.Getwd()
		if err != nil {
			log.Fatalf("Failed to get working directory: %v", err)
		}
		*rootDir = findProjectRoot(wd)
	}

	if *verbose {
		log.Printf("Project root: %s", *rootDir)
		log.Printf("Output directory: %s", *outputDir)
	}

	// Create output directory
	outPath := filepath.Join(*rootDir, *outputDir)
	if err := os.MkdirAll(outPath, 0750); err != nil {
		log.Fatalf("Failed to create output directory: %v", err)
	}

	// Process each config file
	for _, cf := range configFiles {
		if err := processConfigFile(*rootDir, outPath, cf, *verbose); err != nil {
			log.Fatalf("Failed to process %s: %v", cf.path, err)
		}
	}

	// Generate index file
	if err := generateIndex(outPath); err != nil {
		log.Fatalf("Failed to generate index: %v", err)
	}

	fmt.Printf("Documentation generated successfully in %s\n", outPath)
}

func processConfigFile(rootDir, outPath string, cf configFile, verbose bool) error {
	srcPath := filepath.Join(rootDir, cf.path)

	if verbose {
		log.Printf("Parsing %s...", srcPath)
	}

	// Parse the source file
	allStructs, err := ParseFile(srcPath)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", srcPath, err)
	}

	// Filter to only the structs we want
	structs := FilterConfigStructs(allStructs, cf.structs)
	if len(structs) == 0 {
		return fmt.Errorf("no matching structs found in %s (looking for %v)", srcPath, cf.structs)
	}

	// Order structs according to the order in cf.structs
	ordered := orderStructs(structs, cf.structs)

	// Generate output filename from source file
	outputName := generateOutputName(cf.path)
	outputPath := filepath.Join(outPath, outputName)

	if verbose {
		log.Printf("Writing %s...", outputPath)
	}

	// Create output file
	f, err := os.Create(filepath.Clean(outputPath))
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	// Generate documentation
	GenerateConfigDoc(f, cf.docTitle, cf.docDesc, ordered)

	return err
}

// orderStructs orders structs according to the desired order.
func orderStructs(structs []StructDoc, order []string) []StructDoc {
	structMap := make(map[string]StructDoc)
	for _, s := range structs {
		structMap[s.Name] = s
	}

	var result []StructDoc
	for _, name := range order {
		if s, ok := structMap[name]; ok {
			result = append(result, s)
		}
	}
	return result
}

// generateOutputName generates an output filename from a source path.
func generateOutputName(sourcePath string) string {
	// Extract meaningful parts from the path
	// e.g., "pkg/config/config.go" -> "core.md"
	// e.g., "pkg/git/config.go" -> "git.md"

	dir := filepath.Dir(sourcePath)
	base := filepath.Base(dir)

	// Handle special cases
	switch base {
	case "config":
		return "core.md"
	default:
		return base + ".md"
	}
}

// findProjectRoot walks up the directory tree to find go.mod.
func findProjectRoot(start string) string {
	dir := start
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root
			return start
		}
		dir = parent
	}
}

// generateIndex creates an index.md file linking to all generated docs.
func generateIndex(outPath string) (err error) {
	indexPath := filepath.Join(outPath, "README.md")
	f, err := os.Create(filepath.Clean(indexPath))
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	content := `# Configuration Reference

This directory contains auto-generated documentation for docinfra configuration options.

> This documentation is auto-generated from source code using ` + "`go generate`" + `.
> To regenerate, run: ` + "`go generate ./cmd/docgen`" + `

## Configuration Files

- [Deployment Configuration](core.md) - Project identity, hosting plan, storage, and Function App options
- [Template Repository](git.md) - Engine template override repository options
`
	_, err = f.WriteString(content)
	return err
}

// Command nfscan extracts structured data from a single NFSe document and
// prints the canonical JSON to stdout. With -o it also writes a
// nfse_<codigo_verificacao>.json file into the output directory.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"nfscan/internal/canonical"
	"nfscan/internal/config"
	"nfscan/internal/extract"
	"nfscan/internal/parser"
	_ "nfscan/internal/parser/claude"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	outputDir := flag.String("o", "", "directory to write nfse_<codigo>.json into (optional)")
	strategy := flag.String("strategy", "", "parser strategy (overrides NFSCAN_PARSER_STRATEGY)")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: nfscan [flags] <documento.pdf|documento.txt>\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	path := flag.Arg(0)

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if *strategy != "" {
		cfg.Parser.Strategy = *strategy
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	ctx := context.Background()

	texto, err := extract.NewExtractor().Extract(ctx, filepath.Base(path), data)
	if err != nil {
		return err
	}

	p, err := parser.NewParser(&cfg.Parser)
	if err != nil {
		return err
	}

	nfse, err := p.Parse(ctx, texto)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}

	out, err := canonical.EncodeIndent(nfse)
	if err != nil {
		return fmt.Errorf("encoding result: %w", err)
	}

	fmt.Println(string(out))

	if *outputDir != "" {
		if err := os.MkdirAll(*outputDir, 0o755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
		outPath := filepath.Join(*outputDir, fmt.Sprintf("nfse_%s.json", nfse.CodigoVerificacao))
		if err := os.WriteFile(outPath, out, 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", outPath, err)
		}
		log.Printf("wrote %s", outPath)
	}

	return nil
}

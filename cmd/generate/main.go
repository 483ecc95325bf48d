package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"quizforge/internal/adapter/provider"
	"quizforge/internal/config"
	"quizforge/internal/domain"
	"quizforge/internal/dto"
	"quizforge/internal/generation"
	"quizforge/internal/logger"
	"quizforge/internal/util"
	"quizforge/internal/validation"
)

// cmd/generate runs the generation pipeline without the API server,
// the database or Redis: source text in, item batch JSON out. With no
// provider configured it produces deterministic rule-based items,
// which makes it usable completely offline.
func main() {
	sourcePath := flag.String("source", "", "path to the source text file (reads stdin when empty)")
	typesFlag := flag.String("types", "mcq", "comma separated content types (mcq,poll,open_question,cloze,matching,brainstorming,flashcards,course_structure,course_sheet)")
	maxItems := flag.Int("max-items", 0, "maximum number of items (0 uses the default)")
	language := flag.String("language", "", "target language (defaults to fr)")
	level := flag.String("level", "", "pedagogical level (defaults to intermediate)")
	subject := flag.String("subject", "", "subject hint")
	classLevel := flag.String("class-level", "", "class level hint")
	difficulty := flag.String("difficulty", "", "difficulty target (easy, medium or hard)")
	instructions := flag.String("instructions", "", "free-form generation instructions")
	pretty := flag.Bool("pretty", true, "indent the JSON output")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		// No config file is fine here: the offline provider needs none.
		fmt.Fprintln(os.Stderr, "No readable config file, falling back to the offline provider")
		cfg = &config.Config{}
		cfg.LLM.Provider = "offline"
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	sourceText, err := readSource(*sourcePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to read source text: %v\n", err)
		os.Exit(1)
	}

	req := domain.GenerateRequest{
		SourceText:   sourceText,
		ContentTypes: parseContentTypes(*typesFlag),
		MaxItems:     *maxItems,
		Language:     *language,
		Level:        *level,
		Subject:      *subject,
		ClassLevel:   *classLevel,
		Difficulty:   *difficulty,
		Instructions: *instructions,
	}

	if errs := validation.NewValidator().ValidateGenerateRequest(req); len(errs) > 0 {
		for _, ve := range errs {
			fmt.Fprintf(os.Stderr, "invalid request: %s\n", ve.Error())
		}
		os.Exit(1)
	}
	req.ApplyDefaults()

	itemContract, err := validation.NewItemContract()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to compile item contract: %v\n", err)
		os.Exit(1)
	}

	textProvider := provider.NewFromConfig(context.Background(), cfg.LLM)
	generator := generation.NewGenerator(textProvider, cfg.Generation.MaxSourceChars, cfg.Generation.PairsPerQuestion)

	items := generator.GenerateItems(context.Background(), req)
	items = generation.EnforceItemContract(itemContract, req, items)

	batch := domain.NewItemBatch(util.NewULID(), util.HashSHA256(req.SourceText), req, items)

	encoder := json.NewEncoder(os.Stdout)
	if *pretty {
		encoder.SetIndent("", "  ")
	}
	if err := encoder.Encode(dto.NewBatchResponse(batch)); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to encode batch: %v\n", err)
		os.Exit(1)
	}
}

func readSource(path string) (string, error) {
	if path == "" {
		raw, err := io.ReadAll(os.Stdin)
		return string(raw), err
	}
	raw, err := os.ReadFile(path)
	return string(raw), err
}

func parseContentTypes(raw string) []domain.ContentType {
	var contentTypes []domain.ContentType
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		contentTypes = append(contentTypes, domain.ContentType(part))
	}
	return contentTypes
}

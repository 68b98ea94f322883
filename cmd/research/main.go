// Command research runs the pipeline once against a query and prints
// the resulting node as JSON. Useful for exercising the full retrieval
// and generation flow without the HTTP server or database.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"argutree-backend/service"

	"github.com/google/generative-ai-go/genai"
	"github.com/joho/godotenv"
	"google.golang.org/api/option"
)

const defaultQuery = "landlord security deposit dispute California Civil Code 1950.5"

func main() {
	query := flag.String("query", defaultQuery, "research query")
	depth := flag.Int("depth", 0, "node depth")
	maxDepth := flag.Int("max-depth", 2, "maximum depth")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		if err := godotenv.Load("../../.env"); err != nil {
			log.Printf("Warning: No .env file found, using environment variables")
		}
	}

	ctx := context.Background()

	var model service.TextModel
	if apiKey := os.Getenv("GEMINI_API_KEY"); apiKey != "" {
		client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
		if err != nil {
			log.Fatalf("Failed to initialize Gemini: %v", err)
		}
		model = service.NewGeminiModel(client, "gemini-2.0-flash-exp")
	} else {
		log.Println("Warning: GEMINI_API_KEY not set, arguments will use fallbacks")
	}

	researchService := service.NewResearchService(
		service.WithRetriever(service.NewCaseRetriever(
			service.RetrieverWithToken(os.Getenv("COURTLISTENER_TOKEN")),
		)),
		service.WithGenerator(service.NewArgumentGenerator(
			service.GeneratorWithModel(model),
		)),
	)

	log.Printf("Testing research pipeline for: %s", *query)

	result, err := researchService.BuildNode(ctx, service.BuildRequest{
		Query:    *query,
		Depth:    *depth,
		MaxDepth: *maxDepth,
	})
	if err != nil {
		log.Fatalf("Research failed: %v", err)
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		log.Fatalf("Failed to encode result: %v", err)
	}
	fmt.Println(string(out))
}

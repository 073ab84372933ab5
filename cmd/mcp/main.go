// The mcp binary exposes the classification pipeline as MCP tools over
// stdio, so desk assistants can dry-run a filing decision for pasted OCR
// text without touching storage or the queue.
package main

import (
	"context"
	"encoding/json"
	"log"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/ymatsuda/docfiler/internal/config"
	"github.com/ymatsuda/docfiler/internal/core/classify"
	"github.com/ymatsuda/docfiler/internal/core/domain"
	"github.com/ymatsuda/docfiler/internal/core/naming"
	"github.com/ymatsuda/docfiler/internal/core/pipeline"
)

func main() {
	cfg := config.Load()

	rules, err := config.LoadRules(cfg.RulesPath)
	if err != nil {
		log.Fatalf("load classification rules: %v", err)
	}
	classifier, err := classify.New(rules)
	if err != nil {
		log.Fatalf("build classifier: %v", err)
	}
	filingPipeline := pipeline.New(classifier, naming.NewBuilder())

	s := server.NewMCPServer("docfiler", "1.0.0", server.WithToolCapabilities(false))

	classifyTool := mcp.NewTool("classify_document",
		mcp.WithDescription("Classify recognized document text, extract filing fields and synthesize the destination filename."),
		mcp.WithString("text",
			mcp.Required(),
			mcp.Description("Recognized (OCR) text of the document."),
		),
		mcp.WithString("extension",
			mcp.Description("File extension including the dot, defaults to .pdf."),
		),
	)
	s.AddTool(classifyTool, func(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		text, err := request.RequireString("text")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		ext := strings.TrimSpace(request.GetString("extension", ".pdf"))
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}

		result := filingPipeline.Run(text, ext)
		payload, err := json.Marshal(result)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(string(payload)), nil
	})

	categoriesTool := mcp.NewTool("list_categories",
		mcp.WithDescription("List the document categories and their destination folders."),
	)
	s.AddTool(categoriesTool, func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		routes := config.Routes()
		out := make(map[string]string, len(routes)+1)
		for category, folder := range routes {
			out[string(category)] = folder
		}
		out[string(domain.CategoryUnclassified)] = config.FallbackFolder()

		payload, err := json.Marshal(out)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(string(payload)), nil
	})

	if err := server.ServeStdio(s); err != nil {
		log.Fatalf("mcp server error: %v", err)
	}
}

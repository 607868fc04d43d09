// Package mcpserver provides an MCP (Model Context Protocol) server
// that exposes Taxo classification tools via stdio transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/taxolabs/taxo/internal/classify"
	"github.com/taxolabs/taxo/internal/models"
)

// Server wraps the MCP server with Taxo tools.
type Server struct {
	mcp *server.MCPServer
	svc *classify.Service
}

// New creates a new MCP server with all Taxo tools registered.
func New(svc *classify.Service) *Server {
	s := &Server{svc: svc}

	s.mcp = server.NewMCPServer(
		"Taxo",
		"1.0.0",
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("list_classifiers",
		mcp.WithDescription("List all classifiers with their categories and history sizes."),
	), s.listClassifiers)

	s.mcp.AddTool(mcp.NewTool("get_classifier",
		mcp.WithDescription("Read a classifier in full, including categories and classification history."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Classifier id (e.g. clf-...)")),
	), s.getClassifier)

	s.mcp.AddTool(mcp.NewTool("classify_text",
		mcp.WithDescription("Classify a text against a classifier's categories. "+
			"The result is appended to the classifier's history. Read the "+
			"taxo://classification-guide resource for feedback semantics."),
		mcp.WithString("classifierId", mcp.Required(), mcp.Description("Classifier id")),
		mcp.WithString("text", mcp.Required(), mcp.Description("Text to classify")),
	), s.classifyText)

	s.mcp.AddTool(mcp.NewTool("submit_feedback",
		mcp.WithDescription("Record a verdict on a history record. 'correct' promotes the "+
			"record's text into the assigned category's examples; 'incorrect' with a "+
			"correctedCategoryId promotes it into the corrected category instead."),
		mcp.WithString("classifierId", mcp.Required(), mcp.Description("Classifier id")),
		mcp.WithString("historyId", mcp.Required(), mcp.Description("History record id (e.g. rec-...)")),
		mcp.WithString("feedback", mcp.Required(), mcp.Description("Verdict: 'correct' or 'incorrect'")),
		mcp.WithString("correctedCategoryId", mcp.Description("Category the record should have been assigned to (incorrect verdicts only)")),
	), s.submitFeedback)

	s.mcp.AddTool(mcp.NewTool("suggest_category",
		mcp.WithDescription("Ask the model to propose a category name and description for a set of example texts."),
		mcp.WithString("examples", mcp.Required(), mcp.Description("Example texts as a JSON array of strings")),
	), s.suggestCategory)

	s.mcp.AddTool(mcp.NewTool("add_category",
		mcp.WithDescription("Add a category to a classifier. Unclassified history records whose "+
			"text matches a seed example are adopted into the new category."),
		mcp.WithString("classifierId", mcp.Required(), mcp.Description("Classifier id")),
		mcp.WithString("name", mcp.Required(), mcp.Description("Category name")),
		mcp.WithString("description", mcp.Required(), mcp.Description("What belongs in this category")),
		mcp.WithString("examples", mcp.Description("Optional seed examples as a JSON array of strings")),
	), s.addCategory)

	s.mcp.AddTool(mcp.NewTool("get_classification_guide",
		mcp.WithDescription("Returns the guide describing the classification workflow and "+
			"feedback semantics. Call this before submitting feedback."),
	), s.getGuide)

	// Resource: classification workflow guide.
	s.mcp.AddResource(
		mcp.NewResource("taxo://classification-guide", "Classification Guide",
			mcp.WithResourceDescription("How classifiers, categories, history, and feedback fit together."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readGuideResource,
	)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

func (s *Server) listClassifiers(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	classifiers, err := s.svc.ListClassifiers(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	type summary struct {
		ID         string `json:"id"`
		Name       string `json:"name"`
		Categories int    `json:"categories"`
		History    int    `json:"history"`
	}
	summaries := make([]summary, 0, len(classifiers))
	for _, c := range classifiers {
		summaries = append(summaries, summary{
			ID: c.ID, Name: c.Name,
			Categories: len(c.Categories), History: len(c.History),
		})
	}
	out, _ := json.MarshalIndent(summaries, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) getClassifier(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	c, err := s.svc.GetClassifier(ctx, id)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(c, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) classifyText(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	classifierID, err := req.RequireString("classifierId")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	text, err := req.RequireString("text")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	rec, err := s.svc.Classify(ctx, classifierID, text)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(rec, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) submitFeedback(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	classifierID, err := req.RequireString("classifierId")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	historyID, err := req.RequireString("historyId")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	verdict, err := req.RequireString("feedback")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	corrected := ""
	if v, err := req.RequireString("correctedCategoryId"); err == nil {
		corrected = v
	}
	if err := s.svc.SubmitFeedback(ctx, classifierID, historyID, models.Verdict(verdict), corrected); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("feedback recorded for %s", historyID)), nil
}

func (s *Server) suggestCategory(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw, err := req.RequireString("examples")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	var examples []string
	if err := json.Unmarshal([]byte(raw), &examples); err != nil {
		return mcp.NewToolResultError("examples must be a JSON array of strings"), nil
	}
	suggestion, err := s.svc.SuggestCategory(ctx, examples, nil)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(suggestion, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) addCategory(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	classifierID, err := req.RequireString("classifierId")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	name, err := req.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	description, err := req.RequireString("description")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	var examples []string
	if raw, err := req.RequireString("examples"); err == nil && raw != "" {
		if err := json.Unmarshal([]byte(raw), &examples); err != nil {
			return mcp.NewToolResultError("examples must be a JSON array of strings"), nil
		}
	}
	cat, err := s.svc.AddCategory(ctx, classifierID, classify.CategoryInput{
		Name:        name,
		Description: description,
		Examples:    examples,
	})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(cat, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) getGuide(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(ClassificationGuide), nil
}

func (s *Server) readGuideResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      "taxo://classification-guide",
			MIMEType: "text/markdown",
			Text:     ClassificationGuide,
		},
	}, nil
}

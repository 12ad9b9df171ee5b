package mcp

import (
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/standardbeagle/rootstem/internal/debug"
)

// createJSONResponse creates a standardized JSON response for MCP tools
func createJSONResponse(data interface{}) (*mcp.CallToolResult, error) {
	content, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal response data: %v", err)
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: string(content)},
		},
	}, nil
}

// ErrorResponse is the body of a failed tool call
type ErrorResponse struct {
	Success   bool   `json:"success"`
	Error     string `json:"error"`
	Operation string `json:"operation"`
}

// createErrorResponse reports err inside the result with IsError set, so the
// client sees the failure instead of a protocol error
func createErrorResponse(operation string, err error) (*mcp.CallToolResult, error) {
	debug.LogMCP("%s failed: %v\n", operation, err)
	response, marshalErr := createJSONResponse(ErrorResponse{
		Success:   false,
		Error:     err.Error(),
		Operation: operation,
	})
	if marshalErr != nil {
		return nil, marshalErr
	}
	response.IsError = true
	return response, nil
}

package mcpclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/hashicorp/go-cleanhttp"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// DefaultEndpoint is the stream path of a locally running server
const DefaultEndpoint = "http://localhost:8080/mcp/stream"

// ToolError is a tool call the server reported as failed
type ToolError struct {
	Tool    string
	Message string
}

func (e *ToolError) Error() string {
	return fmt.Sprintf("%s: %s", e.Tool, e.Message)
}

// Client calls jobboard tools over a streamable HTTP session
type Client struct {
	session *sdkmcp.ClientSession
}

// Connect opens a session against endpoint
func Connect(ctx context.Context, endpoint, version string) (*Client, error) {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}

	c, err := ConnectTransport(ctx, &sdkmcp.StreamableClientTransport{
		Endpoint:   endpoint,
		HTTPClient: cleanhttp.DefaultClient(),
	}, version)
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", endpoint, err)
	}
	return c, nil
}

// ConnectTransport opens a session over an arbitrary transport, e.g. an
// in-memory pair in tests
func ConnectTransport(ctx context.Context, transport sdkmcp.Transport, version string) (*Client, error) {
	client := sdkmcp.NewClient(&sdkmcp.Implementation{
		Name:    "jobboardctl",
		Version: version,
	}, nil)

	session, err := client.Connect(ctx, transport, nil)
	if err != nil {
		return nil, err
	}
	return &Client{session: session}, nil
}

func (c *Client) Close() error {
	return c.session.Close()
}

// Call invokes tool with args and decodes its structured output into out
// when out is non-nil. The text content is returned for display.
func (c *Client) Call(ctx context.Context, tool string, args map[string]any, out any) (string, error) {
	if args == nil {
		args = map[string]any{}
	}

	res, err := c.session.CallTool(ctx, &sdkmcp.CallToolParams{
		Name:      tool,
		Arguments: args,
	})
	if err != nil {
		return "", fmt.Errorf("%s: %w", tool, err)
	}

	text := Text(res)
	if res.IsError {
		return text, &ToolError{Tool: tool, Message: text}
	}

	if out != nil && res.StructuredContent != nil {
		if err := decode(res.StructuredContent, out); err != nil {
			return text, fmt.Errorf("%s: decode output: %w", tool, err)
		}
	}
	return text, nil
}

// Text joins every text content block of res
func Text(res *sdkmcp.CallToolResult) string {
	var parts []string
	for _, content := range res.Content {
		if tc, ok := content.(*sdkmcp.TextContent); ok {
			parts = append(parts, tc.Text)
		}
	}
	return strings.Join(parts, "\n")
}

func decode(structured, out any) error {
	if structured == nil {
		return errors.New("no structured content")
	}
	raw, err := json.Marshal(structured)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, out)
}

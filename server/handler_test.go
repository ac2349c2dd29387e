package server

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/takaishi/graphql-jump/jump"
	"github.com/takaishi/graphql-jump/locator"
	"github.com/takaishi/graphql-jump/search"
)

type fakeLocator struct {
	bases []string
	err   error
}

func (f *fakeLocator) Locate(ctx context.Context, dir, base string) (*locator.Result, error) {
	f.bases = append(f.bases, base)
	if f.err != nil {
		return nil, f.err
	}
	return &locator.Result{
		Base:  base,
		Stage: locator.StageOperation,
		Hit:   search.Hit{File: "schema/foo.graphql", Line: 3, Column: 1},
		Lines: []string{"schema/foo.graphql:3:1:fragment FooBar on Type { id }"},
	}, nil
}

type fakeNavigator struct {
	paths []string
}

func (f *fakeNavigator) Navigate(ctx context.Context, path string, line, column int) error {
	f.paths = append(f.paths, path)
	return nil
}

type discard struct{}

func (discard) Info(string)  {}
func (discard) Warn(string)  {}
func (discard) Error(string) {}

func newHandler(loc *fakeLocator, nav *fakeNavigator, words jump.WordFunc) *Handler {
	j := jump.New(jump.Deps{
		Locator:   loc,
		Navigator: nav,
		Notifier:  discard{},
		Words:     words,
	})
	return NewHandler(j, jump.StaticHost{Root: "/ws"})
}

func request(args map[string]any) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, result)
	require.NotEmpty(t, result.Content)
	text, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok)
	return text.Text
}

func TestGoGraphql(t *testing.T) {
	loc := &fakeLocator{}
	nav := &fakeNavigator{}
	h := newHandler(loc, nav, nil)

	result, err := h.GoGraphql(context.Background(), request(map[string]any{"term": "FooBarFragment"}))
	require.NoError(t, err)
	assert.False(t, result.IsError)

	var out jump.Outcome
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &out))
	assert.Equal(t, "/ws/schema/foo.graphql", out.Path)
	assert.Equal(t, []string{"FooBar"}, loc.bases)
	assert.Equal(t, []string{"/ws/schema/foo.graphql"}, nav.paths)
	assert.Contains(t, resultText(t, result), `"stage": "operation"`)
}

func TestGoGraphqlMissingTerm(t *testing.T) {
	h := newHandler(&fakeLocator{}, &fakeNavigator{}, nil)

	result, err := h.GoGraphql(context.Background(), request(map[string]any{}))
	require.NoError(t, err)
	assert.True(t, result.IsError)
}

func TestGoGraphqlNoMatches(t *testing.T) {
	h := newHandler(&fakeLocator{err: locator.ErrNoMatches}, &fakeNavigator{}, nil)

	result, err := h.GoGraphql(context.Background(), request(map[string]any{"term": "Nope"}))
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Equal(t, "no matches", resultText(t, result))
}

func TestGoGraphqlCurrentWord(t *testing.T) {
	loc := &fakeLocator{}
	nav := &fakeNavigator{}
	words := func(path string, line, column int) (string, bool, error) {
		assert.Equal(t, "/ws/web/App.tsx", path)
		return "UserQuery", true, nil
	}
	h := newHandler(loc, nav, words)

	result, err := h.GoGraphqlCurrentWord(context.Background(), request(map[string]any{
		"file":   "web/App.tsx",
		"line":   float64(4),
		"column": float64(9),
	}))
	require.NoError(t, err)
	assert.False(t, result.IsError)
	assert.Equal(t, []string{"User"}, loc.bases)
	assert.Len(t, nav.paths, 1)
}

func TestGoGraphqlCurrentWordInvalidPosition(t *testing.T) {
	h := newHandler(&fakeLocator{}, &fakeNavigator{}, nil)

	result, err := h.GoGraphqlCurrentWord(context.Background(), request(map[string]any{
		"file": "web/App.tsx",
		"line": float64(0),
	}))
	require.NoError(t, err)
	assert.True(t, result.IsError)
}

func TestLocateDoesNotNavigate(t *testing.T) {
	nav := &fakeNavigator{}
	h := newHandler(&fakeLocator{}, nav, nil)

	result, err := h.Locate(context.Background(), request(map[string]any{"term": "FooBar"}))
	require.NoError(t, err)
	assert.False(t, result.IsError)
	assert.Empty(t, nav.paths)
	assert.Contains(t, resultText(t, result), "fragment FooBar on Type")
}

func TestNewRegistersTools(t *testing.T) {
	s := New(newHandler(&fakeLocator{}, &fakeNavigator{}, nil), "test")

	resp := s.HandleMessage(context.Background(), json.RawMessage(`{"jsonrpc":"2.0","id":1,"method":"tools/list"}`))
	raw, err := json.Marshal(resp)
	require.NoError(t, err)

	for _, name := range []string{"go_graphql", "go_graphql_current_word", "locate_graphql"} {
		assert.Contains(t, string(raw), `"name":"`+name+`"`)
	}
}

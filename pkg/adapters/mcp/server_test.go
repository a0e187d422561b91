package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/aretw0/entitystore/pkg/container"
	"github.com/aretw0/entitystore/pkg/domain"
	"github.com/aretw0/entitystore/pkg/entity"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type task struct {
	Name string `mapstructure:"name" json:"name"`
	Done bool   `mapstructure:"done" json:"done"`
}

func newTestServer(t *testing.T) (*Server, *container.Container) {
	t.Helper()
	c := container.New()
	s, err := entity.New("tasks", "name", entity.Overlay[task]())
	require.NoError(t, err)
	require.NoError(t, s.Register(c))
	return NewServer(c, nil), c
}

func selectRequest(path, selector string) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Name = "select"
	req.Params.Arguments = map[string]any{"path": path, "selector": selector}
	return req
}

func text(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, res.Content)
	tc, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok)
	return tc.Text
}

func TestHandleDispatch(t *testing.T) {
	s, c := newTestServer(t)
	ctx := context.Background()

	resp, err := s.handleDispatch(ctx, mcp.CallToolRequest{}, map[string]interface{}{
		"type":    "[tasks] add",
		"payload": `{"name":"write","done":false}`,
	})
	require.NoError(t, err)
	assert.Equal(t, "ok", resp.Status)

	_, err = s.handleDispatch(ctx, mcp.CallToolRequest{}, map[string]interface{}{
		"type":    "[tasks] update",
		"payload": `{"name":"write","done":true}`,
	})
	require.NoError(t, err)

	col, ok := c.State().Resolve("tasks")
	require.True(t, ok)
	assert.Equal(t, task{Name: "write", Done: true}, col.(domain.Collection[task]).Entities["write"])
}

func TestHandleDispatch_Errors(t *testing.T) {
	s, _ := newTestServer(t)
	ctx := context.Background()

	_, err := s.handleDispatch(ctx, mcp.CallToolRequest{}, map[string]interface{}{"type": "bogus"})
	assert.ErrorIs(t, err, domain.ErrInvalidActionType)

	_, err = s.handleDispatch(ctx, mcp.CallToolRequest{}, map[string]interface{}{"type": "[tasks] add", "payload": "{"})
	assert.Error(t, err)

	_, err = s.handleDispatch(ctx, mcp.CallToolRequest{}, map[string]interface{}{"type": "[tasks] update", "payload": `{"done":true}`})
	assert.ErrorIs(t, err, domain.ErrInvalidID)

	_, err = s.handleDispatch(ctx, mcp.CallToolRequest{}, map[string]interface{}{"type": "[tasks] nope"})
	assert.ErrorIs(t, err, domain.ErrUnknownAction)
}

func TestHandleSelect(t *testing.T) {
	s, c := newTestServer(t)
	ctx := context.Background()
	require.NoError(t, c.Dispatch(ctx, entity.AddOrReplaceAll(entity.Path("tasks"), []task{{Name: "b"}, {Name: "a"}})))
	require.NoError(t, c.Dispatch(ctx, entity.SetActive(entity.Path("tasks"), "b")))

	tests := []struct {
		selector string
		want     string
	}{
		{selector: SelectSize, want: `2`},
		{selector: SelectKeys, want: `["a","b"]`},
		{selector: SelectEntities, want: `[{"name":"a","done":false},{"name":"b","done":false}]`},
		{selector: SelectActive, want: `{"name":"b","done":false}`},
		{selector: SelectActiveID, want: `"b"`},
		{selector: SelectLoading, want: `false`},
		{selector: SelectError, want: `null`},
	}
	for _, tt := range tests {
		t.Run(tt.selector, func(t *testing.T) {
			res, err := s.handleSelect(ctx, selectRequest("tasks", tt.selector))
			require.NoError(t, err)
			assert.False(t, res.IsError)
			assert.JSONEq(t, tt.want, text(t, res))
		})
	}
}

func TestHandleSelect_Errors(t *testing.T) {
	s, _ := newTestServer(t)

	res, err := s.handleSelect(context.Background(), selectRequest("missing", SelectSize))
	require.NoError(t, err)
	assert.True(t, res.IsError)

	res, err = s.handleSelect(context.Background(), selectRequest("tasks", "median"))
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestSnapshot(t *testing.T) {
	s, c := newTestServer(t)
	require.NoError(t, c.Dispatch(context.Background(), entity.AddOrReplace(entity.Path("tasks"), task{Name: "x"})))

	raw, err := s.snapshot()
	require.NoError(t, err)

	var out map[string]domain.View
	require.NoError(t, json.Unmarshal(raw, &out))
	require.Contains(t, out, "tasks")
	assert.Equal(t, 1, out["tasks"].Size())
}

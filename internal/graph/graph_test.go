package graph_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daeuniverse/daed-sub000/internal/cache"
	"github.com/daeuniverse/daed-sub000/internal/graph"
	"github.com/daeuniverse/daed-sub000/internal/manager"
	"github.com/daeuniverse/daed-sub000/internal/parser"
	"github.com/daeuniverse/daed-sub000/internal/symbols"
)

const config = `subscription {
  my_sub: 'https://example.com/sub'
}
node {
  n1: 'ss://example'
}
group {
  proxy {
    filter: subtag(my_sub)
    policy: min_moving_avg
  }
  other {
    filter: subtag(missing)
  }
}
`

const uri = "file:///etc/dae/config.dae"

func labels(nodes []graph.Node) []string {
	out := make([]string, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, n.Label)
	}
	return out
}

func TestBuild(t *testing.T) {
	data := graph.Build(uri, parser.Parse(config))

	assert.Equal(t, []string{"subscription", "my_sub", "node", "n1", "group", "proxy", "other"}, labels(data.Nodes))
	require.Len(t, data.Links, 1, "unresolved references produce no link")

	link := data.Links[0]
	assert.Equal(t, symbols.KindSubscription, link.Kind)
	assert.Equal(t, uri+"#7:2", link.Source)
	assert.Equal(t, uri+"#1:2", link.Target)
}

func TestBuildEmpty(t *testing.T) {
	data := graph.Build(uri, parser.Parse(""))
	assert.NotNil(t, data.Nodes)
	assert.NotNil(t, data.Links)
}

func newViewer(t *testing.T) (*cache.Cache, *graph.Viewer) {
	t.Helper()
	c := cache.New(parser.Parse)
	c.Get(manager.Document{URI: uri, Version: 1, Text: config})
	return c, graph.NewViewer(c)
}

func TestRoutes(t *testing.T) {
	_, v := newViewer(t)
	srv := httptest.NewServer(v.Router())
	defer srv.Close()

	t.Run("index", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/")
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.True(t, strings.HasPrefix(resp.Header.Get("Content-Type"), "text/html"))
	})

	t.Run("graph", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/api/graph")
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var data graph.GraphData
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&data))
		assert.Len(t, data.Nodes, 7)
		assert.Len(t, data.Links, 1)
	})

	t.Run("unknown document", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/api/graph?uri=" + url.QueryEscape("file:///missing.dae"))
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func readMessage(t *testing.T, conn *websocket.Conn) graph.Message {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(3*time.Second)))
	var msg graph.Message
	require.NoError(t, conn.ReadJSON(&msg))
	return msg
}

func TestLiveUpdates(t *testing.T) {
	c, v := newViewer(t)
	addr, err := v.Start("127.0.0.1:0")
	require.NoError(t, err)
	defer v.Stop()

	again, err := v.Start("127.0.0.1:0")
	require.NoError(t, err)
	assert.Equal(t, addr, again)

	wsURL := "ws" + strings.TrimPrefix(addr, "http") + "ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	msg := readMessage(t, conn)
	assert.Equal(t, "init", msg.Op)
	require.NotNil(t, msg.Graph)
	assert.Len(t, msg.Graph.Nodes, 7)

	c.Get(manager.Document{URI: uri, Version: 2, Text: "node {\n  n1: 'ss://example'\n}\n"})
	msg = readMessage(t, conn)
	assert.Equal(t, "document", msg.Op)
	assert.Equal(t, uri, msg.URI)
	require.NotNil(t, msg.Graph)
	assert.Equal(t, []string{"node", "n1"}, labels(msg.Graph.Nodes))

	c.Evict(uri)
	msg = readMessage(t, conn)
	assert.Equal(t, "remove", msg.Op)
	assert.Equal(t, uri, msg.URI)
}

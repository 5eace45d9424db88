package runtime

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akulearn/sandbox/types"
)

// fakeDoer records the outgoing request and answers with a canned response.
type fakeDoer struct {
	lastReq *http.Request
	status  int
	body    string
	err     error
}

func (f *fakeDoer) Do(req *http.Request) (*http.Response, error) {
	f.lastReq = req
	if f.err != nil {
		return nil, f.err
	}
	return &http.Response{
		StatusCode: f.status,
		Body:       io.NopCloser(bytes.NewBufferString(f.body)),
		Header:     http.Header{},
	}, nil
}

func newHTTPTestExecutor(client types.HTTPDoer) *httpExecutor {
	return &httpExecutor{client: client, timeout: 5 * time.Second}
}

func TestHTTPExecutorGetJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"hello":"world"}`))
	}))
	defer srv.Close()

	ec := newExecContext()
	node := &types.Node{ID: "fetch", Kind: types.KindAction, Service: ServiceHTTP,
		Config: types.Data{"url": srv.URL}}

	out, err := newHTTPTestExecutor(srv.Client()).execute(context.Background(), node, ec, nil)
	require.Nil(t, err)
	assert.Equal(t, types.Data{
		"status": 200,
		"data":   map[string]any{"hello": "world"},
	}, out)

	require.Len(t, ec.log, 2)
	assert.Equal(t, types.EventStart, ec.log[0].Event)
	assert.Equal(t, types.EventSuccess, ec.log[1].Event)
}

func TestHTTPExecutorPostSendsInputAsBody(t *testing.T) {
	var gotBody []byte
	var gotContentType, gotToken string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		gotBody, _ = io.ReadAll(r.Body)
		gotContentType = r.Header.Get("Content-Type")
		gotToken = r.Header.Get("X-Token")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"created":true}`))
	}))
	defer srv.Close()

	ec := newExecContext()
	node := &types.Node{ID: "send", Kind: types.KindAction, Service: ServiceHTTP,
		Config: types.Data{
			"url":     srv.URL,
			"method":  "post",
			"headers": types.Data{"X-Token": "abc"},
		}}

	out, err := newHTTPTestExecutor(srv.Client()).execute(context.Background(), node, ec, types.Data{"a": 1})
	require.Nil(t, err)

	var payload map[string]any
	require.Nil(t, json.Unmarshal(gotBody, &payload))
	assert.Equal(t, map[string]any{"a": float64(1)}, payload)
	assert.Equal(t, "application/json", gotContentType)
	assert.Equal(t, "abc", gotToken)

	m, _ := types.AsData(out)
	status, _ := m.GetInt("status")
	assert.Equal(t, http.StatusCreated, status)
}

func TestHTTPExecutorNonJSONFallsBackToRawText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("plain text"))
	}))
	defer srv.Close()

	ec := newExecContext()
	node := &types.Node{ID: "fetch", Kind: types.KindAction, Service: ServiceHTTP,
		Config: types.Data{"url": srv.URL}}

	out, err := newHTTPTestExecutor(srv.Client()).execute(context.Background(), node, ec, nil)
	require.Nil(t, err)

	m, _ := types.AsData(out)
	data, _ := m.Get("data")
	assert.Equal(t, "plain text", data)
}

func TestHTTPExecutorMissingURLFallsBackToDemo(t *testing.T) {
	doer := &fakeDoer{status: 200, body: `{"id":1}`}
	ec := newExecContext()
	// method config is ignored when the url is missing; the demo call is
	// always a GET
	node := &types.Node{ID: "fetch", Kind: types.KindAction, Service: ServiceHTTP,
		Config: types.Data{"method": "POST"}}

	out, err := newHTTPTestExecutor(doer).execute(context.Background(), node, ec, nil)
	require.Nil(t, err)

	require.NotNil(t, doer.lastReq)
	assert.Equal(t, defaultDemoURL, doer.lastReq.URL.String())
	assert.Equal(t, http.MethodGet, doer.lastReq.Method)

	m, _ := types.AsData(out)
	status, _ := m.GetInt("status")
	assert.Equal(t, 200, status)
}

func TestHTTPExecutorRequestError(t *testing.T) {
	doer := &fakeDoer{err: assert.AnError}
	ec := newExecContext()
	node := &types.Node{ID: "fetch", Kind: types.KindAction, Service: ServiceHTTP,
		Config: types.Data{"url": "http://unreachable.invalid"}}

	out, err := newHTTPTestExecutor(doer).execute(context.Background(), node, ec, nil)
	require.NotNil(t, err)
	assert.Nil(t, out)
	nodeID, ok := types.IsExecutor(err)
	assert.True(t, ok)
	assert.Equal(t, "fetch", nodeID)

	require.Len(t, ec.log, 2)
	assert.Equal(t, types.EventError, ec.log[1].Event)
}

func TestHTTPExecutorNilClient(t *testing.T) {
	ec := newExecContext()
	node := &types.Node{ID: "fetch", Kind: types.KindAction, Service: ServiceHTTP}

	_, err := newHTTPTestExecutor(nil).execute(context.Background(), node, ec, nil)
	require.NotNil(t, err)
	assert.Contains(t, err.Error(), "no http capability")
}

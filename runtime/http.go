package runtime

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/juju/errors"
	"github.com/spf13/cast"

	"github.com/akulearn/sandbox/types"
)

// defaultDemoURL is fetched when an http node carries no url config. An
// unconfigured node is a documented fallback, not an error: learners drop
// the node on the canvas first and wire it up later.
const defaultDemoURL = "https://jsonplaceholder.typicode.com/todos/1"

// httpExecutor runs an http action node through the injected HTTP capability.
type httpExecutor struct {
	client  types.HTTPDoer
	timeout time.Duration
}

func (e *httpExecutor) execute(ctx context.Context, node *types.Node, ec *execContext, input any) (any, error) {
	if e.client == nil {
		msg := "no http capability configured"
		ec.logError(node.ID, msg)
		return nil, types.NewExecutorErrorf(node.ID, "%s", msg)
	}

	cfg := node.Config

	url, hasURL := cfg.GetString("url")
	method := http.MethodGet
	if !hasURL || url == "" {
		url = defaultDemoURL
	} else if m, exists := cfg.GetString("method"); exists && m != "" {
		method = strings.ToUpper(m)
	}

	var body io.Reader
	if method != http.MethodGet && input != nil {
		b, err := json.Marshal(input)
		if err != nil {
			ec.logError(node.ID, err.Error())
			return nil, types.NewExecutorError(node.ID, errors.Trace(err))
		}
		body = bytes.NewReader(b)
	}

	ec.logStart(node.ID, fmt.Sprintf("%s %s", method, url))

	callCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(callCtx, method, url, body)
	if err != nil {
		ec.logError(node.ID, err.Error())
		return nil, types.NewExecutorError(node.ID, errors.Trace(err))
	}
	req.Header.Set("Content-Type", "application/json")
	if headers, exists := cfg.GetData("headers"); exists {
		for k, v := range headers {
			req.Header.Set(k, cast.ToString(v))
		}
	}

	resp, err := e.client.Do(req)
	if err != nil {
		ec.logError(node.ID, err.Error())
		return nil, types.NewExecutorError(node.ID, errors.Trace(err))
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		ec.logError(node.ID, err.Error())
		return nil, types.NewExecutorError(node.ID, errors.Trace(err))
	}

	// parse as JSON, fall back to the raw text when the upstream sends
	// anything else
	var data any
	if err := json.Unmarshal(raw, &data); err != nil {
		data = string(raw)
	}

	ec.logSuccess(node.ID, fmt.Sprintf("received status %d", resp.StatusCode), types.Data{"status": resp.StatusCode})
	return types.Data{"status": resp.StatusCode, "data": data}, nil
}

// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

// Package inisocket serves an INI document for remote reading and editing
// over a WebSocket. Each text message from the client is a JSON Request and
// is answered by a JSON Response.
package inisocket

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/yourbase/inisplice/ini"
	"github.com/yourbase/inisplice/inifile"
	"zombiezen.com/go/log"
)

// Operations understood by Handler.
const (
	OpGet         = "get"         // ReadValue(Section, Key, Defaults...)
	OpGetAll      = "getall"      // ReadValuesByKey(Section, Key, Defaults...)
	OpKey         = "key"         // ReadKey(Section, Value)
	OpKeysByValue = "keysbyvalue" // ReadKeysByValue(Section, Value)
	OpKeys        = "keys"        // ReadKeys(Section)
	OpValues      = "values"      // ReadValues(Section, Defaults...)
	OpDump        = "dump"        // ReadKeysValues(Section, Defaults...)
	OpDumpAll     = "dumpall"     // ReadAllKeysValues(Defaults...)
	OpSections    = "sections"    // ReadSections()
	OpSet         = "set"         // WriteKeyValue(Section, Key, Value)
	OpSetMany     = "setmany"     // WriteKeysValues(Section, Pairs...)
	OpText        = "text"        // Text()
)

// ErrUnknownOp is reported for requests with an unrecognized Op.
var ErrUnknownOp = errors.New("unknown operation")

// A Request is a single operation on the served document.
type Request struct {
	Op       string         `json:"op"`
	Section  string         `json:"section,omitempty"`
	Key      string         `json:"key,omitempty"`
	Value    string         `json:"value,omitempty"`
	Defaults []string       `json:"defaults,omitempty"`
	Pairs    []ini.KeyValue `json:"pairs,omitempty"`
}

// A Response is the result of a Request. Error is non-empty if the request
// failed.
type Response struct {
	Value  string         `json:"value,omitempty"`
	Values []string       `json:"values,omitempty"`
	Pairs  []ini.KeyValue `json:"pairs,omitempty"`
	Text   string         `json:"text,omitempty"`
	Error  string         `json:"error,omitempty"`
}

// Handler serves a document over WebSocket connections. Requests from all
// connections are applied one at a time. A Handler must not be copied after
// first use.
type Handler struct {
	Doc *inifile.Document
	// AutoSave saves the document to its path after every write.
	AutoSave bool
	Upgrader websocket.Upgrader

	mu sync.Mutex
}

// ServeHTTP upgrades the request to a WebSocket and answers requests until
// the client disconnects.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	peer := peerName(r)
	conn, err := h.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warnf(ctx, "Upgrade from %s: %v", peer, err)
		return
	}
	defer conn.Close()
	log.Debugf(ctx, "Session started for %s", peer)
	for {
		var req Request
		if err := readJSON(ctx, conn, &req); err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Debugf(ctx, "Session ended for %s", peer)
			} else {
				log.Warnf(ctx, "Session for %s: %v", peer, err)
			}
			return
		}
		resp := h.Do(ctx, req)
		if err := writeJSON(ctx, conn, resp); err != nil {
			log.Warnf(ctx, "Session for %s: %v", peer, err)
			return
		}
	}
}

// peerName identifies the client in logs. Proxies such as Heroku's router
// tag each request with an X-Request-ID header.
func peerName(r *http.Request) string {
	if id := r.Header.Get("X-Request-ID"); id != "" {
		return r.RemoteAddr + " (request " + id + ")"
	}
	return r.RemoteAddr
}

// Do applies a single request to the document.
func (h *Handler) Do(ctx context.Context, req Request) *Response {
	h.mu.Lock()
	defer h.mu.Unlock()
	resp, err := h.do(ctx, req)
	if err != nil {
		log.Infof(ctx, "Request %q failed: %v", req.Op, err)
		return &Response{Error: err.Error()}
	}
	return resp
}

func (h *Handler) do(ctx context.Context, req Request) (*Response, error) {
	d := h.Doc
	switch req.Op {
	case OpGet:
		return &Response{Value: d.ReadValue(req.Section, req.Key, req.Defaults...)}, nil
	case OpGetAll:
		return &Response{Values: d.ReadValuesByKey(req.Section, req.Key, req.Defaults...)}, nil
	case OpKey:
		return &Response{Value: d.ReadKey(req.Section, req.Value)}, nil
	case OpKeysByValue:
		return &Response{Values: d.ReadKeysByValue(req.Section, req.Value)}, nil
	case OpKeys:
		return &Response{Values: d.ReadKeys(req.Section)}, nil
	case OpValues:
		return &Response{Values: d.ReadValues(req.Section, req.Defaults...)}, nil
	case OpDump:
		return &Response{Pairs: d.ReadKeysValues(req.Section, req.Defaults...)}, nil
	case OpDumpAll:
		return &Response{Pairs: d.ReadAllKeysValues(req.Defaults...)}, nil
	case OpSections:
		return &Response{Values: d.ReadSections()}, nil
	case OpText:
		return &Response{Text: d.Text()}, nil
	case OpSet:
		if req.Key == "" {
			return nil, errors.New("set: empty key")
		}
		d.WriteKeyValue(req.Section, req.Key, req.Value)
		return h.written(ctx)
	case OpSetMany:
		for i, kv := range req.Pairs {
			if kv.Key == "" {
				return nil, fmt.Errorf("setmany: pair %d: empty key", i)
			}
		}
		d.WriteKeysValues(req.Section, req.Pairs...)
		return h.written(ctx)
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownOp, req.Op)
	}
}

func (h *Handler) written(ctx context.Context) (*Response, error) {
	if h.AutoSave && h.Doc.Path != "" {
		if err := h.Doc.Save(ctx); err != nil {
			return nil, err
		}
	}
	return &Response{Text: h.Doc.Text()}, nil
}

// A Client sends requests to a Handler.
type Client struct {
	conn *websocket.Conn
}

// Dial connects to a Handler at the given ws:// or wss:// URL.
func Dial(ctx context.Context, url string) (*Client, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", url, err)
	}
	return &Client{conn: conn}, nil
}

// Do sends a request and waits for its response. If the response carries an
// error, Do returns it along with the response.
func (c *Client) Do(ctx context.Context, req Request) (*Response, error) {
	if err := writeJSON(ctx, c.conn, req); err != nil {
		return nil, fmt.Errorf("%s request: %w", req.Op, err)
	}
	resp := new(Response)
	if err := readJSON(ctx, c.conn, resp); err != nil {
		return nil, fmt.Errorf("%s request: %w", req.Op, err)
	}
	if resp.Error != "" {
		return resp, fmt.Errorf("%s request: %s", req.Op, resp.Error)
	}
	return resp, nil
}

// Close ends the session.
func (c *Client) Close() error {
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	c.conn.WriteMessage(websocket.CloseMessage, msg) // Best effort.
	return c.conn.Close()
}

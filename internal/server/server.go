package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	eventbus "github.com/igorcanadi/graphql-js/internal/eventbus"
	events "github.com/igorcanadi/graphql-js/internal/events"
	language "github.com/igorcanadi/graphql-js/internal/language"
	lint "github.com/igorcanadi/graphql-js/internal/lint"
	reqid "github.com/igorcanadi/graphql-js/internal/reqid"
	schema "github.com/igorcanadi/graphql-js/internal/schema"
)

// Handler is an http.Handler that checks query documents against a fixed
// schema. It parses requests, runs the lint pass, and returns the problems.
type Handler struct {
	schema *schema.Schema
	opt    Options
}

type Options struct {
	// Timeout sets a default timeout if the incoming request context has none.
	// 0 means no default timeout.
	Timeout time.Duration

	// Pretty enables indented JSON responses (useful for dev).
	Pretty bool

	// MaxBodyBytes limits the size of the request body. 0 means unlimited.
	MaxBodyBytes int64

	// CORS configuration. If AllowedOrigins is empty, CORS is disabled.
	CORS CORSOptions
}

type Option func(*Options)

func WithTimeout(d time.Duration) Option { return func(o *Options) { o.Timeout = d } }
func WithPretty() Option                 { return func(o *Options) { o.Pretty = true } }
func WithMaxBodyBytes(n int64) Option    { return func(o *Options) { o.MaxBodyBytes = n } }
func WithCORS(origins ...string) Option {
	return func(o *Options) { o.CORS.AllowedOrigins = origins }
}

// CORSOptions holds simple CORS settings.
type CORSOptions struct {
	AllowedOrigins []string
}

// New creates a lint HTTP handler bound to the given schema.
func New(s *schema.Schema, opts ...Option) (*Handler, error) {
	if s == nil {
		return nil, errors.New("server: schema is required")
	}
	op := Options{Timeout: 10 * time.Second}
	for _, f := range opts {
		f(&op)
	}
	return &Handler{schema: s, opt: op}, nil
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if _, ok := ctx.Deadline(); !ok && h.opt.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.opt.Timeout)
		defer cancel()
	}

	ctx, _ = reqid.NewContext(ctx)
	status := http.StatusOK
	start := time.Now()
	eventbus.Publish(ctx, events.HTTPStart{Request: r})
	defer func() {
		eventbus.Publish(ctx, events.HTTPFinish{Request: r, Status: status, Duration: time.Since(start)})
	}()

	if r.Method == http.MethodOptions {
		if len(h.opt.CORS.AllowedOrigins) > 0 {
			setCORSHeaders(w, r, h.opt.CORS)
		}
		status = http.StatusNoContent
		w.WriteHeader(status)
		return
	}

	if r.Method != http.MethodPost && r.Method != http.MethodGet {
		status = http.StatusMethodNotAllowed
		writeJSON(w, status, errorResult("method not allowed"), h.opt.Pretty)
		return
	}

	req, batch, reqErr := parseRequest(r, h.opt.MaxBodyBytes)
	if reqErr != "" {
		status = http.StatusBadRequest
		if reqErr == errBodyTooLargeMessage {
			status = http.StatusRequestEntityTooLarge
		}
		writeJSON(w, status, errorResult(reqErr), h.opt.Pretty)
		return
	}

	if len(h.opt.CORS.AllowedOrigins) > 0 {
		setCORSHeaders(w, r, h.opt.CORS)
	}

	if batch != nil {
		out := make([]checkResult, len(batch))
		for i := range batch {
			out[i] = h.checkOne(ctx, batch[i])
		}
		writeJSON(w, status, out, h.opt.Pretty)
		return
	}

	writeJSON(w, status, h.checkOne(ctx, req), h.opt.Pretty)
}

func (h *Handler) checkOne(ctx context.Context, req checkRequest) checkResult {
	doc, err := language.ParseQuery(req.Query)
	if err != nil {
		return checkResult{Problems: problemsFromParseError(err)}
	}

	start := time.Now()
	eventbus.Publish(ctx, events.LintStart{Query: req.Query})
	problems := lint.Check(h.schema, doc)
	eventbus.Publish(ctx, events.LintFinish{
		Query:    req.Query,
		Problems: len(problems),
		Duration: time.Since(start),
	})
	if problems == nil {
		problems = []lint.Problem{}
	}
	return checkResult{Problems: problems}
}

func problemsFromParseError(err error) []lint.Problem {
	var gerr *language.Error
	if errors.As(err, &gerr) {
		p := lint.Problem{Message: gerr.Message}
		if len(gerr.Locations) > 0 {
			p.Line = gerr.Locations[0].Line
			p.Column = gerr.Locations[0].Column
		}
		return []lint.Problem{p}
	}
	return []lint.Problem{{Message: err.Error()}}
}

// ------------------ Request parsing ------------------

type checkRequest struct {
	Query string `json:"query"`
}

type checkResult struct {
	Problems []lint.Problem `json:"problems"`
}

func parseRequest(r *http.Request, maxBody int64) (checkRequest, []checkRequest, string) {
	if r.Method == http.MethodGet {
		q := r.URL.Query().Get("query")
		if q == "" {
			return checkRequest{}, nil, "missing 'query'"
		}
		return checkRequest{Query: q}, nil, ""
	}

	// POST
	ct := r.Header.Get("Content-Type")
	if ct != "" && ct != "application/json" && !strings.HasPrefix(ct, "application/json;") {
		return checkRequest{}, nil, "unsupported Content-Type"
	}
	reader := io.Reader(r.Body)
	if maxBody > 0 {
		reader = io.LimitReader(r.Body, maxBody+1)
	}
	body, err := io.ReadAll(reader)
	if err != nil {
		return checkRequest{}, nil, "failed to read body"
	}
	defer r.Body.Close()
	if maxBody > 0 && int64(len(body)) > maxBody {
		return checkRequest{}, nil, errBodyTooLargeMessage
	}

	// Try array (batch)
	if len(body) > 0 && body[0] == '[' {
		var arr []checkRequest
		if err := json.Unmarshal(body, &arr); err != nil {
			return checkRequest{}, nil, "invalid JSON"
		}
		if len(arr) == 0 {
			return checkRequest{}, nil, "empty batch"
		}
		return checkRequest{}, arr, ""
	}
	// Single
	var req checkRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return checkRequest{}, nil, "invalid JSON"
	}
	if req.Query == "" {
		return checkRequest{}, nil, "missing 'query'"
	}
	return req, nil, ""
}

// ------------------ Response formatting ------------------

func errorResult(message string) checkResult {
	return checkResult{Problems: []lint.Problem{{Message: message}}}
}

func writeJSON(w http.ResponseWriter, status int, v any, pretty bool) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	if pretty {
		enc.SetIndent("", "  ")
	}
	_ = enc.Encode(v)
}

const errBodyTooLargeMessage = "body too large"

func setCORSHeaders(w http.ResponseWriter, r *http.Request, opts CORSOptions) {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return
	}
	allowed := false
	wildcard := false
	for _, o := range opts.AllowedOrigins {
		if o == "*" {
			allowed = true
			wildcard = true
		}
		if o == origin {
			allowed = true
		}
	}
	if !allowed {
		return
	}
	if wildcard {
		w.Header().Set("Access-Control-Allow-Origin", "*")
	} else {
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Add("Vary", "Origin")
	}
	if r.Method == http.MethodOptions {
		if hdr := r.Header.Get("Access-Control-Request-Headers"); hdr != "" {
			w.Header().Set("Access-Control-Allow-Headers", hdr)
		}
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
	}
}

package server

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/matzehuels/bracketmaker/pkg/buildinfo"
	bmerrors "github.com/matzehuels/bracketmaker/pkg/errors"
	"github.com/matzehuels/bracketmaker/pkg/observability"
	"github.com/matzehuels/bracketmaker/pkg/pipeline"
)

type healthResponse struct {
	Status  string         `json:"status"`
	Version string         `json:"version"`
	Build   buildinfo.Info `json:"build"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:  "ok",
		Version: buildinfo.Version,
		Build:   buildinfo.Get(),
	})
}

func (s *Server) handleBracket(w http.ResponseWriter, r *http.Request) {
	capacity, err := bmerrors.ParseCapacity(chi.URLParam(r, "capacity"))
	if err != nil {
		writeError(w, s.logger, err)
		return
	}

	q := r.URL.Query()
	format := strings.ToLower(q.Get("format"))
	if format == "" {
		format = pipeline.FormatJSON
	}
	if err := pipeline.ValidateFormat(format); err != nil {
		writeError(w, s.logger, err)
		return
	}
	lenient, err := queryBool(q.Get("lenient"), "lenient", s.opts.Lenient)
	if err != nil {
		writeError(w, s.logger, err)
		return
	}
	detailed, err := queryBool(q.Get("detailed"), "detailed", false)
	if err != nil {
		writeError(w, s.logger, err)
		return
	}

	opts := pipeline.Options{
		Capacity: capacity,
		Lenient:  lenient,
		Layout:   s.opts.Layout,
		Date:     s.opts.Date,
		Formats:  []string{format},
		Detailed: detailed,
		Logger:   s.logger,
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		writeError(w, s.logger, err)
		return
	}

	etag := s.etag(&opts, format)
	if etagMatches(r.Header.Get("If-None-Match"), etag) {
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}

	res, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		writeError(w, s.logger, err)
		return
	}

	cacheState := "miss"
	if res.CacheInfo.GenerateHit && res.CacheInfo.RenderHit {
		cacheState = "hit"
	}
	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", pipeline.ContentTypes[format])
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.Header().Set("X-Cache", cacheState)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.Artifacts[format])
}

func (s *Server) handleTeams(w http.ResponseWriter, r *http.Request) {
	cols := s.opts.Columns
	q := r.URL.Query()
	for _, c := range []struct {
		name string
		dst  *int
	}{
		{"id", &cols.ID},
		{"name", &cols.Name},
		{"team", &cols.Team},
		{"acronym", &cols.Acronym},
	} {
		v := q.Get(c.name)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, s.logger, bmerrors.New(bmerrors.ErrCodeInvalidRoster, "column %s: %q is not a number", c.name, v))
			return
		}
		*c.dst = n
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.opts.MaxUploadBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, s.logger, bmerrors.New(bmerrors.ErrCodeInvalidRoster, "roster exceeds %d bytes", tooLarge.Limit))
			return
		}
		writeError(w, s.logger, bmerrors.Wrap(bmerrors.ErrCodeInvalidRoster, err, "read body"))
		return
	}

	res, err := s.runner.Teams(r.Context(), body, cols)
	if err != nil {
		writeError(w, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// etag names the response for opts and format. It is a version 5 UUID of
// the bracket cache key, which covers every input that changes the output.
func (s *Server) etag(opts *pipeline.Options, format string) string {
	key := s.runner.Keyer.BracketKey(opts.BracketKeyOpts()) + "/" + format
	if opts.Detailed {
		key += "/detailed"
	}
	return `"` + uuid.NewSHA1(uuid.NameSpaceURL, []byte(key)).String() + `"`
}

func etagMatches(header, etag string) bool {
	if header == "" {
		return false
	}
	for _, candidate := range strings.Split(header, ",") {
		candidate = strings.TrimPrefix(strings.TrimSpace(candidate), "W/")
		if candidate == "*" || candidate == etag {
			return true
		}
	}
	return false
}

func queryBool(v, name string, def bool) (bool, error) {
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, bmerrors.New(bmerrors.ErrCodeInvalidFormat, "%s: %q is not a boolean", name, v)
	}
	return b, nil
}

// unmatchedRoute labels requests that no route handles.
const unmatchedRoute = "unmatched"

// routePattern resolves the chi pattern r will be served by, such as
// /v1/brackets/{capacity}.
func (s *Server) routePattern(r *http.Request) string {
	rctx := chi.NewRouteContext()
	if !s.router.Match(rctx, r.Method, r.URL.Path) {
		return unmatchedRoute
	}
	if pattern := rctx.RoutePattern(); pattern != "" {
		return pattern
	}
	return unmatchedRoute
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		route := s.routePattern(r)
		hooks := observability.Server()
		hooks.OnRequest(r.Context(), r.Method, route)

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		elapsed := time.Since(start)
		hooks.OnResponse(r.Context(), r.Method, route, status, elapsed)
		s.logger.Info("request",
			"method", r.Method,
			"route", route,
			"path", r.URL.Path,
			"status", status,
			"bytes", ww.BytesWritten(),
			"duration", elapsed,
			"request_id", middleware.GetReqID(r.Context()))
	})
}

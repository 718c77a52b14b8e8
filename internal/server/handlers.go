package server

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/matzehuels/jugglesearch/pkg/buildinfo"
	"github.com/matzehuels/jugglesearch/pkg/errors"
	"github.com/matzehuels/jugglesearch/pkg/observability"
	"github.com/matzehuels/jugglesearch/pkg/pipeline"
	"github.com/matzehuels/jugglesearch/pkg/sink"
	"github.com/matzehuels/jugglesearch/pkg/siteswap/gen"
	"github.com/matzehuels/jugglesearch/pkg/siteswap/trans"
	"github.com/matzehuels/jugglesearch/pkg/stategraph"
)

// searchResponse is the JSON body of a finished run.
type searchResponse struct {
	ID       string        `json:"id"`
	Patterns []sink.Record `json:"patterns"`
	Count    int           `json:"count"`
	Reason   string        `json:"reason"`
	Status   string        `json:"status,omitempty"`
	Cached   bool          `json:"cached"`
}

type errorResponse struct {
	Error string      `json:"error"`
	Code  errors.Code `json:"code,omitempty"`
}

// writeError answers user errors with 400 and anything else with 500.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.IsUserError(err) {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: errors.UserMessage(err), Code: errors.GetCode(err)})
		return
	}
	observability.HTTP().OnError(r.Context(), r.Method, r.URL.Path, err)
	s.logger.Error("request failed", "path", r.URL.Path, "err", err)
	writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
}

// vector splits the q parameter into a driver argument vector.
func vector(r *http.Request) ([]string, error) {
	q := strings.Fields(r.URL.Query().Get("q"))
	if len(q) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "missing q parameter")
	}
	return q, nil
}

func genConfig(r *http.Request) (gen.Config, error) {
	args, err := vector(r)
	if err != nil {
		return gen.Config{}, err
	}
	cfg, err := gen.ParseArgs(args)
	if err != nil {
		return gen.Config{}, err
	}
	return cfg.WithDefaultLimits(), nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.Write([]byte("ok\n"))
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, buildinfo.Get())
}

func (s *Server) handleGen(w http.ResponseWriter, r *http.Request) {
	cfg, err := genConfig(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	mem := &sink.Memory{}
	res, err := s.runner.Generate(r.Context(), cfg, mem)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newSearchResponse(res, mem))
}

func (s *Server) handleTrans(w http.ResponseWriter, r *http.Request) {
	args, err := vector(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	cfg, err := trans.ParseArgs(args)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	mem := &sink.Memory{}
	res, err := s.runner.Transitions(r.Context(), cfg.WithDefaultLimits(), mem)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newSearchResponse(res, mem))
}

func newSearchResponse(res pipeline.Result, mem *sink.Memory) searchResponse {
	patterns := mem.Records()
	if patterns == nil {
		patterns = []sink.Record{}
	}
	return searchResponse{
		ID:       sink.NewRunID(),
		Patterns: patterns,
		Count:    res.Outcome.Count,
		Reason:   res.Outcome.Reason.String(),
		Status:   mem.Status(),
		Cached:   res.Hit,
	}
}

var contentTypes = map[string]string{
	stategraph.FormatDOT: "text/vnd.graphviz",
	stategraph.FormatSVG: "image/svg+xml",
	stategraph.FormatPNG: "image/png",
}

func (s *Server) handleGraph(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	pattern := q.Get("pattern")
	format := q.Get("format")
	if format == "" {
		format = stategraph.FormatSVG
	}
	full, _ := strconv.ParseBool(q.Get("full"))

	res, err := s.runner.Graph(r.Context(), pattern, format, full)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", contentTypes[format])
	w.Write(res.Data)
}

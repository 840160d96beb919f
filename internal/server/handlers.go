package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/primetree/pkg/buildinfo"
	"github.com/matzehuels/primetree/pkg/errors"
	"github.com/matzehuels/primetree/pkg/hit"
	"github.com/matzehuels/primetree/pkg/observability"
	"github.com/matzehuels/primetree/pkg/pipeline"
	"github.com/matzehuels/primetree/pkg/tree"
	"github.com/matzehuels/primetree/pkg/view"
)

var contentTypes = map[string]string{
	pipeline.FormatSVG:    "image/svg+xml",
	pipeline.FormatPNG:    "image/png",
	pipeline.FormatJSON:   "application/json",
	pipeline.FormatDOT:    "text/vnd.graphviz; charset=utf-8",
	pipeline.FormatDOTSVG: "image/svg+xml",
	pipeline.FormatText:   "text/plain; charset=utf-8",
}

type healthResponse struct {
	Status string         `json:"status"`
	Build  buildinfo.Info `json:"build"`
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

type treeResponse struct {
	Tree   *tree.Tree     `json:"tree"`
	View   view.Transform `json:"view"`
	Width  float64        `json:"width"`
	Height float64        `json:"height"`
	Primes int            `json:"primes"`
	Cached bool           `json:"cached"`
}

type hitResponse struct {
	Kind    string  `json:"kind"`
	Node    *int    `json:"node,omitempty"` // node value
	Edge    *[2]int `json:"edge,omitempty"` // endpoint values
	Tooltip string  `json:"tooltip,omitempty"`
	Prime   bool    `json:"prime"`
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Build: buildinfo.Current()})
}

func (s *Server) tree(w http.ResponseWriter, r *http.Request) {
	opts, ok := s.options(w, r)
	if !ok {
		return
	}
	t, cached, err := s.runner.TreeWithCacheInfo(r.Context(), opts, nil)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	sc := pipeline.SceneFor(t, opts)
	primes := 0
	for i := range t.Nodes {
		if t.Nodes[i].Prime {
			primes++
		}
	}
	writeJSON(w, http.StatusOK, treeResponse{
		Tree:   t,
		View:   sc.View,
		Width:  opts.Width,
		Height: opts.Height,
		Primes: primes,
		Cached: cached,
	})
}

func (s *Server) render(w http.ResponseWriter, r *http.Request) {
	format := chi.URLParam(r, "format")
	if err := pipeline.ValidateFormat(format); err != nil {
		s.fail(w, r, err)
		return
	}
	opts, ok := s.options(w, r)
	if !ok {
		return
	}
	opts.Formats = []string{format}

	res, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", contentTypes[format])
	w.Header().Set("X-Cache", cacheStatus(res.CacheInfo.RenderHit))
	w.Header().Set("X-Node-Count", strconv.Itoa(res.Stats.NodeCount))
	w.WriteHeader(http.StatusOK)
	w.Write(res.Artifacts[format])
}

func (s *Server) hit(w http.ResponseWriter, r *http.Request) {
	x, y, err := parsePoint(r.URL.Query())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	opts, ok := s.options(w, r)
	if !ok {
		return
	}
	t, err := s.runner.Tree(r.Context(), opts)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	sc := pipeline.SceneFor(t, opts)
	res := hit.Test(t, sc.View, x, y, hit.Options{NodeRadius: sc.Radius()})

	resp := hitResponse{Kind: "none", Tooltip: res.Tooltip(t), Prime: res.Prime(t)}
	switch res.Kind {
	case hit.NodeHit:
		v := t.Node(res.Node).Value
		resp.Kind, resp.Node = "node", &v
	case hit.EdgeHit:
		e := t.Edges[res.Edge]
		pair := [2]int{t.Node(e.From).Value, t.Node(e.To).Value}
		resp.Kind, resp.Edge = "edge", &pair
	}
	writeJSON(w, http.StatusOK, resp)
}

// options parses and validates the query, answering the request itself on
// failure.
func (s *Server) options(w http.ResponseWriter, r *http.Request) (pipeline.Options, bool) {
	opts, err := ParseOptions(r.URL.Query(), s.defaults)
	if err == nil {
		err = opts.ValidateAndSetDefaults()
	}
	if err != nil {
		s.fail(w, r, err)
		return pipeline.Options{}, false
	}
	return opts, true
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	if errors.IsUserError(err) {
		status = http.StatusBadRequest
	} else {
		observability.HTTP().OnError(r.Context(), r.Method, r.URL.Path, err)
		s.logger.Error("request failed", "path", r.URL.Path, "error", err,
			"request_id", RequestIDFromContext(r.Context()))
	}
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	writeJSON(w, status, errorResponse{Error: errors.UserMessage(err), Code: string(code)})
}

func cacheStatus(hit bool) string {
	if hit {
		return "HIT"
	}
	return "MISS"
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/lodviz/pkg/core/downsample"
	"github.com/matzehuels/lodviz/pkg/core/stats"
	"github.com/matzehuels/lodviz/pkg/core/table"
	"github.com/matzehuels/lodviz/pkg/errors"
	"github.com/matzehuels/lodviz/pkg/httputil"
	lodio "github.com/matzehuels/lodviz/pkg/io"
	"github.com/matzehuels/lodviz/pkg/pipeline"
	"github.com/matzehuels/lodviz/pkg/storage"
)

// MaxListLimit caps the limit query parameter of GET /v1/charts.
const MaxListLimit = 500

// =============================================================================
// Request and response bodies
// =============================================================================

type chartRequest struct {
	Table   *table.DataTable `json:"table"`
	Options pipeline.Options `json:"options"`
}

type chartResponse struct {
	ID     string `json:"id"`
	Cached bool   `json:"cached"`
	*pipeline.Result
}

type chartList struct {
	Charts []*storage.Chart `json:"charts"`
}

type downsampleRequest struct {
	Algorithm downsample.Algorithm `json:"algorithm"`
	Threshold int                  `json:"threshold"`
	Points    lodio.Points         `json:"points"`
}

type downsampleResponse struct {
	Algorithm downsample.Algorithm `json:"algorithm"`
	Input     int                  `json:"input"`
	Output    int                  `json:"output"`
	Cached    bool                 `json:"cached"`
	Points    lodio.Points         `json:"points"`
}

type statsRequest struct {
	Values []float64  `json:"values"`
	Rule   stats.Rule `json:"rule"`
}

type statsResponse struct {
	Cached bool `json:"cached"`
	*pipeline.StatsResult
}

// =============================================================================
// Handlers
// =============================================================================

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	s.respond(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) createChart(w http.ResponseWriter, r *http.Request) {
	var req chartRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	if req.Table == nil {
		s.fail(w, r, errors.New(errors.ErrCodeInvalidTable, "table is required"))
		return
	}

	req.Options.Logger = s.logger
	res, err := s.runner.Execute(r.Context(), req.Table, req.Options)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	chart, err := storage.NewChart(res.Title, string(res.Mark), res.CacheInfo.Key, res)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if err := s.store.Put(r.Context(), chart); err != nil {
		s.fail(w, r, err)
		return
	}
	s.logger.Debug("stored chart", "id", chart.ID, "mark", chart.Mark, "cached", res.CacheInfo.Hit)

	w.Header().Set("Location", "/v1/charts/"+chart.ID)
	s.respond(w, r, http.StatusCreated, chartResponse{ID: chart.ID, Cached: res.CacheInfo.Hit, Result: res})
}

func (s *Server) listCharts(w http.ResponseWriter, r *http.Request) {
	limit := storage.DefaultListLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 || n > MaxListLimit {
			s.fail(w, r, errors.New(errors.ErrCodeInvalidInput, "limit must be between 1 and %d, got %q", MaxListLimit, v))
			return
		}
		limit = n
	}
	charts, err := s.store.List(r.Context(), limit)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.respond(w, r, http.StatusOK, chartList{Charts: charts})
}

func (s *Server) getChart(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := errors.ValidateChartID(id); err != nil {
		s.fail(w, r, err)
		return
	}
	chart, err := s.store.Get(r.Context(), id)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.respond(w, r, http.StatusOK, chart)
}

func (s *Server) downsample(w http.ResponseWriter, r *http.Request) {
	var req downsampleRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	if req.Algorithm == "" {
		req.Algorithm = downsample.AlgoLTTB
	}

	pts := req.Points.DataPoints()
	out, hit, err := s.runner.Downsample(r.Context(), pts, pipeline.DownsampleOptions{
		Algorithm: req.Algorithm,
		Threshold: req.Threshold,
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.respond(w, r, http.StatusOK, downsampleResponse{
		Algorithm: req.Algorithm,
		Input:     len(pts),
		Output:    len(out),
		Cached:    hit,
		Points:    lodio.NewPoints(out),
	})
}

func (s *Server) stats(w http.ResponseWriter, r *http.Request) {
	var req statsRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	if req.Values == nil {
		s.fail(w, r, errors.New(errors.ErrCodeInvalidInput, "values are required"))
		return
	}
	res, hit, err := s.runner.Stats(r.Context(), req.Values, req.Rule)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.respond(w, r, http.StatusOK, statsResponse{Cached: hit, StatsResult: res})
}

package server

import (
	"encoding/json"
	"io"
	"mime"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/mekko/pkg/buildinfo"
	"github.com/matzehuels/mekko/pkg/dataset"
	"github.com/matzehuels/mekko/pkg/errors"
	mio "github.com/matzehuels/mekko/pkg/io"
	"github.com/matzehuels/mekko/pkg/pipeline"
	"github.com/matzehuels/mekko/pkg/storage"
)

type errorResponse struct {
	Code    errors.Code `json:"code,omitempty"`
	Message string      `json:"message"`
}

type layoutResponse struct {
	DatasetHash string `json:"dataset_hash"`
	Cached      bool   `json:"cached"`
	Layout      any    `json:"layout"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"version": buildinfo.Get(),
	})
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	d, err := readDataset(w, r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	opts := s.requestOptions(r, dataset.FormatJSON)
	l, hit, err := s.runner.LayoutWithCacheInfo(r.Context(), d, opts)
	if err != nil {
		s.writeError(w, err)
		return
	}
	hash, _ := d.Hash()
	writeJSON(w, http.StatusOK, layoutResponse{DatasetHash: hash, Cached: hit, Layout: l})
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	d, err := readDataset(w, r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.render(w, r, d, "")
}

func (s *Server) handleCreateChart(w http.ResponseWriter, r *http.Request) {
	d, err := readDataset(w, r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	style := r.URL.Query().Get("style")
	if style == "" {
		style = s.defaults.Style
	}
	if style == "" {
		style = pipeline.DefaultStyle
	}
	if err := pipeline.ValidateStyle(style); err != nil {
		s.writeError(w, err)
		return
	}
	c, err := storage.NewChart(d, style)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if err := s.store.Save(r.Context(), c); err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set("Location", "/v1/charts/"+c.ID)
	writeJSON(w, http.StatusCreated, c.Summary())
}

func (s *Server) handleListCharts(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			s.writeError(w, errors.New(errors.ErrCodeInvalidInput, "invalid limit %q", v))
			return
		}
		limit = n
	}
	list, err := s.store.List(r.Context(), limit)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if list == nil {
		list = []storage.Summary{}
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleGetChart(w http.ResponseWriter, r *http.Request) {
	c, err := s.lookup(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (s *Server) handleDeleteChart(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := errors.ValidateChartID(id); err != nil {
		s.writeError(w, err)
		return
	}
	if err := s.store.Delete(r.Context(), id); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleRenderChart(w http.ResponseWriter, r *http.Request) {
	c, err := s.lookup(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.render(w, r, c.Dataset, c.Style)
}

func (s *Server) lookup(r *http.Request) (*storage.Chart, error) {
	id := chi.URLParam(r, "id")
	if err := errors.ValidateChartID(id); err != nil {
		return nil, err
	}
	return s.store.Get(r.Context(), id)
}

// render runs the pipeline for one format and writes the artifact. style
// is used when the request does not name one.
func (s *Server) render(w http.ResponseWriter, r *http.Request, d dataset.Dataset, style string) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = pipeline.DefaultFormat
	}
	if err := pipeline.ValidateFormat(format); err != nil {
		s.writeError(w, err)
		return
	}
	opts := s.requestOptions(r, format)
	if opts.Style == "" {
		opts.Style = style
	}

	res, err := s.runner.ExecuteDataset(r.Context(), d, opts)
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", storage.ContentType(format))
	w.Header().Set("X-Mekko-Cache", strconv.FormatBool(res.CacheInfo.RenderHit))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.Artifacts[format])
}

// requestOptions builds pipeline options from query parameters on top of
// the server's render defaults.
func (s *Server) requestOptions(r *http.Request, format string) pipeline.Options {
	q := r.URL.Query()
	opts := pipeline.Options{
		Formats:          []string{format},
		Style:            q.Get("style"),
		Title:            q.Get("title"),
		Language:         q.Get("lang"),
		SortSeries:       q.Get("sort"),
		PercentStacked:   queryBool(q.Get("percent")),
		SupportsOverflow: queryBool(q.Get("overflow")),
		ColorGradient:    queryBool(q.Get("gradient")),
		NoLegend:         q.Get("legend") == "false",
		Labels:           queryBool(q.Get("labels")),
		Width:            queryFloat(q.Get("width")),
		Height:           queryFloat(q.Get("height")),
	}
	if opts.Width <= 0 {
		opts.Width = s.defaults.Width
	}
	if opts.Height <= 0 {
		opts.Height = s.defaults.Height
	}
	if opts.BorderWidth <= 0 {
		opts.BorderWidth = s.defaults.BorderWidth
	}
	if opts.Language == "" {
		opts.Language = s.defaults.Language
	}
	return opts
}

// readDataset decodes the request body by Content-Type and validates it.
func readDataset(w http.ResponseWriter, r *http.Request) (dataset.Dataset, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxBodySize))
	if err != nil {
		return dataset.Dataset{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "read body")
	}
	if len(body) == 0 {
		return dataset.Dataset{}, errors.New(errors.ErrCodeInvalidInput, "empty request body")
	}

	format := mio.FormatJSON
	if mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type")); err == nil {
		switch mt {
		case "text/csv":
			format = mio.FormatCSV
		case "text/tab-separated-values":
			format = mio.FormatTSV
		case "application/toml":
			format = mio.FormatTOML
		}
	}
	d, err := mio.Decode(body, format)
	if err != nil {
		return dataset.Dataset{}, err
	}
	if err := d.Validate(); err != nil {
		return dataset.Dataset{}, err
	}
	return d, nil
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := errors.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "err", err)
	}
	writeJSON(w, status, errorResponse{Code: errors.GetCode(err), Message: errors.UserMessage(err)})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func queryBool(s string) bool {
	b, _ := strconv.ParseBool(s)
	return b
}

func queryFloat(s string) float64 {
	f, _ := strconv.ParseFloat(s, 64)
	return f
}

package server

import (
	"net/http"
	"strconv"

	"github.com/matzehuels/talentmap/pkg/distribution"
	"github.com/matzehuels/talentmap/pkg/errors"
	"github.com/matzehuels/talentmap/pkg/pipeline"
)

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleMap renders the map in format, or in ?format when format is empty.
func (s *Server) handleMap(format string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f := format
		if f == "" {
			f = r.URL.Query().Get("format")
			if f == "" {
				f = pipeline.FormatSVG
			}
		}
		opts, err := s.mapOptions(r, f)
		if err != nil {
			s.fail(w, r, err)
			return
		}

		result, err := s.runner.Execute(r.Context(), opts)
		if err != nil {
			s.fail(w, r, err)
			return
		}

		w.Header().Set("Content-Type", pipeline.ContentTypes[f])
		w.Header().Set("X-Run-ID", result.ID)
		if result.CacheInfo.RenderHit {
			w.Header().Set("X-Cache", "hit")
		} else {
			w.Header().Set("X-Cache", "miss")
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(result.Artifacts[f])
	}
}

func (s *Server) mapOptions(r *http.Request, format string) (pipeline.Options, error) {
	q := r.URL.Query()
	opts := s.defaults.Copy()
	opts.Formats = []string{format}
	opts.Logger = s.logger.With("request_id", RequestID(r.Context()))

	if v := q.Get("dataset"); v != "" {
		opts.Dataset = v
	}
	if v := q.Get("category"); v != "" {
		opts.Category = v
	}
	if v := q.Get("title"); v != "" {
		opts.Title = v
	}
	var err error
	if opts.Width, err = floatParam(q.Get("width"), opts.Width); err != nil {
		return opts, err
	}
	if opts.Height, err = floatParam(q.Get("height"), opts.Height); err != nil {
		return opts, err
	}
	if opts.Refresh, err = boolParam(q.Get("refresh")); err != nil {
		return opts, err
	}
	return opts, opts.ValidateAndSetDefaults()
}

type listResponse struct {
	Dataset       string             `json:"dataset"`
	Category      string             `json:"category"`
	CategoryLabel string             `json:"category_label"`
	Unit          string             `json:"unit"`
	Rows          []distribution.Row `json:"rows"`
}

// handleList serves a ranked list with bar fractions scaled against the
// unfiltered dataset.
func (s *Server) handleList(dataset string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		opts := s.defaults.Copy()
		opts.Dataset = dataset
		opts.Category = r.URL.Query().Get("category")
		opts.SetDefaults()
		if err := errors.ValidateCategory(opts.Category); err != nil {
			s.fail(w, r, err)
			return
		}
		refresh, err := boolParam(r.URL.Query().Get("refresh"))
		if err != nil {
			s.fail(w, r, err)
			return
		}

		snap, err := s.runner.Fetch(r.Context(), refresh)
		if err != nil {
			s.fail(w, r, err)
			return
		}
		scale := snap.Skills
		if dataset == pipeline.DatasetLanguages {
			scale = snap.Languages
		}
		s.writeJSON(w, http.StatusOK, listResponse{
			Dataset:       dataset,
			Category:      opts.Category,
			CategoryLabel: distribution.CategoryLabel(opts.Category, s.allLabel),
			Unit:          opts.Unit(),
			Rows:          distribution.Rows(pipeline.Select(snap, opts), scale),
		})
	}
}

type categoryChoice struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	snap, err := s.runner.Fetch(r.Context(), false)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	cats := distribution.Categories(snap.Skills)
	out := make([]categoryChoice, len(cats))
	for i, c := range cats {
		out[i] = categoryChoice{ID: c, Label: distribution.CategoryLabel(c, s.allLabel)}
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"categories": out})
}

type summary struct {
	TotalUsers     int `json:"total_users"`
	VerifiedUsers  int `json:"verified_users_count"`
	TotalProjects  int `json:"total_projects"`
	TotalSkills    int `json:"total_skills"`
	TotalLanguages int `json:"total_languages"`
	Skills         int `json:"skills_listed"`
	Languages      int `json:"languages_listed"`
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	snap, err := s.runner.Fetch(r.Context(), false)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, summary{
		TotalUsers:     snap.TotalUsers,
		VerifiedUsers:  snap.VerifiedUsers,
		TotalProjects:  snap.TotalProjects,
		TotalSkills:    snap.TotalSkills,
		TotalLanguages: snap.TotalLanguages,
		Skills:         len(snap.Skills),
		Languages:      len(snap.Languages),
	})
}

func floatParam(v string, def float64) (float64, error) {
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, errors.New(errors.ErrCodeInvalidDimensions, "%q is not a number", v)
	}
	return f, nil
}

func boolParam(v string) (bool, error) {
	if v == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, errors.New(errors.ErrCodeInvalidInput, "%q is not a boolean", v)
	}
	return b, nil
}

package server

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/boardcreator/pkg/errors"
	"github.com/matzehuels/boardcreator/pkg/grid"
	"github.com/matzehuels/boardcreator/pkg/palette"
	"github.com/matzehuels/boardcreator/pkg/project"
)

type summary struct {
	ID          string              `json:"id"`
	FileName    string              `json:"fileName"`
	Board       project.BoardConfig `json:"board"`
	BoardTiles  int                 `json:"boardTiles"`
	ColorTiles  int                 `json:"colorTiles"`
	Groups      []int               `json:"groups"`
	Palette     []string            `json:"palette"`
	ShapeExport bool                `json:"shapeExport"`
}

func summarize(id string, p *project.Store) summary {
	ls := p.Layers()
	groups := grid.GroupIndexes(ls.Groups)
	if groups == nil {
		groups = []int{}
	}
	colors := p.Palette()
	if colors == nil {
		colors = []string{}
	}
	return summary{
		ID:          id,
		FileName:    p.FileName(),
		Board:       p.Board(),
		BoardTiles:  ls.Board.Len(),
		ColorTiles:  ls.Groups.Len(),
		Groups:      groups,
		Palette:     colors,
		ShapeExport: p.ShapeFileName() != "",
	}
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	id, err := s.create(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	s.withProject(w, r, func(p *project.Store) error {
		writeJSON(w, http.StatusOK, summarize(chi.URLParam(r, "id"), p))
		return nil
	})
}

func (s *Server) handleClear(w http.ResponseWriter, r *http.Request) {
	s.withProject(w, r, func(p *project.Store) error {
		if err := p.Clear(r.Context()); err != nil {
			return err
		}
		writeJSON(w, http.StatusOK, summarize(chi.URLParam(r, "id"), p))
		return nil
	})
}

func (s *Server) handleSetBoard(w http.ResponseWriter, r *http.Request) {
	var b project.BoardConfig
	if err := readJSON(w, r, &b); err != nil {
		writeError(w, err)
		return
	}
	s.withProject(w, r, func(p *project.Store) error {
		if err := p.SetBoard(r.Context(), b); err != nil {
			return err
		}
		writeJSON(w, http.StatusOK, p.Board())
		return nil
	})
}

func (s *Server) handleSetName(w http.ResponseWriter, r *http.Request) {
	var req struct {
		FileName *string `json:"fileName"`
	}
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, err)
		return
	}
	if req.FileName == nil {
		writeError(w, errors.New(errors.ErrCodeInvalidInput, "fileName is required"))
		return
	}
	s.withProject(w, r, func(p *project.Store) error {
		if err := p.SetFileName(r.Context(), *req.FileName); err != nil {
			return err
		}
		writeJSON(w, http.StatusOK, map[string]string{"fileName": p.FileName()})
		return nil
	})
}

type paintRequest struct {
	Mode  string `json:"mode"`
	X     int    `json:"x"`
	Y     int    `json:"y"`
	Index int    `json:"index"`
	Color string `json:"color"`
}

func (s *Server) handlePaint(w http.ResponseWriter, r *http.Request) {
	var req paintRequest
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, err)
		return
	}
	mode, err := grid.ParseMode(req.Mode)
	if err != nil {
		writeError(w, err)
		return
	}
	if mode == grid.ModeColour && req.Color == "" {
		req.Color = grid.DefaultColor
	}
	cell := grid.Cell{X: req.X, Y: req.Y}

	s.withProject(w, r, func(p *project.Store) error {
		var res grid.Result
		var err error
		if mode == grid.ModeBoard {
			res, err = p.PaintBoard(r.Context(), cell)
		} else {
			res, err = p.PaintGroup(r.Context(), cell, req.Index, req.Color)
		}
		if err != nil {
			return err
		}
		writeJSON(w, http.StatusOK, map[string]string{"result": res.String()})
		return nil
	})
}

func (s *Server) handleShapes(w http.ResponseWriter, r *http.Request) {
	s.withProject(w, r, func(p *project.Store) error {
		var buf bytes.Buffer
		if err := p.ExportShapes(r.Context(), &buf); err != nil {
			return err
		}
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Content-Disposition", attachment(p.ShapeFileName()))
		_, _ = w.Write(buf.Bytes())
		return nil
	})
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	s.withProject(w, r, func(p *project.Store) error {
		var buf bytes.Buffer
		if err := p.ExportProject(r.Context(), &buf); err != nil {
			return err
		}
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Content-Disposition", attachment(p.ProjectFileName(s.now())))
		_, _ = w.Write(buf.Bytes())
		return nil
	})
}

func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodySize))
	if err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeFileRead, err, "read project file"))
		return
	}
	s.withProject(w, r, func(p *project.Store) error {
		if err := p.Import(r.Context(), data); err != nil {
			return err
		}
		writeJSON(w, http.StatusOK, summarize(chi.URLParam(r, "id"), p))
		return nil
	})
}

func (s *Server) handlePalette(w http.ResponseWriter, r *http.Request) {
	s.withProject(w, r, func(p *project.Store) error {
		writeJSON(w, http.StatusOK, map[string][]string{"colors": nonNil(p.Palette())})
		return nil
	})
}

// colorRequest adds either a color code or an RGB triple.
type colorRequest struct {
	Color string `json:"color"`
	R     *int   `json:"r"`
	G     *int   `json:"g"`
	B     *int   `json:"b"`
}

func (c colorRequest) resolve() (string, error) {
	if c.Color != "" {
		return c.Color, nil
	}
	if c.R == nil || c.G == nil || c.B == nil {
		return "", errors.New(errors.ErrCodeInvalidInput, "color or r, g and b are required")
	}
	return palette.Hex(*c.R, *c.G, *c.B), nil
}

func (s *Server) handleAddColor(w http.ResponseWriter, r *http.Request) {
	var req colorRequest
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, err)
		return
	}
	color, err := req.resolve()
	if err != nil {
		writeError(w, err)
		return
	}
	s.withProject(w, r, func(p *project.Store) error {
		added, err := p.AddColor(r.Context(), color)
		if err != nil {
			return err
		}
		status := http.StatusOK
		if added {
			status = http.StatusCreated
		}
		writeJSON(w, status, map[string][]string{"colors": nonNil(p.Palette())})
		return nil
	})
}

func (s *Server) handleRemoveColor(w http.ResponseWriter, r *http.Request) {
	color, err := url.PathUnescape(chi.URLParam(r, "color"))
	if err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid color"))
		return
	}
	s.withProject(w, r, func(p *project.Store) error {
		removed, err := p.RemoveColor(r.Context(), color)
		if err != nil {
			return err
		}
		if !removed {
			return errors.New(errors.ErrCodeNotFound, "color %s is not in the palette", color)
		}
		writeJSON(w, http.StatusOK, map[string][]string{"colors": nonNil(p.Palette())})
		return nil
	})
}

func attachment(name string) string {
	return fmt.Sprintf("attachment; filename=%q", name)
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

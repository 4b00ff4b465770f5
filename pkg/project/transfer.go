package project

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/matzehuels/boardcreator/pkg/errors"
	"github.com/matzehuels/boardcreator/pkg/observability"
	"github.com/matzehuels/boardcreator/pkg/shape"
)

// ErrSelectionCancelled is returned by a [Picker] when the user dismisses
// the selection without choosing a file.
var ErrSelectionCancelled = errors.New(errors.ErrCodeSelectionCancelled, "no project file selected")

// File is a selected project file.
type File interface {
	io.ReadCloser
	Name() string
}

// Picker selects a project file to import. Pick returns
// [ErrSelectionCancelled] when nothing was chosen; it must not block forever
// once ctx is done.
type Picker interface {
	Pick(ctx context.Context) (File, error)
}

// PathPicker is a Picker that always selects the file at its path.
type PathPicker string

// Pick opens the file.
func (p PathPicker) Pick(ctx context.Context) (File, error) {
	if p == "" {
		return nil, ErrSelectionCancelled
	}
	f, err := os.Open(string(p))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileRead, err, "open %s", string(p))
	}
	return f, nil
}

// projectFile is the exported project format. Fields are pointers so Import
// can tell a missing or null field from a zero value.
type projectFile struct {
	Board      *BoardConfig `json:"board"`
	FileName   *string      `json:"fileName"`
	BoardTiles []Tile       `json:"boardTiles"`
	ColorTiles []Tile       `json:"colorTiles"`
	ColorBox   *string      `json:"colorBox,omitempty"`
}

// exportedFile mirrors projectFile with the persisted values copied verbatim.
type exportedFile struct {
	Board      json.RawMessage `json:"board"`
	FileName   json.RawMessage `json:"fileName"`
	BoardTiles json.RawMessage `json:"boardTiles"`
	ColorTiles json.RawMessage `json:"colorTiles"`
	ColorBox   string          `json:"colorBox"`
}

// ProjectFileName returns the export file name for the current project name
// at time now: "{fileName}_{unixMillis}.boardcreator".
func (s *Store) ProjectFileName(now time.Time) string {
	return fmt.Sprintf("%s_%d%s", s.fileName, now.UnixMilli(), FileExt)
}

// ExportProject writes the persisted project to w. Keys that are missing
// from storage are taken from memory.
func (s *Store) ExportProject(ctx context.Context, w io.Writer) (err error) {
	var size int
	defer func() { observability.Project().OnExport(ctx, "project", size, err) }()

	var f exportedFile
	if f.Board, err = s.persisted(ctx, KeyBoard, s.board); err != nil {
		return err
	}
	if f.FileName, err = s.persisted(ctx, KeyFileName, s.fileName); err != nil {
		return err
	}
	if f.BoardTiles, err = s.persisted(ctx, KeyBoardTiles, tilesOf(s.layers.Board)); err != nil {
		return err
	}
	if f.ColorTiles, err = s.persisted(ctx, KeyColorTiles, tilesOf(s.layers.Groups)); err != nil {
		return err
	}
	colorBox, err := s.persisted(ctx, KeyColorBox, s.palette.List())
	if err != nil {
		return err
	}
	f.ColorBox = string(colorBox)

	data, err := json.Marshal(f)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode project")
	}
	size = len(data)
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("write project: %w", err)
	}
	return nil
}

// persisted returns the stored value of key, or fallback encoded when the
// key is missing or does not hold valid JSON.
func (s *Store) persisted(ctx context.Context, key string, fallback any) (json.RawMessage, error) {
	data, ok, err := s.kv.Get(ctx, key)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "read %s", key)
	}
	if ok && json.Valid(data) {
		return data, nil
	}
	data, err = json.Marshal(fallback)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode %s", key)
	}
	return data, nil
}

// SaveProject exports the project into dir under [Store.ProjectFileName] and
// returns the written path.
func (s *Store) SaveProject(ctx context.Context, dir string) (string, error) {
	var buf bytes.Buffer
	if err := s.ExportProject(ctx, &buf); err != nil {
		return "", err
	}
	path := filepath.Join(dir, s.ProjectFileName(s.now()))
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	s.logger.Info("project exported", "path", path)
	return path, nil
}

// Import replaces the project with the contents of a project file.
//
// The file must contain board, fileName, boardTiles and colorTiles, none of
// them null, with a non-empty fileName. Otherwise Import fails with
// [errors.ErrCodeInvalidProjectFile] and storage is left untouched. A
// colorBox field, when present, restores the palette.
func (s *Store) Import(ctx context.Context, data []byte) (err error) {
	defer func() { observability.Project().OnImport(ctx, len(data), err) }()

	f, err := parseProject(data)
	if err != nil {
		return err
	}

	if err := s.put(ctx, KeyBoard, f.Board); err != nil {
		return err
	}
	if err := s.put(ctx, KeyFileName, *f.FileName); err != nil {
		return err
	}
	if err := s.put(ctx, KeyBoardTiles, tilesOf(boardLayer(f.BoardTiles))); err != nil {
		return err
	}
	if err := s.put(ctx, KeyColorTiles, tilesOf(groupLayer(f.ColorTiles))); err != nil {
		return err
	}
	if f.ColorBox != nil && *f.ColorBox != "" {
		if err := s.kv.Set(ctx, KeyColorBox, []byte(*f.ColorBox)); err != nil {
			return errors.Wrap(errors.ErrCodeStorage, err, "write %s", KeyColorBox)
		}
	}
	return s.Load(ctx)
}

func parseProject(data []byte) (projectFile, error) {
	var f projectFile
	if err := json.Unmarshal(data, &f); err != nil {
		return f, errors.Wrap(errors.ErrCodeInvalidProjectFile, err, "project file is not valid JSON")
	}
	switch {
	case f.Board == nil:
		return f, errors.New(errors.ErrCodeInvalidProjectFile, "project file has no board")
	case f.FileName == nil || *f.FileName == "":
		return f, errors.New(errors.ErrCodeInvalidProjectFile, "project file has no fileName")
	case f.BoardTiles == nil:
		return f, errors.New(errors.ErrCodeInvalidProjectFile, "project file has no boardTiles")
	case f.ColorTiles == nil:
		return f, errors.New(errors.ErrCodeInvalidProjectFile, "project file has no colorTiles")
	}
	if err := f.Board.Validate(); err != nil {
		return f, errors.Wrap(errors.ErrCodeInvalidProjectFile, err, "project file has an invalid board")
	}
	if f.ColorBox != nil && *f.ColorBox != "" {
		var colors []string
		if err := json.Unmarshal([]byte(*f.ColorBox), &colors); err != nil {
			return f, errors.Wrap(errors.ErrCodeInvalidProjectFile, err, "project file has an invalid colorBox")
		}
	}
	return f, nil
}

// ImportFrom selects a file with picker, reads it and imports it. A
// cancelled selection returns [ErrSelectionCancelled]; read failures return
// [errors.ErrCodeFileRead]. Either way the project is unchanged.
func (s *Store) ImportFrom(ctx context.Context, picker Picker) error {
	f, err := picker.Pick(ctx)
	if err != nil {
		if errors.GetCode(err) != "" {
			return err
		}
		return errors.Wrap(errors.ErrCodeFileRead, err, "select project file")
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return errors.Wrap(errors.ErrCodeFileRead, err, "read %s", f.Name())
	}
	if err := s.Import(ctx, data); err != nil {
		return err
	}
	s.logger.Info("project imported", "file", f.Name(), "name", s.fileName)
	return nil
}

// Clear deletes every key and re-establishes the defaults.
func (s *Store) Clear(ctx context.Context) (err error) {
	defer func() { observability.Project().OnClear(ctx, err) }()

	for _, key := range Keys {
		if err := s.kv.Delete(ctx, key); err != nil {
			return errors.Wrap(errors.ErrCodeStorage, err, "delete %s", key)
		}
	}
	return s.Load(ctx)
}

// Shapes extracts the board and group shapes from the current layers. It
// fails with INVALID_INPUT when a shape spans more than [shape.MaxSpan] cells.
func (s *Store) Shapes() (shape.Output, error) {
	return shape.Extract(s.layers.Board, s.layers.Groups)
}

// ShapeFileName returns the shape export file name, or "" when the project
// has no name.
func (s *Store) ShapeFileName() string {
	if s.fileName == "" {
		return ""
	}
	return shape.FileName(s.fileName)
}

// ExportShapes writes the shape file to w. It fails while the project has no
// name.
func (s *Store) ExportShapes(ctx context.Context, w io.Writer) (err error) {
	var buf bytes.Buffer
	defer func() { observability.Project().OnExport(ctx, "shapes", buf.Len(), err) }()

	if s.fileName == "" {
		return errors.New(errors.ErrCodeInvalidFileName, "set a file name before exporting shapes")
	}
	out, err := s.Shapes()
	if err != nil {
		return err
	}
	if err := shape.WriteJSON(out, &buf); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode shapes")
	}
	if _, err := w.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("write shapes: %w", err)
	}
	return nil
}

// SaveShapes writes the shape file into dir and returns its path.
func (s *Store) SaveShapes(ctx context.Context, dir string) (string, error) {
	var buf bytes.Buffer
	if err := s.ExportShapes(ctx, &buf); err != nil {
		return "", err
	}
	path := filepath.Join(dir, s.ShapeFileName())
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	s.logger.Info("shapes exported", "path", path)
	return path, nil
}

package project

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/boardcreator/pkg/errors"
	"github.com/matzehuels/boardcreator/pkg/grid"
	"github.com/matzehuels/boardcreator/pkg/observability"
	"github.com/matzehuels/boardcreator/pkg/palette"
	"github.com/matzehuels/boardcreator/pkg/storage"
)

// Store is a project backed by a key-value store.
type Store struct {
	kv       storage.Store
	logger   *log.Logger
	now      func() time.Time
	defaults Defaults
	match    grid.Matcher[grid.Tag]

	board    BoardConfig
	fileName string
	layers   grid.Layers
	palette  *palette.Palette
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger. The default is log.Default().
func WithLogger(l *log.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// WithClock sets the time source used to name exported project files.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithDefaults replaces the values used for missing or corrupt keys.
func WithDefaults(d Defaults) Option {
	return func(s *Store) { s.defaults = d }
}

// WithMatcher sets the equality used to toggle group tiles off. The default
// is [grid.SameTag]; [grid.SameIndex] reproduces index-only matching.
func WithMatcher(m grid.Matcher[grid.Tag]) Option {
	return func(s *Store) { s.match = m }
}

// New creates a project over kv. The project is empty until Load is called.
func New(kv storage.Store, opts ...Option) *Store {
	s := &Store{
		kv:       kv,
		logger:   log.Default(),
		now:      time.Now,
		defaults: DefaultDefaults(),
		match:    grid.SameTag,
		layers:   grid.NewLayers(),
		palette:  palette.New(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.board = s.defaults.Board
	s.fileName = s.defaults.FileName
	return s
}

// Load reads every key into memory. Missing keys and values that fail to
// parse are replaced by their default and written back. A stored palette that
// repeats colors is written back without the repeats.
func (s *Store) Load(ctx context.Context) (err error) {
	start := time.Now()
	defaulted := 0
	defer func() {
		observability.Project().OnLoad(ctx, defaulted, time.Since(start), err)
	}()

	var board BoardConfig
	ok, err := s.load(ctx, KeyBoard, &board, func() bool { return board.Validate() == nil })
	if err != nil {
		return err
	}
	if !ok {
		defaulted++
		board = s.defaults.Board
		if err := s.put(ctx, KeyBoard, board); err != nil {
			return err
		}
	}

	var name string
	ok, err = s.load(ctx, KeyFileName, &name, nil)
	if err != nil {
		return err
	}
	if !ok {
		defaulted++
		name = s.defaults.FileName
		if err := s.put(ctx, KeyFileName, name); err != nil {
			return err
		}
	}

	var boardTiles []Tile
	ok, err = s.load(ctx, KeyBoardTiles, &boardTiles, nil)
	if err != nil {
		return err
	}
	if !ok {
		defaulted++
		boardTiles = []Tile{}
		if err := s.put(ctx, KeyBoardTiles, boardTiles); err != nil {
			return err
		}
	}

	var colorTiles []Tile
	ok, err = s.load(ctx, KeyColorTiles, &colorTiles, nil)
	if err != nil {
		return err
	}
	if !ok {
		defaulted++
		colorTiles = []Tile{}
		if err := s.put(ctx, KeyColorTiles, colorTiles); err != nil {
			return err
		}
	}

	var colors []string
	ok, err = s.load(ctx, KeyColorBox, &colors, nil)
	if err != nil {
		return err
	}
	if !ok {
		defaulted++
		colors = append([]string{}, s.defaults.Palette...)
		if err := s.put(ctx, KeyColorBox, colors); err != nil {
			return err
		}
	}

	pal := palette.New(colors...)
	if dropped := len(colors) - pal.Len(); dropped > 0 {
		s.logger.Warn("stored palette repeats colors, keeping the first of each", "key", KeyColorBox, "dropped", dropped)
		if err := s.put(ctx, KeyColorBox, pal.List()); err != nil {
			return err
		}
	}

	s.board = board
	s.fileName = name
	s.layers = grid.Layers{Board: boardLayer(boardTiles), Groups: groupLayer(colorTiles)}
	s.palette = pal

	s.logger.Debug("project loaded", "name", name, "board", s.layers.Board.Len(),
		"tiles", s.layers.Groups.Len(), "colors", s.palette.Len(), "defaulted", defaulted)
	return nil
}

// load decodes key into v. It reports false when the key is absent, when
// the value does not parse, or when valid returns false; corrupt values are
// logged and otherwise treated as absent. JSON null counts as absent.
func (s *Store) load(ctx context.Context, key string, v any, valid func() bool) (bool, error) {
	data, ok, err := s.kv.Get(ctx, key)
	if err != nil {
		return false, errors.Wrap(errors.ErrCodeStorage, err, "read %s", key)
	}
	if !ok {
		return false, nil
	}
	if string(data) == "null" {
		s.logger.Warn("stored value is null, using default", "key", key)
		return false, nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		s.logger.Warn("stored value is corrupt, using default", "key", key, "err", err)
		return false, nil
	}
	if valid != nil && !valid() {
		s.logger.Warn("stored value is invalid, using default", "key", key)
		return false, nil
	}
	return true, nil
}

// put encodes v and writes it under key.
func (s *Store) put(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode %s", key)
	}
	if err := s.kv.Set(ctx, key, data); err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "write %s", key)
	}
	return nil
}

// Board returns the board configuration.
func (s *Store) Board() BoardConfig { return s.board }

// FileName returns the project name.
func (s *Store) FileName() string { return s.fileName }

// Layers returns the board and group layers. Callers must not modify them;
// use the paint methods instead so changes are persisted.
func (s *Store) Layers() grid.Layers { return s.layers }

// Palette returns a copy of the palette colors in insertion order.
func (s *Store) Palette() []string { return s.palette.List() }

// Matcher returns the equality used to toggle group tiles off.
func (s *Store) Matcher() grid.Matcher[grid.Tag] { return s.match }

// Package project keeps a board project in memory and writes every change
// through to a [storage.Store].
//
// A project is a board configuration, a file name, two tile layers (the board
// outline and the colored tile groups) and a color palette. Each piece is
// persisted under its own key as JSON:
//
//	BOARD        {"width":30,"height":20,"tileSize":24}
//	FILE_NAME    "Level0"
//	BOARD_TILES  [{"index":-1,"x":2,"y":3}, ...]
//	COLOR_TILES  [{"index":0,"x":4,"y":1,"color":"#ff0000"}, ...]
//	COLOR_BOX    ["#ff0000","#00ff00"]
//
// # Lifecycle
//
//	s := project.New(store, project.WithLogger(logger))
//	if err := s.Load(ctx); err != nil {
//	    return err
//	}
//	res, err := s.PaintBoard(ctx, grid.Cell{X: 2, Y: 3})
//
// [Store.Load] fills in defaults for missing keys and for values that no longer
// parse, and writes them back. Mutations persist the affected key immediately.
//
// # Import and Export
//
// [Store.ExportProject] writes a self-contained project file built from the
// persisted values. [Store.Import] validates such a file before touching
// storage, so a rejected file leaves the project unchanged.
// [Store.ImportFrom] runs the two-stage pipeline: a [Picker] selects a file,
// then the file is read and imported.
//
// A Store is not safe for concurrent use.
package project

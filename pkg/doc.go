// Package pkg provides the core libraries for Boardcreator.
//
// # Overview
//
// Boardcreator paints a rectangular grid into two layers: a board outline and
// colored tile groups. The painted layers are persisted through a key-value
// store and exported as shape matrices. The pkg directory is organized as:
//
//  1. [grid] - Sparse tile layers, the paint toggle and the painting tool
//  2. [shape] - Extraction of per-group shape matrices and the shape file
//  3. [palette] - Ordered, duplicate-free color list
//  4. [project] - Persisted project state, project file import and export
//  5. [storage] - Key-value backends (memory, file, redis, mongo)
//  6. [config], [errors], [observability], [buildinfo] - Ambient support
//
// # Architecture
//
// The typical data flow:
//
//	click / paint request
//	         ↓
//	    [grid] package (toggle a tile on a layer)
//	         ↓
//	    [project] package (write-through to storage)
//	         ↓
//	    [shape] package (group matrices)
//	         ↓
//	    <name>.json shape file
//
// # Quick Start
//
//	store := project.New(storage.NewMemoryStore())
//	if err := store.Load(ctx); err != nil {
//	    return err
//	}
//
//	tool := grid.NewTool()
//	store.Click(ctx, tool, grid.Cell{X: 1, Y: 1})
//
//	tool.Mode = grid.ModeColour
//	store.Click(ctx, tool, grid.Cell{X: 1, Y: 1})
//
//	store.ExportShapes(ctx, os.Stdout)
package pkg

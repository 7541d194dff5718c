// Package raster provides the shared resource infrastructure of a 2D
// raster engine: type-tagged, ownership-aware resource handles (bitmaps
// and palettes) and a process-wide, reference-counted set of precomputed
// blend lookup tables.
//
// # Overview
//
// Every engine resource is a typed handle created by a kind-specific
// constructor and released by an explicit Delete. Handles carry a type
// tag that every operation re-validates, and an ownership flag that
// cascades deletion to an owned sub-resource (a bitmap may own its
// palette). Failed operations return a sentinel value (nil, 0 or false)
// and record an ErrorCode retrievable with LastError.
//
// # Quick Start
//
//	import "github.com/gogpu/raster"
//
//	bmp := raster.NewBitmap(320, 240, 8)
//	defer bmp.Delete()
//
//	raster.ActivateBlendTables()
//	defer raster.DeactivateBlendTables()
//
//	add := raster.SelectBlendTable(raster.BlendAdd)
//	out := add[int(src)<<8|int(dst)]
//
// # Blend Tables
//
// The blend engine precomputes one 65536-entry table per blend mode,
// indexed by (src<<8)|dst, so a compositing loop replaces per-pixel
// arithmetic with a single table load. The set is built once on the
// first activation and shared by reference count across all consumers;
// the last deactivation releases it. All blend-table operations are
// safe for concurrent use.
//
// # Raw Pixel Access
//
// Bitmap.Pointer and Bitmap.Row expose the pixel storage as raw byte
// slices with no per-access bounds checking. They are an explicit
// escape hatch for compositing loops; see their documentation for the
// exact contract.
package raster

// Version is the current version of the library.
const Version = "0.1.0"

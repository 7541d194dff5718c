package raster

// Bitmap is a rectangular pixel buffer with row storage aligned to a
// 4-byte boundary. The pixel storage is allocated inline at creation
// and is immutable in size; resizing requires a new bitmap.
//
// A bitmap may reference a palette. By default the association is
// shared: the palette has its own lifetime. AdoptPalette transfers
// ownership instead, in which case Delete cascades to the palette.
type Bitmap struct {
	object
	width   int
	height  int
	bpp     int
	pitch   int
	palette *Palette
}

// align4 rounds n up to the next multiple of 4.
func align4(n int) int { return (n + 3) &^ 3 }

// bitmapPitch returns the row size in bytes: the minimum bytes needed
// for width pixels at bpp bits each, aligned up to a 4-byte boundary.
func bitmapPitch(width, bpp int) int {
	return align4((width*bpp + 7) / 8)
}

func validDepth(bpp int) bool {
	switch bpp {
	case 8, 16, 24, 32:
		return true
	}
	return false
}

// NewBitmap creates a memory bitmap of width×height pixels at bpp bits
// per pixel (8, 16, 24 or 32). The pixel storage is zero-initialized.
// Returns nil and records ErrOutOfRange for invalid dimensions or
// depth.
func NewBitmap(width, height, bpp int) *Bitmap {
	if width <= 0 || height <= 0 || !validDepth(bpp) {
		setLastError(ErrOutOfRange)
		return nil
	}
	pitch := bitmapPitch(width, bpp)
	b := &Bitmap{
		object: newObject(KindBitmap, pitch*height),
		width:  width,
		height: height,
		bpp:    bpp,
		pitch:  pitch,
	}
	setLastError(ErrOK)
	return b
}

func (b *Bitmap) valid() bool {
	return b != nil && checkObject(b, KindBitmap)
}

func (b *Bitmap) owned() Object {
	if b.palette == nil {
		return nil
	}
	return b.palette
}

// Clone creates a copy of the bitmap with its own pixel storage. The
// palette reference is copied as shared: the clone never owns it, even
// when the source does. Returns nil and records ErrRefBitmap if b is
// not a live bitmap.
func (b *Bitmap) Clone() *Bitmap {
	if !b.valid() {
		setLastError(ErrRefBitmap)
		return nil
	}
	dup := *b
	dup.store = cloneStore(&b.object)
	dup.owns = false
	setLastError(ErrOK)
	return &dup
}

// Delete releases the bitmap. If the bitmap owns its palette the
// palette is deleted first. The handle is poisoned: any later
// operation on it fails with ErrRefBitmap. Returns false and records
// ErrRefBitmap if b is not a live bitmap.
func (b *Bitmap) Delete() bool {
	if !b.valid() {
		setLastError(ErrRefBitmap)
		return false
	}
	deleteObject(b)
	b.palette = nil
	setLastError(ErrOK)
	return true
}

// Pointer returns the raw pixel storage starting at (x, y) and running
// to the end of the buffer. Only the upper bounds are validated
// (ErrOutOfRange when x >= width or y >= height); negative coordinates
// are not checked and panic via the runtime bounds check. No further
// checking guards reads or writes through the returned slice — this is
// a deliberate escape hatch for compositing loops.
func (b *Bitmap) Pointer(x, y int) []byte {
	if !b.valid() {
		setLastError(ErrRefBitmap)
		return nil
	}
	if x >= b.width || y >= b.height {
		setLastError(ErrOutOfRange)
		return nil
	}
	setLastError(ErrOK)
	return b.store[y*b.pitch+x*b.bpp/8:]
}

// Row returns the raw bytes of row y, pitch bytes long. Same contract
// as Pointer.
func (b *Bitmap) Row(y int) []byte {
	p := b.Pointer(0, y)
	if p == nil {
		return nil
	}
	return p[:b.pitch]
}

// ClearPixels fills the entire pixel storage with v.
func (b *Bitmap) ClearPixels(v byte) bool {
	if !b.valid() {
		setLastError(ErrRefBitmap)
		return false
	}
	for i := range b.store {
		b.store[i] = v
	}
	setLastError(ErrOK)
	return true
}

// Palette returns the associated palette, or nil when none is set.
func (b *Bitmap) Palette() *Palette {
	if !b.valid() {
		setLastError(ErrRefBitmap)
		return nil
	}
	setLastError(ErrOK)
	return b.palette
}

// SetPalette associates pal with the bitmap as a shared reference: the
// caller keeps managing the palette's lifetime. Returns false and
// records ErrRefBitmap or ErrRefPalette on a bad handle.
func (b *Bitmap) SetPalette(pal *Palette) bool {
	if !b.valid() {
		setLastError(ErrRefBitmap)
		return false
	}
	if !pal.valid() {
		setLastError(ErrRefPalette)
		return false
	}
	b.palette = pal
	b.owns = false
	setLastError(ErrOK)
	return true
}

// AdoptPalette associates pal and transfers its ownership to the
// bitmap: deleting the bitmap deletes the palette.
func (b *Bitmap) AdoptPalette(pal *Palette) bool {
	if !b.SetPalette(pal) {
		return false
	}
	b.owns = true
	return true
}

// Width returns the width in pixels, or 0 with ErrRefBitmap recorded.
func (b *Bitmap) Width() int {
	if !b.valid() {
		setLastError(ErrRefBitmap)
		return 0
	}
	setLastError(ErrOK)
	return b.width
}

// Height returns the height in pixels, or 0 with ErrRefBitmap recorded.
func (b *Bitmap) Height() int {
	if !b.valid() {
		setLastError(ErrRefBitmap)
		return 0
	}
	setLastError(ErrOK)
	return b.height
}

// Depth returns the bits per pixel, or 0 with ErrRefBitmap recorded.
func (b *Bitmap) Depth() int {
	if !b.valid() {
		setLastError(ErrRefBitmap)
		return 0
	}
	setLastError(ErrOK)
	return b.bpp
}

// Pitch returns the row size in bytes (also known as stride), or 0
// with ErrRefBitmap recorded.
func (b *Bitmap) Pitch() int {
	if !b.valid() {
		setLastError(ErrRefBitmap)
		return 0
	}
	setLastError(ErrOK)
	return b.pitch
}

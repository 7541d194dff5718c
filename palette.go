package raster

import "image/color"

// MaxPaletteEntries is the largest color table a palette can hold.
const MaxPaletteEntries = 256

// Palette is a color table resource. Entries are stored inline as
// 4 bytes each (R, G, B, A). A palette may be shared between bitmaps
// or owned by a single one; see Bitmap.SetPalette and
// Bitmap.AdoptPalette.
type Palette struct {
	object
	entries int
}

// NewPalette creates a palette with the given number of entries, all
// initialized to transparent black. Returns nil and records
// ErrOutOfRange when entries is outside [1, MaxPaletteEntries].
func NewPalette(entries int) *Palette {
	if entries <= 0 || entries > MaxPaletteEntries {
		setLastError(ErrOutOfRange)
		return nil
	}
	p := &Palette{
		object:  newObject(KindPalette, entries*4),
		entries: entries,
	}
	setLastError(ErrOK)
	return p
}

func (p *Palette) valid() bool {
	return p != nil && checkObject(p, KindPalette)
}

func (p *Palette) owned() Object { return nil }

// Clone creates a copy of the palette with its own color storage.
func (p *Palette) Clone() *Palette {
	if !p.valid() {
		setLastError(ErrRefPalette)
		return nil
	}
	dup := *p
	dup.store = cloneStore(&p.object)
	dup.owns = false
	setLastError(ErrOK)
	return &dup
}

// Delete releases the palette and poisons the handle.
func (p *Palette) Delete() bool {
	if !p.valid() {
		setLastError(ErrRefPalette)
		return false
	}
	deleteObject(p)
	setLastError(ErrOK)
	return true
}

// Len returns the number of entries, or 0 with ErrRefPalette recorded.
func (p *Palette) Len() int {
	if !p.valid() {
		setLastError(ErrRefPalette)
		return 0
	}
	setLastError(ErrOK)
	return p.entries
}

// SetColor stores c at index i. Colors are stored non-premultiplied.
func (p *Palette) SetColor(i int, c color.Color) bool {
	if !p.valid() {
		setLastError(ErrRefPalette)
		return false
	}
	if i < 0 || i >= p.entries {
		setLastError(ErrOutOfRange)
		return false
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	o := i * 4
	p.store[o+0] = n.R
	p.store[o+1] = n.G
	p.store[o+2] = n.B
	p.store[o+3] = n.A
	setLastError(ErrOK)
	return true
}

// Color returns the entry at index i, or the zero color with
// ErrRefPalette or ErrOutOfRange recorded.
func (p *Palette) Color(i int) color.NRGBA {
	if !p.valid() {
		setLastError(ErrRefPalette)
		return color.NRGBA{}
	}
	if i < 0 || i >= p.entries {
		setLastError(ErrOutOfRange)
		return color.NRGBA{}
	}
	o := i * 4
	setLastError(ErrOK)
	return color.NRGBA{
		R: p.store[o+0],
		G: p.store[o+1],
		B: p.store[o+2],
		A: p.store[o+3],
	}
}

// colorTable converts the palette to a standard color.Palette for
// image export.
func (p *Palette) colorTable() color.Palette {
	table := make(color.Palette, p.entries)
	for i := 0; i < p.entries; i++ {
		o := i * 4
		table[i] = color.NRGBA{
			R: p.store[o+0],
			G: p.store[o+1],
			B: p.store[o+2],
			A: p.store[o+3],
		}
	}
	return table
}

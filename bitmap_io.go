package raster

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/gif" // register GIF decoding
	"image/png"
	"log/slog"
	"os"

	_ "golang.org/x/image/bmp" // register BMP decoding
)

// LoadBitmap loads a bitmap from a PNG, GIF or BMP file. Indexed
// sources become 8bpp bitmaps with an owned palette built from the
// source color table; everything else becomes a 32bpp RGBA bitmap.
//
// File and decode failures are reported as ordinary errors; they are
// outside the engine's error-code contract.
func LoadBitmap(path string) (*Bitmap, error) {
	f, err := os.Open(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = f.Close()
	}()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	var b *Bitmap
	switch src := img.(type) {
	case *image.Paletted:
		b = fromPaletted(src)
	default:
		b = fromImage(img)
	}
	if b == nil {
		return nil, fmt.Errorf("load %s: %s", path, LastError())
	}

	Logger().Debug("bitmap loaded",
		slog.String("path", path),
		slog.String("format", format),
		slog.Int("width", b.width),
		slog.Int("height", b.height),
		slog.Int("bpp", b.bpp))
	return b, nil
}

// fromPaletted converts an indexed image into an 8bpp bitmap that owns
// its palette.
func fromPaletted(src *image.Paletted) *Bitmap {
	w, h := src.Rect.Dx(), src.Rect.Dy()
	b := NewBitmap(w, h, 8)
	if b == nil {
		return nil
	}
	pal := NewPalette(len(src.Palette))
	if pal == nil {
		b.Delete()
		return nil
	}
	for i, c := range src.Palette {
		pal.SetColor(i, c)
	}
	b.AdoptPalette(pal)
	for y := 0; y < h; y++ {
		copy(b.Row(y), src.Pix[y*src.Stride:y*src.Stride+w])
	}
	return b
}

// fromImage converts any image into a 32bpp RGBA bitmap.
func fromImage(img image.Image) *Bitmap {
	bounds := img.Bounds()
	b := NewBitmap(bounds.Dx(), bounds.Dy(), 32)
	if b == nil {
		return nil
	}
	for y := 0; y < b.height; y++ {
		row := b.Row(y)
		for x := 0; x < b.width; x++ {
			n := color.NRGBAModel.Convert(img.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.NRGBA)
			o := x * 4
			row[o+0] = n.R
			row[o+1] = n.G
			row[o+2] = n.B
			row[o+3] = n.A
		}
	}
	return b
}

// Image converts the bitmap to a standard library image. 8bpp bitmaps
// resolve through the associated palette, or convert to grayscale when
// no palette is set; 32bpp bitmaps convert directly. 16 and 24bpp
// bitmaps are not convertible.
func (b *Bitmap) Image() (image.Image, error) {
	if !b.valid() {
		setLastError(ErrRefBitmap)
		return nil, errors.New("raster: not a live bitmap")
	}
	switch b.bpp {
	case 8:
		if b.palette != nil {
			img := image.NewPaletted(image.Rect(0, 0, b.width, b.height), b.palette.colorTable())
			for y := 0; y < b.height; y++ {
				copy(img.Pix[y*img.Stride:y*img.Stride+b.width], b.Row(y))
			}
			setLastError(ErrOK)
			return img, nil
		}
		img := image.NewGray(image.Rect(0, 0, b.width, b.height))
		for y := 0; y < b.height; y++ {
			copy(img.Pix[y*img.Stride:y*img.Stride+b.width], b.Row(y))
		}
		setLastError(ErrOK)
		return img, nil
	case 32:
		img := image.NewNRGBA(image.Rect(0, 0, b.width, b.height))
		for y := 0; y < b.height; y++ {
			copy(img.Pix[y*img.Stride:y*img.Stride+b.width*4], b.Row(y)[:b.width*4])
		}
		setLastError(ErrOK)
		return img, nil
	default:
		setLastError(ErrOK)
		return nil, fmt.Errorf("raster: no image conversion for %dbpp", b.bpp)
	}
}

// SavePNG saves the bitmap to a PNG file. See Image for the supported
// depths.
func (b *Bitmap) SavePNG(path string) error {
	img, err := b.Image()
	if err != nil {
		return err
	}
	f, err := os.Create(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return err
	}
	defer func() {
		_ = f.Close()
	}()
	return png.Encode(f, img)
}

// Command rasterdemo composites two generated layers through every
// blend table and writes the results as a PNG contact sheet.
package main

import (
	"flag"
	"log"

	"github.com/gogpu/raster"
)

var modes = []raster.BlendMode{
	raster.BlendMix25,
	raster.BlendMix50,
	raster.BlendMix75,
	raster.BlendAdd,
	raster.BlendSub,
	raster.BlendMod,
}

func main() {
	var (
		size   = flag.Int("size", 192, "panel size in pixels")
		output = flag.String("output", "blend.png", "output file")
	)
	flag.Parse()

	if !raster.ActivateBlendTables() {
		log.Fatal("Failed to activate blend tables")
	}
	defer raster.DeactivateBlendTables()

	src := drawSource(*size)
	dst := drawDestination(*size)
	defer src.Delete()
	defer dst.Delete()

	// 3x2 contact sheet, one panel per mode.
	sheet := raster.NewBitmap(*size*3, *size*2, 32)
	if sheet == nil {
		log.Fatalf("Failed to create sheet: %v", raster.LastError())
	}
	defer sheet.Delete()

	for i, mode := range modes {
		panelX := (i % 3) * *size
		panelY := (i / 3) * *size
		composite(sheet, src, dst, mode, panelX, panelY)
	}

	if err := sheet.SavePNG(*output); err != nil {
		log.Fatalf("Failed to save: %v", err)
	}
	log.Printf("Contact sheet saved to %s (%dx%d)\n", *output, sheet.Width(), sheet.Height())
}

// drawSource paints a diagonal color wash.
func drawSource(size int) *raster.Bitmap {
	b := raster.NewBitmap(size, size, 32)
	for y := 0; y < size; y++ {
		row := b.Row(y)
		for x := 0; x < size; x++ {
			o := x * 4
			row[o+0] = byte(255 * x / size)
			row[o+1] = byte(255 * (x + y) / (2 * size))
			row[o+2] = byte(255 * (size - 1 - y) / size)
			row[o+3] = 0xFF
		}
	}
	return b
}

// drawDestination paints concentric square rings.
func drawDestination(size int) *raster.Bitmap {
	b := raster.NewBitmap(size, size, 32)
	for y := 0; y < size; y++ {
		row := b.Row(y)
		for x := 0; x < size; x++ {
			dx, dy := x-size/2, y-size/2
			if dx < 0 {
				dx = -dx
			}
			if dy < 0 {
				dy = -dy
			}
			ring := max(dx, dy) * 8 / size
			v := byte(255 - ring*32)
			o := x * 4
			row[o+0] = v
			row[o+1] = v / 2
			row[o+2] = byte(ring * 32)
			row[o+3] = 0xFF
		}
	}
	return b
}

// composite blends src over dst channel-wise through the mode's table
// and writes the result into the sheet panel at (panelX, panelY).
func composite(sheet, src, dst *raster.Bitmap, mode raster.BlendMode, panelX, panelY int) {
	table := raster.SelectBlendTable(mode)
	size := src.Width()
	for y := 0; y < size; y++ {
		srcRow := src.Row(y)
		dstRow := dst.Row(y)
		outRow := sheet.Pointer(panelX, panelY+y)
		for x := 0; x < size; x++ {
			o := x * 4
			outRow[o+0] = table[int(srcRow[o+0])<<8|int(dstRow[o+0])]
			outRow[o+1] = table[int(srcRow[o+1])<<8|int(dstRow[o+1])]
			outRow[o+2] = table[int(srcRow[o+2])<<8|int(dstRow[o+2])]
			outRow[o+3] = 0xFF
		}
	}
}

// Package imageview draws decoded images with true-colour half-block characters.
//
// Each terminal row holds two pixel rows: the upper pixel paints the cell
// background and the lower pixel paints the foreground of a "▄" glyph.
package imageview

import (
	"bytes"
	"encoding/base64"
	"fmt"
	goimage "image"
	"net/url"
	"strings"

	// Register decoders for standard formats.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// Decode parses image bytes in any registered format.
func Decode(data []byte) (goimage.Image, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("empty image data")
	}
	img, _, err := goimage.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w", err)
	}
	return img, nil
}

// DecodeDataURL decodes an image held in a data: URL
// ("data:image/png;base64,...", or percent-encoded without ";base64").
func DecodeDataURL(dataURL string) (goimage.Image, error) {
	rest, ok := strings.CutPrefix(dataURL, "data:")
	if !ok {
		return nil, fmt.Errorf("not a data url")
	}
	header, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return nil, fmt.Errorf("malformed data url")
	}

	var data []byte
	if strings.HasSuffix(header, ";base64") {
		decoded, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			return nil, fmt.Errorf("data url payload: %w", err)
		}
		data = decoded
	} else {
		unescaped, err := url.PathUnescape(payload)
		if err != nil {
			return nil, fmt.Errorf("data url payload: %w", err)
		}
		data = []byte(unescaped)
	}
	return Decode(data)
}

// Fit returns the pixel size that fits a srcW×srcH image inside cols×rows
// terminal cells, keeping the aspect ratio. Height is in pixels (two per row).
func Fit(srcW, srcH, cols, rows int) (int, int) {
	if srcW <= 0 || srcH <= 0 || cols <= 0 || rows <= 0 {
		return 0, 0
	}
	maxW, maxH := cols, rows*2
	w, h := srcW, srcH
	if w > maxW {
		h = h * maxW / w
		w = maxW
	}
	if h > maxH {
		w = w * maxH / h
		h = maxH
	}
	return max(w, 1), max(h, 1)
}

// Render converts img into at most rows lines of at most cols cells.
func Render(img goimage.Image, cols, rows int) []string {
	if img == nil {
		return nil
	}
	bounds := img.Bounds()
	targetW, targetH := Fit(bounds.Dx(), bounds.Dy(), cols, rows)
	if targetW == 0 {
		return nil
	}

	var scaled goimage.Image = img
	if targetW != bounds.Dx() || targetH != bounds.Dy() {
		dst := goimage.NewRGBA(goimage.Rect(0, 0, targetW, targetH))
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
		scaled = dst
	}
	origin := scaled.Bounds().Min

	lines := make([]string, 0, (targetH+1)/2)
	for y := 0; y < targetH; y += 2 {
		var b strings.Builder
		for x := range targetW {
			topR, topG, topB := rgbAt(scaled, origin.X+x, origin.Y+y)

			// Bottom pixel is black past the last row
			var botR, botG, botB uint8
			if y+1 < targetH {
				botR, botG, botB = rgbAt(scaled, origin.X+x, origin.Y+y+1)
			}

			fmt.Fprintf(&b, "\x1b[48;2;%d;%d;%dm\x1b[38;2;%d;%d;%dm▄",
				topR, topG, topB, botR, botG, botB)
		}
		b.WriteString("\x1b[0m")
		lines = append(lines, b.String())
	}
	return lines
}

// rgbAt extracts the 8-bit RGB components of the pixel at (x, y).
func rgbAt(img goimage.Image, x, y int) (uint8, uint8, uint8) {
	r, g, b, _ := img.At(x, y).RGBA()
	return uint8(r >> 8), uint8(g >> 8), uint8(b >> 8)
}

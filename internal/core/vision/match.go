package vision

import (
	"image"
	"image/draw"
	"math"
)

// Match is a template hit: the screen coordinate of the template's center
// and the normalized correlation score that produced it.
type Match struct {
	X          int
	Y          int
	Confidence float64
}

// grayscale converts any image to a single-channel intensity image.
func grayscale(img image.Image) *image.Gray {
	if g, ok := img.(*image.Gray); ok {
		return g
	}
	b := img.Bounds()
	g := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(g, g.Bounds(), img, b.Min, draw.Src)
	return g
}

// integrals computes summed-area tables of pixel values and squared pixel
// values for g, with one extra row/column of zeros so window sums need no
// boundary checks.
func integrals(g *image.Gray) (sum, sqSum []float64, w, h int) {
	b := g.Bounds()
	w, h = b.Dx(), b.Dy()
	stride := w + 1
	sum = make([]float64, (w+1)*(h+1))
	sqSum = make([]float64, (w+1)*(h+1))

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := float64(g.GrayAt(b.Min.X+x, b.Min.Y+y).Y)
			i := (y+1)*stride + (x + 1)
			sum[i] = v + sum[i-1] + sum[i-stride] - sum[i-stride-1]
			sqSum[i] = v*v + sqSum[i-1] + sqSum[i-stride] - sqSum[i-stride-1]
		}
	}
	return sum, sqSum, w, h
}

// windowSum reads the sum over the w×h window at (x, y) from a summed-area
// table with the given stride.
func windowSum(table []float64, stride, x, y, w, h int) float64 {
	return table[(y+h)*stride+(x+w)] - table[y*stride+(x+w)] -
		table[(y+h)*stride+x] + table[y*stride+x]
}

// matchTemplate slides tpl over screen computing zero-mean normalized
// cross-correlation and returns the best-scoring position as a Match whose
// coordinate is the template center. The second return is false when no
// valid position exists (template larger than the screen, or the template
// has zero variance so correlation is undefined).
func matchTemplate(screen, tpl *image.Gray) (Match, bool) {
	sb, tb := screen.Bounds(), tpl.Bounds()
	sw, sh := sb.Dx(), sb.Dy()
	tw, th := tb.Dx(), tb.Dy()

	if tw == 0 || th == 0 || tw > sw || th > sh {
		return Match{}, false
	}

	// Zero-mean the template once; Σt' = 0 afterwards, which lets the
	// numerator reduce to Σ t'·I over each window.
	n := float64(tw * th)
	tvals := make([]float64, tw*th)
	var tsum float64
	for y := 0; y < th; y++ {
		for x := 0; x < tw; x++ {
			v := float64(tpl.GrayAt(tb.Min.X+x, tb.Min.Y+y).Y)
			tvals[y*tw+x] = v
			tsum += v
		}
	}
	tmean := tsum / n
	var tvar float64
	for i := range tvals {
		tvals[i] -= tmean
		tvar += tvals[i] * tvals[i]
	}
	if tvar == 0 {
		return Match{}, false
	}
	tnorm := math.Sqrt(tvar)

	sum, sqSum, _, _ := integrals(screen)
	stride := sw + 1

	best := Match{Confidence: math.Inf(-1)}
	for oy := 0; oy <= sh-th; oy++ {
		for ox := 0; ox <= sw-tw; ox++ {
			var cross float64
			for y := 0; y < th; y++ {
				trow := y * tw
				for x := 0; x < tw; x++ {
					v := float64(screen.GrayAt(sb.Min.X+ox+x, sb.Min.Y+oy+y).Y)
					cross += tvals[trow+x] * v
				}
			}

			winSum := windowSum(sum, stride, ox, oy, tw, th)
			winSq := windowSum(sqSum, stride, ox, oy, tw, th)
			winVar := winSq - winSum*winSum/n
			if winVar <= 0 {
				// Flat window: correlation undefined, cannot match.
				continue
			}

			score := cross / (tnorm * math.Sqrt(winVar))
			if score > best.Confidence {
				best = Match{
					X:          ox + tw/2,
					Y:          oy + th/2,
					Confidence: score,
				}
			}
		}
	}

	if math.IsInf(best.Confidence, -1) {
		return Match{}, false
	}
	return best, true
}

// bestMatch reduces per-template candidates to the single winning match
// above the threshold. The normal candidate wins ties, so a pixel-equal
// score never flips the target to the hover variant.
func bestMatch(threshold float64, normal, hover *Match) (Match, bool) {
	normalOK := normal != nil && normal.Confidence >= threshold
	hoverOK := hover != nil && hover.Confidence >= threshold

	switch {
	case normalOK && hoverOK:
		if normal.Confidence >= hover.Confidence {
			return *normal, true
		}
		return *hover, true
	case normalOK:
		return *normal, true
	case hoverOK:
		return *hover, true
	default:
		return Match{}, false
	}
}

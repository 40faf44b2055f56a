package ehrenfest

import (
	"fmt"
	"image/color"
	"os"
	"strconv"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

var (
	fitColor     = color.RGBA{G: 255, A: 255} // lime
	scatterColor = color.RGBA{R: 255, A: 255}
)

// latticeGrid exposes a lattice as a heat map grid: column c is y, row r
// is x counted from the bottom so site (0, 0) is drawn top-left.
type latticeGrid struct{ l *Lattice }

func (g latticeGrid) Dims() (c, r int)   { return g.l.Size, g.l.Size }
func (g latticeGrid) Z(c, r int) float64 { return float64(g.l.At(g.l.Size-1-r, c)) }
func (g latticeGrid) X(c int) float64    { return float64(c) }
func (g latticeGrid) Y(r int) float64    { return float64(r) }

// SaveFigure renders the 2x2 summary PNG: initial and final histograms on
// the shared bin axis (the final one with the fitted curve, when there is
// one) above the initial and final lattices on a shared color scale.
func SaveFigure(res *Result, path string) error {
	lo := imin(res.Initial.Min(), res.Final.Min())
	hi := imax(res.Initial.Max(), res.Final.Max())

	p1, err := histogramPlot("Initial Lattice", res.InitialHist, nil)
	if err != nil {
		return err
	}
	p2, err := histogramPlot("Final Lattice", res.FinalHist, res.Fit)
	if err != nil {
		return err
	}
	p3 := heatmapPlot("Starting Lattice", res.Initial, lo, hi)
	p4 := heatmapPlot(fmt.Sprintf("Final Lattice (%d hops)", res.Stats.Hops), res.Final, lo, hi)

	img := vgimg.New(10*vg.Inch, 8*vg.Inch)
	dc := draw.New(img)
	t := draw.Tiles{
		Rows:      2,
		Cols:      2,
		PadX:      4 * vg.Millimeter,
		PadY:      4 * vg.Millimeter,
		PadTop:    2 * vg.Millimeter,
		PadBottom: 2 * vg.Millimeter,
		PadLeft:   2 * vg.Millimeter,
		PadRight:  2 * vg.Millimeter,
	}
	plots := [][]*plot.Plot{{p1, p2}, {p3, p4}}
	canvases := plot.Align(plots, t, dc)
	for j := range plots {
		for i := range plots[j] {
			plots[j][i].Draw(canvases[j][i])
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := (vgimg.PngCanvas{Canvas: img}).WriteTo(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func histogramPlot(title string, h Histogram, fit *FitResult) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Energy Quanta"
	p.Y.Label.Text = "Number of Sites"
	p.X.Tick.Marker = integerTicks(len(h) - 1)

	xs, ys := h.Points()
	pts := make(plotter.XYs, len(h))
	for i := range pts {
		pts[i].X, pts[i].Y = xs[i], ys[i]
	}
	if err := plotutil.AddLinePoints(p, "Sites", pts); err != nil {
		return nil, err
	}
	sc, err := plotter.NewScatter(pts)
	if err != nil {
		return nil, err
	}
	sc.GlyphStyle.Color = scatterColor
	p.Add(sc)

	if fit != nil {
		curve, err := fitCurve(fit, imax(curveMaxE, len(h)-1))
		if err != nil {
			return nil, err
		}
		p.Add(curve)
		p.Legend.Add("Boltzmann Fit", curve)
	}
	return p, nil
}

// fitCurve samples the fitted model densely over [0, maxE].
func fitCurve(fit *FitResult, maxE int) (*plotter.Line, error) {
	es := make([]float64, curveSamples)
	floats.Span(es, 0, float64(maxE))
	pts := make(plotter.XYs, len(es))
	for i, e := range es {
		pts[i].X, pts[i].Y = e, fit.Eval(e)
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return nil, err
	}
	line.Color = fitColor
	line.Dashes = []vg.Length{vg.Points(5), vg.Points(3)}
	return line, nil
}

func heatmapPlot(title string, l *Lattice, lo, hi int) *plot.Plot {
	cm := occupancyColors(lo, hi)
	hm := plotter.NewHeatMap(latticeGrid{l}, cm.Palette(64))
	hm.Min, hm.Max = cm.Min(), cm.Max()

	p := plot.New()
	p.Title.Text = title
	p.Add(hm)
	p.HideAxes()
	return p
}

// integerTicks labels whole energies 0..maxE, thinning labels on wide axes.
func integerTicks(maxE int) plot.Ticker {
	step := imax(1, (maxE+19)/20)
	return plot.TickerFunc(func(min, max float64) []plot.Tick {
		var ticks []plot.Tick
		for e := 0; e <= maxE; e++ {
			t := plot.Tick{Value: float64(e)}
			if e%step == 0 {
				t.Label = strconv.Itoa(e)
			}
			ticks = append(ticks, t)
		}
		return ticks
	})
}

// Package chartview is the interaction engine of a 2D charting library for
// [Ebitengine].
//
// It owns everything between raw pointer input and the pixels a renderer
// draws: the content rectangle and its pan/zoom matrix ([Viewport]), the
// data-to-pixel mapping ([Transformer], [SwappedTransformer]), the touch
// state machine with inertial scrolling and spinning ([Gesture],
// [Scroller], [Spinner]), and hit testing ([Highlighter]). Drawing axes,
// labels and series is left to the caller.
//
// # Quick start
//
// Build a [Chart], give it data and a size, and drive it from your
// [ebiten.Game]:
//
//	chart := chartview.NewChart(chartview.ChartBar, chartview.DefaultConfig())
//	chart.SetData(chartview.NewChartData(set))
//	chart.SetSize(640, 480)
//	input := chartview.NewEbitenInput()
//
//	func (g *Game) Update() error {
//		now := time.Since(g.start)
//		input.Poll(chart, now)
//		chart.Update(now)
//		return nil
//	}
//
// Or let [Run] own the window and the loop:
//
//	chartview.Run(chart, chartview.RunConfig{
//		Title: "Sales", Width: 640, Height: 480, Draw: drawChart,
//	})
//
// Renderers map data to pixels through [Chart.Mapper]:
//
//	px := chart.Mapper(chartview.AxisLeft).PixelFor(e.X, e.Y)
//
// # Coordinates
//
// Pixels are chart pixels: the origin is the chart's top-left corner and y
// grows downward. Data y grows upward. Horizontal bar charts draw the data
// x-axis vertically and use a [SwappedTransformer] so callers keep passing
// (x, y) in data order.
//
// # Gestures
//
// One pointer pans (Cartesian charts) or rotates (pie and radar charts);
// two pointers zoom; taps highlight and double taps zoom in. Releasing a
// fast drag or spin keeps it going with friction until [Chart.Update]
// reports nothing left to do. Subscribe to gesture and highlight events
// with [Chart.On], or bridge them to an ECS with the chartview/ecs
// package.
//
// # Configuration
//
// [Config] holds the feature toggles and thresholds. Distances are in
// density-independent pixels and are scaled by [Config.Density] once, when
// the chart is built. [ParseConfig] reads the same fields from JSON.
//
// # Scripted input
//
// [Chart.InjectTap], [Chart.InjectDrag] and [Chart.InjectPinch] queue
// synthetic pointer input consumed one frame per [Chart.Update]. A JSON
// [ScriptRunner] sequences them for automated interaction tests.
//
// [Ebitengine]: https://ebitengine.org
package chartview

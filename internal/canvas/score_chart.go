// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package canvas

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"math"
	"slices"
	"strings"
	"sync"

	"github.com/wcharczuk/go-chart/v2"

	"github.com/jeranaias/cipherchart/internal/chartstyle"
	"github.com/jeranaias/cipherchart/internal/results"
)

// Chart dimensions used when none are configured.
const (
	DefaultWidth  = 800
	DefaultHeight = 400
)

// =============================================================================
// METRICS
// =============================================================================

// ErrUnknownMetric is returned by ParseMetric.
var ErrUnknownMetric = errors.New("unknown metric")

// Metric selects which result field a ScoreChart plots.
type Metric string

const (
	MetricOverall        Metric = "overall"
	MetricPerformance    Metric = "performance"
	MetricSecurity       Metric = "security"
	MetricKeyManagement  Metric = "key_management"
	MetricIntegrity      Metric = "integrity"
	MetricEncryptionTime Metric = "encryption_time"
	MetricDecryptionTime Metric = "decryption_time"
	MetricMemory         Metric = "memory"
)

var metricOrder = []Metric{
	MetricOverall,
	MetricPerformance,
	MetricSecurity,
	MetricKeyManagement,
	MetricIntegrity,
	MetricEncryptionTime,
	MetricDecryptionTime,
	MetricMemory,
}

// Metrics lists every metric in display order.
func Metrics() []Metric {
	return slices.Clone(metricOrder)
}

// ParseMetric accepts a metric name, case-insensitively. Empty means overall.
func ParseMetric(s string) (Metric, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return MetricOverall, nil
	}
	m := Metric(s)
	if !slices.Contains(metricOrder, m) {
		return "", fmt.Errorf("%w: %q", ErrUnknownMetric, s)
	}
	return m, nil
}

// IsScore reports whether the metric is a normalized [0,1] score.
func (m Metric) IsScore() bool {
	switch m {
	case MetricOverall, MetricPerformance, MetricSecurity, MetricKeyManagement, MetricIntegrity:
		return true
	}
	return false
}

// Title is the human-readable chart title for the metric.
func (m Metric) Title() string {
	switch m {
	case MetricOverall:
		return "Overall Score (S)"
	case MetricPerformance:
		return "Performance (T)"
	case MetricSecurity:
		return "Security (E)"
	case MetricKeyManagement:
		return "Key Management (K)"
	case MetricIntegrity:
		return "Integrity (I)"
	case MetricEncryptionTime:
		return "Encryption Time (ms)"
	case MetricDecryptionTime:
		return "Decryption Time (ms)"
	case MetricMemory:
		return "Memory (MB)"
	}
	return string(m)
}

// Value extracts the metric from r.
func (m Metric) Value(r results.Result) float64 {
	switch m {
	case MetricPerformance:
		return r.Performance
	case MetricSecurity:
		return r.Security
	case MetricKeyManagement:
		return r.KeyManagement
	case MetricIntegrity:
		return r.Integrity
	case MetricEncryptionTime:
		return r.EncryptionTimeMs
	case MetricDecryptionTime:
		return r.DecryptionTimeMs
	case MetricMemory:
		return r.AvgMemoryMB
	default:
		return r.OverallScore
	}
}

// =============================================================================
// COLOR MODE
// =============================================================================

// ErrUnknownColorMode is returned by ParseColorMode.
var ErrUnknownColorMode = errors.New("unknown color mode")

// ColorMode selects how bars are filled.
type ColorMode string

const (
	// ColorByScore fills bars with the score band color.
	ColorByScore ColorMode = "score"
	// ColorByAlgorithm fills bars with the algorithm palette.
	ColorByAlgorithm ColorMode = "algorithm"
)

// ParseColorMode accepts "score" or "algorithm". Empty means score.
func ParseColorMode(s string) (ColorMode, error) {
	switch ColorMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ColorByScore:
		return ColorByScore, nil
	case ColorByAlgorithm:
		return ColorByAlgorithm, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownColorMode, s)
}

// =============================================================================
// SCORE CHART
// =============================================================================

// Option configures a ScoreChart.
type Option func(*ScoreChart)

// WithMetric sets the plotted metric.
func WithMetric(m Metric) Option {
	return func(c *ScoreChart) { c.metric = m }
}

// WithColorMode sets how bars are filled.
func WithColorMode(mode ColorMode) Option {
	return func(c *ScoreChart) { c.colorBy = mode }
}

// WithSize sets the image size in pixels. Non-positive values keep the default.
func WithSize(width, height int) Option {
	return func(c *ScoreChart) {
		if width > 0 {
			c.width = width
		}
		if height > 0 {
			c.height = height
		}
	}
}

// WithTitle overrides the metric title.
func WithTitle(title string) Option {
	return func(c *ScoreChart) { c.title = title }
}

// WithOptions sets the shared chart options. The tooltip precision drives
// the axis labels of score metrics.
func WithOptions(o chartstyle.ResponsiveOptions) Option {
	return func(c *ScoreChart) { c.options = o }
}

// ScoreChart is a bar chart with one bar per algorithm result.
type ScoreChart struct {
	id string

	mu           sync.RWMutex
	theme        chartstyle.Defaults
	themeUpdates int
	results      []results.Result
	metric       Metric
	colorBy      ColorMode
	width        int
	height       int
	title        string
	options      chartstyle.ResponsiveOptions
}

var _ Canvas = (*ScoreChart)(nil)

// NewScoreChart creates a chart for rs under element id.
func NewScoreChart(id string, rs []results.Result, opts ...Option) *ScoreChart {
	c := &ScoreChart{
		id:      id,
		theme:   chartstyle.LightDefaults(),
		results: slices.Clone(rs),
		metric:  MetricOverall,
		colorBy: ColorByScore,
		width:   DefaultWidth,
		height:  DefaultHeight,
		options: chartstyle.DefaultResponsiveOptions(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ID returns the element id.
func (c *ScoreChart) ID() string { return c.id }

// Metric returns the plotted metric.
func (c *ScoreChart) Metric() Metric { return c.metric }

// SetTheme replaces the theme used by the next render.
func (c *ScoreChart) SetTheme(theme chartstyle.Defaults) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.theme = theme
	c.themeUpdates++
}

// Theme returns the current theme.
func (c *ScoreChart) Theme() chartstyle.Defaults {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.theme
}

// ThemeUpdates counts SetTheme calls.
func (c *ScoreChart) ThemeUpdates() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.themeUpdates
}

// SetResults replaces the plotted data.
func (c *ScoreChart) SetResults(rs []results.Result) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.results = slices.Clone(rs)
}

// Render writes the chart as PNG.
func (c *ScoreChart) Render(w io.Writer) error {
	c.mu.RLock()
	theme := c.theme
	rs := c.results
	width, height := c.width, c.height
	graph := c.barChartLocked()
	c.mu.RUnlock()

	if len(rs) == 0 {
		return renderPlaceholder(w, width, height, theme, "No results")
	}
	if err := graph.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("failed to render chart %q: %w", c.id, err)
	}
	return nil
}

// PNG renders the chart into memory.
func (c *ScoreChart) PNG() ([]byte, error) {
	var buf bytes.Buffer
	if err := c.Render(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DataURL renders the chart as a base64 PNG data URL.
func (c *ScoreChart) DataURL() (string, error) {
	data, err := c.PNG()
	if err != nil {
		return "", err
	}
	return DataURL(data), nil
}

// DataURL wraps PNG bytes in a data URL.
func DataURL(png []byte) string {
	return "data:" + PNGMimeType + ";base64," + base64.StdEncoding.EncodeToString(png)
}

// barChartLocked builds the go-chart value. Callers hold c.mu.
func (c *ScoreChart) barChartLocked() chart.BarChart {
	palette := themePalette{theme: c.theme}
	text := palette.TextColor()
	border := palette.AxisStrokeColor()
	fill := palette.CanvasColor()

	title := c.title
	if title == "" {
		title = c.metric.Title()
	}

	bars := make([]chart.Value, len(c.results))
	maxV, minV := 0.0, 0.0
	for i, r := range c.results {
		v := c.metric.Value(r)
		if math.IsNaN(v) || math.IsInf(v, 0) {
			v = 0
		}
		maxV = math.Max(maxV, v)
		minV = math.Min(minV, v)

		fillCSS, strokeCSS := c.barColors(r, v)
		bars[i] = chart.Value{
			Label: r.Algorithm,
			Value: v,
			Style: chart.Style{
				FillColor:   cssColor(fillCSS),
				StrokeColor: cssColor(strokeCSS),
				StrokeWidth: 1,
			},
		}
	}

	decimals := chartstyle.DefaultDecimals
	if !c.metric.IsScore() {
		decimals = 1
	}

	return chart.BarChart{
		Title:        title,
		TitleStyle:   chart.Style{FontColor: text, FontSize: float64(c.options.Plugins.Tooltip.TitleFont.Size)},
		ColorPalette: palette,
		Width:        c.width,
		Height:       c.height,
		BarWidth:     barWidth(c.width, len(bars)),
		Background: chart.Style{
			FillColor: fill,
			Padding:   chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16},
		},
		Canvas: chart.Style{FillColor: fill},
		XAxis: chart.Style{
			FontColor:   text,
			StrokeColor: border,
			FontSize:    float64(c.options.Plugins.Legend.Labels.Font.Size),
		},
		YAxis: chart.YAxis{
			Style: chart.Style{
				FontColor:   text,
				StrokeColor: border,
				FontSize:    float64(c.options.Plugins.Legend.Labels.Font.Size),
			},
			Range: &chart.ContinuousRange{Min: minV, Max: axisMax(c.metric, maxV)},
			ValueFormatter: func(v interface{}) string {
				return chartstyle.FormatValue(v, decimals)
			},
		},
		Bars: bars,
	}
}

// barColors returns the fill and stroke for one bar. Score coloring only
// applies to score metrics; other metrics use the algorithm palette.
func (c *ScoreChart) barColors(r results.Result, v float64) (fill, stroke string) {
	if c.colorBy == ColorByScore && c.metric.IsScore() {
		col := chartstyle.ScoreColor(v)
		return col, col
	}
	return chartstyle.AlgorithmColor(r.Algorithm, chartstyle.KindBackground),
		chartstyle.AlgorithmColor(r.Algorithm, chartstyle.KindBorder)
}

// axisMax keeps score axes on at least [0,1] and leaves headroom otherwise.
func axisMax(m Metric, maxV float64) float64 {
	if m.IsScore() {
		return math.Max(1, maxV)
	}
	if maxV <= 0 {
		return 1
	}
	return maxV * 1.1
}

func barWidth(width, n int) int {
	if n <= 0 {
		return 40
	}
	w := (width - 120) / (n * 2)
	return max(10, min(w, 80))
}

// renderPlaceholder draws msg centered on a blank canvas.
func renderPlaceholder(w io.Writer, width, height int, theme chartstyle.Defaults, msg string) error {
	r, err := chart.PNG(width, height)
	if err != nil {
		return fmt.Errorf("failed to create renderer: %w", err)
	}

	palette := themePalette{theme: theme}
	r.SetFillColor(palette.CanvasColor())
	r.SetStrokeColor(palette.CanvasColor())
	r.SetStrokeWidth(0)
	r.MoveTo(0, 0)
	r.LineTo(width, 0)
	r.LineTo(width, height)
	r.LineTo(0, height)
	r.Close()
	r.Fill()

	font, err := chart.GetDefaultFont()
	if err != nil {
		return fmt.Errorf("failed to load font: %w", err)
	}
	r.SetFont(font)
	r.SetFontColor(palette.TextColor())
	r.SetFontSize(14)
	tb := r.MeasureText(msg)
	r.Text(msg, (width-tb.Width())/2, (height+tb.Height())/2)

	if err := r.Save(w); err != nil {
		return fmt.Errorf("failed to encode placeholder: %w", err)
	}
	return nil
}

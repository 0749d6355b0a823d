// Package chart renders the exploratory accident charts to a terminal.
package chart

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/mattn/go-runewidth"

	"roadsafety/internal/models"
)

// Chart colors, one per severity label.
var (
	FatalColor   = lipgloss.Color("#d7263d")
	SeriousColor = lipgloss.Color("#f4a259")
	SlightColor  = lipgloss.Color("#1b998b")

	titleStyle = lipgloss.NewStyle().Bold(true)
	axisStyle  = lipgloss.NewStyle().Faint(true)
)

var labelColors = map[string]lipgloss.Color{
	models.LabelFatal:   FatalColor,
	models.LabelSerious: SeriousColor,
	models.LabelSlight:  SlightColor,
}

var seriesColors = []asciigraph.AnsiColor{asciigraph.Red, asciigraph.Yellow, asciigraph.Green}

// Spec describes one count chart: accidents counted by X, optionally split by Hue.
type Spec struct {
	Title  string
	XLabel string
	YLabel string
	XOrder []string
	X      func(models.Accident) string
	Hue    func(models.Accident) string
	Hues   []string
}

// SeveritySpec is "Accidents by Severity".
func SeveritySpec() Spec {
	return Spec{
		Title:  "Accidents by Severity",
		XLabel: "Severity",
		YLabel: "Count",
		XOrder: models.SeverityLabels,
		X:      func(a models.Accident) string { return a.SeverityLabel },
	}
}

// TimeBucketSpec is "Accidents by Time Bucket & Severity".
func TimeBucketSpec() Spec {
	return Spec{
		Title:  "Accidents by Time Bucket & Severity",
		XLabel: "Time Bucket",
		YLabel: "Number of Accidents",
		XOrder: models.TimeBuckets,
		X:      func(a models.Accident) string { return a.TimeBucket },
		Hue:    func(a models.Accident) string { return a.SeverityLabel },
		Hues:   models.SeverityLabels,
	}
}

// Renderer writes charts to w.
type Renderer struct {
	w      io.Writer
	width  int
	height int
}

// NewRenderer creates a renderer. Width and height are clamped to 20 and 3.
func NewRenderer(w io.Writer, width, height int) *Renderer {
	if width < 20 {
		width = 20
	}

	if height < 3 {
		height = 3
	}

	return &Renderer{w: w, width: width, height: height}
}

// Render draws spec over accidents: a bar chart without a hue, one line
// series per hue value otherwise.
func (r *Renderer) Render(spec Spec, accidents []models.Accident) error {
	var body string
	if spec.Hue == nil {
		body = r.bars(Count(accidents, spec.X, spec.XOrder), spec.XOrder)
	} else {
		body = r.lines(spec, accidents)
	}

	_, err := fmt.Fprintf(r.w, "%s\n%s\n%s\n%s\n\n",
		titleStyle.Render(spec.Title),
		axisStyle.Render("y: "+spec.YLabel),
		body,
		axisStyle.Render("x: "+spec.XLabel),
	)

	return err
}

// Count tallies accidents per x value in order. Values outside order are ignored.
func Count(accidents []models.Accident, x func(models.Accident) string, order []string) []float64 {
	index := make(map[string]int, len(order))
	for i, v := range order {
		index[v] = i
	}

	counts := make([]float64, len(order))

	for _, a := range accidents {
		if i, ok := index[x(a)]; ok {
			counts[i]++
		}
	}

	return counts
}

func (r *Renderer) bars(values []float64, labels []string) string {
	maxVal := 0.0
	for _, v := range values {
		if v > maxVal {
			maxVal = v
		}
	}

	if maxVal == 0 {
		maxVal = 1
	}

	labelWidth := 0
	for _, l := range labels {
		labelWidth = max(labelWidth, runewidth.StringWidth(l))
	}

	barWidth := max(r.width-labelWidth-10, 10)

	lines := make([]string, 0, len(values))

	for i, v := range values {
		label := labels[i]
		barLen := int(v / maxVal * float64(barWidth))

		bar := strings.Repeat("█", barLen)
		if c, ok := labelColors[label]; ok {
			bar = lipgloss.NewStyle().Foreground(c).Render(bar)
		}

		lines = append(lines, fmt.Sprintf("%s │%s %d", runewidth.FillLeft(label, labelWidth), bar, int(v)))
	}

	return strings.Join(lines, "\n")
}

func (r *Renderer) lines(spec Spec, accidents []models.Accident) string {
	series := make([][]float64, 0, len(spec.Hues))
	legend := make([]string, 0, len(spec.Hues))

	for _, hue := range spec.Hues {
		subset := filter(accidents, func(a models.Accident) bool { return spec.Hue(a) == hue })
		series = append(series, Count(subset, spec.X, spec.XOrder))

		box := "■"
		if c, ok := labelColors[hue]; ok {
			box = lipgloss.NewStyle().Foreground(c).Render(box)
		}

		legend = append(legend, box+" "+hue)
	}

	graph := asciigraph.PlotMany(series,
		asciigraph.Height(r.height),
		asciigraph.Width(r.width),
		asciigraph.LowerBound(0),
		asciigraph.Precision(0),
		asciigraph.SeriesColors(seriesColors[:min(len(series), len(seriesColors))]...),
	)

	return graph + "\n" + r.axis(spec.XOrder) + "\n" + strings.Join(legend, "  ")
}

// axis spreads the x labels under the plot area.
func (r *Renderer) axis(order []string) string {
	if len(order) == 0 {
		return ""
	}

	slot := max(r.width/len(order), 1)

	var sb strings.Builder
	for _, label := range order {
		sb.WriteString(runewidth.FillRight(runewidth.Truncate(label, slot-1, ""), slot))
	}

	return strings.TrimRight(sb.String(), " ")
}

func filter(accidents []models.Accident, keep func(models.Accident) bool) []models.Accident {
	var out []models.Accident

	for _, a := range accidents {
		if keep(a) {
			out = append(out, a)
		}
	}

	return out
}

// Package report renders the colored console summary of one dataset pass.
// Section texts are the Spanish ones the on-site technicians are used to;
// widths are display-cell based so accented names keep the columns aligned.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"incidencies/internal/models"
	"incidencies/internal/stats"
	"incidencies/pkg/textutil"
)

// Column and wrapping widths of the report sections.
const (
	headerWidth      = 80
	priorityColWidth = 12
	typeColWidth     = 30
	locationColWidth = 40
	stateColWidth    = 12

	informantWidth  = 80
	locationWidth   = 60
	typeWidth       = 30
	modelWidth      = 30
	assetCodeWidth  = 30
	descTotalWidth  = 400
	descWrapWidth   = 76
	suggestionsTopN = 3
)

// Options control the report's section sizes and source labeling.
type Options struct {
	SourcePath   string
	TopTypes     int
	TopLocations int
	TopReasons   int
	Latest       int
}

// Renderer writes the console report. Color is handled by the color
// package, which already no-ops when the destination is not a terminal.
type Renderer struct {
	w   io.Writer
	opt Options

	title    *color.Color
	section  *color.Color
	cyan     *color.Color
	blue     *color.Color
	white    *color.Color
	green    *color.Color
	red      *color.Color
	hiRed    *color.Color
	hiYellow *color.Color
	hiGreen  *color.Color
}

// NewRenderer creates a renderer writing to w.
func NewRenderer(w io.Writer, opt Options) *Renderer {
	return &Renderer{
		w:   w,
		opt: opt,

		title:    color.New(color.FgMagenta, color.Bold),
		section:  color.New(color.Bold),
		cyan:     color.New(color.FgCyan),
		blue:     color.New(color.FgBlue),
		white:    color.New(color.FgWhite),
		green:    color.New(color.FgGreen),
		red:      color.New(color.FgRed),
		hiRed:    color.New(color.FgRed, color.Bold),
		hiYellow: color.New(color.FgYellow, color.Bold),
		hiGreen:  color.New(color.FgGreen, color.Bold),
	}
}

// Render writes the full report for one dataset pass.
func (r *Renderer) Render(summary *stats.Summary, items []stats.Validated) {
	r.renderHeader(summary)
	r.renderPriorities(summary)
	r.renderTypes(summary)
	r.renderLocations(summary)
	r.renderOperational(summary)
	r.renderValidation(summary)
	r.renderLatest(items)
	r.renderSuggestions(summary)
}

func (r *Renderer) renderHeader(summary *stats.Summary) {
	fmt.Fprintln(r.w)
	fmt.Fprintln(r.w, r.title.Sprint(textutil.Center("Resumen de Incidencias", headerWidth)))
	fmt.Fprintln(r.w)
	fmt.Fprintf(r.w, "Archivo: %s\n", r.opt.SourcePath)
	fmt.Fprintf(r.w, "Total incidencias: %s\n", r.cyan.Sprintf("%d", summary.Total))
	fmt.Fprintln(r.w)
}

func (r *Renderer) renderPriorities(summary *stats.Summary) {
	fmt.Fprintln(r.w, r.section.Sprint("Incidencias por prioridad:"))

	for _, entry := range summary.ByPriority.MostCommon(0) {
		label := r.priorityColor(entry.Key).Sprint(pad(entry.Key, priorityColWidth))
		fmt.Fprintf(r.w, "  %s  %d\n", label, entry.Count)
	}

	fmt.Fprintln(r.w)
}

func (r *Renderer) renderTypes(summary *stats.Summary) {
	fmt.Fprintf(r.w, "%s\n", r.section.Sprintf("Incidencias por tipo de equipo (top %d):", r.opt.TopTypes))

	for _, entry := range summary.ByType.MostCommon(r.opt.TopTypes) {
		fmt.Fprintf(r.w, "  %s  %d\n", r.blue.Sprint(cell(entry.Key, typeColWidth)), entry.Count)
	}

	fmt.Fprintln(r.w)
}

func (r *Renderer) renderLocations(summary *stats.Summary) {
	fmt.Fprintf(r.w, "%s\n", r.section.Sprintf("Ubicaciones más frecuentes (top %d):", r.opt.TopLocations))

	for _, entry := range summary.ByLocation.MostCommon(r.opt.TopLocations) {
		fmt.Fprintf(r.w, "  %s  %d\n", r.white.Sprint(cell(entry.Key, locationColWidth)), entry.Count)
	}

	fmt.Fprintln(r.w)
}

func (r *Renderer) renderOperational(summary *stats.Summary) {
	fmt.Fprintln(r.w, r.section.Sprint("Estado de funcionamiento:"))

	for _, entry := range summary.ByOperational.Items() {
		label := r.operationalColor(entry.Key).Sprint(pad(entry.Key, stateColWidth))
		fmt.Fprintf(r.w, "  %s  %d\n", label, entry.Count)
	}

	fmt.Fprintln(r.w)
}

func (r *Renderer) renderValidation(summary *stats.Summary) {
	fmt.Fprintln(r.w, r.section.Sprint("Validación de datos:"))
	fmt.Fprintf(r.w, "  %s  %s\n",
		r.green.Sprintf("Correctos: %d", summary.Valid),
		r.red.Sprintf("Erróneos: %d", summary.Invalid),
	)

	if summary.Reasons.Len() > 0 {
		fmt.Fprintln(r.w, "  Motivos más comunes de error:")

		for _, entry := range summary.Reasons.MostCommon(r.opt.TopReasons) {
			fmt.Fprintf(r.w, "    - %s: %d\n", entry.Key, entry.Count)
		}
	}

	fmt.Fprintln(r.w)
}

func (r *Renderer) renderLatest(items []stats.Validated) {
	fmt.Fprintf(r.w, "%s\n", r.section.Sprintf("Últimas incidencias (detallado, top %d):", r.opt.Latest))

	latest := stats.LatestFirst(items)
	if r.opt.Latest < len(latest) {
		latest = latest[:r.opt.Latest]
	}

	for _, item := range latest {
		r.renderIncident(item)
	}

	fmt.Fprintln(r.w)
}

func (r *Renderer) renderIncident(item stats.Validated) {
	rec := item.Record

	priority := rec.Priority
	if priority == "" {
		priority = stats.UnknownLabel
	}

	mark := r.green.Sprint("✔")
	if !item.Verdict.Valid {
		mark = r.red.Sprint("✖")
	}

	headline := fmt.Sprintf("[%s] %s", pad(strings.ToUpper(priority), 6), timestampDisplay(rec))

	fmt.Fprintf(r.w, "\n%s %s\n", r.priorityColor(priority).Sprint(headline), mark)

	email := rec.Email
	if email == "" {
		email = "N/A"
	}

	fmt.Fprintf(r.w, "  Informant: %s  Email: %s\n",
		r.cyan.Sprint(textutil.Shorten(rec.Informant, informantWidth)), email)
	fmt.Fprintf(r.w, "  Ubicació: %s  Tipus: %s\n",
		r.white.Sprint(textutil.Shorten(rec.Location, locationWidth)),
		textutil.Shorten(rec.EquipmentType, typeWidth))
	fmt.Fprintf(r.w, "  Model / Codi: %s / %s\n",
		textutil.Shorten(rec.Model, modelWidth),
		textutil.Shorten(rec.AssetCode, assetCodeWidth))
	fmt.Fprintln(r.w, "  Descripció:")

	for _, line := range textutil.Wrap(textutil.Shorten(rec.Description, descTotalWidth), descWrapWidth) {
		fmt.Fprintf(r.w, "   %s\n", line)
	}

	if !item.Verdict.Valid {
		fmt.Fprintf(r.w, "  %s\n", r.red.Sprintf("  Razones: %s", strings.Join(item.Verdict.Reasons, ", ")))
	}
}

func (r *Renderer) renderSuggestions(summary *stats.Summary) {
	fmt.Fprintln(r.w, r.section.Sprint("Sugerencias rápidas:"))
	fmt.Fprintf(r.w, "  - Incidencias alta: %s -> priorizar revisión hardware/seguridad.\n",
		r.red.Sprintf("%d", summary.HighPriority()))

	var locations []string
	for _, entry := range summary.ByLocation.MostCommon(suggestionsTopN) {
		locations = append(locations, entry.Key)
	}

	fmt.Fprintf(r.w, "  - Top ubicaciones a revisar: %s\n", strings.Join(locations, ", "))
	fmt.Fprintln(r.w)
}

// priorityColor maps a priority label to its display color. Substring
// matching keeps variants like "Alta (urgent)" in the right bucket.
func (r *Renderer) priorityColor(priority string) *color.Color {
	p := strings.ToLower(priority)

	switch {
	case strings.Contains(p, "alta") || strings.Contains(p, "high"):
		return r.hiRed
	case strings.Contains(p, "media") || strings.Contains(p, "med"):
		return r.hiYellow
	case strings.Contains(p, "baixa") || strings.Contains(p, "low"):
		return r.hiGreen
	default:
		return r.cyan
	}
}

// operationalColor maps an operational state to green for yes, red for no
// and cyan for anything else. The checks are case-exact substring matches
// against the form's answer values.
func (r *Renderer) operationalColor(state string) *color.Color {
	switch {
	case strings.Contains(state, "Si") || strings.Contains(state, "si"):
		return r.green
	case strings.Contains(state, "No") || strings.Contains(state, "no"):
		return r.red
	default:
		return r.cyan
	}
}

// timestampDisplay picks the best timestamp text for one incident: the
// parsed value when there is one, then the split date and time columns,
// then the raw text.
func timestampDisplay(rec models.Record) string {
	switch {
	case rec.Parsed != nil:
		return rec.Parsed.Format("2006-01-02 15:04:05")
	case rec.Date != "":
		return strings.TrimSpace(rec.Date + " " + rec.Time)
	case rec.TimestampRaw != "":
		return rec.TimestampRaw
	default:
		return "N/A"
	}
}

// cell truncates a value to the column width, then pads it back out.
func cell(s string, width int) string {
	return pad(runewidth.Truncate(s, width, ""), width)
}

// pad right-pads without ever truncating.
func pad(s string, width int) string {
	return runewidth.FillRight(s, width)
}

package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/mcoot/ponto/internal/config"
	"github.com/mcoot/ponto/internal/model"
	"github.com/mcoot/ponto/internal/ponto"
)

const timeLayout = "02/01/2006 15:04:05"

// Output handles formatting output based on the configured format
type Output struct {
	format string
	out    io.Writer
	err    io.Writer
}

// NewOutput creates a new Output formatter
func NewOutput(format string, out, err io.Writer) *Output {
	return &Output{format: format, out: out, err: err}
}

func (o *Output) json() bool {
	return o.format == config.OutputJSON
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.json() {
		o.printJSON(o.out, data)
		return
	}

	switch v := data.(type) {
	case model.Profile:
		o.printProfile(v)
	case *model.Employee:
		o.printEmployee(v)
	case []model.Employee:
		o.printEmployees(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(o.out, data)
	}
}

// PrintError outputs an error as the message a user should see
func (o *Output) PrintError(err error) {
	msg := ponto.UserMessage(err)
	if o.json() {
		o.printJSON(o.err, map[string]any{
			"error": map[string]string{"message": msg},
		})
		return
	}
	color.New(color.FgRed, color.Bold).Fprintf(o.err, "Error: %s\n", msg)
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.json() {
		o.printJSON(o.out, map[string]string{"message": msg})
		return
	}
	fmt.Fprintln(o.out, msg)
}

// Success outputs a confirmation
func (o *Output) Success(msg string) {
	if o.json() {
		o.printJSON(o.out, map[string]string{"message": msg})
		return
	}
	color.New(color.FgGreen).Fprintf(o.out, "✓ %s\n", msg)
}

// Notice outputs a titled notice on stderr
func (o *Output) Notice(title, msg string) {
	if o.json() {
		o.printJSON(o.err, map[string]any{
			"notice": map[string]string{"title": title, "message": msg},
		})
		return
	}
	color.New(color.FgYellow, color.Bold).Fprintf(o.err, "%s: ", title)
	fmt.Fprintln(o.err, msg)
}

// Hint outputs a suggestion on stderr. Hidden in JSON mode.
func (o *Output) Hint(msg string) {
	if o.json() {
		return
	}
	color.New(color.FgCyan).Fprintln(o.err, msg)
}

func (o *Output) printJSON(w io.Writer, data any) {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printProfile(p model.Profile) {
	fmt.Fprintf(o.out, "ID:    %d\n", p.ID)
	fmt.Fprintf(o.out, "Name:  %s\n", p.Nome)
	fmt.Fprintf(o.out, "Email: %s\n", p.Email)
	fmt.Fprintf(o.out, "Admin: %s\n", yesNo(p.Administrador))
}

func (o *Output) printEmployee(e *model.Employee) {
	fmt.Fprintf(o.out, "ID:    %d\n", e.ID)
	fmt.Fprintf(o.out, "Name:  %s\n", e.Nome)
	fmt.Fprintf(o.out, "Email: %s\n", e.Email)
	fmt.Fprintf(o.out, "Admin: %s\n", yesNo(e.Administrador))

	last, ok := ponto.LastPunch(e)
	if !ok {
		fmt.Fprintln(o.out, "Last punch: none recorded")
		return
	}
	fmt.Fprintf(o.out, "Last punch: %s\n", formatTime(last))

	if len(e.Pontos) > 1 {
		fmt.Fprintf(o.out, "\nPunches (%d):\n", len(e.Pontos))
		for _, p := range e.Pontos {
			fmt.Fprintf(o.out, "  %s\n", formatPunch(p))
		}
	}
}

func (o *Output) printEmployees(list []model.Employee) {
	if len(list) == 0 {
		fmt.Fprintln(o.out, "No employees found.")
		return
	}

	table := tablewriter.NewTable(o.out,
		tablewriter.WithConfig(tablewriter.Config{
			Row: tw.CellConfig{
				Formatting: tw.CellFormatting{AutoWrap: tw.WrapNone},
				Alignment:  tw.CellAlignment{Global: tw.AlignLeft},
			},
			Header: tw.CellConfig{
				Formatting: tw.CellFormatting{AutoFormat: tw.On},
				Alignment:  tw.CellAlignment{Global: tw.AlignLeft},
			},
		}),
		tablewriter.WithRendition(tw.Rendition{
			Borders: tw.BorderNone,
			Settings: tw.Settings{
				Separators: tw.Separators{ShowHeader: tw.Off},
			},
		}),
	)

	rows := make([][]string, 0, len(list))
	for _, e := range list {
		lastPunch := "-"
		if last, ok := ponto.LastPunch(&e); ok {
			lastPunch = formatTime(last)
		}
		rows = append(rows, []string{
			strconv.FormatInt(e.ID, 10),
			e.Nome,
			e.Email,
			yesNo(e.Administrador),
			lastPunch,
		})
	}

	table.Header([]string{"ID", "Name", "Email", "Admin", "Last punch"})
	_ = table.Bulk(rows)
	_ = table.Render()
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func formatPunch(p model.Punch) string {
	if !p.Valid() {
		return p.String()
	}
	return formatTime(p.Time)
}

func formatTime(t time.Time) string {
	return t.Local().Format(timeLayout)
}

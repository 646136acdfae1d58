package main

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"gopkg.in/yaml.v3"

	"github.com/wippyai/aout"
)

// narrowWidth is the terminal width below which the offset and width
// columns are dropped from the text table.
const narrowWidth = 60

type report struct {
	File     string         `json:"file" yaml:"file"`
	Form     string         `json:"form" yaml:"form"`
	Magic    string         `json:"magic" yaml:"magic"`
	Flags    string         `json:"flags" yaml:"flags"`
	CPU      string         `json:"cpu" yaml:"cpu"`
	Header   *aout.Header   `json:"header" yaml:"header"`
	Segments []aout.Segment `json:"segments,omitempty" yaml:"segments,omitempty"`
	Problem  string         `json:"problem,omitempty" yaml:"problem,omitempty"`
}

func newReport(name string, h *aout.Header) *report {
	return &report{
		File:   name,
		Form:   h.Form().String(),
		Magic:  hex.EncodeToString(h.Magic[:]),
		Flags:  h.Flags.String(),
		CPU:    h.CPU.String(),
		Header: h,
	}
}

type renderer struct {
	opts    options
	styles  styles
	pending []*report
}

type styles struct {
	title   lipgloss.Style
	header  lipgloss.Style
	field   lipgloss.Style
	value   lipgloss.Style
	problem lipgloss.Style
	ok      lipgloss.Style
}

func newStyles(color bool) styles {
	if !color {
		plain := lipgloss.NewStyle()
		return styles{plain, plain.Bold(true), plain, plain, plain, plain}
	}
	return styles{
		title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1),
		header:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4")),
		field:   lipgloss.NewStyle().Foreground(lipgloss.Color("#98FB98")),
		value:   lipgloss.NewStyle().Foreground(lipgloss.Color("#87CEEB")),
		problem: lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")),
		ok:      lipgloss.NewStyle().Foreground(lipgloss.Color("#90EE90")),
	}
}

func newRenderer(opts options) (*renderer, error) {
	switch opts.format {
	case "text", "json", "yaml", "hex":
	default:
		return nil, fmt.Errorf("unknown format %q", opts.format)
	}
	return &renderer{opts: opts, styles: newStyles(opts.color)}, nil
}

func (r *renderer) render(w io.Writer, rep *report) error {
	switch r.opts.format {
	case "json":
		r.pending = append(r.pending, rep)
		return nil
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(rep); err != nil {
			return err
		}
		return enc.Close()
	case "hex":
		_, err := fmt.Fprintf(w, "%s:\n%s", rep.File, hex.Dump(rep.Header.Encode()))
		return err
	default:
		_, err := io.WriteString(w, r.text(rep))
		return err
	}
}

// flush writes output that needs every report, such as the JSON array.
func (r *renderer) flush(w io.Writer) error {
	if r.opts.format != "json" {
		return nil
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	out := r.pending
	if out == nil {
		out = []*report{}
	}
	r.pending = nil
	return enc.Encode(out)
}

func (r *renderer) text(rep *report) string {
	s := r.styles
	h := rep.Header
	narrow := r.opts.width > 0 && r.opts.width < narrowWidth

	headers := []string{"offset", "field", "width", "value", "meaning"}
	if narrow {
		headers = []string{"field", "value", "meaning"}
	}

	var rows [][]string
	for _, f := range h.Fields() {
		v := fieldValue(h, f)
		m := fieldMeaning(h, f)
		if narrow {
			rows = append(rows, []string{f.Name, v, m})
			continue
		}
		rows = append(rows, []string{strconv.Itoa(f.Offset), f.Name, strconv.Itoa(f.Width), v, m})
	}

	nameCol := 1
	if narrow {
		nameCol = 0
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			cell := lipgloss.NewStyle().Padding(0, 1)
			switch {
			case row == table.HeaderRow:
				return s.header.Padding(0, 1)
			case col == nameCol:
				return s.field.Padding(0, 1)
			case col == nameCol+1 || (!narrow && col == nameCol+2):
				return s.value.Padding(0, 1)
			}
			return cell
		})

	out := s.title.Render("a.out") + " " + rep.File +
		fmt.Sprintf(" (%s form, %d bytes)\n", rep.Form, h.Size()) +
		t.Render() + "\n"

	if len(rep.Segments) > 0 {
		out += "\n" + s.header.Render("segments") + "\n"
		for _, seg := range rep.Segments {
			out += fmt.Sprintf("  %-7s offset %-8d size %d\n", seg.Name, seg.Offset, seg.Size)
		}
	}

	if r.opts.validate {
		if rep.Problem != "" {
			out += s.problem.Render("invalid: "+rep.Problem) + "\n"
		} else {
			out += s.ok.Render("valid") + "\n"
		}
	}
	return out + "\n"
}

func fieldValue(h *aout.Header, f aout.FieldInfo) string {
	if f.Name == "a_magic" {
		return fmt.Sprintf("%02x %02x", h.Magic[0], h.Magic[1])
	}
	switch f.Width {
	case 1:
		return fmt.Sprintf("%#04x", f.Value)
	case 2:
		return fmt.Sprintf("%#06x", f.Value)
	default:
		return fmt.Sprintf("%#010x", f.Value)
	}
}

func fieldMeaning(h *aout.Header, f aout.FieldInfo) string {
	switch f.Name {
	case "a_magic":
		if aout.IsExec(h.Magic[:]) {
			return "a.out"
		}
		return "not a.out"
	case "a_flags":
		return h.Flags.String()
	case "a_cpu":
		return h.CPU.String()
	case "a_hdrlen":
		return h.Form().String() + " form"
	case "a_unused", "a_version":
		return ""
	case "a_entry", "a_tbase", "a_dbase":
		return "address"
	}
	return strconv.FormatUint(uint64(f.Value), 10) + " bytes"
}

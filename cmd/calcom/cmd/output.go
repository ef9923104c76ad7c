package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"gopkg.in/yaml.v3"

	"github.com/theakshaypant/calcom/internal/core"
)

// outputMode selects how results are printed.
type outputMode string

const (
	outputText outputMode = "text"
	outputJSON outputMode = "json"
	outputYAML outputMode = "yaml"
)

func parseOutputMode(s string, jsonFlag bool) (outputMode, error) {
	if jsonFlag {
		return outputJSON, nil
	}
	switch mode := outputMode(strings.ToLower(strings.TrimSpace(s))); mode {
	case "", outputText:
		return outputText, nil
	case outputJSON, outputYAML:
		return mode, nil
	default:
		return "", &core.ValidationError{Message: "--output must be one of text, json, yaml", Value: s}
	}
}

var (
	accentColor = lipgloss.AdaptiveColor{Light: "#5A56E0", Dark: "#7D79F6"}
	dimColor    = lipgloss.AdaptiveColor{Light: "#8A8A8A", Dark: "#6C6C6C"}

	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(accentColor).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	labelStyle  = lipgloss.NewStyle().Bold(true)
	mutedStyle  = lipgloss.NewStyle().Foreground(dimColor)
	errorStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF5F87"))
)

// printer writes command results in the selected mode.
type printer struct {
	w    io.Writer
	mode outputMode
}

func (p printer) structured() bool {
	return p.mode == outputJSON || p.mode == outputYAML
}

// emit writes v as YAML in yaml mode and as indented JSON otherwise.
func (p printer) emit(v any) error {
	if p.mode == outputYAML {
		return writeYAML(p.w, v)
	}
	return writeJSON(p.w, v)
}

// result prints payload in structured modes and text otherwise.
func (p printer) result(text string, payload any) error {
	if p.structured() {
		return p.emit(payload)
	}
	_, err := fmt.Fprintln(p.w, text)
	return err
}

func (p printer) line(format string, args ...any) {
	fmt.Fprintf(p.w, format+"\n", args...)
}

// table renders rows under headers with lipgloss borders.
func (p printer) table(headers []string, rows [][]string) {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(mutedStyle).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	fmt.Fprintln(p.w, t.Render())
}

func writeJSON(w io.Writer, v any) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding output: %w", err)
	}
	_, err := w.Write(buf.Bytes())
	return err
}

// writeYAML goes through JSON first so that raw API payloads and custom
// marshalers render with the same field names in both modes.
func writeYAML(w io.Writer, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding output: %w", err)
	}
	var generic any
	if err := json.Unmarshal(b, &generic); err != nil {
		return fmt.Errorf("encoding output: %w", err)
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(generic); err != nil {
		return fmt.Errorf("encoding output: %w", err)
	}
	return enc.Close()
}

// errorEnvelope is the structured form of a failed command.
type errorEnvelope struct {
	Error errorBody `json:"error"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details"`
}

// renderError reports err and returns the process exit status.
func renderError(stdout, stderr io.Writer, mode outputMode, err error) int {
	cliErr := core.Classify(err)

	code := 1
	var canceled *core.CanceledError
	if errors.As(err, &canceled) {
		code = 2
	}

	switch mode {
	case outputJSON, outputYAML:
		p := printer{w: stdout, mode: mode}
		if perr := p.emit(errorEnvelope{Error: errorBody{
			Code:    cliErr.Code(),
			Message: cliErr.Error(),
			Details: cliErr.Details(),
		}}); perr != nil {
			fmt.Fprintln(stderr, "Error:", cliErr.Error())
		}
	default:
		fmt.Fprintln(stderr, errorStyle.Render("Error:"), cliErr.Error())
	}
	return code
}

// prettyRaw indents a raw JSON document for text output.
func prettyRaw(raw json.RawMessage) string {
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return string(raw)
	}
	return buf.String()
}

// Package output renders CLI results as tables or JSON.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/nfrund/wabridge/internal/domain"
	"github.com/nfrund/wabridge/internal/topicmgr"
)

// Supported output formats.
const (
	FormatTable = "table"
	FormatJSON  = "json"
)

// CheckFormat rejects anything but table or json.
func CheckFormat(format string) error {
	switch format {
	case FormatTable, FormatJSON:
		return nil
	default:
		return fmt.Errorf("unsupported output format %q, use %q or %q", format, FormatTable, FormatJSON)
	}
}

// JSON writes v as indented JSON.
func JSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func newTable(w io.Writer, header []string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")
	return table
}

// Messages renders the message log.
func Messages(w io.Writer, records []domain.MessageRecord) {
	if len(records) == 0 {
		fmt.Fprintln(w, "No messages")
		return
	}

	table := newTable(w, []string{"Timestamp", "Type", "From", "To", "Text", "ID"})
	for _, r := range records {
		from := r.SenderName
		if from != r.From {
			from = fmt.Sprintf("%s (%s)", r.SenderName, r.From)
		}
		table.Append([]string{
			r.Timestamp,
			string(r.Type),
			from,
			dash(r.To),
			truncate(r.Text, 60),
			r.ID,
		})
	}
	table.Render()
}

// TopicDisplay represents a topic for JSON output.
type TopicDisplay struct {
	Name        string `json:"name"`
	Scope       string `json:"scope"`
	Module      string `json:"module,omitempty"`
	Description string `json:"description"`
	Example     string `json:"example,omitempty"`
}

// Topics renders topics as a table.
func Topics(w io.Writer, topics []topicmgr.Topic) {
	if len(topics) == 0 {
		fmt.Fprintln(w, "No topics found")
		return
	}

	table := newTable(w, []string{"Name", "Scope", "Module", "Description"})
	for _, t := range topics {
		table.Append([]string{t.Name(), string(t.Scope()), dash(t.Module()), truncate(t.Description(), 60)})
	}
	table.Render()
}

// TopicsJSON renders topics as a JSON document with a count.
func TopicsJSON(w io.Writer, topics []topicmgr.Topic) error {
	displays := make([]TopicDisplay, len(topics))
	for i, t := range topics {
		displays[i] = TopicDisplay{
			Name:        t.Name(),
			Scope:       string(t.Scope()),
			Module:      t.Module(),
			Description: t.Description(),
			Example:     t.Example(),
		}
	}
	return JSON(w, struct {
		Topics []TopicDisplay `json:"topics"`
		Count  int            `json:"count"`
	}{Topics: displays, Count: len(displays)})
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// truncate shortens s to maxLen runes, adding "..." if truncated.
func truncate(s string, maxLen int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return "..."
	}
	return string(runes[:maxLen-3]) + "..."
}

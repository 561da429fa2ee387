// Package export renders a task list as structured YAML or JSON documents.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/pablasso/rex/internal/task"
	"gopkg.in/yaml.v3"
)

// Format is an output format.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatYAML, FormatJSON:
		return f, nil
	}
	return "", fmt.Errorf("unsupported export format %q (use yaml or json)", s)
}

// Record is the structured form of one task.
type Record struct {
	Index       int    `yaml:"index" json:"index"`
	Kind        string `yaml:"kind" json:"kind"`
	Description string `yaml:"description" json:"description"`
	Done        bool   `yaml:"done" json:"done"`
	By          string `yaml:"by,omitempty" json:"by,omitempty"`
	From        string `yaml:"from,omitempty" json:"from,omitempty"`
	To          string `yaml:"to,omitempty" json:"to,omitempty"`
}

var kindNames = map[task.Kind]string{
	task.KindTodo:     "todo",
	task.KindDeadline: "deadline",
	task.KindEvent:    "event",
}

// Records converts tasks to records with 1-based indices.
func Records(tasks []task.Task) []Record {
	out := make([]Record, 0, len(tasks))
	for i, t := range tasks {
		r := Record{
			Index:       i + 1,
			Kind:        kindNames[t.Kind()],
			Description: t.Description(),
			Done:        t.IsDone(),
		}
		switch v := t.(type) {
		case *task.Deadline:
			r.By = v.By().String()
		case *task.Event:
			r.From = v.From().String()
			r.To = v.To().String()
		}
		out = append(out, r)
	}
	return out
}

// Write renders tasks to w in the given format.
func Write(w io.Writer, format Format, tasks []task.Task) error {
	doc := struct {
		Tasks []Record `yaml:"tasks" json:"tasks"`
	}{Tasks: Records(tasks)}

	switch format {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
		return enc.Close()
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("failed to encode json: %w", err)
		}
		return nil
	}
	return fmt.Errorf("unsupported export format %q", format)
}

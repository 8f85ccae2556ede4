package main

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

const (
	outputText = "text"
	outputJSON = "json"
	outputYAML = "yaml"
)

func validateOutput(format string) error {
	switch format {
	case outputText, outputJSON, outputYAML:
		return nil
	}
	return fmt.Errorf("unknown output format %q (want text, json or yaml)", format)
}

// render writes v in the selected format; text output is produced by text.
func (o *rootOptions) render(v any, text func(w io.Writer)) error {
	switch o.output {
	case outputJSON:
		enc := json.NewEncoder(o.out)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case outputYAML:
		enc := yaml.NewEncoder(o.out)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	}
	text(o.out)
	return nil
}

// field prints one aligned "label: value" line, skipping empty values.
func field(w io.Writer, label string, value any) {
	s := fmt.Sprint(value)
	if s == "" {
		return
	}
	fmt.Fprintf(w, "%-14s %s\n", label+":", s)
}

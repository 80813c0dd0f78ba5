package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"sharecut/internal/services"
)

// writeJSON encodes v as indented JSON to the command's stdout.
func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// writeYAML encodes v as YAML to the command's stdout.
func writeYAML(cmd *cobra.Command, v any) error {
	enc := yaml.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

// writeStructured dispatches on a --format value.
func writeStructured(cmd *cobra.Command, format string, v any) error {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json", "":
		return writeJSON(cmd, v)
	case "yaml", "yml":
		return writeYAML(cmd, v)
	default:
		return services.Wrap(services.ErrConfiguration, "cli", "format", fmt.Sprintf("unsupported format %q (choose json or yaml)", format), nil)
	}
}

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/searchfind/screening-engine/internal/config"
	"github.com/searchfind/screening-engine/internal/logging"
	"github.com/searchfind/screening-engine/internal/observability"
	"github.com/searchfind/screening-engine/internal/schemas"
	"github.com/searchfind/screening-engine/internal/service"
)

const (
	formatJSON = "json"
	formatYAML = "yaml"
	formatText = "text"
)

// loadConfig reads --config and applies the logging flag overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, err
	}
	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}
	if logFormat != "" {
		cfg.Logging.Format = logFormat
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newRuntime builds the service for a one-shot command. The caller must
// Close the runtime.
func newRuntime(ctx context.Context) (*service.Runtime, logging.Logger, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	logger := logging.New(cfg.Logging.Level, cfg.Logging.Format)
	rt, err := service.Build(ctx, cfg, logger, prometheus.NewRegistry())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize service: %w", err)
	}
	return rt, logger, nil
}

// readJSONFile validates the file against the named schema and decodes it
// into dst.
func readJSONFile(path, schema string, dst interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if !json.Valid(data) {
		return fmt.Errorf("%s is not valid JSON", path)
	}
	if err := schemas.Validate(schema, data); err != nil {
		var validationErr *schemas.ValidationError
		if errors.As(err, &validationErr) {
			return fmt.Errorf("%s: %w", path, err)
		}
		return fmt.Errorf("failed to validate %s: %w", path, err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return nil
}

// readDocument extracts the text of a .txt, .md, .html or .docx file.
func readDocument(ctx context.Context, svc *service.Service, path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	doc, err := svc.ParseDocument(ctx, data, filepath.Base(path))
	if err != nil {
		return "", fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return doc.Text, nil
}

// writeOutput renders v in the --format encoding to --out or the command's
// stdout.
func writeOutput(cmd *cobra.Command, v interface{}) error {
	var buf bytes.Buffer
	if err := render(&buf, v, outputFormat); err != nil {
		return err
	}

	if outputFile == "" {
		_, err := io.Copy(cmd.OutOrStdout(), &buf)
		return err
	}
	if err := os.WriteFile(outputFile, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Output: %s\n", outputFile)
	return nil
}

func render(w io.Writer, v interface{}, format string) error {
	switch format {
	case formatJSON:
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		_, err = w.Write(append(data, '\n'))
		return err
	case formatYAML:
		data, err := toYAML(v)
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	case formatText:
		if observability.NewPrinter(w).Print(v) {
			return nil
		}
		return render(w, v, formatJSON)
	default:
		return fmt.Errorf("unsupported output format %q (use json, yaml or text)", format)
	}
}

// toYAML goes through JSON so that field names and ordering match the JSON
// output for types without yaml tags.
func toYAML(v interface{}) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal JSON: %w", err)
	}
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, fmt.Errorf("failed to convert to YAML: %w", err)
	}
	blockStyle(&node)
	out, err := yaml.Marshal(&node)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal YAML: %w", err)
	}
	return out, nil
}

// blockStyle clears the flow and quoting styles the JSON input left on every
// node. The encoder still quotes strings that would otherwise change type.
func blockStyle(n *yaml.Node) {
	n.Style = 0
	for _, child := range n.Content {
		blockStyle(child)
	}
}

package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"

	"puresearch/bfhl-api/common/classifier"
	"puresearch/bfhl-api/common/models"
)

func newClassifyCmd() *cobra.Command {
	var (
		file   string
		output string
	)

	cmd := &cobra.Command{
		Use:   "classify",
		Short: "Classify a JSON array read from a file or stdin",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			in := cmd.InOrStdin()
			if file != "" && file != "-" {
				f, err := os.Open(file)
				if err != nil {
					return fmt.Errorf("open input: %w", err)
				}
				defer f.Close()
				in = f
			}
			return classifyStream(in, cmd.OutOrStdout(), output)
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "input file, stdin when empty or -")
	cmd.Flags().StringVarP(&output, "output", "o", "json", "output format: json or yaml")
	return cmd
}

func classifyStream(in io.Reader, out io.Writer, format string) error {
	data, err := io.ReadAll(in)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	tokens, err := models.ParseTokens(data)
	if err != nil {
		if errors.Is(err, models.ErrNotArray) {
			return fmt.Errorf("input must be a JSON array: %w", err)
		}
		return err
	}

	result := classifier.Classify(tokens)

	var rendered []byte
	switch format {
	case "json":
		rendered, err = json.MarshalIndent(result, "", "  ")
		rendered = append(rendered, '\n')
	case "yaml", "yml":
		rendered, err = yaml.Marshal(result)
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
	if err != nil {
		return fmt.Errorf("render result: %w", err)
	}

	_, err = out.Write(rendered)
	return err
}

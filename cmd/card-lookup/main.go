package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"sort"
	"strings"

	mcpgo "github.com/mark3labs/mcp-go/mcp"
	"github.com/spf13/cobra"
	"sigs.k8s.io/yaml"

	"github.com/roivaz/tcg-mcp/internal/config"
	"github.com/roivaz/tcg-mcp/internal/logging"
	"github.com/roivaz/tcg-mcp/internal/mcp"
	"github.com/roivaz/tcg-mcp/internal/mcp/tools"
)

func main() {
	root := &cobra.Command{
		Use:          "card-lookup",
		Short:        "Call the card data and pricing tools from the command line",
		SilenceUsage: true,
	}
	root.PersistentFlags().String("log-level", "error", "Log level: debug, info, warn, error")
	root.PersistentFlags().String("env-file", ".env", "Path of the .env file to load")
	root.PersistentFlags().String("tcgdex-language", "en", "TCGdex card language")
	root.PersistentFlags().String("justtcg-api-key", "", "JustTCG API key; pricing tools are disabled without it")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List the tools available with the current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			adapters := mcp.DefaultConfig(cliLogger()).ToolAdapters
			definitions := mcp.ToolDefinitions()
			names := make([]string, 0, len(adapters))
			for name := range adapters {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				fmt.Fprintf(cmd.OutOrStdout(), "%-32s %s\n", name, definitions[name].Description)
			}
			return nil
		},
	}

	var rawArgs, output string
	callCmd := &cobra.Command{
		Use:   "call <tool>",
		Short: "Invoke one tool and print its result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if output != "json" && output != "yaml" {
				return fmt.Errorf("--output must be json or yaml")
			}
			arguments := map[string]any{}
			if strings.TrimSpace(rawArgs) != "" {
				if err := json.Unmarshal([]byte(rawArgs), &arguments); err != nil {
					return fmt.Errorf("parse --args: %w", err)
				}
			}

			cfg := mcp.DefaultConfig(cliLogger())
			adapter, ok := cfg.ToolAdapters[args[0]]
			if !ok {
				return fmt.Errorf("unknown or disabled tool %q", args[0])
			}
			result, err := callTool(cmd.Context(), args[0], adapter, arguments)
			if err != nil {
				return err
			}
			return writeResult(cmd.OutOrStdout(), result, output)
		},
	}
	callCmd.Flags().StringVar(&rawArgs, "args", "", "Tool arguments as a JSON object")
	callCmd.Flags().StringVarP(&output, "output", "o", "json", "Output format: json or yaml")

	root.AddCommand(listCmd, callCmd)

	config.Init(root)

	if err := root.Execute(); err != nil {
		log.Fatalf("card-lookup: %v", err)
	}
}

func cliLogger() logging.Logger {
	return logging.New(logging.NewLogr(config.LogLevel()))
}

func callTool(ctx context.Context, name string, adapter tools.ToolAdapter, arguments map[string]any) (string, error) {
	req := mcpgo.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = arguments

	result, err := adapter.ToolAdapter(ctx, req)
	if err != nil {
		return "", err
	}
	text := resultText(result)
	if result.IsError {
		return "", fmt.Errorf("%s: %s", name, text)
	}
	return text, nil
}

func resultText(result *mcpgo.CallToolResult) string {
	var b strings.Builder
	for _, c := range result.Content {
		if t, ok := c.(mcpgo.TextContent); ok {
			b.WriteString(t.Text)
		}
	}
	return b.String()
}

func writeResult(w io.Writer, result, format string) error {
	if format == "yaml" {
		out, err := yaml.JSONToYAML([]byte(result))
		if err != nil {
			return fmt.Errorf("convert to yaml: %w", err)
		}
		_, err = w.Write(out)
		return err
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, []byte(result), "", "  "); err != nil {
		return fmt.Errorf("format json: %w", err)
	}
	buf.WriteByte('\n')
	_, err := buf.WriteTo(w)
	return err
}

package cli

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/ironsheep/imgmode/internal/imaging"
	"github.com/ironsheep/imgmode/internal/server"
)

func (a *App) newInfoCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "info <image>",
		Short: "Print the dimensions, format and pixel mode of an image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if output != "json" && output != "yaml" {
				return fmt.Errorf("invalid output %q (want json or yaml)", output)
			}

			info, err := imaging.Inspect(args[0])
			if err != nil {
				return err
			}

			if output == "yaml" {
				data, err := yaml.Marshal(info)
				if err != nil {
					return fmt.Errorf("marshaling yaml: %w", err)
				}
				_, err = a.stdout.Write(data)
				return err
			}
			enc := json.NewEncoder(a.stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(info)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "json", "output format: json or yaml")
	return cmd
}

func (a *App) newModesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "modes",
		Short: "List the supported pixel modes and the formats that can store them",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tw := tabwriter.NewWriter(a.stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "MODE\tCHANNELS\tBITS\tALPHA\tFORMATS")
			for _, m := range imaging.Modes() {
				spec := m.Spec()
				fmt.Fprintf(tw, "%s\t%d\t%d\t%t\t%s\n",
					spec.Name, spec.Channels, spec.Bits, spec.HasAlpha, formatNames(imaging.FormatsFor(m)))
			}
			return tw.Flush()
		},
	}
}

func (a *App) newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the conversion tools over MCP (JSON-RPC on stdin/stdout)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a.log.Info("MCP server starting")
			srv := server.New(a.build.Version, a.log, a.cfg.convertOptions(a.log)...)
			return srv.Run(cmd.InOrStdin(), a.stdout)
		},
	}
}

func (a *App) newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprint(a.stdout, a.versionText())
		},
	}
}

func (a *App) versionText() string {
	return fmt.Sprintf("imgmode %s\n  Build time: %s\n  Git commit: %s\n",
		a.build.Version, a.build.BuildTime, a.build.GitCommit)
}

func formatNames(formats []imaging.Format) string {
	if len(formats) == 0 {
		return "-"
	}
	names := make([]string, len(formats))
	for i, f := range formats {
		names[i] = f.Name()
	}
	return strings.Join(names, ",")
}

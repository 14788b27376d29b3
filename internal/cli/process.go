package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/yumyai/admixmap/pkg/handler/request"
	"github.com/yumyai/admixmap/pkg/model"
)

func newProcessCommand() *cobra.Command {
	var (
		calculator string
		mode       string
		samples    bool
	)

	cmd := &cobra.Command{
		Use:   "process [file]",
		Short: "Process admixture data from a file or stdin and print JSON",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := readInput(cmd, args)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")

			if samples {
				set, err := model.ParseSamples(raw)
				if err != nil {
					return err
				}
				return enc.Encode(model.SummarizeSamples(set))
			}

			if mode != "" {
				if _, ok := model.NewParseMode(mode); !ok {
					return fmt.Errorf("unknown parse mode %q", mode)
				}
				cfg.ParseMode = mode
			}

			proc, _, err := buildProcessor(cmd.Context(), nil)
			if err != nil {
				return err
			}

			result, err := proc.Process(cmd.Context(), raw, request.NormalizeCalculator(calculator))
			if err != nil {
				return err
			}
			return enc.Encode(result)
		},
	}

	cmd.Flags().StringVar(&calculator, "calculator", "", "calculator id, detected from the line count when empty")
	cmd.Flags().StringVar(&mode, "mode", "", "parse mode: lenient or strict (overrides config)")
	cmd.Flags().BoolVar(&samples, "samples", false, "input is a multi-individual table")
	return cmd
}

func readInput(cmd *cobra.Command, args []string) (string, error) {
	var r io.Reader = cmd.InOrStdin()
	if len(args) == 1 && args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return "", err
		}
		defer f.Close()
		r = f
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func newModelsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "models",
		Short: "List registered calculators",
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := loadRegistry(cmd.Context())
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tCOMPONENTS\tMAPPED\tGEOGRAPHY\tNAME")
			for _, m := range reg.Models() {
				info := request.NewModelInfo(m)
				fmt.Fprintf(tw, "%s\t%d\t%d\t%s\t%s\n", info.ID, info.ComponentCount, len(info.Components), m.GeographyFile, info.Name)
			}
			return tw.Flush()
		},
	}
}

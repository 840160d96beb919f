package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/primetree/pkg/errors"
	"github.com/matzehuels/primetree/pkg/prime"
)

// factorRow is one line of factor output.
type factorRow struct {
	Value   int            `json:"value"`
	Prime   bool           `json:"prime"`
	Factors []prime.Factor `json:"factors"`
}

// factorCommand creates the factor command, which prints the
// factorizations shown in node tooltips.
func (c *CLI) factorCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "factor <n>...",
		Short: "Print the prime factorization of integers",
		Example: `  primetree factor 12 97 360
  primetree factor --json 1024`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, err := factorRows(args)
			if err != nil {
				return err
			}
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(rows)
			}
			return writeFactorTable(cmd.OutOrStdout(), rows)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of a table")

	return cmd
}

func factorRows(args []string) ([]factorRow, error) {
	oracle := prime.NewOracle()
	rows := make([]factorRow, 0, len(args))
	for _, arg := range args {
		n, err := strconv.Atoi(arg)
		if err != nil || n < 0 {
			return nil, errors.New(errors.ErrCodeInvalidInput, "%q is not a non-negative integer", arg)
		}
		rows = append(rows, factorRow{Value: n, Prime: oracle.IsPrime(n), Factors: prime.Factorize(n)})
	}
	return rows, nil
}

func writeFactorTable(w io.Writer, rows []factorRow) error {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	cells := make([][]string, len(rows))
	for i, r := range rows {
		kind := "composite"
		if r.Prime {
			kind = "prime"
		}
		parts := make([]string, len(r.Factors))
		for j, f := range r.Factors {
			parts[j] = f.String()
		}
		cells[i] = []string{strconv.Itoa(r.Value), kind, strings.Join(parts, " × ")}
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("n", "kind", "factorization").
		Rows(cells...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			base := lipgloss.NewStyle().Padding(0, 1)
			if col == 1 && rows[row].Prime {
				return base.Foreground(colorPrime)
			}
			return base
		})

	_, err := fmt.Fprintln(w, t.Render())
	return err
}

package cli

import (
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/text/cases"

	service "github.com/okian/benchboard/internal/app"
	"github.com/okian/benchboard/internal/domain/types"
	"github.com/okian/benchboard/pkg/metrics"
)

func newAccuracyCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "accuracy",
		Short: "Pass@1 leaderboard for the window",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			svc, err := o.service(ctx)
			if err != nil {
				return err
			}
			defer svc.Stop()

			rows, err := svc.AccuracyLeaderboard(ctx, o.query(0))
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), o.out, rows, accuracyTable(rows))
		},
	}
}

func accuracyTable(rows []types.AccuracyRow) *table {
	t := &table{}
	if len(rows) == 0 {
		t.header = hidden(types.AccuracyFieldNames(types.SchemaStandard))
		return t
	}
	t.header = hidden(rows[0].FieldNames())
	for _, r := range rows {
		cells := []string{rankCell(r.Standing), r.Model, scoreCell(r.Pass1)}
		if r.Schema == types.SchemaCOT {
			cells = append(cells, scoreCell(r.Pass1NoCOT))
		} else {
			cells = append(cells, scoreCell(r.Easy), scoreCell(r.Medium), scoreCell(r.Hard))
		}
		t.add(r.Contaminated, cells...)
	}
	return t
}

// hidden drops the fields that are not shown as columns.
func hidden(fields []string) []string {
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if f == types.FieldCutoff || f == types.FieldContaminated {
			continue
		}
		out = append(out, f)
	}
	return out
}

func newEloCmd(o *options) *cobra.Command {
	var k float64
	cmd := &cobra.Command{
		Use:   "elo",
		Short: "ELO leaderboard for the window",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			svc, err := o.service(ctx)
			if err != nil {
				return err
			}
			defer svc.Stop()

			rows, err := svc.EloLeaderboard(ctx, o.query(k))
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), o.out, rows, eloTable(rows, o.cfg.EloTopics))
		},
	}
	cmd.Flags().Float64Var(&k, "k", 0, "ELO update step (default from config)")
	return cmd
}

func eloTable(rows []types.EloRow, topics []string) *table {
	t := &table{header: hidden(types.EloFieldNames(topics))}
	for _, r := range rows {
		cells := []string{rankCell(r.Standing), r.Model, scoreCell(r.ELO)}
		for _, ts := range r.Topics {
			cells = append(cells, optionalCell(ts.Elo))
		}
		t.add(r.Contaminated, cells...)
	}
	return t
}

func newWinratesCmd(o *options) *cobra.Command {
	var k float64
	cmd := &cobra.Command{
		Use:   "winrates",
		Short: "Pairwise win rates for the window",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			svc, err := o.service(ctx)
			if err != nil {
				return err
			}
			defer svc.Stop()

			res, err := svc.Winrates(ctx, o.query(k))
			if err != nil {
				return err
			}
			t := &table{header: []string{"Model", "Opponent", "Winrate", "Matches"}}
			for _, e := range res.Winrates {
				t.add(false, e.Model, e.Opponent, scoreCell(e.Winrate), countCell(e.Matches))
			}
			return render(cmd.OutOrStdout(), o.out, res, t)
		},
	}
	cmd.Flags().Float64Var(&k, "k", 0, "ELO update step (default from config)")
	return cmd
}

func newMarksCmd(o *options) *cobra.Command {
	var source string
	cmd := &cobra.Command{
		Use:   "marks",
		Short: "Timeline marks from release dates or record timestamps",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			svc, err := o.service(ctx)
			if err != nil {
				return err
			}
			defer svc.Stop()

			marks, err := svc.Marks(ctx, normalize(source))
			if err != nil {
				return err
			}
			t := &table{header: []string{"Value", "Label"}}
			for _, m := range marks {
				t.add(false, printer.Sprintf("%d", m.Value), m.Label)
			}
			return render(cmd.OutOrStdout(), o.out, marks, t)
		},
	}
	cmd.Flags().StringVar(&source, "source", service.SourceModels, "mark source (models, timestamps)")
	return cmd
}

func newColumnsCmd(o *options) *cobra.Command {
	var kind string
	cmd := &cobra.Command{
		Use:   "columns",
		Short: "Column descriptors of a leaderboard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			svc, err := o.service(ctx)
			if err != nil {
				return err
			}
			defer svc.Stop()

			cols, err := svc.Columns(ctx, normalize(kind))
			if err != nil {
				return err
			}
			t := &table{header: []string{"Field", "Pinned", "Sort", "Renderer", "Header Tooltip"}}
			for _, c := range cols {
				pinned := "no"
				if c.SuppressMovable {
					pinned = "yes"
				}
				t.add(false, c.Field, pinned, dash(c.Sort), dash(c.CellRenderer), dash(c.HeaderTooltip))
			}
			return render(cmd.OutOrStdout(), o.out, cols, t)
		},
	}
	cmd.Flags().StringVar(&kind, "kind", metrics.BoardAccuracy, "leaderboard kind (accuracy, elo)")
	return cmd
}

func normalize(s string) string {
	return cases.Fold().String(strings.TrimSpace(s))
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

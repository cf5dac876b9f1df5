package main

import (
	"fmt"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jask/dualpick/internal/catalog"
	"github.com/jask/dualpick/internal/database/repository"
	"github.com/jask/dualpick/internal/sample"
)

var importCmd = &cobra.Command{
	Use:   "import <file.yaml>",
	Short: "Store an option-set file in the database",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		s, err := catalog.Load(args[0])
		if err != nil {
			return err
		}
		db, err := openDB(ctx)
		if err != nil {
			return err
		}
		defer db.Close()

		set, selected := catalog.ToRepository(s)
		if err := repository.NewOptionSetRepo(db).Upsert(ctx, set); err != nil {
			return err
		}
		if err := repository.NewSelectionRepo(db).Write(ctx, set.Name, selected); err != nil {
			return err
		}
		logger.Info("option set imported", zap.String("set", set.Name), zap.Int("options", len(set.Options)))
		fmt.Fprintf(cmd.OutOrStdout(), "imported %s (%d options, %d selected)\n", set.Name, len(set.Options), len(selected))
		return nil
	},
}

var exportCmd = &cobra.Command{
	Use:   "export <set> <file.yaml>",
	Short: "Write a stored option set and its selection to a file",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		db, err := openDB(ctx)
		if err != nil {
			return err
		}
		defer db.Close()

		set, err := repository.NewOptionSetRepo(db).Get(ctx, args[0])
		if err != nil {
			return err
		}
		selected, err := repository.NewSelectionRepo(db).Read(ctx, set.Name)
		if err != nil {
			return err
		}
		if err := catalog.Save(args[1], catalog.FromRepository(set, selected)); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "exported %s to %s\n", set.Name, args[1])
		return nil
	},
}

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List stored option sets",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		db, err := openDB(ctx)
		if err != nil {
			return err
		}
		defer db.Close()

		sets, err := repository.NewOptionSetRepo(db).List(ctx)
		if err != nil {
			return err
		}
		var data [][]string
		for _, s := range sets {
			data = append(data, []string{
				s.Name,
				s.Title,
				strconv.Itoa(s.Options),
				strconv.Itoa(s.Selected),
				s.CreatedAt.Format("2006-01-02 15:04"),
			})
		}

		table := tablewriter.NewWriter(cmd.OutOrStdout())
		table.SetHeader([]string{"NAME", "TITLE", "OPTIONS", "SELECTED", "CREATED"})
		table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
		table.SetAlignment(tablewriter.ALIGN_LEFT)
		table.SetHeaderLine(false)
		table.SetBorder(false)
		table.SetNoWhiteSpace(true)
		table.SetTablePadding("    ")
		table.AppendBulk(data)
		table.Render()
		return nil
	},
}

var (
	generateCount int
	generateSeed  uint64
)

var generateCmd = &cobra.Command{
	Use:   "generate <set>",
	Short: "Store a synthetic option set for demos and load tests",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if generateCount <= 0 {
			return fmt.Errorf("--count must be positive")
		}
		ctx := cmd.Context()
		db, err := openDB(ctx)
		if err != nil {
			return err
		}
		defer db.Close()

		set, selected := catalog.ToRepository(sample.Set(args[0], generateCount, generateSeed))
		if err := repository.NewOptionSetRepo(db).Upsert(ctx, set); err != nil {
			return err
		}
		if err := repository.NewSelectionRepo(db).Write(ctx, set.Name, selected); err != nil {
			return err
		}
		logger.Info("option set generated", zap.String("set", set.Name), zap.Int("options", len(set.Options)))
		fmt.Fprintf(cmd.OutOrStdout(), "generated %s (%d options, %d selected)\n", set.Name, len(set.Options), len(selected))
		return nil
	},
}

func init() {
	generateCmd.Flags().IntVarP(&generateCount, "count", "n", 500, "number of options")
	generateCmd.Flags().Uint64Var(&generateSeed, "seed", 1, "random seed")
}

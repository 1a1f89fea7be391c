package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	rebalanceMenuID         int64
	rebalanceCategoriesOnly bool
)

var rebalanceCmd = &cobra.Command{
	Use:   "rebalance",
	Short: "Renumerar las posiciones de un menú",
	Long: `Rebalance reasigna posiciones equiespaciadas a las categorías del menú y a los
ítems de cada categoría, conservando el orden. Los grupos ya canónicos no se reescriben.

Example:
  menuctl rebalance --menu 12
  menuctl rebalance --menu 12 --categories-only`,
	Args: cobra.NoArgs,
	RunE: runRebalance,
}

func init() {
	rebalanceCmd.Flags().Int64Var(&rebalanceMenuID, "menu", 0, "id del menú (required)")
	rebalanceCmd.Flags().BoolVar(&rebalanceCategoriesOnly, "categories-only", false, "no tocar los ítems")
	_ = rebalanceCmd.MarkFlagRequired("menu")
}

func runRebalance(cmd *cobra.Command, args []string) error {
	summary, err := maintenanceUC.RebalanceMenu(cmd.Context(), rebalanceMenuID, rebalanceCategoriesOnly)
	if err != nil {
		return fmt.Errorf("rebalance: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "menú %d: %d categorías y %d grupos de ítems renumerados\n",
		summary.MenuID, summary.Categories, summary.ItemGroups)
	return nil
}

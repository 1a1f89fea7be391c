package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	importUserID int64
	importMenuID int64
)

var importCmd = &cobra.Command{
	Use:   "import <file.csv>",
	Short: "Importar categorías e ítems de un CSV a un menú",
	Long: `Import carga el CSV en una sola transacción, con las mismas reglas que
POST /api/menus/:id/import-csv, e imprime el resumen en JSON.

Example:
  menuctl import --user 3 --menu 12 carta.csv`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	importCmd.Flags().Int64Var(&importUserID, "user", 0, "id del usuario dueño del menú (required)")
	importCmd.Flags().Int64Var(&importMenuID, "menu", 0, "id del menú destino (required)")
	_ = importCmd.MarkFlagRequired("user")
	_ = importCmd.MarkFlagRequired("menu")
}

func runImport(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()

	summary, err := importUC.Import(cmd.Context(), importUserID, importMenuID, f)
	if err != nil {
		return fmt.Errorf("import: %w", err)
	}
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(summary)
}

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"raja-digital/internal/receipt"
)

func newReceiptCmd() *cobra.Command {
	var outDir string

	cmd := &cobra.Command{
		Use:   "receipt <transaction.json>",
		Short: "Render a transaction to a printable .html page and an ESC/POS .bin stream",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			var tx receipt.Transaction
			if err := json.Unmarshal(raw, &tx); err != nil {
				return fmt.Errorf("decode %s: %w", args[0], err)
			}

			htmlPath, binPath, err := writeReceipt(&tx, outDir)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\n%s\n", htmlPath, binPath)
			return nil
		},
	}
	cmd.Flags().StringVarP(&outDir, "out", "o", ".", "output directory")
	return cmd
}

func writeReceipt(tx *receipt.Transaction, outDir string) (htmlPath, binPath string, err error) {
	r, err := receipt.Render(tx)
	if err != nil {
		return "", "", err
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", "", err
	}

	htmlPath = filepath.Join(outDir, "SIJ_"+tx.TransactionID+".html")
	if err := os.WriteFile(htmlPath, []byte(r.HTML), 0o644); err != nil {
		return "", "", err
	}
	binPath = filepath.Join(outDir, receipt.FileName(tx.TransactionID))
	if err := os.WriteFile(binPath, r.Thermal, 0o644); err != nil {
		return "", "", err
	}
	return htmlPath, binPath, nil
}

package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gabrielerendina/simulator-poste-sub000/internal/export"
	"github.com/gabrielerendina/simulator-poste-sub000/internal/verify"
)

var (
	batchReqFilter string
	batchMaxFiles  int
	batchOut       string
)

var batchCmd = &cobra.Command{
	Use:   "batch <dir>",
	Short: "Verify every certificate document under a folder",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger()
		cfg, err := loadConfig(logger)
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		verifier, cleanup, err := buildVerifier(ctx, cfg, logger)
		if err != nil {
			return err
		}
		defer cleanup()

		res := verifier.VerifyFolder(ctx, args[0], verify.BatchOptions{
			ReqFilter: batchReqFilter,
			MaxFiles:  batchMaxFiles,
		})
		if !res.Success {
			return fmt.Errorf("%s", res.Error)
		}

		out := batchOut
		if out == "" {
			out = cfg.Export.OutPath
		}
		if out != "" {
			xlsx, err := export.NewService(logger).BatchXLSX(res)
			if err != nil {
				return fmt.Errorf("export: %w", err)
			}
			if err := os.WriteFile(out, xlsx, 0o644); err != nil {
				return fmt.Errorf("write report: %w", err)
			}
			logger.Info("report written", "path", out)
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(res.Summary)
	},
}

func init() {
	batchCmd.Flags().StringVar(&batchReqFilter, "req", "", "keep only results for this requirement code")
	batchCmd.Flags().IntVar(&batchMaxFiles, "max-files", 0, "process at most this many files (0 = all)")
	batchCmd.Flags().StringVar(&batchOut, "out", "", "write an XLSX report to this path")
	rootCmd.AddCommand(batchCmd)
}

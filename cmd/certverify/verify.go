package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gabrielerendina/simulator-poste-sub000/internal/common"
)

var verifyCmd = &cobra.Command{
	Use:   "verify <file>",
	Short: "Verify a single certificate document",
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

		if cfg.OCR.Timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, cfg.OCR.Timeout)
			defer cancel()
		}

		res := verifier.VerifyCertificate(ctx, args[0])
		out, err := json.MarshalIndent(res, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(os.Stdout, string(out))
		return nil
	},
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Probe the OCR toolchain and report availability",
	RunE: func(cmd *cobra.Command, _ []string) error {
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

		if verifier.CheckAvailable(ctx) {
			fmt.Println("ocr toolchain available")
			return nil
		}
		return common.ErrOCRUnavailable
	},
}

func init() {
	rootCmd.AddCommand(verifyCmd)
	rootCmd.AddCommand(checkCmd)
}

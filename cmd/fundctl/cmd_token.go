package main

import (
	"fmt"

	"github.com/SscSPs/class_fund_app/internal/platform/config"
	"github.com/SscSPs/class_fund_app/internal/utils"
	"github.com/spf13/cobra"
)

func runIssueToken(cmd *cobra.Command, _ []string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	token, err := utils.IssueSessionToken(userHandle, cfg.JWTSecret, cfg.JWTIssuer, tokenTTL)
	if err != nil {
		return fmt.Errorf("signing token: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), token)
	return nil
}

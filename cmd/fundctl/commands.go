package main

import (
	"time"

	"github.com/spf13/cobra"
)

var (
	boxID      string
	boxName    string
	boxBalance string
	verbose    bool
	userHandle string
	tokenTTL   time.Duration

	rootCmd = &cobra.Command{
		Use:   "fundctl",
		Short: "Manage the boxes of a class fund from the terminal",
		Long: `fundctl opens the box storage configured for the backend
(STORE_DRIVER and friends) and works on the same collection.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	boxesCmd = &cobra.Command{
		Use:   "boxes",
		Short: "List, add and edit boxes",
	}
	listBoxesCmd = &cobra.Command{
		Use:   "list",
		Short: "List all boxes in insertion order",
		Args:  cobra.NoArgs,
		RunE:  runListBoxes, // Defined in cmd_boxes.go
	}
	addBoxCmd = &cobra.Command{
		Use:   "add",
		Short: "Add a new box",
		Args:  cobra.NoArgs,
		RunE:  runAddBox,
	}
	editBoxCmd = &cobra.Command{
		Use:   "edit [box id]",
		Short: "Replace the name and balance of a box",
		Args:  cobra.ExactArgs(1),
		RunE:  runEditBox,
	}
	showBoxCmd = &cobra.Command{
		Use:   "show [box id]",
		Short: "Show the detail view of a box",
		Args:  cobra.ExactArgs(1),
		RunE:  runShowBox,
	}

	tokenCmd = &cobra.Command{
		Use:   "token",
		Short: "Issue a bearer token for the HTTP API (development)",
		Args:  cobra.NoArgs,
		RunE:  runIssueToken, // Defined in cmd_token.go
	}
)

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log storage activity to stderr")

	rootCmd.AddCommand(boxesCmd)
	boxesCmd.AddCommand(listBoxesCmd)
	boxesCmd.AddCommand(addBoxCmd)
	boxesCmd.AddCommand(editBoxCmd)
	boxesCmd.AddCommand(showBoxCmd)

	addBoxCmd.Flags().StringVar(&boxID, "id", "", "Box id; generated when empty")
	addBoxCmd.Flags().StringVar(&boxName, "name", "", "Box name")
	addBoxCmd.Flags().StringVar(&boxBalance, "balance", "", "Initial balance, e.g. 12.50; omit to leave it absent")
	_ = addBoxCmd.MarkFlagRequired("name")

	editBoxCmd.Flags().StringVar(&boxName, "name", "", "New box name")
	editBoxCmd.Flags().StringVar(&boxBalance, "balance", "", "New balance; omit to store it as absent")
	_ = editBoxCmd.MarkFlagRequired("name")

	rootCmd.AddCommand(tokenCmd)
	tokenCmd.Flags().StringVar(&userHandle, "user", "", "Opaque user handle placed in the token subject")
	tokenCmd.Flags().DurationVar(&tokenTTL, "ttl", 24*time.Hour, "Token lifetime")
	_ = tokenCmd.MarkFlagRequired("user")
}

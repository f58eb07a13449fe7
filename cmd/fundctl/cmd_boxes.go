package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"text/tabwriter"

	"github.com/SscSPs/class_fund_app/internal/adapters/boxstore"
	"github.com/SscSPs/class_fund_app/internal/apperrors"
	"github.com/SscSPs/class_fund_app/internal/core/domain"
	portsrepo "github.com/SscSPs/class_fund_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/class_fund_app/internal/core/ports/services"
	"github.com/SscSPs/class_fund_app/internal/core/services"
	"github.com/SscSPs/class_fund_app/internal/platform/config"
	"github.com/SscSPs/class_fund_app/internal/platform/storage"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

// localSession is the only presentation session of the terminal front end.
const localSession = "local"

// openLedger opens the configured storage and loads the collection.
// The returned close func releases the storage.
func openLedger(ctx context.Context) (*portssvc.ServiceContainer, func(), error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, err
	}

	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	kv, err := storage.OpenKeyValueStore(ctx, cfg, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("opening box storage: %w", err)
	}

	repos := portsrepo.RepositoryProvider{BoxRepo: boxstore.NewStore(kv, cfg.StoreKey)}
	svc := services.NewServiceContainer(cfg, repos, services.WithLogger(logger))
	svc.Ledger.Initialize(ctx)

	closeFn := func() {
		if cerr := kv.Close(); cerr != nil {
			logger.Error("Error closing box storage", slog.String("error", cerr.Error()))
		}
	}
	return svc, closeFn, nil
}

func runListBoxes(cmd *cobra.Command, _ []string) error {
	svc, closeFn, err := openLedger(cmd.Context())
	if err != nil {
		return err
	}
	defer closeFn()
	return listBoxes(cmd.OutOrStdout(), svc)
}

func runAddBox(cmd *cobra.Command, _ []string) error {
	balance, err := parseBalance(cmd, boxBalance)
	if err != nil {
		return err
	}
	svc, closeFn, err := openLedger(cmd.Context())
	if err != nil {
		return err
	}
	defer closeFn()
	return addBox(cmd.Context(), cmd.OutOrStdout(), svc, domain.Box{ID: boxID, Name: boxName, Balance: balance})
}

func runEditBox(cmd *cobra.Command, args []string) error {
	balance, err := parseBalance(cmd, boxBalance)
	if err != nil {
		return err
	}
	svc, closeFn, err := openLedger(cmd.Context())
	if err != nil {
		return err
	}
	defer closeFn()
	return editBox(cmd.Context(), cmd.OutOrStdout(), svc, args[0], boxName, balance)
}

func runShowBox(cmd *cobra.Command, args []string) error {
	svc, closeFn, err := openLedger(cmd.Context())
	if err != nil {
		return err
	}
	defer closeFn()
	return showBox(cmd.OutOrStdout(), svc, args[0])
}

func listBoxes(out io.Writer, svc *portssvc.ServiceContainer) error {
	warnIfDiverged(out, svc.Ledger)

	boxes := svc.Ledger.GetAll()
	if len(boxes) == 0 {
		fmt.Fprintln(out, "No boxes yet.")
		return nil
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tBALANCE")
	for _, box := range boxes {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", box.ID, box.Name, svc.Selection.DisplayAmount(box.Balance))
	}
	return tw.Flush()
}

func addBox(ctx context.Context, out io.Writer, svc *portssvc.ServiceContainer, box domain.Box) error {
	if box.ID == "" {
		box.ID = uuid.NewString()
	}
	if err := svc.Ledger.AddBox(ctx, box); err != nil {
		return mutationError(err)
	}
	fmt.Fprintf(out, "Added box %s (%s) with balance %s\n", box.ID, box.Name, svc.Selection.FormatAmount(box.Balance))
	return nil
}

func editBox(ctx context.Context, out io.Writer, svc *portssvc.ServiceContainer, id, name string, balance decimal.NullDecimal) error {
	current, err := svc.Ledger.GetBox(id)
	if err != nil {
		return fmt.Errorf("box %s: %w", id, err)
	}

	svc.Selection.Select(localSession, current)
	selected, ok := svc.Selection.Selected(localSession)
	if !ok {
		return apperrors.ErrNoSelection
	}

	handle := svc.Selection.RequestEdit(selected)
	updated := domain.Box{ID: handle.Box.ID, Name: name, Balance: balance}
	if _, err := handle.Edit(ctx, updated); err != nil {
		return mutationError(err)
	}
	fmt.Fprintf(out, "Updated box %s (%s) with balance %s\n", updated.ID, updated.Name, svc.Selection.FormatAmount(updated.Balance))
	return nil
}

func showBox(out io.Writer, svc *portssvc.ServiceContainer, id string) error {
	box, err := svc.Ledger.GetBox(id)
	if err != nil {
		return fmt.Errorf("box %s: %w", id, err)
	}
	svc.Selection.Select(localSession, box)

	selected, ok := svc.Selection.Selected(localSession)
	if !ok {
		return apperrors.ErrNoSelection
	}
	fmt.Fprintf(out, "Box:     %s\n", selected.Name)
	fmt.Fprintf(out, "ID:      %s\n", selected.ID)
	fmt.Fprintf(out, "Balance: %s\n", svc.Selection.FormatAmount(selected.Balance))
	return nil
}

// parseBalance reads the --balance flag. An unset flag means an absent balance.
func parseBalance(cmd *cobra.Command, raw string) (decimal.NullDecimal, error) {
	if !cmd.Flags().Changed("balance") {
		return decimal.NullDecimal{}, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.NullDecimal{}, fmt.Errorf("invalid --balance %q: %w", raw, err)
	}
	if err := domain.CheckBalance(d); err != nil {
		return decimal.NullDecimal{}, fmt.Errorf("invalid --balance %q: %w", raw, err)
	}
	return domain.NewBalance(d), nil
}

func mutationError(err error) error {
	if errors.Is(err, apperrors.ErrStore) {
		return fmt.Errorf("change applied in memory but not saved, it will be lost: %w", err)
	}
	return err
}

func warnIfDiverged(out io.Writer, ledger portssvc.BoxReaderSvc) {
	if status := ledger.SyncStatus(); status.LastError != nil {
		fmt.Fprintf(out, "Warning: could not read stored boxes: %v\n", status.LastError)
	}
}

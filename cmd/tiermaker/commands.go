package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jask/tiermaker/internal/codec"
	"github.com/jask/tiermaker/internal/config"
)

func runShare(cmd *cobra.Command, opts *options) error {
	ctx := cmd.Context()
	e, err := setup(ctx, opts)
	if err != nil {
		return err
	}
	defer e.Close()

	e.session.Load(ctx, "")
	link, err := e.session.ShareURL()
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), link)
	if e.session.Oversized(link) {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: link is %d bytes; some browsers and chat apps cut links this long\n", len(link))
	}
	return nil
}

func runImport(cmd *cobra.Command, opts *options, path string) error {
	ctx := cmd.Context()
	e, err := setup(ctx, opts)
	if err != nil {
		return err
	}
	defer e.Close()

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	e.session.Load(ctx, "")
	res, err := e.ingest.ImportText(f)
	if err != nil {
		return err
	}
	for _, lineErr := range res.Errors {
		fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", path, lineErr)
	}
	if res.Imported > 0 {
		if err := e.session.Save(ctx, e.session.Snapshot()); err != nil {
			return err
		}
	}
	fmt.Fprintf(cmd.OutOrStdout(), "imported %d, skipped %d, errors %d\n", res.Imported, res.Skipped, len(res.Errors))
	return nil
}

func runReset(cmd *cobra.Command, opts *options) error {
	ctx := cmd.Context()
	e, err := setup(ctx, opts)
	if err != nil {
		return err
	}
	defer e.Close()

	if err := e.maintenance.Reset(ctx); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "board %q reset\n", e.cfg.Storage.Slot)
	return nil
}

func runExport(cmd *cobra.Command, opts *options) error {
	ctx := cmd.Context()
	e, err := setup(ctx, opts)
	if err != nil {
		return err
	}
	defer e.Close()

	e.session.Load(ctx, "")
	data, err := codec.EncodeDurable(e.session.Board())
	if err != nil {
		return err
	}
	if opts.pretty {
		var buf bytes.Buffer
		if err := json.Indent(&buf, data, "", "  "); err != nil {
			return err
		}
		data = buf.Bytes()
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return err
}

func runSlots(cmd *cobra.Command, opts *options) error {
	ctx := cmd.Context()
	e, err := setup(ctx, opts)
	if err != nil {
		return err
	}
	defer e.Close()

	names, err := e.store.Slots(ctx)
	if err != nil {
		return err
	}
	for _, name := range names {
		marker := "  "
		if name == e.cfg.Storage.Slot {
			marker = "* "
		}
		fmt.Fprintln(cmd.OutOrStdout(), marker+name)
	}
	return nil
}

func runConfigInit(cmd *cobra.Command, opts *options) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}
	path := config.Path()
	if _, err := os.Stat(path); err == nil && !opts.force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}
	if err := config.Save(cfg); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
	return nil
}

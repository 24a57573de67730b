package main

import (
	"context"
	"fmt"
	"io"

	"github.com/justinpbarnett/scopesync/internal/ui/panels"
	"github.com/justinpbarnett/scopesync/internal/update"
)

func runVersion(ctx context.Context, w io.Writer) {
	fmt.Fprintf(w, "scopesync version %s\n", panels.Version)

	if panels.Version == "dev" {
		fmt.Fprintln(w, "Development build, update check skipped.")
		return
	}

	rel, err := update.CheckForUpdate(ctx, panels.Version, update.Repo)
	if err != nil {
		fmt.Fprintf(w, "Update check failed: %v\n", err)
		return
	}

	if rel != nil {
		fmt.Fprintf(w, "Update available: v%s. Run \"scopesync update\" to install.\n", rel.Version)
	} else {
		fmt.Fprintln(w, "You are up to date.")
	}
}

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/mindtris/uitheme/internal/manager"
	"github.com/mindtris/uitheme/internal/pubsub"
	"github.com/mindtris/uitheme/internal/validation"
	"github.com/mindtris/uitheme/internal/watcher"
)

var watchCmd = &cobra.Command{
	Use:   "watch [file]",
	Short: "Re-import a theme file whenever it changes",
	Long: `Watch a CSS or artifact JSON file and re-import it on every save,
printing each apply. The file defaults to watch.path from the config.

Example:
  uitheme watch theme.css`,
	Args: cobra.MaximumNArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	path := cfg.Watch.Path
	if len(args) == 1 {
		path = args[0]
	}
	if path == "" {
		return fmt.Errorf("no file to watch: pass one or set watch.path")
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return withApp(ctx, func(a *app) error {
		w := cmd.OutOrStdout()
		evCtx, cancel := context.WithCancel(ctx)
		stopped := a.manager.OnEvent(evCtx, func(ev pubsub.Event[manager.Event]) { printEvent(w, ev) })
		defer func() {
			cancel()
			<-stopped
		}()

		_, _ = fmt.Fprintf(w, "%s %s\n", mutedStyle.Render("watching"), path)
		wc := watcher.Config{
			Path:        path,
			DebounceDur: time.Duration(a.cfg.Watch.DebounceMS) * time.Millisecond,
		}
		return watcher.Follow(ctx, wc, a.manager, func(res validation.Result) {
			if !res.IsValid {
				_, _ = fmt.Fprintf(w, "%s %s\n", errorStyle.Render("rejected"), res.Error)
			}
		})
	})
}

func printEvent(w io.Writer, ev pubsub.Event[manager.Event]) {
	ts := mutedStyle.Render(ev.Timestamp.Format(time.TimeOnly))
	switch ev.Type {
	case pubsub.AppliedEvent:
		_, _ = fmt.Fprintf(w, "%s %s %s (%s)\n", ts, okStyle.Render("applied"), ev.Payload.Request, ev.Payload.Mode)
	case pubsub.FallbackEvent:
		_, _ = fmt.Fprintf(w, "%s %s %s (%s)\n", ts, errorStyle.Render("fallback"), ev.Payload.Request, ev.Payload.Mode)
	case pubsub.SavedEvent:
		_, _ = fmt.Fprintf(w, "%s %s %s\n", ts, okStyle.Render("saved"), ev.Payload.Request)
	}
}

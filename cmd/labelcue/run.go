package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/mlsorensen/labelcue"
	"github.com/mlsorensen/labelcue/pkg/config"
	"github.com/mlsorensen/labelcue/pkg/outputs/gui"
	"github.com/mlsorensen/labelcue/pkg/outputs/term"
	"github.com/mlsorensen/labelcue/pkg/reactions"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Listen for labels and react to them",
	Long: `Start the configured transport and react to every label it delivers.

Examples:
  labelcue run                           # advertise the BLE UART service
  labelcue run --transport serial --port /dev/ttyACM0
  labelcue run --transport mock --display gui`,
	RunE: runLabelcue,
}

func init() {
	runCmd.Flags().String("transport", "", "transport kind: "+strings.Join(labelcue.Registered(), ", "))
	runCmd.Flags().String("port", "", "serial port (serial transport)")
	runCmd.Flags().String("name", "", "advertised name (nus transport)")
	runCmd.Flags().String("display", "", "display kind: term or gui")
	runCmd.Flags().String("reactions", "", "reaction table file")
	runCmd.Flags().Bool("no-watch", false, "do not reload the reaction table when it changes")
}

// applyRunFlags copies explicitly set flags over the loaded config.
func applyRunFlags(cmd *cobra.Command, c *config.Config) error {
	flags := cmd.Flags()
	strs := map[string]*string{
		"transport": &c.Transport.Kind,
		"port":      &c.Transport.Port,
		"name":      &c.Transport.LocalName,
		"display":   &c.Display.Kind,
		"reactions": &c.Reactions.File,
	}
	for name, dst := range strs {
		if !flags.Changed(name) {
			continue
		}
		v, err := flags.GetString(name)
		if err != nil {
			return err
		}
		*dst = v
	}
	if flags.Changed("no-watch") {
		noWatch, err := flags.GetBool("no-watch")
		if err != nil {
			return err
		}
		c.Reactions.Watch = !noWatch
	}
	return c.Validate()
}

func runLabelcue(cmd *cobra.Command, args []string) error {
	if err := applyRunFlags(cmd, cfg); err != nil {
		return err
	}

	table, err := reactions.LoadOrDefault(cfg.Reactions.File)
	if err != nil {
		return err
	}
	logger.Info("reaction table loaded", zap.Strings("labels", table.Labels()), zap.Int("reactions", table.Len()))

	transport, err := labelcue.NewTransport(cfg.Transport, logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Display.Kind == config.DisplayGUI {
		return runGUI(ctx, table, transport)
	}

	display, speaker := term.New(cmd.OutOrStdout(), term.Options{Color: cfg.Display.Color, Bell: cfg.Display.Bell}, logger.Named("term"))
	return serve(ctx, table, transport, display, speaker)
}

// runGUI keeps the fyne event loop on the main goroutine and serves in the
// background. Closing the window stops serving, and the window closes when
// the transport ends.
func runGUI(ctx context.Context, table *labelcue.Table, transport labelcue.Transport) error {
	a := app.New()
	d := gui.New()
	w := gui.Window(a, cfg.Display.Title, d)

	var bellOut io.Writer = io.Discard
	if cfg.Display.Bell {
		bellOut = os.Stdout
	}
	_, bell := term.New(bellOut, term.Options{Bell: cfg.Display.Bell}, logger.Named("term"))
	speaker := gui.Speaker{Display: d, Next: bell}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	errc := make(chan error, 1)
	go func() {
		errc <- serve(ctx, table, transport, d, speaker)
		fyne.Do(a.Quit)
	}()

	w.ShowAndRun()
	cancel()
	return <-errc
}

// serve runs the transport into the gate and, when configured, reloads the
// reaction table in the background. It returns when the transport ends or
// ctx is canceled.
func serve(ctx context.Context, table *labelcue.Table, transport labelcue.Transport, display labelcue.Display, speaker labelcue.Speaker) error {
	dispatcher := labelcue.NewDispatcher(table, display, speaker, logger.Named("dispatch"))
	gate := labelcue.NewGate(display, dispatcher, logger.Named("gate"))

	g, gctx := errgroup.WithContext(ctx)
	runCtx, cancel := context.WithCancel(gctx)
	defer cancel()

	if cfg.Reactions.Watch && cfg.Reactions.File != "" {
		w, err := reactions.NewWatcher(cfg.Reactions.File, cfg.Reactions.Debounce, dispatcher.SetTable, logger.Named("reactions"))
		if err != nil {
			return err
		}
		g.Go(func() error { return w.Run(runCtx) })
	}

	g.Go(func() error {
		defer cancel()
		logger.Info("listening", zap.String("transport", transport.Kind()))
		return labelcue.Run(runCtx, transport, gate)
	})

	err := g.Wait()
	logger.Info("stopped", zap.Error(err))
	return err
}

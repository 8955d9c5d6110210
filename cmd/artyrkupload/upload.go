package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/artyrk/go-uploadwidget/clipboard"
	"github.com/artyrk/go-uploadwidget/config"
	"github.com/artyrk/go-uploadwidget/network"
	"github.com/artyrk/go-uploadwidget/picker"
	"github.com/artyrk/go-uploadwidget/tui"
	"github.com/artyrk/go-uploadwidget/widget"
	"github.com/bitrise-io/go-utils/v2/env"
	"github.com/bitrise-io/go-utils/v2/log"
	"github.com/spf13/cobra"
)

var errNoFiles = errors.New("no files matched the given sources")

type uploadFlags struct {
	endpoint    string
	origin      string
	dev         bool
	expiration  string
	interactive bool
	copyLink    bool
	verbose     bool
}

func uploadCmd() *cobra.Command {
	var flags uploadFlags

	cmd := &cobra.Command{
		Use:   "artyrkupload [files...]",
		Short: "Upload files and get a shareable download link",
		Long: `Upload one or more files in a single request and print a link to share them.

Files can be paths, file:// URIs, glob patterns ("build/**/*.zip") or
http(s) URLs, which are downloaded first. Without files, or with -i,
an interactive screen opens where files can be dropped onto the
terminal or picked from a file browser.

Settings can also be given as environment variables:
UPLOAD_ENDPOINT, UPLOAD_BASE_ORIGIN, UPLOAD_DEV_MODE, UPLOAD_EXPIRATION
and UPLOAD_VERBOSE.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Parse(env.NewRepository())
			if err != nil {
				return err
			}
			applyFlags(cmd, flags, &cfg)

			resolved, err := cfg.Resolve()
			if err != nil {
				return err
			}

			interactive := flags.interactive || len(args) == 0
			return run(cmd, resolved, args, interactive, flags.copyLink)
		},
	}

	cmd.Flags().StringVar(&flags.endpoint, "endpoint", "", "Upload URL (default {origin}/upload)")
	cmd.Flags().StringVar(&flags.origin, "origin", "", "Origin the share link is built on")
	cmd.Flags().BoolVar(&flags.dev, "dev", false, "Use the local development backend at "+config.DevOrigin)
	cmd.Flags().StringVarP(&flags.expiration, "expiration", "e", "", "Expiration: "+expirationChoices())
	cmd.Flags().BoolVarP(&flags.interactive, "interactive", "i", false, "Open the interactive screen")
	cmd.Flags().BoolVar(&flags.copyLink, "copy", false, "Copy the link to the clipboard")
	cmd.Flags().BoolVarP(&flags.verbose, "verbose", "v", false, "Print debug logs")

	return cmd
}

func expirationChoices() string {
	var names []string
	for _, e := range widget.Expirations() {
		names = append(names, string(e))
	}
	return strings.Join(names, ", ")
}

func applyFlags(cmd *cobra.Command, flags uploadFlags, cfg *config.Config) {
	if cmd.Flags().Changed("endpoint") {
		cfg.Endpoint = flags.endpoint
	}
	if cmd.Flags().Changed("origin") {
		cfg.BaseOrigin = flags.origin
	}
	if cmd.Flags().Changed("dev") {
		cfg.DevMode = flags.dev
	}
	if cmd.Flags().Changed("expiration") {
		cfg.Expiration = flags.expiration
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = flags.verbose
	}
}

func run(cmd *cobra.Command, cfg config.Resolved, sources []string, interactive, copyLink bool) error {
	ctx := cmd.Context()
	logger := log.NewLogger()
	// debug output would tear the interactive screen
	logger.EnableDebugLog(cfg.Verbose && !interactive)

	provider := picker.NewDefaultFileProvider(logger)
	defer func() {
		if err := provider.Cleanup(); err != nil {
			logger.Warnf("Failed to remove downloaded files: %s", err)
		}
	}()

	var files []network.File
	if len(sources) > 0 {
		var err error
		files, err = provider.Resolve(ctx, sources)
		if err != nil {
			return err
		}
	}
	if !interactive && len(files) == 0 {
		return errNoFiles
	}

	opts := []widget.Option{
		widget.WithBaseOrigin(cfg.BaseOrigin),
		widget.WithEndpoint(cfg.Endpoint),
		widget.WithClipboard(clipboard.System()),
		widget.WithLogger(logger),
	}
	var toasts *tui.Toasts
	if interactive {
		toasts = tui.NewToasts()
		opts = append(opts, widget.WithNotifier(toasts))
	}
	w := widget.New(network.NewUploader(logger), opts...)

	if err := w.SetExpiration(cfg.Expiration); err != nil {
		return err
	}
	if len(files) > 0 {
		if err := w.SelectFiles(files); err != nil {
			return err
		}
	}

	if interactive {
		return tui.Run(ctx, w, provider, toasts)
	}

	logger.Infof("Uploading %d file(s), expiration: %s", len(files), cfg.Expiration.Label())
	if err := submit(ctx, w, cmd.OutOrStdout()); err != nil {
		return err
	}

	if copyLink {
		if err := w.CopyShareLink(); err != nil {
			logger.Warnf("Failed to copy link: %s", err)
		}
	}
	return nil
}

// submit uploads the selection and prints the share link to out.
func submit(ctx context.Context, w *widget.Widget, out io.Writer) error {
	if err := w.Submit(ctx); err != nil {
		return err
	}
	if w.State().View != widget.ViewShowingResult {
		return errNoFiles
	}
	_, err := fmt.Fprintln(out, w.ShareLink())
	return err
}

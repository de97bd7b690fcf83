package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"podclean-api/api/dto/mappers"
	"podclean-api/core/clean"
	"podclean-api/core/domain"
	"podclean-api/core/errors"
	"podclean-api/core/interfaces"
	stdhttp "podclean-api/infrastructure/http/standard"
	"podclean-api/infrastructure/logger/structured"
	"podclean-api/pkg/config"
)

type options struct {
	configFile string
	factor     float64
	timeout    time.Duration
	logLevel   string
	output     string
	asJSON     bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "podclean",
		Short: "Strip trailers and bonus clips from podcast feeds.",
		Long: `podclean fetches a podcast RSS feed and drops every episode whose
itunes:duration is not above mean + factor * stddev of the feed's durations.`,
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&opts.configFile, "config-file", "", "TOML config file (same format as the server)")
	root.PersistentFlags().Float64Var(&opts.factor, "factor", 0, "standard deviation factor (defaults to config)")
	root.PersistentFlags().DurationVar(&opts.timeout, "timeout", 0, "fetch timeout (defaults to config)")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "log level written to stderr")

	root.AddCommand(newCleanCmd(opts), newPreviewCmd(opts))
	return root
}

func newCleanCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clean <feed-url>",
		Short: "Print the cleaned feed XML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			service, err := opts.service(cmd)
			if err != nil {
				return err
			}

			cleaned, err := errors.ToPair(service.Clean(cmd.Context(), args[0]))
			if err != nil {
				return err
			}

			if opts.output == "" {
				if _, err := cmd.OutOrStdout().Write(cleaned.XML); err != nil {
					return err
				}
			} else {
				f, err := os.Create(opts.output)
				if err != nil {
					return err
				}
				if err := writeAndClose(f, cleaned.XML); err != nil {
					return fmt.Errorf("write %s: %w", opts.output, err)
				}
			}

			fmt.Fprintf(cmd.ErrOrStderr(), "kept %d of %d episodes (threshold %.0fs)\n",
				cleaned.Kept, cleaned.Total(), cleaned.Threshold)
			return nil
		},
	}
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "write the feed to a file instead of stdout")
	return cmd
}

// writeAndClose writes data to w and reports the first of the write and close
// errors.
func writeAndClose(w io.WriteCloser, data []byte) error {
	_, werr := w.Write(data)
	cerr := w.Close()
	if werr != nil {
		return werr
	}
	return cerr
}

func newPreviewCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "preview <feed-url>",
		Short: "List episodes and whether cleaning keeps them",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			service, err := opts.service(cmd)
			if err != nil {
				return err
			}

			preview, err := errors.ToPair(service.Preview(cmd.Context(), args[0], ""))
			if err != nil {
				return err
			}

			if opts.asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(mappers.ToPreviewResponse(preview))
			}
			return writeTable(cmd.OutOrStdout(), preview.Title, preview.Threshold, episodesOf(preview))
		},
	}
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "print the preview as JSON")
	return cmd
}

// service builds a cache-less clean service from config plus flag overrides
func (o *options) service(cmd *cobra.Command) (*clean.Service, error) {
	cfg, err := config.Load(o.configFile)
	if err != nil {
		return nil, err
	}

	factor := cfg.Clean.StdDevFactor
	if cmd.Flags().Changed("factor") {
		factor = o.factor
	}
	timeout := cfg.FetchTimeout()
	if cmd.Flags().Changed("timeout") {
		timeout = o.timeout
	}
	if factor < 0 {
		return nil, errors.NewConfig("factor", "factor cannot be negative")
	}

	logger := structured.New(structured.Options{
		Level:  o.logLevel,
		Format: cfg.Log.Format,
		Output: cmd.ErrOrStderr(),
	})
	deps := interfaces.Dependencies{
		HTTPClient: stdhttp.NewStandardHTTPClient(timeout, logger),
		Logger:     logger,
	}
	return clean.NewService(deps, clean.Options{
		StdDevFactor: factor,
		MaxFeedBytes: int64(cfg.Clean.MaxFeedBytes),
	}), nil
}

type row struct {
	kept  bool
	clock string
	title string
}

func episodesOf(preview *domain.FeedPreview) []row {
	rows := make([]row, 0, len(preview.Episodes))
	for _, e := range preview.Episodes {
		rows = append(rows, row{kept: e.Kept, clock: e.Clock(), title: e.Title})
	}
	return rows
}

func writeTable(w io.Writer, title string, threshold float64, rows []row) error {
	fmt.Fprintf(w, "%s\nthreshold: %.0fs\n\n", title, threshold)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "KEEP\tDURATION\tTITLE")
	for _, r := range rows {
		mark := "-"
		if r.kept {
			mark = "yes"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", mark, r.clock, r.title)
	}
	return tw.Flush()
}

package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/livp123/logweave/internal/correlate"
	"github.com/livp123/logweave/internal/metrics"
	"github.com/livp123/logweave/internal/report"
	"github.com/livp123/logweave/internal/source"
	"github.com/livp123/logweave/internal/utils/fmtutil"
	"github.com/livp123/logweave/internal/utils/logger"
	"github.com/spf13/cobra"
)

var (
	mergeFormat string
	mergeOutput string
)

var mergeCmd = &cobra.Command{
	Use:   "merge",
	Short: "Merge sources into sessions and write the report",
	// Short: 将数据源合并为会话并写出报告
	Long: `Read every configured source, merge them in timestamp order through the rules
and render the resulting sessions.
读取所有配置的数据源，按时间戳顺序经规则合并，并渲染得到的会话。`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return runMerge(ctx, cmd)
	},
}

func init() {
	mergeCmd.Flags().StringVar(&mergeFormat, "format", "", "Report format: text, json or yaml (overrides report.format)")
	mergeCmd.Flags().StringVarP(&mergeOutput, "output", "o", "", "Report file, '-' for stdout (overrides report.output)")
}

func runMerge(ctx context.Context, cmd *cobra.Command) error {
	log := logger.Get(ctx)

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if mergeFormat != "" {
		cfg.Report.Format = mergeFormat
	}
	if mergeOutput != "" {
		cfg.Report.Output = mergeOutput
	}
	if err := checkConfig(cmd.ErrOrStderr(), cfg); err != nil {
		return err
	}
	renderer, err := report.NewRenderer(cfg.Report.Format)
	if err != nil {
		return err
	}

	loader := source.NewLoader()
	store, err := loader.Load(ctx, cfg.Sources)
	if err != nil {
		return err
	}

	opts := []correlate.Option{correlate.WithDefaultTitle(cfg.Report.DefaultTitle)}
	if cfg.Metrics.Enabled {
		opts = append(opts, correlate.WithRecorder(metrics.NewRecorder()))
	}
	result, err := correlate.New(store, opts...).Merge(ctx, cfg.Rules)
	if err != nil {
		return err
	}

	doc := report.Build(result)
	if err := report.WriteFile(cfg.Report.Output, cmd.OutOrStdout(), renderer, doc); err != nil {
		return err
	}
	if cfg.Report.Output != "" && cfg.Report.Output != "-" {
		log.Infof("[REPORT] Wrote %d sessions to %s", len(doc.Sessions), cfg.Report.Output)
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "[OK] Merged %s of %s lines (%s) into %d sessions in %s\n",
		fmtutil.FormatCount(result.Delivered()), fmtutil.FormatCount(result.Lines()),
		fmtutil.FormatRatio(result.Delivered(), result.Lines()),
		len(result.Sessions), fmtutil.FormatDuration(result.Duration))

	if cfg.Metrics.Enabled && cfg.Metrics.Textfile != "" {
		if err := metrics.WriteTextfile(cfg.Metrics.Textfile); err != nil {
			log.Warnf("[WARN]  Failed to write metrics textfile %s: %v", cfg.Metrics.Textfile, err)
		}
	}
	return nil
}

package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"postmate/internal/config"
	"postmate/internal/domain"

	"github.com/spf13/cobra"
)

type analyzeOptions struct {
	jsonOutput   bool
	outputPath   string
	timeoutSecs  int
	skipInsights bool
}

func newAnalyzeCommand() *cobra.Command {
	opts := &analyzeOptions{}

	cmd := &cobra.Command{
		Use:   "analyze [file]",
		Short: "Analyze a PDF, PNG or JPEG post",
		Long: `Run the analysis pipeline on a local file and print the report.

The file kind is taken from the extension and confirmed against the file
content. Backends are configured through the same environment variables
as the server (OCR_PROVIDER, LLM_PROVIDER, GOOGLE_CREDENTIALS, ...).`,
		Example: `  # Text report on stdout
  postmate analyze screenshot.png

  # JSON report to a file, metrics only
  postmate analyze post.pdf --json --skip-insights -o report.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.NewConfig()

			doc, err := loadDocument(args[0], cfg.GetMaxFileSize())
			if err != nil {
				return err
			}

			ctx, cancel := withTimeout(cmd.Context(), opts.timeoutSecs)
			defer cancel()
			ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()

			container := config.NewContainerWithOptions(ctx, cfg, config.ContainerOptions{
				SkipInsights: opts.skipInsights,
				LogOutput:    cmd.ErrOrStderr(),
			})
			defer func() { _ = container.Close() }()

			return runAnalyze(ctx, container.AnalysisService, doc, opts, cmd.OutOrStdout())
		},
	}

	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "Output as JSON")
	cmd.Flags().StringVarP(&opts.outputPath, "output", "o", "", "Output file path (default: stdout)")
	cmd.Flags().IntVar(&opts.timeoutSecs, "timeout", 120, "Processing timeout in seconds (0 or less disables it)")
	cmd.Flags().BoolVar(&opts.skipInsights, "skip-insights", false, "Only extract text and compute metrics")
	return cmd
}

// withTimeout bounds ctx by secs seconds; secs <= 0 means no deadline.
func withTimeout(ctx context.Context, secs int) (context.Context, context.CancelFunc) {
	if secs <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, time.Duration(secs)*time.Second)
}

// loadDocument reads path and checks it the way the upload endpoint does.
func loadDocument(path string, maxSize int64) (*domain.UploadedDocument, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("cannot access file: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", path)
	}
	if maxSize > 0 && info.Size() > maxSize {
		return nil, fmt.Errorf("file too large: %d bytes (max %d)", info.Size(), maxSize)
	}

	kind := domain.MediaKindFromFilename(path)
	if !kind.IsSupported() {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedType, filepath.Ext(path))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	if sniffed := domain.SniffMediaKind(data); len(data) > 0 && sniffed != kind {
		return nil, fmt.Errorf("%w: content of %s is not %s", domain.ErrUnsupportedType, filepath.Base(path), kind)
	}

	return &domain.UploadedDocument{
		Bytes:            data,
		Kind:             kind,
		DeclaredMIMEType: kind.CanonicalMIMEType(),
		OriginalFilename: filepath.Base(path),
		SizeBytes:        int64(len(data)),
	}, nil
}

func runAnalyze(ctx context.Context, svc domain.AnalysisService, doc *domain.UploadedDocument, opts *analyzeOptions, stdout io.Writer) error {
	report, err := svc.Analyze(ctx, doc)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	var out []byte
	if opts.jsonOutput {
		out, err = json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to create JSON output: %w", err)
		}
		out = append(out, '\n')
	} else {
		out = []byte(renderText(report))
	}

	if opts.outputPath == "" {
		_, err = stdout.Write(out)
		return err
	}
	if err := os.WriteFile(opts.outputPath, out, 0o644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	fmt.Fprintf(stdout, "Report written to %s\n", opts.outputPath)
	return nil
}

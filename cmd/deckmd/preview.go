package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	httpadapter "github.com/fredcamaral/deckmd/internal/adapters/primary/http"
	"github.com/fredcamaral/deckmd/internal/adapters/secondary/markdown"
	"github.com/fredcamaral/deckmd/internal/adapters/secondary/pptx"
	"github.com/fredcamaral/deckmd/internal/adapters/secondary/renderer"
	"github.com/fredcamaral/deckmd/internal/domain/entities"
	"github.com/fredcamaral/deckmd/internal/domain/services"
)

var (
	// Preview command flags
	previewPort int
	previewHost string
)

// previewCmd represents the preview command
var previewCmd = &cobra.Command{
	Use:   "preview [file]",
	Short: "Convert a slide deck and preview the result locally",
	Long: `Convert a slide deck and serve the resulting markdown and its HTML
view on a local HTTP server. Connected browsers receive conversion
progress over a websocket.

Example:
  deckmd preview talk.pptx
  deckmd preview talk.pptx -p 8080`,
	Args: cobra.ExactArgs(1),
	RunE: runPreview,
}

func init() {
	rootCmd.AddCommand(previewCmd)

	previewCmd.Flags().IntVarP(&previewPort, "port", "p", 0, "Port to serve on (overrides config)")
	previewCmd.Flags().StringVar(&previewHost, "host", "", "Host to bind to (overrides config)")
}

func runPreview(cmd *cobra.Command, args []string) error {
	sourcePath := args[0]

	cfg, err := loadConfig(cmd, filepath.Dir(sourcePath), map[string]interface{}{
		"port": previewPort,
		"host": previewHost,
	})
	if err != nil {
		return err
	}

	log, err := newLogger(cfg)
	if err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	// The preview conversion writes into a scratch directory; use the
	// convert command to produce a durable document.
	tmpDir, err := os.MkdirTemp("", "deckmd-preview-*")
	if err != nil {
		return fmt.Errorf("creating scratch directory: %w", err)
	}
	defer func() { _ = os.RemoveAll(tmpDir) }()

	base := filepath.Base(sourcePath)
	destPath := filepath.Join(tmpDir, strings.TrimSuffix(base, filepath.Ext(base))+entities.MarkupExtension)

	htmlRenderer := renderer.NewHTMLRenderer(
		renderer.WithTitle(renderer.DisplayTitle(sourcePath)),
	)

	server := httpadapter.NewPreviewServer(cfg.Preview, htmlRenderer, log)
	if err := server.Start(cmd.Context()); err != nil {
		return err
	}
	defer func() { _ = server.Stop(context.Background()) }()

	svc := services.NewConverterService(
		pptx.NewReader(),
		markdown.NewRenderer(),
		markdown.NewWriter(),
		log,
	)

	handle, err := svc.Convert(cmd.Context(), sourcePath, destPath)
	if err != nil {
		return err
	}

	for percent := range handle.Progress() {
		fmt.Fprintf(os.Stderr, "\rConverting %3d%%", percent)
		server.BroadcastProgress(percent)
	}
	fmt.Fprintln(os.Stderr)

	result := <-handle.Result()
	if !result.Success {
		return errors.New(result.Error)
	}

	content, err := os.ReadFile(result.OutputPath) // #nosec G304 - path was just written by the converter
	if err != nil {
		return fmt.Errorf("reading converted document: %w", err)
	}
	if err := server.SetDocument(content); err != nil {
		return err
	}
	server.BroadcastComplete(result.OutputPath)

	fmt.Printf("Preview running at http://%s (Ctrl+C to stop)\n", server.Addr())
	<-cmd.Context().Done()

	return nil
}

package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fredcamaral/deckmd/internal/adapters/secondary/markdown"
	"github.com/fredcamaral/deckmd/internal/adapters/secondary/pptx"
	"github.com/fredcamaral/deckmd/internal/adapters/secondary/renderer"
	"github.com/fredcamaral/deckmd/internal/domain/entities"
	"github.com/fredcamaral/deckmd/internal/domain/services"
	"github.com/fredcamaral/deckmd/pkg/logger"
)

var (
	// Convert command flags
	convertOutput      string
	convertOutputDir   string
	convertHTML        bool
	convertFrontMatter bool
)

// convertCmd represents the convert command
var convertCmd = &cobra.Command{
	Use:   "convert [file]",
	Short: "Convert a slide deck to a markdown document",
	Long: `Read a slide deck, extract each slide's title and text content, and
write them to a markdown document. Without --output the document is
written next to the source file with a .md extension.

Example:
  deckmd convert talk.pptx
  deckmd convert talk.pptx -o notes/talk.md --html`,
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)

	convertCmd.Flags().StringVarP(&convertOutput, "output", "o", "", "Destination file (default: source path with .md extension)")
	convertCmd.Flags().StringVar(&convertOutputDir, "output-dir", "", "Destination directory (overrides config)")
	convertCmd.Flags().BoolVar(&convertHTML, "html", false, "Also write a derived HTML view next to the output")
	convertCmd.Flags().BoolVar(&convertFrontMatter, "frontmatter", false, "Prepend YAML front matter with deck metadata")
}

func runConvert(cmd *cobra.Command, args []string) error {
	sourcePath := args[0]

	cfg, err := loadConfig(cmd, filepath.Dir(sourcePath), map[string]interface{}{
		"output-dir":  convertOutputDir,
		"html":        convertHTML,
		"frontmatter": convertFrontMatter,
	})
	if err != nil {
		return err
	}

	log, err := newLogger(cfg)
	if err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	var rendererOpts []markdown.Option
	if cfg.Output.FrontMatter {
		rendererOpts = append(rendererOpts, markdown.WithFrontMatter())
	}

	svc := services.NewConverterService(
		pptx.NewReader(),
		markdown.NewRenderer(rendererOpts...),
		markdown.NewWriter(),
		log,
	)

	handle, err := svc.Convert(cmd.Context(), sourcePath, destinationFor(cfg, sourcePath, convertOutput))
	if err != nil {
		return err
	}

	for percent := range handle.Progress() {
		fmt.Fprintf(os.Stderr, "\rConverting %3d%%", percent)
	}
	fmt.Fprintln(os.Stderr)

	result := <-handle.Result()
	if !result.Success {
		return errors.New(result.Error)
	}

	fmt.Printf("Wrote %s\n", result.OutputPath)

	if cfg.Output.HTML {
		// A failed HTML view never unwinds the finished conversion.
		if htmlPath, err := writeHTMLView(result.OutputPath, sourcePath, cfg); err != nil {
			log.Warn("derived HTML view failed", logger.Error(err))
		} else {
			fmt.Printf("Wrote %s\n", htmlPath)
		}
	}

	return nil
}

// writeHTMLView renders the converted markdown to a sibling .html file
func writeHTMLView(markdownPath, sourcePath string, cfg *entities.Config) (string, error) {
	content, err := os.ReadFile(markdownPath) // #nosec G304 - path was just written by the converter
	if err != nil {
		return "", entities.NewRenderError(err)
	}

	opts := []renderer.Option{renderer.WithTitle(renderer.DisplayTitle(sourcePath))}
	if cfg.Preview.Sanitize {
		opts = append(opts, renderer.WithSanitization())
	}

	page, err := renderer.NewHTMLRenderer(opts...).Render(content)
	if err != nil {
		return "", err
	}

	htmlPath := strings.TrimSuffix(markdownPath, filepath.Ext(markdownPath)) + ".html"
	if err := markdown.NewWriter().Write(htmlPath, []byte(page)); err != nil {
		return "", entities.NewRenderError(err)
	}

	return htmlPath, nil
}

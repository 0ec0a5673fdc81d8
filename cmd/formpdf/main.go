// Command formpdf renders a branded fillable PDF from a JSON form spec
// and a brand image.
//
//	formpdf --spec intake.json --brand logo.png --out intake.pdf
//
// Flags can also be set through FORMPDF_* environment variables, e.g.
// FORMPDF_WATERMARK=DRAFT.
package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	pdfcreator "github.com/scottcrawfordcoach/pdf-creator"
	"github.com/scottcrawfordcoach/pdf-creator/formspec"
	"github.com/scottcrawfordcoach/pdf-creator/pdfcheck"
	"github.com/scottcrawfordcoach/pdf-creator/theme"
)

type cliConfig struct {
	SpecPath    string
	BrandPath   string
	LogoPath    string
	OutPath     string
	Watermark   string
	BlendWeight float64
	PaletteSize int
	Timestamp   bool
	Verify      bool
	Verbose     bool
}

func loadConfig() (*cliConfig, error) {
	viper.SetEnvPrefix("FORMPDF")
	viper.AutomaticEnv()

	pflag.String("spec", "", "Path to the JSON form spec (required)")
	pflag.String("brand", "", "Path to the brand image driving the color theme")
	pflag.String("logo", "", "Path to the header logo (defaults to the brand image)")
	pflag.String("out", "form.pdf", "Output PDF path")
	pflag.String("watermark", "", "Diagonal watermark text, e.g. DRAFT")
	pflag.Float64("blend", theme.DefaultBlendWeight, "Suggestion blend weight, 0 to 1")
	pflag.Int("palette", 6, "Maximum extracted palette size")
	pflag.Bool("timestamp", false, "Stamp the document with the current time")
	pflag.Bool("verify", false, "Re-parse the output and check its field registry")
	pflag.Bool("verbose", false, "Log pipeline diagnostics to stderr")
	pflag.Parse()

	if err := viper.BindPFlags(pflag.CommandLine); err != nil {
		return nil, err
	}

	cfg := &cliConfig{
		SpecPath:    viper.GetString("spec"),
		BrandPath:   viper.GetString("brand"),
		LogoPath:    viper.GetString("logo"),
		OutPath:     viper.GetString("out"),
		Watermark:   viper.GetString("watermark"),
		BlendWeight: viper.GetFloat64("blend"),
		PaletteSize: viper.GetInt("palette"),
		Timestamp:   viper.GetBool("timestamp"),
		Verify:      viper.GetBool("verify"),
		Verbose:     viper.GetBool("verbose"),
	}
	if cfg.SpecPath == "" {
		return nil, fmt.Errorf("--spec is required")
	}
	return cfg, nil
}

func run(cfg *cliConfig) error {
	specData, err := os.ReadFile(cfg.SpecPath)
	if err != nil {
		return fmt.Errorf("reading spec: %w", err)
	}
	spec, err := formspec.Parse(specData)
	if err != nil {
		return err
	}

	req := pdfcreator.Request{Spec: spec}
	if cfg.BrandPath != "" {
		if req.BrandImage, err = os.ReadFile(cfg.BrandPath); err != nil {
			return fmt.Errorf("reading brand image: %w", err)
		}
	}
	logoPath := cfg.LogoPath
	if logoPath == "" {
		logoPath = cfg.BrandPath
	}
	if logoPath != "" {
		if req.Logo, err = os.ReadFile(logoPath); err != nil {
			return fmt.Errorf("reading logo: %w", err)
		}
	}

	opts := []pdfcreator.Option{
		pdfcreator.WithBlendWeight(cfg.BlendWeight),
		pdfcreator.WithPaletteSize(cfg.PaletteSize),
	}
	if cfg.Watermark != "" {
		opts = append(opts, pdfcreator.WithWatermark(cfg.Watermark))
	}
	if cfg.Timestamp {
		opts = append(opts, pdfcreator.WithCreationTime(time.Now()))
	}
	if cfg.Verbose {
		opts = append(opts, pdfcreator.WithLogger(log.New(os.Stderr, "formpdf: ", 0)))
	}

	out, sum, err := pdfcreator.Generate(req, opts...)
	if err != nil {
		return err
	}
	if err := os.WriteFile(cfg.OutPath, out, 0644); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}

	fmt.Printf("%s: %d page(s), %d field(s), primary %s\n",
		cfg.OutPath, sum.Pages, len(sum.FieldPages), sum.Theme.Primary.Hex())
	for _, w := range sum.Warnings {
		fmt.Printf("warning: section %d field %q: %s\n", w.Section+1, w.Field, w.Msg)
	}

	if cfg.Verify {
		return verify(out, len(sum.FieldPages))
	}
	return nil
}

// verify re-parses the generated bytes and checks the field registry
// against the summary.
func verify(data []byte, wantFields int) error {
	doc, err := pdfcheck.Open(data)
	if err != nil {
		return fmt.Errorf("verify: %w", err)
	}
	names, err := doc.FieldNames()
	if err != nil {
		return fmt.Errorf("verify: %w", err)
	}
	if len(names) != wantFields {
		return fmt.Errorf("verify: registry has %d field(s), expected %d", len(names), wantFields)
	}
	fmt.Printf("verified: %d field(s) in registry\n", len(names))
	return nil
}

func main() {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "formpdf: %v\n", err)
		pflag.Usage()
		os.Exit(2)
	}
	if err := run(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "formpdf: %v\n", err)
		os.Exit(1)
	}
}

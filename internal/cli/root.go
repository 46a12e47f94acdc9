package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/laserfinity/laserfinity/pkg/pipeline"
	"github.com/laserfinity/laserfinity/pkg/render/sink"
)

// renderOpts holds the flags of the root command.
type renderOpts struct {
	width       string  // drawer width, inches unless suffixed
	height      string  // drawer height, inches unless suffixed
	output      string  // output file path
	format      string  // output format; inferred from output when empty
	profile     string  // constants profile name
	title       string  // document title for SVG/PDF
	scale       float64 // PNG pixel scale
	interactive bool    // pick the profile from a list
}

func (c *CLI) rootCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "laserfinity",
		Short: "Laserfinity generates laser-cut templates for gridfinity baseplates",
		Long: `Laserfinity fits as many 42 mm gridfinity cells as possible into a drawer
and writes a cut template: one rounded rectangle per cell inside a rounded
border the size of the drawer, centred with equal margins.

Dimensions are inches by default and accept decimals ("16.5"), mixed
fractions ("22 1/2") and metric suffixes ("420mm", "42cm").`,
		Example: `  laserfinity --drawer_width 22.5 --drawer_height "16 1/4"
  laserfinity --drawer_width 420mm --drawer_height 300mm -o drawer.png
  laserfinity --drawer_width 16 --drawer_height 11 --profile snug --format pdf`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd, opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.width, "drawer_width", "", "drawer width (inches, or suffix mm/cm)")
	f.StringVar(&opts.height, "drawer_height", "", "drawer height (inches, or suffix mm/cm)")
	f.StringVar(&opts.width, "drawer-width", "", "alias for --drawer_width")
	f.StringVar(&opts.height, "drawer-height", "", "alias for --drawer_height")
	_ = f.MarkHidden("drawer-width")
	_ = f.MarkHidden("drawer-height")

	f.StringVarP(&opts.output, "output", "o", pipeline.DefaultOutput, "output file")
	f.StringVarP(&opts.format, "format", "f", "", "output format: svg, png, pdf, json, xlsx (default: from --output extension)")
	f.StringVarP(&opts.profile, "profile", "p", "", "constants profile (see 'laserfinity profiles')")
	f.StringVar(&opts.title, "title", "", "document title embedded in SVG and PDF output")
	f.Float64Var(&opts.scale, "scale", 1, "PNG pixel scale")
	f.BoolVarP(&opts.interactive, "interactive", "i", false, "choose the profile interactively")

	_ = cmd.RegisterFlagCompletionFunc("format", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return []string{sink.FormatSVG, sink.FormatPNG, sink.FormatPDF, sink.FormatJSON, sink.FormatXLSX}, cobra.ShellCompDirectiveNoFileComp
	})
	_ = cmd.RegisterFlagCompletionFunc("profile", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		cfg, err := c.loadConfig()
		if err != nil {
			return nil, cobra.ShellCompDirectiveError
		}
		return cfg.Names(), cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func (c *CLI) runRender(cmd *cobra.Command, opts renderOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	// Check dimensions before touching config or the terminal.
	popts := pipeline.Options{
		Width:  opts.width,
		Height: opts.height,
		Output: opts.output,
		Format: opts.format,
		Title:  opts.title,
		Scale:  opts.scale,
		Logger: logger,
	}
	if err := popts.ValidateAndSetDefaults(); err != nil {
		return err
	}

	runner, err := c.newRunner(nil)
	if err != nil {
		return err
	}

	popts.Profile = opts.profile
	if opts.interactive {
		name, ok, err := pickProfile(runner.Config, opts.profile)
		if err != nil {
			return err
		}
		if !ok {
			c.ui().detail("No profile selected")
			return nil
		}
		popts.Profile = name
	}

	prog := newProgress(logger)
	var spinner *Spinner
	if popts.Format == sink.FormatPDF || popts.Format == sink.FormatPNG {
		spinner = newSpinner(ctx, c.Stderr, fmt.Sprintf("Rendering %s...", popts.Format))
		spinner.Start()
	}
	result, err := runner.WriteFile(ctx, popts)
	if spinner != nil {
		spinner.Stop()
	}
	if err != nil {
		return err
	}
	prog.done("Rendered baseplate")

	profile := popts.Profile
	if profile == "" {
		profile = runner.Config.DefaultProfile()
	}
	c.ui().result(result, profile)
	return nil
}

package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/thatcatcamp/tint/internal/customizer"
	"github.com/thatcatcamp/tint/internal/render"
	"github.com/thatcatcamp/tint/internal/themes"
)

var (
	generateSecondary string
	generatePreset    string
	generateDuotone   bool
	generateRandom    bool
	generateShow      bool
	generateSwatch    string
)

var generateCmd = &cobra.Command{
	Use:   "generate [primary-hex]",
	Short: "Derive and apply a palette",
	Long: `Derive light and dark palettes from a seed color and make them the
current theme. Use --secondary for a two-seed palette, --preset for a named
seed pair or --random for a random seed.`,
	Example: `  tint generate "#3b82f6"
  tint generate "#3b82f6" --secondary "#f97316"
  tint generate --preset indigo --duotone
  tint generate --random --swatch swatch.png`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		run(func(ctx context.Context, a *app) error {
			var (
				p   themes.Palette
				err error
			)
			switch {
			case generateRandom:
				var seed string
				seed, p = a.c.Randomize(nil)
				fmt.Printf("Seed: %s\n", seed)
			case generatePreset != "":
				p, err = a.c.ApplyPreset(generatePreset, generateDuotone)
			case len(args) == 1 && generateSecondary != "":
				p, err = a.c.ApplyDuotone(args[0], generateSecondary)
			case len(args) == 1:
				p, err = a.c.ApplyGenerated(args[0])
			default:
				return fmt.Errorf("a primary color, --preset or --random is required")
			}
			if err != nil {
				return err
			}

			if generateShow {
				fmt.Println(render.Palette(a.styles, p.Light, p.Dark, a.state.BorderRadius()))
			}
			if generateSwatch != "" {
				w, h := render.DefaultStripSize()
				if err := render.WritePNGFile(generateSwatch, p.Light, p.Dark, w, h); err != nil {
					return err
				}
				fmt.Printf("Swatch written to %s\n", generateSwatch)
			}
			return nil
		})
	},
}

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List the named seed presets",
	Run: func(cmd *cobra.Command, args []string) {
		for _, p := range themes.Presets() {
			fmt.Printf("%-12s %s  %s\n", p.Name, p.Primary, p.Secondary)
		}
	},
}

var modeCmd = &cobra.Command{
	Use:   "mode",
	Short: "Switch between light and dark mode",
}

var modeToggleCmd = &cobra.Command{
	Use:   "toggle",
	Short: "Toggle dark mode",
	Run: func(cmd *cobra.Command, args []string) {
		run(func(ctx context.Context, a *app) error {
			fmt.Printf("Mode: %s\n", themes.ModeFor(a.c.ToggleDarkMode()))
			return nil
		})
	},
}

var modeSetCmd = &cobra.Command{
	Use:       "set <light|dark>",
	Short:     "Set the mode",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{string(themes.Light), string(themes.Dark)},
	Run: func(cmd *cobra.Command, args []string) {
		mode, err := themes.ParseMode(args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		run(func(ctx context.Context, a *app) error {
			a.c.SetDarkMode(mode == themes.Dark)
			fmt.Printf("Mode: %s\n", mode)
			return nil
		})
	},
}

var radiusCmd = &cobra.Command{
	Use:   "radius",
	Short: "Change the border radius",
}

var radiusSetCmd = &cobra.Command{
	Use:   "set <rem>",
	Short: "Set the border radius in rem (0 to 2)",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		rem, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: invalid radius %q\n", args[0])
			os.Exit(1)
		}
		run(func(ctx context.Context, a *app) error {
			if err := a.c.SetBorderRadius(rem); err != nil {
				return err
			}
			fmt.Printf("--radius: %s\n", themes.RadiusValue(rem))
			return nil
		})
	},
}

func radiusStepCmd(use, short string, sign int) *cobra.Command {
	return &cobra.Command{
		Use:   use + " [steps]",
		Short: short,
		Args:  cobra.MaximumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			steps := 1
			if len(args) == 1 {
				n, err := strconv.Atoi(args[0])
				if err != nil || n < 1 {
					fmt.Fprintf(os.Stderr, "Error: invalid step count %q\n", args[0])
					os.Exit(1)
				}
				steps = n
			}
			run(func(ctx context.Context, a *app) error {
				r := a.c.StepBorderRadius(sign * steps)
				fmt.Printf("--radius: %s\n", themes.RadiusValue(r))
				return nil
			})
		},
	}
}

var colorCmd = &cobra.Command{
	Use:   "color",
	Short: "Edit individual color tokens",
}

var colorSetCmd = &cobra.Command{
	Use:   "set <light|dark> <token> <value>",
	Short: "Set one token, as a hex color or an \"H S% L%\" value",
	Example: `  tint color set light primary "#3b82f6"
  tint color set dark muted-foreground "215 20.2% 65.1%"`,
	Args: cobra.ExactArgs(3),
	Run: func(cmd *cobra.Command, args []string) {
		mode, err := themes.ParseMode(args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		run(func(ctx context.Context, a *app) error {
			if err := a.c.SetColor(mode, args[1], args[2]); err != nil {
				return err
			}
			fmt.Printf("Set %s %s\n", mode, args[1])
			return nil
		})
	},
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset the theme to the default colors and radius",
	Run: func(cmd *cobra.Command, args []string) {
		run(func(ctx context.Context, a *app) error {
			outcome, err := a.c.Reset(ctx)
			if err != nil {
				return err
			}
			if outcome == customizer.OutcomeCancelled {
				fmt.Println("Reset cancelled.")
			}
			return nil
		})
	},
}

var cssOutput string

var cssCmd = &cobra.Command{
	Use:   "css",
	Short: "Print the stylesheet for the current theme",
	Run: func(cmd *cobra.Command, args []string) {
		run(func(ctx context.Context, a *app) error {
			css := a.c.Stylesheet()
			if cssOutput == "" {
				fmt.Print(css)
				return nil
			}
			if err := os.WriteFile(cssOutput, []byte(css), 0644); err != nil {
				return fmt.Errorf("failed to write %s: %w", cssOutput, err)
			}
			fmt.Printf("Stylesheet written to %s\n", cssOutput)
			return nil
		})
	},
}

var contrastMode string

var contrastCmd = &cobra.Command{
	Use:   "contrast",
	Short: "Report WCAG contrast of the current theme",
	Run: func(cmd *cobra.Command, args []string) {
		run(func(ctx context.Context, a *app) error {
			mode := themes.ModeFor(a.state.IsDarkMode())
			if contrastMode != "" {
				m, err := themes.ParseMode(contrastMode)
				if err != nil {
					return err
				}
				mode = m
			}
			fmt.Println(render.Contrast(a.styles, mode, a.c.Contrast(mode)))
			return nil
		})
	},
}

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current theme",
	Run: func(cmd *cobra.Command, args []string) {
		run(func(ctx context.Context, a *app) error {
			snap := a.state.Snapshot()
			fmt.Printf("Mode: %s\n", snap.Mode())
			fmt.Println(render.Palette(a.styles, snap.LightColors, snap.DarkColors, snap.BorderRadius))
			return nil
		})
	},
}

func init() {
	generateCmd.Flags().StringVar(&generateSecondary, "secondary", "", "secondary seed color for a duotone palette")
	generateCmd.Flags().StringVar(&generatePreset, "preset", "", "named seed preset (see tint presets)")
	generateCmd.Flags().BoolVar(&generateDuotone, "duotone", false, "use both seeds of the preset")
	generateCmd.Flags().BoolVar(&generateRandom, "random", false, "use a random seed color")
	generateCmd.Flags().BoolVar(&generateShow, "show", true, "print the generated tokens")
	generateCmd.Flags().StringVar(&generateSwatch, "swatch", "", "write a PNG swatch strip to this path")
	generateCmd.MarkFlagsMutuallyExclusive("random", "preset")

	modeCmd.AddCommand(modeToggleCmd)
	modeCmd.AddCommand(modeSetCmd)

	radiusCmd.AddCommand(radiusSetCmd)
	radiusCmd.AddCommand(radiusStepCmd("inc", "Increase the radius by 0.125rem steps", 1))
	radiusCmd.AddCommand(radiusStepCmd("dec", "Decrease the radius by 0.125rem steps", -1))

	colorCmd.AddCommand(colorSetCmd)

	cssCmd.Flags().StringVarP(&cssOutput, "output", "o", "", "write the stylesheet to a file")
	contrastCmd.Flags().StringVar(&contrastMode, "mode", "", "light or dark (default: current mode)")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(presetsCmd)
	rootCmd.AddCommand(modeCmd)
	rootCmd.AddCommand(radiusCmd)
	rootCmd.AddCommand(colorCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(cssCmd)
	rootCmd.AddCommand(contrastCmd)
	rootCmd.AddCommand(showCmd)
}

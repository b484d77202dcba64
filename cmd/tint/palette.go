package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/thatcatcamp/tint/internal/backup"
	"github.com/thatcatcamp/tint/internal/config"
	"github.com/thatcatcamp/tint/internal/customizer"
	"github.com/thatcatcamp/tint/internal/palettes"
	"github.com/thatcatcamp/tint/internal/render"
)

var paletteCmd = &cobra.Command{
	Use:   "palette",
	Short: "Manage saved palettes",
	Long:  "Commands for the saved palette collection: list, show, save, load, delete, export and import",
}

var paletteListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved palettes, newest first",
	Run: func(cmd *cobra.Command, args []string) {
		run(func(ctx context.Context, a *app) error {
			fmt.Println(render.PaletteList(a.styles, a.state.SavedPalettes()))
			return nil
		})
	},
}

var paletteShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show the tokens of a saved palette",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id := parseID(args[0])
		run(func(ctx context.Context, a *app) error {
			p, err := a.store.Get(ctx, id)
			if err != nil {
				return err
			}
			fmt.Println(a.styles.Title.Render(p.Name))
			fmt.Println(render.Palette(a.styles, p.LightColors, p.DarkColors, p.BorderRadius))
			return nil
		})
	},
}

var (
	saveOverwrite uint
	saveDuotone   bool
)

var paletteSaveCmd = &cobra.Command{
	Use:   "save <name>",
	Short: "Save the current theme as a palette",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		run(func(ctx context.Context, a *app) error {
			var existing *uint
			if cmd.Flags().Changed("overwrite") {
				existing = &saveOverwrite
			}
			a.c.OpenSaveDialog()
			id, err := a.c.SavePalette(ctx, args[0], existing, saveDuotone)
			if err != nil {
				return err
			}
			fmt.Printf("Palette ID: %d\n", id)
			return nil
		})
	},
}

var paletteLoadCmd = &cobra.Command{
	Use:   "load <id>",
	Short: "Make a saved palette the current theme",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id := parseID(args[0])
		run(func(ctx context.Context, a *app) error {
			_, err := a.c.LoadPalette(ctx, id)
			return err
		})
	},
}

var paletteDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a saved palette",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id := parseID(args[0])
		run(func(ctx context.Context, a *app) error {
			outcome, err := a.c.DeletePalette(ctx, id)
			if err != nil {
				return err
			}
			fmt.Printf("Delete %s.\n", outcome)
			return nil
		})
	},
}

var (
	exportFormat  string
	exportOutput  string
	exportCurrent bool
	exportAll     bool
)

var paletteExportCmd = &cobra.Command{
	Use:   "export [id]",
	Short: "Export a palette to a JSON or YAML file",
	Long: `Export a saved palette, the current unsaved theme (--current) or every
saved palette (--all) as import-ready files.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		format, err := palettes.ParseFormat(exportFormat)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		run(func(ctx context.Context, a *app) error {
			if exportAll {
				exporter := backup.NewPaletteExporter(config.GetString("backups.path"), a.store)
				paths, err := exporter.ExportAll(ctx, format)
				if err != nil {
					return err
				}
				for _, p := range paths {
					fmt.Println(p)
				}
				return nil
			}

			var (
				export *customizer.Export
				err    error
			)
			switch {
			case exportCurrent:
				export, err = a.c.ExportCurrent(format)
			case len(args) == 1:
				export, err = a.c.ExportPalette(ctx, parseID(args[0]), format)
			default:
				return fmt.Errorf("a palette id, --current or --all is required")
			}
			if err != nil {
				return err
			}

			if exportOutput == "-" {
				_, err := os.Stdout.Write(export.Data)
				return err
			}
			path := exportOutput
			if path == "" {
				path = export.Filename
			} else if info, err := os.Stat(path); err == nil && info.IsDir() {
				path = filepath.Join(path, export.Filename)
			}
			if err := os.WriteFile(path, export.Data, 0644); err != nil {
				return fmt.Errorf("failed to write %s: %w", path, err)
			}
			fmt.Printf("Exported to %s\n", path)
			return nil
		})
	},
}

var paletteImportCmd = &cobra.Command{
	Use:   "import <file|->",
	Short: "Import a palette file and apply it",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		var (
			data []byte
			err  error
		)
		if args[0] == "-" {
			data, err = io.ReadAll(os.Stdin)
		} else {
			data, err = os.ReadFile(args[0])
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		run(func(ctx context.Context, a *app) error {
			id, imported, err := a.c.ImportPalette(ctx, data)
			if err != nil {
				return err
			}
			fmt.Printf("Palette ID: %d\n", id)
			if imported.Recovered {
				fmt.Println("Colors were recovered from an unrecognized layout; check the result.")
			}
			return nil
		})
	},
}

// parseID parses a palette id argument or exits.
func parseID(s string) uint {
	id, err := strconv.ParseUint(s, 10, 32)
	if err != nil || id == 0 {
		fmt.Fprintf(os.Stderr, "Error: invalid palette ID %q\n", s)
		os.Exit(1)
	}
	return uint(id)
}

func init() {
	paletteSaveCmd.Flags().UintVar(&saveOverwrite, "overwrite", 0, "overwrite the palette with this id")
	paletteSaveCmd.Flags().BoolVar(&saveDuotone, "duotone", false, "mark the palette as duotone")

	paletteExportCmd.Flags().StringVarP(&exportFormat, "format", "f", "json", "json or yaml")
	paletteExportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file or directory, - for stdout")
	paletteExportCmd.Flags().BoolVar(&exportCurrent, "current", false, "export the current unsaved theme")
	paletteExportCmd.Flags().BoolVar(&exportAll, "all", false, "export every saved palette to the backups directory")
	paletteExportCmd.MarkFlagsMutuallyExclusive("current", "all")

	paletteCmd.AddCommand(paletteListCmd)
	paletteCmd.AddCommand(paletteShowCmd)
	paletteCmd.AddCommand(paletteSaveCmd)
	paletteCmd.AddCommand(paletteLoadCmd)
	paletteCmd.AddCommand(paletteDeleteCmd)
	paletteCmd.AddCommand(paletteExportCmd)
	paletteCmd.AddCommand(paletteImportCmd)
	rootCmd.AddCommand(paletteCmd)
}

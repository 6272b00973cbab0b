package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var opt = defaultOption()

var rootCmd = &cobra.Command{
	Use:   "glyphview [flags] <image|directory>...",
	Short: "Show images in the terminal with block and teletext characters",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		setupLogger(opt.Debug)
		opt.Paths = args
		if err := run(cmd.Context(), &opt, cmd.OutOrStdout()); err != nil {
			return err
		}
		return nil
	},
}

func init() {
	f := rootCmd.Flags()
	f.StringVarP(&opt.Mode, "mode", "m", opt.Mode, "color mode: auto, truecolor, 256 or 16")
	f.BoolVarP(&opt.NoOpt, "noopt", "0", opt.NoOpt, "only use the half block character")
	f.BoolVarP(&opt.Teletext, "teletext", "x", opt.Teletext, "also use teletext sextant characters")
	f.BoolVar(&opt.FG, "fg", opt.FG, "color the foreground")
	f.BoolVar(&opt.BG, "bg", opt.BG, "color the background")
	f.IntVarP(&opt.Width, "width", "w", opt.Width, "maximum width in characters (default: terminal width)")
	f.IntVarP(&opt.Height, "height", "H", opt.Height, "maximum height in characters (default: terminal height)")
	f.IntVarP(&opt.Columns, "columns", "c", opt.Columns, "thumbnail columns when showing several images")
	f.BoolVarP(&opt.ASCII, "ascii", "a", opt.ASCII, "draw with ASCII characters only")
	f.BoolVarP(&opt.Interactive, "interactive", "i", opt.Interactive, "browse the images full screen")
	f.IntVarP(&opt.Workers, "workers", "j", opt.Workers, "rows rendered in parallel (default: number of CPUs)")
	f.BoolVar(&opt.Debug, "debug", opt.Debug, "log debug information to stderr")
}

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

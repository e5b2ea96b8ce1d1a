package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"hc08re/internal/analysis"
)

var stringsCmd = &cobra.Command{
	Use:   "strings [file]",
	Short: "List printable ASCII runs",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		absPath, err := resolveFile(args[0])
		if err != nil {
			return err
		}
		cfg, err := settings(cmd)
		if err != nil {
			return err
		}
		binary, _ := cmd.Flags().GetBool("binary")
		all, _ := cmd.Flags().GetBool("all")

		minLen := cfg.MinStringLength
		if cmd.Flags().Changed("min") {
			minLen, _ = cmd.Flags().GetInt("min")
		}

		logger := newLogger(cmd)
		defer logger.Close()

		ld, err := loadImage(absPath, binary, cfg.BaseAddress, logger.Logger)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		for _, s := range analysis.FindStrings(ld.Image, minLen) {
			if !all && s.HexLike() {
				continue
			}
			fmt.Fprintf(out, "%04X: %q\n", s.Address, s.Value)
		}
		return nil
	},
}

func init() {
	stringsCmd.Flags().IntP("min", "m", 0, "Minimum run length (default from config)")
	stringsCmd.Flags().BoolP("all", "a", false, "Keep runs made only of hex digits")
	rootCmd.AddCommand(stringsCmd)
}

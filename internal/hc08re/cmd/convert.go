package cmd

import (
	"fmt"
	"os"
	pathpkg "path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"hc08re/internal/srec"
)

var convertCmd = &cobra.Command{
	Use:   "convert [input] [output]",
	Short: "Convert between S-records and flat binaries",
	Long: `Convert reads the input like every other command and writes the image
as a flat binary when output ends in .bin, as S-records otherwise. Gaps
between records are written as 0xFF.`,
	Example: `
# S-record to binary
hc08re convert firmware.s19 firmware.bin

# Binary back to S-records at 0x8000
hc08re convert --base 0x8000 firmware.bin firmware.s19
  `,
	Args: cobra.ExactArgs(2),
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
		header, _ := cmd.Flags().GetString("header")

		logger := newLogger(cmd)
		defer logger.Close()

		ld, err := loadImage(absPath, binary, cfg.BaseAddress, logger.Logger)
		if err != nil {
			return err
		}
		if header == "" && ld.File != nil {
			header = ld.File.Header
		}

		out, err := os.Create(args[1])
		if err != nil {
			return fmt.Errorf("failed to create output: %w", err)
		}
		defer out.Close()

		if strings.EqualFold(pathpkg.Ext(args[1]), ".bin") {
			_, err = ld.Image.WriteTo(out)
		} else {
			err = srec.Encode(out, ld.Image, header)
		}
		if err != nil {
			return fmt.Errorf("failed to write %s: %w", args[1], err)
		}

		logger.Info("converted",
			"from", ld.Format,
			"start", fmt.Sprintf("0x%04X", ld.Image.Start()),
			"end", fmt.Sprintf("0x%04X", ld.Image.End()),
			"bytes", ld.Image.Len())
		return out.Close()
	},
}

func init() {
	convertCmd.Flags().String("header", "", "S0 header text (default: keep the input header)")
	rootCmd.AddCommand(convertCmd)
}

package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"

	"hc08re/internal/disasm"
	"hc08re/internal/registers"
	"hc08re/internal/ui/colorize"
)

var disasmCmd = &cobra.Command{
	Use:   "disasm [file]",
	Short: "Print the disassembly listing",
	Example: `
# Whole image
hc08re disasm firmware.s19

# One routine starting at a JSR target
hc08re disasm --from 0x9A40 --routine firmware.s19
  `,
	Args: cobra.ExactArgs(1),
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
		limit, _ := cmd.Flags().GetInt("limit")
		routine, _ := cmd.Flags().GetBool("routine")

		logger := newLogger(cmd)
		defer logger.Close()

		ld, err := loadImage(absPath, binary, cfg.BaseAddress, logger.Logger)
		if err != nil {
			return err
		}
		regs, err := registers.Resolve(cfg.Registers)
		if err != nil {
			return err
		}

		stream := disasm.DecodeAll(ld.Image, disasm.Options{Registers: regs})
		if cmd.Flags().Changed("from") {
			from, _ := cmd.Flags().GetUint32("from")
			if routine {
				stream = stream.Routine(from, limit)
				if stream == nil {
					return fmt.Errorf("no instruction starts at 0x%04X", from)
				}
			} else {
				stream = stream[stream.Seek(from):]
			}
		}
		if limit > 0 && len(stream) > limit {
			stream = stream[:limit]
		}

		if !term.IsTerminal(os.Stdout.Fd()) {
			os.Setenv(colorize.NoColorEnv, "1")
		}
		listing, err := colorize.Listing(stream.Listing())
		if err != nil {
			logger.Debug("colorize failed", "err", err)
		}
		fmt.Fprint(cmd.OutOrStdout(), listing)
		return nil
	},
}

func init() {
	disasmCmd.Flags().IntP("limit", "l", 0, "Stop after this many instructions (0 for all)")
	disasmCmd.Flags().Uint32("from", 0, "Start the listing at this address")
	disasmCmd.Flags().Bool("routine", false, "With --from, stop at the first RTS or RTI")
	rootCmd.AddCommand(disasmCmd)
}

package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"hc08re/internal/report"
)

var runCmd = &cobra.Command{
	Use:   "run [file] [section...]",
	Short: "Run a single non-interactive analysis",
	Long: `Run the analysis in non-interactive mode and exit.
With no sections the whole summary is printed. Sections: ` + strings.Join(report.Sections(), ", ") + `.`,
	Example: `
# Print the summary
hc08re run firmware.s19

# Only the I/O register table and the loops, without loader warnings
hc08re run -q firmware.s19 io loops
  `,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		absPath, err := resolveFile(args[0])
		if err != nil {
			return err
		}
		sections := args[1:]
		for _, name := range sections {
			if !validSection(name) {
				return fmt.Errorf("unknown section %q (want one of %s)", name, strings.Join(report.Sections(), ", "))
			}
		}

		cfg, err := settings(cmd)
		if err != nil {
			return err
		}
		binary, _ := cmd.Flags().GetBool("binary")

		logger := newLogger(cmd)
		defer logger.Close()

		rep, _, err := analyze(absPath, cfg, binary, logger.Logger)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(sections) == 0 {
			return runNoTUI(out, rep, false)
		}
		for i, name := range sections {
			text, _ := rep.Section(name)
			if i > 0 {
				fmt.Fprintln(out)
			}
			fmt.Fprint(out, text)
		}
		return nil
	},
}

func validSection(name string) bool {
	for _, s := range report.Sections() {
		if s == name {
			return true
		}
	}
	return false
}

func init() {
	runCmd.Flags().BoolP("quiet", "q", false, "Hide loader warnings")
}

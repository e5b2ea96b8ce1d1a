package cmd

import (
	"fmt"
	"os"
	pathpkg "path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"hc08re/internal/analysis"
	"hc08re/internal/config"
	"hc08re/internal/image"
	"hc08re/internal/registers"
	"hc08re/internal/report"
	"hc08re/internal/srec"
)

const (
	formatSrec   = "srec"
	formatBinary = "binary"
)

// loaded is a firmware image plus what the loader learned about it.
type loaded struct {
	Path   string
	Format string
	Image  *image.Image
	File   *srec.File // nil for flat binaries
}

// isBinary reports whether path should be read as a flat dump.
func isBinary(path string, force bool) bool {
	return force || strings.EqualFold(pathpkg.Ext(path), ".bin")
}

// loadImage reads path either as S-records or as a flat binary at base.
func loadImage(path string, binary bool, base uint32, logger *log.Logger) (*loaded, error) {
	if isBinary(path, binary) {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open file: %w", err)
		}
		defer f.Close()

		img, err := image.ReadBinary(f, base)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return &loaded{Path: path, Format: formatBinary, Image: img}, nil
	}

	file, err := srec.New(logger).LoadFile(path)
	if err != nil {
		return nil, err
	}
	return &loaded{Path: path, Format: formatSrec, Image: file.Image, File: file}, nil
}

// analyze loads path, runs every analysis pass and builds the report.
func analyze(path string, cfg config.Config, binary bool, logger *log.Logger) (*report.Report, *analysis.Result, error) {
	ld, err := loadImage(path, binary, cfg.BaseAddress, logger)
	if err != nil {
		return nil, nil, err
	}

	regs, err := registers.Resolve(cfg.Registers)
	if err != nil {
		return nil, nil, err
	}

	res, err := analysis.Run(ld.Image, cfg.AnalysisOptions(regs))
	if err != nil {
		return nil, nil, fmt.Errorf("analysis failed: %w", err)
	}

	digest, err := report.DigestFile(path)
	if err != nil {
		return nil, nil, err
	}

	src := report.Source{
		Path:      relativePath(path),
		Digest:    digest,
		Format:    ld.Format,
		Registers: regs.Name(),
	}
	if ld.File != nil {
		src.Header = ld.File.Header
		src.Entry = ld.File.Entry
		src.HasEntry = ld.File.HasEntry
		src.Records = ld.File.Records
		src.Warnings = ld.File.Warnings
	}
	logger.Debug("analysis done",
		"file", src.Path,
		"instructions", len(res.Stream),
		"subroutines", len(res.Subroutines),
		"loops", len(res.Loops))

	return report.Build(res, src, report.Options{RegionSize: cfg.RegionSize}), res, nil
}

// relativePath shortens path relative to the working directory when it can.
func relativePath(path string) string {
	cwd, err := os.Getwd()
	if err != nil {
		return path
	}
	rel, err := pathpkg.Rel(cwd, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return rel
}

// settings layers the persistent flags over the config file (or the
// defaults when no file is given).
func settings(cmd *cobra.Command) (config.Config, error) {
	cfg := config.Default()
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		loadedCfg, err := config.Load(path)
		if err != nil {
			return cfg, err
		}
		cfg = loadedCfg
	}
	if cmd.Flags().Changed("base") {
		cfg.BaseAddress, _ = cmd.Flags().GetUint32("base")
	}
	if cmd.Flags().Changed("registers") {
		cfg.Registers, _ = cmd.Flags().GetString("registers")
	}
	return cfg, cfg.Validate()
}

// resolveFile turns the file argument into an absolute path and checks it
// exists.
func resolveFile(file string) (string, error) {
	absPath, err := pathpkg.Abs(file)
	if err != nil {
		return "", fmt.Errorf("failed to resolve path: %w", err)
	}
	if _, err := os.Stat(absPath); err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("file not found: %s", file)
		}
		return "", fmt.Errorf("cannot access file: %w", err)
	}
	return absPath, nil
}

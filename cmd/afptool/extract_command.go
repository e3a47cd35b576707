package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"afptool/internal/afp"
	"afptool/internal/extract"
	"afptool/internal/pipeline"
)

func newExtractCommand(ctx *commandContext) *cobra.Command {
	var opts extract.Options

	cmd := &cobra.Command{
		Use:   "extract FILE DIR",
		Short: "Extract file data and textures from an indexed container",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			loader, err := ctx.newLoader()
			if err != nil {
				return err
			}

			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read container %s: %w", args[0], err)
			}
			container := loader.Open(args[0], data)
			indexed, ok := container.(*afp.IndexedContainer)
			if !ok {
				return pipeline.Wrap(pipeline.ErrConfiguration, "extract", "open",
					fmt.Sprintf("%s is not an indexed container", args[0]), nil)
			}

			runCtx := pipeline.NewRunContext(cmd.Context())
			return extract.NewExtractor(logger).Extract(runCtx, indexed, args[1], opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.Pretend, "pretend", "p", false, "Pretend to extract instead of extracting")
	cmd.Flags().BoolVarP(&opts.WriteRaw, "write-raw", "r", false, "Always write raw texture files")
	cmd.Flags().BoolVarP(&opts.WriteMappings, "write-mappings", "m", false, "Write region mapping files to disk")
	cmd.Flags().BoolVarP(&opts.SplitTextures, "split-textures", "s", false, "Split textures into individual sprites")
	cmd.Flags().BoolVarP(&opts.WriteBytecode, "write-bytecode", "y", false, "Write decompiled bytecode files to disk")
	cmd.Flags().BoolVarP(&opts.WriteBinaries, "write-binaries", "b", false, "Write movie and shape binaries to disk")
	cmd.Flags().BoolVarP(&opts.GenerateOverlays, "generate-mapping-overlays", "g", false, "Write region mapping overlays to disk")

	return cmd
}

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"afptool/internal/flatten"
	"afptool/internal/library"
	"afptool/internal/pipeline"
)

func newDecompileCommand(ctx *commandContext) *cobra.Command {
	var (
		pathFlag string
		dirFlag  string
	)

	cmd := &cobra.Command{
		Use:   "decompile CONTAINER...",
		Short: "Flatten movie clip bytecode into ordered program files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			loader, err := ctx.newLoader()
			if err != nil {
				return err
			}
			containers, err := loadContainers(loader, args)
			if err != nil {
				return err
			}
			normalizer, err := ctx.newNormalizer()
			if err != nil {
				return err
			}

			runCtx := pipeline.NewRunContext(cmd.Context())
			ns, err := library.BuildNamespace(runCtx, normalizer, containers...)
			if err != nil {
				return err
			}

			paths := ns.Paths()
			if pathFlag != "" {
				if _, ok := ns.Clip(pathFlag); !ok {
					return pipeline.Wrap(pipeline.ErrLookup, "decompile", "path",
						"no movie clip registered under "+pathFlag, nil)
				}
				paths = []string{pathFlag}
			}

			if err := os.MkdirAll(dirFlag, 0o755); err != nil {
				return fmt.Errorf("ensure output directory: %w", err)
			}
			for _, path := range paths {
				clip, _ := ns.Clip(path)
				program, err := flatten.Flatten(clip)
				if err != nil {
					return err
				}
				target := filepath.Join(dirFlag, filepath.Base(path)+".code")
				if err := os.WriteFile(target, []byte(program.Text()), 0o644); err != nil {
					return fmt.Errorf("write %s: %w", target, err)
				}
				logger.Info("wrote bytecode", "target", target)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&pathFlag, "path", "", "Only decompile this movie clip path (default: all)")
	cmd.Flags().StringVarP(&dirFlag, "directory", "d", ".", "Directory to write .code files into")

	return cmd
}

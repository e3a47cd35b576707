package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"afptool/internal/library"
	"afptool/internal/pipeline"
)

func newListCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list CONTAINER...",
		Short: "List the renderable paths in one or more containers",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
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

			rows := make([][]string, 0, len(ns.Paths()))
			for _, path := range ns.Paths() {
				clip, _ := ns.Clip(path)
				rows = append(rows, []string{
					path,
					strconv.Itoa(clip.FrameCount()),
					strconv.Itoa(clip.Labels.Len()),
				})
			}
			if len(rows) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No renderable paths found.")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"PATH", "FRAMES", "LABELS"},
				rows,
				[]columnAlignment{alignLeft, alignRight, alignRight},
			))
			return nil
		},
	}
	return cmd
}

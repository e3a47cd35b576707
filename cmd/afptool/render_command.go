package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"afptool/internal/export"
	"afptool/internal/library"
	"afptool/internal/pipeline"
	"afptool/internal/render"
	"afptool/internal/transform"
)

func newRenderCommand(ctx *commandContext) *cobra.Command {
	var (
		pathFlag        string
		outputFlag      string
		backgroundFlag  string
		onlyDepthsFlag  string
		aspectFlag      string
		scaleWidthFlag  float64
		scaleHeightFlag float64
		singleThreaded  bool
	)

	cmd := &cobra.Command{
		Use:   "render CONTAINER...",
		Short: "Render an animation path out of one or more containers",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			// Fail on bad parameters before touching any container.
			format, err := export.FormatFromTarget(outputFlag)
			if err != nil {
				return err
			}
			writer := export.NewWriter(nil, logger)
			if err := writer.EnsureFormat(format); err != nil {
				return err
			}
			req := transform.Request{
				Path:        pathFlag,
				ScaleWidth:  scaleWidthFlag,
				ScaleHeight: scaleHeightFlag,
			}
			if backgroundFlag != "" {
				background, err := transform.ParseColor(backgroundFlag)
				if err != nil {
					return err
				}
				req.Background = &background
			}
			if aspectFlag != "" {
				ratio, err := transform.ParseRatio(aspectFlag)
				if err != nil {
					return err
				}
				req.Aspect = &ratio
			}
			if onlyDepthsFlag != "" {
				depths, err := transform.ParseDepths(onlyDepthsFlag)
				if err != nil {
					return err
				}
				req.OnlyDepths = depths
			}

			runCtx := pipeline.NewRunContext(cmd.Context())

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
			ns, err := library.BuildNamespace(runCtx, normalizer, containers...)
			if err != nil {
				return err
			}

			workers := cfg.Render.Workers
			if singleThreaded {
				workers = 1
			}
			renderer := render.NewRenderer(ns, render.NewFlatCompositor(ns), workers, logger)
			frames, duration, err := renderer.RenderPath(runCtx, req)
			if err != nil {
				return err
			}

			plan, err := export.NewPlan(frames, duration, format, outputFlag)
			if err != nil {
				return err
			}
			if err := writer.Write(plan); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", outputFlag)
			return nil
		},
	}

	cmd.Flags().StringVar(&pathFlag, "path", "", "Movie clip path to render (see the list command)")
	cmd.Flags().StringVar(&outputFlag, "output", "out.gif", "Output file ending in .gif, .webp, or .png")
	cmd.Flags().StringVar(&backgroundFlag, "background-color", "", "Background color as comma-separated RGB or RGBA (0-255)")
	cmd.Flags().StringVar(&onlyDepthsFlag, "only-depths", "", "Only render objects on these comma-separated depth planes")
	cmd.Flags().StringVar(&aspectFlag, "force-aspect-ratio", "", "Force the aspect ratio, such as 16:9 or 4:3")
	cmd.Flags().Float64Var(&scaleWidthFlag, "scale-width", 1.0, "Scale the animation width by a factor")
	cmd.Flags().Float64Var(&scaleHeightFlag, "scale-height", 1.0, "Scale the animation height by a factor")
	cmd.Flags().BoolVar(&singleThreaded, "single-threaded", false, "Disable multi-threaded rendering")
	_ = cmd.MarkFlagRequired("path")

	return cmd
}

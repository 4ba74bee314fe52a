package main

import (
	"github.com/spf13/cobra"

	"github.com/GoSim-25-26J-441/portfolio/config"
	"github.com/GoSim-25-26J-441/portfolio/internal/bootstrap"
	"github.com/GoSim-25-26J-441/portfolio/internal/logutils"
	"github.com/GoSim-25-26J-441/portfolio/internal/projects/service"
	"github.com/GoSim-25-26J-441/portfolio/internal/web"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert the content file's projects into an empty collection",
	Long: `Reads the projects listed in the site content file and stores them.

Nothing is written when the collection already has projects.`,
	RunE: runSeed,
}

func runSeed(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logutils.Configure(cfg.App.LogLevel, cfg.App.Environment)

	content, err := web.LoadContent(cfg.App.ContentPath)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	res, err := bootstrap.OpenResources(ctx, cfg)
	if err != nil {
		return err
	}
	defer res.Close()

	n, err := service.NewProjectService(res.Projects).Seed(ctx, content.Projects)
	if err != nil {
		return err
	}
	logutils.Log.WithFields(logutils.Fields{"inserted": n, "store": cfg.Store.Driver}).Info("seed finished")
	return nil
}

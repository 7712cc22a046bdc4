package main

import (
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/vango-dev/signalgraph/internal/config"
	"github.com/vango-dev/signalgraph/internal/errors"
)

func initCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [dir]",
		Short: "Write a default signalgraph.json",
		Long: `Write a signalgraph.json with default settings and the example graph:
one house with two rooms and a window in the first room.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			return runInit(dir, force)
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing config")

	return cmd
}

func runInit(dir string, force bool) error {
	if config.Exists(dir) && !force {
		return errors.New("G010").
			WithDetail(config.ConfigFileName + " already exists in " + dir).
			WithSuggestion("Use --force to overwrite it")
	}

	path := filepath.Join(dir, config.ConfigFileName)
	if err := config.New().SaveTo(path); err != nil {
		return err
	}
	success("Created %s", path)
	info("Run 'signalgraph serve --dir %s' to serve it", dir)
	return nil
}

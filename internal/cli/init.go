package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/lingocli/lingo/internal/config"
	"github.com/lingocli/lingo/internal/workspace"
)

func newInitCmd(a *app) *cobra.Command {
	var host string

	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Create a lingo workspace in a directory",
		Long: `Create the ` + workspace.MarkerDir + ` marker directory and a skeleton mapping file.
Every other command finds the workspace by walking up from the current
directory to this marker.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target := "."
			if len(args) == 1 {
				target = args[0]
			}
			return a.runInit(target, host)
		},
	}

	cmd.Flags().StringVar(&host, "host", config.DefaultHost, "translation server the workspace talks to")
	return cmd
}

func (a *app) runInit(target, host string) error {
	if err := config.ValidateHost(host); err != nil {
		return err
	}
	root, err := filepath.Abs(target)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", target, err)
	}

	path := config.ProjectPath(root)
	if _, err := os.Stat(path); err == nil {
		if !confirm(a.stdin, a.stdout, fmt.Sprintf("%s already exists, start over?", path), false) {
			a.ui.info("keeping the existing configuration")
			return nil
		}
	}

	if err := workspace.EnsureDir(filepath.Join(root, workspace.MarkerDir)); err != nil {
		return err
	}
	if err := config.SaveProject(root, config.NewProject(host)); err != nil {
		return err
	}

	a.ui.success("initialized workspace in %s", root)
	a.ui.next("attach a remote project", "lingo remote <url>")
	return nil
}

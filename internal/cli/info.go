package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"

	"github.com/lingocli/lingo/internal/api"
	"github.com/lingocli/lingo/internal/config"
	"github.com/lingocli/lingo/internal/workspace"
)

func newInfoCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show the remote project's details",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runInfo(cmd.Context())
		},
	}
}

func (a *app) runInfo(ctx context.Context) error {
	root, err := workspace.FindRoot(a.flags.workspace)
	if err != nil {
		return err
	}
	project, err := config.LoadProject(root)
	if err != nil {
		return err
	}
	if project.Project == "" {
		return fmt.Errorf("no project attached to this workspace, run 'lingo remote <url>' first")
	}

	info, err := a.credentials(project.Host)
	if err != nil {
		return err
	}
	params := map[string]string{
		"hostname": project.Host,
		"project":  project.Project,
	}

	spin := a.spin("fetching " + project.Project)
	details, err := a.client.GetDetails(ctx, "project_details", info, params)
	spin.stop()

	var notFound *api.NotFoundError
	if errors.As(err, &notFound) {
		a.ui.warn("project %s does not exist on %s (yet)", project.Project, project.Host)
		return nil
	}
	if err != nil {
		return err
	}

	a.ui.title("project %s", project.Project)
	a.ui.keyValue("name", details.Get("name").String())
	a.ui.keyValue("slug", details.Get("slug").String())
	if description := details.Get("description").String(); description != "" {
		a.ui.keyValue("description", description)
	}
	if source := details.Get("source_language_code").String(); source != "" {
		a.ui.keyValue("source", source)
	}

	resources, err := a.client.GetDetails(ctx, "resources", info, params)
	if err != nil {
		// The details above already rendered; the listing is additive.
		a.logger.Debug("resource listing failed", "error", err)
		return nil
	}
	a.ui.blank()
	count := 0
	resources.ForEach(func(_, res gjson.Result) bool {
		count++
		a.ui.detail("%s (%s)", res.Get("slug").String(), res.Get("name").String())
		return true
	})
	a.ui.info("%d remote resource(s)", count)
	return nil
}

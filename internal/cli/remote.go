package cli

import (
	"context"
	"errors"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"

	"github.com/lingocli/lingo/internal/api"
	"github.com/lingocli/lingo/internal/config"
	"github.com/lingocli/lingo/internal/urls"
	"github.com/lingocli/lingo/internal/workspace"
)

func newRemoteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "remote <url>",
		Short: "Attach a remote project or resource to the workspace",
		Long: `Attach a remote address to the workspace configuration. Two address
forms are accepted:

  http(s)://<host>/projects/p/<project>/
  http(s)://<host>/projects/p/<project>/resource/<resource>/

The address is checked against the server first. One that does not exist
yet is recorded anyway and reported, so a mapping can be prepared ahead of
the first push.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runRemote(cmd.Context(), args[0])
		},
	}
}

func (a *app) runRemote(ctx context.Context, raw string) error {
	logger := loggerFromContext(ctx)

	root, err := workspace.FindRoot(a.flags.workspace)
	if err != nil {
		return err
	}
	parsed, err := urls.Parse(raw)
	if err != nil {
		return err
	}
	logger.Debug("parsed remote", "kind", parsed.Kind, "host", parsed.Hostname, "project", parsed.Project)

	info, err := a.credentials(parsed.Hostname)
	if err != nil {
		return err
	}

	call := "project_details"
	params := map[string]string{
		"hostname": parsed.Hostname,
		"project":  parsed.Project,
	}
	if parsed.Kind == urls.KindResource {
		call = "resource_details"
		params["resource"] = parsed.Resource
	}

	spin := a.spin("checking " + parsed.URL())
	details, err := a.client.GetDetails(ctx, call, info, params)
	spin.stop()

	exists := true
	var notFound *api.NotFoundError
	switch {
	case errors.As(err, &notFound):
		exists = false
	case err != nil:
		return err
	}

	project, err := loadOrCreate(root, parsed.Hostname)
	if err != nil {
		return err
	}
	project.Host = parsed.Hostname
	project.Project = parsed.Project
	if parsed.Kind == urls.KindResource {
		slug := parsed.Project + "." + parsed.Resource
		if project.Resource(slug) == nil {
			project.Resources = append(project.Resources, config.Resource{
				Slug:       slug,
				FileFilter: defaultFileFilter(slug, details),
				SourceLang: details.Get("source_language_code").String(),
				Type:       details.Get("i18n_type").String(),
			})
		}
	}
	if err := config.SaveProject(root, project); err != nil {
		return err
	}

	if exists {
		a.ui.success("%s %s found on %s", parsed.Kind, remoteName(parsed), parsed.Hostname)
	} else {
		a.ui.warn("%s %s does not exist on %s (yet)", parsed.Kind, remoteName(parsed), parsed.Hostname)
	}
	a.ui.success("recorded in %s", config.ProjectPath(root))
	return nil
}

// loadOrCreate reads the workspace mapping, starting a fresh one when the
// file has not been written yet.
func loadOrCreate(root, host string) (*config.Project, error) {
	project, err := config.LoadProject(root)
	switch {
	case err == nil:
		return project, nil
	case errors.Is(err, os.ErrNotExist):
		return config.NewProject(host), nil
	}
	return nil, err
}

// defaultFileFilter proposes a mapping for a freshly attached resource.
// The extension comes from the server-reported format when one is known.
func defaultFileFilter(slug string, details gjson.Result) string {
	ext := strings.ToLower(details.Get("i18n_type").String())
	if ext == "" {
		ext = "po"
	}
	return "translations/" + slug + "/<lang>." + ext
}

func remoteName(p urls.Parsed) string {
	if p.Kind == urls.KindResource {
		return p.Project + "." + p.Resource
	}
	return p.Project
}

package cli

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"

	"github.com/lingocli/lingo/internal/api"
	"github.com/lingocli/lingo/internal/config"
	"github.com/lingocli/lingo/internal/filter"
	"github.com/lingocli/lingo/internal/workspace"
)

func newStatusCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Summarize local files and remote translation state",
		Long: `Walk the workspace, match files against each resource's file filter, and
report the mapped languages next to the server's translation statistics.
Mapped files that are not UTF-8 encoded are flagged, since the server
accepts only UTF-8 uploads.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runStatus(cmd.Context())
		},
	}
}

func (a *app) runStatus(ctx context.Context) error {
	logger := loggerFromContext(ctx)

	root, err := workspace.FindRoot(a.flags.workspace)
	if err != nil {
		return err
	}
	project, err := config.LoadProject(root)
	if err != nil {
		return err
	}
	if err := project.Validate(); err != nil {
		return fmt.Errorf("%s: %w", config.ProjectPath(root), err)
	}

	files, err := workspace.Files(root)
	if err != nil {
		return err
	}
	logger.Debug("workspace walked", "root", root, "files", len(files))

	info, err := a.credentials(project.Host)
	if err != nil {
		return err
	}

	a.ui.title("project %s", project.Project)
	a.ui.keyValue("host", project.Host)
	if len(project.Resources) == 0 {
		a.ui.info("no resources configured")
		a.ui.next("attach one", "lingo remote <url>")
		return nil
	}

	for _, res := range project.Resources {
		a.ui.blank()
		a.ui.title("%s", res.Slug)
		if res.SourceLang != "" {
			a.ui.keyValue("source", res.SourceLang)
		}

		pattern := filter.Compile(res.FileFilter, root)
		byLang := mapResourceFiles(files, pattern)
		a.printLocalFiles(root, res, byLang)

		if err := a.printRemoteStats(ctx, info, project, res); err != nil {
			return err
		}
	}
	return nil
}

// mapResourceFiles matches walked files against a compiled filter and
// keys them by extracted language. A filter without a language group maps
// its single matching file under the empty key.
func mapResourceFiles(files []string, pattern filter.Pattern) map[string]string {
	byLang := make(map[string]string)
	for _, file := range files {
		slash := filepath.ToSlash(file)
		if lang, ok := pattern.Lang(slash); ok {
			byLang[lang] = file
		} else if pattern.Groups() == 0 && pattern.Match(slash) {
			byLang[""] = file
		}
	}
	return byLang
}

func (a *app) printLocalFiles(root string, res config.Resource, byLang map[string]string) {
	if len(byLang) == 0 {
		a.ui.warn("no local files match %s", res.FileFilter)
		return
	}

	langs := make([]string, 0, len(byLang))
	for lang := range byLang {
		langs = append(langs, lang)
	}
	sort.Strings(langs)

	for _, lang := range langs {
		path := byLang[lang]
		rel, err := filepath.Rel(root, path)
		if err != nil {
			rel = path
		}
		rel = filepath.ToSlash(rel)

		label := lang
		if label == "" {
			label = res.Slug
		}
		a.ui.file(label, rel)

		encoding, err := workspace.SniffEncoding(path)
		if err != nil {
			a.logger.Debug("encoding sniff failed", "file", path, "error", err)
			continue
		}
		if encoding != "utf-8" {
			a.ui.warn("%s looks %s encoded, the server expects utf-8", rel, encoding)
		}
	}
	a.ui.info("%d local translation file(s)", len(byLang))
}

// printRemoteStats fetches the resource's details and per-language
// statistics. A resource the server does not know yet is reported, not
// fatal; every other failure propagates unchanged.
func (a *app) printRemoteStats(ctx context.Context, info api.ConnectionInfo, project *config.Project, res config.Resource) error {
	params := apiParams(project, res)

	spin := a.spin("fetching " + res.Slug)
	_, err := a.client.GetDetails(ctx, "resource_details", info, params)
	if err == nil {
		var stats gjson.Result
		stats, err = a.client.GetDetails(ctx, "statistics", info, params)
		if err == nil {
			spin.stop()
			stats.ForEach(func(lang, data gjson.Result) bool {
				a.ui.detail("%s %s translated", lang.String(), data.Get("completed").String())
				return true
			})
			return nil
		}
	}
	spin.stop()

	var notFound *api.NotFoundError
	if errors.As(err, &notFound) {
		a.ui.warn("not on %s yet", project.Host)
		return nil
	}
	return err
}

// apiParams derives the request parameters for a configured resource. The
// stored slug has the <project>.<resource> form; the API addresses the
// parts separately.
func apiParams(project *config.Project, res config.Resource) map[string]string {
	resource := res.Slug
	if idx := strings.Index(resource, "."); idx >= 0 {
		resource = resource[idx+1:]
	}
	return map[string]string{
		"hostname": project.Host,
		"project":  project.Project,
		"resource": resource,
	}
}

package cli

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/term"
	"github.com/nikbrunner/termhome/internal/content"
	"github.com/nikbrunner/termhome/internal/linkcheck"
	"github.com/nikbrunner/termhome/internal/logging"
	"github.com/nikbrunner/termhome/internal/picker"
	"github.com/spf13/cobra"
)

func newSearchCmd(app *App) *cobra.Command {
	var list bool
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Fuzzy search post and resource titles",
		Long: "Fuzzy search post and resource titles. On a terminal the hits open in a " +
			"picker; the chosen post is rendered and the chosen link opened in the browser.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			site, err := app.loadSite()
			if err != nil {
				return err
			}

			query := strings.Join(args, " ")
			results := content.Search(site, query)
			out := cmd.OutOrStdout()
			if len(results) == 0 {
				fmt.Fprintf(out, "No matches for '%s'\n", query)
				return nil
			}

			if list || !isTerminal(out) {
				for _, r := range results {
					fmt.Fprintf(out, "%-8s  %-30s  %s\n", r.Kind, r.ID, r.Title)
				}
				return nil
			}

			items := make([]picker.Item, len(results))
			for i, r := range results {
				items[i] = picker.Item{Result: r, Detail: searchDetail(site, r)}
			}

			chosen := items[0]
			if len(items) > 1 {
				final, err := tea.NewProgram(picker.New(items, query)).Run()
				if err != nil {
					return fmt.Errorf("run picker: %w", err)
				}
				var ok bool
				if chosen, ok = final.(picker.Picker).Selected(); !ok {
					return nil
				}
			}
			return app.open(out, site, chosen.Result)
		},
	}
	cmd.Flags().BoolVarP(&list, "list", "l", false, "print matches instead of picking one")
	return cmd
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(f.Fd())
}

// searchDetail is the context line shown under a hit.
func searchDetail(site content.Site, r content.SearchResult) string {
	if r.Kind == content.KindPost {
		if p, ok := site.Post(r.ID); ok {
			return p.Date.Format("2006-01-02") + " · " + p.Category
		}
		return ""
	}
	if res, ok := site.Resource(r.ID); ok {
		if res.Link != "" {
			return res.Link
		}
		return res.Topic
	}
	return ""
}

// open renders a chosen post or opens a chosen resource's link.
func (a *App) open(out io.Writer, site content.Site, r content.SearchResult) error {
	if r.Kind == content.KindPost {
		post, ok := site.Post(r.ID)
		if !ok {
			return fmt.Errorf("post %q not found", r.ID)
		}
		rendered, err := content.RenderPost(post, a.cfg.UI.MarkdownStyle, terminalWidth())
		if err != nil {
			return err
		}
		fmt.Fprint(out, rendered)
		return nil
	}

	res, ok := site.Resource(r.ID)
	if !ok || res.Link == "" {
		fmt.Fprintf(out, "%s has no link\n", r.Title)
		return nil
	}
	fmt.Fprintf(out, "Opening: %s\n", res.Title)
	openURL(res.Link)
	return nil
}

// openURL opens a URL in the default browser.
func openURL(url string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "linux":
		cmd = exec.Command("xdg-open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	}
	if cmd != nil {
		_ = cmd.Start()
	}
}

func terminalWidth() int {
	if w, _, err := term.GetSize(os.Stdout.Fd()); err == nil && w > 0 {
		return min(w, 100)
	}
	return 80
}

func newReadCmd(app *App) *cobra.Command {
	var width int
	cmd := &cobra.Command{
		Use:   "read <post-id>",
		Short: "Render a blog post",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			site, err := app.loadSite()
			if err != nil {
				return err
			}
			post, ok := site.Post(args[0])
			if !ok {
				return fmt.Errorf("post %q not found", args[0])
			}

			if width <= 0 {
				width = terminalWidth()
			}
			out, err := content.RenderPost(post, app.cfg.UI.MarkdownStyle, width)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}
	cmd.Flags().IntVar(&width, "width", 0, "wrap width (default: terminal width)")
	return cmd
}

func newImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import <bookmarks.html>",
		Short: "Import browser bookmarks as resources",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			site, err := app.loadSite()
			if err != nil {
				return err
			}

			file, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer file.Close()

			resources, err := content.ParseBookmarksHTML(file)
			if err != nil {
				return fmt.Errorf("parse bookmarks: %w", err)
			}

			known := make(map[string]bool, len(site.Resources))
			for _, r := range site.Resources {
				if r.Link != "" {
					known[r.Link] = true
				}
			}

			added, skipped := 0, 0
			for _, r := range resources {
				if known[r.Link] {
					skipped++
					continue
				}
				path, err := content.WriteResource(app.cfg.Content.Dir, r)
				if err != nil {
					return fmt.Errorf("write %q: %w", r.Title, err)
				}
				app.log.Debug("resource imported", "path", path)
				known[r.Link] = true
				added++
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Imported %d resources", added)
			if skipped > 0 {
				fmt.Fprintf(out, " (%d duplicates skipped)", skipped)
			}
			fmt.Fprintln(out)
			return nil
		},
	}
}

func newExportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "export [path]",
		Short: "Export resources as a browser bookmark file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			outputPath := ""
			if len(args) == 1 {
				outputPath = args[0]
			}
			if outputPath == "" {
				var err error
				outputPath, err = content.DefaultExportPath()
				if err != nil {
					return fmt.Errorf("default export path: %w", err)
				}
			}

			site, err := app.loadSite()
			if err != nil {
				return err
			}

			if err := os.WriteFile(outputPath, []byte(content.ExportHTML(site)), 0644); err != nil {
				return err
			}

			linked := 0
			for _, r := range site.Resources {
				if r.Link != "" {
					linked++
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d resources to %s\n", linked, outputPath)
			return nil
		},
	}
}

func newCheckLinksCmd(app *App) *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:   "check-links",
		Short: "Report dead and unreachable resource links",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			site, err := app.loadSite()
			if err != nil {
				return err
			}

			errOut := cmd.ErrOrStderr()
			results := linkcheck.Check(cmd.Context(), site.Resources, linkcheck.Options{
				Concurrency:    app.cfg.Links.Concurrency,
				Timeout:        app.cfg.Links.Timeout,
				ExcludeDomains: app.cfg.Links.ExcludeDomains,
				Logger:         logging.New("linkcheck"),
				OnProgress: func(completed, total int) {
					fmt.Fprintf(errOut, "\rChecking %d/%d", completed, total)
				},
			})
			if len(results) > 0 {
				fmt.Fprintln(errOut)
			}

			out := cmd.OutOrStdout()
			for _, r := range results {
				if r.Status == linkcheck.Healthy && !all {
					continue
				}
				detail := r.Error
				if detail == "" {
					detail = fmt.Sprint(r.StatusCode)
				}
				fmt.Fprintf(out, "%-11s  %-30s  %s  (%s)\n", r.Status, r.Resource.ID, r.Resource.Link, detail)
			}

			fmt.Fprintf(out, "%d checked, %d dead, %d unreachable\n",
				len(results),
				len(linkcheck.Filter(results, linkcheck.Dead)),
				len(linkcheck.Filter(results, linkcheck.Unreachable)),
			)
			return nil
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "list healthy links too")
	return cmd
}

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/tapmap/internal/cli/styles"
	"github.com/bnema/tapmap/internal/domain/build"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version and build information",
	Run: func(cmd *cobra.Command, _ []string) {
		theme := styles.NewTheme()
		out := cmd.OutOrStdout()
		fmt.Fprintln(out)
		fmt.Fprintln(out, "  "+theme.Title.Render("tapmap")+" "+theme.AccentBadge(orDefault(buildInfo.Version, "dev")))
		fmt.Fprintln(out, theme.RenderInfo(styles.IconGitBranch, "Commit ", orDefault(buildInfo.Commit, "unknown")))
		fmt.Fprintln(out, theme.RenderInfo(styles.IconCalendar, "Built  ", orDefault(buildInfo.BuildDate, "unknown")))
		fmt.Fprintln(out, theme.RenderInfo(styles.IconGo, "Go     ", orDefault(buildInfo.GoVersion, "unknown")))
		fmt.Fprintln(out, theme.RenderInfo(styles.IconGithub, "Source ", build.RepoURL()))
		fmt.Fprintln(out)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

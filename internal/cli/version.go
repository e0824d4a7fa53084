package cli

import (
	"runtime"
	"runtime/debug"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/inkwellco/inkwell/internal/logging"
)

func newVersionCommand(info BuildInfo) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print the version, commit hash, build date, and toolchain of inkwell.`,
		Run: func(cmd *cobra.Command, _ []string) {
			logger := log.NewWithOptions(cmd.OutOrStdout(), log.Options{
				ReportTimestamp: false,
				ReportCaller:    false,
			})
			logger.SetLevel(log.InfoLevel)

			version, commit := resolveBuildInfo(info)
			logger.Info("inkwell",
				logging.FieldVersion, version,
				logging.FieldCommit, commit,
				logging.FieldBuilt, info.Date,
				logging.FieldGoVersion, runtime.Version(),
				logging.FieldPlatform, runtime.GOOS+"/"+runtime.GOARCH,
			)
		},
	}

	return cmd
}

// resolveBuildInfo fills in version and commit from the build info the Go
// toolchain embeds, for binaries built without the release pipeline's
// ldflags (go install, local go build).
func resolveBuildInfo(info BuildInfo) (version, commit string) {
	version, commit = info.Version, info.Commit
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return version, commit
	}
	if (version == "" || version == "dev") &&
		bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		version = bi.Main.Version
	}
	if commit == "" || commit == "none" {
		for _, s := range bi.Settings {
			if s.Key == "vcs.revision" {
				commit = s.Value
				break
			}
		}
	}
	return version, commit
}

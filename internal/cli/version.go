package cli

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/dotadr/internal/buildinfo"
)

const defaultModulePath = "github.com/aidanlsb/dotadr"

type versionInfo struct {
	Version   string `json:"version"`
	Module    string `json:"module"`
	Commit    string `json:"commit,omitempty"`
	BuiltAt   string `json:"built_at,omitempty"`
	Dirty     bool   `json:"dirty"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

var readBuildInfo = debug.ReadBuildInfo

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show dotadr version and build information",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		info := currentVersionInfo()

		if isJSONOutput() {
			outputSuccess(info, nil)
			return nil
		}

		fmt.Printf("dotadr %s (%s)\n", info.Version, info.Platform)
		if info.Commit != "" {
			dirty := ""
			if info.Dirty {
				dirty = ", dirty"
			}
			fmt.Printf("commit %s%s\n", info.Commit, dirty)
		}
		if info.BuiltAt != "" {
			fmt.Printf("built %s\n", info.BuiltAt)
		}
		fmt.Printf("%s, module %s\n", info.GoVersion, info.Module)
		return nil
	},
}

// currentVersionInfo prefers the module build info and falls back to
// ldflags-injected values.
func currentVersionInfo() versionInfo {
	info := versionInfo{
		Version:   "devel",
		Module:    defaultModulePath,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}

	bi, ok := readBuildInfo()
	if ok && bi != nil {
		if bi.Main.Path != "" {
			info.Module = bi.Main.Path
		}
		info.Version = normalizeVersion(bi.Main.Version)
		if bi.GoVersion != "" {
			info.GoVersion = bi.GoVersion
		}

		vcs := make(map[string]string, len(bi.Settings))
		for _, s := range bi.Settings {
			vcs[s.Key] = s.Value
		}
		if vcs["GOOS"] != "" && vcs["GOARCH"] != "" {
			info.Platform = vcs["GOOS"] + "/" + vcs["GOARCH"]
		}
		info.Commit = vcs["vcs.revision"]
		info.BuiltAt = vcs["vcs.time"]
		info.Dirty = strings.EqualFold(vcs["vcs.modified"], "true")
	}

	if info.Version == "devel" && buildinfo.Version != "" {
		info.Version = normalizeVersion(buildinfo.Version)
	}
	if info.Commit == "" {
		info.Commit = buildinfo.Commit
	}
	if info.BuiltAt == "" {
		info.BuiltAt = buildinfo.Date
	}
	return info
}

func normalizeVersion(version string) string {
	if version == "" || version == "(devel)" {
		return "devel"
	}
	return version
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

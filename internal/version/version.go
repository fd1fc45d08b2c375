// Package version reports the version of the jscallback binaries, based on the build
// information embedded by `go build`.
package version

import (
	"fmt"
	"io"
	"runtime"
	"runtime/debug"
	"strconv"
)

const (
	ModulePath            = "github.com/janpfeifer/jscallback"
	BaseVersionControlURL = "https://" + ModulePath
)

// Info holds the version and commit a binary was built from.
type Info struct {
	Version    string
	Commit     string
	Modified   bool
	CommitLink string
}

// Get returns the Info of the running binary.
func Get() *Info {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return &Info{Version: "(devel)"}
	}
	return fromBuildInfo(info)
}

func fromBuildInfo(info *debug.BuildInfo) *Info {
	v := &Info{Version: info.Main.Version}
	if v.Version == "" {
		v.Version = "(devel)"
	}
	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			v.Commit = setting.Value
		case "vcs.modified":
			v.Modified, _ = strconv.ParseBool(setting.Value)
		}
	}
	if v.Commit != "" {
		v.CommitLink = fmt.Sprintf("%s/tree/%s", BaseVersionControlURL, v.Commit)
	}
	return v
}

// String returns the version, with a "-dirty" suffix if built from a modified tree.
func (v *Info) String() string {
	if v.Modified {
		return v.Version + "-dirty"
	}
	return v.Version
}

// Print writes verbose version information to w.
func (v *Info) Print(w io.Writer) {
	_, _ = fmt.Fprintln(w, "jscallback version:", v)
	if v.CommitLink != "" {
		_, _ = fmt.Fprintf(w, "  Commit: %s\n", v.CommitLink)
	}
	_, _ = fmt.Fprintf(w, "  Go version: %s (OS: %s, arch: %s)\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
}

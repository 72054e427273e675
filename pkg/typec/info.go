package typec

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/sys/unix"
)

// Version is the library version reported in session info.
const Version = "v0.1.0"

// Info describes the bound session.
type Info struct {
	Version string
	Kernel  string
	OS      string
	Backend BackendKind
}

func (i Info) String() string {
	return fmt.Sprintf("typec %s using %s on kernel %s (%s)", i.Version, i.Backend, i.Kernel, i.OS)
}

func kernelRelease() string {
	var uname unix.Utsname
	if err := unix.Uname(&uname); err != nil {
		return ""
	}
	return unix.ByteSliceToString(uname.Release[:])
}

func osRelease(path string) string {
	f, err := os.Open(path)
	if err != nil {
		return "linux"
	}
	defer f.Close()

	return osReleaseFrom(f)
}

// osReleaseFrom prefers PRETTY_NAME and falls back to ID and VERSION_ID.
func osReleaseFrom(r io.Reader) string {
	var pretty, id, version string
	scanner := bufio.NewScanner(r)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		value = strings.Trim(value, `"'`)

		switch key {
		case "PRETTY_NAME":
			pretty = value
		case "ID":
			id = value
		case "VERSION_ID":
			version = value
		}
	}

	switch {
	case pretty != "":
		return pretty
	case id != "" && version != "":
		return id + " " + version
	case id != "":
		return id
	}
	return "linux"
}

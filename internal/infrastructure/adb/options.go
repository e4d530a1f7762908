// Package adb talks to an Android device through the adb command line tool:
// a persistent shell for input commands, soft keyboard status probes and the
// display id announced by the mirroring tool.
package adb

import (
	"os/exec"
)

// DefaultPath is the adb executable looked up in PATH.
const DefaultPath = "adb"

// Options selects the adb binary and target device.
type Options struct {
	// Path is the adb executable. Empty means DefaultPath.
	Path string
	// Serial selects a device (`adb -s`), e.g. "192.168.1.20:5555". Empty
	// targets the only connected device.
	Serial string
	// UsePTY runs the persistent shell under a pseudo terminal. Some adb
	// builds only flush stdin line by line when attached to a tty.
	UsePTY bool
}

func (o Options) path() string {
	if o.Path == "" {
		return DefaultPath
	}
	return o.Path
}

// args prefixes extra with the device selection flags.
func (o Options) args(extra ...string) []string {
	var args []string
	if o.Serial != "" {
		args = append(args, "-s", o.Serial)
	}
	return append(args, extra...)
}

// Available reports whether the adb executable can be found.
func (o Options) Available() bool {
	_, err := exec.LookPath(o.path())
	return err == nil
}

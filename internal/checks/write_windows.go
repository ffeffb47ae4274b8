//go:build windows

package checks

import "os"

// writable probes with a temp file since ACLs are not reflected in mode bits.
func writable(dir string) error {
	f, err := os.CreateTemp(dir, ".envdoctor-*")
	if err != nil {
		return err
	}
	name := f.Name()
	_ = f.Close()
	return os.Remove(name)
}

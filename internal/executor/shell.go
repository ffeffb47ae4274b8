package executor

// ShellCommand returns the shell executable and the arguments that precede
// the command string for the given GOOS.
func ShellCommand(goos string) (string, []string) {
	if goos == "windows" {
		return "powershell.exe", []string{"-NoProfile", "-NonInteractive", "-ExecutionPolicy", "Bypass", "-Command"}
	}
	return "/bin/sh", []string{"-c"}
}

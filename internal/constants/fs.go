package constants

import "os"

const (
	// DefaultFilePermissions sets the permissions of files written by the CLI: (rw-r--r--).
	DefaultFilePermissions os.FileMode = 0o644

	// DefaultFolderPermissions sets the permissions of folders created by the CLI: (rwxr-xr-x).
	DefaultFolderPermissions os.FileMode = 0o755
)

package filesystem

import (
	"os"
	"path/filepath"
)

// UserHomeDir returns the current user's home directory.
// If the home directory cannot be determined, it returns "." as a fallback.
func UserHomeDir() string {
	if home, err := os.UserHomeDir(); err == nil {
		return home
	}
	return "."
}

// DataDir returns the directory holding the tool index database.
func DataDir() string {
	return filepath.Join(UserHomeDir(), ".pls", "index")
}

// DBPath returns the path of the SQLite tool database.
func DBPath() string {
	return filepath.Join(DataDir(), "tools.db")
}

// ConfigPath returns the path of the YAML config file.
func ConfigPath() string {
	return filepath.Join(UserHomeDir(), ".pls", "config.yaml")
}

package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/felixgeelhaar/apexmind/internal/store"
)

// homeDir resolves where apexmind keeps its data. APEXMIND_HOME
// overrides the default ~/.apexmind, which also keeps tests off the
// real home directory.
func homeDir() string {
	if dir := os.Getenv("APEXMIND_HOME"); dir != "" {
		return dir
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".apexmind")
}

func getStore() store.Storage {
	s, err := store.NewSQLiteStore(filepath.Join(homeDir(), "apexmind.db"))
	if err != nil {
		fmt.Printf("Failed to init store: %v\n", err)
		os.Exit(1)
	}
	return s
}

package link

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/stratohq/strato/internal/utils"
	"github.com/stratohq/strato/pkg/models"
)

const linkDir = ".strato"
const linkFile = "project.toml"

// Read loads the project link for dir. A missing link file is not an
// error; it reports as LinkStatusNotLinked. An unreadable or malformed
// file reports as LinkStatusError with the cause.
func Read(dir string) (*models.Link, error) {
	path := filepath.Join(dir, linkDir, linkFile)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return &models.Link{Status: models.LinkStatusNotLinked}, nil
	}

	var l models.Link
	if _, err := toml.DecodeFile(path, &l); err != nil {
		return &models.Link{Status: models.LinkStatusError},
			fmt.Errorf("failed to read project link: %w", err)
	}

	if l.Org == "" && l.Project == "" {
		return &models.Link{Status: models.LinkStatusNotLinked}, nil
	}

	l.Status = models.LinkStatusLinked
	return &l, nil
}

// Write records the directory's org/project link.
func Write(dir string, l models.Link) error {
	if err := os.MkdirAll(filepath.Join(dir, linkDir), 0755); err != nil {
		return fmt.Errorf("failed to create %s directory: %w", linkDir, err)
	}

	var buf bytes.Buffer
	buf.WriteString("# managed by 'strato link', do not edit\n")
	encoder := toml.NewEncoder(&buf)
	if err := encoder.Encode(l); err != nil {
		return fmt.Errorf("failed to encode project link: %w", err)
	}

	path := filepath.Join(dir, linkDir, linkFile)
	if err := utils.AtomicWriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write project link: %w", err)
	}

	return nil
}

// Remove deletes the link file. Removing an unlinked directory is a no-op.
func Remove(dir string) error {
	path := filepath.Join(dir, linkDir, linkFile)
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove project link: %w", err)
	}
	return nil
}

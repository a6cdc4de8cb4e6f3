package logging

import (
	"fmt"
	"os"
	"strconv"
)

// maxBackups is the number of rotated copies kept (file.log.1 … file.log.5).
const maxBackups = 5

// rotate shifts file.log.N to file.log.N+1 (dropping the oldest) and moves
// the live file to file.log.1. The caller opens a fresh file afterwards.
func rotate(filePath string, backups int) error {
	name := func(i int) string {
		if i == 0 {
			return filePath
		}
		return filePath + "." + strconv.Itoa(i)
	}

	if err := os.Remove(name(backups)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("logging: rotate remove %s: %w", name(backups), err)
	}

	for i := backups - 1; i >= 0; i-- {
		if err := os.Rename(name(i), name(i+1)); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("logging: rotate rename %s -> %s: %w", name(i), name(i+1), err)
		}
	}

	return nil
}

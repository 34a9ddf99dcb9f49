package pipeline

import (
	"bufio"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// WriteLines writes each line followed by a newline to a temporary file next
// to path, then renames it onto path. On failure path is left untouched and
// the temporary file is removed.
func WriteLines(path string, lines []string) (err error) {
	tmp := filepath.Join(filepath.Dir(path), "."+filepath.Base(path)+"."+uuid.New().String()+".tmp")

	f, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			f.Close()
			os.Remove(tmp)
		}
	}()

	bw := bufio.NewWriter(f)
	for _, line := range lines {
		bw.WriteString(line)
		bw.WriteByte('\n')
	}

	// bufio.Writer errors are sticky, so checking Flush covers every write.
	if err = bw.Flush(); err != nil {
		return err
	}
	if err = f.Sync(); err != nil {
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}

	return os.Rename(tmp, path)
}

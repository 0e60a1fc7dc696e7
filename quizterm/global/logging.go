package global

import (
	"fmt"
	"os"
	"path/filepath"
)

// rollingFileWriter appends to a single log file and, once it grows past
// maxLogSize, shuffles it aside as <name>-old.log (replacing the previous
// archive) and starts fresh.
type rollingFileWriter struct {
	FileDirectory string
	FileName      string
}

func NewRollingFileWriter(fileDir string, fileName string) rollingFileWriter {
	absFileDir, err := filepath.Abs(fileDir)
	if err != nil {
		panic(err)
	}

	if err := os.MkdirAll(absFileDir, 0750); err != nil {
		panic(err)
	}

	return rollingFileWriter{
		FileDirectory: absFileDir,
		FileName:      fileName,
	}
}

const (
	mb         = 1000000
	maxLogSize = 2.5 * mb
)

func (w rollingFileWriter) currentPath() string {
	return filepath.Join(w.FileDirectory, fmt.Sprintf("%s.log", w.FileName))
}

func (w rollingFileWriter) archivePath() string {
	return filepath.Join(w.FileDirectory, fmt.Sprintf("%s-old.log", w.FileName))
}

func (w rollingFileWriter) Write(b []byte) (n int, err error) {
	logFile, err := os.OpenFile(w.currentPath(), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return 0, err
	}

	stats, err := logFile.Stat()
	if err != nil {
		logFile.Close()
		return 0, err
	}

	if stats.Size() < maxLogSize {
		defer logFile.Close()
		return logFile.Write(b)
	}

	// Roll over. Rename clobbers the previous archive, which caps the total
	// log footprint at two files.
	logFile.Close()
	if err := os.Rename(w.currentPath(), w.archivePath()); err != nil {
		return 0, err
	}

	logFile, err = os.OpenFile(w.currentPath(), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return 0, err
	}
	defer logFile.Close()

	return logFile.Write(b)
}

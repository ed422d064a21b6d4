package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/nowwaveradio/suitekit/internal/constants"
)

var filenameTokenRe = regexp.MustCompile(`%[YmdHM]`)

// dailyWriter writes to a file named by expanding the filename pattern with
// the current time. When the expanded name changes (a new day for the default
// pattern) it switches files; within one name lumberjack rolls the file over
// by size.
type dailyWriter struct {
	mu        sync.Mutex
	dir       string
	pattern   string
	maxFiles  int
	maxSizeMB int
	now       func() time.Time

	current string
	out     *lumberjack.Logger
}

func newDailyWriter(dir, pattern string, maxFiles, maxSizeMB int) (*dailyWriter, error) {
	if pattern == "" {
		pattern = constants.DefaultLogFilenamePattern
	}
	w := &dailyWriter{
		dir:       dir,
		pattern:   pattern,
		maxFiles:  maxFiles,
		maxSizeMB: maxSizeMB,
		now:       time.Now,
	}

	// Open the first file right away so permission problems surface at startup.
	if _, err := w.Write(nil); err != nil {
		return nil, err
	}
	return w, nil
}

// Write implements io.Writer
func (w *dailyWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	name := generateLogFilename(w.pattern, w.now())
	if name != w.current {
		if err := w.switchTo(name); err != nil {
			return 0, err
		}
	}
	return w.out.Write(p)
}

// switchTo closes the current file and starts writing to name.
// Must be called with the mutex held.
func (w *dailyWriter) switchTo(name string) error {
	if w.out != nil {
		if err := w.out.Close(); err != nil {
			return fmt.Errorf("failed to close log file: %w", err)
		}
	}

	w.current = name
	w.out = &lumberjack.Logger{
		Filename:   filepath.Join(w.dir, name),
		MaxSize:    w.maxSizeMB,
		MaxBackups: w.maxFiles,
		LocalTime:  true,
	}

	w.cleanOldFiles()
	return nil
}

// cleanOldFiles removes old log files beyond MaxFiles limit
func (w *dailyWriter) cleanOldFiles() {
	if w.maxFiles <= 0 {
		return
	}

	var files []string
	for _, glob := range filenameGlobs(w.pattern) {
		matches, err := filepath.Glob(filepath.Join(w.dir, glob))
		if err != nil {
			return
		}
		files = append(files, matches...)
	}

	currentPath := filepath.Join(w.dir, w.current)
	type fileInfo struct {
		path    string
		modTime time.Time
	}

	var fileInfos []fileInfo
	for _, file := range files {
		if file == currentPath {
			continue
		}
		info, err := os.Stat(file)
		if err != nil {
			continue
		}
		fileInfos = append(fileInfos, fileInfo{path: file, modTime: info.ModTime()})
	}

	// Newest first; the current file counts against the limit.
	sort.Slice(fileInfos, func(i, j int) bool {
		return fileInfos[i].modTime.After(fileInfos[j].modTime)
	})

	for i := w.maxFiles - 1; i < len(fileInfos); i++ {
		os.Remove(fileInfos[i].path)
	}
}

// FileName returns the path currently written to.
func (w *dailyWriter) FileName() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return filepath.Join(w.dir, w.current)
}

// Close closes the log file
func (w *dailyWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.out == nil {
		return nil
	}
	return w.out.Close()
}

// generateLogFilename expands %Y %m %d %H %M in pattern.
func generateLogFilename(pattern string, now time.Time) string {
	if pattern == "" {
		pattern = constants.DefaultLogFilenamePattern
	}

	return filenameTokenRe.ReplaceAllStringFunc(pattern, func(token string) string {
		switch token {
		case "%Y":
			return fmt.Sprintf("%04d", now.Year())
		case "%m":
			return fmt.Sprintf("%02d", now.Month())
		case "%d":
			return fmt.Sprintf("%02d", now.Day())
		case "%H":
			return fmt.Sprintf("%02d", now.Hour())
		default:
			return fmt.Sprintf("%02d", now.Minute())
		}
	})
}

// Glob shapes for each filename token, so a pattern like "%Y.log" never
// matches unrelated files such as "notes.log".
var tokenGlobs = map[string]string{
	"%Y": "[0-9][0-9][0-9][0-9]",
	"%m": "[0-9][0-9]",
	"%d": "[0-9][0-9]",
	"%H": "[0-9][0-9]",
	"%M": "[0-9][0-9]",
}

// lumberjack names backups <name>-2006-01-02T15-04-05.000<ext>.
const backupStampGlob = "[0-9][0-9][0-9][0-9]-[0-9][0-9]-[0-9][0-9]T[0-9][0-9]-[0-9][0-9]-[0-9][0-9].[0-9][0-9][0-9]"

var globMetaReplacer = strings.NewReplacer("*", "[*]", "?", "[?]", "[", "[[]")

// filenameGlobs returns globs matching every file the pattern can produce:
// the expanded names themselves and their lumberjack backups.
func filenameGlobs(pattern string) []string {
	ext := filepath.Ext(pattern)
	base := strings.TrimSuffix(pattern, ext)
	return []string{
		filenameGlob(pattern),
		filenameGlob(base) + "-" + backupStampGlob + globMetaReplacer.Replace(ext),
	}
}

func filenameGlob(pattern string) string {
	return filenameTokenRe.ReplaceAllStringFunc(globMetaReplacer.Replace(pattern), func(token string) string {
		return tokenGlobs[token]
	})
}

// expandLogDirectory resolves the configured directory. An empty value
// selects the per-user platform default.
func expandLogDirectory(dir string) string {
	if dir != "" {
		return dir
	}

	switch runtime.GOOS {
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "NowWaveRadio", "SuiteKit", "logs")
		}
	default:
		if home := os.Getenv("HOME"); home != "" {
			return filepath.Join(home, ".nowwaveradio", "suitekit", "logs")
		}
	}

	return "logs"
}

package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLogRotation(t *testing.T) {
	tempDir := t.TempDir()
	logFile := filepath.Join(tempDir, "tractview.log")

	// 1MB is the smallest size lumberjack accepts.
	cfg := FileConfig{
		Path:       logFile,
		MaxSizeMB:  1,
		MaxBackups: 2,
		MaxAgeDays: 1,
		Compress:   false,
	}

	if err := InitWithFileConfig("debug", cfg, false); err != nil {
		t.Fatalf("failed to init logger: %v", err)
	}
	defer Reset()

	// A verbose trk load: one line per track, enough to pass 1MB.
	trkLog := Named("trk").Sugar()
	scalars := strings.Repeat("0.5 ", 50)
	for i := 0; i < 15000; i++ {
		trkLog.Debugf("track %d: %d points, scalars [%s]", i, 40+i%60, scalars)
	}
	Sync()

	if _, err := os.Stat(logFile); os.IsNotExist(err) {
		t.Error("main log file does not exist")
	}

	files, err := os.ReadDir(tempDir)
	if err != nil {
		t.Fatalf("failed to read temp dir: %v", err)
	}

	var logFiles []string
	for _, f := range files {
		if strings.HasPrefix(f.Name(), "tractview") && strings.Contains(f.Name(), ".log") {
			logFiles = append(logFiles, f.Name())
		}
	}
	t.Logf("Found %d log files: %v", len(logFiles), logFiles)

	if len(logFiles) < 2 {
		t.Errorf("expected at least 2 log files (rotation), got %d", len(logFiles))
	}

	rotatedCount := 0
	for _, name := range logFiles {
		if name == "tractview.log" {
			continue
		}
		rotatedCount++
		// tractview-YYYY-MM-DDTHH-MM-SS.SSS.log
		if !strings.HasPrefix(name, "tractview-20") {
			t.Errorf("rotated file %s doesn't have expected timestamp format", name)
		}
	}
	if rotatedCount == 0 {
		t.Error("no rotated files found")
	}

	content, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	if !strings.Contains(string(content), "DEBUG trk") {
		t.Error("expected trk logger name on rotated entries")
	}
}

func TestLogLevels(t *testing.T) {
	tempDir := t.TempDir()

	tests := []struct {
		level    string
		expected []string
		excluded []string
	}{
		{
			level:    "error",
			expected: []string{"ERROR renderer"},
			excluded: []string{"WARN renderer", "INFO trk", "DEBUG trk"},
		},
		{
			level:    "warn",
			expected: []string{"ERROR renderer", "WARN renderer"},
			excluded: []string{"INFO trk", "DEBUG trk"},
		},
		{
			level:    "info",
			expected: []string{"ERROR renderer", "WARN renderer", "INFO trk"},
			excluded: []string{"DEBUG trk"},
		},
		{
			level:    "debug",
			expected: []string{"ERROR renderer", "WARN renderer", "INFO trk", "DEBUG trk"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			logFile := filepath.Join(tempDir, tt.level+".log")

			cfg := FileConfig{
				Path:       logFile,
				MaxSizeMB:  10,
				MaxBackups: 1,
				MaxAgeDays: 1,
			}
			if err := InitWithFileConfig(tt.level, cfg, false); err != nil {
				t.Fatalf("failed to init logger: %v", err)
			}
			defer Reset()

			trkLog := Named("trk")
			renderLog := Named("renderer")

			trkLog.Debug("header parsed")
			trkLog.Info("tractogram loaded")
			renderLog.Warn("line width clamped")
			renderLog.Error("fiber program link failed")
			Sync()

			content, err := os.ReadFile(logFile)
			if err != nil {
				t.Fatalf("failed to read log file: %v", err)
			}
			logContent := string(content)

			for _, exp := range tt.expected {
				if !strings.Contains(logContent, exp) {
					t.Errorf("expected %q in log output", exp)
				}
			}
			for _, exc := range tt.excluded {
				if strings.Contains(logContent, exc) {
					t.Errorf("unexpected %q in log output for level %s", exc, tt.level)
				}
			}
		})
	}
}

func TestDefaultFileConfig(t *testing.T) {
	cfg := DefaultFileConfig("/tmp/tractview.log")

	if cfg.Path != "/tmp/tractview.log" {
		t.Errorf("expected path /tmp/tractview.log, got %s", cfg.Path)
	}
	if cfg.MaxSizeMB != 50 {
		t.Errorf("expected MaxSizeMB 50, got %d", cfg.MaxSizeMB)
	}
	if cfg.MaxBackups != 3 {
		t.Errorf("expected MaxBackups 3, got %d", cfg.MaxBackups)
	}
	if cfg.MaxAgeDays != 7 {
		t.Errorf("expected MaxAgeDays 7, got %d", cfg.MaxAgeDays)
	}
	if !cfg.Compress {
		t.Error("expected Compress to be true")
	}
}

func TestNopBeforeInit(t *testing.T) {
	Reset()

	// Must not panic when nothing has been initialized.
	Debug("debug message")
	Info("info message")
	Named("renderer").Warn("warn message")
	Sugar.Infof("track count %d", 3)
	Sync()
}

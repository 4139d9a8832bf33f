package platform

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"
)

func TestCreateDirectoryIfNotExists(t *testing.T) {
	// Create temporary directory for testing
	tempDir := t.TempDir()
	testDir := filepath.Join(tempDir, "test_dir")

	// Directory should not exist initially
	if _, err := os.Stat(testDir); !os.IsNotExist(err) {
		t.Fatalf("Test directory already exists: %s", testDir)
	}

	// Create directory
	err := CreateDirectoryIfNotExists(testDir)
	if err != nil {
		t.Fatalf("Failed to create directory: %v", err)
	}

	// Directory should now exist
	if _, err := os.Stat(testDir); os.IsNotExist(err) {
		t.Fatalf("Directory was not created: %s", testDir)
	}

	// Second call should not fail
	err = CreateDirectoryIfNotExists(testDir)
	if err != nil {
		t.Fatalf("Failed to handle existing directory: %v", err)
	}
}

func TestGetHomeDownloadsDir(t *testing.T) {
	downloadsDir, err := GetHomeDownloadsDir()
	if err != nil {
		t.Fatalf("Failed to get downloads directory: %v", err)
	}

	if downloadsDir == "" {
		t.Fatal("Downloads directory is empty")
	}

	// Should end with "Downloads"
	if filepath.Base(downloadsDir) != "Downloads" {
		t.Errorf("Expected directory to end with 'Downloads', got: %s", downloadsDir)
	}
}

func TestOpenFileInManager_NonExistentFile(t *testing.T) {
	nonExistentFile := filepath.Join(t.TempDir(), "nonexistent.txt")

	err := OpenFileInManager(nonExistentFile)
	if err == nil {
		t.Fatal("Expected error for non-existent file, got nil")
	}

	if !strings.Contains(err.Error(), "file does not exist:") {
		t.Errorf("Error message should contain 'file does not exist:', got: %v", err)
	}
}

func TestOpenFileInManager_EmptyPath(t *testing.T) {
	if err := OpenFileInManager(""); err == nil {
		t.Error("Expected error for empty path, got nil")
	}
}

func TestSafeFilename(t *testing.T) {
	tests := []struct {
		name     string
		title    string
		expected string
	}{
		{"plain", "My Video", "My Video"},
		{"punctuation", `What? A "video": part 1/2`, "What A video part 12"},
		{"control characters", "Line\none\ttab", "Lineonetab"},
		{"collapses spaces", "  lots   of   space  ", "lots of space"},
		{"unicode kept", "Клип №5", "Клип №5"},
		{"empty falls back", "???", DefaultFilename},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := SafeFilename(tt.title); result != tt.expected {
				t.Errorf("SafeFilename(%q) = %q, expected %q", tt.title, result, tt.expected)
			}
		})
	}
}

func TestSafeFilename_Truncates(t *testing.T) {
	long := strings.Repeat("я", 200) // 400 bytes

	result := SafeFilename(long)
	if len(result) > MaxFilenameLength {
		t.Errorf("Expected at most %d bytes, got %d", MaxFilenameLength, len(result))
	}
	if !strings.HasPrefix(long, result) {
		t.Error("Truncation should keep a valid prefix")
	}
}

func TestSafeFilename_LeavesRoomForExtension(t *testing.T) {
	result := SafeFilename(strings.Repeat("漢", 100)) // 300 bytes

	if len(result) > MaxFilenameLength {
		t.Errorf("Expected at most %d bytes, got %d", MaxFilenameLength, len(result))
	}
	if !utf8.ValidString(result) {
		t.Error("Truncation should not split a rune")
	}
	if name := result + ".webm"; len(name) > 255 {
		t.Errorf("Filename with extension is %d bytes", len(name))
	}
}

func TestResourcePath(t *testing.T) {
	abs := filepath.Join(t.TempDir(), "icon.png")
	if result := ResourcePath(abs); result != abs {
		t.Errorf("Absolute path should be returned as is, got %s", result)
	}

	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	expected := filepath.Join(wd, "definitely-missing-asset.png")
	if result := ResourcePath("definitely-missing-asset.png"); result != expected {
		t.Errorf("Expected %s, got %s", expected, result)
	}
}

package notifier

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	ps "github.com/mitchellh/go-ps"

	"github.com/nutrilog/nutrilog/internal/constants"
)

// Mock Process
type mockProcess struct {
	pid        int
	executable string
}

func (m *mockProcess) Pid() int {
	return m.pid
}

func (m *mockProcess) PPid() int {
	return 0
}

func (m *mockProcess) Executable() string {
	return m.executable
}

func TestGetTrayAppConfigDir(t *testing.T) {
	tempDir := t.TempDir()

	oldUserConfigDirFunc := userConfigDirFunc
	defer func() { userConfigDirFunc = oldUserConfigDirFunc }()
	userConfigDirFunc = func() (string, error) {
		return tempDir, nil
	}

	// Default: config dir + tray identifier
	expectedDefault := filepath.Join(tempDir, constants.TrayAppIdentifier)
	dir, err := GetTrayAppConfigDir()
	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if dir != expectedDefault {
		t.Errorf("expected %s, got %s", expectedDefault, dir)
	}

	// Custom lockfile_dir from the tray app's settings.json
	trayConfigDir := filepath.Join(tempDir, constants.TrayAppIdentifier)
	if err := os.MkdirAll(trayConfigDir, 0755); err != nil {
		t.Fatal(err)
	}

	customDir := "/custom/nutrilog/dir"
	settingsJSON := fmt.Sprintf(`{"settings": {"lockfile_dir": "%s"}}`, customDir)
	if err := os.WriteFile(filepath.Join(trayConfigDir, "settings.json"), []byte(settingsJSON), 0644); err != nil {
		t.Fatal(err)
	}

	dir, err = GetTrayAppConfigDir()
	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if dir != customDir {
		t.Errorf("expected %s, got %s", customDir, dir)
	}
}

func TestParseLockfile(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr bool
	}{
		{"valid", "8080|12345|secret", false},
		{"trailing newline", "8080|12345|secret\n", false},
		{"two parts", "8080|12345", true},
		{"no separators", "garbage", true},
		{"empty port", "|12345|secret", true},
		{"non-numeric port", "http|12345|secret", true},
		{"port out of range", "99999|12345|secret", true},
		{"non-numeric pid", "8080|abc|secret", true},
		{"blank secret", "8080|12345| ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lf, err := parseLockfile([]byte(tt.content))
			if tt.wantErr {
				if err == nil {
					t.Error("expected parse error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if lf.port != "8080" || lf.pid != 12345 || lf.secret != "secret" {
				t.Errorf("parsed %+v, want 8080/12345/secret", lf)
			}
		})
	}
}

func TestFindAndValidateTrayProcess(t *testing.T) {
	oldFindProcessFunc := findProcessFunc
	defer func() { findProcessFunc = oldFindProcessFunc }()

	tempDir := t.TempDir()
	lockfilePath := filepath.Join(tempDir, constants.NotifierLockfileName)

	// Lockfile missing
	_, _, err := findAndValidateTrayProcess(lockfilePath)
	if err == nil {
		t.Error("expected error for missing lockfile")
	}

	// Malformed lockfile (2-part format)
	if err := os.WriteFile(lockfilePath, []byte("8080|12345"), 0644); err != nil {
		t.Fatal(err)
	}
	_, _, err = findAndValidateTrayProcess(lockfilePath)
	if err == nil {
		t.Error("expected error for malformed lockfile")
	}

	// Malformed lockfile (no separators)
	if err := os.WriteFile(lockfilePath, []byte("invalid"), 0644); err != nil {
		t.Fatal(err)
	}
	_, _, err = findAndValidateTrayProcess(lockfilePath)
	if err == nil {
		t.Error("expected error for malformed lockfile")
	}

	// Empty secret
	if err := os.WriteFile(lockfilePath, []byte("8080|12345|"), 0644); err != nil {
		t.Fatal(err)
	}
	_, _, err = findAndValidateTrayProcess(lockfilePath)
	if err == nil {
		t.Error("expected error for empty secret")
	}
	if err != nil && !strings.Contains(err.Error(), "secret") {
		t.Errorf("expected error about empty secret, got: %v", err)
	}

	// Empty port
	if err := os.WriteFile(lockfilePath, []byte("|12345|testsecret123"), 0644); err != nil {
		t.Fatal(err)
	}
	_, _, err = findAndValidateTrayProcess(lockfilePath)
	if err == nil {
		t.Error("expected error for empty port")
	}

	// Port out of range
	if err := os.WriteFile(lockfilePath, []byte("99999|12345|testsecret123"), 0644); err != nil {
		t.Fatal(err)
	}
	_, _, err = findAndValidateTrayProcess(lockfilePath)
	if err == nil {
		t.Error("expected error for port out of range")
	}

	// Process not running
	if err := os.WriteFile(lockfilePath, []byte("8080|12345|testsecret123"), 0644); err != nil {
		t.Fatal(err)
	}
	findProcessFunc = func(pid int) (ps.Process, error) {
		return nil, nil
	}
	_, _, err = findAndValidateTrayProcess(lockfilePath)
	if err == nil {
		t.Error("expected error for missing process")
	}

	// Wrong executable
	findProcessFunc = func(pid int) (ps.Process, error) {
		return &mockProcess{pid: pid, executable: "other-app"}, nil
	}
	_, _, err = findAndValidateTrayProcess(lockfilePath)
	if err == nil {
		t.Error("expected error for wrong executable")
	}

	// Success
	findProcessFunc = func(pid int) (ps.Process, error) {
		return &mockProcess{pid: pid, executable: "nutrilog-tray"}, nil
	}
	port, secret, err := findAndValidateTrayProcess(lockfilePath)
	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if port != "8080" {
		t.Errorf("expected port 8080, got %s", port)
	}
	if secret != "testsecret123" {
		t.Errorf("expected secret testsecret123, got %s", secret)
	}
}

func TestSendNotification(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}

		secret := r.Header.Get("X-Nutrilog-Secret")
		if secret != "test-secret" {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte("Unauthorized"))
			return
		}

		var payload WebhookPayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if payload.Text == "fail" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	parts := strings.Split(server.URL, ":")
	port := parts[len(parts)-1]

	if err := sendNotification(port, "test-secret", WebhookPayload{Text: "hello"}); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	if err := sendNotification(port, "", WebhookPayload{Text: "hello"}); err == nil {
		t.Error("expected error for missing secret")
	}

	if err := sendNotification(port, "wrong-secret", WebhookPayload{Text: "hello"}); err == nil {
		t.Error("expected error for wrong secret")
	}

	if err := sendNotification(port, "test-secret", WebhookPayload{Text: "fail"}); err == nil {
		t.Error("expected error for server failure")
	}
}

// Package notifier hands milestone and reminder text to the companion tray
// app over its loopback webhook. The tray app advertises itself through a
// port|pid|secret lockfile; Notify refuses to post until the pid recorded
// there checks out as a live tray process.
package notifier

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/mitchellh/go-ps"

	"github.com/nutrilog/nutrilog/internal/constants"
)

// Overridable for tests.
var (
	userConfigDirFunc = os.UserConfigDir
	findProcessFunc   = ps.FindProcess
)

const webhookTimeout = 3 * time.Second

type Notifier struct{}

func New() *Notifier {
	return &Notifier{}
}

// WebhookPayload is the JSON body the tray app's webhook expects.
type WebhookPayload struct {
	Text       string `json:"text"`
	DurationMs uint32 `json:"duration_ms"`
}

func (n *Notifier) Notify(text string) error {
	dir, err := GetTrayAppConfigDir()
	if err != nil {
		return err
	}

	port, secret, err := findAndValidateTrayProcess(filepath.Join(dir, constants.NotifierLockfileName))
	if err != nil {
		return err
	}

	return sendNotification(port, secret, WebhookPayload{
		Text:       text,
		DurationMs: constants.NotificationDurationMs,
	})
}

// GetTrayAppConfigDir resolves where the tray app keeps its lockfile: its own
// config directory by default, or the lockfile_dir override from its
// settings.json when one is set.
func GetTrayAppConfigDir() (string, error) {
	base, err := userConfigDirFunc()
	if err != nil {
		return "", fmt.Errorf("failed to get user config dir: %w", err)
	}

	dir := filepath.Join(base, constants.TrayAppIdentifier)
	if override := lockfileDirOverride(filepath.Join(dir, "settings.json")); override != "" {
		return override, nil
	}
	return dir, nil
}

// lockfileDirOverride returns the tray app's configured lockfile_dir, or ""
// when the settings file is absent, unreadable, or has no override set.
func lockfileDirOverride(settingsPath string) string {
	data, err := os.ReadFile(settingsPath)
	if err != nil {
		return ""
	}

	var store struct {
		Settings struct {
			LockfileDir *string `json:"lockfile_dir"`
		} `json:"settings"`
	}
	if err := json.Unmarshal(data, &store); err != nil || store.Settings.LockfileDir == nil {
		return ""
	}
	return *store.Settings.LockfileDir
}

type lockfile struct {
	port   string
	pid    int
	secret string
}

func parseLockfile(content []byte) (lockfile, error) {
	parts := strings.Split(strings.TrimSpace(string(content)), "|")
	if len(parts) != 3 {
		return lockfile{}, errors.New("lockfile is malformed, want port|pid|secret")
	}

	lf := lockfile{port: strings.TrimSpace(parts[0]), secret: parts[2]}
	if lf.port == "" {
		return lockfile{}, errors.New("port in lockfile is empty")
	}
	portNum, err := strconv.Atoi(lf.port)
	if err != nil {
		return lockfile{}, fmt.Errorf("invalid port %q in lockfile", lf.port)
	}
	if portNum < 1 || portNum > 65535 {
		return lockfile{}, fmt.Errorf("port %d is outside valid range (1-65535)", portNum)
	}

	lf.pid, err = strconv.Atoi(parts[1])
	if err != nil {
		return lockfile{}, fmt.Errorf("invalid process ID %q in lockfile", parts[1])
	}
	if strings.TrimSpace(lf.secret) == "" {
		return lockfile{}, errors.New("secret in lockfile is empty")
	}
	return lf, nil
}

// findAndValidateTrayProcess reads the lockfile and confirms the recorded pid
// still belongs to a tray process. A stale lockfile left by a crashed tray
// app fails here instead of timing out on the POST.
func findAndValidateTrayProcess(lockfilePath string) (string, string, error) {
	content, err := os.ReadFile(lockfilePath)
	if err != nil {
		return "", "", errors.New("nutrilog-tray is not running")
	}

	lf, err := parseLockfile(content)
	if err != nil {
		return "", "", err
	}

	process, err := findProcessFunc(lf.pid)
	if err != nil || process == nil {
		return "", "", errors.New("nutrilog-tray process not running")
	}
	if !strings.HasPrefix(process.Executable(), "nutrilog-tray") {
		return "", "", fmt.Errorf("process with PID %d is not nutrilog-tray (is %s)", lf.pid, process.Executable())
	}

	return lf.port, lf.secret, nil
}

func sendNotification(port, secret string, payload WebhookPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequest(http.MethodPost, "http://127.0.0.1:"+port, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Nutrilog-Secret", secret)

	client := &http.Client{Timeout: webhookTimeout}
	res, err := client.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(res.Body)
		return fmt.Errorf("tray app rejected notification with status %d: %s", res.StatusCode, string(msg))
	}
	return nil
}

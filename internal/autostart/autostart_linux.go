//go:build linux

package autostart

import (
	"fmt"
	"os"
	"path/filepath"
)

const desktopTemplate = `[Desktop Entry]
Type=Application
Name=%s
Exec=%s
X-GNOME-Autostart-enabled=true
`

type xdgRegistrar struct{}

func newRegistrar() Registrar { return &xdgRegistrar{} }

func desktopPath(appName string) (string, error) {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "autostart", appName+".desktop"), nil
}

func (x *xdgRegistrar) Enable(appName, execPath string) error {
	path, err := desktopPath(appName)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create autostart dir: %w", err)
	}
	content := fmt.Sprintf(desktopTemplate, appName, execPath)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("write desktop entry: %w", err)
	}
	return nil
}

func (x *xdgRegistrar) Disable(appName string) error {
	path, err := desktopPath(appName)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove desktop entry: %w", err)
	}
	return nil
}

func (x *xdgRegistrar) Enabled(appName string) (bool, error) {
	path, err := desktopPath(appName)
	if err != nil {
		return false, err
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

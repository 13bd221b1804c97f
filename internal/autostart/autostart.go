// Package autostart registers the daemon to launch at login. Each
// platform ships its own Registrar; callers only see the interface.
package autostart

// Registrar manages the OS-specific run-at-startup registration.
type Registrar interface {
	Enable(appName, execPath string) error
	Disable(appName string) error
	Enabled(appName string) (bool, error)
}

// New returns the Registrar for the current platform.
func New() Registrar {
	return newRegistrar()
}

// Apply reconciles the registration with the configured flag.
func Apply(r Registrar, appName, execPath string, wanted bool) error {
	current, err := r.Enabled(appName)
	if err != nil {
		return err
	}
	switch {
	case wanted && !current:
		return r.Enable(appName, execPath)
	case !wanted && current:
		return r.Disable(appName)
	}
	return nil
}

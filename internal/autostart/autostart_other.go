//go:build !windows && !darwin && !linux

package autostart

import "errors"

type unsupportedRegistrar struct{}

func newRegistrar() Registrar { return &unsupportedRegistrar{} }

var errUnsupported = errors.New("autostart not supported on this platform")

func (u *unsupportedRegistrar) Enable(_, _ string) error       { return errUnsupported }
func (u *unsupportedRegistrar) Disable(_ string) error         { return errUnsupported }
func (u *unsupportedRegistrar) Enabled(_ string) (bool, error) { return false, nil }

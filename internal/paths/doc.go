// Package paths resolves the locations the configuror CLI reads its own
// settings from.
//
// # XDG Base Directory Compliance
//
// The package wraps github.com/adrg/xdg for cross-platform XDG Base Directory
// Specification compliance. The settings file lives at
// $XDG_CONFIG_HOME/configuror/config.yaml:
//
//	paths.SettingsFile() // ~/.config/configuror/config.yaml on Linux
//
// Paths given in the settings file may start with "~", which [ExpandHome]
// resolves against the user's home directory.
package paths

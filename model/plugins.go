package model

import "github.com/wiryonolau/itseasy-util/plugin"

// PluginAware models advertise their own plugin set.
type PluginAware interface {
	AttachedPlugins() *plugin.Registry
}

// Plugins returns the plugins m advertises: its own set when it implements
// PluginAware, the built-ins otherwise.
func Plugins(m Model) *plugin.Registry {
	if pa, ok := m.(PluginAware); ok {
		if r := pa.AttachedPlugins(); r != nil {
			return r
		}
	}
	return plugin.Default()
}

// InvokePlugin runs the plugin name from the set m advertises.
func InvokePlugin(m Model, name string, value any, args ...any) (any, error) {
	return Plugins(m).Invoke(name, value, args...)
}

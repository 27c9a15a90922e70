package bridge

import "github.com/tidwall/gjson"

// registerTheme routes register_theme(plugin_id, name, colors_json) to
// the caller-supplied ThemeSink. arg is a JSON object:
// {"plugin_id":"...","name":"...","colors":{...}}.
func (b *Bridge) registerTheme(arg string) (Result, error) {
	if b.themes == nil {
		return staticResult(`false`), nil
	}
	pluginID := gjson.Get(arg, "plugin_id").String()
	name := gjson.Get(arg, "name").String()
	colors := gjson.Get(arg, "colors").Raw
	if pluginID == "" || name == "" {
		return Result{}, ErrInvalidArgument
	}
	if err := b.themes.RegisterTheme(pluginID, name, colors); err != nil {
		return Result{}, err
	}
	return staticResult(`true`), nil
}

// unregisterTheme routes unregister_theme(plugin_id, name). The Plugin
// Manager also calls this automatically for every theme a plugin
// registered, when that plugin unloads (spec.md §4.6).
func (b *Bridge) unregisterTheme(arg string) (Result, error) {
	if b.themes == nil {
		return staticResult(`false`), nil
	}
	pluginID := gjson.Get(arg, "plugin_id").String()
	name := gjson.Get(arg, "name").String()
	if pluginID == "" || name == "" {
		return Result{}, ErrInvalidArgument
	}
	if err := b.themes.UnregisterTheme(pluginID, name); err != nil {
		return Result{}, err
	}
	return staticResult(`true`), nil
}

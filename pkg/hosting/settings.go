package hosting

// AppSetting is a single name/value environment entry injected into the
// hosted application. Order is preserved as emitted; the provider merges
// same-named entries last-write-wins, so later groups may override the
// caller-supplied base list but the resolver never duplicates names within
// its own additions.
type AppSetting struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// settingsBuilder accumulates app settings in group order: caller base list
// first, then identity/telemetry, then the tier-conditional group, then
// network, then the purpose-conditional group.
type settingsBuilder struct {
	settings []AppSetting
}

func newSettingsBuilder(base []AppSetting) *settingsBuilder {
	b := &settingsBuilder{settings: make([]AppSetting, 0, len(base)+16)}
	b.settings = append(b.settings, base...)
	return b
}

func (b *settingsBuilder) add(name, value string) {
	b.settings = append(b.settings, AppSetting{Name: name, Value: value})
}

func (b *settingsBuilder) list() []AppSetting {
	return b.settings
}

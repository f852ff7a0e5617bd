package hosting

// applyClassicConfig fills the Consumption/Premium/Standard branch: alwaysOn,
// linuxFxVersion, the worker-runtime setting and the build-enable flags.
// functionAppConfig stays absent; the Flex-only scaling parameters are
// rejected rather than silently dropped.
func applyClassicConfig(cfg *FunctionAppConfig, settings *settingsBuilder, spec AppRuntimeSpec, version string) error {
	if spec.MaximumInstanceCount != 0 {
		return newError(IncompatibleFieldForTier, "maximumInstanceCount", "only valid under Flex Consumption")
	}
	if spec.InstanceMemoryMB != 0 {
		return newError(IncompatibleFieldForTier, "instanceMemoryMB", "only valid under Flex Consumption")
	}

	alwaysOn := true
	fxVersion := linuxFxVersion(spec.Runtime, version)
	cfg.Properties.SiteConfig.AlwaysOn = &alwaysOn
	cfg.Properties.SiteConfig.LinuxFxVersion = &fxVersion

	settings.add("FUNCTIONS_WORKER_RUNTIME", string(spec.Runtime))
	settings.add("ENABLE_ORYX_BUILD", "true")
	settings.add("SCM_DO_BUILD_DURING_DEPLOYMENT", "1")

	return nil
}

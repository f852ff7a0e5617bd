package hosting

import "strings"

// Runtime is the Functions worker runtime.
type Runtime string

const (
	RuntimePython     Runtime = "python"
	RuntimeNode       Runtime = "node"
	RuntimeDotnet     Runtime = "dotnet"
	RuntimeJava       Runtime = "java"
	RuntimePowershell Runtime = "powershell"
)

// runtimeVersions resolves each runtime to the version the accelerator pins.
var runtimeVersions = map[Runtime]string{
	RuntimePython:     "3.11",
	RuntimeNode:       "20",
	RuntimeDotnet:     "8.0",
	RuntimeJava:       "17",
	RuntimePowershell: "7.4",
}

// flexRuntimeName maps the worker runtime to the name the Flex Consumption
// functionAppConfig block expects. Only dotnet differs (the isolated worker
// model); the remaining runtimes pass through unchanged.
func flexRuntimeName(r Runtime) string {
	if r == RuntimeDotnet {
		return "dotnet-isolated"
	}
	return string(r)
}

// linuxFxVersion builds the classic-tier runtime stack string, e.g.
// "PYTHON|3.11" or "DOTNET-ISOLATED|8.0".
func linuxFxVersion(r Runtime, version string) string {
	return strings.ToUpper(flexRuntimeName(r)) + "|" + version
}

// resolveRuntimeVersion validates the runtime and returns its pinned version.
func resolveRuntimeVersion(r Runtime) (string, error) {
	version, ok := runtimeVersions[r]
	if !ok {
		return "", newError(InvalidParameterValue, "runtime", "unsupported runtime %q", r)
	}
	return version, nil
}

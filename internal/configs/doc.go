// Package configs manages project configuration for storyvault.
//
// A storyvault project is any directory containing a .storyvault/
// directory. Its configuration lives in .storyvault/config.toml:
//
//	[project]
//	project_uuid = "..."
//	name = "my-game"
//
//	[paths]
//	resources = "src-tauri/resources"
//	stories = "src/stories"
//
//	[key]
//	file = ""
//
// Relative paths are resolved against the project root. The [key] section
// is optional; when no key file is configured the compiled-in key is used
// unless STORYVAULT_KEY is set.
//
// # Settings
//
// InitProjectSettings locates the project root by walking up from the
// working directory and populates ProjectVaultSettings with resolved
// absolute paths. Commands call it once before running a workflow.
package configs

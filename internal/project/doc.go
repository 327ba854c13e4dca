// Package project loads and writes the project descriptor.
//
// The descriptor lives at <root>/.catalyst/config.cly.json:
//
//	{
//	  "name": "demo",
//	  "version": "1.0.0",
//	  "working_directory": "app",
//	  "hooks": ["setup", "build"]
//	}
//
// name is required. hooks lists logical hook identifiers that are resolved
// against the hooks directory at run time. An empty working_directory means
// the project root.
//
// Load failures are returned as *LoadError, whose Kind selects the process
// exit code.
package project

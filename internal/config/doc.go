// Package config provides configuration loading and centralized path
// resolution for the vintage panel builder.
//
// Configuration is loaded from environment variables (prefix ONS) with an
// optional YAML file overlay; environment variables take precedence. The
// Paths type resolves every filesystem location relative to the executable
// directory so the tool behaves identically regardless of the working
// directory it is launched from.
//
// Example usage:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	paths, err := config.GetPaths()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := paths.EnsureDirectories(); err != nil {
//	    log.Fatal(err)
//	}
package config

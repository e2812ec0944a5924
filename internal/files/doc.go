// Package files provides snapshot file discovery for the vintage panel
// builder.
//
// Discovery scans the raw-data directory for snapshot files (.csv or .xlsx)
// and extracts each file's vintage date from the trailing ISO date in its
// name. Files without the date pattern are surfaced separately so callers
// can report them as skipped; a snapshot whose vintage date cannot be
// determined is never partially processed.
//
// Example usage:
//
//	discovery := files.NewDiscovery("/path/to/base")
//
//	snapshots, undated, err := discovery.FindSnapshotFiles("data/raw")
//	for _, name := range undated {
//	    // report and skip
//	}
package files

// Package files discovers report documents on disk.
//
// Discovery resolves the paths handed to the extract command: plain files
// pass through, directories expand to the report documents they contain
// and glob patterns expand to their matches. Relative paths are resolved
// against the discovery base path.
//
//	discovery := files.NewDiscovery(".")
//	paths, err := discovery.Expand([]string{"exports/", "ReportHistory-*.html"})
package files

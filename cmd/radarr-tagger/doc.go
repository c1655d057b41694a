// Command radarr-tagger keeps Radarr movie tags in sync with file metadata.
//
// Without a subcommand it runs the tagging loop until interrupted. The once,
// plan, tags, and dump subcommands run a single pass, preview pending
// changes, list server tags, or write the raw movie list to disk.
package main

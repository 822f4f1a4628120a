// Package buildinfo reports the version confctl was built from.
//
// Version, Commit and BuildTime are set with -ldflags -X at release time.
// Development builds fall back to the VCS stamp the toolchain embeds, so
// `confctl version` still names a revision.
package buildinfo

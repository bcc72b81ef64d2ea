// Package changelog turns a directory tree of per-change entry files into a
// changelog document and manages the release transition on disk.
//
// The on-disk schema is:
//
//	<root>/
//	  epilogue.md                 optional, appended verbatim
//	  config.yml                  optional, see internal/config
//	  unreleased/
//	    <category>/               one of the canonical categories
//	      <component>/
//	        <entry-file>          contents are the entry text
//	  <version>/                  e.g. v0.1.0, same shape as unreleased
//
// This package implements:
//   - Scan: a level-by-level traversal that materializes the whole tree
//   - Render: a pure function from tree to markdown
//   - Release: moving unreleased/ to a version directory and restoring the skeleton
//   - Init: creating a fresh skeleton
//   - AddEntry: writing a new entry file under unreleased/
package changelog

// Package finder expands glob patterns against a root directory.
//
// Patterns use doublestar syntax: `*` matches within one path segment and
// `**` matches any number of segments. Matching is lazy; Find returns an
// iter.Seq2 that walks the tree only while the caller keeps consuming it,
// and every range over the sequence walks the tree again.
//
// Results are regular files (and symlinks to files) relative to the root,
// in traversal order. A pattern that matches nothing produces an empty
// sequence, never an error. A missing root, an absolute pattern or a
// malformed pattern is reported as the first and only element.
//
// As with shell globbing, wildcards do not match names starting with ".":
// "src/**/*.py" skips src/.cache/x.py, while "src/.cache/*.py" and
// "**/.*" reach hidden files because the pattern spells out the dot.
package finder

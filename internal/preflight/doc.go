// Package preflight checks that an import can succeed before any file is
// touched: target collections must be creatable and writable, the index
// directory must be writable, and required external programs must be
// installed.
//
// The import command runs RunAll before every non-dry run and aborts when a
// check fails. "undisorder config validate" prints the same results.
package preflight

// Package deps reports which external programs undisorder can use.
package deps

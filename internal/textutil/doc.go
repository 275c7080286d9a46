// Package textutil holds the small string helpers shared by the scanner and
// the organizer: path component sanitizing and Unicode case folding.
package textutil

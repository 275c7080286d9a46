// Package geocoder turns photo coordinates into place names used for
// destination directories. Lookups go to Nominatim when online mode is
// enabled; results are cached for the lifetime of the process.
package geocoder

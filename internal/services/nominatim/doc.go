// Package nominatim is a minimal client for the OpenStreetMap Nominatim
// reverse geocoding endpoint. Callers are expected to respect the public
// instance's usage policy (one request per second, identifying User-Agent);
// the geocoder package caches results to keep request volume low.
package nominatim

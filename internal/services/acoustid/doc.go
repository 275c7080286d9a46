// Package acoustid wraps the chromaprint fpcalc binary and the AcoustID
// lookup API. Fingerprinting is local; only Lookup talks to the network.
package acoustid

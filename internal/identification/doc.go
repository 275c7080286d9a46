// Package identification fills missing audio tags from acoustic
// fingerprints. A file is fingerprinted locally with fpcalc, the fingerprint
// is resolved to a MusicBrainz recording through AcoustID, and the recording
// details are merged under the existing tags. Results are cached by content
// hash in the index so a file is looked up at most once.
package identification

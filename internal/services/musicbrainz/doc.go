// Package musicbrainz fetches recording details (title, artist, first release,
// track and disc position) from the MusicBrainz JSON web service.
package musicbrainz

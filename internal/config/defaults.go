package config

const (
	defaultImagesTarget     = "~/Bilder/Fotos"
	defaultVideoTarget      = "~/Videos"
	defaultAudioTarget      = "~/Musik"
	defaultIndexName        = "undisorder.db"
	defaultFailureLogName   = "import_failures.jsonl"
	DefaultPhotoBatchSize   = 100
	DefaultAudioBatchSize   = 25
	defaultGeocodingMode    = GeocodingOff
	defaultNominatimURL     = "https://nominatim.openstreetmap.org"
	defaultUserAgent        = "undisorder/0.1.0 (+https://github.com/undisorder)"
	defaultGeocodingTimeout = 10
	defaultAcoustIDURL      = "https://api.acoustid.org/v2/lookup"
	defaultMusicBrainzURL   = "https://musicbrainz.org/ws/2"
	defaultFpcalc           = "fpcalc"
	defaultIdentifyTimeout  = 15
	defaultNotifyTimeout    = 10
	defaultLogFormat        = "console"
	defaultLogLevel         = "info"
	acoustIDEnvKey          = "ACOUSTID_API_KEY"
	maxBatchSize            = 10000
)

// Geocoding modes.
const (
	GeocodingOff     = "off"
	GeocodingOffline = "offline"
	GeocodingOnline  = "online"
)

// Default returns a Config populated with repository defaults. Index and
// failure log paths are left empty and derived from the config directory
// during normalization.
func Default() Config {
	return Config{
		Paths: Paths{
			ImagesTarget: defaultImagesTarget,
			VideoTarget:  defaultVideoTarget,
			AudioTarget:  defaultAudioTarget,
		},
		Import: Import{
			PhotoBatchSize: DefaultPhotoBatchSize,
			AudioBatchSize: DefaultAudioBatchSize,
		},
		Geocoding: Geocoding{
			Mode:           defaultGeocodingMode,
			BaseURL:        defaultNominatimURL,
			UserAgent:      defaultUserAgent,
			TimeoutSeconds: defaultGeocodingTimeout,
		},
		Identify: Identify{
			AcoustIDURL:    defaultAcoustIDURL,
			MusicBrainzURL: defaultMusicBrainzURL,
			UserAgent:      defaultUserAgent,
			Fpcalc:         defaultFpcalc,
			TimeoutSeconds: defaultIdentifyTimeout,
		},
		Notifications: Notifications{
			RequestTimeoutSeconds: defaultNotifyTimeout,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}

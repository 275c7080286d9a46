package importer

import (
	"undisorder/internal/config"
)

// Options is the immutable configuration of one import run.
type Options struct {
	SourceRoot   string
	ImagesTarget string
	VideoTarget  string
	AudioTarget  string
	FailureLog   string

	Move        bool
	DryRun      bool
	Update      bool
	Interactive bool

	PhotoBatchSize int
	AudioBatchSize int
}

// OptionsFromConfig derives run options from the loaded configuration.
func OptionsFromConfig(cfg *config.Config, sourceRoot string) Options {
	return Options{
		SourceRoot:     sourceRoot,
		ImagesTarget:   cfg.Paths.ImagesTarget,
		VideoTarget:    cfg.Paths.VideoTarget,
		AudioTarget:    cfg.Paths.AudioTarget,
		FailureLog:     cfg.Paths.FailureLog,
		Move:           cfg.Import.Move,
		DryRun:         cfg.Import.DryRun,
		Update:         cfg.Import.Update,
		Interactive:    cfg.Import.Interactive,
		PhotoBatchSize: cfg.Import.PhotoBatchSize,
		AudioBatchSize: cfg.Import.AudioBatchSize,
	}
}

func (o Options) batchSize(media MediaType) int {
	size := o.PhotoBatchSize
	if media == MediaAudio {
		size = o.AudioBatchSize
	}
	if size <= 0 {
		if media == MediaAudio {
			return config.DefaultAudioBatchSize
		}
		return config.DefaultPhotoBatchSize
	}
	return size
}

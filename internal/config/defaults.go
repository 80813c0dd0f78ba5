package config

const (
	defaultConfigPath      = "~/.config/sharecut/config.toml"
	projectConfigName      = "sharecut.toml"
	defaultFFmpegBinary    = "ffmpeg"
	defaultFFprobeBinary   = "ffprobe"
	defaultVideoCodec      = "libx264"
	defaultPreset          = "veryfast"
	defaultCRF             = 18
	defaultAudioCodec      = "copy"
	defaultMovFlags        = "+faststart"
	defaultProbeTimeout    = 60
	defaultStartToken      = "Sharing Started"
	defaultStopToken       = "Sharing Stopped"
	defaultLayoutMode      = "side-by-side"
	defaultBackgroundColor = "black"
	defaultLogFormat       = "console"
	defaultLogLevel        = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		FFmpeg: FFmpeg{
			Binary:              defaultFFmpegBinary,
			FFprobeBinary:       defaultFFprobeBinary,
			VideoCodec:          defaultVideoCodec,
			Preset:              defaultPreset,
			CRF:                 defaultCRF,
			AudioCodec:          defaultAudioCodec,
			MovFlags:            defaultMovFlags,
			Overwrite:           true,
			ProbeTimeoutSeconds: defaultProbeTimeout,
		},
		Markers: Markers{
			StartToken: defaultStartToken,
			StopToken:  defaultStopToken,
		},
		Layout: Layout{
			Mode:            defaultLayoutMode,
			BackgroundColor: defaultBackgroundColor,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}

package ffmpeg

import "strings"

// Policy is the codec and container policy applied to every encode.
type Policy struct {
	VideoCodec string `toml:"video_codec" json:"video_codec" yaml:"video_codec"`
	Preset     string `toml:"preset" json:"preset" yaml:"preset"`
	// CRF is omitted from the command when zero.
	CRF        int    `toml:"crf" json:"crf" yaml:"crf"`
	AudioCodec string `toml:"audio_codec" json:"audio_codec" yaml:"audio_codec"`
	MovFlags   string `toml:"movflags" json:"movflags" yaml:"movflags"`
	Overwrite  bool   `toml:"overwrite" json:"overwrite" yaml:"overwrite"`
}

// DefaultPolicy matches the historical encode settings: x264 veryfast at
// CRF 18, audio copied, moov atom up front.
func DefaultPolicy() Policy {
	return Policy{
		VideoCodec: "libx264",
		Preset:     "veryfast",
		CRF:        18,
		AudioCodec: "copy",
		MovFlags:   "+faststart",
		Overwrite:  true,
	}
}

func (p Policy) normalized() Policy {
	defaults := DefaultPolicy()
	p.VideoCodec = strings.TrimSpace(p.VideoCodec)
	if p.VideoCodec == "" {
		p.VideoCodec = defaults.VideoCodec
	}
	p.AudioCodec = strings.TrimSpace(p.AudioCodec)
	if p.AudioCodec == "" {
		p.AudioCodec = defaults.AudioCodec
	}
	p.Preset = strings.TrimSpace(p.Preset)
	p.MovFlags = strings.TrimSpace(p.MovFlags)
	return p
}

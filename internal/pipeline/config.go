package pipeline

// Config holds the per-segment processing settings. A segment carries
// the snapshot taken when it was enqueued, so a configuration change is
// effective for segments enqueued after the call and never interrupts a
// segment already in flight.
type Config struct {
	SourceLanguage  string `json:"source_language"`
	TargetLanguage  string `json:"target_language"`
	SegmentDuration int    `json:"segment_duration"`
}

// ConfigUpdate carries a partial configuration change; nil fields are
// left untouched.
type ConfigUpdate struct {
	SourceLanguage  *string `json:"source_language,omitempty"`
	TargetLanguage  *string `json:"target_language,omitempty"`
	SegmentDuration *int    `json:"segment_duration,omitempty"`
}

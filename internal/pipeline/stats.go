package pipeline

import (
	"sync"
	"time"
)

// Stats aggregates pipeline throughput counters. A single mutex guards
// the whole aggregate so readers always see a consistent snapshot.
type Stats struct {
	mu sync.Mutex

	segmentsProcessed   int64
	totalAudioTime      float64
	totalProcessingTime float64
	errorCount          int64
	cacheHits           int64
	cacheMisses         int64
}

// StatsSnapshot is an immutable view of the counters plus the values
// derived from them at read time.
type StatsSnapshot struct {
	SegmentsProcessed   int64   `json:"segments_processed"`
	TotalAudioTime      float64 `json:"total_audio_time"`
	TotalProcessingTime float64 `json:"total_processing_time"`
	ErrorCount          int64   `json:"error_count"`
	CacheHits           int64   `json:"cache_hits"`
	CacheMisses         int64   `json:"cache_misses"`

	AvgProcessingTime    float64 `json:"avg_processing_time"`
	CacheHitRate         float64 `json:"cache_hit_rate"`
	ProcessingSpeedRatio float64 `json:"processing_speed_ratio"`
}

// NewStats creates an empty statistics aggregate.
func NewStats() *Stats {
	return &Stats{}
}

// RecordSegment accounts one fully processed segment.
func (s *Stats) RecordSegment(processing time.Duration, audioSeconds float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.segmentsProcessed++
	s.totalProcessingTime += processing.Seconds()
	s.totalAudioTime += audioSeconds
}

// RecordError accounts one recoverable pipeline error.
func (s *Stats) RecordError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errorCount++
}

// RecordCacheHit accounts one translation cache hit.
func (s *Stats) RecordCacheHit() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cacheHits++
}

// RecordCacheMiss accounts one translation cache miss.
func (s *Stats) RecordCacheMiss() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cacheMisses++
}

// Snapshot returns a consistent copy of the counters with derived
// values computed under the same lock.
func (s *Stats) Snapshot() StatsSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := StatsSnapshot{
		SegmentsProcessed:   s.segmentsProcessed,
		TotalAudioTime:      s.totalAudioTime,
		TotalProcessingTime: s.totalProcessingTime,
		ErrorCount:          s.errorCount,
		CacheHits:           s.cacheHits,
		CacheMisses:         s.cacheMisses,
	}

	if snap.SegmentsProcessed > 0 {
		snap.AvgProcessingTime = snap.TotalProcessingTime / float64(snap.SegmentsProcessed)
	}
	if snap.TotalProcessingTime > 0 {
		snap.ProcessingSpeedRatio = snap.TotalAudioTime / snap.TotalProcessingTime
	}
	if total := snap.CacheHits + snap.CacheMisses; total > 0 {
		snap.CacheHitRate = float64(snap.CacheHits) / float64(total)
	}

	return snap
}

// Reset zeroes all counters.
func (s *Stats) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.segmentsProcessed = 0
	s.totalAudioTime = 0
	s.totalProcessingTime = 0
	s.errorCount = 0
	s.cacheHits = 0
	s.cacheMisses = 0
}

package pipeline

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStatsSnapshotDerivedValues(t *testing.T) {
	stats := NewStats()

	stats.RecordSegment(2*time.Second, 10.0)
	stats.RecordSegment(4*time.Second, 10.0)

	snap := stats.Snapshot()
	assert.Equal(t, int64(2), snap.SegmentsProcessed)
	assert.InDelta(t, 20.0, snap.TotalAudioTime, 0.0001)
	assert.InDelta(t, 6.0, snap.TotalProcessingTime, 0.0001)
	assert.InDelta(t, 3.0, snap.AvgProcessingTime, 0.0001)
	// 20 seconds of audio in 6 seconds of processing.
	assert.InDelta(t, 20.0/6.0, snap.ProcessingSpeedRatio, 0.0001)
}

func TestStatsEmptySnapshot(t *testing.T) {
	snap := NewStats().Snapshot()

	assert.Zero(t, snap.SegmentsProcessed)
	assert.Zero(t, snap.AvgProcessingTime)
	assert.Zero(t, snap.ProcessingSpeedRatio)
	assert.Zero(t, snap.CacheHitRate)
}

func TestStatsCacheHitRate(t *testing.T) {
	stats := NewStats()

	stats.RecordCacheHit()
	stats.RecordCacheHit()
	stats.RecordCacheHit()
	stats.RecordCacheMiss()

	snap := stats.Snapshot()
	assert.Equal(t, int64(3), snap.CacheHits)
	assert.Equal(t, int64(1), snap.CacheMisses)
	assert.InDelta(t, 0.75, snap.CacheHitRate, 0.0001)
}

func TestStatsErrorsDoNotAffectThroughput(t *testing.T) {
	stats := NewStats()

	stats.RecordSegment(time.Second, 10.0)
	stats.RecordError()
	stats.RecordError()

	snap := stats.Snapshot()
	assert.Equal(t, int64(2), snap.ErrorCount)
	assert.Equal(t, int64(1), snap.SegmentsProcessed)
	assert.InDelta(t, 1.0, snap.AvgProcessingTime, 0.0001)
}

func TestStatsReset(t *testing.T) {
	stats := NewStats()
	stats.RecordSegment(time.Second, 10.0)
	stats.RecordError()
	stats.RecordCacheHit()
	stats.RecordCacheMiss()

	stats.Reset()

	assert.Equal(t, StatsSnapshot{}, stats.Snapshot())
}

func TestStatsConcurrentRecording(t *testing.T) {
	stats := NewStats()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				stats.RecordSegment(time.Second, 10.0)
				stats.RecordCacheHit()
				stats.RecordCacheMiss()
				stats.RecordError()
			}
		}()
	}
	wg.Wait()

	snap := stats.Snapshot()
	assert.Equal(t, int64(800), snap.SegmentsProcessed)
	assert.Equal(t, int64(800), snap.ErrorCount)
	assert.Equal(t, int64(800), snap.CacheHits)
	assert.Equal(t, int64(800), snap.CacheMisses)
	assert.InDelta(t, 8000.0, snap.TotalAudioTime, 0.0001)
}

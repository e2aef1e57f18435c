package stats

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestStorage(t *testing.T) {
	// Create temporary directory for test
	tempDir, err := os.MkdirTemp("", "stats-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp directory: %v", err)
	}
	defer os.RemoveAll(tempDir)

	// Create new storage
	storage, err := NewStorage(tempDir)
	if err != nil {
		t.Fatalf("Failed to create storage: %v", err)
	}

	// Test recording counters
	t.Run("RecordCounters", func(t *testing.T) {
		storage.RecordReport(7, 12)
		storage.RecordAnalyzeRequest()
		storage.RecordAPICall(false)
		storage.RecordAPICall(true)
		stats := storage.GetCurrentStats()

		if stats.ReportsGenerated != 1 {
			t.Errorf("Expected 1 report, got %d", stats.ReportsGenerated)
		}
		if stats.PagesAnalyzed != 7 {
			t.Errorf("Expected 7 pages analyzed, got %d", stats.PagesAnalyzed)
		}
		if stats.PostsAnalyzed != 12 {
			t.Errorf("Expected 12 posts analyzed, got %d", stats.PostsAnalyzed)
		}
		if stats.AnalyzeRequests != 1 {
			t.Errorf("Expected 1 analyze request, got %d", stats.AnalyzeRequests)
		}
		if stats.APIRequests != 2 {
			t.Errorf("Expected 2 API requests, got %d", stats.APIRequests)
		}
		if stats.APIFailures != 1 {
			t.Errorf("Expected 1 API failure, got %d", stats.APIFailures)
		}
	})

	// Test persistence
	t.Run("Persistence", func(t *testing.T) {
		// Force a save
		storage.requestWrite()
		time.Sleep(100 * time.Millisecond) // Give time for the write to complete

		// Create new storage instance pointing to same directory
		storage2, err := NewStorage(tempDir)
		if err != nil {
			t.Fatalf("Failed to create second storage: %v", err)
		}

		stats := storage2.GetCurrentStats()
		if stats.ReportsGenerated != 1 {
			t.Errorf("Expected 1 report after reload, got %d", stats.ReportsGenerated)
		}
	})

	// Test cleanup
	t.Run("Cleanup", func(t *testing.T) {
		// Add some old stats
		oldMonth := time.Now().AddDate(0, -2, 0).Format("2006-01")
		storage.stats[oldMonth] = &MonthlyStats{
			ReportsGenerated: 100,
			LastUpdated:      time.Now().AddDate(0, -2, 0),
		}

		storage.Cleanup()

		// Verify old stats are gone
		if _, exists := storage.stats[oldMonth]; exists {
			t.Error("Old stats should have been cleaned up")
		}
	})

	// Test file size
	t.Run("FileSize", func(t *testing.T) {
		// Force a save
		storage.requestWrite()
		time.Sleep(100 * time.Millisecond) // Give time for the write to complete

		// Check file size
		info, err := os.Stat(filepath.Join(tempDir, "stats.json"))
		if err != nil {
			t.Fatalf("Failed to stat file: %v", err)
		}

		// File should be relatively small (< 1KB for this test data)
		if info.Size() > 1024 {
			t.Errorf("File size too large: %d bytes", info.Size())
		}
	})

	// Test concurrent access
	t.Run("ConcurrentAccess", func(t *testing.T) {
		before := storage.GetCurrentStats().AnalyzeRequests

		done := make(chan bool)
		for i := 0; i < 10; i++ {
			go func() {
				for j := 0; j < 100; j++ {
					storage.RecordAnalyzeRequest()
					storage.GetCurrentStats()
				}
				done <- true
			}()
		}

		// Wait for all goroutines to complete
		for i := 0; i < 10; i++ {
			<-done
		}

		// Verify final counts
		stats := storage.GetCurrentStats()
		expectedCount := before + 1000 // 10 goroutines * 100 iterations
		if stats.AnalyzeRequests != expectedCount {
			t.Errorf("Expected %d analyze requests, got %d", expectedCount, stats.AnalyzeRequests)
		}
	})
}

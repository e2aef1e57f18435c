// Package logging collects in-process request statistics for the HTTP
// surface: unique visitors, report and analyze request volumes, popular
// focus keywords and generation times.
package logging

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"
)

// Environment variable name for controlling statistics visibility
const ENV_DEV_MODE = "DEV_MODE"

// Statistics represents the collected statistics
type Statistics struct {
	UniqueVisitors  map[string]time.Time `json:"uniqueVisitors"`  // IP -> Last Visit Time
	ReportRequests  int                  `json:"reportRequests"`  // Total number of report generations
	AnalyzeRequests int                  `json:"analyzeRequests"` // Total number of content analyses
	ErrorCount      int                  `json:"errorCount"`      // Number of errors
	PopularKeywords map[string]int       `json:"popularKeywords"` // Focus keyword -> Count
	AverageGenTime  float64              `json:"averageGenTime"`  // Average generation time in milliseconds
	TotalGenTime    float64              `json:"-"`               // Used to calculate average
	RequestCount    int                  `json:"-"`               // Used to calculate average
	LastPersisted   time.Time            `json:"lastPersisted"`   // Last time stats were saved
	mutex           sync.RWMutex         `json:"-"`
}

var (
	stats *Statistics
	once  sync.Once
)

// Initialize creates or loads the statistics
func Initialize() *Statistics {
	once.Do(func() {
		stats = &Statistics{
			UniqueVisitors:  make(map[string]time.Time),
			PopularKeywords: make(map[string]int),
			LastPersisted:   time.Now(),
		}

		// Try to load existing statistics
		if err := stats.Load(); err != nil {
			fmt.Printf("Could not load existing statistics: %v\n", err)
		}
	})
	return stats
}

// TrackVisitor records a unique visitor
func (s *Statistics) TrackVisitor(ip string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.UniqueVisitors[ip] = time.Now()
}

// TrackReport records one report generation
func (s *Statistics) TrackReport(genTime float64, hasError bool) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.ReportRequests++
	if hasError {
		s.ErrorCount++
	}

	s.TotalGenTime += genTime
	s.RequestCount++
	s.AverageGenTime = s.TotalGenTime / float64(s.RequestCount)
}

// TrackAnalyze records one content analysis request with its focus keyword
func (s *Statistics) TrackAnalyze(focusKeyword string, genTime float64, hasError bool) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.AnalyzeRequests++

	keyword := strings.ToLower(strings.TrimSpace(focusKeyword))
	if keyword != "" {
		s.PopularKeywords[keyword]++
	}

	if hasError {
		s.ErrorCount++
	}

	s.TotalGenTime += genTime
	s.RequestCount++
	s.AverageGenTime = s.TotalGenTime / float64(s.RequestCount)
}

// GetUniqueVisitorsCount returns the number of unique visitors in the last 24 hours
func (s *Statistics) GetUniqueVisitorsCount() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	count := 0
	cutoff := time.Now().Add(-24 * time.Hour)

	for _, lastVisit := range s.UniqueVisitors {
		if lastVisit.After(cutoff) {
			count++
		}
	}

	return count
}

// GetPopularKeywords returns up to n analyzed focus keywords
func (s *Statistics) GetPopularKeywords(n int) map[string]int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	result := make(map[string]int)
	count := 0

	for keyword, freq := range s.PopularKeywords {
		if count < n {
			result[keyword] = freq
			count++
		}
	}

	return result
}

// GetErrorRate returns the error rate as a percentage
func (s *Statistics) GetErrorRate() float64 {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	total := s.ReportRequests + s.AnalyzeRequests
	if total == 0 {
		return 0
	}

	return (float64(s.ErrorCount) / float64(total)) * 100
}

// Save persists the statistics to a file
func (s *Statistics) Save() error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.LastPersisted = time.Now()

	file, err := os.Create("statistics.json")
	if err != nil {
		return fmt.Errorf("could not create statistics file: %v", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	if err := encoder.Encode(s); err != nil {
		return fmt.Errorf("could not encode statistics: %v", err)
	}

	return nil
}

// Load reads the statistics from a file
func (s *Statistics) Load() error {
	file, err := os.Open("statistics.json")
	if err != nil {
		if os.IsNotExist(err) {
			return nil // Not an error if file doesn't exist yet
		}
		return fmt.Errorf("could not open statistics file: %v", err)
	}
	defer file.Close()

	decoder := json.NewDecoder(file)
	if err := decoder.Decode(s); err != nil {
		return fmt.Errorf("could not decode statistics: %v", err)
	}

	return nil
}

// GetStatistics returns a copy of the current statistics, but only in development mode
func (s *Statistics) GetStatistics() map[string]interface{} {
	// Check if we're in development mode
	if os.Getenv(ENV_DEV_MODE) != "true" {
		// In production, return limited statistics without sensitive data
		s.mutex.RLock()
		defer s.mutex.RUnlock()

		return map[string]interface{}{
			"uniqueVisitors24h": s.GetUniqueVisitorsCount(),
			"reportRequests":    s.ReportRequests,
			"analyzeRequests":   s.AnalyzeRequests,
			"errorRate":         s.GetErrorRate(),
			"averageGenTime":    s.AverageGenTime,
		}
	}

	// In development mode, return full statistics
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	return map[string]interface{}{
		"uniqueVisitors24h": s.GetUniqueVisitorsCount(),
		"reportRequests":    s.ReportRequests,
		"analyzeRequests":   s.AnalyzeRequests,
		"errorRate":         s.GetErrorRate(),
		"averageGenTime":    s.AverageGenTime,
		"popularKeywords":   s.GetPopularKeywords(5), // Top 5 keywords only shown in dev mode
	}
}

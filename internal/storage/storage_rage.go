// /internal/storage/storage_rage.go
package storage

import (
	"encoding/json"
	"fmt"
	"time"
)

const (
	rageLevelsKey = "rage_levels"

	// MaxRage is the escalation ceiling.
	MaxRage = 5
)

type RageRecord struct {
	Level       int       `json:"level"`
	LastUpdated time.Time `json:"last_updated"`
}

// getRageMap reads the full rage table. Callers must hold s.mu.
func (s *Storage) getRageMap() (map[string]RageRecord, error) {
	data, exists := s.ds.Get(rageLevelsKey)
	if !exists {
		return map[string]RageRecord{}, nil
	}

	jsonData, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("error marshalling rage data: %w", err)
	}

	var records map[string]RageRecord
	if err := json.Unmarshal(jsonData, &records); err != nil {
		return nil, fmt.Errorf("error unmarshalling rage data: %w", err)
	}
	if records == nil {
		records = map[string]RageRecord{}
	}

	return records, nil
}

// GetRage returns the current rage level for a user, zero if unknown.
func (s *Storage) GetRage(userID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.getRageMap()
	if err != nil {
		return 0, err
	}
	return records[userID].Level, nil
}

// IncrementRage raises a user's rage level by amount, clamped to MaxRage,
// and returns the new level.
func (s *Storage) IncrementRage(userID string, amount int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.getRageMap()
	if err != nil {
		return 0, err
	}

	rec := records[userID]
	rec.Level += amount
	if rec.Level > MaxRage {
		rec.Level = MaxRage
	}
	if rec.Level < 0 {
		rec.Level = 0
	}
	rec.LastUpdated = time.Now()
	records[userID] = rec
	s.ds.Add(rageLevelsKey, records)

	return rec.Level, nil
}

// DecrementRage lowers a user's rage level by amount, floored at zero,
// and returns the new level.
func (s *Storage) DecrementRage(userID string, amount int) (int, error) {
	return s.IncrementRage(userID, -amount)
}

// TouchRage refreshes a user's LastUpdated without changing the level, so
// active users are not cooled down by the sweep. No-op for unknown users.
func (s *Storage) TouchRage(userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.getRageMap()
	if err != nil {
		return err
	}
	rec, exists := records[userID]
	if !exists || rec.Level == 0 {
		return nil
	}
	rec.LastUpdated = time.Now()
	records[userID] = rec
	s.ds.Add(rageLevelsKey, records)
	return nil
}

// AllRageRecords returns a copy of the full rage table.
func (s *Storage) AllRageRecords() (map[string]RageRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.getRageMap()
}

// SweepStaleRage decrements by one every rage level above zero whose last
// update is older than staleAfter, and returns how many users were cooled.
func (s *Storage) SweepStaleRage(staleAfter time.Duration) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.getRageMap()
	if err != nil {
		return 0, err
	}

	cooled := 0
	cutoff := time.Now().Add(-staleAfter)
	for userID, rec := range records {
		if rec.Level <= 0 || rec.LastUpdated.After(cutoff) {
			continue
		}
		rec.Level--
		rec.LastUpdated = time.Now()
		records[userID] = rec
		cooled++
	}

	if cooled > 0 {
		s.ds.Add(rageLevelsKey, records)
	}

	return cooled, nil
}

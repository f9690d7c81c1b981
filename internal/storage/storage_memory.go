// /internal/storage/storage_memory.go
package storage

import (
	"encoding/json"
	"fmt"
)

const (
	userMemoryKey = "user_memory"

	// memoryBlobLimit caps the remembered text per user. Older text is
	// dropped from the front once the blob overflows.
	memoryBlobLimit = 500
)

func (s *Storage) getMemoryMap() (map[string]string, error) {
	data, exists := s.ds.Get(userMemoryKey)
	if !exists {
		return map[string]string{}, nil
	}

	jsonData, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("error marshalling memory data: %w", err)
	}

	var blobs map[string]string
	if err := json.Unmarshal(jsonData, &blobs); err != nil {
		return nil, fmt.Errorf("error unmarshalling memory data: %w", err)
	}
	if blobs == nil {
		blobs = map[string]string{}
	}

	return blobs, nil
}

// GetUserMemory returns the remembered text blob for a user, empty if none.
func (s *Storage) GetUserMemory(userID string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	blobs, err := s.getMemoryMap()
	if err != nil {
		return "", err
	}
	return blobs[userID], nil
}

// AppendUserMemory adds text to a user's memory blob, keeping only the
// most recent memoryBlobLimit characters.
func (s *Storage) AppendUserMemory(userID, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	blobs, err := s.getMemoryMap()
	if err != nil {
		return err
	}

	blob := blobs[userID]
	if blob != "" {
		blob += "\n"
	}
	blob += text

	runes := []rune(blob)
	if len(runes) > memoryBlobLimit {
		runes = runes[len(runes)-memoryBlobLimit:]
	}
	blobs[userID] = string(runes)
	s.ds.Add(userMemoryKey, blobs)

	return nil
}

// ClearUserMemory forgets everything stored for a user.
func (s *Storage) ClearUserMemory(userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	blobs, err := s.getMemoryMap()
	if err != nil {
		return err
	}

	delete(blobs, userID)
	s.ds.Add(userMemoryKey, blobs)
	return nil
}

// /internal/storage/rage_sweeper.go
package storage

import (
	"context"
	"log"
	"time"
)

const rageSweepInterval = 30 * time.Minute

// RunRageSweeper runs a background loop that cools down stale rage levels
// every half hour until ctx is done. Call from main or app lifecycle.
func RunRageSweeper(ctx context.Context, store *Storage) error {
	ticker := time.NewTicker(rageSweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			cooled, err := store.SweepStaleRage(rageSweepInterval)
			if err != nil {
				log.Println("[ERR] Error sweeping stale rage levels:", err)
				continue
			}
			if cooled > 0 {
				log.Printf("[RAGE] Cooldown sweep lowered rage for %d user(s)", cooled)
			}
		}
	}
}

package processor

import (
	"context"
	"os"
)

// cleanupFile removes a partially written artifact, logs warning if fails
func (p *implProcessor) cleanupFile(ctx context.Context, filePath string) {
	if err := os.Remove(filePath); err != nil && !os.IsNotExist(err) {
		p.logger.Warn(ctx, "Failed to cleanup file %s: %v", filePath, err)
	} else {
		p.logger.Debug(ctx, "Cleaned up file: %s", filePath)
	}
}

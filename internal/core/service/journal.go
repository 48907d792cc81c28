package service

import (
	"slices"
	"sync"

	"go.uber.org/zap"
)

// LineCollector is an in-memory journal.
type LineCollector struct {
	mu    sync.Mutex
	lines []string
}

func (c *LineCollector) AppendLine(line string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = append(c.lines, line)
}

// Lines returns a copy of the collected lines.
func (c *LineCollector) Lines() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.lines)
}

type loggerJournal struct {
	logger *zap.Logger
}

func (j loggerJournal) AppendLine(line string) {
	j.logger.Info(line)
}

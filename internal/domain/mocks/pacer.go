package mocks

import "context"

// Pacer is a mock implementation of ports.Pacer that never blocks.
type Pacer struct {
	WaitErr error

	Waits  int
	Tokens []int
}

// Wait records the call and returns the configured error.
func (m *Pacer) Wait(ctx context.Context, estimatedTokens int) error {
	m.Waits++
	m.Tokens = append(m.Tokens, estimatedTokens)
	return m.WaitErr
}

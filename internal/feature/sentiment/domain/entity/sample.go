// Package entity defines the domain models for the sentiment feature.
package entity

import "time"

// Sample is one market-sentiment observation for a symbol from a single source.
type Sample struct {
	ID                 int64
	Symbol             string    // Upper-case ticker
	Score              float64   // -1 (bearish) .. 1 (bullish)
	MentionCount       int64     // Mentions observed in the sampling window
	PositivePercentage float64   // Share of positive mentions, 0..100
	Source             string    // e.g. "twitter", "reddit"
	ObservedAt         time.Time // Server time of recording
}

// Label returns "<SYMBOL> (<source>)".
func (s Sample) Label() string {
	return s.Symbol + " (" + s.Source + ")"
}

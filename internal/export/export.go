// Package export builds the outward JSON payload handed back to the
// supervising process on stdout.
//
// The shape is part of the preserved external contract: every summary
// field is serialized as a JSON-encoded string ("stringified sub-objects"),
// and the frame history is never included — only the renderer consumes
// frames.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/botarena/battlesim/internal/engine"
)

// Payload is the success result printed to stdout.
type Payload struct {
	WinnerTeam     string `json:"winner_team"`
	TotalFrames    string `json:"total_frames"`
	Duration       string `json:"duration"`
	Team1Survivors string `json:"team1_survivors"`
	Team2Survivors string `json:"team2_survivors"`
	BotStats       string `json:"bot_stats"`
	OutputPath     string `json:"output_path"`
}

// Build creates the outward payload from a battle result, dropping the
// frame history.
func Build(res *engine.Result, outputPath string) (Payload, error) {
	team1, err := json.Marshal(res.Team1Survivors)
	if err != nil {
		return Payload{}, fmt.Errorf("marshalling team1 survivors: %w", err)
	}
	team2, err := json.Marshal(res.Team2Survivors)
	if err != nil {
		return Payload{}, fmt.Errorf("marshalling team2 survivors: %w", err)
	}
	// Integer map keys come out as sorted string keys, which keeps the
	// payload reproducible.
	stats, err := json.Marshal(res.BotStats)
	if err != nil {
		return Payload{}, fmt.Errorf("marshalling bot stats: %w", err)
	}

	return Payload{
		WinnerTeam:     strconv.Itoa(res.WinnerTeam),
		TotalFrames:    strconv.Itoa(res.TotalFrames),
		Duration:       strconv.FormatFloat(res.Duration, 'f', 2, 64),
		Team1Survivors: string(team1),
		Team2Survivors: string(team2),
		BotStats:       string(stats),
		OutputPath:     outputPath,
	}, nil
}

// Write serializes the payload as a single JSON object to w.
func (p Payload) Write(w io.Writer) error {
	return json.NewEncoder(w).Encode(p)
}

// WriteError emits the documented error object. Used for every failure
// that must cross the process boundary instead of a traceback.
func WriteError(w io.Writer, msg string) {
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

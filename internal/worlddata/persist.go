package worlddata

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"stack-and-slash/server/internal/entity"
	"stack-and-slash/server/internal/grid"
	"stack-and-slash/server/internal/items"
)

// ParseError reports a structurally malformed save file. A corrupted save
// must never silently produce a partial overlay, so parsing stops at the
// first bad line.
type ParseError struct {
	Path   string
	Line   int
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("worlddata: parse %s line %d: %s", e.Path, e.Line, e.Reason)
}

// LoadResult summarizes how a world was constructed.
type LoadResult struct {
	// FromSave is true when state was restored from disk.
	FromSave bool
	// Skipped counts records dropped because their item or entity type name
	// is no longer registered. One stale hotbar entry does not abort the
	// whole load.
	Skipped int
}

// SavePath returns the save file location for a seed, one file per seed.
func SavePath(dir string, seed int64) string {
	return filepath.Join(dir, fmt.Sprintf("save_%d.csv", seed))
}

// SaveData writes the world's persisted state: seed, player location, hotbar,
// mutation overlay, stored items and stored entities, in that fixed order.
// Saving is a pure read of current state; a write failure leaves the
// in-memory world untouched.
func (w *WorldData) SaveData() error {
	path := SavePath(w.params.SaveDir, w.seed)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("worlddata: create save directory: %w", err)
	}

	var sb strings.Builder
	w.encodeState(&sb)

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, []byte(sb.String()), 0o644); err != nil {
		return fmt.Errorf("worlddata: write save: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("worlddata: replace save: %w", err)
	}
	return nil
}

func (w *WorldData) encodeState(sb *strings.Builder) {
	fmt.Fprintf(sb, "%d\n", w.seed)
	fmt.Fprintf(sb, "%d,%d\n", w.player.X, w.player.Y)

	sb.WriteString("hotbar")
	for _, item := range w.hotbar {
		sb.WriteString(",")
		sb.WriteString(item.String())
	}
	sb.WriteString("\n")

	for _, id := range w.overlay.IDs() {
		state := w.overlay.Get(id)
		fmt.Fprintf(sb, "feature,%d", id)
		for _, key := range state.Keys() {
			value, _ := state.Get(key)
			fmt.Fprintf(sb, ",%s,%s", key, value)
		}
		sb.WriteString("\n")
	}

	for _, pos := range sortedPoints(w.storedItems) {
		fmt.Fprintf(sb, "item,%s,%s,%s\n", formatCoord(pos.X), formatCoord(pos.Y), w.storedItems[pos].String())
	}
	for _, pos := range sortedPoints(w.storedEntities) {
		fmt.Fprintf(sb, "entity,%s,%s,%s\n", formatCoord(pos.X), formatCoord(pos.Y), w.storedEntities[pos].String())
	}
}

// Grid coordinates are written as doubles and truncated back to integers on
// read, matching the save files the prototype produced.
func formatCoord(v int) string {
	return strconv.FormatFloat(float64(v), 'f', 1, 64)
}

func sortedPoints[V any](m map[grid.Point]V) []grid.Point {
	out := make([]grid.Point, 0, len(m))
	for pos := range m {
		out = append(out, pos)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Y != out[j].Y {
			return out[i].Y < out[j].Y
		}
		return out[i].X < out[j].X
	})
	return out
}

// Load constructs a world for the given seed, restoring persisted state when
// a matching save file exists. A missing file yields a fresh world and a nil
// error; a malformed file is a hard error so corruption never turns into an
// inconsistent overlay. The window is empty until GenerateWorld is called.
func Load(seed int64, params Params) (*WorldData, LoadResult, error) {
	w := New(seed, params)
	path := SavePath(w.params.SaveDir, seed)

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return w, LoadResult{}, nil
		}
		return nil, LoadResult{}, fmt.Errorf("worlddata: read save: %w", err)
	}

	result, err := w.decodeState(path, data)
	if err != nil {
		return nil, result, err
	}
	result.FromSave = true
	return w, result, nil
}

func (w *WorldData) decodeState(path string, data []byte) (LoadResult, error) {
	var result LoadResult
	lines := strings.Split(string(data), "\n")
	// Drop trailing blank lines left by the final newline.
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}

	fail := func(line int, format string, args ...any) (LoadResult, error) {
		return result, &ParseError{Path: path, Line: line + 1, Reason: fmt.Sprintf(format, args...)}
	}

	if len(lines) < 3 {
		return fail(len(lines), "expected seed, player and hotbar lines")
	}

	seed, err := strconv.ParseInt(strings.TrimSpace(lines[0]), 10, 64)
	if err != nil {
		return fail(0, "seed is not an integer: %q", lines[0])
	}
	w.seed = seed

	player, err := parseCoordPair(lines[1])
	if err != nil {
		return fail(1, "player location: %v", err)
	}
	w.player = player

	hotbarTokens := strings.Split(lines[2], ",")
	if hotbarTokens[0] != "hotbar" {
		return fail(2, "expected hotbar line, got %q", lines[2])
	}
	for _, name := range hotbarTokens[1:] {
		item, err := items.FromName(name)
		if err != nil {
			w.params.Logger.Warnf("load: dropping unknown hotbar item %q", name)
			result.Skipped++
			continue
		}
		w.hotbar = append(w.hotbar, item)
	}

	idx := 3
	for ; idx < len(lines) && strings.HasPrefix(lines[idx], "feature,"); idx++ {
		tokens := strings.Split(lines[idx], ",")
		if len(tokens) < 2 || (len(tokens)-2)%2 != 0 {
			return fail(idx, "feature record has %d tokens, want id plus key/value pairs", len(tokens))
		}
		id, err := strconv.ParseUint(tokens[1], 10, 64)
		if err != nil {
			return fail(idx, "feature id is not numeric: %q", tokens[1])
		}
		state := NewFeatureState(id)
		for i := 2; i < len(tokens); i += 2 {
			state.Set(tokens[i], tokens[i+1])
		}
		w.overlay.Put(state)
	}

	for ; idx < len(lines) && strings.HasPrefix(lines[idx], "item,"); idx++ {
		pos, name, err := parseStoredRecord(lines[idx])
		if err != nil {
			return fail(idx, "item record: %v", err)
		}
		item, err := items.FromName(name)
		if err != nil {
			w.params.Logger.Warnf("load: dropping unknown stored item %q at %v", name, pos)
			result.Skipped++
			continue
		}
		w.storedItems[pos] = item
	}

	for ; idx < len(lines) && strings.HasPrefix(lines[idx], "entity,"); idx++ {
		pos, name, err := parseStoredRecord(lines[idx])
		if err != nil {
			return fail(idx, "entity record: %v", err)
		}
		if name == string(entity.TypePlayer) {
			continue
		}
		e, err := entity.FromName(name)
		if err != nil {
			w.params.Logger.Warnf("load: dropping unknown stored entity %q at %v", name, pos)
			result.Skipped++
			continue
		}
		w.storedEntities[pos] = e
	}

	if idx < len(lines) {
		return fail(idx, "unexpected line %q", lines[idx])
	}
	return result, nil
}

func parseCoordPair(line string) (grid.Point, error) {
	tokens := strings.Split(strings.TrimSpace(line), ",")
	if len(tokens) != 2 {
		return grid.Point{}, fmt.Errorf("have %d tokens, want 2", len(tokens))
	}
	x, err := parseCoord(tokens[0])
	if err != nil {
		return grid.Point{}, err
	}
	y, err := parseCoord(tokens[1])
	if err != nil {
		return grid.Point{}, err
	}
	return grid.Point{X: x, Y: y}, nil
}

func parseStoredRecord(line string) (grid.Point, string, error) {
	tokens := strings.Split(line, ",")
	if len(tokens) != 4 {
		return grid.Point{}, "", fmt.Errorf("have %d tokens, want 4", len(tokens))
	}
	x, err := parseCoord(tokens[1])
	if err != nil {
		return grid.Point{}, "", err
	}
	y, err := parseCoord(tokens[2])
	if err != nil {
		return grid.Point{}, "", err
	}
	return grid.Point{X: x, Y: y}, tokens[3], nil
}

// parseCoord accepts the double form coordinates are written in and truncates
// to the integer lattice.
func parseCoord(token string) (int, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(token), 64)
	if err != nil {
		return 0, fmt.Errorf("coordinate is not numeric: %q", token)
	}
	return int(f), nil
}

// Command validate is a small CLI that validates game configuration JSON
// files in the ../configs directory. It checks:
//   - JSON structure and required fields
//   - Board dimensions and adjacency mode
//   - Pinned layout consistency (interior size, digits or '.', at least one stone)
//   - Presence of the required message keys
//   - Clearability: every starting stone can eventually be removed by matches
//
// It prints a per-file report and exits non-zero when any file is invalid.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/digitsum/sumstones/game/engine"
)

// ValidationResult captures the outcome of validating a single file.
// If Valid is true, Errors contains informational messages; otherwise it
// accumulates the validation errors that were found.
type ValidationResult struct {
	File   string
	Valid  bool
	Errors []string
}

// validateConfig loads and validates a single configuration JSON file.
func validateConfig(filePath string) ValidationResult {
	result := ValidationResult{
		File:   filepath.Base(filePath),
		Valid:  true,
		Errors: []string{},
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Failed to read file: %v", err))
		return result
	}

	var config engine.GameConfig
	if err := json.Unmarshal(data, &config); err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Invalid JSON: %v", err))
		return result
	}

	if err := engine.ValidateGameConfig(&config); err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, err.Error())
	}

	// Validate messages
	requiredMessages := map[string]string{
		"welcome":   config.Messages.Welcome,
		"placed":    config.Messages.Placed,
		"match":     config.Messages.Match,
		"won":       config.Messages.Won,
		"stuck":     config.Messages.Stuck,
		"occupied":  config.Messages.Occupied,
		"game_over": config.Messages.GameOver,
	}
	for key, value := range requiredMessages {
		if value == "" {
			result.Valid = false
			result.Errors = append(result.Errors, fmt.Sprintf("Missing required message: %s", key))
		}
	}

	// Deep check on pinned layouts
	if result.Valid && len(config.Layout) > 0 {
		clearability := validateClearability(&config)
		result.Errors = append(result.Errors, clearability.Errors...)
		if !clearability.Valid {
			result.Valid = false
		}
	}

	// Add informational data
	if result.Valid {
		adjacency := config.Adjacency
		if adjacency == "" {
			adjacency = engine.AdjacencyBox
		}
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Name: %s", config.Name))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Board: %dx%d (interior %dx%d)", config.Rows, config.Cols, config.Rows-2, config.Cols-2))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Adjacency: %s", adjacency))
		if len(config.Layout) > 0 {
			result.Errors = append(result.Errors, fmt.Sprintf("✓ Starting stones: %d", countStones(config.Layout)))
		} else {
			result.Errors = append(result.Errors, "✓ Starting interior: drawn from digit stream")
		}
		if config.Seed != 0 {
			result.Errors = append(result.Errors, fmt.Sprintf("✓ Seed: %d (reproducible games)", config.Seed))
		} else {
			result.Errors = append(result.Errors, "✓ Seed: fresh per session")
		}
	}

	return result
}

func countStones(layout []string) int {
	n := 0
	for _, row := range layout {
		for _, ch := range row {
			if ch != '.' {
				n++
			}
		}
	}
	return n
}

// validateClearability checks that every starting stone can eventually be
// removed. A stone is clearable if a free tile sits next to it (a matching
// placement there clears it as a neighbor), or if a clearable stone sits next
// to it (clearing that stone opens a free tile beside this one). The check
// iterates to a fixpoint and reports any stones left unmarked.
func validateClearability(config *engine.GameConfig) ValidationResult {
	result := ValidationResult{
		Valid:  true,
		Errors: []string{},
	}

	rows, cols := config.Rows, config.Cols
	occupied := make([][]bool, rows)
	for r := range occupied {
		occupied[r] = make([]bool, cols)
	}
	totalStones := 0
	for r, row := range config.Layout {
		for c, ch := range row {
			if ch != '.' {
				occupied[r+1][c+1] = true
				totalStones++
			}
		}
	}

	adjacency := config.Adjacency
	if adjacency == "" {
		adjacency = engine.AdjacencyBox
	}
	offsets := [][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}
	if adjacency == engine.AdjacencyBox {
		offsets = append(offsets, [2]int{-1, -1}, [2]int{-1, 1}, [2]int{1, -1}, [2]int{1, 1})
	}

	clearable := make([][]bool, rows)
	for r := range clearable {
		clearable[r] = make([]bool, cols)
	}

	changed := true
	for changed {
		changed = false
		for r := 0; r < rows; r++ {
			for c := 0; c < cols; c++ {
				if !occupied[r][c] || clearable[r][c] {
					continue
				}
				for _, off := range offsets {
					nr, nc := r+off[0], c+off[1]
					if nr < 0 || nr >= rows || nc < 0 || nc >= cols {
						continue
					}
					if !occupied[nr][nc] || clearable[nr][nc] {
						clearable[r][c] = true
						changed = true
						break
					}
				}
			}
		}
	}

	stuck := []string{}
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			if occupied[r][c] && !clearable[r][c] {
				stuck = append(stuck, fmt.Sprintf("Stone at (%d,%d)", r, c))
			}
		}
	}

	if len(stuck) > 0 {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Clearability failure: %d/%d stones can never be cleared", len(stuck), totalStones))
		for _, s := range stuck {
			result.Errors = append(result.Errors, fmt.Sprintf("Unclearable: %s", s))
		}
	} else {
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Clearability: all %d stones can be cleared", totalStones))
	}

	return result
}

// main scans ../configs for *.json files and validates each one.
func main() {
	configDir := "../configs"
	if len(os.Args) > 1 {
		configDir = os.Args[1]
	}

	files, err := filepath.Glob(filepath.Join(configDir, "*.json"))
	if err != nil {
		fmt.Printf("Error finding config files: %v\n", err)
		os.Exit(1)
	}

	allValid := true
	for _, file := range files {
		result := validateConfig(file)

		fmt.Printf("\n%s %s\n", strings.Repeat("=", 20), result.File)

		if result.Valid {
			fmt.Println("✅ VALID")
			for _, info := range result.Errors {
				fmt.Println("  " + info)
			}
		} else {
			fmt.Println("❌ INVALID")
			allValid = false
			for _, err := range result.Errors {
				if !strings.HasPrefix(err, "✓") {
					fmt.Println("  ❌ " + err)
				}
			}
		}
	}

	fmt.Printf("\n%s\n", strings.Repeat("=", 40))
	if allValid {
		fmt.Println("✅ All configurations are valid!")
	} else {
		fmt.Println("❌ Some configurations have errors")
		os.Exit(1)
	}
}

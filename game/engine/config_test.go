package engine

import (
	"strings"
	"testing"
)

func TestDefaultGameConfig(t *testing.T) {
	config := DefaultGameConfig()

	if err := ValidateGameConfig(config); err != nil {
		t.Fatalf("Default config should validate: %v", err)
	}
	if config.Rows != 9 || config.Cols != 9 {
		t.Errorf("Default board is %dx%d, want 9x9", config.Rows, config.Cols)
	}
	if config.Adjacency != AdjacencyBox {
		t.Errorf("Default adjacency = %q, want %q", config.Adjacency, AdjacencyBox)
	}
	if config.Messages.Welcome == "" {
		t.Error("Default config should carry a welcome message")
	}
}

func TestValidateGameConfig_Errors(t *testing.T) {
	base := func() *GameConfig {
		c := DefaultGameConfig()
		return c
	}

	tests := []struct {
		name    string
		mutate  func(*GameConfig)
		wantErr string
	}{
		{
			name:    "missing name",
			mutate:  func(c *GameConfig) { c.Name = "" },
			wantErr: "name is required",
		},
		{
			name:    "rows too small",
			mutate:  func(c *GameConfig) { c.Rows = 2 },
			wantErr: "rows must be between",
		},
		{
			name:    "cols too large",
			mutate:  func(c *GameConfig) { c.Cols = MaxBoardSize + 1 },
			wantErr: "cols must be between",
		},
		{
			name:    "unknown adjacency",
			mutate:  func(c *GameConfig) { c.Adjacency = "hex" },
			wantErr: "unknown adjacency",
		},
		{
			name: "layout wrong row count",
			mutate: func(c *GameConfig) {
				c.Layout = []string{"1234567"}
			},
			wantErr: "layout must have 7 rows",
		},
		{
			name: "layout wrong width",
			mutate: func(c *GameConfig) {
				c.Layout = []string{
					"1234567", "1234567", "1234567", "123",
					"1234567", "1234567", "1234567",
				}
			},
			wantErr: "must have 7 characters",
		},
		{
			name: "layout bad character",
			mutate: func(c *GameConfig) {
				c.Layout = []string{
					"1234567", "1234567", "1234567", "12x4567",
					"1234567", "1234567", "1234567",
				}
			},
			wantErr: "invalid layout character",
		},
		{
			name: "layout with no digits",
			mutate: func(c *GameConfig) {
				c.Layout = []string{
					".......", ".......", ".......", ".......",
					".......", ".......", ".......",
				}
			},
			wantErr: "at least one digit",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := base()
			tt.mutate(config)
			err := ValidateGameConfig(config)
			if err == nil {
				t.Fatal("Expected a validation error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Error %q does not mention %q", err, tt.wantErr)
			}
		})
	}

	if err := ValidateGameConfig(nil); err == nil {
		t.Error("Expected error for nil config")
	}
}

func TestInteriorValues_FromLayout(t *testing.T) {
	config := DefaultGameConfig()
	config.Rows, config.Cols = 5, 5
	config.Layout = []string{
		"1.3",
		"...",
		"7.9",
	}
	if err := ValidateGameConfig(config); err != nil {
		t.Fatalf("Layout should validate: %v", err)
	}

	interior := interiorValues(config, NewDigitStream(1))

	want := [][]int{
		{1, Empty, 3},
		{Empty, Empty, Empty},
		{7, Empty, 9},
	}
	for r := range want {
		for c := range want[r] {
			if interior[r][c] != want[r][c] {
				t.Errorf("interior[%d][%d] = %d, want %d", r, c, interior[r][c], want[r][c])
			}
		}
	}
}

func TestInteriorValues_FromStream(t *testing.T) {
	config := DefaultGameConfig()
	stream := NewDigitStream(42)

	interior := interiorValues(config, stream)

	if len(interior) != 7 || len(interior[0]) != 7 {
		t.Fatalf("Interior is %dx%d, want 7x7", len(interior), len(interior[0]))
	}
	for r := range interior {
		for c, v := range interior[r] {
			if v < 0 || v > 9 {
				t.Errorf("interior[%d][%d] = %d, want a digit", r, c, v)
			}
		}
	}
	if stream.Consumed() != 49 {
		t.Errorf("Stream consumed %d digits for the interior, want 49", stream.Consumed())
	}

	// Same seed, same starting interior
	again := interiorValues(config, NewDigitStream(42))
	for r := range interior {
		for c := range interior[r] {
			if interior[r][c] != again[r][c] {
				t.Fatalf("Interior not deterministic at [%d][%d]", r, c)
			}
		}
	}
}

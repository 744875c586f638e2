// Package config provides game configuration management for SumStones.
//
// Configurations are JSON files in a directory, one file per board setup:
// dimensions, an optional pinned starting interior, adjacency rule, optional
// fixed seed and message templates. The Manager loads and caches them,
// falling back to a built-in classic setup when no files are present.
//
// Usage:
//
//	manager, err := config.NewManager("configs")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	cfg, err := manager.LoadConfig("classic")
//	infos, err := manager.ListConfigs()
package config

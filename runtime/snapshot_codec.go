package iplruntime

import (
	"fmt"
	"os"
)

// ConvertSnapshotFile rewrites the snapshot at inputPath into outputPath
// using outputFormat (json|yaml). The input format follows its extension,
// falling back to the other format when the first decode fails.
func ConvertSnapshotFile(inputPath, outputPath, outputFormat string) error {
	if _, err := normalizeFormat(outputFormat); err != nil {
		return err
	}
	data, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("read snapshot: %w", err)
	}
	format := FormatFromPath(inputPath)
	snap, err := DecodeSnapshot(data, format)
	if err != nil {
		alt := "yaml"
		if format == "yaml" {
			alt = "json"
		}
		var altErr error
		snap, altErr = DecodeSnapshot(data, alt)
		if altErr != nil {
			return err
		}
	}
	return WriteSnapshotFile(outputPath, snap, outputFormat)
}

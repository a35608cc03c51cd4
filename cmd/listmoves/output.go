package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Writes the value as indented JSON into the out file, or into the command's output when no file is given
func writeJson(out io.Writer, outFile string, value any) error {
	bytes, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return fmt.Errorf("an error occurred while building output json: %w", err)
	}
	if outFile == "" {
		_, err := fmt.Fprintln(out, string(bytes))
		return err
	}
	if err := os.WriteFile(outFile, bytes, 0666); err != nil {
		return fmt.Errorf("an error occurred while writing to the output file: %w", err)
	}
	return nil
}

func toCsv(file string, results []startResult) error {
	output, err := os.Create(file)
	if err != nil {
		return fmt.Errorf("cannot create CSV file: %w", err)
	}
	defer output.Close()

	writer := csv.NewWriter(output)
	header := []string{"Start", "Seed", "Checked", "Passed", "Skipped", "Failed", "Distance"}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("cannot write CSV header: %w", err)
	}

	for _, result := range results {
		record := []string{
			fmt.Sprintf("%d", result.Start),
			fmt.Sprintf("%d", result.Seed),
			fmt.Sprintf("%d", result.Checked),
			fmt.Sprintf("%d", result.Passed),
			fmt.Sprintf("%d", result.Skipped),
			fmt.Sprintf("%d", result.Failed),
			fmt.Sprintf("%.3f", result.Distance),
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("cannot write CSV record: %w", err)
		}
	}
	writer.Flush()
	return writer.Error()
}

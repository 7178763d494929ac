package cli

import (
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"duelist/internal/duration"
	"duelist/internal/validation"
)

// exportedTask is the YAML shape of one task.
type exportedTask struct {
	Name        string    `yaml:"name"`
	Description string    `yaml:"description"`
	Start       time.Time `yaml:"start"`
	Deadline    time.Time `yaml:"deadline"`
	TimeLeft    string    `yaml:"time_left"`
}

// export writes all tasks, sorted by deadline, in the requested format.
func (a *App) export(_ context.Context, args string) error {
	if err := a.validator.ValidateExportFormat(args); err != nil {
		return err
	}

	switch strings.ToLower(strings.TrimSpace(args)) {
	case validation.FormatYAML:
		return a.exportYAML()
	default:
		return a.exportCSV()
	}
}

func (a *App) exportCSV() error {
	now := a.store.Now()
	writer := csv.NewWriter(a.out)

	header := []string{"Name", "Description", "Start", "Deadline", "Time Left (seconds)"}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, task := range a.store.ListSorted() {
		left := task.TimeLeft(now)
		if left < 0 {
			left = 0
		}
		row := []string{
			task.Name,
			task.Description,
			task.Start.Format(time.RFC3339),
			task.Deadline.Format(time.RFC3339),
			strconv.FormatInt(int64(left/time.Second), 10),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

func (a *App) exportYAML() error {
	now := a.store.Now()
	tasks := a.store.ListSorted()

	doc := struct {
		Tasks []exportedTask `yaml:"tasks"`
	}{Tasks: make([]exportedTask, 0, len(tasks))}

	for _, task := range tasks {
		doc.Tasks = append(doc.Tasks, exportedTask{
			Name:        task.Name,
			Description: task.Description,
			Start:       task.Start,
			Deadline:    task.Deadline,
			TimeLeft:    duration.Format(task.TimeLeft(now)),
		})
	}

	encoder := yaml.NewEncoder(a.out)
	encoder.SetIndent(2)
	if err := encoder.Encode(doc); err != nil {
		return fmt.Errorf("failed to write YAML: %w", err)
	}
	return encoder.Close()
}

// services/progress.go - Progress Aggregation
package services

import (
	"tracker/models"
)

// TaskState pairs a task spec with its evaluated completion for one day.
type TaskState struct {
	models.TaskSpec
	Done bool `json:"done"`
}

// Progress summarizes a day's required tasks.
type Progress struct {
	Done    int         `json:"done"`
	Total   int         `json:"total"`
	AllDone bool        `json:"all_done"`
	Tasks   []TaskState `json:"tasks"`
}

// ProgressFor evaluates every required task of the given profile against a
// day record.
func ProgressFor(profileName string, prof *models.Profile, log *models.DayLog) Progress {
	tasks := ActiveTasks(profileName, prof, log.Date)

	states := make([]TaskState, 0, len(tasks))
	done := 0
	total := 0
	for _, task := range tasks {
		if !task.Required {
			continue
		}
		total++
		d := TaskIsDone(task, log)
		if d {
			done++
		}
		states = append(states, TaskState{TaskSpec: task, Done: d})
	}

	return Progress{
		Done:    done,
		Total:   total,
		AllDone: done == total,
		Tasks:   states,
	}
}

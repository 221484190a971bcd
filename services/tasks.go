// services/tasks.go - Per-Day Task Derivation and Completion Predicates
package services

import (
	"tracker/models"
)

// ActiveTasks derives the ordered task list for a profile on the given
// calendar date. The order is fixed: exercise, steps, water, calories,
// reading (Noor), then the Monday extras (weight, and the Instagram photo
// for Robin).
func ActiveTasks(profileName string, prof *models.Profile, date string) []models.TaskSpec {
	monday := isMondayDate(date)

	tasks := make([]models.TaskSpec, 0, 7)

	switch profileName {
	case models.ProfileRobin:
		tasks = append(tasks, models.TaskSpec{
			ID: models.TaskIDPushupsSitups, Label: "30 push-ups + 30 sit-ups",
			Type: models.TaskCheckbox, Required: true,
		})
	case models.ProfileNoor:
		tasks = append(tasks, models.TaskSpec{
			ID: models.TaskIDPushupsSitups, Label: "15 push-ups + 15 sit-ups",
			Type: models.TaskCheckbox, Required: true,
		})
	}

	tasks = append(tasks, models.TaskSpec{
		ID: models.TaskIDSteps, Label: "Steps",
		Type: models.TaskNumber, Required: true,
		Goal: 6000, Unit: "steps", Mode: models.ModeGTE,
	})

	tasks = append(tasks, models.TaskSpec{
		ID: models.TaskIDWater, Label: "Water",
		Type: models.TaskCounter, Required: true,
		Goal: prof.WaterGoal, Unit: "ml",
	})

	tasks = append(tasks, models.TaskSpec{
		ID: models.TaskIDCalories, Label: "Calories",
		Type: models.TaskNumber, Required: true,
		Goal: prof.CalorieGoal, Unit: "kcal", Mode: models.ModeLTE,
	})

	if profileName == models.ProfileNoor {
		tasks = append(tasks, models.TaskSpec{
			ID: models.TaskIDReadingPages, Label: "Reading",
			Type: models.TaskNumber, Required: true,
			Goal: 10, Unit: "pages", Mode: models.ModeGTE,
		})
	}

	if monday {
		tasks = append(tasks, models.TaskSpec{
			ID: models.TaskIDWeightMonday, Label: "Monday: weigh-in",
			Type: models.TaskNumber, Required: true,
			Unit: "kg", Mode: models.ModePresent, MondayOnly: true,
		})
		if profileName == models.ProfileRobin {
			tasks = append(tasks, models.TaskSpec{
				ID: models.TaskIDInstaMonday, Label: "Monday: photo posted on Instagram",
				Type: models.TaskCheckbox, Required: true, MondayOnly: true,
			})
		}
	}

	return tasks
}

// TaskIsDone evaluates a single task against a day record. Absent or
// invalid numeric values never satisfy a threshold task.
func TaskIsDone(task models.TaskSpec, log *models.DayLog) bool {
	switch task.Type {
	case models.TaskCheckbox:
		return checkboxValue(log, task.ID)

	case models.TaskCounter:
		return log.WaterMl >= task.Goal

	case models.TaskNumber:
		v, ok := numberValue(log, task.ID)
		if !ok {
			return false
		}
		switch task.Mode {
		case models.ModePresent:
			return true
		case models.ModeLTE:
			return v <= float64(task.Goal)
		case models.ModeGTE:
			return v >= float64(task.Goal)
		}
		return true
	}

	return false
}

func checkboxValue(log *models.DayLog, id string) bool {
	switch id {
	case models.TaskIDPushupsSitups:
		return log.PushupsSitups
	case models.TaskIDInstaMonday:
		return log.InstaMonday
	}
	return false
}

func numberValue(log *models.DayLog, id string) (float64, bool) {
	switch id {
	case models.TaskIDSteps:
		if log.Steps != nil {
			return float64(*log.Steps), true
		}
	case models.TaskIDCalories:
		if log.Calories != nil {
			return float64(*log.Calories), true
		}
	case models.TaskIDReadingPages:
		if log.ReadingPages != nil {
			return float64(*log.ReadingPages), true
		}
	case models.TaskIDWeightMonday:
		if log.WeightMonday != nil {
			return *log.WeightMonday, true
		}
	}
	return 0, false
}

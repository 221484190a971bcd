// models/task.go - Task Specification Model
package models

// TaskType discriminates how a task's completion is evaluated.
type TaskType string

const (
	TaskCheckbox TaskType = "checkbox"
	TaskCounter  TaskType = "counter"
	TaskNumber   TaskType = "number"
)

// NumberMode refines TaskNumber evaluation.
type NumberMode string

const (
	ModeGTE     NumberMode = "gte"
	ModeLTE     NumberMode = "lte"
	ModePresent NumberMode = "present"
)

// Task field identifiers. They double as DayLog JSON keys, so patch bodies
// from the UI address task values by the same names.
const (
	TaskIDPushupsSitups = "pushupsSitups"
	TaskIDSteps         = "steps"
	TaskIDWater         = "waterMl"
	TaskIDCalories      = "calories"
	TaskIDReadingPages  = "readingPages"
	TaskIDWeightMonday  = "weightMonday"
	TaskIDInstaMonday   = "instaMonday"
)

// TaskSpec describes one trackable requirement for a day.
type TaskSpec struct {
	ID         string     `json:"id"`
	Label      string     `json:"label"`
	Type       TaskType   `json:"type"`
	Required   bool       `json:"required"`
	Goal       int        `json:"goal,omitempty"`
	Unit       string     `json:"unit,omitempty"`
	Mode       NumberMode `json:"mode,omitempty"`
	MondayOnly bool       `json:"mondayOnly,omitempty"`
}

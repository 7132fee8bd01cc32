package screen

type PromptKind int

const (
	// Alert only needs to be dismissed.
	Alert PromptKind = iota + 1
	// Confirm asks yes or no before removing TaskID.
	Confirm
)

// Prompt is the modal dialog currently shown over the screen.
type Prompt struct {
	Kind    PromptKind
	Title   string
	Message string
	TaskID  int64
}

func duplicatePrompt() Prompt {
	return Prompt{
		Kind:    Alert,
		Title:   "Task already exists!",
		Message: "You cannot add a task with the same name",
	}
}

func removePrompt(id int64) Prompt {
	return Prompt{
		Kind:    Confirm,
		Title:   "Remove item",
		Message: "Are you sure you want to remove this item?",
		TaskID:  id,
	}
}

package setting

type Setting struct {
	Key   string `json:"key" db:"key"`
	Value string `json:"value" db:"value"`
}

const KeyDailyTasksCount = "dailyTasksCount"

const DefaultDailyTasksCount = 8

// Defaults засеваются в каждое новое хранилище.
func Defaults() map[string]string {
	return map[string]string{
		KeyDailyTasksCount: "8",
	}
}

package calendar

import (
	"bytes"
	"encoding/json"

	"workerTracker/internal/dates"
	"workerTracker/internal/models/note"
	"workerTracker/internal/models/task"
)

type Bucket struct {
	Tasks []*task.Task `json:"tasks"`
	Notes []*note.Note `json:"notes"`
}

type Day struct {
	Day    dates.DayKey
	Bucket Bucket
}

// Calendar - корзины по дням в порядке возрастания дат.
// В JSON выдаётся объектом {"YYYY-MM-DD": {...}} с сохранением порядка ключей.
type Calendar struct {
	Days  []Day
	index map[dates.DayKey]int
}

// New создаёт пустые корзины на каждый день из days.
func New(days []dates.DayKey) *Calendar {
	c := &Calendar{
		Days:  make([]Day, len(days)),
		index: make(map[dates.DayKey]int, len(days)),
	}
	for i, d := range days {
		c.Days[i] = Day{Day: d, Bucket: Bucket{Tasks: []*task.Task{}, Notes: []*note.Note{}}}
		c.index[d] = i
	}
	return c
}

// AddTask кладёт задачу в корзину её дня, false если дня нет в календаре.
func (c *Calendar) AddTask(t *task.Task) bool {
	day, ok := t.DayKey()
	if !ok {
		return false
	}
	i, ok := c.index[day]
	if !ok {
		return false
	}
	c.Days[i].Bucket.Tasks = append(c.Days[i].Bucket.Tasks, t)
	return true
}

func (c *Calendar) AddNote(n *note.Note) bool {
	day, ok := n.DayKey()
	if !ok {
		return false
	}
	i, ok := c.index[day]
	if !ok {
		return false
	}
	c.Days[i].Bucket.Notes = append(c.Days[i].Bucket.Notes, n)
	return true
}

func (c *Calendar) Get(day dates.DayKey) (Bucket, bool) {
	i, ok := c.index[day]
	if !ok {
		return Bucket{}, false
	}
	return c.Days[i].Bucket, true
}

func (c *Calendar) Len() int {
	return len(c.Days)
}

func (c *Calendar) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, d := range c.Days {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(d.Day.String())
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(d.Bucket)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

package model

import (
	"slices"
	"sort"

	"github.com/sandeepkv93/daygrid/internal/calendar"
)

// Collection buckets tasks by day. Order within a day is insertion order; a
// day with no tasks has no entry.
type Collection map[calendar.Key][]Task

func (c Collection) Day(key calendar.Key) []Task {
	return c[key]
}

// Put replaces the tasks stored for key, rewriting each task's Date so it
// always matches the key it is stored under.
func (c Collection) Put(key calendar.Key, tasks []Task) {
	if len(tasks) == 0 {
		delete(c, key)
		return
	}
	out := make([]Task, len(tasks))
	for i, t := range tasks {
		t.Date = key
		out[i] = t
	}
	c[key] = out
}

func (c Collection) Append(t Task) {
	c[t.Date] = append(c[t.Date], t)
}

func (c Collection) Clone() Collection {
	out := make(Collection, len(c))
	for k, v := range c {
		if len(v) == 0 {
			continue
		}
		out[k] = slices.Clone(v)
	}
	return out
}

func (c Collection) Keys() []calendar.Key {
	keys := make([]calendar.Key, 0, len(c))
	for k := range c {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

func (c Collection) Find(key calendar.Key, id ID) (int, bool) {
	for i, t := range c[key] {
		if t.ID == id {
			return i, true
		}
	}
	return -1, false
}

// Group buckets a flat task list by date, keeping input order within each day.
func Group(tasks []Task) Collection {
	out := make(Collection)
	for _, t := range tasks {
		out.Append(t)
	}
	return out
}

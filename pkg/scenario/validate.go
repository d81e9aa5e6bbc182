package scenario

import (
	"fmt"
	"regexp"
	"sort"
)

var validIDRegex = regexp.MustCompile(`^[a-z][a-z0-9_]*[a-z0-9]$|^[a-z]$`)

// IsValidID reports whether id is lowercase snake_case.
func IsValidID(id string) bool {
	return validIDRegex.MatchString(id)
}

// Validate lists authoring problems in the world. It never fails: the engine
// tolerates every problem reported here and dangling move targets only surface
// when a player tries to use them.
func (w *World) Validate() []string {
	var problems []string
	add := func(format string, args ...any) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	if len(w.Scenes) == 0 {
		add("world has no scenes")
	}

	start := w.StartSceneID()
	if _, ok := w.Scenes[start]; !ok {
		add("start scene '%s' does not exist", start)
	}

	ids := make([]string, 0, len(w.Scenes))
	for id := range w.Scenes {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		scene := w.Scenes[id]
		if !IsValidID(id) {
			add("scene ID '%s' should be lowercase snake_case", id)
		}
		if scene.ID != "" && scene.ID != id {
			add("scene '%s' declares mismatched id '%s'", id, scene.ID)
		}
		if len(scene.Options) == 0 {
			add("scene '%s' has no options", id)
		}
		for i, opt := range scene.Options {
			if opt.Text == "" {
				add("scene '%s' option %d has no text", id, i+1)
			}
			if !opt.Action.IsKnown() {
				add("scene '%s' option %d (%s) has unknown action '%s'", id, i+1, opt.Text, opt.Action)
			}
			if opt.Action != ActionMove {
				continue
			}
			if opt.Target == "" {
				add("scene '%s' option %d (%s) is a move without a target", id, i+1, opt.Text)
				continue
			}
			if _, ok := w.Scenes[opt.Target]; !ok {
				add("scene '%s' option %d (%s) targets missing scene '%s'", id, i+1, opt.Text, opt.Target)
			}
		}
	}

	return problems
}

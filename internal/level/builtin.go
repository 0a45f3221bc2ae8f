package level

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
)

//go:embed builtin/*.map
var builtinFS embed.FS

// Builtin returns the embedded campaign in play order.
func Builtin() []Level {
	entries, err := fs.ReadDir(builtinFS, "builtin")
	if err != nil {
		panic(fmt.Sprintf("level: reading embedded campaign: %v", err))
	}

	levels := make([]Level, 0, len(entries))
	for _, e := range entries {
		name := path.Join("builtin", e.Name())
		data, err := builtinFS.ReadFile(name)
		if err != nil {
			panic(fmt.Sprintf("level: reading %s: %v", name, err))
		}
		l, err := parseFile(data, name)
		if err != nil {
			panic(fmt.Sprintf("level: %v", err))
		}
		l.FilePath = ""
		levels = append(levels, l)
	}

	sort.Slice(levels, func(i, j int) bool {
		return levels[i].ID < levels[j].ID
	})
	return levels
}

// BuiltinByID returns the embedded level with the given ID.
func BuiltinByID(id string) (Level, bool) {
	for _, l := range Builtin() {
		if l.ID == id {
			return l, true
		}
	}
	return Level{}, false
}

// Find looks a level up by ID among Collection(dir). A numeric id such as
// "3" selects the third level of that list.
func Find(dir, id string) (Level, error) {
	levels, err := Collection(dir)
	if err != nil {
		return Level{}, err
	}
	for _, l := range levels {
		if l.ID == id {
			return l, nil
		}
	}

	var n int
	if _, err := fmt.Sscanf(id, "%d", &n); err == nil && fmt.Sprint(n) == id && n >= 1 && n <= len(levels) {
		return levels[n-1], nil
	}
	return Level{}, fmt.Errorf("level not found: %s", id)
}

// Collection returns the levels found in dir, or the embedded campaign when
// dir is empty.
func Collection(dir string) ([]Level, error) {
	if dir == "" {
		return Builtin(), nil
	}
	levels, err := NewLoader(dir).LoadAll()
	if err != nil {
		return nil, err
	}
	if len(levels) == 0 {
		return nil, fmt.Errorf("no levels in %s", dir)
	}
	return levels, nil
}

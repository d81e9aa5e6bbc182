package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"github.com/jwebster45206/adventure-engine/pkg/scenario"
	"gopkg.in/yaml.v3"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "Usage: %s <world.json|world.yaml>...\n", os.Args[0])
		os.Exit(1)
	}

	failed := false
	for _, filename := range os.Args[1:] {
		validator := &WorldValidator{}
		if err := validator.validateFile(filename); err != nil {
			fmt.Fprintf(os.Stderr, "Validation failed: %v\n", err)
			failed = true
			continue
		}
		fmt.Printf("%s is valid!\n", filename)
	}

	if failed {
		os.Exit(1)
	}
}

type WorldValidator struct {
	errors []string
}

func (v *WorldValidator) validateFile(filename string) error {
	fmt.Printf("Validating %s...\n", filename)

	baseName := filepath.Base(filename)
	ext := strings.ToLower(filepath.Ext(baseName))
	nameWithoutExt := strings.TrimSuffix(baseName, filepath.Ext(baseName))
	if !isValidWorldFilename(nameWithoutExt) {
		return fmt.Errorf("world filename '%s' must be lowercase snake_case (e.g., my_world.json, not my-world.json or MyWorld.json)", baseName)
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	v.errors = nil

	w, err := decodeStrict(data, ext)
	if err != nil {
		return fmt.Errorf("file %s failed strict unmarshaling: %w", filename, err)
	}

	for _, problem := range w.Validate() {
		v.addError(problem)
	}
	for _, id := range sortedSceneIDs(w) {
		v.validateScene(w.Scenes[id], id)
	}

	if len(v.errors) > 0 {
		return fmt.Errorf("validation errors in %s:\n%s", filename, strings.Join(v.errors, "\n"))
	}

	return nil
}

// decodeStrict rejects fields the world type does not know.
func decodeStrict(data []byte, ext string) (*scenario.World, error) {
	var w scenario.World
	switch ext {
	case ".json":
		if !json.Valid(data) {
			return nil, fmt.Errorf("invalid JSON")
		}
		decoder := json.NewDecoder(bytes.NewReader(data))
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&w); err != nil {
			return nil, err
		}
	case ".yaml", ".yml":
		decoder := yaml.NewDecoder(bytes.NewReader(data))
		decoder.KnownFields(true)
		if err := decoder.Decode(&w); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: %s", scenario.ErrUnsupportedFormat, ext)
	}
	return &w, nil
}

func (v *WorldValidator) validateScene(scene scenario.Scene, sceneID string) {
	if scene.Name == "" {
		v.addError(fmt.Sprintf("scene '%s' has no name", sceneID))
	}
	if scene.Description == "" {
		v.addError(fmt.Sprintf("scene '%s' has no description", sceneID))
	}

	seen := make(map[string]bool)
	for _, opt := range scene.Options {
		key := strings.ToLower(opt.Text)
		if seen[key] {
			v.addError(fmt.Sprintf("scene '%s' repeats option '%s'", sceneID, opt.Text))
		}
		seen[key] = true
	}
}

func (v *WorldValidator) addError(msg string) {
	v.errors = append(v.errors, "  - "+msg)
}

func sortedSceneIDs(w *scenario.World) []string {
	ids := make([]string, 0, len(w.Scenes))
	for id := range w.Scenes {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

var validFilenameRegex = regexp.MustCompile(`^[a-z][a-z0-9_]*[a-z0-9]$|^[a-z]$`)

func isValidWorldFilename(name string) bool {
	// Allow 'x.' prefix for experimental worlds
	name = strings.TrimPrefix(name, "x.")
	return validFilenameRegex.MatchString(name)
}

package runner

import (
	"time"
)

// Special input values that trigger non-game actions
const (
	ResetGameStatePrompt = "RESET_GAMESTATE"
	SaveGamePrompt       = "SAVE_GAME"
	LoadGamePrompt       = "LOAD_GAME"
)

// TestSuite defines a complete integration test scenario
// Can either be a regular test with Steps, or a suite that references other Cases
type TestSuite struct {
	Name   string     `json:"name"`
	World  string     `json:"world,omitempty"`  // World filename in the data directory, empty for the built-in world
	Player string     `json:"player,omitempty"` // Player name, defaults to Tester
	Steps  []TestStep `json:"steps,omitempty"`  // Used for regular tests
	Cases  []string   `json:"cases,omitempty"`  // Used for suite tests (list of case files)
}

// IsSequence returns true if this is a suite that sequences other cases
func (ts *TestSuite) IsSequence() bool {
	return len(ts.Cases) > 0
}

// TestStep defines a single player input and its expected outcomes
// Use input: "RESET_GAMESTATE" to start over in the same world,
// "SAVE_GAME" and "LOAD_GAME" to round-trip through the save store
type TestStep struct {
	Name         string       `json:"name,omitempty"`
	Input        string       `json:"input"`
	Expectations Expectations `json:"expect"`
}

// Expectations defines what to check after a test step executes
type Expectations struct {
	// Engine state
	Scene         *string  `json:"scene,omitempty"`          // Current scene ID, "" for none
	SceneName     *string  `json:"scene_name,omitempty"`     // Current scene display name
	Inventory     []string `json:"inventory,omitempty"`      // Full inventory contents (order independent)
	HistoryLength *int     `json:"history_length,omitempty"` // Recorded actions
	Status        *string  `json:"status,omitempty"`         // Game status
	Visited       []string `json:"visited,omitempty"`        // Scenes that must be marked visited

	// Result analysis
	Result              *string  `json:"result,omitempty"` // Result kind, e.g. "moved" or "blocked"
	ResponseContains    []string `json:"response_contains,omitempty"`
	ResponseNotContains []string `json:"response_not_contains,omitempty"`
	ResponseRegex       string   `json:"response_regex,omitempty"`
}

// TestResult contains the outcome of running a test step
type TestResult struct {
	TestName     string
	StepName     string
	Success      bool
	Error        error
	Duration     time.Duration
	ResponseText string
	IsReset      bool // True if this was a RESET_GAMESTATE step (should not count toward pass/fail metrics)
}

// TestJob represents a test suite to be executed
type TestJob struct {
	Name     string
	Suite    TestSuite
	CaseFile string
}

// TestRunResult contains the results of running an entire test suite
type TestRunResult struct {
	Job      TestJob
	Results  []TestResult
	Error    error
	Duration time.Duration
	GameID   string // ID of the last game played for this test
}

package runner

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/jwebster45206/adventure-engine/pkg/engine"
	"github.com/jwebster45206/adventure-engine/pkg/scenario"
	"github.com/jwebster45206/adventure-engine/pkg/storage"
)

// ErrorHandlingMode defines how the runner should handle step failures
type ErrorHandlingMode string

const ErrorHandlingExit ErrorHandlingMode = "exit"
const ErrorHandlingContinue ErrorHandlingMode = "continue"

const defaultPlayer = "Tester"

// Runner plays test suites against an engine backed by a save store
type Runner struct {
	Store             storage.Storage
	Logger            func(format string, args ...interface{})
	EngineLogger      *slog.Logger
	ErrorHandlingMode ErrorHandlingMode
	WorldOverride     string // If set, overrides the world for all test cases
}

// NewRunner creates a new test runner
func NewRunner(store storage.Storage) *Runner {
	return &Runner{
		Store:             store,
		Logger:            func(string, ...interface{}) {},
		EngineLogger:      slog.Default(),
		ErrorHandlingMode: ErrorHandlingContinue,
	}
}

// LoadTestSuite loads a test suite from a JSON file
func LoadTestSuite(filename string) (TestSuite, error) {
	content, err := os.ReadFile(filename)
	if err != nil {
		return TestSuite{}, fmt.Errorf("failed to read test file %s: %w", filename, err)
	}

	var suite TestSuite
	if err := json.Unmarshal(content, &suite); err != nil {
		return TestSuite{}, fmt.Errorf("failed to parse JSON in %s: %w", filename, err)
	}

	return suite, nil
}

// LoadTestSuiteWithExpansion loads a test suite and expands it if it's a sequence
// Returns a list of TestJobs (one for regular tests, multiple for sequences)
func LoadTestSuiteWithExpansion(filename string, casesDir string) ([]TestJob, error) {
	suite, err := LoadTestSuite(filename)
	if err != nil {
		return nil, err
	}

	if !suite.IsSequence() {
		return []TestJob{{
			Name:     suite.Name,
			Suite:    suite,
			CaseFile: filename,
		}}, nil
	}

	var jobs []TestJob
	for _, caseFile := range suite.Cases {
		casePath := filepath.Join(casesDir, caseFile)

		subJobs, err := LoadTestSuiteWithExpansion(casePath, casesDir)
		if err != nil {
			return nil, fmt.Errorf("failed to load case '%s' referenced by sequence '%s': %w", caseFile, suite.Name, err)
		}

		jobs = append(jobs, subJobs...)
	}

	return jobs, nil
}

// RunSuite executes a complete test suite
func (r *Runner) RunSuite(ctx context.Context, suite TestSuite) (TestRunResult, error) {
	start := time.Now()
	result := TestRunResult{
		Job: TestJob{
			Name:  suite.Name,
			Suite: suite,
		},
		Results: make([]TestResult, 0, len(suite.Steps)),
	}

	worldFile := suite.World
	if r.WorldOverride != "" {
		worldFile = r.WorldOverride
	}
	world, err := r.loadWorld(ctx, worldFile)
	if err != nil {
		result.Error = fmt.Errorf("failed to load world: %w", err)
		result.Duration = time.Since(start)
		return result, result.Error
	}

	player := suite.Player
	if player == "" {
		player = defaultPlayer
	}

	g := &game{player: player, world: world}
	g.eng = r.newEngine(g)

	for i, step := range suite.Steps {
		r.Logger("    [%d/%d] Running step: %s", i+1, len(suite.Steps), step.Name)
		stepResult := r.executeStep(ctx, g, step)
		stepResult.TestName = suite.Name
		result.Results = append(result.Results, stepResult)

		if stepResult.Error != nil {
			r.Logger("    [%d/%d] ✗ %s: %v", i+1, len(suite.Steps), step.Name, stepResult.Error)
			if result.Error == nil {
				result.Error = fmt.Errorf("step %d (%s) failed: %w", i, step.Name, stepResult.Error)
			}
			if r.ErrorHandlingMode == ErrorHandlingExit {
				break
			}
			continue
		}

		r.Logger("    [%d/%d] ✓ %s (%v)", i+1, len(suite.Steps), step.Name, stepResult.Duration)
	}

	result.GameID = g.eng.GameID()
	result.Duration = time.Since(start)
	return result, result.Error
}

// game is the per-suite state a step runs against
type game struct {
	player  string
	world   *scenario.World
	eng     *engine.Engine
	savedID string
}

func (r *Runner) loadWorld(ctx context.Context, filename string) (*scenario.World, error) {
	if filename == "" {
		return nil, nil
	}
	if r.Store == nil {
		return nil, fmt.Errorf("world %s requested without a store", filename)
	}
	return r.Store.GetWorld(ctx, filename)
}

func (r *Runner) newEngine(g *game) *engine.Engine {
	eng := engine.New(g.player, engine.WithLogger(r.EngineLogger))
	eng.InitializeWorld(g.world)
	return eng
}

// executeStep performs a single test step
func (r *Runner) executeStep(ctx context.Context, g *game, step TestStep) TestResult {
	start := time.Now()
	result := TestResult{
		StepName: step.Name,
	}

	var kind string
	switch step.Input {
	case ResetGameStatePrompt:
		g.eng = r.newEngine(g)
		result.IsReset = true
		result.ResponseText = "[GAMESTATE RESET]"

	case SaveGamePrompt:
		if r.Store == nil {
			result.Error = fmt.Errorf("save requested without a store")
			result.Duration = time.Since(start)
			return result
		}
		if err := g.eng.Save(ctx, r.Store); err != nil {
			result.Error = err
			result.Duration = time.Since(start)
			return result
		}
		g.savedID = g.eng.GameID()
		result.ResponseText = "[GAME SAVED]"

	case LoadGamePrompt:
		if g.savedID == "" {
			result.Error = fmt.Errorf("load requested before any save")
			result.Duration = time.Since(start)
			return result
		}
		if err := g.eng.Load(ctx, r.Store, g.savedID); err != nil {
			result.Error = fmt.Errorf("failed to load game: %w", err)
			result.Duration = time.Since(start)
			return result
		}
		result.ResponseText = "[GAME LOADED]"

	default:
		res, _ := g.eng.ProcessAction(step.Input)
		kind = res.Kind.String()
		result.ResponseText = res.Text
	}

	if err := checkExpectations(step.Expectations, g.eng, kind, result.ResponseText); err != nil {
		result.Error = fmt.Errorf("expectation failed: %w", err)
		result.Duration = time.Since(start)
		return result
	}

	result.Success = true
	result.Duration = time.Since(start)
	return result
}

// checkExpectations validates the test expectations against the engine after a step
func checkExpectations(exp Expectations, eng *engine.Engine, kind, responseText string) error {
	scene := eng.CurrentScene()

	if exp.Scene != nil {
		actual := ""
		if scene != nil {
			actual = scene.ID
		}
		if actual != *exp.Scene {
			return fmt.Errorf("expected scene %q, got %q", *exp.Scene, actual)
		}
	}

	if exp.SceneName != nil {
		if scene == nil {
			return fmt.Errorf("expected scene name %s, but there is no current scene", *exp.SceneName)
		}
		if scene.DisplayName() != *exp.SceneName {
			return fmt.Errorf("expected scene name %s, got %s", *exp.SceneName, scene.DisplayName())
		}
	}

	// Full inventory check (order independent)
	if len(exp.Inventory) > 0 {
		expected := slices.Clone(exp.Inventory)
		actual := slices.Clone(eng.Player().Inventory)
		slices.Sort(expected)
		slices.Sort(actual)
		if !slices.Equal(expected, actual) {
			return fmt.Errorf("expected inventory %v, got %v", exp.Inventory, eng.Player().Inventory)
		}
	}

	if exp.HistoryLength != nil {
		if n := len(eng.History()); n != *exp.HistoryLength {
			return fmt.Errorf("expected history length %d, got %d", *exp.HistoryLength, n)
		}
	}

	if exp.Status != nil {
		if eng.Status().String() != *exp.Status {
			return fmt.Errorf("expected status %s, got %s", *exp.Status, eng.Status())
		}
	}

	if len(exp.Visited) > 0 {
		visited := eng.VisitedScenes()
		for _, id := range exp.Visited {
			if !slices.Contains(visited, id) {
				return fmt.Errorf("expected scene %s to be visited, visited: %v", id, visited)
			}
		}
	}

	if exp.Result != nil {
		if kind == "" {
			return fmt.Errorf("expected result %s, but the step did not process an action", *exp.Result)
		}
		if kind != *exp.Result {
			return fmt.Errorf("expected result %s, got %s", *exp.Result, kind)
		}
	}

	// Response content checks
	lowerResponse := strings.ToLower(responseText)
	for _, expectedText := range exp.ResponseContains {
		if !strings.Contains(lowerResponse, strings.ToLower(expectedText)) {
			return fmt.Errorf("expected response to contain '%s', but it didn't", expectedText)
		}
	}
	for _, unexpectedText := range exp.ResponseNotContains {
		if strings.Contains(lowerResponse, strings.ToLower(unexpectedText)) {
			return fmt.Errorf("expected response to NOT contain '%s', but it did", unexpectedText)
		}
	}

	if exp.ResponseRegex != "" {
		matched, err := regexp.MatchString(exp.ResponseRegex, responseText)
		if err != nil {
			return fmt.Errorf("invalid regex pattern: %w", err)
		}
		if !matched {
			return fmt.Errorf("response didn't match regex pattern: %s", exp.ResponseRegex)
		}
	}

	return nil
}

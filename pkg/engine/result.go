package engine

import (
	"fmt"
	"strings"
)

// ResultKind tags the outcome of ProcessAction so callers never have to
// pattern-match on the result text.
type ResultKind int

const (
	ResultNotStarted ResultKind = iota
	ResultInvalid
	ResultMoved
	ResultBlocked // move target missing from the scene store
	ResultItemsFound
	ResultNothingFound
	ResultInventory
	ResultQuit
	ResultRestarted
	ResultGeneric
)

var resultKindNames = map[ResultKind]string{
	ResultNotStarted:   "not_started",
	ResultInvalid:      "invalid",
	ResultMoved:        "moved",
	ResultBlocked:      "blocked",
	ResultItemsFound:   "items_found",
	ResultNothingFound: "nothing_found",
	ResultInventory:    "inventory",
	ResultQuit:         "quit",
	ResultRestarted:    "restarted",
	ResultGeneric:      "generic",
}

func (k ResultKind) String() string {
	if name, ok := resultKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("ResultKind(%d)", int(k))
}

// Matched reports whether the input selected an option and its effect ran.
func (k ResultKind) Matched() bool {
	switch k {
	case ResultNotStarted, ResultInvalid, ResultBlocked:
		return false
	default:
		return true
	}
}

// Fixed player-facing messages.
const (
	MsgNotInitialized = "The game has not been initialized."
	MsgInvalidChoice  = "Invalid choice, please try again."
	MsgCannotGo       = "You cannot go that way."
	MsgNothingFound   = "You found nothing."
	MsgGameOver       = "Game over."
	MsgRestarted      = "The game has restarted!"
	msgFoundPrefix    = "You found: "
	msgInventory      = "Inventory: "
	msgInventoryEmpty = "empty"
	msgDidPrefix      = "You did: "
)

// Result is the outcome of one processed action.
type Result struct {
	Kind  ResultKind
	Text  string
	Items []string // Items found, or the inventory for ResultInventory
}

func (r Result) String() string {
	return r.Text
}

func itemsFound(items []string) Result {
	return Result{
		Kind:  ResultItemsFound,
		Text:  msgFoundPrefix + strings.Join(items, ", "),
		Items: items,
	}
}

func inventoryReport(inventory []string) Result {
	items := append([]string{}, inventory...)
	text := msgInventory + msgInventoryEmpty
	if len(items) > 0 {
		text = msgInventory + strings.Join(items, ", ")
	}
	return Result{Kind: ResultInventory, Text: text, Items: items}
}

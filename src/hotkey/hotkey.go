// Package hotkey listens for global key presses and dispatches the
// configured trigger callbacks.
package hotkey

import (
	"log"
	"strings"
	"unicode"

	gohook "github.com/robotn/gohook"
)

// Binding maps a single trigger key to its action.
type Binding struct {
	Key    rune
	Action func()
}

// ParseKey normalizes a configured key name ("p", "P") to its trigger rune.
func ParseKey(s string) (rune, bool) {
	trimmed := strings.TrimSpace(s)
	if len(trimmed) != 1 {
		return 0, false
	}
	return unicode.ToLower(rune(trimmed[0])), true
}

// Listen starts the global keyboard hook in a goroutine and invokes the
// matching binding's action on every key-down. Callbacks run on the hook
// goroutine; they should hand off real work quickly.
func Listen(bindings []Binding) {
	if len(bindings) == 0 {
		return
	}
	byKey := make(map[rune]func(), len(bindings))
	for _, b := range bindings {
		if b.Action != nil {
			byKey[unicode.ToLower(b.Key)] = b.Action
		}
	}
	log.Printf("hotkey: listening for %d trigger key(s)", len(byKey))

	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Printf("PANIC in hotkey goroutine: %v", r)
			}
		}()

		evChan := gohook.Start()
		if evChan == nil {
			log.Printf("ERROR: gohook.Start() returned nil channel")
			return
		}

		for ev := range evChan {
			if ev.Kind != gohook.KeyDown {
				continue
			}
			action, ok := byKey[unicode.ToLower(ev.Keychar)]
			if !ok {
				continue
			}
			log.Printf("hotkey: trigger %q pressed", ev.Keychar)
			action()
		}
	}()
}

// Stop tears down the global hook.
func Stop() {
	gohook.End()
}

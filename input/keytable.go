package input

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
)

// Rune aliases for keys that are awkward to write in config files
var runeAliases = map[string]rune{
	"space":     ' ',
	"backslash": '\\',
	"plus":      '+',
	"minus":     '-',
}

// specialKeyNames resolves lowercased tcell key names ("esc", "ctrl-c", "up") to keys
var specialKeyNames = func() map[string]tcell.Key {
	m := make(map[string]tcell.Key, len(tcell.KeyNames))
	for k, name := range tcell.KeyNames {
		m[strings.ToLower(name)] = k
	}
	return m
}()

// KeyTable maps key presses to intents
type KeyTable struct {
	SpecialKeys map[tcell.Key]Intent
	Runes       map[rune]Intent
}

// DefaultKeyTable returns the default bindings
func DefaultKeyTable() *KeyTable {
	return &KeyTable{
		SpecialKeys: map[tcell.Key]Intent{
			tcell.KeyEscape: IntentQuit,
			tcell.KeyCtrlC:  IntentQuit,
			tcell.KeyCtrlQ:  IntentQuit,
			tcell.KeyCtrlS:  IntentToggleMute,
			tcell.KeyUp:     IntentSegmentsUp,
			tcell.KeyDown:   IntentSegmentsDown,
			tcell.KeyRight:  IntentLengthUp,
			tcell.KeyLeft:   IntentLengthDown,
		},
		Runes: map[rune]Intent{
			'q': IntentQuit,
			' ': IntentTogglePause,
			'p': IntentTogglePause,
			'+': IntentSegmentsUp,
			'=': IntentSegmentsUp,
			'-': IntentSegmentsDown,
			']': IntentLengthUp,
			'[': IntentLengthDown,
			'}': IntentWidthUp,
			'{': IntentWidthDown,
			'>': IntentGrowthUp,
			'<': IntentGrowthDown,
			'r': IntentReset,
			's': IntentToggleStatus,
			'm': IntentToggleMute,
		},
	}
}

// Lookup resolves a key event, IntentNone when unbound
func (kt *KeyTable) Lookup(ev *tcell.EventKey) Intent {
	if ev.Key() == tcell.KeyRune {
		return kt.Runes[ev.Rune()]
	}
	return kt.SpecialKeys[ev.Key()]
}

// Bind attaches an action to a key given as a rune, a rune alias, "shift-" and a rune, or a tcell key name
// Binding "none" removes the key
func (kt *KeyTable) Bind(key, action string) error {
	intent, ok := actionRegistry[action]
	if !ok {
		return fmt.Errorf("unknown action %q", action)
	}

	if r, ok := parseRune(key); ok {
		if intent == IntentNone {
			delete(kt.Runes, r)
		} else {
			kt.Runes[r] = intent
		}
		return nil
	}

	k, ok := specialKeyNames[strings.ToLower(key)]
	if !ok {
		return fmt.Errorf("unknown key %q", key)
	}
	if intent == IntentNone {
		delete(kt.SpecialKeys, k)
	} else {
		kt.SpecialKeys[k] = intent
	}
	return nil
}

// ApplyOverrides binds every key→action pair, stopping at the first invalid entry
func (kt *KeyTable) ApplyOverrides(overrides map[string]string) error {
	for key, action := range overrides {
		if err := kt.Bind(key, action); err != nil {
			return fmt.Errorf("keymap %q: %w", key, err)
		}
	}
	return nil
}

func parseRune(key string) (rune, bool) {
	if r, ok := runeAliases[strings.ToLower(key)]; ok {
		return r, true
	}
	// Config loaders fold key case, so upper case runes are spelled shift-q
	if rest, ok := strings.CutPrefix(strings.ToLower(key), "shift-"); ok && utf8.RuneCountInString(rest) == 1 {
		r, _ := utf8.DecodeRuneInString(rest)
		return unicode.ToUpper(r), true
	}
	if utf8.RuneCountInString(key) == 1 {
		r, _ := utf8.DecodeRuneInString(key)
		return r, true
	}
	return 0, false
}

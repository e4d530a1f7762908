package entity

import (
	"fmt"
	"strconv"
	"strings"
)

// KeyCode identifies a physical or logical key. Values follow the Qt key
// numbering so keymap files written by earlier tools load unchanged:
// printable keys use their upper-case ASCII code, special keys live in the
// 0x01000000 range.
type KeyCode int

// Special keys.
const (
	KeyEscape    KeyCode = 0x01000000
	KeyTab       KeyCode = 0x01000001
	KeyBackspace KeyCode = 0x01000003
	KeyReturn    KeyCode = 0x01000004
	KeyEnter     KeyCode = 0x01000005
	KeyInsert    KeyCode = 0x01000006
	KeyDelete    KeyCode = 0x01000007
	KeyHome      KeyCode = 0x01000010
	KeyEnd       KeyCode = 0x01000011
	KeyLeft      KeyCode = 0x01000012
	KeyUp        KeyCode = 0x01000013
	KeyRight     KeyCode = 0x01000014
	KeyDown      KeyCode = 0x01000015
	KeyPageUp    KeyCode = 0x01000016
	KeyPageDown  KeyCode = 0x01000017
	KeyShift     KeyCode = 0x01000020
	KeyControl   KeyCode = 0x01000021
	KeyMeta      KeyCode = 0x01000022
	KeyAlt       KeyCode = 0x01000023
	KeyF1        KeyCode = 0x01000030
	KeySuperL    KeyCode = 0x01000053
	KeySuperR    KeyCode = 0x01000054
	KeySpace     KeyCode = 0x20
)

var specialKeyNames = map[KeyCode]string{
	KeyEscape:    "Esc",
	KeyTab:       "Tab",
	KeyBackspace: "Backspace",
	KeyReturn:    "Return",
	KeyEnter:     "Enter",
	KeyInsert:    "Ins",
	KeyDelete:    "Del",
	KeyHome:      "Home",
	KeyEnd:       "End",
	KeyLeft:      "Left",
	KeyUp:        "Up",
	KeyRight:     "Right",
	KeyDown:      "Down",
	KeyPageUp:    "PgUp",
	KeyPageDown:  "PgDown",
	KeyShift:     "Shift",
	KeyControl:   "Ctrl",
	KeyMeta:      "Meta",
	KeyAlt:       "Alt",
	KeySuperL:    "Super_L",
	KeySuperR:    "Super_R",
	KeySpace:     "Space",
}

// IsModifier reports whether the key only combines with another key.
func (k KeyCode) IsModifier() bool {
	switch k {
	case KeyShift, KeyControl, KeyAlt, KeyMeta, KeySuperL, KeySuperR:
		return true
	}
	return false
}

// String returns a human-readable key name.
func (k KeyCode) String() string {
	if name, ok := specialKeyNames[k]; ok {
		return name
	}
	if k >= KeyF1 && k < KeyF1+35 {
		return "F" + strconv.Itoa(int(k-KeyF1)+1)
	}
	if k > 0x20 && k < 0x7f {
		return string(rune(k))
	}
	return fmt.Sprintf("0x%x", int(k))
}

// Short returns the compact form used on overlay labels: modifiers become a
// single letter, everything else uses String.
func (k KeyCode) Short() string {
	switch k {
	case KeyShift:
		return "S"
	case KeyControl:
		return "C"
	case KeyAlt:
		return "A"
	case KeyMeta, KeySuperL, KeySuperR:
		return "M"
	}
	return k.String()
}

// ParseKeyCode resolves a key name ("a", "Shift", "F5", "0x41", "65").
func ParseKeyCode(name string) (KeyCode, error) {
	s := strings.TrimSpace(name)
	if s == "" {
		return 0, fmt.Errorf("empty key name")
	}

	for code, n := range specialKeyNames {
		if strings.EqualFold(n, s) {
			return code, nil
		}
	}
	switch strings.ToLower(s) {
	case "escape":
		return KeyEscape, nil
	case "control":
		return KeyControl, nil
	case "delete":
		return KeyDelete, nil
	}

	if len(s) == 1 {
		r := []rune(strings.ToUpper(s))[0]
		if r > 0x20 && r < 0x7f {
			return KeyCode(r), nil
		}
	}

	if (s[0] == 'F' || s[0] == 'f') && len(s) > 1 {
		if n, err := strconv.Atoi(s[1:]); err == nil && n >= 1 && n <= 35 {
			return KeyF1 + KeyCode(n-1), nil
		}
	}

	if n, err := strconv.ParseInt(s, 0, 64); err == nil && n > 0 {
		return KeyCode(n), nil
	}

	return 0, fmt.Errorf("unknown key %q", name)
}

// KeyCombo is an ordered key combination: an optional modifier followed by
// the main key.
type KeyCombo []KeyCode

// First returns the first key of the combo, or 0 when empty.
func (c KeyCombo) First() KeyCode {
	if len(c) == 0 {
		return 0
	}
	return c[0]
}

// Label renders the combo for overlay display ("S+A"), or "KEY" when unbound.
func (c KeyCombo) Label() string {
	if len(c) == 0 {
		return "KEY"
	}
	parts := make([]string, len(c))
	for i, k := range c {
		parts[i] = k.Short()
	}
	return strings.Join(parts, "+")
}

// String renders the combo with full key names ("Shift+A").
func (c KeyCombo) String() string {
	parts := make([]string, len(c))
	for i, k := range c {
		parts[i] = k.String()
	}
	return strings.Join(parts, "+")
}

// ParseKeyCombo parses "Shift+A" style combos.
func ParseKeyCombo(s string) (KeyCombo, error) {
	fields := strings.Split(s, "+")
	if len(fields) == 0 || len(fields) > 2 {
		return nil, fmt.Errorf("combo %q must have one or two keys", s)
	}
	combo := make(KeyCombo, 0, len(fields))
	for _, f := range fields {
		k, err := ParseKeyCode(f)
		if err != nil {
			return nil, err
		}
		combo = append(combo, k)
	}
	if len(combo) == 2 && !combo[0].IsModifier() {
		return nil, fmt.Errorf("combo %q: first key must be a modifier", s)
	}
	return combo, nil
}

//go:build windows || linux || darwin

package backend

import (
	"context"
	"log"

	"github.com/go-vgo/robotgo"
)

// pointerLocation samples the pointer via robotgo. All variants share it;
// screen-coordinate pointer queries are the one capability that needs no
// per-OS code.
func pointerLocation(ctx context.Context) (Point, error) {
	if err := ctx.Err(); err != nil {
		return Point{}, err
	}
	x, y := robotgo.Location()
	return Point{X: x, Y: y}, nil
}

// tapCombo injects a synthetic key combo. Best effort: on platforms without
// synthetic-input permission the tap fails and is only logged, matching the
// SimulateShortcut contract.
func tapCombo(combo string) {
	mods, key, err := splitCombo(combo)
	if err != nil {
		log.Printf("simulate: cannot parse %q: %v", combo, err)
		return
	}
	args := make([]interface{}, len(mods))
	for i, m := range mods {
		args[i] = m
	}
	if err := robotgo.KeyTap(key, args...); err != nil {
		log.Printf("simulate: key tap %q failed: %v", combo, err)
		return
	}
	log.Printf("simulate: injected %q", combo)
}

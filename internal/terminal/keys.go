package terminal

import (
	"github.com/gdamore/tcell/v2"

	"github.com/dshills/scriptedit/internal/session"
)

// sessionKey maps the tcell keys the completion editor cares about.
func sessionKey(k tcell.Key) (session.Key, bool) {
	switch k {
	case tcell.KeyEnter:
		return session.KeyEnter, true
	case tcell.KeyTab:
		return session.KeyTab, true
	case tcell.KeyEscape:
		return session.KeyEscape, true
	case tcell.KeyUp:
		return session.KeyUp, true
	case tcell.KeyDown:
		return session.KeyDown, true
	case tcell.KeyPgUp:
		return session.KeyPageUp, true
	case tcell.KeyPgDn:
		return session.KeyPageDown, true
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return session.KeyBackspace, true
	default:
		return session.KeyOther, false
	}
}

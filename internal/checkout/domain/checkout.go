package domain

import "strconv"

type State string

const (
	StateIdle       State = "IDLE"
	StateCommitting State = "COMMITTING"
)

func (s State) String() string {
	return string(s)
}

// AdHocDescription is the receipt label of a quick-price line.
func AdHocDescription(unitPrice int64) string {
	return "Ad-hoc Rp" + strconv.FormatInt(unitPrice, 10)
}

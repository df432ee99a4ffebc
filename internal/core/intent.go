package core

// Intent is a discrete control decision derived from continuous, noisy input.
// Intents are not persisted: they are consumed by the controller as soon as
// they are produced.
type Intent int

const (
	IntentNone    Intent = iota // nothing emitted (e.g. tracking lost)
	IntentAscend                // flap: one velocity impulse
	IntentDescend               // dive: velocity overwrite while held
	IntentNeutral               // subject is between the thresholds
)

// String returns a human-readable name for the intent.
func (i Intent) String() string {
	switch i {
	case IntentNone:
		return "None"
	case IntentAscend:
		return "Ascend"
	case IntentDescend:
		return "Descend"
	case IntentNeutral:
		return "Neutral"
	default:
		return "Unknown"
	}
}

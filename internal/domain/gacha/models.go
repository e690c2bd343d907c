package gacha

import "github.com/geekhub/mainframe/mainframe/database/models"

// OutcomeKind is the result class of a resolved pull. The three kinds are
// mutually exclusive.
type OutcomeKind int

const (
	// Issued means the user did not own the card and now does.
	Issued OutcomeKind = iota + 1
	// Sentinel means the draw was the try again entry.
	Sentinel
	// Duplicate means the user already owned the drawn card.
	Duplicate
)

func (k OutcomeKind) String() string {
	switch k {
	case Issued:
		return "ISSUED"
	case Sentinel:
		return "TRY_AGAIN"
	case Duplicate:
		return "DUPLICATE"
	default:
		return "UNKNOWN"
	}
}

type Outcome struct {
	Kind OutcomeKind
	Card *models.Card
}

// IsNew reports whether the pull added a card to the collection.
func (o Outcome) IsNew() bool {
	return o.Kind == Issued
}

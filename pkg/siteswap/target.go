package siteswap

// Target receives accepted patterns and end-of-run summaries.
// Implementations may buffer, stream to a console or feed a live UI;
// searches call Target from the goroutine running the search.
type Target interface {
	// Emit delivers one accepted pattern.
	//   - display: the line to show, including start/end sequences
	//   - notation: the notation family tag, e.g. "siteswap"
	//   - animation: the text an animator should load
	Emit(display, notation, animation string)

	// SetStatus delivers an end-of-run summary such as the pattern count.
	SetStatus(msg string)
}

// NotationSiteswap tags patterns written in siteswap notation.
const NotationSiteswap = "siteswap"

// DiscardTarget drops everything; searches run with it only to count.
type DiscardTarget struct{}

func (DiscardTarget) Emit(string, string, string) {}
func (DiscardTarget) SetStatus(string)            {}

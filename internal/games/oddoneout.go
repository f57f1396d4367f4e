package games

// Puzzle is a four-item grid where exactly one item differs.
type Puzzle struct {
	Items    []string
	OddIndex int
}

// Built-in puzzle pool. Symbols are picked to render at a stable width in
// common terminal fonts.
var puzzlePool = []Puzzle{
	{Items: []string{"▲", "▲", "◆", "▲"}, OddIndex: 2},
	{Items: []string{"█", "█", "▒", "█"}, OddIndex: 2},
	{Items: []string{"●", "○", "●", "●"}, OddIndex: 1},
	{Items: []string{"▲", "▼", "▲", "▲"}, OddIndex: 1},
	{Items: []string{"✳", "✳", "✴", "✳"}, OddIndex: 2},
	{Items: []string{"◆", "◇", "◆", "◆"}, OddIndex: 1},
	{Items: []string{"■", "■", "□", "■"}, OddIndex: 2},
	{Items: []string{"▣", "▣", "▣", "▢"}, OddIndex: 3},
	{Items: []string{"★", "★", "☾", "★"}, OddIndex: 2},
	{Items: []string{"♠", "♠", "♣", "♠"}, OddIndex: 2},
}

// OddOneOutDeck returns the full puzzle pool in a random order. The caller
// walks it front to back until the timer runs out.
func OddOneOutDeck(rnd Rand) []Puzzle {
	deck := make([]Puzzle, len(puzzlePool))
	copy(deck, puzzlePool)
	shuffle(rnd, deck)
	return deck
}

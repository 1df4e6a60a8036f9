package board

// Card is a movement card. It sends the holder to a fixed tile, to a tile
// that depends on where the card was drawn, or a number of tiles back.
type Card struct {
	Name      string
	To        int
	PerSource map[int]int
	Back      int
}

// Target resolves the destination of c when drawn on tile src.
func (c Card) Target(src int) int {
	switch {
	case c.Back > 0:
		return ((src-c.Back)%Size + Size) % Size
	case c.PerSource != nil:
		return c.PerSource[src]
	default:
		return c.To
	}
}

// Deck is a card pile drawn from when landing on one of its tiles. Only the
// movement cards are listed; the rest of the Size cards leave the token in
// place, with probability Retain.
type Deck struct {
	Name   string
	Tiles  []int
	Size   int
	Retain float64
	Cards  []Card
}

// ChanceDeck retains 7/16: seven of its sixteen cards do not move the token.
var ChanceDeck = Deck{
	Name:   "Chance",
	Tiles:  []int{7, 22, 36},
	Size:   16,
	Retain: 7.0 / 16,
	Cards: []Card{
		{Name: "Go to Jail", To: Jail},
		{Name: "Advance to Go", To: Go},
		{Name: "Advance to Illinois Avenue", To: 24},
		{Name: "Advance to St. Charles Place", To: 11},
		{Name: "Advance to nearest Utility", PerSource: map[int]int{7: 12, 22: 28, 36: 28}},
		{Name: "Advance to nearest Railroad", PerSource: map[int]int{7: 5, 22: 25, 36: 35}},
		{Name: "Take a trip to Reading Railroad", To: 5},
		{Name: "Advance to Boardwalk", To: 39},
		{Name: "Go back 3 spaces", Back: 3},
	},
}

var CommunityChestDeck = Deck{
	Name:   "Community Chest",
	Tiles:  []int{2, 17, 33},
	Size:   17,
	Retain: 15.0 / 17,
	Cards: []Card{
		{Name: "Go to Jail", To: Jail},
		{Name: "Advance to Go", To: Go},
	},
}

// Decks lists every deck on the board.
var Decks = []Deck{ChanceDeck, CommunityChestDeck}

// Package board describes the US Standard 2008 Monopoly circuit: its tiles,
// its card decks and the Markov chain they induce.
package board

// Size is the number of tiles on the circuit.
const Size = 40

const (
	Go       = 0
	Jail     = 10
	GoToJail = 30
)

type Kind int

const (
	Property Kind = iota
	Railroad
	Utility
	Chance
	CommunityChest
	Tax
	Corner
)

func (k Kind) String() string {
	switch k {
	case Property:
		return "property"
	case Railroad:
		return "railroad"
	case Utility:
		return "utility"
	case Chance:
		return "chance"
	case CommunityChest:
		return "community chest"
	case Tax:
		return "tax"
	case Corner:
		return "corner"
	}
	return "unknown"
}

type Tile struct {
	Index int
	Name  string
	Kind  Kind
}

var Tiles = [Size]Tile{
	{0, "Go", Corner},
	{1, "Mediterranean Avenue", Property},
	{2, "Community Chest", CommunityChest},
	{3, "Baltic Avenue", Property},
	{4, "Income Tax", Tax},
	{5, "Reading Railroad", Railroad},
	{6, "Oriental Avenue", Property},
	{7, "Chance", Chance},
	{8, "Vermont Avenue", Property},
	{9, "Connecticut Avenue", Property},
	{10, "Jail", Corner},
	{11, "St. Charles Place", Property},
	{12, "Electric Company", Utility},
	{13, "States Avenue", Property},
	{14, "Virginia Avenue", Property},
	{15, "Pennsylvania Railroad", Railroad},
	{16, "St. James Place", Property},
	{17, "Community Chest", CommunityChest},
	{18, "Tennessee Avenue", Property},
	{19, "New York Avenue", Property},
	{20, "Free Parking", Corner},
	{21, "Kentucky Avenue", Property},
	{22, "Chance", Chance},
	{23, "Indiana Avenue", Property},
	{24, "Illinois Avenue", Property},
	{25, "B. & O. Railroad", Railroad},
	{26, "Atlantic Avenue", Property},
	{27, "Ventnor Avenue", Property},
	{28, "Water Works", Utility},
	{29, "Marvin Gardens", Property},
	{30, "Go To Jail", Corner},
	{31, "Pacific Avenue", Property},
	{32, "North Carolina Avenue", Property},
	{33, "Community Chest", CommunityChest},
	{34, "Pennsylvania Avenue", Property},
	{35, "Short Line", Railroad},
	{36, "Chance", Chance},
	{37, "Park Place", Property},
	{38, "Luxury Tax", Tax},
	{39, "Boardwalk", Property},
}

// Name returns the printed name of tile i.
func Name(i int) string {
	if i < 0 || i >= Size {
		return "?"
	}
	return Tiles[i].Name
}

// OfKind lists the tiles of kind k in board order.
func OfKind(k Kind) []int {
	var out []int
	for _, t := range Tiles {
		if t.Kind == k {
			out = append(out, t.Index)
		}
	}
	return out
}
